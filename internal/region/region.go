// Package region implements geometric predicates over world space and the
// CSG algebra that combines them.
package region

import (
	"fmt"
	"math/rand/v2"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/filter"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

// Region is a set of points in world space.
//
// Blocks may only be called when IsBounded reports true and RandomPoint only
// when IsRandomizable reports true. Violations panic with *UnsupportedError.
type Region interface {
	Contains(p world.Vector) bool
	Bounds() Bounds
	IsBounded() bool
	IsRandomizable() bool
	Blocks() []world.BlockPos
	RandomPoint(rng *rand.Rand) world.Vector
}

// UnsupportedError is the panic value raised when an operation is invoked on
// a region that cannot support it, such as enumerating the blocks of an
// unbounded region.
type UnsupportedError struct {
	Op     string
	Region string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("region: %s is not supported by %s", e.Op, e.Region)
}

func unsupported(op, region string) *UnsupportedError {
	return &UnsupportedError{Op: op, Region: region}
}

// ContainsBlock reports whether the center of the block lies in r.
func ContainsBlock(r Region, pos world.BlockPos) bool {
	return r.Contains(pos.Center())
}

// blocksWithin filters the blocks of r's bounds through Contains.
func blocksWithin(r Region, name string) []world.BlockPos {
	if !r.IsBounded() {
		panic(unsupported("Blocks", name))
	}
	all := r.Bounds().Blocks()
	out := all[:0]
	for _, b := range all {
		if r.Contains(b.Center()) {
			out = append(out, b)
		}
	}
	return out
}

// Filter evaluates a region against the point carried by the context
// objects. It abstains when no object carries a location.
type Filter struct {
	Region Region
}

// AsFilter wraps r as a filter.
func AsFilter(r Region) *Filter { return &Filter{Region: r} }

func (f *Filter) Evaluate(objs ...filter.Object) filter.State {
	p, ok := filter.Point(objs)
	if !ok {
		return filter.Abstain
	}
	return filter.FromBool(f.Region.Contains(p))
}
