package region

import (
	"math"
	"math/rand/v2"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

// Union contains every point contained by any member.
type Union struct {
	Regions []Region
}

func (r *Union) Contains(p world.Vector) bool {
	for _, m := range r.Regions {
		if m.Contains(p) {
			return true
		}
	}
	return false
}

func (r *Union) Bounds() Bounds {
	b := EmptyBounds()
	for _, m := range r.Regions {
		b = b.Union(m.Bounds())
	}
	return b
}

func (r *Union) IsBounded() bool {
	for _, m := range r.Regions {
		if !m.IsBounded() {
			return false
		}
	}
	return len(r.Regions) > 0
}

func (r *Union) IsRandomizable() bool {
	for _, m := range r.Regions {
		if !m.IsRandomizable() {
			return false
		}
	}
	return len(r.Regions) > 0
}

func (r *Union) Blocks() []world.BlockPos { return blocksWithin(r, "union") }

// RandomPoint picks a member uniformly and samples it. Points in small
// members are therefore over-represented, and overlaps are counted twice.
func (r *Union) RandomPoint(rng *rand.Rand) world.Vector {
	if !r.IsRandomizable() {
		panic(unsupported("RandomPoint", "union"))
	}
	return r.Regions[rng.IntN(len(r.Regions))].RandomPoint(rng)
}

// Intersect contains the points contained by every member.
type Intersect struct {
	Regions []Region
}

func (r *Intersect) Contains(p world.Vector) bool {
	for _, m := range r.Regions {
		if !m.Contains(p) {
			return false
		}
	}
	return len(r.Regions) > 0
}

func (r *Intersect) Bounds() Bounds {
	if len(r.Regions) == 0 {
		return EmptyBounds()
	}
	b := Unbounded()
	for _, m := range r.Regions {
		b = b.Intersect(m.Bounds())
	}
	return b
}

func (r *Intersect) IsBounded() bool          { return r.Bounds().IsBounded() }
func (r *Intersect) IsRandomizable() bool     { return false }
func (r *Intersect) Blocks() []world.BlockPos { return blocksWithin(r, "intersect") }

func (r *Intersect) RandomPoint(*rand.Rand) world.Vector {
	panic(unsupported("RandomPoint", "intersect"))
}

// Complement contains the points of Base that no subtracted region contains.
type Complement struct {
	Base     Region
	Subtract []Region
}

func (r *Complement) Contains(p world.Vector) bool {
	if !r.Base.Contains(p) {
		return false
	}
	for _, m := range r.Subtract {
		if m.Contains(p) {
			return false
		}
	}
	return true
}

func (r *Complement) Bounds() Bounds           { return r.Base.Bounds() }
func (r *Complement) IsBounded() bool          { return r.Base.IsBounded() }
func (r *Complement) IsRandomizable() bool     { return false }
func (r *Complement) Blocks() []world.BlockPos { return blocksWithin(r, "complement") }

func (r *Complement) RandomPoint(*rand.Rand) world.Vector {
	panic(unsupported("RandomPoint", "complement"))
}

// Negative inverts containment.
type Negative struct {
	Region Region
}

func (r *Negative) Contains(p world.Vector) bool { return !r.Region.Contains(p) }
func (r *Negative) Bounds() Bounds               { return Unbounded() }
func (r *Negative) IsBounded() bool              { return false }
func (r *Negative) IsRandomizable() bool         { return false }

func (r *Negative) Blocks() []world.BlockPos {
	panic(unsupported("Blocks", "negative"))
}

func (r *Negative) RandomPoint(*rand.Rand) world.Vector {
	panic(unsupported("RandomPoint", "negative"))
}

// Translate shifts a region by Offset.
type Translate struct {
	Region Region
	Offset world.Vector
}

func (r *Translate) Contains(p world.Vector) bool { return r.Region.Contains(p.Sub(r.Offset)) }
func (r *Translate) Bounds() Bounds               { return r.Region.Bounds().Translate(r.Offset) }
func (r *Translate) IsBounded() bool              { return r.Region.IsBounded() }
func (r *Translate) IsRandomizable() bool         { return r.Region.IsRandomizable() }
func (r *Translate) Blocks() []world.BlockPos     { return blocksWithin(r, "translate") }

func (r *Translate) RandomPoint(rng *rand.Rand) world.Vector {
	return r.Region.RandomPoint(rng).Add(r.Offset)
}

// Mirror reflects a region across the plane through Origin with unit Normal.
// Reflected points are rounded to 0.1 before the inner test so that block
// centers land back on block centers.
type Mirror struct {
	Region Region
	Origin world.Vector
	Normal world.Vector
}

// NewMirror normalises the normal.
func NewMirror(r Region, origin, normal world.Vector) *Mirror {
	return &Mirror{Region: r, Origin: origin, Normal: normal.Normalize()}
}

func (r *Mirror) Contains(p world.Vector) bool {
	return r.Region.Contains(reflect(p, r.Origin, r.Normal).Round(1))
}

func (r *Mirror) Bounds() Bounds {
	return r.Region.Bounds().Mirror(r.Origin, r.Normal)
}

func (r *Mirror) IsBounded() bool          { return r.Region.IsBounded() }
func (r *Mirror) IsRandomizable() bool     { return r.Region.IsRandomizable() }
func (r *Mirror) Blocks() []world.BlockPos { return blocksWithin(r, "mirror") }

func (r *Mirror) RandomPoint(rng *rand.Rand) world.Vector {
	return reflect(r.Region.RandomPoint(rng), r.Origin, r.Normal)
}

// Location is a position with a view direction, in degrees.
type Location struct {
	Position   world.Vector
	Yaw, Pitch float64
}

// PointProvider is a spawn point source: a region plus the direction a
// player faces on arrival. With LookAt set the direction is computed per
// point towards it.
type PointProvider struct {
	Region
	Yaw, Pitch float64
	LookAt     *world.Vector
}

// Point draws a spawn location.
func (r *PointProvider) Point(rng *rand.Rand) Location {
	pos := r.RandomPoint(rng)
	loc := Location{Position: pos, Yaw: r.Yaw, Pitch: r.Pitch}
	if r.LookAt != nil {
		loc.Yaw, loc.Pitch = facing(pos, *r.LookAt)
	}
	return loc
}

// facing returns the yaw and pitch that look from one point to another.
// Yaw 0 faces +Z and grows clockwise seen from above; positive pitch looks
// down.
func facing(from, to world.Vector) (yaw, pitch float64) {
	d := to.Sub(from)
	if d.X == 0 && d.Z == 0 {
		if d.Y > 0 {
			return 0, -90
		}
		return 0, 90
	}
	yaw = math.Atan2(-d.X, d.Z) * 180 / math.Pi
	pitch = -math.Atan2(d.Y, math.Hypot(d.X, d.Z)) * 180 / math.Pi
	return yaw, pitch
}
