package region

import (
	"math"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)

// Bounds is an axis-aligned box, possibly infinite on any axis. An empty box
// has Min greater than Max.
type Bounds struct {
	Min, Max world.Vector
}

// NewBounds returns the box spanned by two corners in any order.
func NewBounds(a, b world.Vector) Bounds {
	return Bounds{Min: a.Min(b), Max: a.Max(b)}
}

// Unbounded returns the box covering all of space.
func Unbounded() Bounds {
	return Bounds{
		Min: world.Vec(negInf, negInf, negInf),
		Max: world.Vec(posInf, posInf, posInf),
	}
}

// EmptyBounds returns the box that contains nothing.
func EmptyBounds() Bounds {
	return Bounds{
		Min: world.Vec(posInf, posInf, posInf),
		Max: world.Vec(negInf, negInf, negInf),
	}
}

// IsEmpty reports whether the box contains no point.
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// IsBounded reports whether no component is infinite. A finite box with Min
// greater than Max is bounded and empty.
func (b Bounds) IsBounded() bool {
	return b.Min.IsFinite() && b.Max.IsFinite()
}

// Center returns the midpoint of the box.
func (b Bounds) Center() world.Vector {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent of the box on each axis.
func (b Bounds) Size() world.Vector {
	return b.Max.Sub(b.Min)
}

// Volume returns the volume of the box: zero when empty, +Inf when
// unbounded on any axis.
func (b Bounds) Volume() float64 {
	if b.IsEmpty() {
		return 0
	}
	if !b.IsBounded() {
		return posInf
	}
	s := b.Size()
	return s.X * s.Y * s.Z
}

// Contains reports whether p lies inside the box, faces included.
func (b Bounds) Contains(p world.Vector) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Translate offsets the box.
func (b Bounds) Translate(offset world.Vector) Bounds {
	if b.IsEmpty() {
		return b
	}
	return Bounds{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// Mirror reflects the box across the plane through origin with the given
// unit normal and returns the box enclosing the result. Unbounded boxes
// stay exact only for axis-aligned normals; otherwise the result is
// Unbounded.
func (b Bounds) Mirror(origin, normal world.Vector) Bounds {
	if b.IsEmpty() {
		return b
	}
	if b.IsBounded() {
		out := EmptyBounds()
		for _, c := range b.corners() {
			p := reflect(c, origin, normal)
			out.Min = out.Min.Min(p)
			out.Max = out.Max.Max(p)
		}
		return out
	}
	axis, ok := axisAligned(normal)
	if !ok {
		return Unbounded()
	}
	out := b
	o := origin.Axis(axis)
	lo, hi := 2*o-b.Max.Axis(axis), 2*o-b.Min.Axis(axis)
	setAxis(&out.Min, axis, lo)
	setAxis(&out.Max, axis, hi)
	return out
}

// Union returns the box enclosing both boxes.
func (b Bounds) Union(o Bounds) Bounds {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return Bounds{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Intersect returns the overlap of both boxes, possibly empty.
func (b Bounds) Intersect(o Bounds) Bounds {
	return Bounds{Min: b.Min.Max(o.Min), Max: b.Max.Min(o.Max)}
}

// Blocks enumerates every integer block position whose block lies within
// the box. It panics with *UnsupportedError when the box is unbounded and
// returns nil for a bounded empty box.
func (b Bounds) Blocks() []world.BlockPos {
	if !b.IsBounded() {
		panic(&UnsupportedError{Op: "Blocks", Region: "bounds"})
	}
	if b.IsEmpty() {
		return nil
	}
	lo := b.Min.Block()
	hi := world.BlockPos{
		X: int(math.Ceil(b.Max.X)),
		Y: int(math.Ceil(b.Max.Y)),
		Z: int(math.Ceil(b.Max.Z)),
	}
	if hi.X <= lo.X || hi.Y <= lo.Y || hi.Z <= lo.Z {
		return nil
	}
	blocks := make([]world.BlockPos, 0, (hi.X-lo.X)*(hi.Y-lo.Y)*(hi.Z-lo.Z))
	for x := lo.X; x < hi.X; x++ {
		for y := lo.Y; y < hi.Y; y++ {
			for z := lo.Z; z < hi.Z; z++ {
				blocks = append(blocks, world.BlockPos{X: x, Y: y, Z: z})
			}
		}
	}
	return blocks
}

func (b Bounds) corners() [8]world.Vector {
	var out [8]world.Vector
	for i := range out {
		c := b.Min
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		out[i] = c
	}
	return out
}

func axisAligned(n world.Vector) (world.Axis, bool) {
	switch {
	case n.Y == 0 && n.Z == 0 && n.X != 0:
		return world.AxisX, true
	case n.X == 0 && n.Z == 0 && n.Y != 0:
		return world.AxisY, true
	case n.X == 0 && n.Y == 0 && n.Z != 0:
		return world.AxisZ, true
	}
	return 0, false
}

func setAxis(v *world.Vector, a world.Axis, f float64) {
	switch a {
	case world.AxisX:
		v.X = f
	case world.AxisY:
		v.Y = f
	default:
		v.Z = f
	}
}

// reflect mirrors p across the plane through origin with unit normal n.
func reflect(p, origin, n world.Vector) world.Vector {
	d := p.Sub(origin).Dot(n)
	return p.Sub(n.Scale(2 * d))
}
