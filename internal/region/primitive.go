package region

import (
	"math"
	"math/rand/v2"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

// Block is the unit cube of a single block position.
type Block struct {
	Pos world.BlockPos
}

func (r *Block) Contains(p world.Vector) bool { return p.Block() == r.Pos }
func (r *Block) IsBounded() bool              { return true }
func (r *Block) IsRandomizable() bool         { return true }
func (r *Block) Blocks() []world.BlockPos     { return []world.BlockPos{r.Pos} }

func (r *Block) Bounds() Bounds {
	c := r.Pos.Corner()
	return Bounds{Min: c, Max: c.Add(world.Vec(1, 1, 1))}
}

func (r *Block) RandomPoint(rng *rand.Rand) world.Vector {
	return uniformIn(rng, r.Bounds())
}

// Cuboid is an axis-aligned box. Either corner may be infinite.
type Cuboid struct {
	Min, Max world.Vector
}

// NewCuboid normalises the corners so Min <= Max on every axis.
func NewCuboid(a, b world.Vector) *Cuboid {
	return &Cuboid{Min: a.Min(b), Max: a.Max(b)}
}

func (r *Cuboid) Contains(p world.Vector) bool { return r.Bounds().Contains(p) }
func (r *Cuboid) Bounds() Bounds               { return Bounds{Min: r.Min, Max: r.Max} }
func (r *Cuboid) IsBounded() bool              { return r.Bounds().IsBounded() }
func (r *Cuboid) IsRandomizable() bool         { return r.IsBounded() }

// Blocks enumerates the bounding blocks directly; every one of them has its
// center inside the cuboid when the corners are block aligned.
func (r *Cuboid) Blocks() []world.BlockPos {
	if !r.IsBounded() {
		panic(unsupported("Blocks", "cuboid"))
	}
	if aligned(r.Min) && aligned(r.Max) {
		return r.Bounds().Blocks()
	}
	return blocksWithin(r, "cuboid")
}

func (r *Cuboid) RandomPoint(rng *rand.Rand) world.Vector {
	if !r.IsRandomizable() {
		panic(unsupported("RandomPoint", "cuboid"))
	}
	return uniformIn(rng, r.Bounds())
}

// Sphere is a solid ball.
type Sphere struct {
	Center world.Vector
	Radius float64
}

func (r *Sphere) Contains(p world.Vector) bool {
	d := p.Sub(r.Center)
	return d.Dot(d) <= r.Radius*r.Radius
}

func (r *Sphere) Bounds() Bounds {
	ext := world.Vec(r.Radius, r.Radius, r.Radius)
	return Bounds{Min: r.Center.Sub(ext), Max: r.Center.Add(ext)}
}

func (r *Sphere) IsBounded() bool          { return r.Bounds().IsBounded() }
func (r *Sphere) IsRandomizable() bool     { return r.IsBounded() }
func (r *Sphere) Blocks() []world.BlockPos { return blocksWithin(r, "sphere") }

// RandomPoint samples uniformly by volume.
func (r *Sphere) RandomPoint(rng *rand.Rand) world.Vector {
	dir := world.Vec(rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()).Normalize()
	return r.Center.Add(dir.Scale(r.Radius * math.Cbrt(rng.Float64())))
}

// Cylinder is a vertical cylinder standing on Base.
type Cylinder struct {
	Base   world.Vector
	Radius float64
	Height float64
}

func (r *Cylinder) Contains(p world.Vector) bool {
	if p.Y < r.Base.Y || p.Y > r.Base.Y+r.Height {
		return false
	}
	dx, dz := p.X-r.Base.X, p.Z-r.Base.Z
	return dx*dx+dz*dz <= r.Radius*r.Radius
}

func (r *Cylinder) Bounds() Bounds {
	return Bounds{
		Min: world.Vec(r.Base.X-r.Radius, r.Base.Y, r.Base.Z-r.Radius),
		Max: world.Vec(r.Base.X+r.Radius, r.Base.Y+r.Height, r.Base.Z+r.Radius),
	}
}

func (r *Cylinder) IsBounded() bool          { return r.Bounds().IsBounded() }
func (r *Cylinder) IsRandomizable() bool     { return r.IsBounded() }
func (r *Cylinder) Blocks() []world.BlockPos { return blocksWithin(r, "cylinder") }

func (r *Cylinder) RandomPoint(rng *rand.Rand) world.Vector {
	angle := rng.Float64() * 2 * math.Pi
	dist := r.Radius * math.Sqrt(rng.Float64())
	return world.Vec(
		r.Base.X+dist*math.Cos(angle),
		r.Base.Y+rng.Float64()*r.Height,
		r.Base.Z+dist*math.Sin(angle),
	)
}

// Rectangle is an infinitely tall column over an XZ rectangle.
type Rectangle struct {
	MinX, MinZ, MaxX, MaxZ float64
}

// NewRectangle normalises the corners.
func NewRectangle(x1, z1, x2, z2 float64) *Rectangle {
	return &Rectangle{
		MinX: math.Min(x1, x2), MinZ: math.Min(z1, z2),
		MaxX: math.Max(x1, x2), MaxZ: math.Max(z1, z2),
	}
}

func (r *Rectangle) Contains(p world.Vector) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Z >= r.MinZ && p.Z <= r.MaxZ
}

func (r *Rectangle) Bounds() Bounds {
	return Bounds{
		Min: world.Vec(r.MinX, negInf, r.MinZ),
		Max: world.Vec(r.MaxX, posInf, r.MaxZ),
	}
}

func (r *Rectangle) IsBounded() bool      { return false }
func (r *Rectangle) IsRandomizable() bool { return false }

func (r *Rectangle) Blocks() []world.BlockPos {
	panic(unsupported("Blocks", "rectangle"))
}

func (r *Rectangle) RandomPoint(*rand.Rand) world.Vector {
	panic(unsupported("RandomPoint", "rectangle"))
}

// Circle is an infinitely tall column over an XZ disc.
type Circle struct {
	CenterX, CenterZ float64
	Radius           float64
}

func (r *Circle) Contains(p world.Vector) bool {
	dx, dz := p.X-r.CenterX, p.Z-r.CenterZ
	return dx*dx+dz*dz <= r.Radius*r.Radius
}

func (r *Circle) Bounds() Bounds {
	return Bounds{
		Min: world.Vec(r.CenterX-r.Radius, negInf, r.CenterZ-r.Radius),
		Max: world.Vec(r.CenterX+r.Radius, posInf, r.CenterZ+r.Radius),
	}
}

func (r *Circle) IsBounded() bool      { return false }
func (r *Circle) IsRandomizable() bool { return false }

func (r *Circle) Blocks() []world.BlockPos {
	panic(unsupported("Blocks", "circle"))
}

func (r *Circle) RandomPoint(*rand.Rand) world.Vector {
	panic(unsupported("RandomPoint", "circle"))
}

// Half is the half-space on the side of the plane through Origin that Normal
// points to, the plane included.
type Half struct {
	Origin world.Vector
	Normal world.Vector
}

// NewHalf normalises the normal.
func NewHalf(origin, normal world.Vector) *Half {
	return &Half{Origin: origin, Normal: normal.Normalize()}
}

func (r *Half) Contains(p world.Vector) bool {
	return p.Sub(r.Origin).Dot(r.Normal) >= 0
}

// Bounds is exact for axis-aligned normals and Unbounded otherwise.
func (r *Half) Bounds() Bounds {
	b := Unbounded()
	axis, ok := axisAligned(r.Normal)
	if !ok {
		return b
	}
	if r.Normal.Axis(axis) > 0 {
		setAxis(&b.Min, axis, r.Origin.Axis(axis))
	} else {
		setAxis(&b.Max, axis, r.Origin.Axis(axis))
	}
	return b
}

func (r *Half) IsBounded() bool      { return false }
func (r *Half) IsRandomizable() bool { return false }

func (r *Half) Blocks() []world.BlockPos {
	panic(unsupported("Blocks", "half"))
}

func (r *Half) RandomPoint(*rand.Rand) world.Vector {
	panic(unsupported("RandomPoint", "half"))
}

// AxisBound is the region strictly above (or below) a value on each axis
// that has one. Axes without a value are unconstrained.
type AxisBound struct {
	X, Y, Z *float64
	Above   bool
}

// Above returns the region beyond the given per-axis minimums.
func Above(x, y, z *float64) *AxisBound { return &AxisBound{X: x, Y: y, Z: z, Above: true} }

// Below returns the region short of the given per-axis maximums.
func Below(x, y, z *float64) *AxisBound { return &AxisBound{X: x, Y: y, Z: z} }

func (r *AxisBound) name() string {
	if r.Above {
		return "above"
	}
	return "below"
}

func (r *AxisBound) limits() [3]*float64 { return [3]*float64{r.X, r.Y, r.Z} }

func (r *AxisBound) Contains(p world.Vector) bool {
	for i, v := range r.limits() {
		if v == nil {
			continue
		}
		c := p.Axis(world.Axis(i))
		if r.Above && c <= *v || !r.Above && c >= *v {
			return false
		}
	}
	return true
}

func (r *AxisBound) Bounds() Bounds {
	b := Unbounded()
	for i, v := range r.limits() {
		if v == nil {
			continue
		}
		if r.Above {
			setAxis(&b.Min, world.Axis(i), *v)
		} else {
			setAxis(&b.Max, world.Axis(i), *v)
		}
	}
	return b
}

func (r *AxisBound) IsBounded() bool      { return false }
func (r *AxisBound) IsRandomizable() bool { return false }

func (r *AxisBound) Blocks() []world.BlockPos {
	panic(unsupported("Blocks", r.name()))
}

func (r *AxisBound) RandomPoint(*rand.Rand) world.Vector {
	panic(unsupported("RandomPoint", r.name()))
}

// constant is a region containing either everything or nothing.
type constant struct {
	name string
	all  bool
}

// The constant regions. Nowhere and Empty behave identically.
var (
	Everywhere Region = &constant{name: "everywhere", all: true}
	Nowhere    Region = &constant{name: "nowhere"}
	Empty      Region = &constant{name: "empty"}
)

func (r *constant) Contains(world.Vector) bool { return r.all }
func (r *constant) IsBounded() bool            { return false }
func (r *constant) IsRandomizable() bool       { return false }

func (r *constant) Bounds() Bounds {
	if r.all {
		return Unbounded()
	}
	return EmptyBounds()
}

func (r *constant) Blocks() []world.BlockPos {
	panic(unsupported("Blocks", r.name))
}

func (r *constant) RandomPoint(*rand.Rand) world.Vector {
	panic(unsupported("RandomPoint", r.name))
}

func uniformIn(rng *rand.Rand, b Bounds) world.Vector {
	s := b.Size()
	return b.Min.Add(world.Vec(rng.Float64()*s.X, rng.Float64()*s.Y, rng.Float64()*s.Z))
}

func aligned(v world.Vector) bool {
	return v.X == math.Floor(v.X) && v.Y == math.Floor(v.Y) && v.Z == math.Floor(v.Z)
}
