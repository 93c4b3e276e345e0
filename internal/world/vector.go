package world

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Vector is a point or offset in world space.
type Vector struct {
	X, Y, Z float64
}

// Vec is shorthand for Vector{x, y, z}.
func Vec(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * f.
func (v Vector) Scale(f float64) Vector {
	return Vector{v.X * f, v.Y * f, v.Z * f}
}

// Dot returns the dot product of v and o.
func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length returns the euclidean length of v.
func (v Vector) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vector) Normalize() Vector {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Min returns the per-axis minimum of v and o.
func (v Vector) Min(o Vector) Vector {
	return Vector{math.Min(v.X, o.X), math.Min(v.Y, o.Y), math.Min(v.Z, o.Z)}
}

// Max returns the per-axis maximum of v and o.
func (v Vector) Max(o Vector) Vector {
	return Vector{math.Max(v.X, o.X), math.Max(v.Y, o.Y), math.Max(v.Z, o.Z)}
}

// Round rounds every component to the given number of decimals.
func (v Vector) Round(decimals int) Vector {
	p := math.Pow(10, float64(decimals))
	r := func(f float64) float64 {
		if math.IsInf(f, 0) {
			return f
		}
		return math.Round(f*p) / p
	}
	return Vector{r(v.X), r(v.Y), r(v.Z)}
}

// IsFinite reports whether no component is infinite or NaN.
func (v Vector) IsFinite() bool {
	for _, f := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return false
		}
	}
	return true
}

// Axis returns the component selected by a.
func (v Vector) Axis(a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// Block returns the block containing v.
func (v Vector) Block() BlockPos {
	return BlockPos{int(math.Floor(v.X)), int(math.Floor(v.Y)), int(math.Floor(v.Z))}
}

func (v Vector) String() string {
	return fmt.Sprintf("(%s, %s, %s)", formatCoord(v.X), formatCoord(v.Y), formatCoord(v.Z))
}

func formatCoord(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "oo"
	case math.IsInf(f, -1):
		return "-oo"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ParseVector parses "x,y,z". Components accept "oo" and "-oo" for infinity.
func ParseVector(s string) (Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Vector{}, fmt.Errorf("vector %q: expected 3 components, got %d", s, len(parts))
	}
	var c [3]float64
	for i, p := range parts {
		f, err := ParseCoord(p)
		if err != nil {
			return Vector{}, fmt.Errorf("vector %q: %w", s, err)
		}
		c[i] = f
	}
	return Vector{c[0], c[1], c[2]}, nil
}

// ParseCoord parses a single coordinate. Infinity is only spelled "oo" or
// "-oo"; NaN is rejected.
func ParseCoord(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "oo", "+oo":
		return math.Inf(1), nil
	case "-oo":
		return math.Inf(-1), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}

// BlockPos is an integer block coordinate.
type BlockPos struct {
	X, Y, Z int
}

// Center returns the point at the middle of the block.
func (b BlockPos) Center() Vector {
	return Vector{float64(b.X) + 0.5, float64(b.Y) + 0.5, float64(b.Z) + 0.5}
}

// Corner returns the minimum corner of the block.
func (b BlockPos) Corner() Vector {
	return Vector{float64(b.X), float64(b.Y), float64(b.Z)}
}

func (b BlockPos) String() string {
	return fmt.Sprintf("[%d, %d, %d]", b.X, b.Y, b.Z)
}

// Axis names one of the three world axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis parses "x", "y" or "z".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q (valid: x, y, z)", s)
}
