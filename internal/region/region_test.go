package region

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/diag"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/filter"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

func ptr(f float64) *float64 { return &f }

// samples returns n random points rounded to 0.1 inside a 40-block cube
// around the origin.
func samples(seed uint64, n int) []world.Vector {
	rng := rand.New(rand.NewPCG(seed, seed))
	out := make([]world.Vector, n)
	for i := range out {
		out[i] = world.Vec(
			rng.Float64()*40-20,
			rng.Float64()*40-20,
			rng.Float64()*40-20,
		).Round(1)
	}
	return out
}

func fixtures() map[string]Region {
	return map[string]Region{
		"cuboid":    NewCuboid(world.Vec(-5, -5, -5), world.Vec(5, 3, 7)),
		"sphere":    &Sphere{Center: world.Vec(1, 2, 3), Radius: 6},
		"cylinder":  &Cylinder{Base: world.Vec(0, -4, 0), Radius: 4, Height: 10},
		"block":     &Block{Pos: world.BlockPos{X: 2, Y: 2, Z: 2}},
		"rectangle": NewRectangle(-3, -3, 8, 2),
		"circle":    &Circle{CenterX: 4, CenterZ: -4, Radius: 5},
		"half":      NewHalf(world.Vec(0, 0, 0), world.Vec(1, 1, 0)),
		"above":     Above(nil, ptr(2), nil),
		"below":     Below(ptr(0), nil, ptr(3)),
	}
}

func TestCSGDuality(t *testing.T) {
	regs := fixtures()
	pts := samples(1, 400)
	for an, a := range regs {
		for bn, b := range regs {
			union := &Union{Regions: []Region{a, b}}
			inter := &Intersect{Regions: []Region{a, b}}
			comp := &Complement{Base: a, Subtract: []Region{b}}
			for _, p := range pts {
				ina, inb := a.Contains(p), b.Contains(p)
				if union.Contains(p) != (ina || inb) {
					t.Fatalf("union(%s, %s) at %v", an, bn, p)
				}
				if inter.Contains(p) != (ina && inb) {
					t.Fatalf("intersect(%s, %s) at %v", an, bn, p)
				}
				if comp.Contains(p) != (ina && !inb) {
					t.Fatalf("complement(%s, %s) at %v", an, bn, p)
				}
				if (&Negative{Region: a}).Contains(p) == ina {
					t.Fatalf("negative(%s) at %v", an, p)
				}
			}
		}
	}
}

func TestMirrorInvolution(t *testing.T) {
	planes := []struct {
		origin, normal world.Vector
	}{
		{world.Vec(0, 0, 0), world.Vec(1, 0, 0)},
		{world.Vec(0.5, 0, 0), world.Vec(0, 0, 1)},
		{world.Vec(2, 0, 2), world.Vec(0, 1, 0)},
	}
	pts := samples(2, 300)
	for name, r := range fixtures() {
		for _, pl := range planes {
			twice := NewMirror(NewMirror(r, pl.origin, pl.normal), pl.origin, pl.normal)
			for _, p := range pts {
				if twice.Contains(p) != r.Contains(p) {
					t.Fatalf("mirror twice of %s across %v differs at %v", name, pl.normal, p)
				}
			}
		}
	}
}

func TestMirrorBounds(t *testing.T) {
	c := NewCuboid(world.Vec(1, 0, 0), world.Vec(3, 2, 2))
	m := NewMirror(c, world.Vec(0, 0, 0), world.Vec(1, 0, 0))
	b := m.Bounds()
	if b.Min != world.Vec(-3, 0, 0) || b.Max != world.Vec(-1, 2, 2) {
		t.Errorf("mirrored bounds = %v..%v", b.Min, b.Max)
	}
	if !m.Contains(world.Vec(-2, 1, 1)) || m.Contains(world.Vec(2, 1, 1)) {
		t.Error("mirrored cuboid containment is wrong")
	}

	above := NewMirror(Above(nil, ptr(10), nil), world.Vec(0, 0, 0), world.Vec(0, 1, 0))
	ub := above.Bounds()
	if ub.Max.Y != -10 || !math.IsInf(ub.Min.Y, -1) {
		t.Errorf("mirrored half-space bounds on y = %v..%v", ub.Min.Y, ub.Max.Y)
	}
	if !above.Contains(world.Vec(0, -11, 0)) {
		t.Error("mirrored above should contain y=-11")
	}
}

func TestCuboidBlocks(t *testing.T) {
	c := NewCuboid(world.Vec(0, 0, 0), world.Vec(2, 3, 4))
	blocks := c.Blocks()
	if len(blocks) != 24 {
		t.Fatalf("got %d blocks, want 24", len(blocks))
	}
	for _, b := range blocks {
		if !c.Contains(b.Center()) {
			t.Errorf("block %v center outside cuboid", b)
		}
	}
	if got := c.Bounds().Volume(); got != 24 {
		t.Errorf("Volume() = %v, want 24", got)
	}
}

func TestDerivedBlocksMatchContains(t *testing.T) {
	regs := []Region{
		&Sphere{Center: world.Vec(0, 0, 0), Radius: 3},
		&Cylinder{Base: world.Vec(0.5, 0, 0.5), Radius: 2, Height: 3},
		&Translate{Region: NewCuboid(world.Vec(0, 0, 0), world.Vec(2, 2, 2)), Offset: world.Vec(10, 0, 0)},
		&Union{Regions: []Region{
			NewCuboid(world.Vec(0, 0, 0), world.Vec(1, 1, 1)),
			NewCuboid(world.Vec(5, 5, 5), world.Vec(6, 6, 6)),
		}},
		&Intersect{Regions: []Region{
			Above(nil, ptr(0), nil),
			&Sphere{Center: world.Vec(0, 0, 0), Radius: 2},
		}},
	}
	for i, r := range regs {
		if !r.IsBounded() {
			t.Fatalf("region %d should be bounded", i)
		}
		got := map[world.BlockPos]bool{}
		for _, b := range r.Blocks() {
			got[b] = true
		}
		for _, b := range r.Bounds().Blocks() {
			if got[b] != r.Contains(b.Center()) {
				t.Errorf("region %d: block %v listed=%v contains=%v", i, b, got[b], !got[b])
			}
		}
	}
}

func TestBoundednessFollowsFiniteness(t *testing.T) {
	gap := &Intersect{Regions: []Region{
		NewCuboid(world.Vec(0, 0, 0), world.Vec(2, 2, 2)),
		NewCuboid(world.Vec(5, 5, 5), world.Vec(7, 7, 7)),
	}}
	if !gap.Bounds().IsEmpty() || !gap.IsBounded() {
		t.Fatalf("disjoint intersect: bounds %v..%v bounded=%v", gap.Bounds().Min, gap.Bounds().Max, gap.IsBounded())
	}
	if blocks := gap.Blocks(); len(blocks) != 0 {
		t.Errorf("disjoint intersect blocks = %v", blocks)
	}

	tests := []struct {
		name string
		r    Region
		want bool
	}{
		{"sphere", &Sphere{Radius: 2}, true},
		{"infinite sphere", &Sphere{Radius: math.Inf(1)}, false},
		{"cylinder", &Cylinder{Radius: 1, Height: 3}, true},
		{"infinitely tall cylinder", &Cylinder{Radius: 1, Height: math.Inf(1)}, false},
		{"cuboid with infinite corner", NewCuboid(world.Vec(0, 0, 0), world.Vec(1, math.Inf(1), 1)), false},
	}
	for _, tt := range tests {
		if got := tt.r.IsBounded(); got != tt.want {
			t.Errorf("%s: IsBounded = %v, want %v", tt.name, got, tt.want)
		}
		if got := tt.r.IsRandomizable(); got != tt.want {
			t.Errorf("%s: IsRandomizable = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestUnboundedMisuse(t *testing.T) {
	above := Above(nil, ptr(60), nil)
	if !above.Contains(world.Vec(0, 65, 0)) {
		t.Error("y=65 should be above 60")
	}
	if above.Contains(world.Vec(0, 55, 0)) {
		t.Error("y=55 should not be above 60")
	}
	if above.IsBounded() {
		t.Error("above should be unbounded")
	}

	func() {
		defer func() {
			rec := recover()
			err, ok := rec.(error)
			var ue *UnsupportedError
			if !ok || !errors.As(err, &ue) {
				t.Fatalf("expected *UnsupportedError panic, got %v", rec)
			}
			if ue.Op != "Blocks" || ue.Region != "above" {
				t.Errorf("unexpected error %v", ue)
			}
		}()
		above.Blocks()
	}()
}

func TestRandomPointStaysInside(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	regs := map[string]Region{
		"cuboid":   NewCuboid(world.Vec(0, 0, 0), world.Vec(4, 4, 4)),
		"sphere":   &Sphere{Center: world.Vec(10, 10, 10), Radius: 3},
		"cylinder": &Cylinder{Base: world.Vec(0, 0, 0), Radius: 2, Height: 5},
		"block":    &Block{Pos: world.BlockPos{X: -1, Y: 5, Z: 9}},
		"union": &Union{Regions: []Region{
			&Block{Pos: world.BlockPos{}},
			&Sphere{Center: world.Vec(20, 0, 0), Radius: 1},
		}},
		"translate": &Translate{Region: &Sphere{Radius: 1}, Offset: world.Vec(0, 50, 0)},
	}
	for name, r := range regs {
		if !r.IsRandomizable() {
			t.Fatalf("%s should be randomizable", name)
		}
		for i := 0; i < 200; i++ {
			if p := r.RandomPoint(rng); !r.Contains(p) {
				t.Fatalf("%s: random point %v outside region", name, p)
			}
		}
	}
	if (&Complement{Base: regs["cuboid"]}).IsRandomizable() {
		t.Error("complement should not be randomizable")
	}
}

func TestBoundsAlgebra(t *testing.T) {
	a := NewBounds(world.Vec(0, 0, 0), world.Vec(4, 4, 4))
	b := NewBounds(world.Vec(2, 2, 2), world.Vec(6, 6, 6))
	if u := a.Union(b); u.Min != world.Vec(0, 0, 0) || u.Max != world.Vec(6, 6, 6) {
		t.Errorf("union = %v..%v", u.Min, u.Max)
	}
	if i := a.Intersect(b); i.Min != world.Vec(2, 2, 2) || i.Max != world.Vec(4, 4, 4) {
		t.Errorf("intersect = %v..%v", i.Min, i.Max)
	}
	far := NewBounds(world.Vec(10, 10, 10), world.Vec(11, 11, 11))
	if !a.Intersect(far).IsEmpty() {
		t.Error("disjoint boxes should intersect to empty")
	}
	if a.Center() != world.Vec(2, 2, 2) {
		t.Errorf("center = %v", a.Center())
	}
	if tr := a.Translate(world.Vec(1, -1, 0)); tr.Min != world.Vec(1, -1, 0) {
		t.Errorf("translate min = %v", tr.Min)
	}
	if Unbounded().IsBounded() || EmptyBounds().IsBounded() {
		t.Error("unbounded and empty boxes are not bounded")
	}
	if got := EmptyBounds().Union(a); got != a {
		t.Errorf("empty union a = %v", got)
	}
	if !math.IsInf(Unbounded().Volume(), 1) || EmptyBounds().Volume() != 0 {
		t.Error("volume of unbounded/empty is wrong")
	}
}

func TestAsFilter(t *testing.T) {
	f := AsFilter(NewCuboid(world.Vec(0, 0, 0), world.Vec(10, 10, 10)))
	tests := []struct {
		name string
		objs []filter.Object
		want filter.State
	}{
		{"vector inside", []filter.Object{filter.VectorObj(world.Vec(5, 5, 5))}, filter.Allow},
		{"block outside", []filter.Object{filter.BlockObj(world.Block{Pos: world.BlockPos{X: 20}})}, filter.Deny},
		{"player inside", []filter.Object{filter.PlayerObj(&world.Player{Location: world.Vec(1, 1, 1)})}, filter.Allow},
		{"no location", []filter.Object{filter.MaterialObj(world.Stone)}, filter.Abstain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Evaluate(tt.objs...); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointProviderLooksAt(t *testing.T) {
	target := world.Vec(0, 0, 10)
	pp := &PointProvider{Region: &Block{Pos: world.BlockPos{}}, LookAt: &target}
	loc := pp.Point(rand.New(rand.NewPCG(9, 9)))
	if math.Abs(loc.Yaw) > 10 {
		t.Errorf("yaw towards +z = %v, want about 0", loc.Yaw)
	}
	fixed := &PointProvider{Region: &Block{}, Yaw: 90, Pitch: 15}
	if l := fixed.Point(rand.New(rand.NewPCG(9, 9))); l.Yaw != 90 || l.Pitch != 15 {
		t.Errorf("fixed direction = %v/%v", l.Yaw, l.Pitch)
	}
}

type filterTable map[string]filter.Filter

func (t filterTable) ResolveFilter(id string) (filter.Filter, bool) {
	f, ok := t[id]
	return f, ok
}

func (t filterTable) ResolveObjective(string) (filter.Objective, bool) { return nil, false }

func TestEvaluateIsIdempotent(t *testing.T) {
	room := NewCuboid(world.Vec(0, 0, 0), world.Vec(10, 10, 10))
	hollow := &Complement{Base: room, Subtract: []Region{&Block{Pos: world.BlockPos{X: 5, Y: 5, Z: 5}}}}
	mirrored := NewMirror(room, world.Vec(0, 0, 0), world.Vec(1, 0, 0))

	tree := filter.All(
		filter.Range(1, 2,
			filter.Team("red"),
			AsFilter(mirrored),
			filter.Ref("hollow", diag.Loc{}),
		),
		filter.Transform(filter.Ref("hollow", diag.Loc{}), map[filter.State]filter.State{filter.Abstain: filter.Deny}),
	)
	if err := filter.Load([]filter.Filter{tree}, filterTable{"hollow": AsFilter(hollow)}); err != nil {
		t.Fatalf("Load: %v", err)
	}

	red := &world.Team{ID: "red"}
	tests := []struct {
		name string
		objs []filter.Object
		want filter.State
	}{
		{"red player in the room", []filter.Object{filter.PlayerObj(&world.Player{Team: red, Location: world.Vec(2, 2, 2)})}, filter.Allow},
		{"player in the hole", []filter.Object{filter.PlayerObj(&world.Player{Location: world.Vec(5.5, 5.5, 5.5)})}, filter.Deny},
		{"point in the mirror image", []filter.Object{filter.VectorObj(world.Vec(-3, 3, 3))}, filter.Deny},
		{"no context", nil, filter.Deny},
	}
	first := make([]filter.State, len(tests))
	for i, tt := range tests {
		first[i] = tree.Evaluate(tt.objs...)
		if first[i] != tt.want {
			t.Errorf("%s: Evaluate = %v, want %v", tt.name, first[i], tt.want)
		}
	}
	// second round in reverse order so no verdict depends on the previous call
	for i := len(tests) - 1; i >= 0; i-- {
		if got := tree.Evaluate(tests[i].objs...); got != first[i] {
			t.Errorf("%s: second Evaluate = %v, first was %v", tests[i].name, got, first[i])
		}
	}
}
