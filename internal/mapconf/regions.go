package mapconf

import (
	"errors"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/diag"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/region"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

// region builds the region described by n. Regions are not late-bound: a
// reference must name a region declared earlier in the document.
func (b *builder) region(n *yaml.Node) region.Region {
	n = resolve(n)
	if absent(n) {
		b.report(diag.Missing("region", "region", b.loc(n)))
		return nil
	}
	if n.Kind == yaml.ScalarNode {
		return b.regionName(strings.TrimSpace(n.Value), b.loc(n))
	}
	e, ok := b.element("region", n)
	if !ok {
		return nil
	}
	r := b.regionKind(e)
	if r != nil {
		b.register("region", e, r)
	}
	return r
}

func (b *builder) regionName(name string, loc diag.Loc) region.Region {
	switch strings.ToLower(name) {
	case "everywhere":
		return region.Everywhere
	case "nowhere":
		return region.Nowhere
	case "empty":
		return region.Empty
	case "":
		b.report(diag.Missing("region", "region", loc))
		return nil
	}
	r, ok := b.m.Region(name)
	if !ok {
		b.report(diag.Unresolved("region", "region", name, loc))
		return nil
	}
	return r
}

func (b *builder) regionKind(e element) region.Region {
	switch e.kind {
	case "everywhere":
		return region.Everywhere
	case "nowhere":
		return region.Nowhere
	case "empty":
		return region.Empty
	case "region":
		name, ok := b.scalar(e)
		if !ok {
			return nil
		}
		return b.regionName(name, e.loc)
	case "block":
		s, ok := b.scalar(e)
		if !ok {
			return nil
		}
		v, err := world.ParseVector(s)
		if err != nil {
			b.report(diag.Invalid(e.kind, "value", e.loc, err))
			return nil
		}
		return &region.Block{Pos: v.Block()}
	case "union", "intersect", "complement":
		rs := b.regionList(e.kind, e.value, e.loc)
		if rs == nil {
			return nil
		}
		switch e.kind {
		case "union":
			return &region.Union{Regions: rs}
		case "intersect":
			return &region.Intersect{Regions: rs}
		}
		return &region.Complement{Base: rs[0], Subtract: rs[1:]}
	case "negative":
		if absent(e.value) {
			b.report(diag.NoChild(e.kind, e.loc))
			return nil
		}
		inner := b.region(e.value)
		if inner == nil {
			return nil
		}
		return &region.Negative{Region: inner}
	}

	p, ok := b.props(e)
	if !ok {
		return nil
	}
	switch e.kind {
	case "cuboid":
		lo, ok1 := p.vector("min")
		hi, ok2 := p.vector("max")
		if !ok1 || !ok2 {
			return nil
		}
		return region.NewCuboid(lo, hi)
	case "sphere":
		origin, ok1 := p.vector("origin")
		radius, ok2 := p.positive("radius")
		if !ok1 || !ok2 {
			return nil
		}
		return &region.Sphere{Center: origin, Radius: radius}
	case "cylinder":
		base, ok1 := p.vector("base")
		radius, ok2 := p.positive("radius")
		height, ok3 := p.positive("height")
		if !ok1 || !ok2 || !ok3 {
			return nil
		}
		return &region.Cylinder{Base: base, Radius: radius, Height: height}
	case "rectangle":
		x1, z1, ok1 := p.pair("min")
		x2, z2, ok2 := p.pair("max")
		if !ok1 || !ok2 {
			return nil
		}
		return region.NewRectangle(x1, z1, x2, z2)
	case "circle":
		x, z, ok1 := p.pair("center")
		radius, ok2 := p.positive("radius")
		if !ok1 || !ok2 {
			return nil
		}
		return &region.Circle{CenterX: x, CenterZ: z, Radius: radius}
	case "half":
		origin, ok1 := p.vector("origin")
		normal, ok2 := p.normal("normal")
		if !ok1 || !ok2 {
			return nil
		}
		return region.NewHalf(origin, normal)
	case "above", "below":
		return b.axisBound(e, p)
	case "translate":
		offset, ok := p.vector("offset")
		inner := p.region("region")
		if !ok || inner == nil {
			return nil
		}
		return &region.Translate{Region: inner, Offset: offset}
	case "mirror":
		var origin world.Vector
		if p.has("origin") {
			if origin, ok = p.vector("origin"); !ok {
				return nil
			}
		}
		normal, ok := p.normal("normal")
		inner := p.region("region")
		if !ok || inner == nil {
			return nil
		}
		return region.NewMirror(inner, origin, normal)
	case "point":
		return b.point(p)
	}
	b.unknown("region", e)
	return nil
}

// regionList builds the members of a set operation.
func (b *builder) regionList(element string, n *yaml.Node, loc diag.Loc) []region.Region {
	if absent(n) || (n.Kind == yaml.SequenceNode && len(n.Content) == 0) {
		b.report(diag.NoChild(element, loc))
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		b.invalid(element, n, "expected a list of regions, got %s", nodeKind(n))
		return nil
	}
	rs := make([]region.Region, 0, len(n.Content))
	failed := false
	for _, c := range n.Content {
		r := b.region(c)
		if r == nil {
			failed = true
			continue
		}
		rs = append(rs, r)
	}
	if failed {
		return nil
	}
	return rs
}

func (p *props) region(key string) region.Region {
	n, ok := p.require(key)
	if !ok {
		return nil
	}
	return p.b.region(n)
}

func (p *props) normal(key string) (world.Vector, bool) {
	v, ok := p.vector(key)
	if !ok {
		return v, false
	}
	if v.Length() == 0 || !v.IsFinite() {
		p.fail(key, p.nodes[key], errors.New("normal must be a finite non-zero vector"))
		return v, false
	}
	return v, true
}

func (b *builder) axisBound(e element, p *props) region.Region {
	x, ok1 := p.optNumber("x")
	y, ok2 := p.optNumber("y")
	z, ok3 := p.optNumber("z")
	if !ok1 || !ok2 || !ok3 {
		return nil
	}
	if x == nil && y == nil && z == nil {
		b.report(diag.Missing(e.kind, "x|y|z", p.loc))
		return nil
	}
	if e.kind == "above" {
		return region.Above(x, y, z)
	}
	return region.Below(x, y, z)
}

func (b *builder) point(p *props) region.Region {
	inner := p.region("region")
	yaw, ok1 := p.optNumber("yaw")
	pitch, ok2 := p.optNumber("pitch")
	if inner == nil || !ok1 || !ok2 {
		return nil
	}
	if !inner.IsRandomizable() {
		p.fail("region", p.nodes["region"], errors.New("region cannot produce random points"))
		return nil
	}
	pp := &region.PointProvider{Region: inner}
	if yaw != nil {
		pp.Yaw = *yaw
	}
	if pitch != nil {
		pp.Pitch = *pitch
	}
	if p.has("look-at") {
		target, ok := p.vector("look-at")
		if !ok {
			return nil
		}
		pp.LookAt = &target
	}
	return pp
}
