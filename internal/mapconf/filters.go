package mapconf

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/diag"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/filter"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/region"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

// filter builds the filter described by n: a bare name or a single-kind
// mapping. It returns nil when the element could not be built.
func (b *builder) filter(n *yaml.Node) filter.Filter {
	n = resolve(n)
	if absent(n) {
		b.report(diag.Missing("filter", "filter", b.loc(n)))
		return nil
	}
	if n.Kind == yaml.ScalarNode {
		return b.filterName(n)
	}
	e, ok := b.element("filter", n)
	if !ok {
		return nil
	}
	f := b.filterKind(e)
	if f != nil {
		b.register("filter", e, f)
	}
	return f
}

// filterName handles the scalar form. Parameterless kinds are spelled by
// name; anything else refers to a filter id.
func (b *builder) filterName(n *yaml.Node) filter.Filter {
	name := strings.TrimSpace(n.Value)
	switch strings.ToLower(name) {
	case "always", "never", "abstain",
		"crouching", "walking", "sprinting", "flying", "can-fly",
		"same-team", "void":
		return b.filterKind(element{kind: strings.ToLower(name), loc: b.loc(n)})
	case "":
		b.report(diag.Missing("filter", "filter", b.loc(n)))
		return nil
	}
	return filter.Ref(name, b.loc(n))
}

func (b *builder) filterKind(e element) filter.Filter {
	switch e.kind {
	case "always":
		return filter.Always
	case "never":
		return filter.Never
	case "abstain":
		return filter.Undecided

	case "not", "allow", "deny":
		if absent(e.value) {
			b.report(diag.NoChild(e.kind, e.loc))
			return nil
		}
		child := b.filter(e.value)
		if child == nil {
			return nil
		}
		switch e.kind {
		case "not":
			return filter.Not(child)
		case "allow":
			return filter.AllowOnly(child)
		}
		return filter.DenyOnly(child)

	case "all", "any", "one":
		children := b.filterList(e.kind, e.value, e.loc)
		if children == nil {
			return nil
		}
		switch e.kind {
		case "all":
			return filter.All(children...)
		case "any":
			return filter.Any(children...)
		}
		return filter.One(children...)

	case "range":
		return b.rangeFilter(e)
	case "transform":
		return b.transform(e)

	case "filter":
		id, ok := b.scalar(e)
		if !ok {
			return nil
		}
		return filter.Ref(id, e.loc)
	case "objective":
		id, ok := b.scalar(e)
		if !ok {
			return nil
		}
		return filter.ObjectiveCompleted(id, e.loc)
	case "team":
		id, ok := b.scalar(e)
		if !ok {
			return nil
		}
		t, ok := b.m.Team(id)
		if !ok {
			b.report(diag.Unresolved("team", "value", id, e.loc))
			return nil
		}
		return filter.Team(t.ID)
	case "region":
		r := b.region(e.value)
		if r == nil {
			return nil
		}
		return region.AsFilter(r)

	case "material":
		s, ok := b.scalar(e)
		if !ok {
			return nil
		}
		p, err := filter.ParseMaterialPattern(s)
		if err != nil {
			b.report(diag.Invalid(e.kind, "value", e.loc, err))
			return nil
		}
		return filter.Material(p)
	case "carrying", "holding", "wearing":
		return b.itemFilter(e)
	case "spawn":
		s, ok := b.scalar(e)
		if !ok {
			return nil
		}
		r, err := world.ParseSpawnReason(s)
		if err != nil {
			b.report(diag.Invalid(e.kind, "value", e.loc, err))
			return nil
		}
		return filter.Spawn(r)
	case "cause":
		s, ok := b.scalar(e)
		if !ok {
			return nil
		}
		c, err := world.ParseCause(s)
		if err != nil {
			b.report(diag.Invalid(e.kind, "value", e.loc, err))
			return nil
		}
		return filter.Cause(c)
	case "mob", "monster", "creature", "entity":
		return b.entityFilter(e)
	case "random":
		s, ok := b.scalar(e)
		if !ok {
			return nil
		}
		chance, err := strconv.ParseFloat(s, 64)
		if err != nil || chance < 0 || chance > 1 {
			b.report(diag.Invalid(e.kind, "value", e.loc, fmt.Errorf("chance must be a number in [0, 1], got %q", s)))
			return nil
		}
		return filter.Random(chance, b.m.Rand)

	case "crouching", "walking", "sprinting", "flying", "can-fly":
		st, err := filter.ParsePlayerState(e.kind)
		if err != nil {
			b.report(diag.Invalid(e.kind, "", e.loc, err))
			return nil
		}
		return filter.PlayerIs(st)
	case "same-team":
		return filter.SameTeam()
	case "void":
		return filter.Void(b.m.World)
	case "layer":
		p, ok := b.props(e)
		if !ok {
			return nil
		}
		axisName, ok := p.str("coordinate")
		if !ok {
			return nil
		}
		axis, err := world.ParseAxis(axisName)
		if err != nil {
			p.fail("coordinate", p.nodes["coordinate"], err)
			return nil
		}
		if _, ok := p.require("value"); !ok {
			return nil
		}
		value, ok := p.integer("value", 0)
		if !ok {
			return nil
		}
		return filter.Layer(axis, value)
	}
	b.unknown("filter", e)
	return nil
}

// filterList builds the children of an aggregate. It returns nil, after
// reporting, when the list is missing, empty or any child failed.
func (b *builder) filterList(element string, n *yaml.Node, loc diag.Loc) []filter.Filter {
	if absent(n) || (n.Kind == yaml.SequenceNode && len(n.Content) == 0) {
		b.report(diag.NoChild(element, loc))
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		b.invalid(element, n, "expected a list of filters, got %s", nodeKind(n))
		return nil
	}
	children := make([]filter.Filter, 0, len(n.Content))
	failed := false
	for _, c := range n.Content {
		f := b.filter(c)
		if f == nil {
			failed = true
			continue
		}
		children = append(children, f)
	}
	if failed {
		return nil
	}
	return children
}

func (b *builder) rangeFilter(e element) filter.Filter {
	p, ok := b.props(e)
	if !ok {
		return nil
	}
	lo, ok := p.limit("min", 0)
	if !ok {
		return nil
	}
	hi, ok := p.limit("max", filter.Unlimited)
	if !ok {
		return nil
	}
	children := b.filterList(e.kind, p.nodes["filters"], p.loc)
	if children == nil {
		return nil
	}
	f := filter.Range(lo, hi, children...)
	f.Loc = e.loc
	return f
}

func (b *builder) transform(e element) filter.Filter {
	p, ok := b.props(e)
	if !ok {
		return nil
	}
	n, ok := p.require("filter")
	if !ok {
		return nil
	}
	child := b.filter(n)
	if child == nil {
		return nil
	}
	mapping := make(map[filter.State]filter.State)
	for _, from := range filter.States {
		key := from.String()
		if !p.has(key) {
			continue
		}
		s, ok := p.str(key)
		if !ok {
			return nil
		}
		to, err := filter.ParseState(strings.ToLower(s))
		if err != nil {
			p.fail(key, p.nodes[key], err)
			return nil
		}
		mapping[from] = to
	}
	return filter.Transform(child, mapping)
}

var itemScopes = map[string]filter.ItemScope{
	"carrying": filter.Carrying,
	"holding":  filter.Holding,
	"wearing":  filter.Wearing,
}

// itemFilter accepts "<pattern>" or {material: <pattern>, amount: <n>}.
func (b *builder) itemFilter(e element) filter.Filter {
	scope := itemScopes[e.kind]
	var pattern string
	amount := 1
	if !absent(e.value) && e.value.Kind == yaml.MappingNode {
		p, ok := b.props(e)
		if !ok {
			return nil
		}
		if pattern, ok = p.str("material"); !ok {
			return nil
		}
		if amount, ok = p.integer("amount", 1); !ok {
			return nil
		}
		if amount < 1 {
			p.fail("amount", p.nodes["amount"], fmt.Errorf("must be at least 1, got %d", amount))
			return nil
		}
	} else {
		s, ok := b.scalar(e)
		if !ok {
			return nil
		}
		pattern = s
	}
	mp, err := filter.ParseMaterialPattern(pattern)
	if err != nil {
		b.report(diag.Invalid(e.kind, "material", e.loc, err))
		return nil
	}
	return filter.Item(scope, mp, amount)
}

var mobScopes = map[string]filter.MobScope{
	"mob":      filter.ScopeMob,
	"monster":  filter.ScopeMonster,
	"creature": filter.ScopeCreature,
}

// entityFilter handles mob, monster, creature and entity. The value is an
// optional entity type or list of them; entity requires at least one.
func (b *builder) entityFilter(e element) filter.Filter {
	names, ok := b.scalars(e)
	if !ok {
		return nil
	}
	entities := make([]world.EntityType, 0, len(names))
	for _, name := range names {
		t, err := world.ParseEntityType(name)
		if err != nil {
			b.report(diag.Invalid(e.kind, "value", e.loc, err))
			return nil
		}
		entities = append(entities, t)
	}
	if e.kind == "entity" {
		if len(entities) == 0 {
			b.report(diag.Missing(e.kind, "value", e.loc))
			return nil
		}
		return filter.Entity(entities...)
	}
	return filter.Mob(mobScopes[e.kind], entities...)
}
