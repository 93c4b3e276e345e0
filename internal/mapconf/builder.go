package mapconf

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/applied"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/diag"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/filter"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/match"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/types"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

// Build registers the elements of doc in m, in section order: teams,
// objectives, kits, regions, filters, applied rules. Problems are recorded
// in m.Diag and the offending element is skipped. Build does not run the
// load pass.
func Build(m *match.Match, doc *Document, file string) {
	b := &builder{m: m, file: file}
	for _, section := range types.AllSections() {
		nodes := doc.Section(section)
		for i := range nodes {
			n := &nodes[i]
			switch section {
			case types.SectionTeams:
				b.team(n)
			case types.SectionObjectives:
				b.objective(n)
			case types.SectionKits:
				b.kit(n)
			case types.SectionRegions:
				b.region(n)
			case types.SectionFilters:
				if f := b.filter(n); f != nil {
					b.m.AddRoot(f)
				}
			case types.SectionApplied:
				b.applied(n)
			}
		}
	}
}

type builder struct {
	m    *match.Match
	file string
}

func (b *builder) loc(n *yaml.Node) diag.Loc {
	if n == nil {
		return diag.Loc{File: b.file}
	}
	return diag.Loc{File: b.file, Line: n.Line, Column: n.Column}
}

func (b *builder) report(err *diag.Error) { b.m.Diag.Add(err) }

func (b *builder) invalid(element string, n *yaml.Node, format string, args ...any) {
	b.report(&diag.Error{
		Kind:    diag.InvalidProperty,
		Element: element,
		Loc:     b.loc(n),
		Msg:     fmt.Sprintf(format, args...),
	})
}

// register stores obj under the element's id, if it has one.
func (b *builder) register(section string, e element, obj any) {
	if e.id == "" {
		return
	}
	if _, ok := b.m.Register(e.id, obj, false); !ok {
		b.report(diag.Invalid(section, "id", e.loc, fmt.Errorf("id %q already in use", e.id)))
	}
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func absent(n *yaml.Node) bool {
	n = resolve(n)
	return n == nil || n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.SequenceNode:
		return "a list"
	case yaml.MappingNode:
		return "a mapping"
	}
	return "nothing"
}

// element is one mapping of the form {<kind>: <value>, id: <id>}.
type element struct {
	kind  string
	value *yaml.Node
	id    string
	loc   diag.Loc
}

func (b *builder) element(section string, n *yaml.Node) (element, bool) {
	n = resolve(n)
	e := element{loc: b.loc(n)}
	if n.Kind != yaml.MappingNode {
		b.invalid(section, n, "expected a mapping, got %s", nodeKind(n))
		return e, false
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], resolve(n.Content[i+1])
		switch {
		case key.Value == "id":
			e.id = strings.TrimSpace(val.Value)
		case e.kind == "":
			e.kind = strings.ToLower(key.Value)
			e.value = val
		default:
			b.invalid(section, key, "unexpected %q next to %q", key.Value, e.kind)
			return e, false
		}
	}
	if e.kind == "" {
		b.invalid(section, n, "no element kind given")
		return e, false
	}
	return e, true
}

// scalar returns the element value as a string.
func (b *builder) scalar(e element) (string, bool) {
	if absent(e.value) {
		b.report(diag.Missing(e.kind, "value", e.loc))
		return "", false
	}
	if e.value.Kind != yaml.ScalarNode {
		b.invalid(e.kind, e.value, "expected a scalar, got %s", nodeKind(e.value))
		return "", false
	}
	return strings.TrimSpace(e.value.Value), true
}

// scalars accepts a single scalar or a list of them.
func (b *builder) scalars(e element) ([]string, bool) {
	if absent(e.value) {
		return nil, true
	}
	switch e.value.Kind {
	case yaml.ScalarNode:
		if s := strings.TrimSpace(e.value.Value); s != "" {
			return []string{s}, true
		}
		return nil, true
	case yaml.SequenceNode:
		out := make([]string, 0, len(e.value.Content))
		for _, c := range e.value.Content {
			c = resolve(c)
			if c.Kind != yaml.ScalarNode {
				b.invalid(e.kind, c, "expected a scalar, got %s", nodeKind(c))
				return nil, false
			}
			out = append(out, strings.TrimSpace(c.Value))
		}
		return out, true
	case yaml.MappingNode:
		if len(e.value.Content) == 0 {
			return nil, true
		}
	}
	b.invalid(e.kind, e.value, "expected a scalar or a list, got %s", nodeKind(e.value))
	return nil, false
}

// props indexes the keys of an element's parameter mapping.
type props struct {
	b       *builder
	element string
	loc     diag.Loc
	nodes   map[string]*yaml.Node
}

func (b *builder) props(e element) (*props, bool) {
	p := &props{b: b, element: e.kind, loc: e.loc, nodes: make(map[string]*yaml.Node)}
	if absent(e.value) {
		return p, true
	}
	if e.value.Kind != yaml.MappingNode {
		b.invalid(e.kind, e.value, "expected a mapping, got %s", nodeKind(e.value))
		return nil, false
	}
	p.loc = b.loc(e.value)
	for i := 0; i+1 < len(e.value.Content); i += 2 {
		p.nodes[strings.ToLower(e.value.Content[i].Value)] = resolve(e.value.Content[i+1])
	}
	return p, true
}

func (p *props) has(key string) bool { return !absent(p.nodes[key]) }

func (p *props) fail(key string, n *yaml.Node, err error) {
	p.b.report(diag.Invalid(p.element, key, p.b.loc(n), err))
}

func (p *props) require(key string) (*yaml.Node, bool) {
	n := p.nodes[key]
	if absent(n) {
		p.b.report(diag.Missing(p.element, key, p.loc))
		return nil, false
	}
	return n, true
}

func (p *props) str(key string) (string, bool) {
	n, ok := p.require(key)
	if !ok {
		return "", false
	}
	if n.Kind != yaml.ScalarNode {
		p.fail(key, n, fmt.Errorf("expected a scalar, got %s", nodeKind(n)))
		return "", false
	}
	return strings.TrimSpace(n.Value), true
}

func (p *props) vector(key string) (world.Vector, bool) {
	s, ok := p.str(key)
	if !ok {
		return world.Vector{}, false
	}
	v, err := world.ParseVector(s)
	if err != nil {
		p.fail(key, p.nodes[key], err)
		return world.Vector{}, false
	}
	return v, true
}

// pair parses an "x,z" coordinate pair.
func (p *props) pair(key string) (float64, float64, bool) {
	s, ok := p.str(key)
	if !ok {
		return 0, 0, false
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		p.fail(key, p.nodes[key], fmt.Errorf("expected \"x,z\", got %q", s))
		return 0, 0, false
	}
	x, err := world.ParseCoord(parts[0])
	if err == nil {
		var z float64
		if z, err = world.ParseCoord(parts[1]); err == nil {
			return x, z, true
		}
	}
	p.fail(key, p.nodes[key], err)
	return 0, 0, false
}

func (p *props) number(key string) (float64, bool) {
	s, ok := p.str(key)
	if !ok {
		return 0, false
	}
	f, err := world.ParseCoord(s)
	if err != nil {
		p.fail(key, p.nodes[key], err)
		return 0, false
	}
	return f, true
}

// optNumber is number for optional keys; nil when absent.
func (p *props) optNumber(key string) (*float64, bool) {
	if !p.has(key) {
		return nil, true
	}
	f, ok := p.number(key)
	if !ok {
		return nil, false
	}
	return &f, true
}

// positive parses a finite number greater than zero.
func (p *props) positive(key string) (float64, bool) {
	f, ok := p.number(key)
	if ok && (f <= 0 || math.IsInf(f, 0)) {
		p.fail(key, p.nodes[key], fmt.Errorf("must be a finite positive number, got %v", f))
		return 0, false
	}
	return f, ok
}

// limit is integer for counts that may be unlimited: "oo" and "unlimited"
// yield filter.Unlimited.
func (p *props) limit(key string, def int) (int, bool) {
	if n := resolve(p.nodes[key]); !absent(n) && n.Kind == yaml.ScalarNode {
		switch strings.ToLower(strings.TrimSpace(n.Value)) {
		case "oo", "unlimited":
			return filter.Unlimited, true
		}
	}
	return p.integer(key, def)
}

// integer parses an optional int.
func (p *props) integer(key string, def int) (int, bool) {
	if !p.has(key) {
		return def, true
	}
	s, ok := p.str(key)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		p.fail(key, p.nodes[key], fmt.Errorf("invalid integer %q", s))
		return 0, false
	}
	return i, true
}

func (b *builder) team(n *yaml.Node) {
	var d teamDoc
	if err := n.Decode(&d); err != nil {
		b.report(diag.Invalid("team", "", b.loc(n), err))
		return
	}
	if d.ID == "" {
		b.report(diag.Missing("team", "id", b.loc(n)))
		return
	}
	if d.Name == "" {
		d.Name = d.ID
	}
	if err := b.m.AddTeam(&world.Team{ID: d.ID, Name: d.Name}); err != nil {
		b.report(diag.Invalid("team", "id", b.loc(n), err))
	}
}

func (b *builder) objective(n *yaml.Node) {
	var d objectiveDoc
	if err := n.Decode(&d); err != nil {
		b.report(diag.Invalid("objective", "", b.loc(n), err))
		return
	}
	if d.ID == "" {
		b.report(diag.Missing("objective", "id", b.loc(n)))
		return
	}
	var owner *world.Team
	if d.Owner != "" {
		t, ok := b.m.Team(d.Owner)
		if !ok {
			b.report(diag.Unresolved("objective", "owner", d.Owner, b.loc(n)))
			return
		}
		owner = t
	}
	if err := b.m.AddObjective(match.NewObjective(d.ID, d.Name, owner)); err != nil {
		b.report(diag.Invalid("objective", "id", b.loc(n), err))
	}
}

func (b *builder) kit(n *yaml.Node) {
	var d kitDoc
	if err := n.Decode(&d); err != nil {
		b.report(diag.Invalid("kit", "", b.loc(n), err))
		return
	}
	if d.ID == "" {
		b.report(diag.Missing("kit", "id", b.loc(n)))
		return
	}
	items, err := stacks(d.Items)
	if err != nil {
		b.report(diag.Invalid("kit", "items", b.loc(n), err))
		return
	}
	armor, err := stacks(d.Armor)
	if err != nil {
		b.report(diag.Invalid("kit", "armor", b.loc(n), err))
		return
	}
	k := &applied.ItemKit{ID: d.ID, Items: items, Armor: armor, Clear: d.Clear}
	if _, ok := b.m.Register(d.ID, k, false); !ok {
		b.report(diag.Invalid("kit", "id", b.loc(n), fmt.Errorf("id %q already in use", d.ID)))
	}
}

func stacks(docs []itemDoc) ([]world.ItemStack, error) {
	out := make([]world.ItemStack, 0, len(docs))
	for _, d := range docs {
		m, err := world.ParseMaterial(d.Material)
		if err != nil {
			return nil, err
		}
		amount := d.Amount
		if amount == 0 {
			amount = 1
		}
		if amount < 0 {
			return nil, fmt.Errorf("negative amount %d for %s", amount, m)
		}
		out = append(out, world.ItemStack{Material: m, Amount: amount})
	}
	return out, nil
}

func (b *builder) applied(n *yaml.Node) {
	loc := b.loc(n)
	var d appliedDoc
	if err := n.Decode(&d); err != nil {
		b.report(diag.Invalid("applied", "", loc, err))
		return
	}
	if d.Type == "" {
		b.report(diag.Missing("applied", "type", loc))
		return
	}
	t, err := applied.ParseType(d.Type)
	if err != nil {
		b.report(diag.Invalid("applied", "type", loc, err))
		return
	}
	if absent(&d.Region) {
		b.report(diag.Missing("applied", "region", loc))
		return
	}
	reg := b.region(&d.Region)
	if reg == nil {
		return
	}

	var opts []applied.Option
	if d.Message != "" {
		opts = append(opts, applied.WithMessage(d.Message))
	}
	if tm := d.TeamMessage; tm != nil {
		team, ok := b.m.Team(tm.Team)
		if !ok {
			b.report(diag.Unresolved("applied", "team-message", tm.Team, loc))
			return
		}
		opts = append(opts, applied.WithMessageFunc(applied.TeamMessage(team.ID, tm.Own, tm.Other)))
	}
	if d.EarlyWarning {
		opts = append(opts, applied.WithEarlyWarning())
	}
	switch t {
	case applied.TypeVelocity:
		if d.Velocity == "" {
			b.report(diag.Missing("applied", "velocity", loc))
			return
		}
		v, err := world.ParseVector(d.Velocity)
		if err != nil {
			b.report(diag.Invalid("applied", "velocity", loc, err))
			return
		}
		opts = append(opts, applied.WithVelocity(v))
	case applied.TypeKit, applied.TypeLendKit:
		if d.Kit == "" {
			b.report(diag.Missing("applied", "kit", loc))
			return
		}
		k, ok := b.m.Kit(d.Kit)
		if !ok {
			b.report(diag.Unresolved("applied", "kit", d.Kit, loc))
			return
		}
		opts = append(opts, applied.WithKit(k, t == applied.TypeLendKit))
	}

	var f filter.Filter
	if !absent(&d.Filter) {
		if f = b.filter(&d.Filter); f == nil {
			return
		}
	}
	rule := applied.New(d.ID, t, reg, f, opts...)
	if d.ID != "" {
		if _, ok := b.m.Register(d.ID, rule, false); !ok {
			b.report(diag.Invalid("applied", "id", loc, fmt.Errorf("id %q already in use", d.ID)))
			return
		}
	}
	b.m.AddRule(rule)
}

// ErrUnknownKind is the cause of diagnostics for unrecognised element kinds.
var ErrUnknownKind = errors.New("unknown element kind")

func (b *builder) unknown(section string, e element) {
	b.report(diag.Invalid(section, "", e.loc, fmt.Errorf("%w %q", ErrUnknownKind, e.kind)))
}
