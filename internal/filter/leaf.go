package filter

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

// TeamFilter allows players (or teams) belonging to one team.
type TeamFilter struct {
	TeamID string
}

func Team(id string) *TeamFilter { return &TeamFilter{TeamID: id} }

func (f *TeamFilter) Evaluate(objs ...Object) State {
	o, ok := first(objs, KindPlayer, KindTeam)
	if !ok {
		return Abstain
	}
	if o.Kind == KindTeam {
		return FromBool(o.Team != nil && o.Team.ID == f.TeamID)
	}
	return FromBool(o.Player.OnTeam(f.TeamID))
}

// SameTeamFilter compares the first two players in context, typically the
// attacker and the victim of a damage event.
type SameTeamFilter struct{}

func SameTeam() *SameTeamFilter { return &SameTeamFilter{} }

func (f *SameTeamFilter) Evaluate(objs ...Object) State {
	var players []*world.Player
	for _, o := range objs {
		if o.Kind == KindPlayer && o.Player != nil {
			players = append(players, o.Player)
			if len(players) == 2 {
				break
			}
		}
	}
	if len(players) < 2 {
		return Abstain
	}
	a, b := players[0].Team, players[1].Team
	return FromBool(a != nil && b != nil && a.ID == b.ID)
}

// MaterialPattern matches material names. Plain names must be known
// materials; names containing glob metacharacters ("*_wool") are compiled
// as glob patterns.
type MaterialPattern struct {
	raw   string
	exact world.Material
	g     glob.Glob
}

// ParseMaterialPattern validates and compiles a material pattern.
func ParseMaterialPattern(s string) (MaterialPattern, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return MaterialPattern{}, fmt.Errorf("empty material pattern")
	}
	if !strings.ContainsAny(raw, "*?[{") {
		m, err := world.ParseMaterial(raw)
		if err != nil {
			return MaterialPattern{}, err
		}
		return MaterialPattern{raw: raw, exact: m}, nil
	}
	g, err := glob.Compile(strings.ToLower(raw))
	if err != nil {
		return MaterialPattern{}, fmt.Errorf("material pattern %q: %w", raw, err)
	}
	return MaterialPattern{raw: raw, g: g}, nil
}

// Match reports whether m matches the pattern.
func (p MaterialPattern) Match(m world.Material) bool {
	if p.g != nil {
		return p.g.Match(string(m))
	}
	return p.exact == m
}

func (p MaterialPattern) String() string { return p.raw }

// MaterialFilter tests the material of a block, material or item object.
type MaterialFilter struct {
	Pattern MaterialPattern
}

func Material(p MaterialPattern) *MaterialFilter { return &MaterialFilter{Pattern: p} }

func (f *MaterialFilter) Evaluate(objs ...Object) State {
	m, ok := materialOf(objs)
	if !ok {
		return Abstain
	}
	return FromBool(f.Pattern.Match(m))
}

// SpawnFilter tests the reason a creature spawned.
type SpawnFilter struct {
	Reason world.SpawnReason
}

func Spawn(r world.SpawnReason) *SpawnFilter { return &SpawnFilter{Reason: r} }

func (f *SpawnFilter) Evaluate(objs ...Object) State {
	o, ok := first(objs, KindSpawnReason)
	if !ok {
		return Abstain
	}
	return FromBool(o.SpawnReason == f.Reason)
}

// MobScope selects which entities a MobFilter accepts.
type MobScope int

const (
	ScopeMob MobScope = iota
	ScopeMonster
	ScopeCreature
)

// MobFilter allows entities in scope, optionally restricted to given types.
type MobFilter struct {
	Scope MobScope
	Types []world.EntityType
}

func Mob(scope MobScope, types ...world.EntityType) *MobFilter {
	return &MobFilter{Scope: scope, Types: types}
}

func (f *MobFilter) Evaluate(objs ...Object) State {
	o, ok := first(objs, KindEntity)
	if !ok {
		return Abstain
	}
	t := o.Entity.Type
	var inScope bool
	switch f.Scope {
	case ScopeMonster:
		inScope = t.Category() == world.CategoryMonster
	case ScopeCreature:
		inScope = t.Category() == world.CategoryCreature
	default:
		inScope = t.IsMob()
	}
	if !inScope {
		return Deny
	}
	return FromBool(len(f.Types) == 0 || containsType(f.Types, t))
}

// EntityFilter allows entities of the given types. A player object counts
// as an entity of type player.
type EntityFilter struct {
	Types []world.EntityType
}

func Entity(types ...world.EntityType) *EntityFilter { return &EntityFilter{Types: types} }

func (f *EntityFilter) Evaluate(objs ...Object) State {
	o, ok := first(objs, KindEntity, KindPlayer)
	if !ok {
		return Abstain
	}
	t := world.EntityPlayer
	if o.Kind == KindEntity {
		t = o.Entity.Type
	}
	return FromBool(containsType(f.Types, t))
}

func containsType(types []world.EntityType, t world.EntityType) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

// RandomFilter allows with probability Chance. It draws from the match's
// seeded source so a fixed seed replays the same verdicts.
type RandomFilter struct {
	Chance float64
	rng    *rand.Rand
}

func Random(chance float64, rng *rand.Rand) *RandomFilter {
	return &RandomFilter{Chance: chance, rng: rng}
}

func (f *RandomFilter) Evaluate(...Object) State {
	return FromBool(f.rng.Float64() < f.Chance)
}

// PlayerState names a movement state tested by PlayerStateFilter.
type PlayerState int

const (
	Crouching PlayerState = iota
	Walking
	Sprinting
	Flying
	CanFly
)

var playerStateNames = map[string]PlayerState{
	"crouching": Crouching,
	"walking":   Walking,
	"sprinting": Sprinting,
	"flying":    Flying,
	"can-fly":   CanFly,
}

// ParsePlayerState parses an element name such as "crouching" or "can-fly".
func ParsePlayerState(s string) (PlayerState, error) {
	if st, ok := playerStateNames[strings.ToLower(s)]; ok {
		return st, nil
	}
	return 0, fmt.Errorf("unknown player state %q", s)
}

// PlayerStateNames returns the element names of all player states, sorted.
func PlayerStateNames() []string {
	names := make([]string, 0, len(playerStateNames))
	for name := range playerStateNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PlayerStateFilter tests the movement state of the first player.
type PlayerStateFilter struct {
	State PlayerState
}

func PlayerIs(s PlayerState) *PlayerStateFilter { return &PlayerStateFilter{State: s} }

func (f *PlayerStateFilter) Evaluate(objs ...Object) State {
	p, ok := player(objs)
	if !ok {
		return Abstain
	}
	switch f.State {
	case Crouching:
		return FromBool(p.Crouching)
	case Walking:
		return FromBool(p.Walking())
	case Sprinting:
		return FromBool(p.Sprinting)
	case Flying:
		return FromBool(p.Flying)
	default:
		return FromBool(p.AllowFlight)
	}
}

// CauseFilter tests the cause carried by an event object. Events without a
// cause abstain.
type CauseFilter struct {
	Cause world.Cause
}

func Cause(c world.Cause) *CauseFilter { return &CauseFilter{Cause: c} }

func (f *CauseFilter) Evaluate(objs ...Object) State {
	o, ok := first(objs, KindEvent)
	if !ok || o.Event.Cause == "" {
		return Abstain
	}
	return FromBool(o.Event.Cause.Implies(f.Cause))
}

// ItemScope selects which inventory slots an ItemFilter inspects.
type ItemScope int

const (
	Carrying ItemScope = iota
	Holding
	Wearing
)

// ItemFilter allows players carrying, holding or wearing a matching item
// stack of at least MinAmount.
type ItemFilter struct {
	Scope     ItemScope
	Pattern   MaterialPattern
	MinAmount int
}

func Item(scope ItemScope, p MaterialPattern, minAmount int) *ItemFilter {
	return &ItemFilter{Scope: scope, Pattern: p, MinAmount: minAmount}
}

func (f *ItemFilter) Evaluate(objs ...Object) State {
	p, ok := player(objs)
	if !ok {
		return Abstain
	}
	var stacks []world.ItemStack
	switch f.Scope {
	case Holding:
		stacks = []world.ItemStack{p.Hand}
	case Wearing:
		stacks = p.Armor
	default:
		stacks = append(append([]world.ItemStack{p.Hand}, p.Inventory...), p.Armor...)
	}
	for _, s := range stacks {
		if s.Amount >= f.MinAmount && !s.Material.IsAir() && f.Pattern.Match(s.Material) {
			return Allow
		}
	}
	return Deny
}

// VoidFilter allows locations with nothing but air at the bottom of the
// world below them.
type VoidFilter struct {
	World world.BlockSource
}

func Void(w world.BlockSource) *VoidFilter { return &VoidFilter{World: w} }

func (f *VoidFilter) Evaluate(objs ...Object) State {
	o, ok := first(objs, KindBlock, KindVector)
	if !ok {
		return Abstain
	}
	pos := o.Block.Pos
	if o.Kind == KindVector {
		pos = o.Vector.Block()
	}
	pos.Y = 0
	return FromBool(f.World.MaterialAt(pos).IsAir())
}

// LayerFilter allows blocks or points whose coordinate on Axis equals Value.
type LayerFilter struct {
	Axis  world.Axis
	Value int
}

func Layer(axis world.Axis, value int) *LayerFilter {
	return &LayerFilter{Axis: axis, Value: value}
}

func (f *LayerFilter) Evaluate(objs ...Object) State {
	o, ok := first(objs, KindBlock, KindVector)
	if !ok {
		return Abstain
	}
	pos := o.Block.Pos
	if o.Kind == KindVector {
		pos = o.Vector.Block()
	}
	return FromBool(pos.Corner().Axis(f.Axis) == float64(f.Value))
}
