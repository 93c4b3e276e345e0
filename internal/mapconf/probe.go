package mapconf

import (
	"fmt"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/applied"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/filter"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/match"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

// Probe is a synthetic event: a player standing at At, optionally on a
// team, touching a block of Material while holding an item.
type Probe struct {
	At       world.Vector
	Team     string
	Material string
	Holding  string
	// States are player states such as "crouching" or "flying".
	States []string
}

// Verdict is what one applied rule set decided for a probe.
type Verdict struct {
	Type  applied.Type
	State filter.State
	Rule  *applied.Rule
}

// Objects builds the event context for p within m.
func (p Probe) Objects(m *match.Match) ([]filter.Object, error) {
	player := &world.Player{Name: "probe", Location: p.At, OnGround: true}
	if p.Team != "" {
		t, ok := m.Team(p.Team)
		if !ok {
			return nil, fmt.Errorf("unknown team %q", p.Team)
		}
		player.Team = t
	}
	if p.Holding != "" {
		mat, err := world.ParseMaterial(p.Holding)
		if err != nil {
			return nil, err
		}
		player.Hand = world.ItemStack{Material: mat, Amount: 1}
		player.Inventory = append(player.Inventory, player.Hand)
	}
	for _, s := range p.States {
		st, err := filter.ParsePlayerState(s)
		if err != nil {
			return nil, err
		}
		switch st {
		case filter.Crouching:
			player.Crouching = true
		case filter.Sprinting:
			player.Sprinting = true
		case filter.Flying:
			player.Flying, player.AllowFlight, player.OnGround = true, true, false
		case filter.CanFly:
			player.AllowFlight = true
		case filter.Walking:
			// walking is the absence of the other states
		}
	}

	objs := []filter.Object{filter.VectorObj(p.At), filter.PlayerObj(player)}
	if p.Material != "" {
		mat, err := world.ParseMaterial(p.Material)
		if err != nil {
			return nil, err
		}
		objs = append(objs, filter.BlockObj(world.Block{Pos: p.At.Block(), Material: mat}))
	}
	return objs, nil
}

// Run checks every non-empty applied rule set of m at the probe location,
// in applied.Types order.
func (p Probe) Run(m *match.Match) ([]Verdict, error) {
	objs, err := p.Objects(m)
	if err != nil {
		return nil, err
	}
	var out []Verdict
	for _, t := range applied.Types {
		set, ok := m.AppliedSet(t)
		if !ok || set.Len() == 0 {
			continue
		}
		state, rule := set.Check(p.At, objs...)
		out = append(out, Verdict{Type: t, State: state, Rule: rule})
	}
	return out, nil
}
