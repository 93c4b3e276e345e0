package filter

import (
	"math/rand/v2"
	"testing"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

var (
	red  = &world.Team{ID: "red", Name: "Red Team"}
	blue = &world.Team{ID: "blue", Name: "Blue Team"}
)

func mustPattern(t *testing.T, s string) MaterialPattern {
	t.Helper()
	p, err := ParseMaterialPattern(s)
	if err != nil {
		t.Fatalf("Failed to parse pattern %q: %v", s, err)
	}
	return p
}

// Only red players who are not crouching receive the kit.
func TestKitGate(t *testing.T) {
	gate := All(Team("red"), Not(PlayerIs(Crouching)))
	tests := []struct {
		name   string
		player *world.Player
		want   State
	}{
		{"red standing", &world.Player{Team: red}, Allow},
		{"red crouching", &world.Player{Team: red, Crouching: true}, Deny},
		{"blue standing", &world.Player{Team: blue}, Deny},
		{"observer", &world.Player{}, Deny},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.Evaluate(PlayerObj(tt.player)); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
	if got := gate.Evaluate(MaterialObj(world.Stone)); got != Abstain {
		t.Errorf("no player in context = %v, want abstain", got)
	}
}

func TestLeafFiltersAbstainWithoutContext(t *testing.T) {
	leaves := map[string]Filter{
		"team":      Team("red"),
		"same-team": SameTeam(),
		"material":  Material(mustPattern(t, "stone")),
		"spawn":     Spawn(world.SpawnNatural),
		"mob":       Mob(ScopeMob),
		"entity":    Entity(world.EntityZombie),
		"crouching": PlayerIs(Crouching),
		"cause":     Cause(world.CauseExplosion),
		"carrying":  Item(Carrying, mustPattern(t, "iron_sword"), 1),
		"void":      Void(world.BlockMap{}),
		"layer":     Layer(world.AxisY, 64),
	}
	for name, f := range leaves {
		if got := f.Evaluate(EventObj(world.Event{Kind: world.EventInteract})); got != Abstain {
			t.Errorf("%s with unrelated context = %v, want abstain", name, got)
		}
	}
}

func TestMaterialFilter(t *testing.T) {
	tests := []struct {
		pattern string
		obj     Object
		want    State
	}{
		{"stone", BlockObj(world.Block{Material: world.Stone}), Allow},
		{"stone", BlockObj(world.Block{Material: world.Dirt}), Deny},
		{"*_wool", MaterialObj(world.RedWool), Allow},
		{"*_wool", ItemObj(world.ItemStack{Material: world.Stone, Amount: 1}), Deny},
		{"wool", MaterialObj(world.WhiteWool), Allow},
		{"{red,blue}_wool", MaterialObj(world.BlueWool), Allow},
	}
	for _, tt := range tests {
		if got := Material(mustPattern(t, tt.pattern)).Evaluate(tt.obj); got != tt.want {
			t.Errorf("material %q on %v = %v, want %v", tt.pattern, tt.obj.Kind, got, tt.want)
		}
	}
	if _, err := ParseMaterialPattern("unobtainium"); err == nil {
		t.Error("unknown material should not parse")
	}
}

func TestSameTeam(t *testing.T) {
	a := &world.Player{Team: red}
	b := &world.Player{Team: red}
	c := &world.Player{Team: blue}
	if got := SameTeam().Evaluate(PlayerObj(a), PlayerObj(b)); got != Allow {
		t.Errorf("teammates = %v", got)
	}
	if got := SameTeam().Evaluate(PlayerObj(a), PlayerObj(c)); got != Deny {
		t.Errorf("opponents = %v", got)
	}
	if got := SameTeam().Evaluate(PlayerObj(a)); got != Abstain {
		t.Errorf("single player = %v", got)
	}
}

func TestMobAndEntity(t *testing.T) {
	zombie := EntityObj(world.Entity{Type: world.EntityZombie})
	cow := EntityObj(world.Entity{Type: world.EntityCow})
	tests := []struct {
		name string
		f    Filter
		obj  Object
		want State
	}{
		{"monster zombie", Mob(ScopeMonster), zombie, Allow},
		{"monster cow", Mob(ScopeMonster), cow, Deny},
		{"creature cow", Mob(ScopeCreature), cow, Allow},
		{"mob listed", Mob(ScopeMob, world.EntityZombie), zombie, Allow},
		{"mob unlisted", Mob(ScopeMob, world.EntitySkeleton), zombie, Deny},
		{"entity player", Entity(world.EntityPlayer), PlayerObj(&world.Player{}), Allow},
		{"entity cow", Entity(world.EntityZombie), cow, Deny},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Evaluate(tt.obj); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCauseImplies(t *testing.T) {
	f := Cause(world.CauseExplosion)
	if got := f.Evaluate(EventObj(world.Event{Cause: world.CauseTNT})); got != Allow {
		t.Errorf("tnt as explosion = %v", got)
	}
	if got := f.Evaluate(EventObj(world.Event{Cause: world.CauseFall})); got != Deny {
		t.Errorf("fall as explosion = %v", got)
	}
	if got := f.Evaluate(EventObj(world.Event{Kind: world.EventBlockBreak})); got != Abstain {
		t.Errorf("no cause = %v", got)
	}
}

func TestItemScopes(t *testing.T) {
	p := &world.Player{
		Hand:      world.ItemStack{Material: world.IronSword, Amount: 1},
		Inventory: []world.ItemStack{{Material: world.Arrow, Amount: 16}},
		Armor:     []world.ItemStack{{Material: world.LeatherHelmet, Amount: 1}},
	}
	tests := []struct {
		scope   ItemScope
		pattern string
		amount  int
		want    State
	}{
		{Holding, "iron_sword", 1, Allow},
		{Holding, "arrow", 1, Deny},
		{Carrying, "arrow", 16, Allow},
		{Carrying, "arrow", 32, Deny},
		{Wearing, "leather_*", 1, Allow},
		{Wearing, "iron_sword", 1, Deny},
	}
	for _, tt := range tests {
		f := Item(tt.scope, mustPattern(t, tt.pattern), tt.amount)
		if got := f.Evaluate(PlayerObj(p)); got != tt.want {
			t.Errorf("scope %d %q x%d = %v, want %v", tt.scope, tt.pattern, tt.amount, got, tt.want)
		}
	}
}

func TestVoidAndLayer(t *testing.T) {
	w := world.BlockMap{{X: 0, Y: 0, Z: 0}: world.Bedrock}
	void := Void(w)
	if got := void.Evaluate(VectorObj(world.Vec(0.5, 40, 0.5))); got != Deny {
		t.Errorf("above bedrock = %v, want deny", got)
	}
	if got := void.Evaluate(BlockObj(world.Block{Pos: world.BlockPos{X: 5, Y: 30, Z: 5}})); got != Allow {
		t.Errorf("over the void = %v, want allow", got)
	}
	layer := Layer(world.AxisY, 64)
	if got := layer.Evaluate(VectorObj(world.Vec(3, 64.7, 3))); got != Allow {
		t.Errorf("y=64.7 on layer 64 = %v", got)
	}
	if got := layer.Evaluate(VectorObj(world.Vec(3, 63.9, 3))); got != Deny {
		t.Errorf("y=63.9 on layer 64 = %v", got)
	}
}

func TestRandomIsSeeded(t *testing.T) {
	draw := func() []State {
		f := Random(0.5, rand.New(rand.NewPCG(42, 42)))
		out := make([]State, 20)
		for i := range out {
			out[i] = f.Evaluate()
		}
		return out
	}
	a, b := draw(), draw()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("draw %d differs between equal seeds", i)
		}
	}
	if got := Random(0, rand.New(rand.NewPCG(1, 1))).Evaluate(); got != Deny {
		t.Errorf("chance 0 = %v", got)
	}
	if got := Random(1, rand.New(rand.NewPCG(1, 1))).Evaluate(); got != Allow {
		t.Errorf("chance 1 = %v", got)
	}
}

func TestPlayerStates(t *testing.T) {
	p := &world.Player{Sprinting: true, AllowFlight: true}
	tests := map[string]State{
		"crouching": Deny,
		"walking":   Deny,
		"sprinting": Allow,
		"flying":    Deny,
		"can-fly":   Allow,
	}
	for name, want := range tests {
		s, err := ParsePlayerState(name)
		if err != nil {
			t.Fatalf("Failed to parse %q: %v", name, err)
		}
		if got := PlayerIs(s).Evaluate(PlayerObj(p)); got != want {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
	if names := PlayerStateNames(); len(names) != len(tests) || names[0] != "can-fly" {
		t.Errorf("PlayerStateNames() = %v", names)
	}
}
