package world

import (
	"math"
	"testing"
)

func TestParseVector(t *testing.T) {
	tests := []struct {
		in      string
		want    Vector
		wantErr bool
	}{
		{"1,2,3", Vec(1, 2, 3), false},
		{" -0.5 , 64, 1e2", Vec(-0.5, 64, 100), false},
		{"oo,-oo,0", Vec(math.Inf(1), math.Inf(-1), 0), false},
		{"1,2", Vector{}, true},
		{"1,2,x", Vector{}, true},
		{"", Vector{}, true},
		{"inf,0,0", Vector{}, true},
		{"0,-Infinity,0", Vector{}, true},
		{"0,0,NaN", Vector{}, true},
		{"1e400,0,0", Vector{}, true},
	}
	for _, tt := range tests {
		got, err := ParseVector(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVector(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseVector(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVectorArithmetic(t *testing.T) {
	v := Vec(3, 4, 0)
	if v.Length() != 5 {
		t.Errorf("Length() = %v", v.Length())
	}
	if n := Vec(0, 0, 2).Normalize(); n != Vec(0, 0, 1) {
		t.Errorf("Normalize() = %v", n)
	}
	if (Vector{}).Normalize() != (Vector{}) {
		t.Error("zero vector should normalize to itself")
	}
	if got := v.Add(Vec(1, 1, 1)).Sub(Vec(0, 0, 1)).Scale(2); got != Vec(8, 10, 0) {
		t.Errorf("Add/Sub/Scale = %v", got)
	}
	if got := Vec(1, 5, -2).Min(Vec(2, 3, -4)); got != Vec(1, 3, -4) {
		t.Errorf("Min = %v", got)
	}
	if got := Vec(1.23456, math.Inf(1), -0.004).Round(2); got != Vec(1.23, math.Inf(1), 0) {
		t.Errorf("Round = %v", got)
	}
	if Vec(math.NaN(), 0, 0).IsFinite() || Vec(0, math.Inf(-1), 0).IsFinite() || !v.IsFinite() {
		t.Error("IsFinite mismatch")
	}
}

func TestBlockPos(t *testing.T) {
	if got := Vec(-0.5, 64.9, 3).Block(); got != (BlockPos{-1, 64, 3}) {
		t.Errorf("Block() = %v", got)
	}
	b := BlockPos{1, 2, 3}
	if b.Center() != Vec(1.5, 2.5, 3.5) || b.Corner() != Vec(1, 2, 3) {
		t.Errorf("Center/Corner = %v %v", b.Center(), b.Corner())
	}
	if b.String() != "[1, 2, 3]" {
		t.Errorf("String() = %q", b.String())
	}
	if s := Vec(1, math.Inf(1), -2.5).String(); s != "(1, oo, -2.5)" {
		t.Errorf("Vector.String() = %q", s)
	}
}

func TestParseAxis(t *testing.T) {
	for _, a := range []Axis{AxisX, AxisY, AxisZ} {
		got, err := ParseAxis(" " + a.String() + " ")
		if err != nil || got != a {
			t.Errorf("ParseAxis(%q) = %v, %v", a, got, err)
		}
	}
	if _, err := ParseAxis("w"); err == nil {
		t.Error("expected an error for axis w")
	}
	if Vec(1, 2, 3).Axis(AxisY) != 2 {
		t.Error("Axis(y) mismatch")
	}
}

func TestLookupTables(t *testing.T) {
	tests := []struct {
		name string
		got  func() (any, error)
		want any
	}{
		{"material spaced", func() (any, error) { return ParseMaterial("Red Wool") }, RedWool},
		{"material dashed", func() (any, error) { return ParseMaterial("red-wool") }, RedWool},
		{"material alias", func() (any, error) { return ParseMaterial("WOOD") }, Planks},
		{"entity", func() (any, error) { return ParseEntityType("Zombie") }, EntityZombie},
		{"spawn reason", func() (any, error) { return ParseSpawnReason("spawner egg") }, SpawnSpawnerEgg},
		{"cause", func() (any, error) { return ParseCause("TNT") }, CauseTNT},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.got()
			if err != nil || got != tt.want {
				t.Errorf("got %v, %v; want %v", got, err, tt.want)
			}
		})
	}
	if _, err := ParseMaterial("banana"); err == nil {
		t.Error("unknown material should fail")
	}
	names := MaterialNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("MaterialNames not sorted at %q", names[i])
		}
	}
}

func TestCategories(t *testing.T) {
	if EntityZombie.Category() != CategoryMonster || !EntityZombie.IsMob() {
		t.Error("zombie is a monster mob")
	}
	if EntityPlayer.IsMob() || !EntityPlayer.IsLiving() {
		t.Error("a player is living but not a mob")
	}
	if !CauseTNT.Implies(CauseExplosion) || CauseExplosion.Implies(CauseTNT) {
		t.Error("tnt implies explosion, not the reverse")
	}
	if !CauseMine.Implies(CauseLiving) {
		t.Error("mining is done by a living entity")
	}
}

func TestPlayerAndWorld(t *testing.T) {
	red := &Team{ID: "red"}
	p := &Player{Team: red}
	if !p.OnTeam("red") || p.OnTeam("blue") || (*Player)(nil).OnTeam("red") {
		t.Error("OnTeam mismatch")
	}
	if !p.Walking() {
		t.Error("idle player walks")
	}
	p.Sprinting = true
	if p.Walking() {
		t.Error("sprinting is not walking")
	}

	w := BlockMap{{0, 64, 0}: Stone}
	if w.MaterialAt(BlockPos{0, 64, 0}) != Stone || !w.MaterialAt(BlockPos{0, 65, 0}).IsAir() {
		t.Error("BlockMap lookup mismatch")
	}
	if !Water.IsLiquid() || Stone.IsLiquid() || !Material("").IsAir() {
		t.Error("material predicates mismatch")
	}
}
