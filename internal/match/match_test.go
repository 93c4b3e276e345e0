package match

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/applied"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/diag"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/filter"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/region"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

func newMatch(t *testing.T, fatal ...diag.Kind) *Match {
	t.Helper()
	m := New(Options{ID: "test", Seed: 1, Fatal: fatal})
	for _, team := range []*world.Team{{ID: "red", Name: "Red Team"}, {ID: "blue", Name: "Blue Team"}} {
		if err := m.AddTeam(team); err != nil {
			t.Fatalf("Failed to add team: %v", err)
		}
	}
	return m
}

func TestLoadResolvesReferences(t *testing.T) {
	m := newMatch(t)
	red, _ := m.Team("red")
	wool := NewObjective("red-wool", "Red Wool", red)
	if err := m.AddObjective(wool); err != nil {
		t.Fatalf("Failed to add objective: %v", err)
	}
	m.Register("only-red", filter.Team("red"), false)
	gate := filter.All(filter.Ref("only-red", diag.Loc{}), filter.ObjectiveCompleted("red-wool", diag.Loc{}))
	m.Register("gate", gate, false)

	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Diag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", m.Diag.Err())
	}

	player := filter.PlayerObj(&world.Player{Team: red})
	if got := gate.Evaluate(player); got != filter.Deny {
		t.Errorf("before completion = %v, want deny", got)
	}
	wool.Complete(red)
	if got := gate.Evaluate(player); got != filter.Allow {
		t.Errorf("after completion = %v, want allow", got)
	}
}

func TestLoadFuzzyReference(t *testing.T) {
	m := newMatch(t)
	m.Register("Spawn Protection", filter.Never, false)
	ref := filter.Ref("spawn-protection", diag.Loc{})
	m.AddRoot(ref)
	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := ref.Evaluate(); got != filter.Deny {
		t.Errorf("fuzzy reference = %v, want deny", got)
	}
}

func TestLoadCaseSensitive(t *testing.T) {
	m := New(Options{CaseSensitiveIDs: true})
	m.Register("Spawn", filter.Never, false)
	ref := filter.Ref("spawn", diag.Loc{})
	m.AddRoot(ref)
	m.Load()
	if ref.Loaded() {
		t.Error("case-sensitive match resolved a differently cased id")
	}
}

func TestLoadFatalPolicy(t *testing.T) {
	lenient := newMatch(t)
	lenient.AddRoot(filter.Ref("missing", diag.Loc{Line: 3}))
	if err := lenient.Load(); err != nil {
		t.Errorf("unresolved reference should not be fatal by default: %v", err)
	}
	if lenient.Diag.Len() != 1 || lenient.Diag.Errors()[0].Kind != diag.UnresolvedReference {
		t.Errorf("diagnostics = %v", lenient.Diag.Errors())
	}

	strict := newMatch(t, diag.UnresolvedReference)
	strict.AddRoot(filter.Ref("missing", diag.Loc{Line: 3}))
	err := strict.Load()
	if err == nil {
		t.Fatal("expected a fatal load error")
	}
	var de *diag.Error
	if !errors.As(err, &de) || !de.Fatal {
		t.Errorf("error %v does not carry the fatal diagnostic", err)
	}
	if err := strict.Load(); err != nil {
		t.Error("second Load should be a no-op")
	}
}

func TestLoadReportsCycles(t *testing.T) {
	m := newMatch(t)
	m.Register("a", filter.Not(filter.Ref("b", diag.Loc{})), false)
	m.Register("b", filter.Not(filter.Ref("a", diag.Loc{})), false)
	m.Load()
	found := false
	for _, e := range m.Diag.Errors() {
		if errors.Is(e, filter.ErrCycle) {
			found = true
		}
	}
	if !found {
		t.Errorf("cycle not reported: %v", m.Diag.Errors())
	}
	a, _ := m.Filter("a")
	a.Evaluate() // must terminate
}

func TestAppliedRulesAndMetrics(t *testing.T) {
	m := newMatch(t)
	spawn := region.NewCuboid(world.Vec(0, 0, 0), world.Vec(10, 10, 10))
	m.Register("red-spawn", spawn, false)
	r, ok := m.Region("red spawn")
	if !ok {
		t.Fatal("region lookup failed")
	}
	rule := applied.New("no-enemy-build", applied.TypeBlockPlace, r, filter.Ref("red-only", diag.Loc{}))
	m.Register("red-only", filter.Team("red"), false)
	m.AddRule(rule)
	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	blue, _ := m.Team("blue")
	v, by := m.Applied(applied.TypeBlockPlace).Check(world.Vec(1, 1, 1), filter.PlayerObj(&world.Player{Team: blue}))
	if v != filter.Deny || by != rule {
		t.Fatalf("Check() = %v, %v", v, by)
	}

	if _, ok := m.AppliedSet(applied.TypeEnter); ok {
		t.Error("AppliedSet should not report a set no rule was added to")
	}
	if set, ok := m.AppliedSet(applied.TypeBlockPlace); !ok || set.Len() != 1 {
		t.Errorf("AppliedSet(block-place) = %v, %v", set, ok)
	}

	var buf bytes.Buffer
	m.WriteMetrics(&buf)
	if !strings.Contains(buf.String(), `rule="no-enemy-build"`) {
		t.Errorf("metrics missing rule counter:\n%s", buf.String())
	}
}

func TestEndClearsState(t *testing.T) {
	m := newMatch(t)
	m.Register("f", filter.Always, false)
	m.AddRule(applied.New("r", applied.TypeEnter, region.Everywhere, filter.Always))
	m.End()
	if m.Registry.Len() != 0 {
		t.Errorf("registry has %d entries after End", m.Registry.Len())
	}
	if _, ok := m.Filter("f"); ok {
		t.Error("filter still resolvable after End")
	}
	if err := m.Load(); !errors.Is(err, ErrEnded) {
		t.Errorf("Load after End = %v, want ErrEnded", err)
	}
	m.End()
}

func TestRandomIsSeeded(t *testing.T) {
	a := New(Options{Seed: 99})
	b := New(Options{Seed: 99})
	for i := 0; i < 10; i++ {
		if a.Rand.Uint64() != b.Rand.Uint64() {
			t.Fatal("matches with the same seed diverged")
		}
	}
}
