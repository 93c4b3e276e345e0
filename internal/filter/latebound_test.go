package filter

import (
	"errors"
	"testing"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/diag"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

type fakeObjective struct {
	id    string
	teams map[string]bool
}

func (o *fakeObjective) ID() string      { return o.id }
func (o *fakeObjective) Completed() bool { return len(o.teams) > 0 }

func (o *fakeObjective) CompletedBy(team *world.Team) bool {
	return team != nil && o.teams[team.ID]
}

type fakeResolver struct {
	filters    map[string]Filter
	objectives map[string]Objective
}

func (r *fakeResolver) ResolveFilter(id string) (Filter, bool) {
	f, ok := r.filters[id]
	return f, ok
}

func (r *fakeResolver) ResolveObjective(id string) (Objective, bool) {
	o, ok := r.objectives[id]
	return o, ok
}

func TestRefResolves(t *testing.T) {
	ref := Ref("allow-all", diag.Loc{})
	if got := ref.Evaluate(); got != Abstain {
		t.Errorf("unloaded ref = %v, want abstain", got)
	}
	r := &fakeResolver{filters: map[string]Filter{"allow-all": Always}}
	if err := Load([]Filter{ref}, r); err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if got := ref.Evaluate(); got != Allow {
		t.Errorf("loaded ref = %v, want allow", got)
	}
}

func TestRefUnresolved(t *testing.T) {
	ref := Ref("missing", diag.Loc{File: "map.yml", Line: 4, Column: 7})
	err := Load([]Filter{Not(ref)}, &fakeResolver{})
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *diag.Error, got %v", err)
	}
	if de.Kind != diag.UnresolvedReference {
		t.Errorf("kind = %v, want unresolved-reference", de.Kind)
	}
	if de.Loc.Line != 4 {
		t.Errorf("line = %d, want 4", de.Loc.Line)
	}
	if got := Not(ref).Evaluate(); got != Abstain {
		t.Errorf("unresolved ref under not = %v, want abstain", got)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	ref := Ref("a", diag.Loc{})
	rng := Range(1, 1, ref)
	r := &fakeResolver{filters: map[string]Filter{"a": Always}}
	for i := 0; i < 3; i++ {
		if err := Load([]Filter{rng, rng}, r); err != nil {
			t.Fatalf("Failed to load (pass %d): %v", i, err)
		}
		if got := rng.Evaluate(); got != Allow {
			t.Fatalf("pass %d: range = %v, want allow", i, got)
		}
	}
}

func TestLoadBreaksCycles(t *testing.T) {
	a := Ref("a", diag.Loc{})
	b := Ref("b", diag.Loc{})
	r := &fakeResolver{filters: map[string]Filter{
		"a": All(Always, b),
		"b": Any(a),
	}}
	err := Load([]Filter{a}, r)
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	// Evaluation must terminate; the cut reference abstains.
	if got := a.Evaluate(); got != Allow {
		t.Errorf("a = %v, want allow", got)
	}
	if b.Loaded() {
		t.Error("the reference closing the cycle should be unloaded")
	}
}

func TestObjectiveFilter(t *testing.T) {
	red := &world.Team{ID: "red"}
	blue := &world.Team{ID: "blue"}
	obj := &fakeObjective{id: "wool", teams: map[string]bool{"red": true}}
	f := ObjectiveCompleted("wool", diag.Loc{})
	if got := f.Evaluate(TeamObj(red)); got != Abstain {
		t.Errorf("unloaded objective = %v, want abstain", got)
	}
	r := &fakeResolver{objectives: map[string]Objective{"wool": obj}}
	if err := Load([]Filter{f}, r); err != nil {
		t.Fatalf("Failed to load: %v", err)
	}

	tests := []struct {
		name string
		objs []Object
		want State
	}{
		{"completing team", []Object{TeamObj(red)}, Allow},
		{"other team", []Object{TeamObj(blue)}, Deny},
		{"player on completing team", []Object{PlayerObj(&world.Player{Team: red})}, Allow},
		{"no team falls back to any", nil, Allow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Evaluate(tt.objs...); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransformOverLateBound(t *testing.T) {
	ref := Ref("x", diag.Loc{})
	tr := Transform(ref, map[State]State{Allow: Deny})
	if tr.Loaded() {
		t.Fatal("transform over a reference must be late-bound")
	}
	if got := tr.Evaluate(); got != Abstain {
		t.Errorf("unloaded transform = %v, want abstain", got)
	}
	if err := Load([]Filter{tr}, &fakeResolver{filters: map[string]Filter{"x": Always}}); err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if got := tr.Evaluate(); got != Deny {
		t.Errorf("transform allow->deny = %v", got)
	}
}
