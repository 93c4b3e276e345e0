package filter

import (
	"errors"
	"fmt"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/diag"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

// LateBound is implemented by filters that can only resolve their
// dependencies once every filter of a match exists. Until Load succeeds
// they evaluate to Abstain.
type LateBound interface {
	Filter
	Load(r Resolver) error
	Loaded() bool
}

// Objective is the slice of a match objective that filters observe.
type Objective interface {
	ID() string
	Completed() bool
	CompletedBy(team *world.Team) bool
}

// Resolver looks up match-scoped objects by id during the load pass.
type Resolver interface {
	ResolveFilter(id string) (Filter, bool)
	ResolveObjective(id string) (Objective, bool)
}

// RefFilter is a reference to another filter by id. It delegates once loaded.
type RefFilter struct {
	ID  string
	Loc diag.Loc

	target Filter
}

// Ref returns an unresolved reference to the filter registered as id.
func Ref(id string, loc diag.Loc) *RefFilter { return &RefFilter{ID: id, Loc: loc} }

func (f *RefFilter) Evaluate(objs ...Object) State {
	if f.target == nil {
		return Abstain
	}
	return f.target.Evaluate(objs...)
}

// Children returns the resolved target, or nothing before Load.
func (f *RefFilter) Children() []Filter {
	if f.target == nil {
		return nil
	}
	return []Filter{f.target}
}

// Load implements LateBound.
func (f *RefFilter) Load(r Resolver) error {
	if r == nil {
		return diag.Unresolved("filter", "id", f.ID, f.Loc)
	}
	target, ok := r.ResolveFilter(f.ID)
	if !ok || target == nil {
		return diag.Unresolved("filter", "id", f.ID, f.Loc)
	}
	f.target = target
	return nil
}

// Loaded implements LateBound.
func (f *RefFilter) Loaded() bool { return f.target != nil }

func (f *RefFilter) unload() { f.target = nil }

// ObjectiveFilter allows when an objective is completed. With a team or a
// teamed player in context it asks whether that team completed it.
type ObjectiveFilter struct {
	ObjectiveID string
	Loc         diag.Loc

	objective Objective
}

func ObjectiveCompleted(id string, loc diag.Loc) *ObjectiveFilter {
	return &ObjectiveFilter{ObjectiveID: id, Loc: loc}
}

func (f *ObjectiveFilter) Evaluate(objs ...Object) State {
	if f.objective == nil {
		return Abstain
	}
	if o, ok := first(objs, KindTeam, KindPlayer); ok {
		team := o.Team
		if o.Kind == KindPlayer && o.Player != nil {
			team = o.Player.Team
		}
		if team != nil {
			return FromBool(f.objective.CompletedBy(team))
		}
	}
	return FromBool(f.objective.Completed())
}

// Load implements LateBound.
func (f *ObjectiveFilter) Load(r Resolver) error {
	if r == nil {
		return diag.Unresolved("objective", "id", f.ObjectiveID, f.Loc)
	}
	obj, ok := r.ResolveObjective(f.ObjectiveID)
	if !ok {
		return diag.Unresolved("objective", "id", f.ObjectiveID, f.Loc)
	}
	f.objective = obj
	return nil
}

// Loaded implements LateBound.
func (f *ObjectiveFilter) Loaded() bool { return f.objective != nil }

// ErrCycle is returned by Load when filter references form a loop.
var ErrCycle = errors.New("filter reference cycle")

// Load runs the late-binding pass over every filter reachable from roots.
// Each filter is loaded at most once, parents before children. A reference
// that closes a cycle is unloaded again so it abstains instead of recursing
// forever. All failures are returned joined; the pass never stops early.
func Load(roots []Filter, r Resolver) error {
	l := &loader{resolver: r, state: make(map[Filter]visit)}
	for _, f := range roots {
		l.walk(f)
	}
	return errors.Join(l.errs...)
}

type visit int

const (
	unvisited visit = iota
	visiting
	done
)

type loader struct {
	resolver Resolver
	state    map[Filter]visit
	path     []Filter
	errs     []error
}

func (l *loader) walk(f Filter) {
	if f == nil {
		return
	}
	switch l.state[f] {
	case done:
		return
	case visiting:
		l.breakCycle(f)
		return
	}
	l.state[f] = visiting
	l.path = append(l.path, f)
	if lb, ok := f.(LateBound); ok && !lb.Loaded() {
		if err := lb.Load(l.resolver); err != nil {
			l.errs = append(l.errs, err)
		}
	}
	if p, ok := f.(Parent); ok {
		for _, child := range p.Children() {
			l.walk(child)
		}
	}
	l.path = l.path[:len(l.path)-1]
	l.state[f] = done
}

// breakCycle unloads the innermost reference on the path back to f. Every
// cycle passes through at least one reference.
func (l *loader) breakCycle(f Filter) {
	for i := len(l.path) - 1; i >= 0; i-- {
		if ref, ok := l.path[i].(*RefFilter); ok {
			ref.unload()
			l.errs = append(l.errs, &diag.Error{
				Kind:     diag.UnresolvedReference,
				Element:  "filter",
				Property: "id",
				Loc:      ref.Loc,
				Msg:      fmt.Sprintf("%q closes a reference cycle", ref.ID),
				Cause:    ErrCycle,
			})
			return
		}
		if l.path[i] == f {
			break
		}
	}
	l.errs = append(l.errs, ErrCycle)
}

// hasLateBound reports whether f or anything below it is late-bound.
func hasLateBound(f Filter) bool {
	if _, ok := f.(LateBound); ok {
		return true
	}
	if p, ok := f.(Parent); ok {
		for _, child := range p.Children() {
			if hasLateBound(child) {
				return true
			}
		}
	}
	return false
}
