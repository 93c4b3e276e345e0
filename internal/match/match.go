// Package match owns the per-match state the rule engine evaluates against:
// the id registry, teams, objectives, applied rule sets and diagnostics.
package match

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/applied"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/diag"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/filter"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/ids"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/logger"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/region"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

var log = logger.New("match")

// ErrEnded is returned when a match is used after End.
var ErrEnded = errors.New("match has ended")

// Options configures a new match.
type Options struct {
	// ID names the match in logs and metrics.
	ID string
	// World answers block queries for void filters. Nil means an empty world.
	World world.BlockSource
	// Seed drives random filters and spawn points. 0 seeds from the clock.
	Seed uint64
	// CaseSensitiveIDs disables the case-insensitive lookup tiers.
	CaseSensitiveIDs bool
	// Fatal lists the diagnostic kinds that fail Load.
	Fatal []diag.Kind
}

// Match is one play session. Everything built for it is discarded by End.
// A Match is not safe for concurrent use.
type Match struct {
	ID       string
	World    world.BlockSource
	Registry *ids.Registry
	Diag     *diag.List
	Rand     *rand.Rand
	Metrics  *metrics.Set

	teams         []*world.Team
	objectives    []*Objective
	roots         []filter.Filter
	applied       map[applied.Type]*applied.Set
	caseSensitive bool
	loaded        bool
	ended         bool
	log           *logger.Logger
}

// New creates an empty match.
func New(opts Options) *Match {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	w := opts.World
	if w == nil {
		w = world.BlockMap{}
	}
	id := opts.ID
	if id == "" {
		id = "match"
	}
	return &Match{
		ID:            id,
		World:         w,
		Registry:      ids.New(),
		Diag:          diag.NewList(opts.Fatal...),
		Rand:          rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Metrics:       metrics.NewSet(),
		applied:       make(map[applied.Type]*applied.Set),
		caseSensitive: opts.CaseSensitiveIDs,
		log:           log.With(id),
	}
}

// Register stores obj under id in the registry. Filters registered here are
// late-bound roots for Load.
func (m *Match) Register(id string, obj any, force bool) (string, bool) {
	stored, ok := m.Registry.Add(id, obj, force)
	if ok {
		if f, isFilter := obj.(filter.Filter); isFilter {
			m.roots = append(m.roots, f)
		}
	}
	return stored, ok
}

// AddRoot marks an anonymous filter for the load pass.
func (m *Match) AddRoot(f filter.Filter) {
	if f != nil {
		m.roots = append(m.roots, f)
	}
}

// AddTeam registers a team under its id.
func (m *Match) AddTeam(t *world.Team) error {
	if _, ok := m.Registry.Add(t.ID, t, false); !ok {
		return fmt.Errorf("team id %q already in use", t.ID)
	}
	m.teams = append(m.teams, t)
	return nil
}

// Teams returns the teams in declaration order.
func (m *Match) Teams() []*world.Team { return m.teams }

// AddObjective registers an objective under its id.
func (m *Match) AddObjective(o *Objective) error {
	if _, ok := m.Registry.Add(o.ID(), o, false); !ok {
		return fmt.Errorf("objective id %q already in use", o.ID())
	}
	m.objectives = append(m.objectives, o)
	return nil
}

// Objectives returns the objectives in declaration order.
func (m *Match) Objectives() []*Objective { return m.objectives }

// Team looks up a team by id.
func (m *Match) Team(id string) (*world.Team, bool) {
	return ids.Get[*world.Team](m.Registry, id, m.caseSensitive)
}

// Filter looks up a registered filter by id.
func (m *Match) Filter(id string) (filter.Filter, bool) {
	return ids.Get[filter.Filter](m.Registry, id, m.caseSensitive)
}

// Region looks up a registered region by id.
func (m *Match) Region(id string) (region.Region, bool) {
	return ids.Get[region.Region](m.Registry, id, m.caseSensitive)
}

// Kit looks up a registered kit by id.
func (m *Match) Kit(id string) (applied.Kit, bool) {
	return ids.Get[applied.Kit](m.Registry, id, m.caseSensitive)
}

// ResolveFilter implements filter.Resolver.
func (m *Match) ResolveFilter(id string) (filter.Filter, bool) { return m.Filter(id) }

// ResolveObjective implements filter.Resolver.
func (m *Match) ResolveObjective(id string) (filter.Objective, bool) {
	return ids.Get[filter.Objective](m.Registry, id, m.caseSensitive)
}

// Applied returns the rule set of type t, creating it on first use.
func (m *Match) Applied(t applied.Type) *applied.Set {
	s, ok := m.applied[t]
	if !ok {
		s = applied.NewSet(m.ID, t, m.Metrics)
		m.applied[t] = s
	}
	return s
}

// AppliedSet returns the rule set of type t without creating it.
func (m *Match) AppliedSet(t applied.Type) (*applied.Set, bool) {
	s, ok := m.applied[t]
	return s, ok
}

// AddRule appends r to the set of its type and marks its filter for loading.
func (m *Match) AddRule(r *applied.Rule) {
	m.Applied(r.Type).Add(r)
	m.AddRoot(r)
}

// Load runs the late-binding pass over every registered filter and rule.
// Failures are recorded in Diag; Load returns an error only when one of
// them is fatal. Calling Load again is a no-op.
func (m *Match) Load() error {
	if m.ended {
		return ErrEnded
	}
	if m.loaded {
		return nil
	}
	m.loaded = true
	m.Diag.AddAll(filter.Load(m.roots, m))

	for _, e := range m.Diag.Errors() {
		if e.Fatal {
			m.log.Error("%v", e)
		} else {
			m.log.Warn("%v", e)
		}
	}
	m.log.Info("loaded %d ids, %d rules, %d diagnostics", m.Registry.Len(), m.ruleCount(), m.Diag.Len())

	if fatal := m.Diag.Fatal(); len(fatal) > 0 {
		errs := make([]error, len(fatal))
		for i, e := range fatal {
			errs[i] = e
		}
		return fmt.Errorf("match %s failed to load: %w", m.ID, errors.Join(errs...))
	}
	return nil
}

// Loaded reports whether Load has run.
func (m *Match) Loaded() bool { return m.loaded }

// WriteMetrics writes the verdict counters in Prometheus text format.
func (m *Match) WriteMetrics(w io.Writer) {
	m.Metrics.WritePrometheus(w)
}

// End discards everything the match built.
func (m *Match) End() {
	if m.ended {
		return
	}
	m.ended = true
	m.Registry.Clear()
	m.Metrics.UnregisterAllMetrics()
	m.roots = nil
	clear(m.applied)
	m.teams = nil
	m.objectives = nil
	m.log.Debug("ended")
}

func (m *Match) ruleCount() int {
	n := 0
	for _, s := range m.applied {
		n += s.Len()
	}
	return n
}
