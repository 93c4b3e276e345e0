package applied

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/filter"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/logger"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

var log = logger.New("applied")

// verdictMetric counts decisions per rule.
const verdictMetric = `cardinal_applied_verdicts_total{match=%q,type=%q,rule=%q,verdict=%q}`

// Set is the ordered list of rules of one type for a match. The first rule
// that contains the point and reaches a verdict decides.
type Set struct {
	Type  Type
	match string
	rules []*Rule
	stats *metrics.Set
}

// NewSet creates an empty set. Verdict counters are registered in stats,
// which may be nil to disable them.
func NewSet(match string, t Type, stats *metrics.Set) *Set {
	return &Set{Type: t, match: match, stats: stats}
}

// Add appends r. Rules are consulted in insertion order.
func (s *Set) Add(r *Rule) {
	s.rules = append(s.rules, r)
}

// Rules returns the rules in order.
func (s *Set) Rules() []*Rule { return s.rules }

// Len returns the number of rules.
func (s *Set) Len() int { return len(s.rules) }

// Check evaluates the rules containing point. It returns the first decided
// verdict and the rule that produced it, or Abstain and nil when no rule
// decides.
func (s *Set) Check(point world.Vector, objs ...filter.Object) (filter.State, *Rule) {
	for _, r := range s.rules {
		if !r.Contains(point) {
			continue
		}
		v := r.Evaluate(objs...)
		if !v.HasResult() {
			continue
		}
		s.record(r, v)
		log.Trace("%s %s at %v: %s", s.Type, r.ID, point, v)
		return v, r
	}
	return filter.Abstain, nil
}

// Matching returns every rule whose region contains point, in order.
func (s *Set) Matching(point world.Vector) []*Rule {
	var out []*Rule
	for _, r := range s.rules {
		if r.Contains(point) {
			out = append(out, r)
		}
	}
	return out
}

// Hits returns how often r decided with verdict v.
func (s *Set) Hits(r *Rule, v filter.State) uint64 {
	if s.stats == nil {
		return 0
	}
	return s.stats.GetOrCreateCounter(s.metricName(r, v)).Get()
}

func (s *Set) record(r *Rule, v filter.State) {
	if s.stats == nil {
		return
	}
	s.stats.GetOrCreateCounter(s.metricName(r, v)).Inc()
}

func (s *Set) metricName(r *Rule, v filter.State) string {
	return fmt.Sprintf(verdictMetric, s.match, s.Type, r.ID, v)
}
