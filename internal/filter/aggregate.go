package filter

import (
	"fmt"
	"math"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/diag"
)

// AllFilter denies as soon as a child denies; otherwise it allows if any
// child allowed. Abstaining children are transparent.
type AllFilter struct {
	Filters []Filter
}

// All returns a filter over children in order.
func All(children ...Filter) *AllFilter { return &AllFilter{Filters: children} }

func (f *AllFilter) Evaluate(objs ...Object) State {
	result := Abstain
	for _, child := range f.Filters {
		switch child.Evaluate(objs...) {
		case Deny:
			return Deny
		case Allow:
			result = Allow
		}
	}
	return result
}

// Children implements Parent.
func (f *AllFilter) Children() []Filter { return f.Filters }

// AnyFilter allows as soon as a child allows; it denies only when every
// child denied. Mixed abstain and deny, or no children, abstains.
type AnyFilter struct {
	Filters []Filter
}

// Any returns a filter over children in order.
func Any(children ...Filter) *AnyFilter { return &AnyFilter{Filters: children} }

func (f *AnyFilter) Evaluate(objs ...Object) State {
	if len(f.Filters) == 0 {
		return Abstain
	}
	allDenied := true
	for _, child := range f.Filters {
		switch child.Evaluate(objs...) {
		case Allow:
			return Allow
		case Abstain:
			allDenied = false
		}
	}
	if allDenied {
		return Deny
	}
	return Abstain
}

func (f *AnyFilter) Children() []Filter { return f.Filters }

// OneFilter allows when exactly one child allows. A second allow denies, as
// does every child denying.
type OneFilter struct {
	Filters []Filter
}

// One returns a filter over children in order.
func One(children ...Filter) *OneFilter { return &OneFilter{Filters: children} }

func (f *OneFilter) Evaluate(objs ...Object) State {
	if len(f.Filters) == 0 {
		return Abstain
	}
	found := false
	allDenied := true
	for _, child := range f.Filters {
		switch child.Evaluate(objs...) {
		case Allow:
			if found {
				return Deny
			}
			found = true
			allDenied = false
		case Abstain:
			allDenied = false
		}
	}
	switch {
	case found:
		return Allow
	case allDenied:
		return Deny
	}
	return Abstain
}

func (f *OneFilter) Children() []Filter { return f.Filters }

// Unlimited is the RangeFilter max meaning "no upper bound".
const Unlimited = math.MaxInt

// RangeFilter allows when the number of allowing children falls in
// [Min, Max]. Children are evaluated in order and evaluation stops once the
// verdict can no longer change. It is late-bound: before Load it abstains.
type RangeFilter struct {
	Filters  []Filter
	Min, Max int
	Loc      diag.Loc

	loaded bool
}

// Range returns a filter allowing when between min and max children allow.
// Use Unlimited for an open maximum.
func Range(min, max int, children ...Filter) *RangeFilter {
	return &RangeFilter{Filters: children, Min: min, Max: max}
}

// Evaluate stops at the first child after which the verdict is settled.
func (f *RangeFilter) Evaluate(objs ...Object) State {
	if !f.loaded {
		return Abstain
	}
	allows := 0
	total := len(f.Filters)
	for i, child := range f.Filters {
		if child.Evaluate(objs...) == Allow {
			allows++
		}
		remaining := total - (i + 1)
		if allows+remaining < f.Min {
			// min is out of reach
			return Deny
		}
		if allows > f.Max {
			return Deny
		}
		if allows >= f.Min && allows+remaining <= f.Max {
			return Allow
		}
	}
	if allows >= f.Min {
		return Allow
	}
	return Abstain
}

func (f *RangeFilter) Children() []Filter { return f.Filters }

// Load implements LateBound. It rejects an empty or inverted range.
func (f *RangeFilter) Load(Resolver) error {
	if f.Min < 0 || f.Max < f.Min {
		return diag.Invalid("range", "max", f.Loc, fmt.Errorf("range [%d, %d] is empty", f.Min, f.Max))
	}
	f.loaded = true
	return nil
}

// Loaded implements LateBound.
func (f *RangeFilter) Loaded() bool { return f.loaded }
