package filter

// Filter is a tri-state predicate over event context objects. Evaluate never
// fails, blocks or mutates the filter.
type Filter interface {
	Evaluate(objs ...Object) State
}

// Parent is implemented by filters that wrap other filters. The load pass
// walks the tree through it.
type Parent interface {
	Children() []Filter
}

// StaticFilter always returns the same verdict.
type StaticFilter struct {
	state State
}

// Shared static filters. They carry no match state and may be used anywhere.
var (
	Always    = &StaticFilter{state: Allow}
	Never     = &StaticFilter{state: Deny}
	Undecided = &StaticFilter{state: Abstain}
)

// Static returns the shared filter for s.
func Static(s State) *StaticFilter {
	switch s {
	case Allow:
		return Always
	case Deny:
		return Never
	}
	return Undecided
}

// Evaluate implements Filter.
func (f *StaticFilter) Evaluate(...Object) State {
	return f.state
}
