// Package filter implements the tri-state rule predicates evaluated against
// game event context objects.
package filter

import "fmt"

// State is the verdict of a filter.
type State int

const (
	// Abstain means the filter expresses no opinion. It is the zero value.
	Abstain State = iota
	// Allow means the action is permitted.
	Allow
	// Deny means the action is forbidden.
	Deny
)

// States lists every verdict, in declaration order.
var States = [...]State{Abstain, Allow, Deny}

func (s State) String() string {
	switch s {
	case Abstain:
		return "abstain"
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// HasResult reports whether s is Allow or Deny.
func (s State) HasResult() bool {
	return s == Allow || s == Deny
}

// Bool projects a decided state onto a boolean. Calling it on Abstain is a
// programming error and panics; check HasResult first.
func (s State) Bool() bool {
	switch s {
	case Allow:
		return true
	case Deny:
		return false
	}
	panic(fmt.Sprintf("filter: Bool called on %s", s))
}

// FromBool maps true to Allow and false to Deny.
func FromBool(b bool) State {
	if b {
		return Allow
	}
	return Deny
}

// ParseState parses "allow", "abstain" or "deny".
func ParseState(s string) (State, error) {
	switch s {
	case "allow":
		return Allow, nil
	case "abstain":
		return Abstain, nil
	case "deny":
		return Deny, nil
	}
	return Abstain, fmt.Errorf("unknown filter state %q (valid: allow, abstain, deny)", s)
}
