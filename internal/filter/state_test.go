package filter

import "testing"

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Allow, "allow"},
		{Abstain, "abstain"},
		{Deny, "deny"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.state), got, tt.want)
		}
		parsed, err := ParseState(tt.want)
		if err != nil {
			t.Fatalf("Failed to parse %q: %v", tt.want, err)
		}
		if parsed != tt.state {
			t.Errorf("ParseState(%q) = %v, want %v", tt.want, parsed, tt.state)
		}
	}
	if _, err := ParseState("maybe"); err == nil {
		t.Error("ParseState(maybe) should fail")
	}
}

func TestStateResult(t *testing.T) {
	if Abstain.HasResult() {
		t.Error("Abstain.HasResult() = true")
	}
	if !Allow.HasResult() || !Deny.HasResult() {
		t.Error("Allow and Deny must have a result")
	}
	if !Allow.Bool() || Deny.Bool() {
		t.Error("Bool() mismatch")
	}
	if FromBool(true) != Allow || FromBool(false) != Deny {
		t.Error("FromBool() mismatch")
	}
	var zero State
	if zero != Abstain {
		t.Errorf("zero State = %v, want abstain", zero)
	}
}

func TestStateBoolPanicsOnAbstain(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Abstain.Bool() did not panic")
		}
	}()
	Abstain.Bool()
}

func TestStaticFilters(t *testing.T) {
	for _, s := range States {
		if got := Static(s).Evaluate(); got != s {
			t.Errorf("Static(%v).Evaluate() = %v", s, got)
		}
	}
	if Always.Evaluate() != Allow || Never.Evaluate() != Deny || Undecided.Evaluate() != Abstain {
		t.Error("shared static filters return the wrong verdict")
	}
}
