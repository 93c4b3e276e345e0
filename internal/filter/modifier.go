package filter

// NotFilter swaps Allow and Deny and passes Abstain through.
type NotFilter struct {
	Child Filter
}

// Not returns the negation of child.
func Not(child Filter) *NotFilter { return &NotFilter{Child: child} }

func (f *NotFilter) Evaluate(objs ...Object) State {
	switch f.Child.Evaluate(objs...) {
	case Allow:
		return Deny
	case Deny:
		return Allow
	}
	return Abstain
}

// Children implements Parent.
func (f *NotFilter) Children() []Filter { return []Filter{f.Child} }

// AllowFilter only ever allows: a child Deny becomes Abstain.
type AllowFilter struct {
	Child Filter
}

// AllowOnly keeps child's allows and drops its denies.
func AllowOnly(child Filter) *AllowFilter { return &AllowFilter{Child: child} }

func (f *AllowFilter) Evaluate(objs ...Object) State {
	if s := f.Child.Evaluate(objs...); s != Deny {
		return s
	}
	return Abstain
}

func (f *AllowFilter) Children() []Filter { return []Filter{f.Child} }

// DenyFilter only ever denies: a child Allow becomes Abstain.
type DenyFilter struct {
	Child Filter
}

// DenyOnly keeps child's denies and drops its allows.
func DenyOnly(child Filter) *DenyFilter { return &DenyFilter{Child: child} }

func (f *DenyFilter) Evaluate(objs ...Object) State {
	if s := f.Child.Evaluate(objs...); s != Allow {
		return s
	}
	return Abstain
}

func (f *DenyFilter) Children() []Filter { return []Filter{f.Child} }

// Mapping is an explicit remap of every verdict, indexed by State.
type Mapping [len(States)]State

// Identity leaves every verdict unchanged.
var Identity = Mapping{Abstain: Abstain, Allow: Allow, Deny: Deny}

// TransformFilter remaps its child's verdict through a Mapping. When the child
// subtree holds late-bound filters the transform is late-bound too and
// abstains until loaded.
type TransformFilter struct {
	Child   Filter
	Mapping Mapping

	lateBound bool
	loaded    bool
}

// Transform builds a transform. Missing entries in m keep Identity.
func Transform(child Filter, m map[State]State) *TransformFilter {
	mapping := Identity
	for from, to := range m {
		mapping[from] = to
	}
	return &TransformFilter{Child: child, Mapping: mapping, lateBound: hasLateBound(child)}
}

func (f *TransformFilter) Evaluate(objs ...Object) State {
	if f.lateBound && !f.loaded {
		return Abstain
	}
	return f.Mapping[f.Child.Evaluate(objs...)]
}

func (f *TransformFilter) Children() []Filter { return []Filter{f.Child} }

// Load implements LateBound.
func (f *TransformFilter) Load(Resolver) error {
	f.loaded = true
	return nil
}

// Loaded implements LateBound.
func (f *TransformFilter) Loaded() bool { return f.loaded || !f.lateBound }
