// Package diag collects configuration-time errors raised while building
// filter and region trees for a match.
package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a configuration error.
type Kind int

const (
	// MissingProperty means a required attribute, text or child was absent.
	MissingProperty Kind = iota + 1
	// InvalidProperty means a value failed to parse against its grammar.
	InvalidProperty
	// MissingChild means a combinator had no children.
	MissingChild
	// UnresolvedReference means an id did not resolve in the registry.
	UnresolvedReference
)

var kindNames = map[Kind]string{
	MissingProperty:     "missing-property",
	InvalidProperty:     "invalid-property",
	MissingChild:        "missing-child",
	UnresolvedReference: "unresolved-reference",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses the names used in configuration ("missing-property", ...).
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown error kind %q", s)
}

// Loc is a position in a map document.
type Loc struct {
	File   string `json:"file"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

func (l Loc) String() string {
	file := l.File
	if file == "" {
		file = "<inline>"
	}
	if l.Line == 0 {
		return file
	}
	return fmt.Sprintf("%s:%d:%d", file, l.Line, l.Column)
}

// Error is one configuration problem.
type Error struct {
	Kind     Kind
	Element  string // element kind, e.g. "range" or "cuboid"
	Property string // attribute name, empty when the element itself is at fault
	Loc      Loc
	Msg      string
	Fatal    bool
	// Cause is the underlying error, if any.
	Cause    error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Loc.String())
	sb.WriteString(": ")
	if e.Element != "" {
		sb.WriteString(e.Element)
		sb.WriteString(": ")
	}
	switch e.Kind {
	case MissingProperty:
		fmt.Fprintf(&sb, "missing property %q", e.Property)
	case InvalidProperty:
		if e.Property == "" {
			sb.WriteString("invalid element")
		} else {
			fmt.Fprintf(&sb, "invalid property %q", e.Property)
		}
	case MissingChild:
		sb.WriteString("at least one child is required")
	case UnresolvedReference:
		fmt.Fprintf(&sb, "unresolved reference in %q", e.Property)
	default:
		sb.WriteString(e.Kind.String())
	}
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Missing reports an absent required property.
func Missing(element, property string, loc Loc) *Error {
	return &Error{Kind: MissingProperty, Element: element, Property: property, Loc: loc}
}

// Invalid reports a property whose value failed to parse.
func Invalid(element, property string, loc Loc, cause error) *Error {
	e := &Error{Kind: InvalidProperty, Element: element, Property: property, Loc: loc, Cause: cause}
	if cause != nil {
		e.Msg = cause.Error()
	}
	return e
}

// NoChild reports a combinator without children.
func NoChild(element string, loc Loc) *Error {
	return &Error{Kind: MissingChild, Element: element, Loc: loc}
}

// Unresolved reports an id that is not registered.
func Unresolved(element, property, id string, loc Loc) *Error {
	return &Error{Kind: UnresolvedReference, Element: element, Property: property, Loc: loc,
		Msg: fmt.Sprintf("no such id %q", id)}
}

// List accumulates errors for one match load. Kinds named in the fatal set
// are flagged Fatal as they are added.
type List struct {
	errs  []*Error
	fatal map[Kind]bool
}

// NewList creates a collector treating the given kinds as fatal.
func NewList(fatal ...Kind) *List {
	l := &List{fatal: make(map[Kind]bool, len(fatal))}
	for _, k := range fatal {
		l.fatal[k] = true
	}
	return l
}

// Add records err. Errors that are not *Error are recorded as invalid
// properties of an unknown element. Nil is ignored.
func (l *List) Add(err error) {
	if err == nil {
		return
	}
	var e *Error
	if !errors.As(err, &e) {
		e = &Error{Kind: InvalidProperty, Msg: err.Error(), Cause: err}
	}
	if l.fatal[e.Kind] {
		e.Fatal = true
	}
	l.errs = append(l.errs, e)
}

// AddAll records every error joined into err.
func (l *List) AddAll(err error) {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range j.Unwrap() {
			l.AddAll(e)
		}
		return
	}
	l.Add(err)
}

// Errors returns the recorded errors in insertion order.
func (l *List) Errors() []*Error {
	return l.errs
}

// Len returns the number of recorded errors.
func (l *List) Len() int {
	return len(l.errs)
}

// Fatal returns the recorded fatal errors.
func (l *List) Fatal() []*Error {
	var out []*Error
	for _, e := range l.errs {
		if e.Fatal {
			out = append(out, e)
		}
	}
	return out
}

// HasFatal reports whether any recorded error is fatal.
func (l *List) HasFatal() bool {
	for _, e := range l.errs {
		if e.Fatal {
			return true
		}
	}
	return false
}

// Err joins every recorded error, or returns nil when there are none.
func (l *List) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	errs := make([]error, len(l.errs))
	for i, e := range l.errs {
		errs[i] = e
	}
	return errors.Join(errs...)
}
