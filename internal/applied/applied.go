// Package applied pairs regions with filters to form the rules a match
// enforces: where players may build, enter, receive kits and so on.
package applied

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/filter"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/region"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/world"
)

// Type is the class of game event an applied rule governs.
type Type string

const (
	TypeEnter      Type = "enter"
	TypeLeave      Type = "leave"
	TypeBlock      Type = "block"
	TypeBlockPlace Type = "block-place"
	TypeBlockBreak Type = "block-break"
	TypeUse        Type = "use"
	TypeKit        Type = "kit"
	TypeLendKit    Type = "lend-kit"
	TypeVelocity   Type = "velocity"
)

// Types lists every applied type in the order map documents usually
// declare them.
var Types = []Type{
	TypeEnter, TypeLeave, TypeBlock, TypeBlockPlace, TypeBlockBreak,
	TypeUse, TypeKit, TypeLendKit, TypeVelocity,
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

// ParseType parses an applied type name.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown applied type %q", s)
	}
	return t, nil
}

// Kit is something handed to a player on entering a region.
type Kit interface {
	Apply(p *world.Player)
}

// RemovableKit is a kit that is taken back when the player leaves.
type RemovableKit interface {
	Kit
	Remove(p *world.Player)
}

// Messenger delivers rule messages to players.
type Messenger interface {
	Send(p *world.Player, msg string)
}

// MessageFunc computes the message for a player at send time.
type MessageFunc func(r *Rule, p *world.Player) string

// Rule is an applied region: a region, the filter that governs it and an
// optional payload. Rules are built once per match and never mutated
// afterwards.
type Rule struct {
	ID     string
	Type   Type
	Region region.Region
	Filter filter.Filter

	// Message is shown to a player whose action the rule denied.
	Message string
	// MessageFunc, when set, replaces Message.
	MessageFunc MessageFunc
	// EarlyWarning asks callers to send the message on the event that
	// precedes a violation (block damage before block break).
	EarlyWarning bool
	// Velocity is applied to players entering a velocity region.
	Velocity *world.Vector

	kit       Kit
	removable RemovableKit
}

// Option configures a Rule.
type Option func(*Rule)

// WithMessage sets a fixed deny message.
func WithMessage(msg string) Option { return func(r *Rule) { r.Message = msg } }

// WithMessageFunc sets a computed deny message.
func WithMessageFunc(fn MessageFunc) Option { return func(r *Rule) { r.MessageFunc = fn } }

// WithEarlyWarning enables early warnings.
func WithEarlyWarning() Option { return func(r *Rule) { r.EarlyWarning = true } }

// WithVelocity sets the launch velocity.
func WithVelocity(v world.Vector) Option { return func(r *Rule) { r.Velocity = &v } }

// WithKit attaches a kit. A kit that also implements RemovableKit is taken
// back on leave only when removable is true.
func WithKit(k Kit, removable bool) Option {
	return func(r *Rule) {
		r.kit = k
		r.removable = nil
		if rk, ok := k.(RemovableKit); ok && removable {
			r.removable = rk
		}
	}
}

// New builds a rule. A nil filter means the rule never decides.
func New(id string, t Type, reg region.Region, f filter.Filter, opts ...Option) *Rule {
	if f == nil {
		f = filter.Undecided
	}
	r := &Rule{ID: id, Type: t, Region: reg, Filter: f}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Evaluate implements filter.Filter by delegating to the rule's filter.
func (r *Rule) Evaluate(objs ...filter.Object) filter.State {
	return r.Filter.Evaluate(objs...)
}

// Children exposes the filter to the load pass.
func (r *Rule) Children() []filter.Filter { return []filter.Filter{r.Filter} }

func (r *Rule) Contains(p world.Vector) bool            { return r.Region.Contains(p) }
func (r *Rule) Bounds() region.Bounds                   { return r.Region.Bounds() }
func (r *Rule) IsBounded() bool                         { return r.Region.IsBounded() }
func (r *Rule) IsRandomizable() bool                    { return r.Region.IsRandomizable() }
func (r *Rule) Blocks() []world.BlockPos                { return r.Region.Blocks() }
func (r *Rule) RandomPoint(rng *rand.Rand) world.Vector { return r.Region.RandomPoint(rng) }

// Kit returns the attached kit, if any.
func (r *Rule) Kit() (Kit, bool) { return r.kit, r.kit != nil }

// RemovableKit returns the kit to take back on leave, if any.
func (r *Rule) RemovableKit() (RemovableKit, bool) { return r.removable, r.removable != nil }

// MessageFor returns the message for p, or false when there is nothing to
// send.
func (r *Rule) MessageFor(p *world.Player) (string, bool) {
	if p == nil {
		return "", false
	}
	msg := r.Message
	if r.MessageFunc != nil {
		msg = r.MessageFunc(r, p)
	}
	return msg, msg != ""
}

// SendMessage delivers the rule's message to p. Without a message or a
// player it does nothing.
func (r *Rule) SendMessage(m Messenger, p *world.Player) {
	if m == nil {
		return
	}
	if msg, ok := r.MessageFor(p); ok {
		m.Send(p, msg)
	}
}

// TeamMessage varies the message by whether the player belongs to team:
// monuments tell their owners they may not touch them and tell everyone
// else which block goes there.
func TeamMessage(team, own, other string) MessageFunc {
	return func(_ *Rule, p *world.Player) string {
		if p.OnTeam(team) {
			return own
		}
		return other
	}
}
