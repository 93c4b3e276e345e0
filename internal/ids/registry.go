// Package ids holds the per-match registry of named rule objects.
//
// Map documents give filters, regions, kits and teams an id so that other
// rules can refer to them. Lookups are forgiving: an id resolves by exact
// match, then ignoring case, then by prefix, then ignoring separators, so
// "Red Team" answers to "red team", "red" and "red-team".
package ids

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/logger"
)

var log = logger.New("ids")

// Registry maps ids to objects for a single match. It is not safe for
// concurrent use; a match is driven from one goroutine.
type Registry struct {
	entries map[string]any
	order   []string
	fold    cases.Caser
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]any),
		fold:    cases.Fold(),
	}
}

// Add registers obj under id. A taken or empty id is rejected without effect
// unless force is set, in which case obj is stored under a freshly generated
// id. Add returns the id obj was stored under and whether it was stored.
func (r *Registry) Add(id string, obj any, force bool) (string, bool) {
	if id == "" {
		if !force {
			return "", false
		}
		id = uuid.NewString()
	} else if _, taken := r.entries[id]; taken {
		if !force {
			log.Debug("id %q already registered", id)
			return id, false
		}
		fresh := uuid.NewString()
		log.Debug("id %q already registered, storing as %s", id, fresh)
		id = fresh
	}
	r.entries[id] = obj
	r.order = append(r.order, id)
	log.Trace("registered %q (%T)", id, obj)
	return id, true
}

// Remove deletes id. It reports whether it was present.
func (r *Registry) Remove(id string) bool {
	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	for i, k := range r.order {
		if k == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear empties the registry when its match ends.
func (r *Registry) Clear() {
	clear(r.entries)
	r.order = r.order[:0]
}

// Len returns the number of entries.
func (r *Registry) Len() int { return len(r.order) }

// IDs returns every id in insertion order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Get looks up an object of type T. The tiers are tried in order, each over
// entries of type T in insertion order:
//
//  1. exact id
//  2. case-insensitive id (skipped when caseSensitive)
//  3. id prefix
//  4. id with spaces, hyphens and underscores removed
//
// With caseSensitive set the prefix and separator tiers also respect case.
// A miss returns the zero T and false.
func Get[T any](r *Registry, id string, caseSensitive bool) (T, bool) {
	var zero T
	if r == nil {
		return zero, false
	}
	if v, ok := r.entries[id].(T); ok {
		return v, true
	}
	if id == "" {
		return zero, false
	}

	key := id
	if !caseSensitive {
		key = r.casefold(id)
		if v, ok := find[T](r, func(k string) bool { return r.casefold(k) == key }); ok {
			return v, true
		}
	}
	prepare := func(k string) string {
		if caseSensitive {
			return k
		}
		return r.casefold(k)
	}
	if v, ok := find[T](r, func(k string) bool { return strings.HasPrefix(prepare(k), key) }); ok {
		return v, true
	}
	flat := stripSeparators(key)
	return find[T](r, func(k string) bool { return stripSeparators(prepare(k)) == flat })
}

// List returns every object of type T in insertion order.
func List[T any](r *Registry) []T {
	var out []T
	for _, k := range r.order {
		if v, ok := r.entries[k].(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Map returns every object of type T keyed by id.
func Map[T any](r *Registry) map[string]T {
	out := make(map[string]T)
	for k, obj := range r.entries {
		if v, ok := obj.(T); ok {
			out[k] = v
		}
	}
	return out
}

func find[T any](r *Registry, match func(k string) bool) (T, bool) {
	for _, k := range r.order {
		v, ok := r.entries[k].(T)
		if ok && match(k) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// casefold folds case and applies NFKC so that visually equal ids compare
// equal.
func (r *Registry) casefold(s string) string {
	return r.fold.String(norm.NFKC.String(s))
}

func stripSeparators(s string) string {
	return strings.Map(func(c rune) rune {
		if c == '-' || c == '_' || unicode.IsSpace(c) {
			return -1
		}
		return c
	}, s)
}
