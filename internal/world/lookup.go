package world

import (
	"fmt"
	"sort"
	"strings"
)

// table maps configuration spellings of an enum to its values. Keys are
// normalised so "Red Wool", "red-wool" and "RED_WOOL" all resolve alike.
type table[T comparable] struct {
	kind   string
	byName map[string]T
	names  []string
}

func newTable[T comparable](kind string, entries map[string]T) *table[T] {
	t := &table[T]{kind: kind, byName: make(map[string]T, len(entries))}
	for name, v := range entries {
		t.byName[normalizeName(name)] = v
		t.names = append(t.names, name)
	}
	sort.Strings(t.names)
	return t
}

func (t *table[T]) parse(s string) (T, error) {
	if v, ok := t.byName[normalizeName(s)]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q", t.kind, s)
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
