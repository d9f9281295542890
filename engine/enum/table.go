package enum

import (
	"strings"

	"github.com/spaghettifunk/rlres/engine/core"
)

// Pair binds a stable lowercase name to a value.
type Pair[V comparable] struct {
	Name  string
	Value V
}

// Table is a closed bidirectional mapping between names and values with a
// typed fallback. Lookups by name are case-insensitive.
type Table[V comparable] struct {
	kind     string
	fallback Pair[V]
	byName   map[string]V
	byValue  map[V]string
	order    []Pair[V]
}

// New builds a table. fallback is returned, with a warning, for anything
// the table does not know.
func New[V comparable](kind string, fallback Pair[V], pairs ...Pair[V]) *Table[V] {
	t := &Table[V]{
		kind:     kind,
		fallback: fallback,
		byName:   make(map[string]V, len(pairs)),
		byValue:  make(map[V]string, len(pairs)),
		order:    make([]Pair[V], 0, len(pairs)),
	}
	for _, p := range pairs {
		name := strings.ToLower(p.Name)
		if _, dup := t.byName[name]; dup {
			panic("enum: duplicate name " + name + " in " + kind)
		}
		if _, dup := t.byValue[p.Value]; dup {
			panic("enum: duplicate value for " + name + " in " + kind)
		}
		t.byName[name] = p.Value
		t.byValue[p.Value] = name
		t.order = append(t.order, Pair[V]{Name: name, Value: p.Value})
	}
	return t
}

func (t *Table[V]) Kind() string {
	return t.kind
}

// Fallback returns the unknown sentinel of the table.
func (t *Table[V]) Fallback() V {
	return t.fallback.Value
}

// Lookup resolves a name without logging.
func (t *Table[V]) Lookup(name string) (V, bool) {
	v, ok := t.byName[strings.ToLower(name)]
	return v, ok
}

// Value resolves a name, falling back with a warning.
func (t *Table[V]) Value(log *core.Logger, name string) V {
	if v, ok := t.Lookup(name); ok {
		return v
	}
	log.Warn("Unknown %s string %q; using %s", t.kind, name, t.fallback.Name)
	return t.fallback.Value
}

// Name resolves a value, falling back with a warning.
func (t *Table[V]) Name(log *core.Logger, v V) string {
	if name, ok := t.byValue[v]; ok {
		return name
	}
	log.Warn("%s %v has no name mapping; using %s", t.kind, v, t.fallback.Name)
	return t.fallback.Name
}

// Pairs returns the entries in declaration order.
func (t *Table[V]) Pairs() []Pair[V] {
	out := make([]Pair[V], len(t.order))
	copy(out, t.order)
	return out
}
