package safejson

import (
	"github.com/spaghettifunk/rlres/engine/core"
)

// Opt tweaks a lookup. Keys are mandatory unless Optional is given.
type Opt uint8

const (
	// Optional suppresses the warning for a missing key.
	Optional Opt = 1 << iota
	// AllowNull maps an explicit null to the default without a warning.
	AllowNull
)

func has(opts []Opt, o Opt) bool {
	for _, x := range opts {
		if x&o != 0 {
			return true
		}
	}
	return false
}

// Parser reads fields out of loosely typed documents. Every failure falls
// back to the caller's default and is reported to the sink.
type Parser struct {
	log *core.Logger
}

func NewParser(log *core.Logger) *Parser {
	return &Parser{log: log}
}

func (p *Parser) Log() *core.Logger {
	return p.log
}

// get returns the raw value and whether the caller should convert it.
func (p *Parser) get(obj any, key string, opts []Opt) (any, bool) {
	m, ok := AsObject(obj)
	if !ok {
		p.log.Warn("safe_json_get: called with non-mapping object %v for key %q; using default", obj, key)
		return nil, false
	}
	v, present := m[key]
	if !present {
		if !has(opts, Optional) {
			p.log.Warn("safe_json_get: mandatory key %q is missing; using default", key)
		}
		return nil, false
	}
	if v == nil && has(opts, AllowNull) {
		return nil, false
	}
	return v, true
}

func lookup[T any](p *Parser, obj any, key string, def T, want string, conv func(any) (T, bool), opts []Opt) (T, bool) {
	raw, ok := p.get(obj, key, opts)
	if !ok {
		return def, false
	}
	v, ok := conv(raw)
	if !ok {
		p.log.Warn("safe_json_get: unexpected type for key %q: got %s with value %v, expected %s; using default %v",
			key, TypeName(raw), raw, want, def)
		return def, false
	}
	return v, true
}

func (p *Parser) String(obj any, key string, def string, opts ...Opt) string {
	v, _ := lookup(p, obj, key, def, "str", AsString, opts)
	return v
}

func (p *Parser) Int(obj any, key string, def int, opts ...Opt) int {
	v, _ := lookup(p, obj, key, def, "int", AsInt, opts)
	return v
}

func (p *Parser) Float(obj any, key string, def float64, opts ...Opt) float64 {
	v, _ := lookup(p, obj, key, def, "number", AsFloat, opts)
	return v
}

func (p *Parser) Bool(obj any, key string, def bool, opts ...Opt) bool {
	v, _ := lookup(p, obj, key, def, "bool", AsBool, opts)
	return v
}

// LookupString is String with a "no usable value" result instead of a default.
func (p *Parser) LookupString(obj any, key string, opts ...Opt) (string, bool) {
	return lookup(p, obj, key, "", "str", AsString, opts)
}

// LookupInt is Int with a "no usable value" result instead of a default.
func (p *Parser) LookupInt(obj any, key string, opts ...Opt) (int, bool) {
	return lookup(p, obj, key, 0, "int", AsInt, opts)
}

// LookupFloat is Float with a "no usable value" result instead of a default.
func (p *Parser) LookupFloat(obj any, key string, opts ...Opt) (float64, bool) {
	return lookup(p, obj, key, 0, "number", AsFloat, opts)
}

// Object never returns nil.
func (p *Parser) Object(obj any, key string, opts ...Opt) Object {
	v, _ := lookup(p, obj, key, Object{}, "object", AsObject, opts)
	if v == nil {
		return Object{}
	}
	return v
}

func (p *Parser) List(obj any, key string, def []any, opts ...Opt) []any {
	v, _ := lookup(p, obj, key, def, "list", AsList, opts)
	return v
}

// Value returns the raw value when present (and not a permitted null).
func (p *Parser) Value(obj any, key string, opts ...Opt) (any, bool) {
	return p.get(obj, key, opts)
}

// Flags reads a bit set given either as a number or as a list of names.
// The key is optional. Unknown names contribute nothing.
func (p *Parser) Flags(obj any, key string, nameToFlag func(string) uint32, def uint32, opts ...Opt) uint32 {
	raw, ok := p.get(obj, key, append([]Opt{Optional}, opts...))
	if !ok {
		return def
	}
	if f, ok := AsFloat(raw); ok {
		return uint32(int64(f))
	}
	items, ok := AsList(raw)
	if !ok {
		p.log.Warn("safe_json_get_flags: value for key %q has invalid type %s; using default %d", key, TypeName(raw), def)
		return def
	}
	var flags uint32
	for _, item := range items {
		name, ok := AsString(item)
		if !ok {
			p.log.Warn("safe_json_get_flags: flag list for %q contains non-string %v; skipping", key, item)
			continue
		}
		flags |= nameToFlag(name)
	}
	return flags
}

// Vec2 reads an optional two-element numeric list.
func (p *Parser) Vec2(obj any, key string, def [2]float64) [2]float64 {
	raw, ok := lookup(p, obj, key, []any(nil), "list", AsList, []Opt{Optional})
	if !ok {
		return def
	}
	if len(raw) != 2 {
		p.log.Warn("json_vec2: %q is not a 2-element list; using %v", key, def)
		return def
	}
	x, okx := AsFloat(raw[0])
	y, oky := AsFloat(raw[1])
	if !okx || !oky {
		p.log.Warn("json_vec2: %q has invalid values %v; using %v", key, raw, def)
		return def
	}
	return [2]float64{x, y}
}
