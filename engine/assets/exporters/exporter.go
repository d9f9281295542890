// Package exporters holds the domain exporters. Each one discovers its
// sources under src/<type>, reads them defensively and writes one binary
// resource per entry.
package exporters

import (
	"fmt"

	"github.com/spaghettifunk/rlres/engine/assets"
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/math"
	"github.com/spaghettifunk/rlres/engine/metadata"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/safejson"
)

// base carries what every exporter shares: its identity, the logger and
// the discovery rules.
type base struct {
	name      string
	types     []resources.TypeName
	deps      []resources.TypeName
	discovery assets.Discovery

	log *core.Logger
	p   *safejson.Parser
}

func newBase(log *core.Logger, name string, types, deps []resources.TypeName, patterns []string) base {
	return base{
		name:      name,
		types:     types,
		deps:      deps,
		discovery: assets.Discovery{Patterns: patterns},
		log:       log,
		p:         safejson.NewParser(log),
	}
}

func (b *base) Name() string                    { return b.name }
func (b *base) TypeNames() []resources.TypeName { return b.types }
func (b *base) DependsOn() []resources.TypeName { return b.deps }

func (b *base) Discover(srcRoot string, builder *resources.IndexBuilder) error {
	return assets.DiscoverEntries(b.log, b.name, srcRoot, b.types, b.discovery, builder)
}

// loadDocument reads a JSON or YAML source. An unreadable, unparseable or
// empty document fails the entry.
func (b *base) loadDocument(e *resources.Entry, what string) (safejson.Object, error) {
	data := safejson.LoadObject(b.log, e.SrcPath)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s %q from %s", core.ErrInvalidDocument, what, e.Name, e.SrcPath)
	}
	return data, nil
}

func (b *base) write(outDir string, e *resources.Entry, r metadata.Resource) error {
	path := metadata.ResFilepath(outDir, e.RID)
	if err := metadata.WriteFile(path, r, b.log); err != nil {
		return fmt.Errorf("writing %s to %s: %w", e.NID, path, err)
	}
	b.log.Debug("%s: wrote %s -> %s", b.name, e.NID, path)
	return nil
}

// RIDFromKey resolves a plain resource name stored under key to the RID of
// a resource of type t. A missing or empty name yields the invalid id, with
// a warning unless silent is set.
func RIDFromKey(p *safejson.Parser, idx *resources.Index, data safejson.Object, t resources.TypeName, key string, silent bool) resources.ResourceID {
	name := p.String(data, key, "", safejson.Optional)
	if name == "" {
		if !silent {
			p.Log().Warn("rid_from_key: RID requested from missing or empty JSON key %q for type %s; using INVALID_RESOURCE_ID", key, t)
		}
		return resources.InvalidResourceID
	}
	return idx.GetRID(t, name)
}

// numbers reads a mandatory numeric list that must hold len(def) elements.
// A missing or mistyped list falls back to def.
func numbers(p *safejson.Parser, obj safejson.Object, key string, def ...float64) ([]float64, bool) {
	raw := p.List(obj, key, nil)
	if raw == nil {
		return def, true
	}
	if len(raw) != len(def) {
		return nil, false
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		f, ok := safejson.AsFloat(v)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// sprite reads the rect/source_size/offset/offset_flipped quadruple shared
// by atlas sprites and animation frames.
func sprite(p *safejson.Parser, obj safejson.Object) (metadata.Sprite, bool) {
	rect, ok1 := numbers(p, obj, "rect", 0, 0, 0, 0)
	size, ok2 := numbers(p, obj, "source_size", 0, 0)
	off, ok3 := numbers(p, obj, "offset", 0, 0)
	flip, ok4 := numbers(p, obj, "offset_flipped", 0, 0)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return metadata.Sprite{}, false
	}
	return metadata.Sprite{
		Rect:          math.Rect{X: int(rect[0]), Y: int(rect[1]), W: int(rect[2]), H: int(rect[3])},
		Offset:        math.NewVec2(float32(off[0]), float32(off[1])),
		OffsetFlipped: math.NewVec2(float32(flip[0]), float32(flip[1])),
		SourceSize:    math.Size{W: int(size[0]), H: int(size[1])},
	}, true
}

// flagNames adapts an enum table to the safejson flag reader.
func flagNames[V ~uint32](log *core.Logger, lookup func(*core.Logger, string) V) func(string) uint32 {
	return func(name string) uint32 {
		return uint32(lookup(log, name))
	}
}

// All returns every exporter in registration order.
func All(log *core.Logger) []assets.Exporter {
	return []assets.Exporter{
		NewAbilityExporter(log),
		NewAnimExporter(log),
		NewAtlasExporter(log),
		NewCharArchetypeExporter(log),
		NewColliderProfileExporter(log),
		NewMaterialExporter(log),
		NewSoundBankExporter(log),
		NewSoundExporter(log),
		NewTextureExporter(log),
		NewFontExporter(log),
	}
}
