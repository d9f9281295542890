package exporters

import (
	"github.com/spaghettifunk/rlres/engine/assets"
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/metadata"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/safejson"
)

type AtlasExporter struct {
	base
}

func NewAtlasExporter(log *core.Logger) *AtlasExporter {
	return &AtlasExporter{newBase(log, "atlas",
		[]resources.TypeName{resources.TypeAtlas},
		[]resources.TypeName{resources.TypeTexture},
		assets.JSONPatterns)}
}

func (x *AtlasExporter) BuildOne(e *resources.Entry, _ string, outDir string, idx *resources.Index) error {
	data, err := x.loadDocument(e, "atlas")
	if err != nil {
		return err
	}

	atlas := &metadata.Atlas{
		RID: e.RID,
		Tex: RIDFromKey(x.p, idx, data, resources.TypeTexture, "texture", false),
	}

	raw := x.p.List(data, "sprites", nil, safejson.Optional)
	if len(raw) == 0 {
		x.log.Warn("%s: atlas JSON for %q has no 'sprites' field or it is empty; producing an empty atlas", x.name, e.NID)
	}
	for _, item := range raw {
		obj, ok := safejson.AsObject(item)
		if !ok {
			x.log.Warn("%s: atlas sprite entry is not a mapping; skipping. Raw=%v", x.name, item)
			continue
		}
		name := x.p.String(obj, "name", "")
		s, ok := sprite(x.p, obj)
		if name == "" || !ok {
			x.log.Warn("%s: atlas sprite entry has invalid name/rect/source_size/offset; skipping. Raw=%v", x.name, obj)
			continue
		}
		atlas.Sprites = append(atlas.Sprites, metadata.AtlasSprite{Name: name, Sprite: s})
	}

	return x.write(outDir, e, atlas)
}
