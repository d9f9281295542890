package exporters

import (
	"github.com/spaghettifunk/rlres/engine/assets"
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/metadata"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/safejson"
)

type ColliderProfileExporter struct {
	base
}

func NewColliderProfileExporter(log *core.Logger) *ColliderProfileExporter {
	return &ColliderProfileExporter{newBase(log, "animcolprofile",
		[]resources.TypeName{resources.TypeColliderProfile},
		[]resources.TypeName{resources.TypeAnimSet},
		assets.JSONPatterns)}
}

func (x *ColliderProfileExporter) BuildOne(e *resources.Entry, _ string, outDir string, _ *resources.Index) error {
	data, err := x.loadDocument(e, "collider profile")
	if err != nil {
		return err
	}

	profile := &metadata.ColliderProfile{RID: e.RID}
	for _, item := range x.p.List(data, "per_anim", nil, safejson.Optional) {
		obj, ok := safejson.AsObject(item)
		if !ok {
			x.log.Warn("%s: collider profile %q has non-mapping per_anim entry; skipping. Raw=%v", x.name, e.Name, item)
			continue
		}
		profile.PerAnim = append(profile.PerAnim, metadata.ColliderSet{
			Hurts: x.tracks(x.p.List(obj, "hurts", nil, safejson.Optional)),
			Hits:  x.tracks(x.p.List(obj, "hits", nil, safejson.Optional)),
		})
	}

	return x.write(outDir, e, profile)
}

func (x *ColliderProfileExporter) tracks(raw []any) []metadata.ColliderTrack {
	tracks := make([]metadata.ColliderTrack, 0, len(raw))
	for _, item := range raw {
		tracks = append(tracks, x.track(item))
	}
	return tracks
}

func (x *ColliderProfileExporter) track(raw any) metadata.ColliderTrack {
	list, ok := safejson.AsList(raw)
	if !ok {
		x.log.Warn("Collider track is not a list; using empty track. Raw=%v", raw)
		return metadata.ColliderTrack{}
	}
	var t metadata.ColliderTrack
	for _, item := range list {
		obj, ok := safejson.AsObject(item)
		if !ok {
			x.log.Warn("Collider sample is not a mapping; skipping. Raw=%v", item)
			continue
		}
		collider := x.p.Object(obj, "collider", safejson.Optional)
		t.Samples = append(t.Samples, metadata.ParseColliderDesc(x.p, collider))
	}
	return t
}
