package exporters

import (
	"fmt"

	"github.com/spaghettifunk/rlres/engine/assets"
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/metadata"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/safejson"
)

type AnimExporter struct {
	base
}

func NewAnimExporter(log *core.Logger) *AnimExporter {
	return &AnimExporter{newBase(log, "anim",
		[]resources.TypeName{resources.TypeAnimSet},
		[]resources.TypeName{resources.TypeTexture},
		assets.JSONPatterns)}
}

func (x *AnimExporter) BuildOne(e *resources.Entry, _ string, outDir string, idx *resources.Index) error {
	data, err := x.loadDocument(e, "anim set")
	if err != nil {
		return err
	}

	rawAnims := x.p.List(data, "animations", nil, safejson.Optional)
	anims, err := x.anims(idx, rawAnims)
	if err != nil {
		return fmt.Errorf("anim set %s: %w", e.NID, err)
	}

	set := &metadata.AnimSet{
		RID:             e.RID,
		Tex:             RIDFromKey(x.p, idx, data, resources.TypeTexture, "texture", false),
		ColliderProfile: idx.RIDFromNID(x.p.String(data, "collider_profile", "", safejson.Optional, safejson.AllowNull)),
		DefaultAnimIdx:  x.defaultAnimIdx(data, rawAnims),
		Anims:           anims,
		Solved:          x.solved(x.p.List(data, "solved", nil, safejson.Optional)),
	}
	return x.write(outDir, e, set)
}

func (x *AnimExporter) anims(idx *resources.Index, raw []any) ([]metadata.Anim, error) {
	var anims []metadata.Anim
	for _, item := range raw {
		obj, ok := safejson.AsObject(item)
		if !ok {
			x.log.Warn("%s: animation entry is not a mapping; skipping. Raw=%v", x.name, item)
			continue
		}

		a := metadata.Anim{
			Flags: metadata.AnimFlag(x.p.Flags(obj, "flags", flagNames(x.log, metadata.AnimFlags.Value), 0)),
			Key:   x.animKey(obj),
		}
		a.Samples, a.AccDurations, a.Duration = x.samples(x.p.List(obj, "frames", nil, safejson.Optional))

		keys, err := x.events(idx, x.p.List(obj, "events", nil, safejson.Optional))
		if err != nil {
			return nil, err
		}
		a.Keys = keys
		anims = append(anims, a)
	}
	return anims, nil
}

// samples returns the frames, the running duration after each frame and
// the total duration.
func (x *AnimExporter) samples(raw []any) ([]metadata.AnimSample, []float32, float32) {
	var (
		samples []metadata.AnimSample
		acc     []float32
		total   float64
	)
	for _, item := range raw {
		obj, ok := safejson.AsObject(item)
		if !ok {
			x.log.Warn("%s: frame entry is not a mapping; skipping. Raw=%v", x.name, item)
			continue
		}
		s, ok := sprite(x.p, obj)
		if !ok {
			x.log.Warn("%s: frame has invalid rect/source_size/offset structure; skipping. Raw=%v", x.name, obj)
			continue
		}
		dur := x.p.Float(obj, "duration", 0, safejson.Optional)
		samples = append(samples, metadata.AnimSample{Sprite: s, Duration: float32(dur)})
		total += dur
		acc = append(acc, float32(total))
	}
	return samples, acc, float32(total)
}

func (x *AnimExporter) events(idx *resources.Index, raw []any) ([]metadata.AnimKeyFrame, error) {
	var keys []metadata.AnimKeyFrame
	for _, item := range raw {
		obj, ok := safejson.AsObject(item)
		if !ok {
			x.log.Warn("%s: event entry is not a mapping; skipping. Raw=%v", x.name, item)
			continue
		}
		frame := x.p.Float(obj, "frame", 0)
		name := x.p.String(obj, "name", "")
		if name == "" {
			x.log.Warn("%s: event missing or empty 'name'; skipping. Raw=%v", x.name, obj)
			continue
		}
		if frame < 0 {
			x.log.Warn("%s: event has invalid 'frame' %v; skipping. Raw=%v", x.name, frame, obj)
			continue
		}

		params, err := metadata.EncodeParamSet(x.p.List(obj, "params", nil, safejson.Optional), idx, x.log)
		if err != nil {
			return nil, fmt.Errorf("event %q: %w", name, err)
		}
		keys = append(keys, metadata.AnimKeyFrame{
			Tag:    metadata.AnimKeyTags.Value(x.log, name),
			Frame:  uint32(frame),
			Params: params,
		})
	}
	return keys, nil
}

func (x *AnimExporter) animKey(obj safejson.Object) metadata.AnimKey {
	tag := x.p.String(obj, "anim_tag", "")
	dir := x.p.String(obj, "dir", "")
	if tag == "" || dir == "" {
		x.log.Warn("%s: anim missing 'anim_tag' or 'dir'; using INVALID_ANIM_KEY. Raw name=%v", x.name, obj["name"])
		return metadata.InvalidAnimKey
	}
	return metadata.MakeAnimKey(metadata.AnimIDs.Value(x.log, tag), metadata.CardinalDirs.Value(x.log, dir))
}

// defaultAnimIdx accepts either an index or a name matched against each
// animation's name and anim_tag. Anything unusable selects 0.
func (x *AnimExporter) defaultAnimIdx(data safejson.Object, anims []any) int {
	if len(anims) == 0 {
		return 0
	}
	spec, ok := x.p.Value(data, "default_anim", safejson.Optional, safejson.AllowNull)
	if !ok {
		return 0
	}

	if i, ok := safejson.AsInt(spec); ok {
		if i >= 0 && i < len(anims) {
			return i
		}
		x.log.Warn("%s: default_anim index %d out of range (0..%d); using 0", x.name, i, len(anims)-1)
		return 0
	}

	if name, ok := safejson.AsString(spec); ok {
		for i, item := range anims {
			obj, ok := safejson.AsObject(item)
			if !ok {
				continue
			}
			if name == x.p.String(obj, "name", "", safejson.Optional) ||
				name == x.p.String(obj, "anim_tag", "", safejson.Optional, safejson.AllowNull) {
				return i
			}
		}
		x.log.Warn("%s: default_anim %q did not match any animation (by 'name' or 'anim_tag'); using 0", x.name, name)
		return 0
	}

	x.log.Warn("%s: default_anim has unsupported type %s; using 0", x.name, safejson.TypeName(spec))
	return 0
}

func (x *AnimExporter) solved(raw []any) []metadata.AnimSolvedEntry {
	var out []metadata.AnimSolvedEntry
	for _, item := range raw {
		obj, ok := safejson.AsObject(item)
		if !ok {
			x.log.Warn("%s: solved entry is not a mapping; skipping. Raw=%v", x.name, item)
			continue
		}
		from := x.p.Object(obj, "from")
		to := x.p.Object(obj, "to")
		fromTag, fromDir := x.p.String(from, "anim_tag", ""), x.p.String(from, "dir", "")
		toTag, toDir := x.p.String(to, "anim_tag", ""), x.p.String(to, "dir", "")
		if fromTag == "" || fromDir == "" || toTag == "" || toDir == "" {
			x.log.Warn("%s: solved entry missing anim_tag/dir fields; skipping. Raw=%v", x.name, obj)
			continue
		}

		fromKey := metadata.MakeAnimKey(metadata.AnimIDs.Value(x.log, fromTag), metadata.CardinalDirs.Value(x.log, fromDir))
		toKey := metadata.MakeAnimKey(metadata.AnimIDs.Value(x.log, toTag), metadata.CardinalDirs.Value(x.log, toDir))
		if fromKey == metadata.InvalidAnimKey || toKey == metadata.InvalidAnimKey {
			x.log.Warn("%s: solved entry has invalid from/to key; skipping. Raw=%v", x.name, obj)
			continue
		}

		policy := x.p.String(obj, "flip_policy", "keep", safejson.Optional)
		out = append(out, metadata.AnimSolvedEntry{
			From:   fromKey,
			To:     toKey,
			Policy: metadata.FlipPolicies.Value(x.log, policy),
		})
	}
	return out
}
