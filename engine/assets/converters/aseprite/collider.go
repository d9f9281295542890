package aseprite

import (
	"sort"

	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/safejson"
)

type ColliderDoc struct {
	Shape       string      `json:"shape"`
	Center      *[2]float64 `json:"center,omitempty"`
	HalfExtents *[2]float64 `json:"half_extents,omitempty"`
}

type ColliderSampleDoc struct {
	Collider ColliderDoc `json:"collider"`
}

type AnimCollidersDoc struct {
	Name  string                `json:"name"`
	Hurts [][]ColliderSampleDoc `json:"hurts"`
	Hits  [][]ColliderSampleDoc `json:"hits"`
}

// ColliderProfileDoc is the intermediate collider profile of a sheet.
type ColliderProfileDoc struct {
	AnimSet string             `json:"anim_set"`
	PerAnim []AnimCollidersDoc `json:"per_anim"`
}

// PivotPixels resolves the pivot of every atlas frame against that frame's
// source size.
func PivotPixels(log *core.Logger, frames []AtlasFrame, entries []FrameEntry, pivots map[int]PivotDesc) map[int][2]float64 {
	out := make(map[int][2]float64, len(frames))
	for i, f := range frames {
		pd, ok := pivots[f.Index]
		if !ok {
			continue
		}
		pv := ResolvePivot(log, entries[i].SourceSize, pd)
		out[f.Index] = [2]float64{float64(pv.X), float64(pv.Y)}
	}
	return out
}

// BuildColliderProfile demuxes hit and hurt layer frames into one track
// list per frame tag. Tag bounds are atlas frame indices clamped to the
// indices present. A track without a frame at some index gets an unknown
// collider there so all tracks of a tag have the same length.
func BuildColliderProfile(p *safejson.Parser, atlasID string, sheet safejson.Object, g *FrameGroups, pivots map[int][2]float64) ColliderProfileDoc {
	log := p.Log()
	doc := ColliderProfileDoc{
		AnimSet: core.MakeNID(string(resources.TypeAtlas), atlasID),
		PerAnim: []AnimCollidersDoc{},
	}
	lo, hi := g.IndexRange()

	for _, raw := range frameTags(p, sheet) {
		tag, ok := safejson.AsObject(raw)
		if !ok {
			log.Warn("Collider profile: ignoring non-mapping frameTag entry %v", raw)
			continue
		}
		name := p.String(tag, "name", "")
		if name == "" {
			log.Warn("Collider profile: frameTag with empty/missing name; skipping: %v", tag)
			continue
		}
		start := p.Int(tag, "from", 0)
		end := p.Int(tag, "to", start)
		if end < start {
			log.Warn("Collider profile: tag %q has end < start (from=%d, to=%d); swapping", name, start, end)
			start, end = end, start
		}
		if hi < lo {
			log.Warn("Collider profile: no atlas frames available when processing tag %q", name)
			continue
		}
		start = max(lo, min(start, hi))
		end = max(lo, min(end, hi))

		doc.PerAnim = append(doc.PerAnim, AnimCollidersDoc{
			Name:  name,
			Hurts: colliderTracks(p, start, end, g.Hurt, pivots),
			Hits:  colliderTracks(p, start, end, g.Hit, pivots),
		})
	}
	return doc
}

func colliderTracks(p *safejson.Parser, start, end int, tracks map[int]map[int]safejson.Object, pivots map[int][2]float64) [][]ColliderSampleDoc {
	keys := make([]int, 0, len(tracks))
	for k := range tracks {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([][]ColliderSampleDoc, 0, len(keys))
	for _, k := range keys {
		frames := tracks[k]
		samples := make([]ColliderSampleDoc, 0, end-start+1)
		for i := start; i <= end; i++ {
			raw, ok := frames[i]
			if !ok {
				samples = append(samples, ColliderSampleDoc{Collider: ColliderDoc{Shape: "unknown"}})
				continue
			}
			samples = append(samples, ColliderSampleDoc{Collider: aabbSample(p, raw, pivots, i)})
		}
		out = append(out, samples)
	}
	return out
}

// aabbSample converts a trimmed layer frame into a box around its center,
// relative to the pivot and with Y pointing up.
func aabbSample(p *safejson.Parser, raw safejson.Object, pivots map[int][2]float64, idx int) ColliderDoc {
	fr := p.Object(raw, "frame", safejson.Optional)
	ss := p.Object(raw, "spriteSourceSize", safejson.Optional)
	sz := p.Object(raw, "sourceSize", safejson.Optional)

	hw := p.Float(fr, "w", 0, safejson.Optional) * 0.5
	hh := p.Float(fr, "h", 0, safejson.Optional) * 0.5
	cx := p.Float(ss, "x", 0, safejson.Optional) + hw
	cy := p.Float(ss, "y", 0, safejson.Optional) + hh

	pv, ok := pivots[idx]
	if !ok {
		pv = [2]float64{
			p.Float(sz, "w", 0, safejson.Optional) * 0.5,
			p.Float(sz, "h", 0, safejson.Optional) * 0.5,
		}
	}

	return ColliderDoc{
		Shape:       "aabb",
		Center:      &[2]float64{cx - pv[0], pv[1] - cy},
		HalfExtents: &[2]float64{hw, hh},
	}
}

