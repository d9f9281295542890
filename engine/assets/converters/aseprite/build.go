package aseprite

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/rlres/engine/math"
	"github.com/spaghettifunk/rlres/engine/safejson"
)

// FrameEntry is a decoded atlas frame with its final sprite name.
type FrameEntry struct {
	Name       string
	Rect       math.Rect
	SourceRect math.Rect
	SourceSize math.Size
	DurationMs int
}

// FrameNames names atlas frames "<tag>_<nnn>" by their position inside the
// first frame tag covering them, and falls back to the file stem.
func FrameNames(p *safejson.Parser, sheet safejson.Object, frames []AtlasFrame) []string {
	log := p.Log()
	names := make([]string, len(frames))
	named := make([]bool, len(frames))

	pos := make(map[int]int, len(frames))
	for i, f := range frames {
		pos[f.Index] = i
	}

	for _, raw := range frameTags(p, sheet) {
		tag, ok := safejson.AsObject(raw)
		if !ok {
			log.Warn("Ignoring non-mapping frame tag entry %v", raw)
			continue
		}
		name := p.String(tag, "name", "")
		if name == "" {
			log.Warn("Ignoring frame tag with empty or missing name: %v", tag)
			continue
		}
		start := p.Int(tag, "from", 0)
		end := p.Int(tag, "to", start)
		if end < start {
			log.Warn("frame tag %q has end < start (from=%d, to=%d); swapping", name, start, end)
			start, end = end, start
		}

		local := 0
		for i := start; i <= end; i++ {
			at, ok := pos[i]
			if !ok {
				continue
			}
			if !named[at] {
				names[at] = fmt.Sprintf("%s_%03d", name, local)
				named[at] = true
			}
			local++
		}
	}

	for i, f := range frames {
		if !named[i] {
			names[i] = strings.ReplaceAll(stripExt(filepath.Base(f.Filename)), " ", "_")
		}
	}
	return names
}

func frameTags(p *safejson.Parser, sheet safejson.Object) []any {
	meta := p.Object(sheet, "meta", safejson.Optional)
	return p.List(meta, "frameTags", nil, safejson.Optional)
}

// FramePivots picks the pivot of every atlas frame: its pivot layer marker
// if any, else the sheet default.
func FramePivots(p *safejson.Parser, frames []AtlasFrame, pivots map[string]safejson.Object, def PivotDesc) map[int]PivotDesc {
	out := make(map[int]PivotDesc, len(frames))
	for _, f := range frames {
		if pd := PivotFromLayer(p, f.Filename, pivots); pd != nil {
			out[f.Index] = *pd
			continue
		}
		out[f.Index] = def
	}
	return out
}

// FrameEntries decodes the rectangles of every atlas frame and resolves
// its normalized offsets. Entries stay in atlas frame order.
func FrameEntries(p *safejson.Parser, frames []AtlasFrame, names []string, pivots map[int]PivotDesc, defaultMs int) ([]FrameEntry, []OffsetPair) {
	entries := make([]FrameEntry, 0, len(frames))
	offsets := make([]OffsetPair, 0, len(frames))

	for i, f := range frames {
		fr := p.Object(f.Data, "frame")
		ss := p.Object(f.Data, "spriteSourceSize")
		sz := p.Object(f.Data, "sourceSize")

		e := FrameEntry{
			Name:       names[i],
			Rect:       readRect(p, fr),
			SourceRect: readRect(p, ss),
			SourceSize: math.Size{W: p.Int(sz, "w", 0), H: p.Int(sz, "h", 0)},
			DurationMs: p.Int(f.Data, "duration", defaultMs, safejson.Optional),
		}
		entries = append(entries, e)

		pd, ok := pivots[f.Index]
		if !ok {
			pd = PivotDesc{Preset: PivotTopLeft}
		}
		offsets = append(offsets, ResolveOffsets(p.Log(), e.Rect, e.SourceRect, e.SourceSize, pd))
	}
	return entries, offsets
}

func readRect(p *safejson.Parser, obj safejson.Object) math.Rect {
	return math.Rect{
		X: p.Int(obj, "x", 0),
		Y: p.Int(obj, "y", 0),
		W: p.Int(obj, "w", 0),
		H: p.Int(obj, "h", 0),
	}
}

// SpriteDoc is one sprite of the intermediate atlas document.
type SpriteDoc struct {
	Name          string     `json:"name"`
	Rect          [4]int     `json:"rect"`
	SourceSize    [2]int     `json:"source_size"`
	Offset        [2]float64 `json:"offset"`
	OffsetFlipped [2]float64 `json:"offset_flipped"`
}

// AtlasSprites lists every frame entry as an atlas sprite.
func AtlasSprites(entries []FrameEntry, offsets []OffsetPair) []SpriteDoc {
	sprites := make([]SpriteDoc, 0, len(entries))
	for i, e := range entries {
		sprites = append(sprites, SpriteDoc{
			Name:          e.Name,
			Rect:          rectArray(e.Rect),
			SourceSize:    [2]int{e.SourceSize.W, e.SourceSize.H},
			Offset:        offsets[i].Offset,
			OffsetFlipped: offsets[i].Flipped,
		})
	}
	return sprites
}

func rectArray(r math.Rect) [4]int {
	return [4]int{r.X, r.Y, r.W, r.H}
}

// AnimFrameDoc is one frame of an intermediate animation.
type AnimFrameDoc struct {
	Rect          [4]int     `json:"rect"`
	SourceSize    [2]int     `json:"source_size"`
	Offset        [2]float64 `json:"offset"`
	OffsetFlipped [2]float64 `json:"offset_flipped"`
	Duration      float64    `json:"duration"`
}

// AnimFrames returns the frames covered by a tag. Tag bounds are positions
// in the entry list; reversed bounds are swapped and the range is clamped
// to the entries available.
func AnimFrames(p *safejson.Parser, tag safejson.Object, entries []FrameEntry, offsets []OffsetPair) []AnimFrameDoc {
	log := p.Log()
	start := p.Int(tag, "from", 0)
	end := p.Int(tag, "to", len(entries)-1)
	if end < start {
		log.Warn("Animation tag %v has end < start (from=%d, to=%d); swapping", tag["name"], start, end)
		start, end = end, start
	}

	last := len(entries) - 1
	if last < 0 {
		log.Warn("No frame entries available when building anim frames for tag %v", tag["name"])
		return nil
	}
	if start > last || end < 0 {
		log.Warn("Tag range (from=%d, to=%d) is outside [0, %d]; nothing to build for %v", start, end, last, tag["name"])
		return nil
	}
	start = math.Clamp(start, 0, last)
	end = math.Clamp(end, 0, last)

	frames := make([]AnimFrameDoc, 0, end-start+1)
	for i := start; i <= end; i++ {
		e := entries[i]
		frames = append(frames, AnimFrameDoc{
			Rect:          rectArray(e.Rect),
			SourceSize:    [2]int{e.SourceSize.W, e.SourceSize.H},
			Offset:        offsets[i].Offset,
			OffsetFlipped: offsets[i].Flipped,
			Duration:      float64(e.DurationMs) / 1000,
		})
	}
	return frames
}

// EventDoc is a keyframe event attached to an intermediate animation.
type EventDoc struct {
	Name   string `json:"name"`
	Frame  int    `json:"frame"`
	Params any    `json:"params,omitempty"`
}

// AnimEvents reads the events of a meta animation, dropping those outside
// [0, frameCount) or without a name.
func AnimEvents(p *safejson.Parser, metaAnim safejson.Object, frameCount int) []EventDoc {
	log := p.Log()
	events := []EventDoc{}
	for _, raw := range p.List(metaAnim, "events", nil, safejson.Optional) {
		ev, ok := safejson.AsObject(raw)
		if !ok {
			log.Warn("Ignoring non-mapping event entry %v", raw)
			continue
		}
		frame := p.Int(ev, "frame", 0, safejson.Optional)
		if frame < 0 || frame >= frameCount {
			log.Warn("Event frame %d out of range [0, %d); skipping event %v", frame, frameCount, ev)
			continue
		}
		name := p.String(ev, "name", "")
		if name == "" {
			log.Warn("Event at frame %d has empty or missing name; skipping", frame)
			continue
		}
		doc := EventDoc{Name: name, Frame: frame}
		if params, ok := ev["params"]; ok {
			doc.Params = params
		}
		events = append(events, doc)
	}
	return events
}
