package aseprite

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/safejson"
)

// LayerKind is the role a layer plays, taken from the "(kind)" part of an
// exported frame name.
type LayerKind string

const (
	LayerUnknown LayerKind = "unknown"
	LayerAtlas   LayerKind = "atlas"
	LayerPivot   LayerKind = "pivot"
	LayerHit     LayerKind = "hit"
	LayerHurt    LayerKind = "hurt"
)

func layerKindOf(s string) (LayerKind, bool) {
	switch LayerKind(s) {
	case LayerAtlas, LayerPivot, LayerHit, LayerHurt:
		return LayerKind(s), true
	}
	return LayerUnknown, false
}

// FrameName is the decoded form of "<base> (<kind>[_<track>]) <suffix>".
type FrameName struct {
	Base   string
	Kind   LayerKind
	Track  int // -1 when the kind carries no track index
	Suffix string
}

// ParseFrameName decodes an exported frame file name. Names that do not
// follow the layout come back with LayerUnknown.
func ParseFrameName(filename string) FrameName {
	name := stripExt(filepath.Base(filename))
	fn := FrameName{Base: name, Kind: LayerUnknown, Track: -1}

	start := strings.LastIndex(name, " (")
	end := strings.LastIndex(name, ")")
	if start < 0 || end < 0 || end < start {
		return fn
	}

	fn.Base = strings.TrimRight(name[:start], " \t\r\n")
	raw := strings.TrimSpace(name[start+2 : end])
	fn.Suffix = strings.TrimSpace(name[end+1:])

	if kind, ok := layerKindOf(raw); ok {
		fn.Kind = kind
		return fn
	}
	prefix, track, ok := parseNameIndex(raw)
	if !ok {
		return fn
	}
	if kind, ok := layerKindOf(prefix); ok {
		fn.Kind = kind
		fn.Track = track
	}
	return fn
}

// stripExt drops a trailing ".ext" unless the dot is the last character.
func stripExt(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return name
	}
	return name[:i]
}

// parseNameIndex splits "name_12" into ("name", 12).
func parseNameIndex(s string) (string, int, bool) {
	i := strings.LastIndex(s, "_")
	if i <= 0 || i == len(s)-1 {
		return "", 0, false
	}
	digits := s[i+1:]
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return "", 0, false
	}
	return s[:i], n, true
}

// RawFrame is one entry of the sheet's frames collection.
type RawFrame struct {
	Filename string
	Data     safejson.Object
}

// AtlasFrame is an atlas layer frame with its resolved frame index.
type AtlasFrame struct {
	Index    int
	Filename string
	Data     safejson.Object
}

// FrameGroups holds the frames of a sheet sorted by layer role.
type FrameGroups struct {
	Atlas  []AtlasFrame
	Pivots map[string]safejson.Object
	// track -> frame index -> frame
	Hurt map[int]map[int]safejson.Object
	Hit  map[int]map[int]safejson.Object
}

// NormalizeFrames accepts both the hash and the array export layouts.
// order carries the source order of hash keys; keys absent from it are
// appended in sorted order.
func NormalizeFrames(p *safejson.Parser, sheet safejson.Object, order []string) []RawFrame {
	log := p.Log()
	raw, ok := sheet["frames"]
	if !ok {
		log.Warn("safe_json_get: mandatory key %q is missing; using default", "frames")
		return nil
	}

	if m, ok := safejson.AsObject(raw); ok {
		var out []RawFrame
		for _, name := range orderedKeys(m, order) {
			data, ok := safejson.AsObject(m[name])
			if !ok {
				log.Warn("Frame %q is not a mapping; skipping", name)
				continue
			}
			out = append(out, RawFrame{Filename: name, Data: data})
		}
		return out
	}

	list, ok := safejson.AsList(raw)
	if !ok {
		log.Warn("'frames' has unexpected type %s; ignoring", safejson.TypeName(raw))
		return nil
	}
	var out []RawFrame
	for i, item := range list {
		data, ok := safejson.AsObject(item)
		if !ok {
			log.Warn("Frame entry #%d is not a mapping; skipping", i)
			continue
		}
		name := p.String(data, "filename", "")
		if name == "" {
			log.Warn("Frame entry #%d has no filename; skipping", i)
			continue
		}
		out = append(out, RawFrame{Filename: name, Data: data})
	}
	return out
}

func orderedKeys(m safejson.Object, order []string) []string {
	seen := make(map[string]bool, len(m))
	keys := make([]string, 0, len(m))
	for _, k := range order {
		if _, ok := m[k]; ok && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// GroupFrames sorts frames by layer role. Atlas frames without a numeric
// suffix take the next free index, in source order, after the highest
// explicit one.
func GroupFrames(log *core.Logger, frames []RawFrame) *FrameGroups {
	g := &FrameGroups{
		Pivots: map[string]safejson.Object{},
		Hurt:   map[int]map[int]safejson.Object{},
		Hit:    map[int]map[int]safejson.Object{},
	}

	var pending []RawFrame
	maxIndex := -1

	for _, f := range frames {
		if f.Data == nil {
			log.Warn("Frame %q is not a mapping; skipping", f.Filename)
			continue
		}
		fn := ParseFrameName(f.Filename)
		switch fn.Kind {
		case LayerAtlas:
			if fn.Suffix == "" {
				pending = append(pending, f)
				continue
			}
			idx, err := strconv.Atoi(fn.Suffix)
			if err != nil {
				log.Warn("Non-integer frame suffix %q for atlas frame %q; treating as pending", fn.Suffix, f.Filename)
				pending = append(pending, f)
				continue
			}
			g.Atlas = append(g.Atlas, AtlasFrame{Index: idx, Filename: f.Filename, Data: f.Data})
			if idx > maxIndex {
				maxIndex = idx
			}

		case LayerPivot:
			key := fn.Suffix
			if key == "" {
				key = f.Filename
			}
			g.Pivots[key] = f.Data

		case LayerHit, LayerHurt:
			if fn.Track < 0 {
				log.Warn("Frame %q does not follow '%s_<number>' pattern; skipping", f.Filename, fn.Kind)
				continue
			}
			if fn.Suffix == "" {
				log.Warn("Frame %q has no frame suffix; skipping", f.Filename)
				continue
			}
			idx, err := strconv.Atoi(fn.Suffix)
			if err != nil {
				log.Warn("Non-integer frame suffix %q for %s frame %q; skipping", fn.Suffix, fn.Kind, f.Filename)
				continue
			}
			tracks := g.Hurt
			if fn.Kind == LayerHit {
				tracks = g.Hit
			}
			if tracks[fn.Track] == nil {
				tracks[fn.Track] = map[int]safejson.Object{}
			}
			if _, dup := tracks[fn.Track][idx]; dup {
				log.Warn("Duplicate %s frame for track %d, frame %d (%q); overwriting", fn.Kind, fn.Track, idx, f.Filename)
			}
			tracks[fn.Track][idx] = f.Data
		}
	}

	next := maxIndex + 1
	for _, f := range pending {
		g.Atlas = append(g.Atlas, AtlasFrame{Index: next, Filename: f.Filename, Data: f.Data})
		next++
	}
	sort.SliceStable(g.Atlas, func(i, j int) bool { return g.Atlas[i].Index < g.Atlas[j].Index })
	return g
}

// IndexRange returns the lowest and highest atlas frame index, or (0, -1)
// when there are none.
func (g *FrameGroups) IndexRange() (int, int) {
	if len(g.Atlas) == 0 {
		return 0, -1
	}
	lo, hi := g.Atlas[0].Index, g.Atlas[0].Index
	for _, f := range g.Atlas[1:] {
		if f.Index < lo {
			lo = f.Index
		}
		if f.Index > hi {
			hi = f.Index
		}
	}
	return lo, hi
}
