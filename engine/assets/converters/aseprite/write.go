package aseprite

import (
	"path/filepath"

	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/safejson"
)

type AtlasDoc struct {
	ID      string      `json:"id"`
	Texture string      `json:"texture"`
	Sprites []SpriteDoc `json:"sprites"`
}

type AnimDoc struct {
	Name    string         `json:"name"`
	AnimTag *string        `json:"anim_tag"`
	Dir     *string        `json:"dir"`
	Flags   []any          `json:"flags"`
	Frames  []AnimFrameDoc `json:"frames"`
	Events  []EventDoc     `json:"events"`
}

// AnimSetDoc is the intermediate animation set of a sheet.
type AnimSetDoc struct {
	ID              string            `json:"id"`
	Texture         string            `json:"texture"`
	ColliderProfile string            `json:"collider_profile"`
	DefaultAnim     *string           `json:"default_anim"`
	Animations      []AnimDoc         `json:"animations"`
	Solved          []safejson.Object `json:"solved,omitempty"`
}

// sheetMeta is the parsed companion meta document.
type sheetMeta struct {
	Anims       map[string]safejson.Object
	DefaultAnim *string
	Solved      []safejson.Object
}

func parseSheetMeta(p *safejson.Parser, meta safejson.Object) sheetMeta {
	sm := sheetMeta{Anims: map[string]safejson.Object{}}
	if meta == nil {
		return sm
	}
	log := p.Log()

	for _, raw := range p.List(meta, "anims", nil, safejson.Optional) {
		anim, ok := safejson.AsObject(raw)
		if !ok {
			log.Warn("Ignoring non-dict animation entry in meta: %v", raw)
			continue
		}
		name := p.String(anim, "name", "")
		if name == "" {
			log.Warn("Ignoring animation entry with empty or missing name: %v", anim)
			continue
		}
		sm.Anims[name] = anim
	}

	if name := p.String(meta, "default_anim", "", safejson.Optional); name != "" {
		sm.DefaultAnim = &name
	}

	for _, raw := range p.List(meta, "solved", nil, safejson.Optional) {
		entry, ok := safejson.AsObject(raw)
		if !ok {
			log.Warn("Ignoring non-dict solved entry in meta: %v", raw)
			continue
		}
		sm.Solved = append(sm.Solved, entry)
	}
	return sm
}

func optString(p *safejson.Parser, obj safejson.Object, key string) *string {
	if s, ok := p.LookupString(obj, key, safejson.Optional, safejson.AllowNull); ok {
		return &s
	}
	return nil
}

// BuildAnimSet turns every frame tag into an animation, merged with the
// matching meta animation. Tags that yield no frames are skipped.
func BuildAnimSet(p *safejson.Parser, atlasID, tex string, tags []any, entries []FrameEntry, offsets []OffsetPair, meta sheetMeta) AnimSetDoc {
	log := p.Log()
	doc := AnimSetDoc{
		ID:              atlasID,
		Texture:         tex,
		ColliderProfile: core.MakeNID(string(resources.TypeColliderProfile), atlasID),
		DefaultAnim:     meta.DefaultAnim,
		Animations:      []AnimDoc{},
		Solved:          meta.Solved,
	}

	for _, raw := range tags {
		tag, ok := safejson.AsObject(raw)
		if !ok {
			log.Warn("Ignoring non-mapping tag: %v", raw)
			continue
		}
		name := p.String(tag, "name", "")
		if name == "" {
			log.Warn("Tag missing valid 'name': %v", tag)
			continue
		}
		frames := AnimFrames(p, tag, entries, offsets)
		if len(frames) == 0 {
			log.Warn("Tag %q produced no frames; skipping", name)
			continue
		}

		metaAnim := meta.Anims[name]
		if metaAnim == nil {
			metaAnim = safejson.Object{}
		}
		flags := p.List(metaAnim, "flags", nil, safejson.Optional)
		if flags == nil {
			flags = []any{}
		}
		doc.Animations = append(doc.Animations, AnimDoc{
			Name:    name,
			AnimTag: optString(p, metaAnim, "anim_tag"),
			Dir:     optString(p, metaAnim, "dir"),
			Flags:   flags,
			Frames:  frames,
			Events:  AnimEvents(p, metaAnim, len(frames)),
		})
	}
	return doc
}

// docPath is <outRoot>/<type>/<id>.json.
func docPath(outRoot string, t resources.TypeName, id string) string {
	return filepath.Join(outRoot, string(t), id+".json")
}

func writeAtlas(log *core.Logger, outRoot string, doc AtlasDoc) (string, error) {
	path := docPath(outRoot, resources.TypeAtlas, doc.ID)
	if err := safejson.WriteIndented(path, doc); err != nil {
		return "", err
	}
	log.Info("Wrote atlas: %s", path)
	return path, nil
}

func writeAnimSet(log *core.Logger, outRoot string, doc AnimSetDoc) (string, error) {
	path := docPath(outRoot, resources.TypeAnimSet, doc.ID)
	if err := safejson.WriteIndented(path, doc); err != nil {
		return "", err
	}
	log.Info("Wrote animset: %s", path)
	return path, nil
}

func writeColliderProfile(outRoot, atlasID string, doc ColliderProfileDoc) (string, error) {
	path := docPath(outRoot, resources.TypeColliderProfile, atlasID)
	return path, safejson.WriteIndented(path, doc)
}
