package exporters

import (
	"github.com/spaghettifunk/rlres/engine/assets"
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/metadata"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/safejson"
)

type CharArchetypeExporter struct {
	base
}

func NewCharArchetypeExporter(log *core.Logger) *CharArchetypeExporter {
	return &CharArchetypeExporter{newBase(log, "chararch",
		[]resources.TypeName{resources.TypeCharArchetype},
		[]resources.TypeName{resources.TypeAbility, resources.TypeAnimSet, resources.TypeSoundBank},
		assets.JSONPatterns)}
}

func (x *CharArchetypeExporter) BuildOne(e *resources.Entry, _ string, outDir string, idx *resources.Index) error {
	data, err := x.loadDocument(e, "char archetype")
	if err != nil {
		return err
	}

	class := metadata.CharClasses.Value(x.log, x.p.String(data, "class", "none", safejson.Optional))
	arch := &metadata.CharArchetype{
		RID:       e.RID,
		Type:      metadata.CharTypes.Value(x.log, x.p.String(data, "type", "unknown")),
		Faction:   metadata.CharFactions.Value(x.log, x.p.String(data, "faction", "neutral", safejson.Optional)),
		Flags:     x.p.Flags(data, "flags", flagNames(x.log, metadata.CharArchFlags.Value), 0),
		ClassID:   uint16(class),
		Physics:   metadata.ParsePhysicsBodyDesc(x.p, x.p.Object(data, "physics", safejson.Optional)),
		AnimSet:   idx.RIDFromNID(x.p.String(data, "anim_set", "", safejson.Optional)),
		StartAnim: metadata.AnimIDs.Value(x.log, x.p.String(data, "start_anim", "idle", safejson.Optional, safejson.AllowNull)),
		SoundBank: idx.RIDFromNID(x.p.String(data, "sound_bank", "", safejson.Optional, safejson.AllowNull)),
	}

	for _, item := range x.p.List(data, "abilities", nil, safejson.Optional) {
		nid, ok := safejson.AsString(item)
		if !ok {
			x.log.Warn("%s: char archetype %q ability nid is not a string; skipping. Raw=%v", x.name, e.Name, item)
			continue
		}
		arch.Abilities = append(arch.Abilities, idx.RIDFromNID(nid))
	}

	return x.write(outDir, e, arch)
}
