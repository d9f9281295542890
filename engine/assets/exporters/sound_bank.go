package exporters

import (
	"github.com/spaghettifunk/rlres/engine/assets"
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/metadata"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/safejson"
)

type SoundBankExporter struct {
	base
}

func NewSoundBankExporter(log *core.Logger) *SoundBankExporter {
	return &SoundBankExporter{newBase(log, "soundbank",
		[]resources.TypeName{resources.TypeSoundBank},
		[]resources.TypeName{resources.TypeSound},
		assets.JSONPatterns)}
}

// BuildOne lists sounds by NID ("sound.<name>"). Names that are not
// indexed sounds are reported and left out of the bank.
func (x *SoundBankExporter) BuildOne(e *resources.Entry, _ string, outDir string, idx *resources.Index) error {
	data, err := x.loadDocument(e, "sound bank")
	if err != nil {
		return err
	}

	byNID := map[string]resources.ResourceID{}
	for _, s := range idx.ByType(resources.TypeSound) {
		byNID[s.NID] = s.RID
	}

	bank := &metadata.SoundBank{RID: e.RID}
	for _, item := range x.p.List(data, "sounds", nil, safejson.Optional) {
		nid, ok := safejson.AsString(item)
		if !ok || nid == "" {
			x.log.Warn("%s: SoundBank %q has non-string or empty sound entry %v; skipping", x.name, e.Name, item)
			continue
		}
		rid, ok := byNID[nid]
		if !ok {
			x.log.Error("%s: SoundBank %q references unknown sound %q; skipping", x.name, e.Name, nid)
			continue
		}
		bank.Sounds = append(bank.Sounds, rid)
	}

	return x.write(outDir, e, bank)
}
