package metadata

import (
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/serialize"
)

const (
	SoundVersion     uint32 = 1
	SoundBankVersion uint32 = 1
)

/** @brief Decoded PCM, interleaved float32. */
type Sound struct {
	RID        resources.ResourceID
	SampleRate uint32
	Channels   uint32
	Samples    []float32
}

func (s *Sound) TypeID() resources.TypeID { return resources.TypeIDSound }

func (s *Sound) Version() uint32 { return SoundVersion }

func (s *Sound) Serialize(w *serialize.Writer, _ *core.Logger) {
	w.U32(s.RID)
	w.U32(s.SampleRate)
	w.U32(s.Channels)
	w.U64(uint64(len(s.Samples)))
	for _, v := range s.Samples {
		w.F32(v)
	}
}

type SoundBank struct {
	RID    resources.ResourceID
	Sounds []resources.ResourceID
}

func (b *SoundBank) TypeID() resources.TypeID { return resources.TypeIDSoundBank }

func (b *SoundBank) Version() uint32 { return SoundBankVersion }

func (b *SoundBank) Serialize(w *serialize.Writer, _ *core.Logger) {
	w.U32(b.RID)
	w.U64(uint64(len(b.Sounds)))
	for _, rid := range b.Sounds {
		w.U32(rid)
	}
}
