package metadata

import (
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/serialize"
)

const TextureVersion uint32 = 1

/** @brief Pixel layout of texture data. */
type TexFormat uint8

const (
	TexFormatUnknown TexFormat = iota
	TexFormatRGBA8
)

/** @brief Raw decoded texture. */
type Texture struct {
	RID    resources.ResourceID
	Format TexFormat
	Width  uint16
	Height uint16
	Data   []byte
}

func (t *Texture) TypeID() resources.TypeID { return resources.TypeIDTexture }

func (t *Texture) Version() uint32 { return TextureVersion }

func (t *Texture) Serialize(w *serialize.Writer, _ *core.Logger) {
	w.U32(t.RID)
	w.U8(uint8(t.Format))
	w.U16(t.Width)
	w.U16(t.Height)
	w.U64(uint64(len(t.Data)))
	w.Bytes(t.Data)
}
