package metadata

import (
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/serialize"
)

const FontVersion uint32 = 1

type FontGlyph struct {
	Codepoint uint32
	X, Y      int32
	W, H      int32
	XOffset   int32
	YOffset   int32
	XAdvance  int32
	Page      uint8
}

type FontKerning struct {
	First  uint32
	Second uint32
	Amount int16
}

/**
 * @brief A bitmap font. Pages reference texture resources, glyphs are sorted
 * by codepoint and kernings by pair.
 */
type Font struct {
	RID        resources.ResourceID
	Face       string
	Size       int32
	LineHeight int32
	Base       int32
	ScaleW     int32
	ScaleH     int32
	Pages      []resources.ResourceID
	Glyphs     []FontGlyph
	Kernings   []FontKerning
}

func (f *Font) TypeID() resources.TypeID { return resources.TypeIDFont }

func (f *Font) Version() uint32 { return FontVersion }

func (f *Font) Serialize(w *serialize.Writer, _ *core.Logger) {
	w.U32(f.RID)
	w.String(f.Face)
	w.I32(f.Size)
	w.I32(f.LineHeight)
	w.I32(f.Base)
	w.I32(f.ScaleW)
	w.I32(f.ScaleH)

	w.VectorLen(len(f.Pages))
	for _, rid := range f.Pages {
		w.U32(rid)
	}

	w.VectorLen(len(f.Glyphs))
	for _, g := range f.Glyphs {
		w.U32(g.Codepoint)
		w.I32(g.X)
		w.I32(g.Y)
		w.I32(g.W)
		w.I32(g.H)
		w.I32(g.XOffset)
		w.I32(g.YOffset)
		w.I32(g.XAdvance)
		w.U8(g.Page)
	}

	w.VectorLen(len(f.Kernings))
	for _, k := range f.Kernings {
		w.U32(k.First)
		w.U32(k.Second)
		w.I16(k.Amount)
	}
}
