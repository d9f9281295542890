package exporters

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fzipp/bmfont"

	"github.com/spaghettifunk/rlres/engine/assets"
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/metadata"
	"github.com/spaghettifunk/rlres/engine/resources"
)

// FontExporter turns AngelCode BMFont descriptors into font resources.
// Page images are exported separately as textures; a page is referenced
// by the texture named after its file stem.
type FontExporter struct {
	base
}

func NewFontExporter(log *core.Logger) *FontExporter {
	return &FontExporter{newBase(log, "font",
		[]resources.TypeName{resources.TypeFont},
		[]resources.TypeName{resources.TypeTexture},
		[]string{"*.fnt"})}
}

func (x *FontExporter) BuildOne(e *resources.Entry, _ string, outDir string, idx *resources.Index) error {
	desc, err := bmfont.LoadDescriptor(e.SrcPath)
	if err != nil {
		return fmt.Errorf("reading font descriptor %s: %w", e.SrcPath, err)
	}

	font := &metadata.Font{
		RID:        e.RID,
		Face:       desc.Info.Face,
		Size:       int32(desc.Info.Size),
		LineHeight: int32(desc.Common.LineHeight),
		Base:       int32(desc.Common.Base),
		ScaleW:     int32(desc.Common.ScaleW),
		ScaleH:     int32(desc.Common.ScaleH),
	}

	pageIDs := make([]int, 0, len(desc.Pages))
	for id := range desc.Pages {
		pageIDs = append(pageIDs, id)
	}
	sort.Ints(pageIDs)
	for _, id := range pageIDs {
		stem := assets.Stem(filepath.Base(desc.Pages[id].File))
		font.Pages = append(font.Pages, idx.GetRID(resources.TypeTexture, stem))
	}

	for _, c := range desc.Chars {
		if c.Page < 0 || c.Page > 0xFF {
			x.log.Warn("%s: glyph %d of %s is on page %d; skipping", x.name, c.ID, e.NID, c.Page)
			continue
		}
		font.Glyphs = append(font.Glyphs, metadata.FontGlyph{
			Codepoint: uint32(c.ID),
			X:         int32(c.X),
			Y:         int32(c.Y),
			W:         int32(c.Width),
			H:         int32(c.Height),
			XOffset:   int32(c.XOffset),
			YOffset:   int32(c.YOffset),
			XAdvance:  int32(c.XAdvance),
			Page:      uint8(c.Page),
		})
	}
	sort.Slice(font.Glyphs, func(i, j int) bool { return font.Glyphs[i].Codepoint < font.Glyphs[j].Codepoint })

	for pair, k := range desc.Kerning {
		font.Kernings = append(font.Kernings, metadata.FontKerning{
			First:  uint32(pair.First),
			Second: uint32(pair.Second),
			Amount: int16(k.Amount),
		})
	}
	sort.Slice(font.Kernings, func(i, j int) bool {
		a, b := font.Kernings[i], font.Kernings[j]
		if a.First != b.First {
			return a.First < b.First
		}
		return a.Second < b.Second
	})

	return x.write(outDir, e, font)
}
