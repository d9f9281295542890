package exporters

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"

	"github.com/spaghettifunk/rlres/engine/assets"
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/metadata"
	"github.com/spaghettifunk/rlres/engine/resources"
)

const maxTextureSide = 0xFFFF

type TextureExporter struct {
	base
}

func NewTextureExporter(log *core.Logger) *TextureExporter {
	return &TextureExporter{newBase(log, "tex",
		[]resources.TypeName{resources.TypeTexture},
		nil,
		assets.ImagePatterns)}
}

func (x *TextureExporter) BuildOne(e *resources.Entry, _ string, outDir string, _ *resources.Index) error {
	img, err := decodeImage(e.SrcPath)
	if err != nil {
		return fmt.Errorf("decoding texture %s: %w", e.SrcPath, err)
	}

	pix, w, h := toRGBA8(img)

	return x.write(outDir, e, &metadata.Texture{
		RID:    e.RID,
		Format: metadata.TexFormatRGBA8,
		Width:  uint16(w),
		Height: uint16(h),
		Data:   pix,
	})
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, err
	}
	if cfg.Width > maxTextureSide || cfg.Height > maxTextureSide {
		return nil, fmt.Errorf("%w: image is %dx%d; sides are limited to %d", core.ErrUnsupportedMedia, cfg.Width, cfg.Height, maxTextureSide)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	switch format {
	case "png":
		return png.Decode(f)
	case "jpeg":
		return jpeg.Decode(f)
	case "bmp":
		return bmp.Decode(f)
	case "webp":
		return webp.Decode(f)
	}
	return nil, fmt.Errorf("%w: image format %q", core.ErrUnsupportedMedia, format)
}

// toRGBA8 returns tightly packed, non-premultiplied RGBA rows.
func toRGBA8(img image.Image) ([]byte, int, int) {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst.Pix, b.Dx(), b.Dy()
}
