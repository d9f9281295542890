// Package aseprite converts Aseprite sprite sheet exports into intermediate
// atlas, animation set and collider profile documents.
//
// A sheet is a JSON export next to an image with the same stem. Layers are
// told apart by the "(kind)" part of each frame name:
//
//	hero (atlas) 3      sprite frame 3
//	hero (pivot) 3      pivot marker for frame 3
//	hero (hurt_0) 3     hurt box track 0, frame 3
//	hero (hit_1) 3      hit box track 1, frame 3
//
// An optional <stem>.meta.json (or .meta.yaml) adds the default pivot,
// animation keys, events and direction solver entries.
package aseprite

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/rlres/engine/assets"
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/safejson"
)

const (
	Name   = "aseprite"
	Subdir = "aseprite"

	metaSuffix = ".meta"

	DefaultFrameMs = 100
)

var _ assets.Converter = (*Converter)(nil)

type Converter struct {
	log             *core.Logger
	p               *safejson.Parser
	imageExtensions []string
	defaultFrameMs  int
}

// Option tunes a Converter.
type Option func(*Converter)

func WithImageExtensions(exts []string) Option {
	return func(c *Converter) {
		if len(exts) > 0 {
			c.imageExtensions = exts
		}
	}
}

func WithDefaultFrameMs(ms int) Option {
	return func(c *Converter) {
		if ms > 0 {
			c.defaultFrameMs = ms
		}
	}
}

func NewConverter(log *core.Logger, opts ...Option) *Converter {
	c := &Converter{
		log:             log,
		p:               safejson.NewParser(log),
		imageExtensions: DefaultImageExtensions,
		defaultFrameMs:  DefaultFrameMs,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Converter) Name() string       { return Name }
func (c *Converter) Subdir() string     { return Subdir }
func (c *Converter) Patterns() []string { return []string{"*.json"} }

// ConvertOne converts one sheet. Meta documents are skipped; they are read
// alongside their sheet.
func (c *Converter) ConvertOne(srcPath, _ string, outRoot string) error {
	base := filepath.Base(srcPath)
	if strings.HasSuffix(base, metaSuffix+".json") {
		return nil
	}
	atlasID := stripExt(base)

	img, err := findTexture(c.log, filepath.Dir(srcPath), atlasID, c.imageExtensions)
	if err != nil {
		return err
	}
	texPath, err := copyTexture(c.log, img, outRoot, atlasID)
	if err != nil {
		return err
	}

	sheet, order := c.loadSheet(srcPath)
	rawMeta := c.loadMeta(srcPath)
	meta := parseSheetMeta(c.p, rawMeta)

	groups := GroupFrames(c.log, NormalizeFrames(c.p, sheet, order))
	names := FrameNames(c.p, sheet, groups.Atlas)
	tags := frameTags(c.p, sheet)

	pivots := FramePivots(c.p, groups.Atlas, groups.Pivots, PivotFromMeta(c.p, rawMeta))
	entries, offsets := FrameEntries(c.p, groups.Atlas, names, pivots, c.defaultFrameMs)

	profile := BuildColliderProfile(c.p, atlasID, sheet, groups, PivotPixels(c.log, groups.Atlas, entries, pivots))

	atlasPath, err := writeAtlas(c.log, outRoot, AtlasDoc{
		ID:      atlasID,
		Texture: atlasID,
		Sprites: AtlasSprites(entries, offsets),
	})
	if err != nil {
		return err
	}
	animPath, err := writeAnimSet(c.log, outRoot, BuildAnimSet(c.p, atlasID, atlasID, tags, entries, offsets, meta))
	if err != nil {
		return err
	}
	profilePath, err := writeColliderProfile(outRoot, atlasID, profile)
	if err != nil {
		return err
	}

	c.log.Info("[Aseprite] %s -> %s, %s, %s (and %s)", base,
		rel(outRoot, atlasPath), rel(outRoot, animPath), rel(outRoot, profilePath), rel(outRoot, texPath))
	return nil
}

// loadSheet also returns the source order of hash-layout frames.
func (c *Converter) loadSheet(path string) (safejson.Object, []string) {
	sheet := safejson.LoadObject(c.log, path)
	data, err := os.ReadFile(path)
	if err != nil {
		return sheet, nil
	}
	order, err := safejson.KeyOrder(data, "frames")
	if err != nil {
		c.log.Debug("could not read frame order of %q: %s", path, err)
		return sheet, nil
	}
	return sheet, order
}

// loadMeta returns nil when the sheet has no companion meta document.
func (c *Converter) loadMeta(sheetPath string) safejson.Object {
	stem := strings.TrimSuffix(sheetPath, filepath.Ext(sheetPath))
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		path := stem + metaSuffix + ext
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			return safejson.LoadObject(c.log, path)
		}
	}
	return nil
}

func rel(root, path string) string {
	if r, err := filepath.Rel(root, path); err == nil {
		return r
	}
	return path
}
