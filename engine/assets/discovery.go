package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/resources"
)

var (
	// JSONPatterns match authoring documents.
	JSONPatterns = []string{"*.json", "*.yaml", "*.yml"}
	// ImagePatterns match decodable textures.
	ImagePatterns = []string{"*.png", "*.jpg", "*.jpeg", "*.bmp", "*.webp"}
	// SoundPatterns match decodable audio.
	SoundPatterns = []string{"*.wav", "*.mp3", "*.ogg", "*.flac"}
)

// Discovery describes which files under src/<type> belong to an exporter.
// An empty pattern list means every regular file.
type Discovery struct {
	Patterns        []string
	ExcludeSuffixes []string
}

func (d Discovery) include(name string) bool {
	for _, suf := range d.ExcludeSuffixes {
		if strings.HasSuffix(name, suf) {
			return false
		}
	}
	return true
}

// sourceFiles lists matching regular files, pattern by pattern, each
// pattern's matches sorted.
func sourceFiles(dir string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		des, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		var files []string
		for _, de := range des {
			if de.Type().IsRegular() {
				files = append(files, filepath.Join(dir, de.Name()))
			}
		}
		return files, nil
	}

	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		for _, m := range matches {
			if fi, err := os.Stat(m); err == nil && fi.Mode().IsRegular() {
				files = append(files, m)
			}
		}
	}
	return files, nil
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// Stem is the file name without its last extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DiscoverEntries registers every matching file under src/<type> for each
// type. Registration failures are fatal and returned as is.
func DiscoverEntries(log *core.Logger, owner string, srcRoot string, typeNames []resources.TypeName, d Discovery, b *resources.IndexBuilder) error {
	for _, typeName := range typeNames {
		baseDir := filepath.Join(srcRoot, string(typeName))
		if !isDir(baseDir) {
			log.Debug("%s: base directory %s does not exist for type %s; skipping", owner, baseDir, typeName)
			continue
		}

		files, err := sourceFiles(baseDir, d.Patterns)
		if err != nil {
			return err
		}
		for _, path := range files {
			if !d.include(filepath.Base(path)) {
				log.Debug("%s: excluding %s for type %s based on suffix filter", owner, path, typeName)
				continue
			}
			name := Stem(path)
			if _, err := b.Add(typeName, name, path); err != nil {
				log.Error("%s: duplicate or invalid resource %s.%s at %s: %s", owner, typeName, name, path, err)
				return err
			}
		}
	}
	return nil
}

// guard runs fn and reports a panic as an error, so one bad entry cannot stop
// the loop driving it.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

// ExportStats counts per-entry outcomes of one export pass.
type ExportStats struct {
	Exported int
	Failed   int
}

// ExportEntries builds every indexed entry of the exporter's types. A failing
// entry is logged and the loop moves on.
func ExportEntries(log *core.Logger, exp Exporter, srcRoot, outRoot string, idx *resources.Index) (ExportStats, error) {
	var stats ExportStats
	for _, typeName := range exp.TypeNames() {
		srcDir := filepath.Join(srcRoot, string(typeName))
		outDir := filepath.Join(outRoot, string(typeName))
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return stats, err
		}
		for _, e := range idx.ByType(typeName) {
			if err := guard(func() error { return exp.BuildOne(e, srcDir, outDir, idx) }); err != nil {
				log.Error("%s: failed exporting resource %q of type %s from %s: %s", exp.Name(), e.NID, typeName, e.SrcPath, err)
				stats.Failed++
				continue
			}
			stats.Exported++
		}
	}
	return stats, nil
}

// RunConverter feeds every matching file of the converter's subdirectory to
// ConvertOne. Per-file failures are logged and skipped.
func RunConverter(log *core.Logger, c Converter, srcRoot, outRoot string) (ExportStats, error) {
	var stats ExportStats
	baseDir := filepath.Join(srcRoot, c.Subdir())
	if !isDir(baseDir) {
		log.Info("%s: base directory %q does not exist; skipping", c.Name(), baseDir)
		return stats, nil
	}
	log.Info("%s: scanning %q", c.Name(), baseDir)

	files, err := sourceFiles(baseDir, c.Patterns())
	if err != nil {
		return stats, err
	}
	for _, path := range files {
		log.Debug("%s: converting %q", c.Name(), path)
		if err := guard(func() error { return c.ConvertOne(path, srcRoot, outRoot) }); err != nil {
			log.Error("%s: error while converting %q: %s", c.Name(), path, err)
			stats.Failed++
			continue
		}
		stats.Exported++
	}
	return stats, nil
}
