package aseprite

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/resources"
)

// DefaultImageExtensions are probed, in order, next to a sheet.
var DefaultImageExtensions = []string{".png", ".jpg", ".jpeg"}

func findTexture(log *core.Logger, dir, stem string, exts []string) (string, error) {
	tried := make([]string, 0, len(exts))
	for _, ext := range exts {
		candidate := filepath.Join(dir, stem+ext)
		if fi, err := os.Stat(candidate); err == nil && fi.Mode().IsRegular() {
			return candidate, nil
		}
		tried = append(tried, stem+ext)
	}
	list := strings.Join(tried, ", ")
	log.Error("Missing image for Aseprite sheet %q in %q (tried: %s)", stem, dir, list)
	return "", fmt.Errorf("%w: Aseprite sheet '%s' (tried: %s)", core.ErrMissingTexture, stem, list)
}

// copyTexture copies the sheet image to <outRoot>/tex/<name><ext>, with the
// extension lowercased.
func copyTexture(log *core.Logger, srcImg, outRoot, name string) (string, error) {
	dir := filepath.Join(outRoot, string(resources.TypeTexture))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, name+strings.ToLower(filepath.Ext(srcImg)))

	in, err := os.Open(srcImg)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	if fi, err := in.Stat(); err == nil {
		_ = os.Chtimes(dst, fi.ModTime(), fi.ModTime())
	}
	log.Debug("Copied texture %q -> %q", srcImg, dst)
	return dst, nil
}
