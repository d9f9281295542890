package metadata

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/serialize"
)

/**
 * @brief A serializable resource model. Every model knows its persisted type
 * id and format version, and writes the fields that follow the common header.
 */
type Resource interface {
	TypeID() resources.TypeID
	Version() uint32
	Serialize(w *serialize.Writer, log *core.Logger)
}

// Encode writes the header followed by the model body.
func Encode(w io.Writer, r Resource, log *core.Logger) error {
	sw := serialize.NewWriter(w)
	sw.Header(uint32(r.TypeID()), r.Version())
	r.Serialize(sw, log)
	return sw.Err()
}

// WriteFile encodes r into path, creating parent directories.
func WriteFile(path string, r Resource, log *core.Logger) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := Encode(bw, r, log); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ResFilepath is out/<rid>.res.
func ResFilepath(outDir string, rid resources.ResourceID) string {
	return filepath.Join(outDir, core.ResFilename(rid))
}
