package resources

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/safejson"
	"github.com/spaghettifunk/rlres/engine/serialize"
)

/** @brief Format version of resources.idx. */
const IndexVersion uint32 = 1

type indexDocument struct {
	Resources []entryRecord `json:"resources"`
	Build     string        `json:"build,omitempty"`
}

// WriteIndexJSON dumps every entry for humans. buildID may be empty.
func (idx *Index) WriteIndexJSON(path, buildID string) error {
	doc := indexDocument{
		Resources: make([]entryRecord, 0, len(idx.entries)),
		Build:     buildID,
	}
	for _, e := range idx.entries {
		doc.Resources = append(doc.Resources, e.record())
	}
	if err := safejson.WriteIndented(path, doc); err != nil {
		return err
	}
	idx.log.Info("Wrote resource index JSON with %d entries to %s", len(idx.entries), path)
	return nil
}

// WriteIndex writes the flat binary table.
func (idx *Index) WriteIndex(w io.Writer) error {
	sw := serialize.NewWriter(w)
	sw.Header(uint32(TypeIDResourceIndex), IndexVersion)
	sw.Usize(len(idx.entries))
	for _, e := range idx.entries {
		sw.U32(e.RID)
		sw.U32(uint32(e.TypeID))
		sw.String(e.NID)
	}
	return sw.Err()
}

// WriteIndexFile writes resources.idx.
func (idx *Index) WriteIndexFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := idx.WriteIndex(bw); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	idx.log.Info("Wrote resource index binary with %d entries to %s", len(idx.entries), path)
	return nil
}

/** @brief One row of resources.idx. */
type IndexRecord struct {
	RID    ResourceID
	TypeID TypeID
	NID    string
}

// ReadIndex parses a binary index.
func ReadIndex(r io.Reader) ([]IndexRecord, error) {
	sr := serialize.NewReader(r)
	h, err := sr.Header()
	if err != nil {
		return nil, err
	}
	if TypeID(h.ResourceType) != TypeIDResourceIndex {
		return nil, fmt.Errorf("%w: resource type %d is not a resource index", core.ErrBadMagic, h.ResourceType)
	}
	if h.Version != IndexVersion {
		return nil, fmt.Errorf("unsupported resource index version %d", h.Version)
	}
	count := sr.Usize()
	if err := sr.Err(); err != nil {
		return nil, err
	}
	records := make([]IndexRecord, 0, min(count, 1<<16))
	for i := 0; i < count; i++ {
		rec := IndexRecord{
			RID:    sr.U32(),
			TypeID: TypeID(sr.U32()),
			NID:    sr.String(),
		}
		if err := sr.Err(); err != nil {
			return nil, fmt.Errorf("reading entry %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func ReadIndexFile(path string) ([]IndexRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadIndex(bufio.NewReader(f))
}
