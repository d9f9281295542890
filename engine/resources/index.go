package resources

import (
	"fmt"

	"github.com/spaghettifunk/rlres/engine/core"
)

type bucket struct {
	order  []*Entry
	byName map[string]*Entry
}

func (b *bucket) clone() *bucket {
	c := &bucket{
		order:  make([]*Entry, len(b.order)),
		byName: make(map[string]*Entry, len(b.byName)),
	}
	copy(c.order, b.order)
	for k, v := range b.byName {
		c.byName[k] = v
	}
	return c
}

// IndexBuilder collects entries during discovery.
type IndexBuilder struct {
	log     *core.Logger
	entries []*Entry
	byType  map[TypeName]*bucket
	byRID   map[ResourceID]*Entry
}

func NewIndexBuilder(log *core.Logger) *IndexBuilder {
	return &IndexBuilder{
		log:    log,
		byType: make(map[TypeName]*bucket),
		byRID:  make(map[ResourceID]*Entry),
	}
}

// Add registers a resource. (type, name) must be unique across the build and
// two different NIDs must not hash to the same RID.
func (b *IndexBuilder) Add(typeName TypeName, name, srcPath string) (*Entry, error) {
	bk, ok := b.byType[typeName]
	if !ok {
		bk = &bucket{byName: make(map[string]*Entry)}
		b.byType[typeName] = bk
	}

	if existing, dup := bk.byName[name]; dup {
		b.log.Error("Duplicate resource %s.%s (existing src=%q, new src=%q)", typeName, name, existing.SrcPath, srcPath)
		return nil, fmt.Errorf("%w: %s.%s", core.ErrDuplicateResource, typeName, name)
	}

	entry := newEntry(b.log, typeName, name, srcPath)
	if other, clash := b.byRID[entry.RID]; clash {
		b.log.Error("Resource id %d of %s collides with %s", entry.RID, entry.NID, other.NID)
		return nil, fmt.Errorf("%w: %s and %s both hash to %d", core.ErrRIDCollision, entry.NID, other.NID, entry.RID)
	}

	b.entries = append(b.entries, entry)
	bk.order = append(bk.order, entry)
	bk.byName[name] = entry
	b.byRID[entry.RID] = entry
	return entry, nil
}

// Len returns the number of registered entries.
func (b *IndexBuilder) Len() int {
	return len(b.entries)
}

// ToIndex snapshots the builder. Entries are shared, containers are copied.
func (b *IndexBuilder) ToIndex() *Index {
	idx := &Index{
		log:     b.log,
		entries: make([]*Entry, len(b.entries)),
		byType:  make(map[TypeName]*bucket, len(b.byType)),
	}
	copy(idx.entries, b.entries)
	for t, bk := range b.byType {
		idx.byType[t] = bk.clone()
	}
	return idx
}

// Index is the frozen, read-only view handed to exporters.
type Index struct {
	log     *core.Logger
	entries []*Entry
	byType  map[TypeName]*bucket
}

// Entries returns every entry in registration order.
func (idx *Index) Entries() []*Entry {
	out := make([]*Entry, len(idx.entries))
	copy(out, idx.entries)
	return out
}

func (idx *Index) Len() int {
	return len(idx.entries)
}

// ByType returns the entries of one type in registration order.
func (idx *Index) ByType(typeName TypeName) []*Entry {
	bk, ok := idx.byType[typeName]
	if !ok {
		return nil
	}
	out := make([]*Entry, len(bk.order))
	copy(out, bk.order)
	return out
}

func (idx *Index) Get(typeName TypeName, name string) (*Entry, bool) {
	bk, ok := idx.byType[typeName]
	if !ok {
		return nil, false
	}
	e, ok := bk.byName[name]
	return e, ok
}

// GetRID resolves (type, name). Missing entries warn and yield InvalidResourceID.
func (idx *Index) GetRID(typeName TypeName, name string) ResourceID {
	e, ok := idx.Get(typeName, name)
	if !ok {
		idx.log.Warn("Invalid or unknown resource ID requested: %s; returning INVALID_RESOURCE_ID",
			core.MakeNID(string(typeName), name))
		return InvalidResourceID
	}
	return e.RID
}

// RIDFromNID parses and resolves a NID. An empty NID is silently invalid,
// a malformed one warns. Neither is an error.
func (idx *Index) RIDFromNID(nid string) ResourceID {
	if nid == "" {
		return InvalidResourceID
	}
	typeName, name, err := core.ParseNID(nid)
	if err != nil {
		idx.log.Warn("Invalid NID string %q; returning INVALID_RESOURCE_ID (%s)", nid, err)
		return InvalidResourceID
	}
	return idx.GetRID(TypeName(typeName), name)
}
