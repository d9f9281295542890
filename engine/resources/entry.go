package resources

import "github.com/spaghettifunk/rlres/engine/core"

/**
 * @brief One discovered source asset. RID, type id and NID are derived once
 * from the type name and name. Entries are never modified after creation.
 */
type Entry struct {
	TypeName TypeName
	Name     string
	SrcPath  string

	RID    ResourceID
	TypeID TypeID
	NID    string
}

func newEntry(log *core.Logger, typeName TypeName, name, srcPath string) *Entry {
	nid := core.MakeNID(string(typeName), name)
	return &Entry{
		TypeName: typeName,
		Name:     name,
		SrcPath:  srcPath,
		RID:      ComputeRID(nid),
		TypeID:   TypeIDOf(log, typeName),
		NID:      nid,
	}
}

// Filename is the output file name, "<rid>.res".
func (e *Entry) Filename() string {
	return core.ResFilename(e.RID)
}

type entryRecord struct {
	RID    ResourceID `json:"rid"`
	NID    string     `json:"nid"`
	Type   TypeName   `json:"type"`
	TypeID TypeID     `json:"type_id"`
	Name   string     `json:"name"`
	Src    string     `json:"src"`
}

func (e *Entry) record() entryRecord {
	return entryRecord{
		RID:    e.RID,
		NID:    e.NID,
		Type:   e.TypeName,
		TypeID: e.TypeID,
		Name:   e.Name,
		Src:    e.SrcPath,
	}
}
