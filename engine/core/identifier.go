package core

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// MakeNID joins a type name and a resource name into "type.name".
// No case normalization happens here.
func MakeNID(typeName, name string) string {
	return typeName + "." + name
}

// ParseNID splits a NID on its first '.' and lowercases both halves.
func ParseNID(nid string) (string, string, error) {
	typeName, name, ok := strings.Cut(nid, ".")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedNID, nid)
	}
	return strings.ToLower(typeName), strings.ToLower(name), nil
}

// FNV1a32 hashes the UTF-8 bytes of s with 32-bit FNV-1a.
func FNV1a32(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// ResFilename is the output file name for a resource id.
func ResFilename(rid uint32) string {
	return fmt.Sprintf("%d.res", rid)
}
