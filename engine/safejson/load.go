package safejson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spaghettifunk/rlres/engine/core"
)

// IsYAML reports whether a path is an authoring document in YAML.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Decode parses a document. JSON numbers are kept as json.Number so integer
// and float literals stay distinguishable.
func Decode(data []byte, yamlDoc bool) (any, error) {
	if yamlDoc {
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return normalize(v), nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return v, nil
}

// normalize converts YAML's generic maps into string-keyed objects.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, x := range t {
			t[k] = normalize(x)
		}
		return t
	case map[any]any:
		o := make(Object, len(t))
		for k, x := range t {
			o[fmt.Sprint(k)] = normalize(x)
		}
		return o
	case []any:
		for i, x := range t {
			t[i] = normalize(x)
		}
		return t
	}
	return v
}

// LoadObject reads a JSON or YAML document whose root must be an object.
// Any failure is logged as an error and yields an empty object.
func LoadObject(log *core.Logger, path string) Object {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("safe_load_json_object: failed to read %q: %s", path, err)
		return Object{}
	}
	v, err := Decode(data, IsYAML(path))
	if err != nil {
		log.Error("safe_load_json_object: failed to parse %q: %s", path, err)
		return Object{}
	}
	obj, ok := AsObject(v)
	if !ok {
		log.Error("safe_load_json_object: %q root is not an object: %s", path, TypeName(v))
		return Object{}
	}
	return obj
}

// WriteIndented writes v as two-space indented JSON, creating parent
// directories as needed.
func WriteIndented(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return os.WriteFile(path, bytes.TrimRight(buf.Bytes(), "\n"), 0o644)
}
