package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Paths != def.Paths || cfg.Log != def.Log {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
	if cfg.Aseprite.DefaultFrameMs != 100 {
		t.Fatalf("default_frame_ms = %d", cfg.Aseprite.DefaultFrameMs)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rlres.toml")
	content := `
[paths]
src = "art"

[log]
level = "warn"

[pipeline]
disabled_exporters = ["sound", "font"]

[aseprite]
image_extensions = [".png"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Paths.Src != "art" || cfg.Paths.Out != "resources" {
		t.Errorf("paths = %+v", cfg.Paths)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Prefix != "rlres" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if !slices.Equal(cfg.Aseprite.ImageExtensions, []string{".png"}) || cfg.Aseprite.DefaultFrameMs != 100 {
		t.Errorf("aseprite = %+v", cfg.Aseprite)
	}

	opts := cfg.PipelineOptions()
	if opts.SrcRoot != "art" || !slices.Equal(opts.DisabledExporters, []string{"sound", "font"}) {
		t.Errorf("PipelineOptions = %+v", opts)
	}
	if opts.IndexBin != "resources.idx" || opts.IndexJSON != "resources_index.json" {
		t.Errorf("index names = %q, %q", opts.IndexJSON, opts.IndexBin)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "syntax", content: "[paths\nsrc = 1"},
		{name: "unknown key", content: "[paths]\nsource = \"x\""},
		{name: "bad frame ms", content: "[aseprite]\ndefault_frame_ms = 0"},
		{name: "empty out", content: "[paths]\nout = \"\""},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "rlres.toml")
		if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}
