package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/resources"
)

func TestRunBuildsAndInspects(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "res")
	if err := os.MkdirAll(filepath.Join(src, "mat"), 0o755); err != nil {
		t.Fatal(err)
	}
	doc := `{"move_scale": 1, "ground_damping": 0, "friction": 0.2, "restitution": 0, "air_drag": 0}`
	if err := os.WriteFile(filepath.Join(src, "mat", "mud.json"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	cfg := filepath.Join(t.TempDir(), "missing.toml")
	if code := run([]string{"--config", cfg, "--log-level", "error", src, out}, &stdout, &stderr); code != 0 {
		t.Fatalf("run exited %d: %s", code, stderr.String())
	}

	res := filepath.Join(out, "mat", core.ResFilename(resources.ComputeRID("mat.mud")))
	stdout.Reset()
	if code := run([]string{"--inspect", res}, &stdout, &stderr); code != 0 {
		t.Fatalf("inspect exited %d: %s", code, stderr.String())
	}
	if got := stdout.String(); !strings.Contains(got, "magic=0x524c5253") || !strings.Contains(got, "(mat)") {
		t.Fatalf("inspect output = %q", got)
	}
}

func TestRunRejectsSinglePath(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := filepath.Join(t.TempDir(), "missing.toml")
	if code := run([]string{"--config", cfg, "only-src"}, &stdout, &stderr); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}

func TestInspectRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.res")
	if err := os.WriteFile(path, []byte("PNG\x00\x00\x00\x00\x00\x00\x00\x00\x00"), 0o644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--inspect", path}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}
