package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/rlres/engine/assets"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "rlres.toml"

type PathsConfig struct {
	// Root of the authoring sources, one subdirectory per resource type.
	Src string `toml:"src"`
	// Root receiving the .res files and both index files.
	Out string `toml:"out"`
}

type LogConfig struct {
	Level        string `toml:"level"`
	ReportCaller bool   `toml:"report_caller"`
	Prefix       string `toml:"prefix"`
}

type PipelineConfig struct {
	DisabledExporters  []string `toml:"disabled_exporters"`
	DisabledConverters []string `toml:"disabled_converters"`
	IndexJSON          string   `toml:"index_json"`
	IndexBin           string   `toml:"index_bin"`
}

type AsepriteConfig struct {
	ImageExtensions []string `toml:"image_extensions"`
	DefaultFrameMs  int      `toml:"default_frame_ms"`
}

type Config struct {
	Paths    PathsConfig    `toml:"paths"`
	Log      LogConfig      `toml:"log"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Aseprite AsepriteConfig `toml:"aseprite"`
}

func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Src: "assets",
			Out: "resources",
		},
		Log: LogConfig{
			Level:        "info",
			ReportCaller: true,
			Prefix:       "rlres",
		},
		Pipeline: PipelineConfig{
			IndexJSON: assets.DefaultIndexJSON,
			IndexBin:  assets.DefaultIndexBin,
		},
		Aseprite: AsepriteConfig{
			ImageExtensions: []string{".png", ".jpg", ".jpeg"},
			DefaultFrameMs:  100,
		},
	}
}

// Load reads a TOML file over the defaults. A missing file yields the
// defaults; unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Paths.Src == "" || c.Paths.Out == "" {
		return errors.New("paths.src and paths.out must not be empty")
	}
	if c.Aseprite.DefaultFrameMs <= 0 {
		return fmt.Errorf("aseprite.default_frame_ms must be positive, got %d", c.Aseprite.DefaultFrameMs)
	}
	return nil
}

// PipelineOptions maps the configuration onto the pipeline's options.
func (c *Config) PipelineOptions() assets.Options {
	return assets.Options{
		SrcRoot:            c.Paths.Src,
		OutRoot:            c.Paths.Out,
		IndexJSON:          c.Pipeline.IndexJSON,
		IndexBin:           c.Pipeline.IndexBin,
		DisabledExporters:  c.Pipeline.DisabledExporters,
		DisabledConverters: c.Pipeline.DisabledConverters,
	}
}
