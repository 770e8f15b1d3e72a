// Package config loads the dimedit configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/reoring/dimschema/dimension"
	"github.com/reoring/dimschema/grid"
	"github.com/reoring/dimschema/gridpos"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "dimedit.yaml"

// Config is the editor configuration.
//
//	data_root: App/data
//	rooms: [North, East, South, West, Floor, Ceiling, Multiverse]
//	grid: {cols: 16, rows: 12, max_size: 50}
//	log: {level: info, format: text}
//	language: ja
//	schemas: [schemas/safe.yaml]
type Config struct {
	DataRoot string   `yaml:"data_root"`
	Rooms    []string `yaml:"rooms"`
	Grid     Grid     `yaml:"grid"`
	Log      Log      `yaml:"log"`
	Language string   `yaml:"language"`
	// Schemas lists YAML schema definition files adding object kinds.
	Schemas []string `yaml:"schemas"`
}

type Grid struct {
	Cols    int `yaml:"cols"`
	Rows    int `yaml:"rows"`
	MaxSize int `yaml:"max_size"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataRoot: filepath.Join("App", "data"),
		Rooms:    append([]string(nil), dimension.DefaultRooms...),
		Grid:     Grid{Cols: gridpos.DefaultCols, Rows: gridpos.DefaultRows, MaxSize: grid.MaxSize},
		Log:      Log{Level: "info", Format: "text"},
		Language: "en",
	}
}

// Load reads path over the defaults. An empty path reads DefaultFile if it
// exists and falls back to the defaults otherwise. Relative schema paths are
// resolved against the config file's directory.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	base := filepath.Dir(path)
	for i, s := range cfg.Schemas {
		if !filepath.IsAbs(s) {
			cfg.Schemas[i] = filepath.Join(base, s)
		}
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the editor cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.DataRoot == "" {
		errs = append(errs, errors.New("config: data_root is empty"))
	}
	if c.Grid.Cols <= 0 || c.Grid.Rows <= 0 {
		errs = append(errs, fmt.Errorf("config: grid %dx%d out of range", c.Grid.Cols, c.Grid.Rows))
	}
	if c.Grid.Rows > 26 {
		errs = append(errs, fmt.Errorf("config: grid rows %d exceed the A-Z row letters", c.Grid.Rows))
	}
	if c.Grid.MaxSize <= 0 {
		errs = append(errs, fmt.Errorf("config: grid max_size %d must be positive", c.Grid.MaxSize))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("config: log format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
