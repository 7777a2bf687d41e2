// Package config loads the mondrian configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/mondrian/config.toml
// (falling back to ~/.config/mondrian/config.toml). Every key is optional;
// missing keys keep their defaults and a missing default file is not an
// error. Command-line flags override values from the file.
//
//	[canvas]
//	size = 1000.0
//	step = 50
//
//	[generator]
//	strategy = "sequential"
//	x_split_threshold = 0.5
//	y_split_threshold = 0.5
//	color_threshold = 0.7
//
//	[render]
//	stroke_width = 15.0
//	scale = 1.0
//
//	[palette]
//	yellow = "#FFD500"
//
//	[server]
//	addr = ":8080"
//
//	[snapshot]
//	dir = "."
//	prefix = "mondrian"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/layout"
	"github.com/matzehuels/mondrian/pkg/palette"
	"github.com/matzehuels/mondrian/pkg/pipeline"
)

// AppName names the configuration directory.
const AppName = "mondrian"

// FileName is the configuration file name inside the directory.
const FileName = "config.toml"

// Config is the decoded configuration file.
type Config struct {
	Canvas    CanvasConfig    `toml:"canvas"`
	Generator GeneratorConfig `toml:"generator"`
	Render    RenderConfig    `toml:"render"`
	Palette   PaletteConfig   `toml:"palette"`
	Server    ServerConfig    `toml:"server"`
	Snapshot  SnapshotConfig  `toml:"snapshot"`
}

type CanvasConfig struct {
	Size float64 `toml:"size"`
	Step int     `toml:"step"`
}

type GeneratorConfig struct {
	Strategy        string  `toml:"strategy"`
	XSplitThreshold float64 `toml:"x_split_threshold"`
	YSplitThreshold float64 `toml:"y_split_threshold"`
	ColorThreshold  float64 `toml:"color_threshold"`
}

type RenderConfig struct {
	StrokeWidth float64 `toml:"stroke_width"`
	Scale       float64 `toml:"scale"`
}

// PaletteConfig overrides display colours. Empty entries keep the default.
type PaletteConfig struct {
	White  string `toml:"white,omitempty"`
	Blue   string `toml:"blue,omitempty"`
	Red    string `toml:"red,omitempty"`
	Yellow string `toml:"yellow,omitempty"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type SnapshotConfig struct {
	Dir    string `toml:"dir"`
	Prefix string `toml:"prefix"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: CanvasConfig{
			Size: pipeline.DefaultSize,
			Step: pipeline.DefaultStep,
		},
		Generator: GeneratorConfig{
			Strategy:        string(layout.DefaultStrategy),
			XSplitThreshold: layout.DefaultXSplitThreshold,
			YSplitThreshold: layout.DefaultYSplitThreshold,
			ColorThreshold:  layout.DefaultColorThreshold,
		},
		Render: RenderConfig{
			StrokeWidth: pipeline.DefaultStrokeWidth,
			Scale:       pipeline.DefaultScale,
		},
		Server:   ServerConfig{Addr: ":8080"},
		Snapshot: SnapshotConfig{Dir: ".", Prefix: AppName},
	}
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// Path returns the default configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads and validates the file at path. An empty path loads the default
// location, where a missing file yields Default(). An explicit path that
// does not exist is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file not found: %s", path)
			}
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML on top of the defaults and validates the result.
// Unknown keys are rejected so typos do not pass silently.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every value against the same rules the pipeline applies.
func (c Config) Validate() error {
	opts := c.Options(0)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	for name, hex := range c.Palette.overrides() {
		if hex == "" {
			continue
		}
		if err := errs.ValidateHexColor(hex); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidColor, err, "palette.%s", name)
		}
	}
	if err := errs.ValidateFilePrefix(c.Snapshot.Prefix); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "server.addr cannot be empty")
	}
	return nil
}

// Theme builds the display palette from the [palette] section.
func (c Config) Theme() (palette.Theme, error) {
	theme, err := palette.ThemeFromHex(c.Palette.overrides())
	if err != nil {
		return palette.Theme{}, errs.Wrap(errs.ErrCodeInvalidColor, err, "palette")
	}
	return theme, nil
}

// Options converts the configuration into pipeline options for seed. The
// theme is left nil when the palette cannot be parsed; Validate reports
// that case.
func (c Config) Options(seed uint64) pipeline.Options {
	opts := pipeline.Options{
		Size:            c.Canvas.Size,
		Step:            c.Canvas.Step,
		Seed:            seed,
		Strategy:        c.Generator.Strategy,
		XSplitThreshold: pipeline.Float(c.Generator.XSplitThreshold),
		YSplitThreshold: pipeline.Float(c.Generator.YSplitThreshold),
		ColorThreshold:  pipeline.Float(c.Generator.ColorThreshold),
		StrokeWidth:     pipeline.Float(c.Render.StrokeWidth),
		Scale:           c.Render.Scale,
	}
	if theme, err := c.Theme(); err == nil {
		opts.Theme = &theme
	}
	return opts
}

// Encode renders the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefault writes Default() to path, creating parent directories. It
// refuses to overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errs.New(errs.ErrCodeInvalidPath, "config file already exists: %s", path)
		}
	}
	data, err := Default().Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (p PaletteConfig) overrides() map[string]string {
	return map[string]string{
		"white":  p.White,
		"blue":   p.Blue,
		"red":    p.Red,
		"yellow": p.Yellow,
	}
}
