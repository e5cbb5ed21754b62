package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/circuitdraw/pkg/pipeline"
)

// configFile is looked up in the working directory before the user config
// directory.
const configFile = "circuitdraw.toml"

// Config is the optional project config file. Command-line flags take
// precedence over every value here.
//
//	[render]
//	formats = ["svg", "png"]
//	font = "Inter"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "168h"
//
//	[output]
//	dir = "build/schematics"
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Output OutputConfig `toml:"output"`

	path string
}

// RenderConfig holds default render settings.
type RenderConfig struct {
	Formats     []string `toml:"formats"`
	Style       string   `toml:"style"`
	Scale       float64  `toml:"scale"`
	Margin      float64  `toml:"margin"`
	Font        string   `toml:"font"`
	FontSize    float64  `toml:"fontsize"`
	Color       string   `toml:"color"`
	Background  string   `toml:"background"`
	StrokeWidth float64  `toml:"stroke_width"`
	Seed        uint64   `toml:"seed"`
	PNGScale    float64  `toml:"png_scale"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Enabled   *bool    `toml:"enabled"`
	Backend   string   `toml:"backend"` // file (default) or redis
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	Prefix    string   `toml:"prefix"` // key namespace on a shared backend
	TTL       duration `toml:"ttl"`
}

func (c CacheConfig) enabled() bool { return c.Enabled == nil || *c.Enabled }

// OutputConfig controls where rendered files go.
type OutputConfig struct {
	Dir string `toml:"dir"`
}

// duration decodes Go duration strings such as "72h".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative duration %q", text)
	}
	d.Duration = v
	return nil
}

// Path is the file the config was read from, or "" for built-in defaults.
func (c *Config) Path() string { return c.path }

// LoadConfig reads the config at path. With an empty path it searches
// ./circuitdraw.toml then the user config directory, and returns an empty
// config when neither exists.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = findConfig()
		if path == "" {
			return &Config{}, nil
		}
	}
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := pipeline.ValidateFormats(cfg.Render.Formats); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Render.Style != "" {
		if err := pipeline.ValidateStyle(cfg.Render.Style); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if !slices.Contains([]string{"", backendFile, backendRedis}, cfg.Cache.Backend) {
		return nil, fmt.Errorf("config %s: unknown cache backend %q", path, cfg.Cache.Backend)
	}
	cfg.path = path
	return &cfg, nil
}

func findConfig() string {
	if _, err := os.Stat(configFile); err == nil {
		return configFile
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, appName, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// Apply fills render options the command line left unset.
func (c *Config) Apply(opts *pipeline.Options) {
	r := c.Render
	if len(opts.Formats) == 0 {
		opts.Formats = slices.Clone(r.Formats)
	}
	if opts.Style == "" {
		opts.Style = r.Style
	}
	if opts.Scale == 0 {
		opts.Scale = r.Scale
	}
	if opts.Margin == 0 {
		opts.Margin = r.Margin
	}
	if opts.Font == "" {
		opts.Font = r.Font
	}
	if opts.FontSize == 0 {
		opts.FontSize = r.FontSize
	}
	if opts.Color == "" {
		opts.Color = r.Color
	}
	if opts.Background == "" {
		opts.Background = r.Background
	}
	if opts.StrokeWidth == 0 {
		opts.StrokeWidth = r.StrokeWidth
	}
	if opts.Seed == 0 {
		opts.Seed = r.Seed
	}
	if opts.PNGScale == 0 {
		opts.PNGScale = r.PNGScale
	}
}
