package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/laminagraph/lamina/pkg/pipeline"
)

// Config holds user defaults loaded from the config file. Every field maps
// onto a pipeline option; command-line flags override config values.
//
// Example ~/.config/lamina/config.toml:
//
//	rankdir = "lr"
//	ranksep = 70.0
//	formats = ["json", "svg"]
type Config struct {
	RankDir   string   `toml:"rankdir"`
	NodeSep   *float64 `toml:"nodesep"`
	RankSep   *float64 `toml:"ranksep"`
	EdgeSep   *float64 `toml:"edgesep"`
	MarginX   *float64 `toml:"marginx"`
	MarginY   *float64 `toml:"marginy"`
	Ranker    string   `toml:"ranker"`
	Acyclicer string   `toml:"acyclicer"`
	Formats   []string `toml:"formats"`
}

// DefaultConfig returns the zero config, which defers every default to the
// pipeline.
func DefaultConfig() Config {
	return Config{}
}

// LoadConfig reads the config file at path. An empty path falls back to the
// default location; a missing file at the default location is not an error.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}

	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// Options converts the config into base pipeline options.
func (cfg Config) Options() pipeline.Options {
	return pipeline.Options{
		RankDir:   cfg.RankDir,
		NodeSep:   cfg.NodeSep,
		RankSep:   cfg.RankSep,
		EdgeSep:   cfg.EdgeSep,
		MarginX:   cfg.MarginX,
		MarginY:   cfg.MarginY,
		Ranker:    cfg.Ranker,
		Acyclicer: cfg.Acyclicer,
		Formats:   cfg.Formats,
	}
}

// defaultConfigPath returns the config file location using XDG standard
// (~/.config/lamina/config.toml).
func defaultConfigPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.toml")
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}
