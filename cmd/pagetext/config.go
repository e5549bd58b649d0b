package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gardar/pagetext/pkg/gdocai"
	"github.com/gardar/pagetext/pkg/pagetext"
	"github.com/gardar/pagetext/pkg/pdfglyphs"
	"github.com/gardar/pagetext/pkg/pdfoverlay"
)

// fileConfig is the YAML configuration file
type fileConfig struct {
	Segmentation      pagetext.Config `yaml:"segmentation"`
	BaselineTolerance float64         `yaml:"baseline_tolerance"`
	HiddenLayers      []string        `yaml:"hidden_layers"`
	DocAI             gdocai.Config   `yaml:"docai"`
	Overlay           overlayConfig   `yaml:"overlay"`
	Log               logConfig       `yaml:"log"`
}

type overlayConfig struct {
	LayerName string `yaml:"layer_name"`
	Debug     bool   `yaml:"debug"`
	Force     bool   `yaml:"force"`
}

type logConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn or error
	Format string `yaml:"format"` // text or json
}

func defaultConfig() fileConfig {
	return fileConfig{
		Segmentation:      pagetext.DefaultConfig(),
		BaselineTolerance: pdfglyphs.DefaultConfig().BaselineTolerance,
		Overlay:           overlayConfig{LayerName: pdfoverlay.DefaultConfig().LayerName},
		Log:               logConfig{Level: "info", Format: "text"},
	}
}

// loadConfig reads a YAML file over the defaults. An empty path yields the
// defaults.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c fileConfig) validate() error {
	var errs []error
	if err := c.Segmentation.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("segmentation: %w", err))
	}
	if c.BaselineTolerance < 0 {
		errs = append(errs, fmt.Errorf("baseline_tolerance must not be negative, got %g", c.BaselineTolerance))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

func newLogger(c logConfig, w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// visibility hides the named layers and shows every other one.
func visibility(hidden []string) pagetext.VisibilityFunc {
	set := make(map[pagetext.LayerID]bool, len(hidden))
	for _, name := range hidden {
		if name = strings.TrimSpace(name); name != "" {
			set[pagetext.LayerID(name)] = true
		}
	}
	return func(id pagetext.LayerID) bool { return !set[id] }
}
