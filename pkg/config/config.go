package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/ritzau/cycle-detector/pkg/cycles"
	"github.com/spf13/pflag"
)

// DefaultFile is read from the working directory when no --config is given
const DefaultFile = "cycle-detector.toml"

// AlgorithmBoth runs every detector on the same graph
const AlgorithmBoth = "both"

// SkipAnnotation marks flags that are read directly by a command and never become config keys
const SkipAnnotation = "cycle-detector/skip-config"

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds all configuration for the application
type Config struct {
	Algorithm   string   `koanf:"algorithm"`
	Format      string   `koanf:"format"`
	Components  bool     `koanf:"components"`
	Interactive bool     `koanf:"interactive"`
	Watch       bool     `koanf:"watch"`
	Port        int      `koanf:"port"`
	Verbosity   string   `koanf:"verbosity"`
	VerboseCnt  int      `koanf:"verbose"`
	Log         Log      `koanf:"log"`
	Debounce    Debounce `koanf:"debounce"`
}

// Log configures the logging backend
type Log struct {
	JSON bool `koanf:"json"`
}

// Debounce configures how file watch events are batched
type Debounce struct {
	Quiet time.Duration `koanf:"quiet"`
	Max   time.Duration `koanf:"max"`
}

// Load loads configuration from defaults, config file, environment variables, and flags.
// Priority: Flags > Env > Config File > Defaults
//
// Flag names map to keys by turning dashes into dots, so --log-json sets log.json.
// An empty path reads DefaultFile if it exists; an explicit path must exist.
func Load(f *pflag.FlagSet, path string) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"algorithm":   AlgorithmBoth,
		"format":      FormatText,
		"components":  false,
		"interactive": false,
		"watch":       false,
		"port":        8080,
		"verbosity":   "",
		"verbose":     0,
		"log": map[string]interface{}{
			"json": false,
		},
		"debounce": map[string]interface{}{
			"quiet": 200 * time.Millisecond,
			"max":   2 * time.Second,
		},
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// 3. Environment Variables
	// Prefix: CYCLE_DETECTOR_ (e.g., CYCLE_DETECTOR_LOG_JSON=true)
	if err := k.Load(env.Provider("CYCLE_DETECTOR_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "CYCLE_DETECTOR_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.ProviderWithFlag(f, ".", k, func(fl *pflag.Flag) (string, interface{}) {
			// An empty key makes posflag drop the flag
			if _, skip := fl.Annotations[SkipAnnotation]; skip {
				return "", nil
			}
			return strings.ReplaceAll(fl.Name, "-", "."), posflag.FlagVal(f, fl)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that the loaders cannot type-check
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.Algorithms(); err != nil {
		errs = append(errs, err)
	}

	switch c.Format {
	case FormatText, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown format %q (want %s or %s)", c.Format, FormatText, FormatJSON))
	}

	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}

	if c.Debounce.Quiet <= 0 || c.Debounce.Max < c.Debounce.Quiet {
		errs = append(errs, fmt.Errorf("debounce window invalid: quiet=%s max=%s", c.Debounce.Quiet, c.Debounce.Max))
	}

	return errors.Join(errs...)
}

// Algorithms resolves the algorithm setting into the detectors to run
func (c *Config) Algorithms() ([]cycles.Algorithm, error) {
	if strings.EqualFold(strings.TrimSpace(c.Algorithm), AlgorithmBoth) {
		return cycles.Algorithms(), nil
	}

	alg, err := cycles.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return nil, err
	}
	return []cycles.Algorithm{alg}, nil
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
