// Package config loads card-fusion settings from defaults, a .env file, an
// optional YAML file and CARD_FUSION_* environment variables.
package config

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DotEnvFile is read from the working directory if present.
const DotEnvFile = ".env"

// Environment variable names.
const (
	EnvLogLevel  = "CARD_FUSION_LOG_LEVEL"
	EnvHumanLogs = "CARD_FUSION_HUMAN_LOGS"
	EnvBlueValue = "CARD_FUSION_BLUE_VALUE"
	EnvWorkers   = "CARD_FUSION_WORKERS"
	EnvEngine    = "CARD_FUSION_ENGINE"
	EnvResize    = "CARD_FUSION_RESIZE"
	EnvReport    = "CARD_FUSION_REPORT"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings that are not part of the positional command line.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	HumanLogs bool   `yaml:"human_logs"`

	// BlueValue fills the blue channel of every composite (0-255).
	BlueValue int `yaml:"blue_value"`

	// Workers is the number of cards fused concurrently in batch mode.
	Workers int `yaml:"workers"`

	// Engine selects the fusion backend: "native" or "opencv".
	Engine string `yaml:"engine"`

	// Resize, when set as "<W>x<H>", scales every composite before writing.
	Resize string `yaml:"resize"`

	// Report, when set, is the path of a JSON run report.
	Report string `yaml:"report"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel: "error",
		Workers:  1,
		Engine:   "native",
	}
}

// Load builds a Config from, in increasing priority: defaults, DotEnvFile,
// the YAML file at path (skipped when path is empty) and the process
// environment. A missing DotEnvFile is ignored; a missing YAML file is not.
func Load(path string) (*Config, error) {
	dotenv, _ := godotenv.Read(DotEnvFile)
	return load(path, dotenv, os.LookupEnv)
}

// lookupFunc matches os.LookupEnv.
type lookupFunc func(key string) (string, bool)

func load(path string, dotenv map[string]string, lookup lookupFunc) (*Config, error) {
	cfg := Default()

	if err := cfg.applyEnv(func(key string) (string, bool) {
		v, ok := dotenv[key]
		return v, ok
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", DotEnvFile, err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup lookupFunc) error {
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvHumanLogs); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHumanLogs, err)
		}
		c.HumanLogs = b
	}
	if v, ok := lookup(EnvBlueValue); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBlueValue, err)
		}
		c.BlueValue = n
	}
	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}
	if v, ok := lookup(EnvEngine); ok {
		c.Engine = v
	}
	if v, ok := lookup(EnvResize); ok {
		c.Resize = v
	}
	if v, ok := lookup(EnvReport); ok {
		c.Report = v
	}
	return nil
}

// Validate checks value ranges. The returned error wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil || c.LogLevel == "" {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.BlueValue < 0 || c.BlueValue > 255 {
		return fmt.Errorf("%w: blue value %d outside 0-255", ErrInvalidConfig, c.BlueValue)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	switch c.Engine {
	case "native", "opencv":
	default:
		return fmt.Errorf("%w: unknown engine %q (want \"native\" or \"opencv\")", ErrInvalidConfig, c.Engine)
	}
	if _, err := ParseResize(c.Resize); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ParseResize parses "<W>x<H>" into a size. An empty string is the zero size,
// meaning no resize.
func ParseResize(s string) (image.Point, error) {
	if s == "" {
		return image.Point{}, nil
	}
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return image.Point{}, fmt.Errorf("resize %q: want <W>x<H>", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil || width < 1 {
		return image.Point{}, fmt.Errorf("resize %q: bad width", s)
	}
	height, err := strconv.Atoi(h)
	if err != nil || height < 1 {
		return image.Point{}, fmt.Errorf("resize %q: bad height", s)
	}
	return image.Pt(width, height), nil
}
