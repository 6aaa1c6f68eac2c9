package config

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapLookup serves environment lookups from a map.
func mapLookup(env map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "card-fusion.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load("", nil, mapLookup(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := writeYAML(t, `
log_level: debug
human_logs: true
blue_value: 40
workers: 4
engine: opencv
resize: 640x480
report: run.json
`)
	cfg, err := load(path, nil, mapLookup(nil))
	require.NoError(t, err)

	assert.Equal(t, &Config{
		LogLevel:  "debug",
		HumanLogs: true,
		BlueValue: 40,
		Workers:   4,
		Engine:    "opencv",
		Resize:    "640x480",
		Report:    "run.json",
	}, cfg)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeYAML(t, "workers: 3\nblue_value: 10\n")
	dotenv := map[string]string{
		EnvWorkers:   "2",
		EnvBlueValue: "5",
		EnvEngine:    "opencv",
	}
	env := map[string]string{
		EnvWorkers: "8",
	}

	cfg, err := load(path, dotenv, mapLookup(env))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers, "environment beats YAML")
	assert.Equal(t, 10, cfg.BlueValue, "YAML beats .env")
	assert.Equal(t, "opencv", cfg.Engine, ".env beats defaults")
}

func TestLoad_MissingYAML(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "absent.yaml"), nil, mapLookup(nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeYAML(t, "workers: [1, 2\n")
	_, err := load(path, nil, mapLookup(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_BadEnvValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{EnvWorkers, "many"},
		{EnvBlueValue, "blue"},
		{EnvHumanLogs, "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, err := load("", nil, mapLookup(map[string]string{tt.key: tt.value}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"info level", func(c *Config) { c.LogLevel = "info" }, false},
		{"upper-case level", func(c *Config) { c.LogLevel = "DEBUG" }, false},
		{"unknown level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"empty level", func(c *Config) { c.LogLevel = "" }, true},
		{"blue 255", func(c *Config) { c.BlueValue = 255 }, false},
		{"blue 256", func(c *Config) { c.BlueValue = 256 }, true},
		{"blue negative", func(c *Config) { c.BlueValue = -1 }, true},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"opencv engine", func(c *Config) { c.Engine = "opencv" }, false},
		{"unknown engine", func(c *Config) { c.Engine = "gpu" }, true},
		{"good resize", func(c *Config) { c.Resize = "100x50" }, false},
		{"bad resize", func(c *Config) { c.Resize = "100" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseResize(t *testing.T) {
	tests := []struct {
		in      string
		want    image.Point
		wantErr bool
	}{
		{"", image.Point{}, false},
		{"640x480", image.Pt(640, 480), false},
		{"32X16", image.Pt(32, 16), false},
		{"640", image.Point{}, true},
		{"0x10", image.Point{}, true},
		{"10x-1", image.Point{}, true},
		{"axb", image.Point{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseResize(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
