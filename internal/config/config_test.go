package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gemrush.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, 5000, cfg.App.StartingBalance)
	require.Equal(t, 5000, cfg.Rain.TotalAmount)
	require.Len(t, cfg.Tiers, 5)
	require.Len(t, cfg.Cases, 5)
}

func TestLoadAppliesDefaultsForMissingValues(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
app {
  log_level = "debug"
}

rain {
  total_amount = 1000
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.App.LogLevel)
	require.Equal(t, "gemrush.json", cfg.App.DataFile)
	require.Equal(t, 1000, cfg.Rain.TotalAmount)
	require.Equal(t, 1800, cfg.Rain.CountdownSeconds)
	require.Len(t, cfg.Tiers, 5)
}

func TestLoadParsesTierAndCaseBlocks(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
tier "Junk" {
  value_factor = 0.5
  probability  = 0.8
}

tier "Gold" {
  value_factor = 4.0
  probability  = 0.2
}

case "Test Case" {
  type  = 2
  price = 150
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	tiers := cfg.RewardTiers()
	require.Len(t, tiers, 2)
	require.Equal(t, "Junk", tiers[0].Name)
	require.Equal(t, 0.8, tiers[0].Probability)

	cs := cfg.CaseByName("Test Case")
	require.NotNil(t, cs)
	require.Equal(t, 2, cs.Type)
	require.Equal(t, 150, cs.Price)
	require.Nil(t, cfg.CaseByName("Unknown"))
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `app { log_level = `)
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"negative starting balance", func(c *Config) { c.App.StartingBalance = -1 }, true},
		{"zero rain amount", func(c *Config) { c.Rain.TotalAmount = 0 }, true},
		{"zero countdown", func(c *Config) { c.Rain.CountdownSeconds = 0 }, true},
		{"probabilities not summing to one", func(c *Config) { c.Tiers[0].Probability = 0.9 }, true},
		{"zero value factor", func(c *Config) { c.Tiers[0].ValueFactor = 0 }, true},
		{"unnamed tier", func(c *Config) { c.Tiers[0].Name = "" }, true},
		{"negative case type", func(c *Config) { c.Cases[0].Type = -1 }, true},
		{"zero case price", func(c *Config) { c.Cases[0].Price = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestRainConfigConversion(t *testing.T) {
	t.Parallel()

	cfg := Default()
	rc := cfg.RainConfig()
	require.Equal(t, 5000, rc.TotalAmount)
	require.Equal(t, 30*time.Minute, rc.Countdown)
	require.Equal(t, 3*time.Second, rc.DisplayDuration)
	require.Equal(t, 30*time.Minute, rc.RenewalInterval)
}
