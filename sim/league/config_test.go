package league

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "league.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfig_PartialOverride_KeepsDefaults(t *testing.T) {
	path := writeTempYAML(t, `
modern_era_year: 1950
charter_size:
  mean: 6
  stddev: 1
name_stems:
  - name: Circuit
    weight: 1
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1950, cfg.ModernEraYear)
	assert.Equal(t, Normal{Mean: 6, StdDev: 1}, cfg.CharterSize)
	assert.Equal(t, []WeightedName{{Name: "Circuit", Weight: 1}}, cfg.NameStems)
	assert.Equal(t, 0.71, cfg.ThresholdExponent)
	assert.Equal(t, DefaultConfig().NamePrefixes, cfg.NamePrefixes)
}

func TestLoadConfig_UnknownField_Rejected(t *testing.T) {
	path := writeTempYAML(t, "threshold_exponant: 0.8\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfigValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero exponent", func(c *Config) { c.ThresholdExponent = 0 }},
		{"super-linear exponent", func(c *Config) { c.ThresholdExponent = 3 }},
		{"NaN exponent", func(c *Config) { c.ThresholdExponent = math.NaN() }},
		{"negative stddev", func(c *Config) { c.CharterSize.StdDev = -1 }},
		{"resample never reaches rank one", func(c *Config) { c.HeadquartersRankResample = Normal{Mean: -5, StdDev: 0.1} }},
		{"no rank attempts", func(c *Config) { c.MaxRankAttempts = 0 }},
		{"negative gate", func(c *Config) { c.ExpansionGateMax = -1 }},
		{"replacement below gate", func(c *Config) { c.ReplacementRoom = 10 }},
		{"empty prefixes", func(c *Config) { c.NamePrefixes = nil }},
		{"zero weight stem", func(c *Config) { c.NameStems = []WeightedName{{Name: "League", Weight: 0}} }},
		{"unnamed prefix", func(c *Config) { c.NamePrefixes = []WeightedName{{Weight: 1}} }},
		{"no name attempts", func(c *Config) { c.MaxNameAttempts = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNormal_ZeroStdDev_IsConstant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n := Normal{Mean: 2.5, StdDev: 0}
	for i := 0; i < 10; i++ {
		assert.Equal(t, 3, n.SampleInt(rng)) // half rounds away from zero
	}
}

func TestPickWeighted_RespectsWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	names := []WeightedName{{Name: "A", Weight: 3}, {Name: "B", Weight: 1}}
	counts := map[string]int{}
	for i := 0; i < 4000; i++ {
		counts[pickWeighted(rng, names)]++
	}
	assert.InDelta(t, 0.75, float64(counts["A"])/4000, 0.04)
}
