package league

import (
	"bytes"
	"fmt"
	"math"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// Normal parameterizes a Gaussian draw.
type Normal struct {
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"stddev"`
}

// Sample draws one value.
func (n Normal) Sample(rng *rand.Rand) float64 {
	return rng.NormFloat64()*n.StdDev + n.Mean
}

// SampleInt draws one value rounded half away from zero.
func (n Normal) SampleInt(rng *rand.Rand) int {
	return int(math.Round(n.Sample(rng)))
}

// WeightedName is one alternative of the league-name grammar.
type WeightedName struct {
	Name   string `yaml:"name"`
	Weight int    `yaml:"weight"`
}

// Config holds every tunable of the lottery and the lifecycle. Build it once with
// DefaultConfig or LoadConfig and share it by pointer; nothing mutates it afterwards.
type Config struct {
	ModernEraYear     int     `yaml:"modern_era_year"`    // first year of the population-mean regime
	ThresholdExponent float64 `yaml:"threshold_exponent"` // gate threshold = floor(hqPop^exponent)

	HeadquartersRank         Normal `yaml:"headquarters_rank"`
	HeadquartersRankResample Normal `yaml:"headquarters_rank_resample"` // used while the rank is < 1
	MaxRankAttempts          int    `yaml:"max_rank_attempts"`

	CharterSize      Normal `yaml:"charter_size"`
	ExpansionCeiling Normal `yaml:"expansion_ceiling"` // sampled target league size
	ExpansionDraws   Normal `yaml:"expansion_draws"`   // franchises drawn per open round
	ExpansionGateMax int    `yaml:"expansion_gate_max"`
	ReplacementRoom  int    `yaml:"replacement_room"` // room used when replacing a folded team

	NamePrefixes    []WeightedName `yaml:"name_prefixes"`
	NameStems       []WeightedName `yaml:"name_stems"`
	MaxNameAttempts int            `yaml:"max_name_attempts"`
}

// DefaultConfig returns the baseline baseball-era parameters.
func DefaultConfig() *Config {
	return &Config{
		ModernEraYear:            1945,
		ThresholdExponent:        0.71,
		HeadquartersRank:         Normal{Mean: 0, StdDev: 4},
		HeadquartersRankResample: Normal{Mean: 0, StdDev: 1},
		MaxRankAttempts:          1000,
		CharterSize:              Normal{Mean: 9, StdDev: 2},
		ExpansionCeiling:         Normal{Mean: 13, StdDev: 3},
		ExpansionDraws:           Normal{Mean: 2, StdDev: 0.5},
		ExpansionGateMax:         45,
		ReplacementRoom:          45,
		NamePrefixes: []WeightedName{
			{Name: "American", Weight: 5},
			{Name: "National", Weight: 4},
			{Name: "Federal", Weight: 2},
			{Name: "Union", Weight: 2},
			{Name: "Continental", Weight: 2},
			{Name: "Conglomerated", Weight: 1},
			{Name: "Civil", Weight: 1},
			{Name: "United", Weight: 1},
		},
		NameStems: []WeightedName{
			{Name: "League", Weight: 1},
			{Name: "Association", Weight: 1},
		},
		MaxNameAttempts: 10000,
	}
}

// LoadConfig reads a YAML lottery configuration. Fields absent from the file keep
// their DefaultConfig values. Uses strict parsing: unrecognized keys are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading league config: %w", err)
	}
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing league config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks parameter ranges.
func (c *Config) Validate() error {
	if !(c.ThresholdExponent > 0 && c.ThresholdExponent <= 1) {
		return fmt.Errorf("threshold_exponent must be in (0, 1], got %f", c.ThresholdExponent)
	}
	for _, d := range []struct {
		name string
		n    Normal
	}{
		{"headquarters_rank", c.HeadquartersRank},
		{"headquarters_rank_resample", c.HeadquartersRankResample},
		{"charter_size", c.CharterSize},
		{"expansion_ceiling", c.ExpansionCeiling},
		{"expansion_draws", c.ExpansionDraws},
	} {
		if math.IsNaN(d.n.Mean) || math.IsInf(d.n.Mean, 0) || math.IsNaN(d.n.StdDev) || math.IsInf(d.n.StdDev, 0) {
			return fmt.Errorf("%s must have finite mean and stddev", d.name)
		}
		if d.n.StdDev < 0 {
			return fmt.Errorf("%s.stddev must be non-negative, got %f", d.name, d.n.StdDev)
		}
	}
	if c.HeadquartersRankResample.Mean+3*c.HeadquartersRankResample.StdDev < 0.5 {
		return fmt.Errorf("headquarters_rank_resample can practically never reach rank 1 (mean %f, stddev %f)",
			c.HeadquartersRankResample.Mean, c.HeadquartersRankResample.StdDev)
	}
	if c.MaxRankAttempts < 1 {
		return fmt.Errorf("max_rank_attempts must be >= 1, got %d", c.MaxRankAttempts)
	}
	if c.ExpansionGateMax < 0 {
		return fmt.Errorf("expansion_gate_max must be non-negative, got %d", c.ExpansionGateMax)
	}
	if c.ReplacementRoom < c.ExpansionGateMax {
		return fmt.Errorf("replacement_room (%d) must be >= expansion_gate_max (%d) so replacement rounds always open",
			c.ReplacementRoom, c.ExpansionGateMax)
	}
	if err := validateGrammar("name_prefixes", c.NamePrefixes); err != nil {
		return err
	}
	if err := validateGrammar("name_stems", c.NameStems); err != nil {
		return err
	}
	if c.MaxNameAttempts < 1 {
		return fmt.Errorf("max_name_attempts must be >= 1, got %d", c.MaxNameAttempts)
	}
	return nil
}

func validateGrammar(field string, names []WeightedName) error {
	if len(names) == 0 {
		return fmt.Errorf("%s must not be empty", field)
	}
	for i, n := range names {
		if n.Name == "" {
			return fmt.Errorf("%s[%d]: name is required", field, i)
		}
		if n.Weight < 1 {
			return fmt.Errorf("%s[%d]: weight must be >= 1, got %d", field, i, n.Weight)
		}
	}
	return nil
}
