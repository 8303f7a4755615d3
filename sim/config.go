package sim

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/leaguesim/league-sim/sim/franchise"
	"github.com/leaguesim/league-sim/sim/world"
)

// SimConfig groups run-level parameters. League lottery tunables live in
// league.Config and are loaded separately.
type SimConfig struct {
	Seed          int64                 `yaml:"seed"`
	StartYear     int                   `yaml:"start_year"` // 0 = take the year from WorldFile
	Years         int                   `yaml:"years"`      // number of years to simulate
	FoundingYears []int                 `yaml:"founding_years"`
	CountryName   string                `yaml:"country_name"` // generated worlds only
	WorldFile     string                `yaml:"world_file"`   // empty = generate cities
	Generator     world.GeneratorConfig `yaml:"generator"`
	Growth        world.GrowthConfig    `yaml:"growth"`
	GamesPerPair  int                   `yaml:"games_per_pair"`
	FoldRate      float64               `yaml:"fold_rate"` // yearly chance a league's last-placed team folds
	Franchise     franchise.Config      `yaml:"franchise"`
}

// DefaultSimConfig returns a config that generates a world and founds three leagues.
func DefaultSimConfig() *SimConfig {
	return &SimConfig{
		Seed:          42,
		StartYear:     1871,
		Years:         100,
		FoundingYears: []int{1871, 1882, 1901},
		CountryName:   "Columbia",
		Generator: world.GeneratorConfig{
			NumCities:    120,
			LogPopMean:   10,
			LogPopStdDev: 1.2,
			Extent:       50,
		},
		Growth:       world.GrowthConfig{RateMean: 0.015, RateStdDev: 0.01},
		GamesPerPair: 4,
		Franchise:    franchise.DefaultConfig(),
	}
}

// LoadSimConfig reads a YAML run config over DefaultSimConfig.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadSimConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	cfg := DefaultSimConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges. Founding years are checked against the actual
// start year by NewSimulator, since a world file may supply it.
func (c *SimConfig) Validate() error {
	if c.Years < 0 {
		return fmt.Errorf("years must be non-negative, got %d", c.Years)
	}
	if c.StartYear < 0 {
		return fmt.Errorf("start_year must be non-negative, got %d", c.StartYear)
	}
	if c.WorldFile == "" {
		if c.StartYear == 0 {
			return fmt.Errorf("start_year is required when no world_file is given")
		}
		if c.Generator.NumCities < 1 {
			return fmt.Errorf("generator.num_cities must be >= 1, got %d", c.Generator.NumCities)
		}
		if c.Generator.LogPopStdDev < 0 || c.Generator.Extent <= 0 {
			return fmt.Errorf("generator: log_population_stddev must be >= 0 and extent > 0")
		}
	}
	if c.Growth.RateStdDev < 0 {
		return fmt.Errorf("growth.rate_stddev must be non-negative, got %f", c.Growth.RateStdDev)
	}
	if c.GamesPerPair < 1 {
		return fmt.Errorf("games_per_pair must be >= 1, got %d", c.GamesPerPair)
	}
	if c.FoldRate < 0 || c.FoldRate > 1 {
		return fmt.Errorf("fold_rate must be in [0, 1], got %f", c.FoldRate)
	}
	if !sort.IntsAreSorted(c.FoundingYears) {
		return fmt.Errorf("founding_years must be in ascending order, got %v", c.FoundingYears)
	}
	if err := c.Franchise.Validate(); err != nil {
		return fmt.Errorf("franchise: %w", err)
	}
	return nil
}

// BuildCountry loads WorldFile or generates cities from the world stream of rng.
func BuildCountry(cfg *SimConfig, rng *PartitionedRNG) (*world.Country, error) {
	if cfg.WorldFile == "" {
		cities := world.GenerateCities(rng.ForSubsystem(SubsystemWorld), cfg.Generator)
		return world.NewCountry(cfg.CountryName, cfg.StartYear, cities), nil
	}
	spec, err := world.LoadCountrySpec(cfg.WorldFile)
	if err != nil {
		return nil, err
	}
	if cfg.StartYear != 0 {
		spec.Year = cfg.StartYear
	}
	return spec.Build(), nil
}
