package sim

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leaguesim/league-sim/sim/league"
	"github.com/leaguesim/league-sim/sim/report"
)

// smallConfig is a short generated run with two leagues.
func smallConfig(seed int64) *SimConfig {
	cfg := DefaultSimConfig()
	cfg.Seed = seed
	cfg.StartYear = 1900
	cfg.Years = 15
	cfg.FoundingYears = []int{1900, 1905}
	cfg.Generator.NumCities = 60
	cfg.GamesPerPair = 2
	cfg.Franchise.RosterSize = 5
	return cfg
}

// runChronicle runs cfg to completion and returns the simulator and its chronicle.
func runChronicle(t *testing.T, cfg *SimConfig, leagueCfg *league.Config) (*Simulator, *report.Chronicle) {
	t.Helper()
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	country, err := BuildCountry(cfg, rng)
	require.NoError(t, err)
	chron := report.NewChronicle(cfg.Seed)
	s, err := NewSimulator(cfg, leagueCfg, country, rng, chron)
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background()))
	return s, chron
}

func writeTempYAML(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
