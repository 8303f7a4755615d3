package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaguesim/league-sim/sim/league"
	"github.com/leaguesim/league-sim/sim/report"
)

func TestSimulator_Deterministic(t *testing.T) {
	// GIVEN the same config and seed twice
	// WHEN both runs complete
	_, a := runChronicle(t, smallConfig(11), league.DefaultConfig())
	_, b := runChronicle(t, smallConfig(11), league.DefaultConfig())

	// THEN the chronicles are identical
	assert.Equal(t, a, b)
	assert.Len(t, a.Formations, 2)
}

func TestSimulator_DifferentSeeds_Differ(t *testing.T) {
	_, a := runChronicle(t, smallConfig(1), league.DefaultConfig())
	_, b := runChronicle(t, smallConfig(2), league.DefaultConfig())

	assert.NotEqual(t, a.Formations, b.Formations)
}

func TestSimulator_LeagueHistoryIndependentOfLaterLeagues(t *testing.T) {
	// GIVEN one run with a second league and one without it
	withTwo := smallConfig(5)
	withOne := smallConfig(5)
	withOne.FoundingYears = []int{1900}

	// WHEN both run
	_, two := runChronicle(t, withTwo, league.DefaultConfig())
	_, one := runChronicle(t, withOne, league.DefaultConfig())

	// THEN the first league's seasons are the same in both
	first := one.Formations[0].LeagueName
	require.Equal(t, first, two.Formations[0].LeagueName)
	assert.Equal(t, seasonsOf(one, first), seasonsOf(two, first))
}

func seasonsOf(c *report.Chronicle, name string) []report.SeasonReport {
	var out []report.SeasonReport
	for _, s := range c.Seasons {
		if s.LeagueName == name {
			out = append(out, s)
		}
	}
	return out
}

func TestSimulator_OneOffseasonReportPerLeagueYear(t *testing.T) {
	// GIVEN no folding
	cfg := smallConfig(8)

	// WHEN the run completes
	s, c := runChronicle(t, cfg, league.DefaultConfig())

	// THEN every league produced exactly one expansion report per year it existed
	// AND the calendar reached the end year
	want := 0
	for _, l := range s.Leagues {
		want += cfg.StartYear + cfg.Years - l.Founded
		assert.Equal(t, l.Champions.Len(), len(l.Seasons))
	}
	assert.Len(t, c.Expansions, want)
	assert.Equal(t, 1915, s.Country.Year())
	assert.True(t, s.Done())
}

func TestSimulator_EmptyLeague_SkipsSeasonsWithoutError(t *testing.T) {
	// GIVEN leagues whose charter lottery never draws a city and can never expand
	leagueCfg := league.DefaultConfig()
	leagueCfg.CharterSize = league.Normal{}
	leagueCfg.ExpansionDraws = league.Normal{}
	cfg := smallConfig(3)
	cfg.FoundingYears = []int{1900}

	// WHEN the run completes
	s, c := runChronicle(t, cfg, leagueCfg)

	// THEN the founding was degenerate, no season was played and each year still got an expansion round
	require.Len(t, c.Formations, 1)
	assert.True(t, c.Formations[0].Degenerate)
	assert.Empty(t, c.Seasons)
	assert.Len(t, c.Expansions, cfg.Years)
	assert.Empty(t, s.Leagues[0].Teams)
}

func TestSimulator_FoldRateOne_FoldsAndReplaces(t *testing.T) {
	cfg := smallConfig(4)
	cfg.FoldRate = 1

	s, c := runChronicle(t, cfg, league.DefaultConfig())

	replacements := 0
	for _, e := range c.Expansions {
		if e.Replacement {
			replacements++
			assert.True(t, e.GatePassed)
		}
	}
	defunct := 0
	for _, l := range s.Leagues {
		defunct += len(l.Defunct)
	}
	assert.Positive(t, defunct)
	assert.Equal(t, defunct, replacements)
}

func TestNewSimulator_FoundingBeforeStart(t *testing.T) {
	cfg := smallConfig(1)
	cfg.FoundingYears = []int{1899}
	rng := NewPartitionedRNG(NewSimulationKey(1))
	country, err := BuildCountry(cfg, rng)
	require.NoError(t, err)

	_, err = NewSimulator(cfg, league.DefaultConfig(), country, rng, report.NewChronicle(1))

	assert.Error(t, err)
}

type failingSink struct{ report.Chronicle }

var errSink = errors.New("sink failed")

func (f *failingSink) RecordFormation(report.FormationReport) error { return errSink }

func TestSimulator_SinkError_AbortsRun(t *testing.T) {
	cfg := smallConfig(6)
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	country, err := BuildCountry(cfg, rng)
	require.NoError(t, err)
	s, err := NewSimulator(cfg, league.DefaultConfig(), country, rng, &failingSink{})
	require.NoError(t, err)

	err = s.Run(context.Background())

	assert.ErrorIs(t, err, errSink)
	assert.False(t, s.Done())
	assert.Equal(t, 1900, s.Country.Year())
}

func TestSimulator_CancelledContext(t *testing.T) {
	cfg := smallConfig(6)
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	country, err := BuildCountry(cfg, rng)
	require.NoError(t, err)
	s, err := NewSimulator(cfg, league.DefaultConfig(), country, rng, report.NewChronicle(cfg.Seed))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1900, s.Country.Year())
}

func TestSimulator_Step_FoundsOnSchedule(t *testing.T) {
	cfg := smallConfig(9)
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	country, err := BuildCountry(cfg, rng)
	require.NoError(t, err)
	s, err := NewSimulator(cfg, league.DefaultConfig(), country, rng, report.NewChronicle(cfg.Seed))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Step())
		assert.Len(t, s.Leagues, 1, "after %d steps", i+1)
	}
	require.NoError(t, s.Step())
	assert.Len(t, s.Leagues, 2)
	assert.NotEqual(t, s.Leagues[0].Name, s.Leagues[1].Name)
}
