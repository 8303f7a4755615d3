package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/leaguesim/league-sim/sim/franchise"
	"github.com/leaguesim/league-sim/sim/league"
	"github.com/leaguesim/league-sim/sim/report"
	"github.com/leaguesim/league-sim/sim/season"
	"github.com/leaguesim/league-sim/sim/world"
)

// Simulator advances a country and its leagues one year at a time.
//
// Each year: leagues scheduled for the year are founded, every league plays its
// season and offseason in founding order, then the country's populations grow.
// Every report is forwarded to the sink in that order.
type Simulator struct {
	Country *world.Country
	Leagues []*league.League

	cfg       *SimConfig
	leagueCfg *league.Config
	rng       *PartitionedRNG
	factory   league.TeamFactory
	season    league.Season
	sink      report.Sink
	founding  []int // remaining founding years, ascending
	endYear   int
}

// NewSimulator creates a Simulator over country. rng must be the partition the
// country was built from so the world stream continues where generation stopped.
func NewSimulator(cfg *SimConfig, leagueCfg *league.Config, country *world.Country, rng *PartitionedRNG, sink report.Sink) (*Simulator, error) {
	if sink == nil {
		panic("NewSimulator: sink is nil")
	}
	start := country.Year()
	founding := make([]int, 0, len(cfg.FoundingYears))
	for _, y := range cfg.FoundingYears {
		if y < start {
			return nil, fmt.Errorf("founding year %d precedes start year %d", y, start)
		}
		founding = append(founding, y)
	}
	return &Simulator{
		Country:   country,
		Leagues:   make([]*league.League, 0, len(founding)),
		cfg:       cfg,
		leagueCfg: leagueCfg,
		rng:       rng,
		factory:   franchise.NewFactory(cfg.Franchise),
		season:    season.NewRoundRobin(cfg.GamesPerPair),
		sink:      sink,
		founding:  founding,
		endYear:   start + cfg.Years,
	}, nil
}

// Done reports whether every configured year has been simulated.
func (s *Simulator) Done() bool {
	return s.Country.Year() >= s.endYear
}

// Run steps until Done or ctx is cancelled.
func (s *Simulator) Run(ctx context.Context) error {
	logrus.Infof("Simulating %s from %d to %d (%d cities, %d leagues scheduled)",
		s.Country.Name, s.Country.Year(), s.endYear, len(s.Country.Cities()), len(s.founding))
	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step simulates the current year and advances the calendar.
func (s *Simulator) Step() error {
	year := s.Country.Year()
	for len(s.founding) > 0 && s.founding[0] == year {
		s.founding = s.founding[1:]
		if err := s.foundLeague(); err != nil {
			return err
		}
	}
	for _, l := range s.Leagues {
		if err := s.playYear(l); err != nil {
			return err
		}
	}
	s.Country.AdvanceYear(s.rng.ForSubsystem(SubsystemWorld), s.cfg.Growth)
	return nil
}

func (s *Simulator) foundLeague() error {
	ordinal := len(s.Leagues)
	l, rep, err := league.Found(s.Country, s.leagueCfg, s.factory, s.rng.ForSubsystem(SubsystemLeague(ordinal)))
	if err != nil {
		return fmt.Errorf("founding league %d: %w", ordinal, err)
	}
	s.Leagues = append(s.Leagues, l)
	return s.sink.RecordFormation(rep)
}

// playYear runs l's season and offseason. A league without teams skips its season
// but still gets an expansion round.
func (s *Simulator) playYear(l *league.League) error {
	rep, err := l.ConductSeason(s.season)
	switch {
	case errors.Is(err, league.ErrEmptyLeague):
		logrus.Warnf("[year %d] %s has no teams, season skipped", s.Country.Year(), l.Name)
		return s.sink.RecordExpansion(l.ConsiderExpansion(false))
	case err != nil:
		return err
	}
	if err := s.sink.RecordSeason(rep); err != nil {
		return err
	}

	exp, err := l.ConductOffseason()
	if err != nil {
		return err
	}
	if err := s.sink.RecordExpansion(exp); err != nil {
		return err
	}
	return s.maybeFold(l)
}

// maybeFold folds the last-placed team with probability FoldRate. Expansion teams
// added this offseason have not played and are never chosen.
func (s *Simulator) maybeFold(l *league.League) error {
	if s.cfg.FoldRate == 0 || len(l.Teams) < 2 {
		return nil
	}
	if l.RNG().Float64() >= s.cfg.FoldRate {
		return nil
	}
	year := s.Country.Year()
	var last *league.Team
	for i := len(l.Teams) - 1; i >= 0; i-- {
		if _, played := l.Teams[i].Records[year]; played {
			last = l.Teams[i]
			break
		}
	}
	if last == nil {
		return nil
	}
	rep, err := l.Fold(last)
	if err != nil {
		return err
	}
	return s.sink.RecordExpansion(rep)
}
