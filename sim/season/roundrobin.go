package season

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/leaguesim/league-sim/sim/league"
)

// Outcome is the result of a match from the home side's view.
type Outcome int

const (
	OutcomeHomeWin Outcome = iota
	OutcomeAwayWin
)

var outcomeNames = map[Outcome]string{
	OutcomeHomeWin: "home_win",
	OutcomeAwayWin: "away_win",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Strengther is implemented by franchises that expose a competitiveness rating.
// Teams without one play at strength 1.
type Strengther interface {
	Strength() float64
}

// RoundRobin plays every pair GamesPerPair times. It implements league.Season.
type RoundRobin struct {
	GamesPerPair int
	// MeanScore is the expected combined score of a game.
	MeanScore float64
}

// NewRoundRobin returns a RoundRobin with the given games per pair. Panics if gamesPerPair < 1.
func NewRoundRobin(gamesPerPair int) RoundRobin {
	if gamesPerPair < 1 {
		panic(fmt.Sprintf("season.NewRoundRobin: gamesPerPair must be >= 1, got %d", gamesPerPair))
	}
	return RoundRobin{GamesPerPair: gamesPerPair, MeanScore: 8}
}

// Run plays the schedule for l. The champion is the team with the most wins; ties
// go to the team listed first in l.Teams. A single-team league crowns its only team
// at 0-0.
func (r RoundRobin) Run(l *league.League, rng *rand.Rand) (league.SeasonResult, error) {
	if len(l.Teams) == 0 {
		return league.SeasonResult{}, fmt.Errorf("round robin for %s: %w", l.Name, league.ErrEmptyLeague)
	}
	records := make(map[*league.Team]league.Record, len(l.Teams))
	for _, t := range l.Teams {
		records[t] = league.Record{}
	}

	schedule := GenerateFullSchedule(l.Teams, r.GamesPerPair)
	games := 0
	for _, rnd := range schedule {
		for _, m := range rnd {
			r.play(m, rng)
			home, away := records[m.Home], records[m.Away]
			switch m.Outcome {
			case OutcomeHomeWin:
				home.Wins++
				away.Losses++
			case OutcomeAwayWin:
				away.Wins++
				home.Losses++
			default:
				panic(fmt.Sprintf("season: unhandled outcome %v", m.Outcome))
			}
			records[m.Home], records[m.Away] = home, away
			games++
		}
	}

	champion := l.Teams[0]
	for _, t := range l.Teams[1:] {
		if records[t].Wins > records[champion].Wins {
			champion = t
		}
	}
	logrus.Debugf("[%s] %d games over %d rounds, champion %s", l.Name, games, len(schedule), champion.Name())
	return league.SeasonResult{Champion: champion, Records: records}, nil
}

// play scores m with Poisson draws whose means split MeanScore by relative strength.
// Level scores go to a sudden-death decider weighted the same way.
func (r RoundRobin) play(m *Match, rng *rand.Rand) {
	sh, sa := strength(m.Home), strength(m.Away)
	pHome := sh / (sh + sa)
	m.HomeScore = samplePoisson(rng, pHome*r.MeanScore)
	m.AwayScore = samplePoisson(rng, (1-pHome)*r.MeanScore)
	switch {
	case m.HomeScore > m.AwayScore:
		m.Outcome = OutcomeHomeWin
	case m.HomeScore < m.AwayScore:
		m.Outcome = OutcomeAwayWin
	default:
		if rng.Float64() < pHome {
			m.HomeScore++
			m.Outcome = OutcomeHomeWin
		} else {
			m.AwayScore++
			m.Outcome = OutcomeAwayWin
		}
	}
}

func strength(t *league.Team) float64 {
	if s, ok := t.Franchise.(Strengther); ok {
		if v := s.Strength(); v > 0 {
			return v
		}
	}
	return 1
}

// samplePoisson uses Knuth's multiplication method.
func samplePoisson(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}
