// Package season is the reference league.Season: a round-robin schedule played
// out with strength-weighted scores.
package season

import "github.com/leaguesim/league-sim/sim/league"

// Match is one scheduled game.
type Match struct {
	Home, Away *league.Team
	Round      int
	HomeScore  int
	AwayScore  int
	Outcome    Outcome
}

// GenerateSchedule returns a single round-robin schedule for teams using the
// circle method. The first team stays fixed while the rest rotate; an odd count
// gets a bye slot that is dropped from the output. The input slice is not modified.
func GenerateSchedule(teams []*league.Team) [][]*Match {
	slots := make([]*league.Team, len(teams), len(teams)+1)
	copy(slots, teams)
	if len(slots)%2 != 0 {
		slots = append(slots, nil)
	}
	n := len(slots)
	if n < 2 {
		return nil
	}

	rounds := make([][]*Match, n-1)
	for i := 0; i < n-1; i++ {
		round := make([]*Match, 0, n/2)
		for j := 0; j < n/2; j++ {
			home, away := slots[j], slots[n-1-j]
			if home == nil || away == nil {
				continue
			}
			// Alternate venues so the fixed team is not always at home.
			if i%2 == 1 && j == 0 {
				home, away = away, home
			}
			round = append(round, &Match{Home: home, Away: away, Round: i + 1})
		}
		rounds[i] = round

		last := slots[n-1]
		copy(slots[2:], slots[1:n-1])
		slots[1] = last
	}
	return rounds
}

// GenerateFullSchedule repeats the round robin gamesPerPair times, swapping venues
// on every second pass.
func GenerateFullSchedule(teams []*league.Team, gamesPerPair int) [][]*Match {
	base := GenerateSchedule(teams)
	out := make([][]*Match, 0, len(base)*gamesPerPair)
	for pass := 0; pass < gamesPerPair; pass++ {
		for _, rnd := range base {
			matches := make([]*Match, len(rnd))
			for k, m := range rnd {
				home, away := m.Home, m.Away
				if pass%2 == 1 {
					home, away = away, home
				}
				matches[k] = &Match{Home: home, Away: away, Round: len(out) + 1}
			}
			out = append(out, matches)
		}
	}
	return out
}
