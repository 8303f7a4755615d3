package league

import (
	"fmt"
	"sort"

	"github.com/leaguesim/league-sim/sim/report"
)

// ChampionsTimeline maps year → champion, remembering insertion order.
type ChampionsTimeline struct {
	years  []int
	byYear map[int]*Team
}

// NewChampionsTimeline creates an empty timeline.
func NewChampionsTimeline() *ChampionsTimeline {
	return &ChampionsTimeline{byYear: make(map[int]*Team)}
}

// Record stores the champion of year. A year can be recorded only once.
func (c *ChampionsTimeline) Record(year int, champion *Team) error {
	if _, ok := c.byYear[year]; ok {
		return fmt.Errorf("%w: %d", ErrSeasonAlreadyRecorded, year)
	}
	c.years = append(c.years, year)
	c.byYear[year] = champion
	return nil
}

// Champion returns the champion of year.
func (c *ChampionsTimeline) Champion(year int) (*Team, bool) {
	t, ok := c.byYear[year]
	return t, ok
}

// Has reports whether year already has a champion.
func (c *ChampionsTimeline) Has(year int) bool {
	_, ok := c.byYear[year]
	return ok
}

// Years returns recorded years in chronological (insertion) order.
func (c *ChampionsTimeline) Years() []int {
	out := make([]int, len(c.years))
	copy(out, c.years)
	return out
}

// Len returns the number of recorded seasons.
func (c *ChampionsTimeline) Len() int {
	return len(c.years)
}

// Titles returns the years team won, in chronological order.
func (c *ChampionsTimeline) Titles(team *Team) []int {
	var out []int
	for _, y := range c.years {
		if c.byYear[y] == team {
			out = append(out, y)
		}
	}
	return out
}

// SortStandings orders teams by current-season wins, descending.
// The sort is stable: ties keep their prior relative order.
func SortStandings(teams []*Team) {
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].Wins > teams[j].Wins
	})
}

// standingsRows renders teams (already sorted) as report rows.
func standingsRows(teams []*Team) []report.Standing {
	rows := make([]report.Standing, len(teams))
	for i, t := range teams {
		rows[i] = report.Standing{TeamName: t.Name(), Wins: t.Wins, Losses: t.Losses}
	}
	return rows
}
