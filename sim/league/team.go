package league

import (
	"math/rand"

	"github.com/leaguesim/league-sim/sim/world"
)

// Record is a win/loss tally.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Games returns the number of decided games.
func (r Record) Games() int {
	return r.Wins + r.Losses
}

// Franchise is the roster and economics side of a team. It is owned by the
// caller's team model; the league only names it, enumerates its players and
// asks it to progress once per offseason.
type Franchise interface {
	Nickname() string
	Players() []string
	Progress(rng *rand.Rand, year int)
}

// Team is one franchise's membership in a league.
type Team struct {
	ID        int
	City      *world.City
	League    *League
	Franchise Franchise
	Expansion bool
	Founded   int

	Wins   int // current season
	Losses int // current season

	CumulativeWins   int
	CumulativeLosses int
	Records          map[int]Record // year → final season record
}

// NewTeam creates an unattached team. The league assigns ID, League and Founded
// when it enfranchises the team.
func NewTeam(city *world.City, franchise Franchise, expansion bool) *Team {
	return &Team{
		City:      city,
		Franchise: franchise,
		Expansion: expansion,
		Records:   make(map[int]Record),
	}
}

// Name returns "<city> <nickname>".
func (t *Team) Name() string {
	if t.Franchise == nil {
		return t.City.Name
	}
	return t.City.Name + " " + t.Franchise.Nickname()
}

// CumulativeGames returns all decided games across completed seasons.
func (t *Team) CumulativeGames() int {
	return t.CumulativeWins + t.CumulativeLosses
}

// Season returns the running tally of the current season.
func (t *Team) Season() Record {
	return Record{Wins: t.Wins, Losses: t.Losses}
}
