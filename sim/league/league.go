// Package league implements the league lifecycle: founding with a charter lottery,
// yearly season close-out and offseason expansion.
//
// # Lottery
//
// Every enfranchisement round runs the same two stages. Valuate scores the
// cities not yet in the league under the Regime in force for the year, then
// NewCandidatePool gates each scored city against a threshold derived from the
// headquarters population and weights the survivors by score. Draw picks cities
// without replacement.
//
// # Lifecycle
//
// Found creates a league in PhaseFormed. The driving simulation then calls
// ConductSeason and ConductOffseason once per simulated year. Fold retires a team
// and runs a replacement round that always passes the expansion gate.
//
// # Randomness
//
// A league owns one *rand.Rand for its whole life. Every draw the league and its
// collaborators make goes through that stream, so a league's history is
// reproducible from its seed regardless of how other leagues are advanced.
package league

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/leaguesim/league-sim/sim/report"
	"github.com/leaguesim/league-sim/sim/world"
)

// Country is the world a league is founded in.
type Country interface {
	Cities() []*world.City
	Year() int
	HasLeagueName(name string) bool
	RegisterLeagueName(name string)
}

// TeamFactory creates the team that enfranchises city. Expansion teams are
// created with expansion=true so the factory can treat them differently.
type TeamFactory interface {
	CreateTeam(city *world.City, l *League, expansion bool) *Team
}

// SeasonResult is what a Season reports back to the league.
type SeasonResult struct {
	Champion *Team
	Records  map[*Team]Record // teams absent from the map finished 0-0
}

// Season plays one season of a league.
type Season interface {
	Run(l *League, rng *rand.Rand) (SeasonResult, error)
}

// Phase is the lifecycle state of a league.
type Phase int

const (
	PhaseFormed       Phase = iota // founded, no season played yet
	PhaseSeasonActive              // season closed out, offseason pending
	PhaseOffseason                 // offseason done, next season pending
)

var phaseNames = map[Phase]string{
	PhaseFormed:       "Formed",
	PhaseSeasonActive: "SeasonActive",
	PhaseOffseason:    "Offseason",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}

// League is the authoritative registry of a league's teams and history.
type League struct {
	Name         string
	Founded      int
	Headquarters *world.City

	Teams     []*Team
	Defunct   []*Team
	Seasons   []report.SeasonReport
	Champions *ChampionsTimeline

	charter      []*Team
	enfranchised map[world.CityID]bool
	phase        Phase
	nextTeamID   int

	country Country
	cfg     *Config
	factory TeamFactory
	rng     *rand.Rand
}

// Phase returns the current lifecycle state.
func (l *League) Phase() Phase {
	return l.phase
}

// CharterTeams returns the teams enfranchised at founding.
func (l *League) CharterTeams() []*Team {
	out := make([]*Team, len(l.charter))
	copy(out, l.charter)
	return out
}

// Cities returns the cities of active teams, in team order.
func (l *League) Cities() []*world.City {
	out := make([]*world.City, len(l.Teams))
	for i, t := range l.Teams {
		out[i] = t.City
	}
	return out
}

// HasCity reports whether city currently hosts one of the league's teams.
func (l *League) HasCity(city *world.City) bool {
	return l.enfranchised[city.ID]
}

// Players flattens every active roster, team by team.
func (l *League) Players() []string {
	var players []string
	for _, t := range l.Teams {
		if t.Franchise != nil {
			players = append(players, t.Franchise.Players()...)
		}
	}
	return players
}

// RNG returns the league's random stream. Collaborators acting on behalf of the
// league (team factories, seasons) draw from it to keep the league reproducible.
func (l *League) RNG() *rand.Rand {
	return l.rng
}

// Year returns the country's current year.
func (l *League) Year() int {
	return l.country.Year()
}

func (l *League) String() string {
	return l.Name
}

// enfranchise creates a team in city and registers it.
func (l *League) enfranchise(city *world.City, expansion bool) *Team {
	if l.enfranchised[city.ID] {
		logrus.Warnf("[year %d] %s: %s is already enfranchised, skipping", l.Year(), l.Name, city.Name)
		return nil
	}
	t := l.factory.CreateTeam(city, l, expansion)
	if t == nil {
		panic("TeamFactory.CreateTeam returned nil")
	}
	l.nextTeamID++
	t.ID = l.nextTeamID
	t.League = l
	t.City = city
	t.Expansion = expansion
	t.Founded = l.Year()
	if t.Records == nil {
		t.Records = make(map[int]Record)
	}
	l.Teams = append(l.Teams, t)
	l.enfranchised[city.ID] = true
	return t
}

// valuate scores candidate cities under the regime of the current year.
func (l *League) valuate() map[*world.City]int {
	return Valuate(l.country.Cities(), l.Headquarters, l.enfranchised, RegimeFor(l.Year(), l.cfg))
}
