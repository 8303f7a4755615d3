package league

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/leaguesim/league-sim/sim/world"
)

// newCity builds a city at (x, y).
func newCity(id int, pop int, x, y float64) *world.City {
	return &world.City{ID: world.CityID(id), Name: fmt.Sprintf("city%d", pop), Population: pop, Location: r2.Vec{X: x, Y: y}}
}

// uniformCountry returns n cities of identical population on a line, one unit apart.
func uniformCountry(year, n, pop int) *world.Country {
	cities := make([]*world.City, n)
	for i := range cities {
		cities[i] = &world.City{ID: world.CityID(i), Name: fmt.Sprintf("Town%02d", i), Population: pop, Location: r2.Vec{X: float64(i) * 3}}
	}
	return world.NewCountry("Testland", year, cities)
}

type stubFranchise struct {
	nickname string
	players  []string
	progress int
}

func (f *stubFranchise) Nickname() string             { return f.nickname }
func (f *stubFranchise) Players() []string            { return f.players }
func (f *stubFranchise) Progress(_ *rand.Rand, _ int) { f.progress++ }

// stubFactory hands out franchises named after the enfranchisement order.
type stubFactory struct {
	created int
}

func (s *stubFactory) CreateTeam(city *world.City, _ *League, expansion bool) *Team {
	s.created++
	f := &stubFranchise{
		nickname: fmt.Sprintf("Club%d", s.created),
		players:  []string{fmt.Sprintf("p%d-a", s.created), fmt.Sprintf("p%d-b", s.created)},
	}
	return NewTeam(city, f, expansion)
}

// stubSeason gives team i (in current order) len-i wins and i losses and crowns the first team.
type stubSeason struct {
	err error
}

func (s *stubSeason) Run(l *League, _ *rand.Rand) (SeasonResult, error) {
	if s.err != nil {
		return SeasonResult{}, s.err
	}
	recs := make(map[*Team]Record, len(l.Teams))
	for i, t := range l.Teams {
		recs[t] = Record{Wins: len(l.Teams) - i, Losses: i}
	}
	return SeasonResult{Champion: l.Teams[0], Records: recs}, nil
}

// fixedCharterConfig returns a config whose charter size is exactly n.
func fixedCharterConfig(n int) *Config {
	cfg := DefaultConfig()
	cfg.CharterSize = Normal{Mean: float64(n), StdDev: 0}
	return cfg
}

func foundOrFail(country Country, cfg *Config, seed int64) (*League, error) {
	l, _, err := Found(country, cfg, &stubFactory{}, rand.New(rand.NewSource(seed)))
	return l, err
}
