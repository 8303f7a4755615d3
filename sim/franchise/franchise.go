// Package franchise is the reference team model: nicknames, rosters and yearly
// roster progression. Leagues use it through league.TeamFactory and league.Franchise.
package franchise

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/leaguesim/league-sim/sim/league"
	"github.com/leaguesim/league-sim/sim/world"
)

// Config parameterizes rosters.
type Config struct {
	RosterSize        int     `yaml:"roster_size"`
	RatingMean        float64 `yaml:"rating_mean"`
	RatingStdDev      float64 `yaml:"rating_stddev"`
	ExpansionPenalty  float64 `yaml:"expansion_penalty"` // subtracted from every expansion player's rating
	RookieAgeMean     float64 `yaml:"rookie_age_mean"`
	RetirementAge     int     `yaml:"retirement_age"`     // players retire for sure past this age
	RetirementHazard  float64 `yaml:"retirement_hazard"`  // yearly retirement probability per year above 30
	DevelopmentStdDev float64 `yaml:"development_stddev"` // yearly rating change noise
}

// DefaultConfig returns baseline roster parameters.
func DefaultConfig() Config {
	return Config{
		RosterSize:        14,
		RatingMean:        50,
		RatingStdDev:      10,
		ExpansionPenalty:  5,
		RookieAgeMean:     21,
		RetirementAge:     40,
		RetirementHazard:  0.08,
		DevelopmentStdDev: 3,
	}
}

// Validate checks parameter ranges.
func (c Config) Validate() error {
	if c.RosterSize < 1 {
		return fmt.Errorf("roster_size must be >= 1, got %d", c.RosterSize)
	}
	if c.RatingStdDev < 0 || c.DevelopmentStdDev < 0 {
		return fmt.Errorf("rating_stddev and development_stddev must be non-negative")
	}
	if c.RetirementHazard < 0 || c.RetirementHazard > 1 {
		return fmt.Errorf("retirement_hazard must be in [0, 1], got %f", c.RetirementHazard)
	}
	if c.RetirementAge <= int(c.RookieAgeMean) {
		return fmt.Errorf("retirement_age (%d) must exceed rookie_age_mean (%.1f)", c.RetirementAge, c.RookieAgeMean)
	}
	return nil
}

// Player is one roster member.
type Player struct {
	Name   string
	Age    int
	Rating float64
}

// Franchise is a team's roster. It implements league.Franchise.
type Franchise struct {
	nickname string
	roster   []*Player
	cfg      Config
}

// Nickname returns the club name without the city.
func (f *Franchise) Nickname() string {
	return f.nickname
}

// Players returns roster names in roster order.
func (f *Franchise) Players() []string {
	names := make([]string, len(f.roster))
	for i, p := range f.roster {
		names[i] = p.Name
	}
	return names
}

// Roster returns the roster. The slice is shared; callers must not modify it.
func (f *Franchise) Roster() []*Player {
	return f.roster
}

// Strength is the mean rating of the roster, floored at 1 so win odds stay defined.
func (f *Franchise) Strength() float64 {
	if len(f.roster) == 0 {
		return 1
	}
	total := 0.0
	for _, p := range f.roster {
		total += p.Rating
	}
	return math.Max(1, total/float64(len(f.roster)))
}

// Progress ages the roster one year, retires players and signs rookies to refill it.
func (f *Franchise) Progress(rng *rand.Rand, year int) {
	kept := f.roster[:0]
	retired := 0
	for _, p := range f.roster {
		p.Age++
		p.Rating += rng.NormFloat64()*f.cfg.DevelopmentStdDev + ageCurve(p.Age)
		if f.retires(rng, p) {
			retired++
			continue
		}
		kept = append(kept, p)
	}
	f.roster = kept
	for len(f.roster) < f.cfg.RosterSize {
		f.roster = append(f.roster, f.sign(rng, 0))
	}
	logrus.Debugf("[year %d] %s: %d retirements", year, f.nickname, retired)
}

func (f *Franchise) retires(rng *rand.Rand, p *Player) bool {
	if p.Age > f.cfg.RetirementAge {
		return true
	}
	over := p.Age - 30
	if over <= 0 {
		return false
	}
	return rng.Float64() < float64(over)*f.cfg.RetirementHazard
}

// ageCurve is the expected yearly rating change at a given age.
func ageCurve(age int) float64 {
	switch {
	case age < 27:
		return 1.5
	case age < 31:
		return 0
	default:
		return -2
	}
}

func (f *Franchise) sign(rng *rand.Rand, penalty float64) *Player {
	age := int(math.Round(f.cfg.RookieAgeMean + rng.NormFloat64()*1.5))
	return &Player{
		Name:   fmt.Sprintf("%s %s", givenNames[rng.Intn(len(givenNames))], surnames[rng.Intn(len(surnames))]),
		Age:    age,
		Rating: f.cfg.RatingMean + rng.NormFloat64()*f.cfg.RatingStdDev - penalty,
	}
}

// Factory creates franchises for a league. It implements league.TeamFactory and
// draws from the league's own random stream.
type Factory struct {
	cfg Config
}

// NewFactory creates a Factory. Panics on an invalid config.
func NewFactory(cfg Config) *Factory {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("franchise.NewFactory: %v", err))
	}
	return &Factory{cfg: cfg}
}

// CreateTeam signs a full roster for a new club in city. Expansion clubs start weaker.
func (fa *Factory) CreateTeam(city *world.City, l *league.League, expansion bool) *league.Team {
	rng := l.RNG()
	f := &Franchise{
		nickname: fa.nickname(rng, l),
		cfg:      fa.cfg,
		roster:   make([]*Player, 0, fa.cfg.RosterSize),
	}
	penalty := 0.0
	if expansion {
		penalty = fa.cfg.ExpansionPenalty
	}
	for i := 0; i < fa.cfg.RosterSize; i++ {
		p := f.sign(rng, penalty)
		p.Age += rng.Intn(10) // veterans in a new roster
		f.roster = append(f.roster, p)
	}
	sort.SliceStable(f.roster, func(i, j int) bool { return f.roster[i].Rating > f.roster[j].Rating })
	return league.NewTeam(city, f, expansion)
}

// nickname picks a nickname not used by an active team of l, falling back to a
// numbered variant when every nickname is taken.
func (fa *Factory) nickname(rng *rand.Rand, l *league.League) string {
	used := make(map[string]bool, len(l.Teams))
	for _, t := range l.Teams {
		if t.Franchise != nil {
			used[t.Franchise.Nickname()] = true
		}
	}
	start := rng.Intn(len(nicknames))
	for i := range nicknames {
		n := nicknames[(start+i)%len(nicknames)]
		if !used[n] {
			return n
		}
	}
	return fmt.Sprintf("%s %d", nicknames[start], len(l.Teams)+1)
}
