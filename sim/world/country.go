package world

import (
	"math"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"
)

// GrowthConfig parameterizes yearly population change.
type GrowthConfig struct {
	RateMean   float64 `yaml:"rate_mean"`   // mean yearly growth fraction (e.g. 0.015)
	RateStdDev float64 `yaml:"rate_stddev"` // per-city noise around the mean
}

// Country is the world a league lives in: its cities, the current simulated year
// and the set of league names already in use.
//
// Populations only change in AdvanceYear. Callers that read cities during a year
// therefore see a consistent snapshot.
type Country struct {
	Name        string
	cities      []*City
	year        int
	leagueNames map[string]bool
}

// NewCountry creates a Country starting at the given year.
func NewCountry(name string, year int, cities []*City) *Country {
	return &Country{
		Name:        name,
		cities:      cities,
		year:        year,
		leagueNames: make(map[string]bool),
	}
}

// Cities returns the country's cities in ID order. The slice is shared; callers must not modify it.
func (c *Country) Cities() []*City {
	return c.cities
}

// Year returns the current simulated year.
func (c *Country) Year() int {
	return c.year
}

// HasLeagueName reports whether a league with this name already exists.
func (c *Country) HasLeagueName(name string) bool {
	return c.leagueNames[name]
}

// RegisterLeagueName records a league name as taken.
func (c *Country) RegisterLeagueName(name string) {
	c.leagueNames[name] = true
}

// LeagueNames returns the registered league names in lexical order.
func (c *Country) LeagueNames() []string {
	names := make([]string, 0, len(c.leagueNames))
	for n := range c.leagueNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// CityByName returns the first city with the given name, or nil.
func (c *Country) CityByName(name string) *City {
	for _, city := range c.cities {
		if city.Name == name {
			return city
		}
	}
	return nil
}

// AdvanceYear moves the calendar forward one year and applies population growth.
// Populations never drop below 1.
func (c *Country) AdvanceYear(rng *rand.Rand, growth GrowthConfig) {
	for _, city := range c.cities {
		rate := growth.RateMean + rng.NormFloat64()*growth.RateStdDev
		next := int(math.Round(float64(city.Population) * (1 + rate)))
		if next < 1 {
			next = 1
		}
		city.Population = next
	}
	c.year++
	logrus.Debugf("[year %d] %s: populations advanced for %d cities", c.year, c.Name, len(c.cities))
}
