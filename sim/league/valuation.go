package league

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/leaguesim/league-sim/sim/world"
)

// Regime selects the city-valuation rule for a simulated year.
type Regime int

const (
	// RegimePreModern scores cities by population discounted by distance to headquarters.
	RegimePreModern Regime = iota
	// RegimeModern scores cities at or above the national mean population by raw population.
	RegimeModern
)

var regimeNames = map[Regime]string{
	RegimePreModern: "pre-modern",
	RegimeModern:    "modern",
}

func (r Regime) String() string {
	if s, ok := regimeNames[r]; ok {
		return s
	}
	return "unknown"
}

// RegimeFor returns the regime in force for year.
func RegimeFor(year int, cfg *Config) Regime {
	if year < cfg.ModernEraYear {
		return RegimePreModern
	}
	return RegimeModern
}

// Valuate scores every city not yet enfranchised by the league.
// The result is empty (never nil) when no city qualifies; callers treat that as
// "no enfranchisement possible this round".
func Valuate(cities []*world.City, hq *world.City, enfranchised map[world.CityID]bool, regime Regime) map[*world.City]int {
	vals := make(map[*world.City]int)
	if len(cities) == 0 {
		return vals
	}

	switch regime {
	case RegimePreModern:
		for _, c := range cities {
			if enfranchised[c.ID] {
				continue
			}
			vals[c] = distanceScore(c, hq)
		}
	case RegimeModern:
		pops := make([]float64, len(cities))
		for i, c := range cities {
			pops[i] = float64(c.Population)
		}
		mean := stat.Mean(pops, nil)
		for _, c := range cities {
			if enfranchised[c.ID] {
				continue
			}
			if float64(c.Population) >= mean {
				vals[c] = c.Population
			}
		}
	default:
		panic(fmt.Sprintf("Valuate: unhandled regime %d", regime))
	}
	return vals
}

// distanceScore is the pre-modern score. Cities on or within one unit of
// headquarters keep their full population.
func distanceScore(c, hq *world.City) int {
	if c.Population <= 0 {
		return 0
	}
	if c.SameLocation(hq) {
		return c.Population
	}
	d := c.Distance(hq)
	if d < 1 {
		return c.Population
	}
	return int(float64(c.Population) / d)
}
