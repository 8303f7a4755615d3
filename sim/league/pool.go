package league

import (
	"math"
	"math/rand"
	"sort"

	"github.com/leaguesim/league-sim/sim/world"
)

// Threshold is the gate ceiling derived from the headquarters population:
// floor(exp(exponent * ln(pop))). It grows sub-linearly so the largest cities
// do not qualify deterministically. Non-positive populations give 0. Results that
// do not fit an int saturate at math.MaxInt-1 so the gate range stays valid.
func Threshold(hqPopulation int, exponent float64) int {
	if hqPopulation < 1 {
		return 0
	}
	t := math.Floor(math.Exp(exponent * math.Log(float64(hqPopulation))))
	if t >= float64(math.MaxInt) {
		return math.MaxInt - 1
	}
	return int(t)
}

type poolEntry struct {
	city   *world.City
	weight int
}

// CandidatePool is the weighted lottery of one enfranchisement round.
//
// A city's multiplicity in the multiset is its score. Entries are stored once with
// their multiplicity as weight, which draws with the same probabilities as a literal
// multiset without allocating population-sized slices.
type CandidatePool struct {
	entries []poolEntry
	total   int
}

// NewCandidatePool gates each valued city and keeps the survivors.
// For a city with score v, x is drawn uniformly from [0, threshold]; the city enters
// the pool with weight v iff x < v. Cities are visited in ID order so the RNG
// sequence is independent of map iteration order.
func NewCandidatePool(rng *rand.Rand, vals map[*world.City]int, hqPopulation int, exponent float64) *CandidatePool {
	cities := make([]*world.City, 0, len(vals))
	for c := range vals {
		cities = append(cities, c)
	}
	sort.Slice(cities, func(i, j int) bool { return cities[i].ID < cities[j].ID })

	threshold := Threshold(hqPopulation, exponent)
	p := &CandidatePool{}
	for _, c := range cities {
		v := vals[c]
		x := rng.Intn(threshold + 1)
		if x < v {
			p.entries = append(p.entries, poolEntry{city: c, weight: v})
			p.total += v
		}
	}
	return p
}

// Len returns the number of distinct cities still in the pool.
func (p *CandidatePool) Len() int {
	return len(p.entries)
}

// Size returns the multiset cardinality (sum of weights).
func (p *CandidatePool) Size() int {
	return p.total
}

// Weight returns the multiplicity of city in the pool (0 if absent).
func (p *CandidatePool) Weight(city *world.City) int {
	for _, e := range p.entries {
		if e.city == city {
			return e.weight
		}
	}
	return 0
}

// Draw picks up to n distinct cities. Each pick is uniform over the remaining
// multiset and removes every occurrence of the chosen city. Fewer than n cities
// are returned when the pool runs dry.
func (p *CandidatePool) Draw(rng *rand.Rand, n int) []*world.City {
	drawn := make([]*world.City, 0, max(n, 0))
	for len(drawn) < n && p.total > 0 {
		x := rng.Intn(p.total)
		idx := 0
		for acc := p.entries[0].weight; acc <= x; acc += p.entries[idx].weight {
			idx++
		}
		chosen := p.entries[idx]
		drawn = append(drawn, chosen.city)
		p.total -= chosen.weight
		p.entries = append(p.entries[:idx], p.entries[idx+1:]...)
	}
	return drawn
}
