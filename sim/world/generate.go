package world

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// GeneratorConfig parameterizes synthetic settlement generation.
type GeneratorConfig struct {
	NumCities    int     `yaml:"num_cities"`
	LogPopMean   float64 `yaml:"log_population_mean"`   // mean of ln(population)
	LogPopStdDev float64 `yaml:"log_population_stddev"` // std dev of ln(population)
	Extent       float64 `yaml:"extent"`                // cities are placed in [0, Extent)^2
}

var (
	nameOnsets = []string{"Ash", "Bel", "Cal", "Dun", "El", "Fair", "Glen", "Har", "Iron", "Kings",
		"Lan", "Mar", "New", "Oak", "Port", "Red", "Salt", "Ten", "Wal", "York"}
	nameCodas = []string{"ford", "ton", "ville", "burg", "field", "haven", "wood", "mouth",
		"port", "dale", "bridge", "mont", "water", "ridge", "ham"}
)

// GenerateCities places cities uniformly at random with log-normal populations.
// City names are unique; a numeric suffix disambiguates repeats.
func GenerateCities(rng *rand.Rand, cfg GeneratorConfig) []*City {
	cities := make([]*City, cfg.NumCities)
	used := make(map[string]int)
	for i := range cities {
		name := nameOnsets[rng.Intn(len(nameOnsets))] + nameCodas[rng.Intn(len(nameCodas))]
		if n := used[name]; n > 0 {
			used[name]++
			name = fmt.Sprintf("%s %s", name, strings.Repeat("I", n+1))
		} else {
			used[name] = 1
		}
		pop := int(math.Round(math.Exp(cfg.LogPopMean + cfg.LogPopStdDev*rng.NormFloat64())))
		if pop < 1 {
			pop = 1
		}
		cities[i] = &City{
			ID:         CityID(i),
			Name:       name,
			Population: pop,
			Location:   r2.Vec{X: rng.Float64() * cfg.Extent, Y: rng.Float64() * cfg.Extent},
		}
	}
	return cities
}
