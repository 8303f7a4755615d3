package world

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

// CountrySpec is the on-disk description of a country.
// Loaded from YAML via LoadCountrySpec(path).
type CountrySpec struct {
	Name   string     `yaml:"name"`
	Year   int        `yaml:"year"`
	Cities []CitySpec `yaml:"cities"`
}

// CitySpec describes one city in a CountrySpec.
type CitySpec struct {
	Name       string  `yaml:"name"`
	Population int     `yaml:"population"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
}

// LoadCountrySpec reads and parses a YAML country file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadCountrySpec(path string) (*CountrySpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading country file: %w", err)
	}
	var spec CountrySpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing country file: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks populations and coordinates.
func (s *CountrySpec) Validate() error {
	seen := make(map[string]bool, len(s.Cities))
	for i, c := range s.Cities {
		prefix := fmt.Sprintf("cities[%d]", i)
		if c.Name == "" {
			return fmt.Errorf("%s: name is required", prefix)
		}
		if seen[c.Name] {
			return fmt.Errorf("%s: duplicate city name %q", prefix, c.Name)
		}
		seen[c.Name] = true
		if c.Population < 0 {
			return fmt.Errorf("%s: population must be non-negative, got %d", prefix, c.Population)
		}
		if math.IsNaN(c.X) || math.IsInf(c.X, 0) || math.IsNaN(c.Y) || math.IsInf(c.Y, 0) {
			return fmt.Errorf("%s: coordinates must be finite, got (%f, %f)", prefix, c.X, c.Y)
		}
	}
	return nil
}

// Build creates a Country from the spec. City IDs follow file order.
func (s *CountrySpec) Build() *Country {
	cities := make([]*City, len(s.Cities))
	for i, c := range s.Cities {
		cities[i] = &City{
			ID:         CityID(i),
			Name:       c.Name,
			Population: c.Population,
			Location:   r2.Vec{X: c.X, Y: c.Y},
		}
	}
	return NewCountry(s.Name, s.Year, cities)
}
