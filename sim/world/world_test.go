package world

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCountrySpec_BuildsCitiesInFileOrder(t *testing.T) {
	// GIVEN a two-city world file
	path := writeTempYAML(t, `
name: Columbia
year: 1871
cities:
  - {name: Boston, population: 250000, x: 10, y: 5}
  - {name: Chicago, population: 300000, x: -4, y: 2.5}
`)

	// WHEN it is loaded and built
	spec, err := LoadCountrySpec(path)
	require.NoError(t, err)
	country := spec.Build()

	// THEN cities keep file order and IDs
	require.Len(t, country.Cities(), 2)
	assert.Equal(t, 1871, country.Year())
	assert.Equal(t, CityID(1), country.Cities()[1].ID)
	assert.Equal(t, r2.Vec{X: -4, Y: 2.5}, country.Cities()[1].Location)
	assert.Same(t, country.Cities()[0], country.CityByName("Boston"))
	assert.Nil(t, country.CityByName("Atlantis"))
}

func TestLoadCountrySpec_UnknownField_Rejected(t *testing.T) {
	path := writeTempYAML(t, `
name: Columbia
year: 1871
citys: []
`)
	_, err := LoadCountrySpec(path)
	assert.Error(t, err)
}

func TestLoadCountrySpec_MissingFile(t *testing.T) {
	_, err := LoadCountrySpec(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestCountrySpecValidate(t *testing.T) {
	tests := []struct {
		name   string
		cities []CitySpec
		ok     bool
	}{
		{"valid", []CitySpec{{Name: "A", Population: 1}, {Name: "B"}}, true},
		{"no cities", nil, true},
		{"missing name", []CitySpec{{Population: 1}}, false},
		{"duplicate", []CitySpec{{Name: "A"}, {Name: "A"}}, false},
		{"negative population", []CitySpec{{Name: "A", Population: -1}}, false},
		{"infinite x", []CitySpec{{Name: "A", X: math.Inf(1)}}, false},
		{"NaN y", []CitySpec{{Name: "A", Y: math.NaN()}}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := (&CountrySpec{Name: "X", Cities: tc.cities}).Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCity_Distance(t *testing.T) {
	a := &City{Location: r2.Vec{X: 0, Y: 0}}
	b := &City{Location: r2.Vec{X: 3, Y: 4}}

	assert.InDelta(t, 5.0, a.Distance(b), 1e-12)
	assert.True(t, a.SameLocation(&City{}))
	assert.False(t, a.SameLocation(b))
}

func TestCountry_LeagueNames(t *testing.T) {
	c := NewCountry("Columbia", 1900, nil)

	c.RegisterLeagueName("National League")
	c.RegisterLeagueName("American Association")

	assert.True(t, c.HasLeagueName("National League"))
	assert.False(t, c.HasLeagueName("Federal League"))
	assert.Equal(t, []string{"American Association", "National League"}, c.LeagueNames())
}

func TestCountry_AdvanceYear(t *testing.T) {
	// GIVEN a 10% growth rate with no noise
	cities := []*City{{ID: 0, Name: "A", Population: 1000}, {ID: 1, Name: "B", Population: 0}}
	c := NewCountry("Columbia", 1900, cities)

	// WHEN a year passes
	c.AdvanceYear(rand.New(rand.NewSource(1)), GrowthConfig{RateMean: 0.1})

	// THEN populations grow, never below 1, and the year advances
	assert.Equal(t, 1901, c.Year())
	assert.Equal(t, 1100, cities[0].Population)
	assert.Equal(t, 1, cities[1].Population)
}

func TestCountry_AdvanceYear_Shrinks(t *testing.T) {
	cities := []*City{{Name: "A", Population: 3}}
	c := NewCountry("Columbia", 1900, cities)

	c.AdvanceYear(rand.New(rand.NewSource(1)), GrowthConfig{RateMean: -0.9})

	assert.Equal(t, 1, cities[0].Population)
}

func TestGenerateCities(t *testing.T) {
	// GIVEN a generator for 200 cities in a 100 unit square
	cfg := GeneratorConfig{NumCities: 200, LogPopMean: 10, LogPopStdDev: 1, Extent: 100}

	// WHEN generated twice with the same seed
	a := GenerateCities(rand.New(rand.NewSource(3)), cfg)
	b := GenerateCities(rand.New(rand.NewSource(3)), cfg)

	// THEN the output is deterministic with unique names, sequential IDs and bounded coordinates
	require.Len(t, a, 200)
	names := make(map[string]bool)
	for i, c := range a {
		assert.Equal(t, CityID(i), c.ID)
		assert.False(t, names[c.Name], "duplicate name %s", c.Name)
		names[c.Name] = true
		assert.GreaterOrEqual(t, c.Population, 0)
		assert.True(t, c.Location.X >= 0 && c.Location.X < 100)
		assert.True(t, c.Location.Y >= 0 && c.Location.Y < 100)
		assert.Equal(t, c.Name, b[i].Name)
		assert.Equal(t, c.Population, b[i].Population)
	}
}
