// Package world provides the settlement model that leagues draw their franchises from:
// cities with a population and a position, grouped into a country that carries the
// simulated calendar and the registry of league names.
package world

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// CityID identifies a city within a country. IDs are assigned in load/generation order
// and are stable for the lifetime of the country.
type CityID int

// City is a settlement that may be enfranchised by a league.
type City struct {
	ID         CityID
	Name       string
	Population int
	Location   r2.Vec
}

// Distance returns the Euclidean distance between two cities.
func (c *City) Distance(other *City) float64 {
	return r2.Norm(r2.Sub(c.Location, other.Location))
}

// SameLocation reports whether both cities sit on identical coordinates.
func (c *City) SameLocation(other *City) bool {
	return c.Location == other.Location
}

func (c *City) String() string {
	return fmt.Sprintf("%s (pop. %d)", c.Name, c.Population)
}
