// Package sim drives a multi-league history: it builds the world, founds leagues
// on schedule and advances every league and the country one year at a time.
//
// # Reading Guide
//
// Start with these files:
//   - simulator.go: the yearly loop (found, season, offseason, growth)
//   - league/lifecycle.go: founding, seasons, expansion and folding for one league
//   - league/pool.go: the weighted city lottery every enfranchisement goes through
//
// # Architecture
//
// The sim package wires collaborators that live in sub-packages:
//   - sim/world/: cities, countries, world files and population growth
//   - sim/league/: the league lifecycle and city valuation
//   - sim/franchise/: rosters (league.TeamFactory, league.Franchise)
//   - sim/season/: round-robin seasons (league.Season)
//   - sim/report/: report records, the chronicle and its archive format
//   - sim/store/: SQL history store and its read-only HTTP API
//
// # Reproducibility
//
// PartitionedRNG gives each league its own stream, derived from the master seed
// and the league's founding ordinal. A league only ever draws from its stream, so
// its history is fixed by the seed regardless of what other leagues do.
package sim
