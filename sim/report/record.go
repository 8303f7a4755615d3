// Package report provides the structured outputs of the league lifecycle.
// This package has no dependencies on sim/ or sim/league/ — it stores pure data types.
package report

// FormationReport summarizes a league founding.
type FormationReport struct {
	Year             int      `json:"year"`
	LeagueName       string   `json:"league_name"`
	HeadquartersName string   `json:"headquarters_name"`
	CharterTeamNames []string `json:"charter_team_names"`
	Degenerate       bool     `json:"degenerate,omitempty"` // true when no charter team could be enfranchised
}

// Standing is one row of a final season table.
type Standing struct {
	TeamName string `json:"team_name"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}

// SeasonReport captures one completed season. Standings are ordered by wins, descending.
type SeasonReport struct {
	Year       int        `json:"year"`
	LeagueName string     `json:"league_name"`
	Champion   string     `json:"champion"`
	Standings  []Standing `json:"standings"`
}

// ExpansionReport captures one expansion (or replacement) round. NewFranchiseCities may be
// empty when the gate stayed closed or the candidate pool was exhausted.
type ExpansionReport struct {
	Year               int      `json:"year"`
	LeagueName         string   `json:"league_name"`
	Replacement        bool     `json:"replacement,omitempty"`
	GatePassed         bool     `json:"gate_passed"`
	NewFranchiseCities []string `json:"new_franchise_cities"`
}
