package report

import "sort"

// ChronicleSummary aggregates statistics from a Chronicle.
type ChronicleSummary struct {
	Leagues             int
	DegenerateFoundings int
	Seasons             int
	ExpansionRounds     int // rounds whose gate opened
	ExpansionFranchises int
	ReplacementRounds   int
	TitlesByTeam        map[string]int // "league/team" → championships
	MostDecoratedTeam   string
	MostDecoratedTitles int
}

// Summarize computes aggregate statistics from a Chronicle.
// Safe for nil or empty chronicles (returns zero-value fields).
func Summarize(c *Chronicle) *ChronicleSummary {
	summary := &ChronicleSummary{
		TitlesByTeam: make(map[string]int),
	}
	if c == nil {
		return summary
	}

	summary.Leagues = len(c.Formations)
	for _, f := range c.Formations {
		if f.Degenerate {
			summary.DegenerateFoundings++
		}
	}

	summary.Seasons = len(c.Seasons)
	for _, s := range c.Seasons {
		summary.TitlesByTeam[s.LeagueName+"/"+s.Champion]++
	}

	for _, e := range c.Expansions {
		if e.Replacement {
			summary.ReplacementRounds++
		}
		if e.GatePassed {
			summary.ExpansionRounds++
		}
		summary.ExpansionFranchises += len(e.NewFranchiseCities)
	}

	// Lexical order so ties resolve the same way on every run.
	keys := make([]string, 0, len(summary.TitlesByTeam))
	for k := range summary.TitlesByTeam {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if summary.TitlesByTeam[k] > summary.MostDecoratedTitles {
			summary.MostDecoratedTitles = summary.TitlesByTeam[k]
			summary.MostDecoratedTeam = k
		}
	}

	return summary
}
