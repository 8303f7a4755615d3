package report

import (
	"errors"
	"testing"
)

func TestSummarize_NilChronicle_ZeroValues(t *testing.T) {
	// GIVEN no chronicle
	// WHEN summarized
	summary := Summarize(nil)

	// THEN all counts are zero
	if summary.Leagues != 0 || summary.Seasons != 0 || summary.ExpansionRounds != 0 {
		t.Errorf("expected zero counts, got %+v", summary)
	}
	if len(summary.TitlesByTeam) != 0 {
		t.Error("expected empty title map")
	}
}

func TestSummarize_PopulatedChronicle_CorrectCounts(t *testing.T) {
	// GIVEN a chronicle with two leagues, three seasons and mixed expansion rounds
	c := NewChronicle(42)
	_ = c.RecordFormation(FormationReport{Year: 1900, LeagueName: "National League", CharterTeamNames: []string{"A", "B"}})
	_ = c.RecordFormation(FormationReport{Year: 1901, LeagueName: "Union Association", Degenerate: true})
	_ = c.RecordSeason(SeasonReport{Year: 1900, LeagueName: "National League", Champion: "A"})
	_ = c.RecordSeason(SeasonReport{Year: 1901, LeagueName: "National League", Champion: "B"})
	_ = c.RecordSeason(SeasonReport{Year: 1902, LeagueName: "National League", Champion: "B"})
	_ = c.RecordExpansion(ExpansionReport{Year: 1900, GatePassed: false})
	_ = c.RecordExpansion(ExpansionReport{Year: 1901, GatePassed: true, NewFranchiseCities: []string{"X", "Y"}})
	_ = c.RecordExpansion(ExpansionReport{Year: 1902, GatePassed: true, Replacement: true, NewFranchiseCities: []string{"Z"}})

	// WHEN summarized
	summary := Summarize(c)

	// THEN counts match
	if summary.Leagues != 2 {
		t.Errorf("expected 2 leagues, got %d", summary.Leagues)
	}
	if summary.DegenerateFoundings != 1 {
		t.Errorf("expected 1 degenerate founding, got %d", summary.DegenerateFoundings)
	}
	if summary.Seasons != 3 {
		t.Errorf("expected 3 seasons, got %d", summary.Seasons)
	}
	if summary.ExpansionRounds != 2 {
		t.Errorf("expected 2 open expansion rounds, got %d", summary.ExpansionRounds)
	}
	if summary.ExpansionFranchises != 3 {
		t.Errorf("expected 3 expansion franchises, got %d", summary.ExpansionFranchises)
	}
	if summary.ReplacementRounds != 1 {
		t.Errorf("expected 1 replacement round, got %d", summary.ReplacementRounds)
	}
	if summary.MostDecoratedTeam != "National League/B" || summary.MostDecoratedTitles != 2 {
		t.Errorf("expected National League/B with 2 titles, got %s with %d", summary.MostDecoratedTeam, summary.MostDecoratedTitles)
	}
}

func TestSummarize_TiedTitles_LexicalWinner(t *testing.T) {
	// GIVEN two teams with one title each
	c := NewChronicle(1)
	_ = c.RecordSeason(SeasonReport{Year: 1900, LeagueName: "L", Champion: "Zeta"})
	_ = c.RecordSeason(SeasonReport{Year: 1901, LeagueName: "L", Champion: "Alpha"})

	// WHEN summarized
	summary := Summarize(c)

	// THEN the lexically first team is reported
	if summary.MostDecoratedTeam != "L/Alpha" {
		t.Errorf("expected L/Alpha, got %s", summary.MostDecoratedTeam)
	}
}

type failingSink struct{ calls int }

func (f *failingSink) RecordFormation(FormationReport) error { f.calls++; return errSink }
func (f *failingSink) RecordSeason(SeasonReport) error       { f.calls++; return errSink }
func (f *failingSink) RecordExpansion(ExpansionReport) error { f.calls++; return errSink }

var errSink = errors.New("sink failed")

func TestMultiSink_StopsAtFirstError(t *testing.T) {
	// GIVEN a failing sink placed before a chronicle
	bad := &failingSink{}
	c := NewChronicle(1)
	m := MultiSink{bad, c}

	// WHEN a season is recorded
	err := m.RecordSeason(SeasonReport{Year: 1900})

	// THEN the error surfaces and the chronicle never sees the report
	if err != errSink {
		t.Fatalf("expected sink error, got %v", err)
	}
	if len(c.Seasons) != 0 {
		t.Errorf("expected chronicle untouched, got %d seasons", len(c.Seasons))
	}
}
