package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/leaguesim/league-sim/sim/report"
)

// LeagueSummary is one league of a run with its charter class and title count.
type LeagueSummary struct {
	Name         string   `json:"name"`
	Founded      int      `json:"founded"`
	Headquarters string   `json:"headquarters"`
	Degenerate   bool     `json:"degenerate"`
	Charter      []string `json:"charter"`
	Seasons      int      `json:"seasons"`
}

// Championship is one year's title.
type Championship struct {
	Year     int    `json:"year"`
	Champion string `json:"champion"`
}

// LatestRun returns the id of the most recent run.
func (s *Store) LatestRun() (int64, error) {
	var id sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(id) FROM runs`).Scan(&id); err != nil {
		return 0, err
	}
	if !id.Valid {
		return 0, fmt.Errorf("runs: %w", ErrNotFound)
	}
	return id.Int64, nil
}

// Leagues lists the latest run's leagues in founding order.
func (s *Store) Leagues() ([]LeagueSummary, error) {
	run, err := s.LatestRun()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(s.rebind(`
		SELECT l.name, l.founded, l.headquarters, l.degenerate,
		       (SELECT COUNT(*) FROM seasons se WHERE se.run_id = l.run_id AND se.league_name = l.name)
		FROM leagues l WHERE l.run_id = ?
		ORDER BY l.founded, l.name`), run)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LeagueSummary, 0)
	for rows.Next() {
		var ls LeagueSummary
		var degenerate int
		if err := rows.Scan(&ls.Name, &ls.Founded, &ls.Headquarters, &degenerate, &ls.Seasons); err != nil {
			return nil, err
		}
		ls.Degenerate = degenerate != 0
		out = append(out, ls)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		charter, err := s.charter(run, out[i].Name)
		if err != nil {
			return nil, err
		}
		out[i].Charter = charter
	}
	return out, nil
}

func (s *Store) charter(run int64, leagueName string) ([]string, error) {
	rows, err := s.db.Query(s.rebind(`SELECT team_name FROM charter_teams WHERE run_id = ? AND league_name = ? ORDER BY seq`), run, leagueName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	names := make([]string, 0)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Champions returns a league's titles in year order. Unknown leagues yield ErrNotFound.
func (s *Store) Champions(leagueName string) ([]Championship, error) {
	run, err := s.LatestRun()
	if err != nil {
		return nil, err
	}
	if err := s.requireLeague(run, leagueName); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(s.rebind(`SELECT year, champion FROM seasons WHERE run_id = ? AND league_name = ? ORDER BY year`), run, leagueName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]Championship, 0)
	for rows.Next() {
		var c Championship
		if err := rows.Scan(&c.Year, &c.Champion); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Season returns one season with standings in final order.
func (s *Store) Season(leagueName string, year int) (report.SeasonReport, error) {
	run, err := s.LatestRun()
	if err != nil {
		return report.SeasonReport{}, err
	}
	rep := report.SeasonReport{Year: year, LeagueName: leagueName}
	err = s.db.QueryRow(s.rebind(`SELECT champion FROM seasons WHERE run_id = ? AND league_name = ? AND year = ?`),
		run, leagueName, year).Scan(&rep.Champion)
	if errors.Is(err, sql.ErrNoRows) {
		return report.SeasonReport{}, fmt.Errorf("season %s %d: %w", leagueName, year, ErrNotFound)
	}
	if err != nil {
		return report.SeasonReport{}, err
	}

	rows, err := s.db.Query(s.rebind(`SELECT team_name, wins, losses FROM standings WHERE run_id = ? AND league_name = ? AND year = ? ORDER BY rank`),
		run, leagueName, year)
	if err != nil {
		return report.SeasonReport{}, err
	}
	defer rows.Close()
	rep.Standings = make([]report.Standing, 0)
	for rows.Next() {
		var st report.Standing
		if err := rows.Scan(&st.TeamName, &st.Wins, &st.Losses); err != nil {
			return report.SeasonReport{}, err
		}
		rep.Standings = append(rep.Standings, st)
	}
	return rep, rows.Err()
}

// Expansions returns a league's expansion rounds in the order they happened.
func (s *Store) Expansions(leagueName string) ([]report.ExpansionReport, error) {
	run, err := s.LatestRun()
	if err != nil {
		return nil, err
	}
	if err := s.requireLeague(run, leagueName); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(s.rebind(`SELECT year, seq, replacement, gate_passed FROM expansions WHERE run_id = ? AND league_name = ? ORDER BY year, seq`),
		run, leagueName)
	if err != nil {
		return nil, err
	}
	type key struct{ year, seq int }
	var keys []key
	out := make([]report.ExpansionReport, 0)
	for rows.Next() {
		var k key
		var replacement, gate int
		if err := rows.Scan(&k.year, &k.seq, &replacement, &gate); err != nil {
			rows.Close()
			return nil, err
		}
		keys = append(keys, k)
		out = append(out, report.ExpansionReport{
			Year:               k.year,
			LeagueName:         leagueName,
			Replacement:        replacement != 0,
			GatePassed:         gate != 0,
			NewFranchiseCities: make([]string, 0),
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, k := range keys {
		crows, err := s.db.Query(s.rebind(`SELECT city FROM expansion_cities WHERE run_id = ? AND league_name = ? AND year = ? AND seq = ? ORDER BY city_seq`),
			run, leagueName, k.year, k.seq)
		if err != nil {
			return nil, err
		}
		for crows.Next() {
			var c string
			if err := crows.Scan(&c); err != nil {
				crows.Close()
				return nil, err
			}
			out[i].NewFranchiseCities = append(out[i].NewFranchiseCities, c)
		}
		crows.Close()
	}
	return out, nil
}

func (s *Store) requireLeague(run int64, leagueName string) error {
	var n int
	if err := s.db.QueryRow(s.rebind(`SELECT COUNT(*) FROM leagues WHERE run_id = ? AND name = ?`), run, leagueName).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("league %q: %w", leagueName, ErrNotFound)
	}
	return nil
}
