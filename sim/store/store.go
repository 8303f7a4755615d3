// Package store persists league histories to SQL (sqlite or Postgres) and serves
// them back. A Store is a report.Sink.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/leaguesim/league-sim/sim/report"
)

// ErrNotFound is returned by queries that match no row.
var ErrNotFound = errors.New("not found")

var errNoRun = errors.New("store: no run started")

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// Store is a history database. Writes go to the run opened by BeginRun; reads
// see the most recent run.
type Store struct {
	db      *sql.DB
	dialect dialect
	runID   int64
}

// Open connects to dsn and migrates the schema. A dsn starting with postgres://
// or postgresql:// selects Postgres; anything else is a sqlite file path.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty db dsn")
	}
	s := &Store{}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, err
		}
		s.db, s.dialect = db, dialectPostgres
	} else {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, err
		}
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		s.db, s.dialect = db, dialectSQLite
		if err := s.initPragmas(); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := s.Migrate(); err != nil {
		_ = s.db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initPragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

// Migrate creates missing tables. It is safe to run on an existing database.
func (s *Store) Migrate() error {
	runs := `CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`
	if s.dialect == dialectPostgres {
		runs = `CREATE TABLE IF NOT EXISTS runs (
			id BIGSERIAL PRIMARY KEY,
			seed BIGINT NOT NULL,
			created_at TEXT NOT NULL
		);`
	}
	stmts := []string{
		runs,
		`CREATE TABLE IF NOT EXISTS leagues (
			run_id BIGINT NOT NULL REFERENCES runs(id),
			name TEXT NOT NULL,
			founded INTEGER NOT NULL,
			headquarters TEXT NOT NULL,
			degenerate INTEGER NOT NULL,
			PRIMARY KEY (run_id, name)
		);`,
		`CREATE TABLE IF NOT EXISTS charter_teams (
			run_id BIGINT NOT NULL,
			league_name TEXT NOT NULL,
			seq INTEGER NOT NULL,
			team_name TEXT NOT NULL,
			PRIMARY KEY (run_id, league_name, seq)
		);`,
		`CREATE TABLE IF NOT EXISTS seasons (
			run_id BIGINT NOT NULL,
			league_name TEXT NOT NULL,
			year INTEGER NOT NULL,
			champion TEXT NOT NULL,
			PRIMARY KEY (run_id, league_name, year)
		);`,
		`CREATE TABLE IF NOT EXISTS standings (
			run_id BIGINT NOT NULL,
			league_name TEXT NOT NULL,
			year INTEGER NOT NULL,
			rank INTEGER NOT NULL,
			team_name TEXT NOT NULL,
			wins INTEGER NOT NULL,
			losses INTEGER NOT NULL,
			PRIMARY KEY (run_id, league_name, year, rank)
		);`,
		`CREATE TABLE IF NOT EXISTS expansions (
			run_id BIGINT NOT NULL,
			league_name TEXT NOT NULL,
			year INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			replacement INTEGER NOT NULL,
			gate_passed INTEGER NOT NULL,
			PRIMARY KEY (run_id, league_name, year, seq)
		);`,
		`CREATE TABLE IF NOT EXISTS expansion_cities (
			run_id BIGINT NOT NULL,
			league_name TEXT NOT NULL,
			year INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			city_seq INTEGER NOT NULL,
			city TEXT NOT NULL,
			PRIMARY KEY (run_id, league_name, year, seq, city_seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_seasons_champion ON seasons(run_id, champion);`,
	}
	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("migrating: %w", err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders to $1, $2, ... for Postgres.
func (s *Store) rebind(q string) string {
	if s.dialect != dialectPostgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// BeginRun starts a new run; every report recorded afterwards belongs to it.
func (s *Store) BeginRun(seed int64) (int64, error) {
	var id int64
	err := s.db.QueryRow(s.rebind(`INSERT INTO runs (seed, created_at) VALUES (?, ?) RETURNING id`),
		seed, time.Now().UTC().Format(time.RFC3339)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("starting run: %w", err)
	}
	s.runID = id
	logrus.Debugf("store: run %d started (seed %d)", id, seed)
	return id, nil
}

// RunID returns the run writes go to, or 0 before BeginRun.
func (s *Store) RunID() int64 {
	return s.runID
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// withTx runs fn in a transaction bound to the current run.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	if s.runID == 0 {
		return errNoRun
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// RecordFormation stores a founding and its charter class.
func (s *Store) RecordFormation(r report.FormationReport) error {
	return s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(s.rebind(`INSERT INTO leagues (run_id, name, founded, headquarters, degenerate) VALUES (?, ?, ?, ?, ?)`),
			s.runID, r.LeagueName, r.Year, r.HeadquartersName, boolInt(r.Degenerate)); err != nil {
			return fmt.Errorf("inserting league %s: %w", r.LeagueName, err)
		}
		for i, name := range r.CharterTeamNames {
			if _, err := tx.Exec(s.rebind(`INSERT INTO charter_teams (run_id, league_name, seq, team_name) VALUES (?, ?, ?, ?)`),
				s.runID, r.LeagueName, i, name); err != nil {
				return fmt.Errorf("inserting charter team %s: %w", name, err)
			}
		}
		return nil
	})
}

// RecordSeason stores a season's champion and final standings.
func (s *Store) RecordSeason(r report.SeasonReport) error {
	return s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(s.rebind(`INSERT INTO seasons (run_id, league_name, year, champion) VALUES (?, ?, ?, ?)`),
			s.runID, r.LeagueName, r.Year, r.Champion); err != nil {
			return fmt.Errorf("inserting season %s %d: %w", r.LeagueName, r.Year, err)
		}
		for i, st := range r.Standings {
			if _, err := tx.Exec(s.rebind(`INSERT INTO standings (run_id, league_name, year, rank, team_name, wins, losses) VALUES (?, ?, ?, ?, ?, ?, ?)`),
				s.runID, r.LeagueName, r.Year, i+1, st.TeamName, st.Wins, st.Losses); err != nil {
				return fmt.Errorf("inserting standing %s: %w", st.TeamName, err)
			}
		}
		return nil
	})
}

// RecordExpansion stores an expansion round. Rounds in the same league and year
// are numbered in arrival order.
func (s *Store) RecordExpansion(r report.ExpansionReport) error {
	return s.withTx(func(tx *sql.Tx) error {
		var seq int
		if err := tx.QueryRow(s.rebind(`SELECT COUNT(*) FROM expansions WHERE run_id = ? AND league_name = ? AND year = ?`),
			s.runID, r.LeagueName, r.Year).Scan(&seq); err != nil {
			return err
		}
		if _, err := tx.Exec(s.rebind(`INSERT INTO expansions (run_id, league_name, year, seq, replacement, gate_passed) VALUES (?, ?, ?, ?, ?, ?)`),
			s.runID, r.LeagueName, r.Year, seq, boolInt(r.Replacement), boolInt(r.GatePassed)); err != nil {
			return fmt.Errorf("inserting expansion %s %d: %w", r.LeagueName, r.Year, err)
		}
		for i, city := range r.NewFranchiseCities {
			if _, err := tx.Exec(s.rebind(`INSERT INTO expansion_cities (run_id, league_name, year, seq, city_seq, city) VALUES (?, ?, ?, ?, ?, ?)`),
				s.runID, r.LeagueName, r.Year, seq, i, city); err != nil {
				return err
			}
		}
		return nil
	})
}
