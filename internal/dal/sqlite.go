package dal

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Billy-Davies-2/hockey-draft/internal/codec"
	"github.com/Billy-Davies-2/hockey-draft/internal/models"
)

// SQLiteDAL implements DraftDAL using SQLite
type SQLiteDAL struct {
	db *sql.DB
}

// NewSQLiteDAL creates a new SQLite data access layer
func NewSQLiteDAL(dbPath string) (*SQLiteDAL, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// a single writer avoids "database is locked" on the journal
	db.SetMaxOpenConns(1)

	dal := &SQLiteDAL{db: db}

	if err := dal.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return dal, nil
}

func (s *SQLiteDAL) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS athletes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		record TEXT NOT NULL,
		position TEXT NOT NULL,
		price INTEGER NOT NULL,
		sort_order INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS picks (
		run_id TEXT NOT NULL,
		number INTEGER NOT NULL,
		round INTEGER NOT NULL,
		manager TEXT NOT NULL,
		athlete_id TEXT NOT NULL,
		name TEXT NOT NULL,
		record TEXT NOT NULL,
		score REAL NOT NULL,
		ts INTEGER NOT NULL,
		PRIMARY KEY (run_id, number)
	);

	CREATE TABLE IF NOT EXISTS results (
		run_id TEXT PRIMARY KEY,
		winner TEXT NOT NULL,
		tie INTEGER NOT NULL DEFAULT 0,
		data TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed default data if empty
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM athletes").Scan(&count); err != nil {
		return err
	}

	if count == 0 {
		if err := s.SaveAthletes(DefaultAthletes()); err != nil {
			return fmt.Errorf("failed to seed athletes: %w", err)
		}
	}

	return nil
}

func (s *SQLiteDAL) LoadAthletes() ([]models.AthleteEntry, error) {
	rows, err := s.db.Query(`SELECT name, record FROM athletes ORDER BY sort_order`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AthleteEntry
	for rows.Next() {
		var e models.AthleteEntry
		if err := rows.Scan(&e.Name, &e.Record); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteDAL) SaveAthletes(entries []models.AthleteEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM athletes`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO athletes (id, name, record, position, price, sort_order)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		row, err := athleteRow(e)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(row.id, e.Name, e.Record, row.position, row.price, i); err != nil {
			return fmt.Errorf("failed to insert athlete %s: %w", row.id, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteDAL) RecordPick(runID string, pick models.Pick) error {
	_, err := s.db.Exec(`
		INSERT INTO picks (run_id, number, round, manager, athlete_id, name, record, score, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, pick.Number, pick.Round, pick.Manager, pick.Athlete.ID, pick.Name, pick.Athlete.Record, pick.Score, pick.TS)
	if err != nil {
		return fmt.Errorf("failed to record pick: %w", err)
	}
	return nil
}

func (s *SQLiteDAL) RecordResult(runID string, result *models.DraftResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	tie := 0
	if result.Tie {
		tie = 1
	}

	_, err = s.db.Exec(`
		INSERT INTO results (run_id, winner, tie, data) VALUES (?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET winner = excluded.winner, tie = excluded.tie, data = excluded.data
	`, runID, result.Winner, tie, string(data))
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}
	return nil
}

func (s *SQLiteDAL) Picks(runID string) ([]models.Pick, error) {
	rows, err := s.db.Query(`
		SELECT number, round, manager, name, record, score, ts
		FROM picks WHERE run_id = ? ORDER BY number
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var picks []models.Pick
	for rows.Next() {
		var p models.Pick
		var record string
		if err := rows.Scan(&p.Number, &p.Round, &p.Manager, &p.Name, &record, &p.Score, &p.TS); err != nil {
			return nil, err
		}
		if p.Athlete, err = codec.Decode(record); err != nil {
			return nil, fmt.Errorf("pick %d: %w", p.Number, err)
		}
		picks = append(picks, p)
	}
	return picks, rows.Err()
}

func (s *SQLiteDAL) Result(runID string) (*models.DraftResult, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM results WHERE run_id = ?`, runID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var result models.DraftResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Close closes the database
func (s *SQLiteDAL) Close() error {
	return s.db.Close()
}

type athleteColumns struct {
	id       string
	position string
	price    int
}

// athleteRow derives the indexed columns of an athlete from its record
func athleteRow(e models.AthleteEntry) (athleteColumns, error) {
	a, err := codec.Decode(e.Record)
	if err != nil {
		return athleteColumns{}, fmt.Errorf("athlete %q: %w", e.Name, err)
	}
	if a.IsEmpty() {
		return athleteColumns{}, fmt.Errorf("athlete %q: %w: empty record", e.Name, codec.ErrMalformedRecord)
	}
	return athleteColumns{id: a.ID, position: string(a.Position.Tag()), price: a.Price}, nil
}
