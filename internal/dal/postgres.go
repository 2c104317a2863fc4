package dal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/Billy-Davies-2/hockey-draft/internal/codec"
	"github.com/Billy-Davies-2/hockey-draft/internal/logger"
	"github.com/Billy-Davies-2/hockey-draft/internal/models"
)

// PostgresDAL implements DraftDAL using PostgreSQL
type PostgresDAL struct {
	db *sql.DB
}

// NewPostgresDAL creates a new PostgreSQL data access layer
func NewPostgresDAL(connString string) (*PostgresDAL, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute) // Recycle connections to ride out failovers
	db.SetConnMaxIdleTime(1 * time.Minute)

	// Retry the first ping; the database may still be starting
	maxRetries := 5
	retryDelay := 2 * time.Second
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		lastErr = db.PingContext(ctx)
		cancel()

		if lastErr == nil {
			break
		}

		logger.Warn("Postgres not ready", "attempt", i+1, "error", lastErr)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	if lastErr != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres after %d retries: %w", maxRetries, lastErr)
	}

	dal := &PostgresDAL{db: db}

	if err := dal.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return dal, nil
}

func (p *PostgresDAL) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS athletes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		record TEXT NOT NULL,
		position CHAR(1) NOT NULL,
		price INTEGER NOT NULL,
		sort_order INTEGER NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS picks (
		run_id TEXT NOT NULL,
		number INTEGER NOT NULL,
		round INTEGER NOT NULL,
		manager TEXT NOT NULL,
		athlete_id TEXT NOT NULL,
		name TEXT NOT NULL,
		record TEXT NOT NULL,
		score DOUBLE PRECISION NOT NULL,
		ts BIGINT NOT NULL,
		PRIMARY KEY (run_id, number)
	);

	CREATE TABLE IF NOT EXISTS results (
		run_id TEXT PRIMARY KEY,
		winner TEXT NOT NULL,
		tie BOOLEAN NOT NULL DEFAULT false,
		data JSONB NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_athletes_position_price ON athletes(position, price);
	CREATE INDEX IF NOT EXISTS idx_picks_manager ON picks(run_id, manager);
	`

	if _, err := p.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	var count int
	if err := p.db.QueryRow("SELECT COUNT(*) FROM athletes").Scan(&count); err != nil {
		return err
	}

	if count == 0 {
		if err := p.SaveAthletes(DefaultAthletes()); err != nil {
			return fmt.Errorf("failed to seed athletes: %w", err)
		}
	}

	return nil
}

func (p *PostgresDAL) LoadAthletes() ([]models.AthleteEntry, error) {
	rows, err := p.db.Query(`SELECT name, record FROM athletes ORDER BY sort_order`)
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

func (p *PostgresDAL) SaveAthletes(entries []models.AthleteEntry) error {
	tx, err := p.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM athletes`); err != nil {
		return err
	}

	for i, e := range entries {
		row, err := athleteRow(e)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
			INSERT INTO athletes (id, name, record, position, price, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, row.id, e.Name, e.Record, row.position, row.price, i)
		if err != nil {
			return fmt.Errorf("failed to insert athlete %s: %w", row.id, err)
		}
	}

	return tx.Commit()
}

func (p *PostgresDAL) RecordPick(runID string, pick models.Pick) error {
	_, err := p.db.Exec(`
		INSERT INTO picks (run_id, number, round, manager, athlete_id, name, record, score, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, runID, pick.Number, pick.Round, pick.Manager, pick.Athlete.ID, pick.Name, pick.Athlete.Record, pick.Score, pick.TS)
	if err != nil {
		return fmt.Errorf("failed to record pick: %w", err)
	}
	return nil
}

func (p *PostgresDAL) RecordResult(runID string, result *models.DraftResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	_, err = p.db.Exec(`
		INSERT INTO results (run_id, winner, tie, data) VALUES ($1, $2, $3, $4)
		ON CONFLICT (run_id) DO UPDATE SET winner = EXCLUDED.winner, tie = EXCLUDED.tie, data = EXCLUDED.data
	`, runID, result.Winner, result.Tie, data)
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}
	return nil
}

func (p *PostgresDAL) Picks(runID string) ([]models.Pick, error) {
	rows, err := p.db.Query(`
		SELECT number, round, manager, name, record, score, ts
		FROM picks WHERE run_id = $1 ORDER BY number
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var picks []models.Pick
	for rows.Next() {
		var pick models.Pick
		var record string
		if err := rows.Scan(&pick.Number, &pick.Round, &pick.Manager, &pick.Name, &record, &pick.Score, &pick.TS); err != nil {
			return nil, err
		}
		if pick.Athlete, err = codec.Decode(record); err != nil {
			return nil, fmt.Errorf("pick %d: %w", pick.Number, err)
		}
		picks = append(picks, pick)
	}
	return picks, rows.Err()
}

func (p *PostgresDAL) Result(runID string) (*models.DraftResult, error) {
	var data []byte
	err := p.db.QueryRow(`SELECT data FROM results WHERE run_id = $1`, runID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var result models.DraftResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Close closes the connection pool
func (p *PostgresDAL) Close() error {
	return p.db.Close()
}
