// Package clickhouse loads season stat lines from ClickHouse and encodes
// them as athlete records for the draft pool.
package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/shopspring/decimal"

	"github.com/Billy-Davies-2/hockey-draft/internal/codec"
	"github.com/Billy-Davies-2/hockey-draft/internal/logger"
	"github.com/Billy-Davies-2/hockey-draft/internal/models"
)

const maxSlot = 99

// StatLine is one athlete's season line as stored in the stats warehouse
type StatLine struct {
	Code     string
	Name     string
	Position models.Position
	Price    int

	Goals                 int
	Assists               int
	DefensiveContribution int
	Hits                  int

	GoalsAgainstAverage decimal.Decimal
	SavePercentage      decimal.Decimal
}

// Entry encodes the line as a roster entry. Skater counts above what a
// record slot holds are capped.
func (s StatLine) Entry() (models.AthleteEntry, error) {
	var (
		record string
		err    error
	)

	switch s.Position {
	case models.Forward, models.Defenceman:
		record, err = codec.EncodeSkater(s.Code, s.Position,
			capSlot(s.Code, "goals", s.Goals),
			capSlot(s.Code, "assists", s.Assists),
			capSlot(s.Code, "dc", s.DefensiveContribution),
			capSlot(s.Code, "hits", s.Hits),
			s.Price)
	case models.Goalie:
		record, err = codec.EncodeGoalie(s.Code, s.GoalsAgainstAverage.Round(2), s.SavePercentage.Round(3), s.Price)
	default:
		err = fmt.Errorf("athlete %s has no position", s.Code)
	}
	if err != nil {
		return models.AthleteEntry{}, err
	}

	return models.AthleteEntry{Name: s.Name, Record: record}, nil
}

func capSlot(code, stat string, n int) int {
	if n > maxSlot {
		logger.Debug("Capping stat to record slot", "athlete", code, "stat", stat, "value", n)
		return maxSlot
	}
	return max(n, 0)
}

// Entries encodes every line, skipping (and logging) lines that cannot be
// represented as a record
func Entries(lines []StatLine) []models.AthleteEntry {
	entries := make([]models.AthleteEntry, 0, len(lines))
	for _, l := range lines {
		e, err := l.Entry()
		if err != nil {
			logger.Warn("Skipping stat line", "athlete", l.Code, "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

// Client provides ClickHouse integration for season stats
type Client struct {
	conn   driver.Conn
	season string
}

// NewClient creates a new ClickHouse client. An empty season selects the
// most recent one in the table.
func NewClient(addr, database, username, password, season string) (*Client, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: database,
			Username: username,
			Password: password,
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &Client{conn: conn, season: season}, nil
}

// StatLines retrieves the aggregated season line of every athlete
func (c *Client) StatLines(ctx context.Context) ([]StatLine, error) {
	query := `
		SELECT
			player_code,
			any(player_name),
			any(position),
			toInt32(sum(goals)),
			toInt32(sum(assists)),
			toInt32(sum(defensive_contribution)),
			toInt32(sum(hits)),
			toString(round(avgIf(goals_against, position = 'G'), 2)),
			toString(round(if(sumIf(shots_against, position = 'G') = 0, 0, sumIf(saves, position = 'G') / sumIf(shots_against, position = 'G')), 3)),
			toInt32(any(price))
		FROM game_stats
		WHERE season = if($1 = '', (SELECT max(season) FROM game_stats), $1)
		GROUP BY player_code
		ORDER BY player_code
	`

	rows, err := c.conn.Query(ctx, query, c.season)
	if err != nil {
		return nil, fmt.Errorf("failed to query season stats: %w", err)
	}
	defer rows.Close()

	var lines []StatLine
	for rows.Next() {
		var (
			l                       StatLine
			tag                     string
			goals, assists, dc, hit int32
			gaa, sv                 string
			price                   int32
		)
		if err := rows.Scan(&l.Code, &l.Name, &tag, &goals, &assists, &dc, &hit, &gaa, &sv, &price); err != nil {
			return nil, err
		}

		if len(tag) > 0 {
			l.Position = models.PositionFromTag(tag[0])
		}
		l.Goals, l.Assists, l.DefensiveContribution, l.Hits = int(goals), int(assists), int(dc), int(hit)
		l.Price = int(price)
		if l.GoalsAgainstAverage, err = decimal.NewFromString(gaa); err != nil {
			return nil, fmt.Errorf("athlete %s: goals against average %q: %w", l.Code, gaa, err)
		}
		if l.SavePercentage, err = decimal.NewFromString(sv); err != nil {
			return nil, fmt.Errorf("athlete %s: save percentage %q: %w", l.Code, sv, err)
		}
		lines = append(lines, l)
	}

	return lines, rows.Err()
}

// LoadAthletes returns the season's athletes encoded as roster entries
func (c *Client) LoadAthletes(ctx context.Context) ([]models.AthleteEntry, error) {
	lines, err := c.StatLines(ctx)
	if err != nil {
		return nil, err
	}
	entries := Entries(lines)
	logger.Info("Loaded athletes from ClickHouse", "lines", len(lines), "athletes", len(entries))
	return entries, nil
}

// Close closes the ClickHouse connection
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
