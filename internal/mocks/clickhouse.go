package mocks

import (
	"context"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/Billy-Davies-2/hockey-draft/internal/clickhouse"
	"github.com/Billy-Davies-2/hockey-draft/internal/logger"
	"github.com/Billy-Davies-2/hockey-draft/internal/models"
)

// MockClickHouseClient provides a mock stats feed for local development
type MockClickHouseClient struct {
	base []clickhouse.StatLine
	rng  *rand.Rand
}

// NewMockClickHouseClient creates a mock ClickHouse client. The same seed
// yields the same season.
func NewMockClickHouseClient(seed uint64) *MockClickHouseClient {
	logger.Info("Using MOCK ClickHouse client for local development", "seed", seed)

	d := decimal.RequireFromString
	return &MockClickHouseClient{
		rng: rand.New(rand.NewPCG(seed, seed+1)),
		base: []clickhouse.StatLine{
			{Code: "KOV", Name: "Kasimir Ovalle", Position: models.Forward, Price: 30, Goals: 34, Assists: 29, DefensiveContribution: 10, Hits: 41},
			{Code: "BRD", Name: "Bram Redding", Position: models.Forward, Price: 22, Goals: 21, Assists: 33, DefensiveContribution: 14, Hits: 25},
			{Code: "ELU", Name: "Elin Lund", Position: models.Forward, Price: 16, Goals: 15, Assists: 19, DefensiveContribution: 22, Hits: 37},
			{Code: "MPA", Name: "Marco Paz", Position: models.Forward, Price: 9, Goals: 8, Assists: 12, DefensiveContribution: 31, Hits: 66},
			{Code: "TSU", Name: "Taro Suzuki", Position: models.Forward, Price: 12, Goals: 17, Assists: 9, DefensiveContribution: 8, Hits: 29},
			{Code: "FNO", Name: "Freya Nord", Position: models.Forward, Price: 5, Goals: 6, Assists: 8, DefensiveContribution: 17, Hits: 74},
			{Code: "DKA", Name: "Dmitri Kasa", Position: models.Defenceman, Price: 24, Goals: 9, Assists: 38, DefensiveContribution: 58, Hits: 51},
			{Code: "WBE", Name: "Wes Bergen", Position: models.Defenceman, Price: 15, Goals: 4, Assists: 21, DefensiveContribution: 66, Hits: 88},
			{Code: "ROL", Name: "Rhea Olsen", Position: models.Defenceman, Price: 10, Goals: 2, Assists: 15, DefensiveContribution: 47, Hits: 59},
			{Code: "JMU", Name: "Jonas Muir", Position: models.Defenceman, Price: 6, Goals: 1, Assists: 7, DefensiveContribution: 39, Hits: 92},
			{Code: "SVA", Name: "Silas Varga", Position: models.Goalie, Price: 25, GoalsAgainstAverage: d("2.05"), SavePercentage: d("0.918")},
			{Code: "NHO", Name: "Noor Holm", Position: models.Goalie, Price: 14, GoalsAgainstAverage: d("2.64"), SavePercentage: d("0.904")},
			{Code: "PCR", Name: "Piet Cruz", Position: models.Goalie, Price: 8, GoalsAgainstAverage: d("3.12"), SavePercentage: d("0.893")},
		},
	}
}

// StatLines returns the base lines with up to ±10% variation on the skater
// counts
func (m *MockClickHouseClient) StatLines(ctx context.Context) ([]clickhouse.StatLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines := make([]clickhouse.StatLine, len(m.base))
	for i, l := range m.base {
		l.Goals = m.vary(l.Goals)
		l.Assists = m.vary(l.Assists)
		l.DefensiveContribution = m.vary(l.DefensiveContribution)
		l.Hits = m.vary(l.Hits)
		lines[i] = l
	}
	return lines, nil
}

func (m *MockClickHouseClient) vary(n int) int {
	spread := n / 10
	if spread == 0 {
		return n
	}
	return n + m.rng.IntN(2*spread+1) - spread
}

// LoadAthletes returns the mock season encoded as roster entries
func (m *MockClickHouseClient) LoadAthletes(ctx context.Context) ([]models.AthleteEntry, error) {
	lines, err := m.StatLines(ctx)
	if err != nil {
		return nil, err
	}
	entries := clickhouse.Entries(lines)
	logger.Debug("Mock ClickHouse: Loaded athletes", "count", len(entries))
	return entries, nil
}

// Close is a no-op for mock client
func (m *MockClickHouseClient) Close() error {
	return nil
}
