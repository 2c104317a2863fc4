package scoring

import (
	"github.com/Billy-Davies-2/hockey-draft/internal/codec"
	"github.com/Billy-Davies-2/hockey-draft/internal/models"
	"github.com/Billy-Davies-2/hockey-draft/internal/rules"
	"github.com/shopspring/decimal"
)

// Engine computes fantasy points from decoded athletes
type Engine struct {
	rules rules.Scoring
}

// NewEngine creates a scoring engine for the given constants
func NewEngine(r rules.Scoring) *Engine {
	return &Engine{rules: r}
}

// GoalPoints returns goals times points per goal, 0 for non-skaters
func (e *Engine) GoalPoints(a models.Athlete) int {
	if !a.Position.IsSkater() {
		return 0
	}
	return a.Goals * e.rules.PointsPerGoal
}

// AssistPoints returns assists times points per assist, 0 for non-skaters
func (e *Engine) AssistPoints(a models.Athlete) int {
	if !a.Position.IsSkater() {
		return 0
	}
	return a.Assists * e.rules.PointsPerAssist
}

// HitPoints returns the fractional points earned from hits
func (e *Engine) HitPoints(a models.Athlete) decimal.Decimal {
	if !a.Position.IsSkater() {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(a.Hits)).Mul(e.rules.PointsPerHit)
}

// DCPoints converts defensive contribution with the position's divisor.
// Defencemen need fewer DCs per point than forwards.
func (e *Engine) DCPoints(a models.Athlete) int {
	switch a.Position {
	case models.Forward:
		return a.DefensiveContribution / e.rules.ForwardDCsPerPoint
	case models.Defenceman:
		return a.DefensiveContribution / e.rules.DefenceDCsPerPoint
	default:
		return 0
	}
}

// GoaliePoints returns SV x scale - GAA x scale. It can be negative.
func (e *Engine) GoaliePoints(a models.Athlete) decimal.Decimal {
	if a.Position != models.Goalie {
		return decimal.Zero
	}
	return a.SavePercentage.Mul(e.rules.SaveValueScale).Sub(a.GoalsAgainstAverage.Mul(e.rules.GoalsAgainstScale))
}

// Score returns the fantasy score of one athlete. Empty athletes score 0.
func (e *Engine) Score(a models.Athlete) float64 {
	return e.score(a).InexactFloat64()
}

func (e *Engine) score(a models.Athlete) decimal.Decimal {
	switch a.Position {
	case models.Forward, models.Defenceman:
		ints := int64(e.GoalPoints(a) + e.AssistPoints(a) + e.DCPoints(a))
		return decimal.NewFromInt(ints).Add(e.HitPoints(a))
	case models.Goalie:
		return e.GoaliePoints(a)
	default:
		return decimal.Zero
	}
}

// ScoreRecord decodes a record and scores it. Records that fail to decode
// score 0.
func (e *Engine) ScoreRecord(record string) float64 {
	a, err := codec.Decode(record)
	if err != nil {
		return 0
	}
	return e.Score(a)
}

// TeamScore sums the scores of a roster
func (e *Engine) TeamScore(roster []models.Athlete) float64 {
	total := decimal.Zero
	for _, a := range roster {
		total = total.Add(e.score(a))
	}
	return total.InexactFloat64()
}
