package rules

import (
	"errors"
	"fmt"

	"github.com/Billy-Davies-2/hockey-draft/internal/models"
	"github.com/shopspring/decimal"
)

// Scoring holds the fantasy point constants
type Scoring struct {
	PointsPerGoal      int             `json:"pointsPerGoal"`
	PointsPerAssist    int             `json:"pointsPerAssist"`
	PointsPerHit       decimal.Decimal `json:"pointsPerHit"`
	ForwardDCsPerPoint int             `json:"forwardDcsPerPoint"`
	DefenceDCsPerPoint int             `json:"defenceDcsPerPoint"`
	SaveValueScale     decimal.Decimal `json:"saveValueScale"`
	GoalsAgainstScale  decimal.Decimal `json:"goalsAgainstScale"`
}

// Rules holds the roster quotas, the starting budget and the scoring constants
// shared by every manager in a draft
type Rules struct {
	Budget           int     `json:"budget"`
	ForwardsNeeded   int     `json:"forwardsNeeded"`
	DefencemenNeeded int     `json:"defencemenNeeded"`
	GoaliesNeeded    int     `json:"goaliesNeeded"`
	Scoring          Scoring `json:"scoring"`
}

// DefaultScoring returns the league scoring constants
func DefaultScoring() Scoring {
	return Scoring{
		PointsPerGoal:      4,
		PointsPerAssist:    2,
		PointsPerHit:       decimal.RequireFromString("0.25"),
		ForwardDCsPerPoint: 10,
		DefenceDCsPerPoint: 5,
		SaveValueScale:     decimal.NewFromInt(100),
		GoalsAgainstScale:  decimal.NewFromInt(10),
	}
}

// Default returns the standard draft rules: 3 forwards, 2 defencemen and 1
// goalie on a budget of 100
func Default() Rules {
	return Rules{
		Budget:           100,
		ForwardsNeeded:   3,
		DefencemenNeeded: 2,
		GoaliesNeeded:    1,
		Scoring:          DefaultScoring(),
	}
}

// Quota returns how many athletes of a position a complete roster holds
func (r Rules) Quota(p models.Position) int {
	switch p {
	case models.Forward:
		return r.ForwardsNeeded
	case models.Defenceman:
		return r.DefencemenNeeded
	case models.Goalie:
		return r.GoaliesNeeded
	default:
		return 0
	}
}

// PlayersToSelect is the total roster size
func (r Rules) PlayersToSelect() int {
	return r.ForwardsNeeded + r.DefencemenNeeded + r.GoaliesNeeded
}

// Remaining returns how many more athletes of a position are needed given counts
func (r Rules) Remaining(p models.Position, counts models.Counts) int {
	n := r.Quota(p) - counts.Get(p)
	if n < 0 {
		return 0
	}
	return n
}

// Validate checks that the rules describe a playable draft
func (r Rules) Validate() error {
	var errs []error
	if r.Budget < 0 {
		errs = append(errs, fmt.Errorf("budget must not be negative, got %d", r.Budget))
	}
	for _, p := range models.Positions {
		if r.Quota(p) < 0 {
			errs = append(errs, fmt.Errorf("%s quota must not be negative, got %d", p, r.Quota(p)))
		}
	}
	if r.PlayersToSelect() == 0 {
		errs = append(errs, errors.New("at least one athlete must be drafted"))
	}
	if r.Scoring.ForwardDCsPerPoint <= 0 {
		errs = append(errs, fmt.Errorf("forward DC divisor must be positive, got %d", r.Scoring.ForwardDCsPerPoint))
	}
	if r.Scoring.DefenceDCsPerPoint <= 0 {
		errs = append(errs, fmt.Errorf("defence DC divisor must be positive, got %d", r.Scoring.DefenceDCsPerPoint))
	}
	return errors.Join(errs...)
}
