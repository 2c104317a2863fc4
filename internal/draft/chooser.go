package draft

import (
	"context"
	"math/rand/v2"

	"github.com/Billy-Davies-2/hockey-draft/internal/feasibility"
	"github.com/Billy-Davies-2/hockey-draft/internal/models"
	"github.com/Billy-Davies-2/hockey-draft/internal/pool"
	"github.com/Billy-Davies-2/hockey-draft/internal/rules"
	"github.com/Billy-Davies-2/hockey-draft/internal/scoring"
)

// Turn is what a chooser sees when asked for a pick
type Turn struct {
	Manager models.ManagerSnapshot
	// Pool is a copy of the available athletes; choosers may inspect it freely
	Pool *pool.Pool
	// LastRejection is set when the previous attempt this turn was refused
	LastRejection *Rejection
}

// Rejection describes a refused attempt
type Rejection struct {
	ID     string
	Reason feasibility.Reason
}

// Chooser supplies candidate ids for a manager. Side commands such as
// listing the pool are the chooser's business; the engine only receives ids.
type Chooser interface {
	Choose(ctx context.Context, turn Turn) (string, error)
}

// ChooserFunc adapts a function to the Chooser interface
type ChooserFunc func(ctx context.Context, turn Turn) (string, error)

func (f ChooserFunc) Choose(ctx context.Context, turn Turn) (string, error) {
	return f(ctx, turn)
}

// RandomChooser picks a uniformly random available id. Two choosers built
// with the same seed make the same choices for the same turns.
type RandomChooser struct {
	rng *rand.Rand
}

// NewRandomChooser creates a seeded random chooser
func NewRandomChooser(seed uint64) *RandomChooser {
	return &RandomChooser{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (c *RandomChooser) Choose(ctx context.Context, turn Turn) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ids := turn.Pool.IDs()
	if len(ids) == 0 {
		return "", ErrPoolExhausted
	}
	return ids[c.rng.IntN(len(ids))], nil
}

// GreedyChooser picks the highest scoring athlete it can get admitted,
// breaking ties by the lower price and then pool order
type GreedyChooser struct {
	rules  rules.Rules
	engine *scoring.Engine
}

// NewGreedyChooser creates a greedy chooser for the given rules
func NewGreedyChooser(r rules.Rules) *GreedyChooser {
	return &GreedyChooser{rules: r, engine: scoring.NewEngine(r.Scoring)}
}

func (c *GreedyChooser) Choose(ctx context.Context, turn Turn) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	state := feasibility.State{Budget: turn.Manager.Budget, Counts: turn.Manager.Counts}
	best := ""
	bestScore, bestPrice := 0.0, 0
	available := turn.Pool.Entries()
	for _, e := range available {
		if !feasibility.Admit(state, e.Athlete, turn.Pool, c.rules).OK() {
			continue
		}
		s := c.engine.Score(e.Athlete)
		if best == "" || s > bestScore || (s == bestScore && e.Athlete.Price < bestPrice) {
			best, bestScore, bestPrice = e.Athlete.ID, s, e.Athlete.Price
		}
	}

	if best == "" {
		// nothing admissible; hand back the first id and let the engine refuse it
		if len(available) == 0 {
			return "", ErrPoolExhausted
		}
		return available[0].Athlete.ID, nil
	}
	return best, nil
}
