// Package draft runs the turn loop of a fantasy draft: it solicits picks,
// admits or rejects them, applies accepted picks to the manager and the pool
// in one step, and decides the winner.
package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Billy-Davies-2/hockey-draft/internal/feasibility"
	"github.com/Billy-Davies-2/hockey-draft/internal/logger"
	"github.com/Billy-Davies-2/hockey-draft/internal/models"
	"github.com/Billy-Davies-2/hockey-draft/internal/pool"
	"github.com/Billy-Davies-2/hockey-draft/internal/pubsub"
	"github.com/Billy-Davies-2/hockey-draft/internal/rules"
	"github.com/Billy-Davies-2/hockey-draft/internal/scoring"
)

// ErrPoolExhausted means the pool cannot supply the athletes a manager still
// needs, i.e. the quotas exceed what the roster source provides
var ErrPoolExhausted = errors.New("player pool exhausted before roster quota was met")

// Event types published during a draft
const (
	EventDraftStart  = "draft:start"
	EventTurnStart   = "turn:start"
	EventReject      = "draft:reject"
	EventPick        = "draft:pick"
	EventShorthanded = "manager:shorthanded"
	EventComplete    = "manager:complete"
	EventDraftDone   = "draft:complete"
)

// Publisher receives draft events
type Publisher interface {
	Publish(pubsub.Event)
}

// Journal records accepted picks and the final result of a run
type Journal interface {
	RecordPick(runID string, pick models.Pick) error
	RecordResult(runID string, result *models.DraftResult) error
}

// Seat configures one manager in turn order
type Seat struct {
	Name      string
	Automated bool
	Chooser   Chooser
}

// Options holds the optional collaborators of an Engine
type Options struct {
	RunID     string
	Publisher Publisher
	Journal   Journal
}

// Engine drives one draft. It is single threaded: Run must not be called
// concurrently and the pool must not be touched by anyone else while it runs.
type Engine struct {
	runID    string
	rules    rules.Rules
	pool     *pool.Pool
	scorer   *scoring.Engine
	managers []*Manager
	picks    []models.Pick
	pub      Publisher
	journal  Journal
}

// New creates a draft engine. Seats are served in the given order.
func New(r rules.Rules, p *pool.Pool, seats []Seat, opts Options) (*Engine, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if p == nil {
		return nil, errors.New("player pool is required")
	}
	if len(seats) == 0 {
		return nil, errors.New("at least one manager is required")
	}

	names := make(map[string]bool, len(seats))
	managers := make([]*Manager, 0, len(seats))
	for i, s := range seats {
		if s.Name == "" {
			return nil, fmt.Errorf("seat %d has no name", i)
		}
		if names[s.Name] {
			return nil, fmt.Errorf("duplicate manager name %q", s.Name)
		}
		if s.Chooser == nil {
			return nil, fmt.Errorf("manager %q has no chooser", s.Name)
		}
		names[s.Name] = true
		managers = append(managers, newManager(s, r.Budget))
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	return &Engine{
		runID:    runID,
		rules:    r,
		pool:     p,
		scorer:   scoring.NewEngine(r.Scoring),
		managers: managers,
		pub:      opts.Publisher,
		journal:  opts.Journal,
	}, nil
}

// RunID identifies this draft in events and the journal
func (e *Engine) RunID() string {
	return e.runID
}

// Managers returns the managers in turn order
func (e *Engine) Managers() []*Manager {
	return e.managers
}

// Pool returns the shared pool
func (e *Engine) Pool() *pool.Pool {
	return e.pool
}

// Run plays turns until every manager is complete or shorthanded
func (e *Engine) Run(ctx context.Context) (*models.DraftResult, error) {
	logger.Info("Draft starting", "run_id", e.runID, "managers", len(e.managers), "pool_size", e.pool.Len())
	e.publish(EventDraftStart, map[string]interface{}{
		"managers": len(e.managers),
		"pool":     e.pool.Packed(),
	})

	for e.anyActive() {
		for _, m := range e.managers {
			if m.Status() != StatusActive {
				continue
			}
			if err := e.takeTurn(ctx, m); err != nil {
				logger.Error("Draft stopped", "run_id", e.runID, "manager", m.Name, "error", err)
				return nil, err
			}
		}
	}

	result := e.Result()
	if e.journal != nil {
		if err := e.journal.RecordResult(e.runID, result); err != nil {
			return nil, fmt.Errorf("record result: %w", err)
		}
	}

	e.publish(EventDraftDone, map[string]interface{}{
		"winner": result.Winner,
		"tie":    result.Tie,
	})
	logger.Info("Draft complete", "run_id", e.runID, "winner", result.Winner, "tie", result.Tie, "picks", len(e.picks))

	return result, nil
}

func (e *Engine) anyActive() bool {
	for _, m := range e.managers {
		if m.Status() == StatusActive {
			return true
		}
	}
	return false
}

func (e *Engine) takeTurn(ctx context.Context, m *Manager) error {
	snap := m.Snapshot(e.scorer.TeamScore(m.roster))
	e.publish(EventTurnStart, map[string]interface{}{"manager": snap})

	if !feasibility.CanCompleteRoster(m.state(), e.pool, e.rules) {
		if err := m.transition(StatusShorthanded); err != nil {
			return err
		}
		logger.Info("Manager is shorthanded", "run_id", e.runID, "manager", m.Name, "budget", m.budget)
		e.publish(EventShorthanded, map[string]interface{}{"manager": m.Name, "automated": m.Automated})
		return nil
	}

	if !feasibility.CanSupply(m.counts, e.pool, e.rules) {
		return fmt.Errorf("%w: %s holds %d of %d athletes and %d remain", ErrPoolExhausted, m.Name, m.counts.Total(), e.rules.PlayersToSelect(), e.pool.Len())
	}

	var last *Rejection
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		id, err := m.chooser.Choose(ctx, Turn{Manager: snap, Pool: e.pool.Clone(), LastRejection: last})
		if err != nil {
			return fmt.Errorf("choose pick for %s: %w", m.Name, err)
		}

		entry, ok := e.pool.Get(id)
		if !ok {
			last = e.reject(m, id, feasibility.Unavailable)
			continue
		}

		v := feasibility.Admit(m.state(), entry.Athlete, e.pool, e.rules)
		if !v.OK() {
			last = e.reject(m, id, v.Reason)
			continue
		}

		if err := e.apply(m, entry, v.Next); err != nil {
			return err
		}
		break
	}

	if m.counts.Total() == e.rules.PlayersToSelect() {
		if err := m.transition(StatusComplete); err != nil {
			return err
		}
		logger.Info("Manager roster complete", "run_id", e.runID, "manager", m.Name)
		e.publish(EventComplete, map[string]interface{}{"manager": m.Name})
	}
	return nil
}

func (e *Engine) reject(m *Manager, id string, reason feasibility.Reason) *Rejection {
	logger.Debug("Pick rejected", "run_id", e.runID, "manager", m.Name, "athlete", id, "reason", reason.String())
	e.publish(EventReject, map[string]interface{}{
		"manager":   m.Name,
		"automated": m.Automated,
		"athleteId": id,
		"reason":    reason.String(),
	})
	return &Rejection{ID: id, Reason: reason}
}

// apply commits a pick to the pool, the manager and the journal
func (e *Engine) apply(m *Manager, entry pool.Entry, next feasibility.State) error {
	if _, ok := e.pool.Remove(entry.Athlete.ID); !ok {
		return fmt.Errorf("athlete %s vanished from the pool", entry.Athlete.ID)
	}
	m.applyPick(entry.Athlete, next)

	pick := models.Pick{
		Number:  len(e.picks) + 1,
		Round:   len(m.roster),
		Manager: m.Name,
		Name:    entry.Name,
		Athlete: entry.Athlete,
		Score:   e.scorer.Score(entry.Athlete),
		TS:      time.Now().UnixMilli(),
	}
	e.picks = append(e.picks, pick)

	logger.Info("Pick accepted", "run_id", e.runID, "pick", pick.Number, "manager", m.Name, "athlete", entry.Athlete.ID, "price", entry.Athlete.Price, "budget", m.budget)

	if e.journal != nil {
		if err := e.journal.RecordPick(e.runID, pick); err != nil {
			return fmt.Errorf("record pick %d: %w", pick.Number, err)
		}
	}

	e.publish(EventPick, map[string]interface{}{
		"pick":      pick,
		"automated": m.Automated,
		"pool":      e.pool.Packed(),
	})
	return nil
}

// Result scores every manager and names the winner. The highest total wins;
// equal totals go to the manager earliest in turn order.
func (e *Engine) Result() *models.DraftResult {
	result := &models.DraftResult{
		RunID:    e.runID,
		Managers: make([]models.ManagerSnapshot, 0, len(e.managers)),
		Picks:    append([]models.Pick(nil), e.picks...),
	}

	best := -1
	for i, m := range e.managers {
		snap := m.Snapshot(e.scorer.TeamScore(m.roster))
		result.Managers = append(result.Managers, snap)
		if best < 0 || snap.Score > result.Managers[best].Score {
			best = i
		}
	}

	if best >= 0 {
		result.Winner = result.Managers[best].Name
		for i, snap := range result.Managers {
			if i != best && snap.Score == result.Managers[best].Score {
				result.Tie = true
			}
		}
	}
	return result
}

func (e *Engine) publish(eventType string, payload map[string]interface{}) {
	if e.pub == nil {
		return
	}
	payload["runId"] = e.runID
	e.pub.Publish(pubsub.Event{Type: eventType, Payload: payload})
}
