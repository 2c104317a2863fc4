package draft

import (
	"slices"

	"github.com/Billy-Davies-2/hockey-draft/internal/codec"
	"github.com/Billy-Davies-2/hockey-draft/internal/feasibility"
	"github.com/Billy-Davies-2/hockey-draft/internal/models"
)

// Manager is one drafting participant. Its fields change only through
// applyPick and transition.
type Manager struct {
	Name      string
	Automated bool

	chooser      Chooser
	budget       int
	counts       models.Counts
	roster       []models.Athlete
	rosterString string
	status       Status
}

func newManager(seat Seat, budget int) *Manager {
	return &Manager{
		Name:      seat.Name,
		Automated: seat.Automated,
		chooser:   seat.Chooser,
		budget:    budget,
		status:    StatusActive,
	}
}

// Status returns the manager's current status
func (m *Manager) Status() Status {
	return m.status
}

// Budget returns the remaining budget
func (m *Manager) Budget() int {
	return m.budget
}

// Counts returns the drafted athletes per position
func (m *Manager) Counts() models.Counts {
	return m.counts
}

// Roster returns a copy of the drafted athletes in pick order
func (m *Manager) Roster() []models.Athlete {
	return slices.Clone(m.roster)
}

// RosterString returns the packed id string of the roster
func (m *Manager) RosterString() string {
	return m.rosterString
}

func (m *Manager) state() feasibility.State {
	return feasibility.State{Budget: m.budget, Counts: m.counts}
}

// applyPick commits an admitted pick. next must come from the admission
// verdict for a.
func (m *Manager) applyPick(a models.Athlete, next feasibility.State) {
	m.roster = append(m.roster, a)
	m.rosterString = codec.AppendToRoster(a.Record, m.rosterString)
	m.counts = next.Counts
	m.budget = next.Budget
}

func (m *Manager) transition(to Status) error {
	if !CanTransition(m.status, to) {
		return &InvalidTransitionError{From: m.status, To: to}
	}
	m.status = to
	return nil
}

// Snapshot returns a read-only copy for presentation
func (m *Manager) Snapshot(score float64) models.ManagerSnapshot {
	return models.ManagerSnapshot{
		Name:         m.Name,
		Status:       m.status.String(),
		Automated:    m.Automated,
		Budget:       m.budget,
		Counts:       m.counts,
		Roster:       m.Roster(),
		RosterString: m.rosterString,
		Score:        score,
	}
}
