// Package feasibility decides whether a manager can still complete a roster
// within budget, and whether a candidate pick may be admitted.
//
// The completion check is a lower bound: it sums the cheapest remaining
// prices per position and assumes those athletes stay available. Another
// manager may draft one of them first, so a roster judged completable can
// still end up shorthanded.
package feasibility

import (
	"slices"

	"github.com/Billy-Davies-2/hockey-draft/internal/models"
	"github.com/Billy-Davies-2/hockey-draft/internal/pool"
	"github.com/Billy-Davies-2/hockey-draft/internal/rules"
)

// State is the part of a manager's state the checks depend on
type State struct {
	Budget int
	Counts models.Counts
}

// Reason explains why a pick was rejected
type Reason int

const (
	Accepted Reason = iota
	Unavailable
	QuotaFull
	OverBudget
	WouldBeShorthanded
)

func (r Reason) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case Unavailable:
		return "not available"
	case QuotaFull:
		return "position quota full"
	case OverBudget:
		return "over budget"
	case WouldBeShorthanded:
		return "would leave the roster shorthanded"
	default:
		return "unknown"
	}
}

// Verdict is the outcome of an admission check
type Verdict struct {
	Reason Reason
	// Next is the state the manager would have after the pick
	Next State
}

// OK reports whether the pick was admitted
func (v Verdict) OK() bool {
	return v.Reason == Accepted
}

// CanAfford reports whether price fits in budget
func CanAfford(budget, price int) bool {
	return budget-price >= 0
}

// CanSelect reports whether one more athlete of pos fits the quota.
// An unknown position (empty record) is always selectable.
func CanSelect(pos models.Position, counts models.Counts, r rules.Rules) bool {
	if pos == models.PositionUnknown {
		return true
	}
	return counts.Get(pos) < r.Quota(pos)
}

// MinimumCompletionCost sums, per position, the cheapest remaining prices for
// the athletes still needed
func MinimumCompletionCost(counts models.Counts, p *pool.Pool, r rules.Rules) int {
	prices := p.PricesByPosition()
	total := 0
	for _, pos := range models.Positions {
		need := r.Remaining(pos, counts)
		if need == 0 {
			continue
		}
		sorted := slices.Clone(prices[pos])
		slices.Sort(sorted)
		for _, price := range sorted[:min(need, len(sorted))] {
			total += price
		}
	}
	return total
}

// CanCompleteRoster reports whether the cheapest completion fits the budget
func CanCompleteRoster(s State, p *pool.Pool, r rules.Rules) bool {
	return MinimumCompletionCost(s.Counts, p, r) <= s.Budget
}

// CanSupply reports whether the pool still holds enough athletes at every
// position to fill the remaining quota
func CanSupply(counts models.Counts, p *pool.Pool, r rules.Rules) bool {
	for _, pos := range models.Positions {
		if p.Available(pos) < r.Remaining(pos, counts) {
			return false
		}
	}
	return true
}

// Admit checks a candidate against the quota, the budget and the completion
// check on the state the pick would produce. Nothing is mutated.
func Admit(s State, candidate models.Athlete, p *pool.Pool, r rules.Rules) Verdict {
	if p.Index(candidate.ID) < 0 {
		return Verdict{Reason: Unavailable, Next: s}
	}
	if !CanSelect(candidate.Position, s.Counts, r) {
		return Verdict{Reason: QuotaFull, Next: s}
	}
	if !CanAfford(s.Budget, candidate.Price) {
		return Verdict{Reason: OverBudget, Next: s}
	}

	next := State{
		Budget: s.Budget - candidate.Price,
		Counts: s.Counts.With(candidate.Position),
	}
	if !CanCompleteRoster(next, p.Without(candidate.ID), r) {
		return Verdict{Reason: WouldBeShorthanded, Next: s}
	}
	return Verdict{Reason: Accepted, Next: next}
}
