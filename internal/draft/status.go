package draft

import "fmt"

// Status is a manager's participation state
type Status int

const (
	StatusActive      Status = iota // Still picking
	StatusComplete                  // Drafted the full roster
	StatusShorthanded               // Could no longer complete the roster within budget
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "ACTIVE"
	case StatusComplete:
		return "COMPLETE"
	case StatusShorthanded:
		return "SHORTHANDED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", s)
	}
}

// Terminal reports whether the manager has stopped picking
func (s Status) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// InvalidTransitionError is returned when a status change is not allowed
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// validTransitions lists the allowed target statuses for each status.
// Complete and Shorthanded are terminal.
var validTransitions = map[Status]map[Status]bool{
	StatusActive: {
		StatusComplete:    true,
		StatusShorthanded: true,
	},
	StatusComplete:    {},
	StatusShorthanded: {},
}

// CanTransition reports whether from may move to to
func CanTransition(from, to Status) bool {
	return validTransitions[from][to]
}
