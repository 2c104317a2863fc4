package dal

import (
	"errors"

	"github.com/Billy-Davies-2/hockey-draft/internal/models"
)

// ErrNotFound is returned when a run has no stored result
var ErrNotFound = errors.New("not found")

// DraftDAL defines the interface for data access layer. It supplies the
// athletes a draft is played with and journals what each run did; a
// journal is a record of the run, never a way to resume it.
type DraftDAL interface {
	// LoadAthletes returns the stored athletes in pool order
	LoadAthletes() ([]models.AthleteEntry, error)
	// SaveAthletes replaces the stored athletes
	SaveAthletes(entries []models.AthleteEntry) error
	RecordPick(runID string, pick models.Pick) error
	RecordResult(runID string, result *models.DraftResult) error
	// Picks returns the journaled picks of a run in pick order
	Picks(runID string) ([]models.Pick, error)
	Result(runID string) (*models.DraftResult, error)
	Close() error
}
