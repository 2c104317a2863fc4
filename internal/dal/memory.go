package dal

import (
	"slices"
	"sync"

	"github.com/Billy-Davies-2/hockey-draft/internal/models"
)

// MemoryDAL implements DraftDAL using in-memory storage
type MemoryDAL struct {
	mu       sync.RWMutex
	athletes []models.AthleteEntry
	picks    map[string][]models.Pick
	results  map[string]*models.DraftResult
}

// NewMemoryDAL creates a new in-memory data access layer seeded with the
// default athletes
func NewMemoryDAL() *MemoryDAL {
	return &MemoryDAL{
		athletes: DefaultAthletes(),
		picks:    make(map[string][]models.Pick),
		results:  make(map[string]*models.DraftResult),
	}
}

func (m *MemoryDAL) LoadAthletes() ([]models.AthleteEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.athletes), nil
}

func (m *MemoryDAL) SaveAthletes(entries []models.AthleteEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.athletes = slices.Clone(entries)
	return nil
}

func (m *MemoryDAL) RecordPick(runID string, pick models.Pick) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.picks[runID] = append(m.picks[runID], pick)
	return nil
}

func (m *MemoryDAL) RecordResult(runID string, result *models.DraftResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy so later changes by the caller don't leak in
	stored := *result
	stored.Managers = slices.Clone(result.Managers)
	stored.Picks = slices.Clone(result.Picks)
	m.results[runID] = &stored
	return nil
}

func (m *MemoryDAL) Picks(runID string) ([]models.Pick, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.picks[runID]), nil
}

func (m *MemoryDAL) Result(runID string) (*models.DraftResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.results[runID]
	if !ok {
		return nil, ErrNotFound
	}
	out := *r
	return &out, nil
}

// Close is a no-op for the in-memory store
func (m *MemoryDAL) Close() error {
	return nil
}

// DefaultAthletes returns the built-in athlete list used when no roster file
// or database content is available
func DefaultAthletes() []models.AthleteEntry {
	return []models.AthleteEntry{
		{Name: "Mika Gorski", Record: "MGO_PD_G0-_A14_DC43_H70_Pr5-"},
		{Name: "Amelie Pruett", Record: "AMP_PF_G12_A20_DC8-_H15_Pr18"},
		{Name: "Dolan Okafor", Record: "DOL_PF_G31_A28_DC12_H40_Pr34"},
		{Name: "Nils Carver", Record: "NCA_PF_G22_A35_DC6-_H22_Pr27"},
		{Name: "Tomas Reyes", Record: "TRE_PF_G9-_A11_DC30_H55_Pr8-"},
		{Name: "Ivy Lindqvist", Record: "ILQ_PF_G18_A16_DC14_H33_Pr15"},
		{Name: "Jory Banks", Record: "JBA_PF_G4-_A7-_DC9-_H81_Pr3-"},
		{Name: "Sasha Kell", Record: "SKE_PF_G27_A19_DC5-_H12_Pr25"},
		{Name: "Owen Marchetti", Record: "OMA_PF_G14_A25_DC22_H48_Pr17"},
		{Name: "Rui Tanaka", Record: "RTA_PD_G6-_A31_DC62_H44_Pr21"},
		{Name: "Petra Hale", Record: "PHA_PD_G3-_A18_DC71_H90_Pr14"},
		{Name: "Colm Byrne", Record: "CBY_PD_G9-_A24_DC38_H27_Pr16"},
		{Name: "Luca Ferro", Record: "LFE_PD_G1-_A6-_DC55_H63_Pr6-"},
		{Name: "Greta Vos", Record: "GVO_PD_G11_A29_DC29_H18_Pr19"},
		{Name: "Cora Landry", Record: "CLA_PG_GAA2.23_SV0.910_Pr20"},
		{Name: "Anton Weiss", Record: "AWE_PG_GAA2.71_SV0.902_Pr12"},
		{Name: "Brielle Sato", Record: "BSA_PG_GAA1.98_SV0.921_Pr28"},
		{Name: "Hugo Marsh", Record: "HMA_PG_GAA3.05_SV0.895_Pr7-"},
	}
}
