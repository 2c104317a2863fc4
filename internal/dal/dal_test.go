package dal

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Billy-Davies-2/hockey-draft/internal/codec"
	"github.com/Billy-Davies-2/hockey-draft/internal/models"
	"github.com/Billy-Davies-2/hockey-draft/internal/pool"
)

func testPick(t *testing.T, number int, manager, record string) models.Pick {
	t.Helper()
	a, err := codec.Decode(record)
	require.NoError(t, err)
	return models.Pick{Number: number, Round: 1, Manager: manager, Name: a.ID, Athlete: a, Score: 1.5, TS: 1700000000000}
}

func TestDefaultAthletesFormAPool(t *testing.T) {
	p, err := pool.New(DefaultAthletes())
	require.NoError(t, err)
	assert.Equal(t, len(DefaultAthletes()), p.Len())

	// enough depth for two full rosters
	assert.GreaterOrEqual(t, p.Available(models.Forward), 6)
	assert.GreaterOrEqual(t, p.Available(models.Defenceman), 4)
	assert.GreaterOrEqual(t, p.Available(models.Goalie), 2)
}

func TestParseRoster(t *testing.T) {
	input := "Mika Gorski: MGO_PD_G0-_A14_DC43_H70_Pr5-\n\n  Cora Landry:CLA_PG_GAA2.23_SV0.910_Pr20  \n"

	entries, err := ParseRoster(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []models.AthleteEntry{
		{Name: "Mika Gorski", Record: "MGO_PD_G0-_A14_DC43_H70_Pr5-"},
		{Name: "Cora Landry", Record: "CLA_PG_GAA2.23_SV0.910_Pr20"},
	}, entries)
}

func TestParseRosterMissingSeparator(t *testing.T) {
	_, err := ParseRoster(strings.NewReader("Mika Gorski MGO_PD_G0-_A14_DC43_H70_Pr5-\n"))
	assert.ErrorContains(t, err, "line 1")
}

func TestLoadRosterFileMissing(t *testing.T) {
	_, err := LoadRosterFile(filepath.Join(t.TempDir(), "players.txt"))
	assert.Error(t, err)
}

// exerciseDAL runs the same journal checks against any implementation
func exerciseDAL(t *testing.T, d DraftDAL) {
	t.Helper()

	athletes, err := d.LoadAthletes()
	require.NoError(t, err)
	assert.Equal(t, DefaultAthletes(), athletes)

	custom := []models.AthleteEntry{
		{Name: "Jory Banks", Record: "JBA_PF_G4-_A7-_DC9-_H81_Pr3-"},
		{Name: "Hugo Marsh", Record: "HMA_PG_GAA3.05_SV0.895_Pr7-"},
	}
	require.NoError(t, d.SaveAthletes(custom))
	athletes, err = d.LoadAthletes()
	require.NoError(t, err)
	assert.Equal(t, custom, athletes)

	first := testPick(t, 1, "GM 1", "JBA_PF_G4-_A7-_DC9-_H81_Pr3-")
	second := testPick(t, 2, "GM 2", "HMA_PG_GAA3.05_SV0.895_Pr7-")
	require.NoError(t, d.RecordPick("run-1", first))
	require.NoError(t, d.RecordPick("run-1", second))
	require.NoError(t, d.RecordPick("run-2", first))

	picks, err := d.Picks("run-1")
	require.NoError(t, err)
	require.Len(t, picks, 2)
	assert.Equal(t, "JBA", picks[0].Athlete.ID)
	assert.Equal(t, "GM 2", picks[1].Manager)
	assert.Equal(t, models.Goalie, picks[1].Athlete.Position)
	assert.Equal(t, "3.05", picks[1].Athlete.GoalsAgainstAverage.StringFixed(2))

	_, err = d.Result("run-1")
	assert.ErrorIs(t, err, ErrNotFound)

	result := &models.DraftResult{
		RunID:  "run-1",
		Winner: "GM 1",
		Tie:    true,
		Managers: []models.ManagerSnapshot{
			{Name: "GM 1", Status: "COMPLETE", Score: 10},
			{Name: "GM 2", Status: "SHORTHANDED", Score: 10},
		},
	}
	require.NoError(t, d.RecordResult("run-1", result))

	got, err := d.Result("run-1")
	require.NoError(t, err)
	assert.Equal(t, "GM 1", got.Winner)
	assert.True(t, got.Tie)
	assert.Len(t, got.Managers, 2)
}

func TestMemoryDAL(t *testing.T) {
	exerciseDAL(t, NewMemoryDAL())
}

func TestSQLiteDAL(t *testing.T) {
	d, err := NewSQLiteDAL(filepath.Join(t.TempDir(), "draft.db"))
	require.NoError(t, err)
	defer d.Close()

	exerciseDAL(t, d)
}

func TestSQLiteDALKeepsAthletesAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.db")

	d, err := NewSQLiteDAL(path)
	require.NoError(t, err)
	require.NoError(t, d.SaveAthletes([]models.AthleteEntry{{Name: "Luca Ferro", Record: "LFE_PD_G1-_A6-_DC55_H63_Pr6-"}}))
	require.NoError(t, d.Close())

	d, err = NewSQLiteDAL(path)
	require.NoError(t, err)
	defer d.Close()

	athletes, err := d.LoadAthletes()
	require.NoError(t, err)
	require.Len(t, athletes, 1)
	assert.Equal(t, "Luca Ferro", athletes[0].Name)
}

func TestSaveAthletesRejectsBadRecord(t *testing.T) {
	d, err := NewSQLiteDAL(filepath.Join(t.TempDir(), "draft.db"))
	require.NoError(t, err)
	defer d.Close()

	err = d.SaveAthletes([]models.AthleteEntry{{Name: "Nobody", Record: ""}})
	assert.Error(t, err)

	// the failed save is rolled back
	athletes, err := d.LoadAthletes()
	require.NoError(t, err)
	assert.Equal(t, DefaultAthletes(), athletes)
}
