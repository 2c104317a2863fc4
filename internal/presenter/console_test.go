package presenter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Billy-Davies-2/hockey-draft/internal/codec"
	"github.com/Billy-Davies-2/hockey-draft/internal/dal"
	"github.com/Billy-Davies-2/hockey-draft/internal/draft"
	"github.com/Billy-Davies-2/hockey-draft/internal/feasibility"
	"github.com/Billy-Davies-2/hockey-draft/internal/models"
	"github.com/Billy-Davies-2/hockey-draft/internal/pool"
	"github.com/Billy-Davies-2/hockey-draft/internal/pubsub"
	"github.com/Billy-Davies-2/hockey-draft/internal/rules"
)

func newConsole() (*Console, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewConsole(&buf, rules.Default()), &buf
}

func TestPromptShowsStanding(t *testing.T) {
	c, buf := newConsole()

	c.Publish(pubsub.Event{Type: draft.EventTurnStart, Payload: map[string]interface{}{
		"manager": models.ManagerSnapshot{
			Name:   "GM 1",
			Budget: 40,
			Score:  12.5,
			Counts: models.Counts{Forwards: 2, Defencemen: 1},
		},
	}})

	out := buf.String()
	assert.Contains(t, out, "GM 1")
	assert.Contains(t, out, "it is your turn. You have 12.5 fantasy points, and $40 remaining.")
	assert.Contains(t, out, "You have selected 2/3 forwards, 1/2 defencemen and 0/1 goalies.")
}

func TestPromptSkipsAutomatedManagers(t *testing.T) {
	c, buf := newConsole()

	c.Publish(pubsub.Event{Type: draft.EventTurnStart, Payload: map[string]interface{}{
		"manager": models.ManagerSnapshot{Name: "Computer", Automated: true},
	}})
	assert.Empty(t, buf.String())
}

func TestRejectionMessages(t *testing.T) {
	cases := map[feasibility.Reason]string{
		feasibility.Unavailable:        "ZZZ does not exist or has already been selected.",
		feasibility.QuotaFull:          "You have already selected enough players at ZZZ's position.",
		feasibility.OverBudget:         "You cannot afford ZZZ.",
		feasibility.WouldBeShorthanded: "Selecting ZZZ would leave too little budget",
	}

	for reason, want := range cases {
		t.Run(reason.String(), func(t *testing.T) {
			c, buf := newConsole()
			c.Publish(pubsub.Event{Type: draft.EventReject, Payload: map[string]interface{}{
				"manager":   "GM 1",
				"automated": false,
				"athleteId": "ZZZ",
				"reason":    reason.String(),
			}})
			assert.Contains(t, buf.String(), want)
		})
	}
}

func TestRejectionSilentForBots(t *testing.T) {
	c, buf := newConsole()
	c.Publish(pubsub.Event{Type: draft.EventReject, Payload: map[string]interface{}{
		"automated": true,
		"athleteId": "ZZZ",
		"reason":    feasibility.OverBudget.String(),
	}})
	assert.Empty(t, buf.String())
}

func TestPickAndStatusEvents(t *testing.T) {
	c, buf := newConsole()

	a, err := codec.Decode("MGO_PD_G0-_A14_DC43_H70_Pr5-")
	require.NoError(t, err)

	c.Publish(pubsub.Event{Type: draft.EventPick, Payload: map[string]interface{}{
		"pick": models.Pick{Number: 1, Round: 1, Manager: "GM 2", Name: "Mika Gorski", Athlete: a},
	}})
	c.Publish(pubsub.Event{Type: draft.EventShorthanded, Payload: map[string]interface{}{"manager": "GM 1"}})
	c.Publish(pubsub.Event{Type: draft.EventComplete, Payload: map[string]interface{}{"manager": "GM 2"}})
	c.Publish(pubsub.Event{Type: "something:else"})

	out := buf.String()
	assert.Contains(t, out, "has selected Mika Gorski (MGO, Defenceman) for $5")
	assert.Contains(t, out, "GM 1 can no longer complete a roster within budget")
	assert.Contains(t, out, "GM 2 has a full roster.")
}

func TestAvailablePlayersListsPool(t *testing.T) {
	c, buf := newConsole()

	p, err := pool.New(dal.DefaultAthletes())
	require.NoError(t, err)
	c.AvailablePlayers(p.Entries())

	out := buf.String()
	assert.Contains(t, out, "Price")
	for _, e := range p.Entries() {
		assert.Contains(t, out, e.Athlete.ID)
	}
}

func TestResultShowsWinner(t *testing.T) {
	c, buf := newConsole()

	c.Result(&models.DraftResult{
		Managers: []models.ManagerSnapshot{
			{Name: "GM 1", Status: "COMPLETE", RosterString: "AAA_BBB_", Score: 40.25},
			{Name: "GM 2", Status: "SHORTHANDED", RosterString: "CCC_", Score: 12},
		},
		Winner: "GM 1",
	})

	out := buf.String()
	assert.Contains(t, out, "The Results....")
	assert.Contains(t, out, "AAA_BBB_")
	assert.Contains(t, out, "SHORTHANDED")
	assert.Contains(t, out, "40.25")
	assert.Contains(t, out, "And the winner is.......")
	assert.Contains(t, out, "GM 1!!!!!!!!!!")
	assert.NotContains(t, out, "tie")
	assert.Contains(t, out, "Thanks for playing!!")
}

func TestResultNotesTie(t *testing.T) {
	c, buf := newConsole()

	c.Result(&models.DraftResult{
		Managers: []models.ManagerSnapshot{
			{Name: "GM 1", Status: "COMPLETE", Score: 30},
			{Name: "GM 2", Status: "COMPLETE", Score: 30},
		},
		Winner: "GM 1",
		Tie:    true,
	})
	assert.Contains(t, buf.String(), "(tie, decided by turn order)")
}
