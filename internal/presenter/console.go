// Package presenter renders a draft for a terminal. It only reads events and
// snapshots; nothing it does feeds back into the draft.
package presenter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Billy-Davies-2/hockey-draft/internal/draft"
	"github.com/Billy-Davies-2/hockey-draft/internal/feasibility"
	"github.com/Billy-Davies-2/hockey-draft/internal/logger"
	"github.com/Billy-Davies-2/hockey-draft/internal/models"
	"github.com/Billy-Davies-2/hockey-draft/internal/pool"
	"github.com/Billy-Davies-2/hockey-draft/internal/pubsub"
	"github.com/Billy-Davies-2/hockey-draft/internal/rules"
	"github.com/Billy-Davies-2/hockey-draft/internal/scoring"
)

var (
	accent = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	header = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	warn   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	muted  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	winner = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	border = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	rule   = strings.Repeat("=", 50)
)

// Console writes draft progress to a terminal
type Console struct {
	out    io.Writer
	rules  rules.Rules
	scorer *scoring.Engine
}

// NewConsole creates a console presenter writing to out
func NewConsole(out io.Writer, r rules.Rules) *Console {
	return &Console{out: out, rules: r, scorer: scoring.NewEngine(r.Scoring)}
}

// Publish renders one draft event. Events it does not know are ignored.
func (c *Console) Publish(e pubsub.Event) {
	switch e.Type {
	case draft.EventDraftStart:
		c.println(header.Render("Hockey Fantasy Draft"))
		if n, ok := e.Payload["managers"].(int); ok {
			c.println(muted.Render(fmt.Sprintf("%d managers, budget $%d, roster of %d forwards, %d defencemen and %d goalies",
				n, c.rules.Budget, c.rules.ForwardsNeeded, c.rules.DefencemenNeeded, c.rules.GoaliesNeeded)))
		}
	case draft.EventTurnStart:
		if m, ok := e.Payload["manager"].(models.ManagerSnapshot); ok && !m.Automated {
			c.Prompt(m)
		}
	case draft.EventReject:
		if automated, _ := e.Payload["automated"].(bool); automated {
			return
		}
		id, _ := e.Payload["athleteId"].(string)
		reason, _ := e.Payload["reason"].(string)
		c.println(warn.Render(rejectionMessage(id, reason)))
	case draft.EventPick:
		if p, ok := e.Payload["pick"].(models.Pick); ok {
			c.println(fmt.Sprintf("%s has selected %s (%s, %s) for $%d",
				accent.Render(p.Manager), p.Name, p.Athlete.ID, p.Athlete.Position, p.Athlete.Price))
		}
	case draft.EventShorthanded:
		name, _ := e.Payload["manager"].(string)
		c.println(warn.Render(fmt.Sprintf("%s can no longer complete a roster within budget and is out of the draft.", name)))
	case draft.EventComplete:
		name, _ := e.Payload["manager"].(string)
		c.println(muted.Render(fmt.Sprintf("%s has a full roster.", name)))
	case draft.EventDraftDone:
		// the result is rendered by Result
	default:
		logger.Debug("Console: ignoring event", "type", e.Type)
	}
}

// Prompt shows a manager's standing at the start of a turn
func (c *Console) Prompt(m models.ManagerSnapshot) {
	c.println(rule)
	c.println(fmt.Sprintf("%s, it is your turn. You have %s fantasy points, and $%d remaining.",
		accent.Render(m.Name), formatScore(m.Score), m.Budget))
	c.println(fmt.Sprintf("You have selected %d/%d forwards, %d/%d defencemen and %d/%d goalies.",
		m.Counts.Forwards, c.rules.ForwardsNeeded,
		m.Counts.Defencemen, c.rules.DefencemenNeeded,
		m.Counts.Goalies, c.rules.GoaliesNeeded))
}

// Help lists the commands a human manager can type
func (c *Console) Help() {
	c.println(muted.Render("Type an athlete id to draft them, available_players to list the pool, or help."))
}

// AvailablePlayers renders the remaining pool
func (c *Console) AvailablePlayers(entries []pool.Entry) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Athlete.ID,
			e.Name,
			e.Athlete.Position.String(),
			"$" + strconv.Itoa(e.Athlete.Price),
			formatScore(c.scorer.Score(e.Athlete)),
			e.Athlete.Record,
		})
	}

	c.println(c.table([]string{"ID", "Player", "Pos", "Price", "Points", "Record"}, rows))
}

// Result renders every roster, the scores and the winner
func (c *Console) Result(r *models.DraftResult) {
	rows := make([][]string, 0, len(r.Managers))
	for _, m := range r.Managers {
		rows = append(rows, []string{
			m.Name,
			m.RosterString,
			m.Status,
			"$" + strconv.Itoa(m.Budget),
			formatScore(m.Score),
		})
	}

	c.println(rule)
	c.println(header.Render("The Results...."))
	c.println(c.table([]string{"Manager", "Fantasy Team", "Status", "Left", "Score"}, rows))
	c.println("And the winner is.......")
	line := r.Winner + "!!!!!!!!!!"
	if r.Tie {
		line += " (tie, decided by turn order)"
	}
	c.println(winner.Render(line))
	c.println(rule)
	c.println("Thanks for playing!!")
}

func (c *Console) table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(border).
		BorderHeader(true).
		BorderRow(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	return t.Render()
}

// Ask writes a prompt without ending the line
func (c *Console) Ask(s string) {
	fmt.Fprint(c.out, s)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func rejectionMessage(id, reason string) string {
	switch reason {
	case feasibility.Unavailable.String():
		return fmt.Sprintf("%s does not exist or has already been selected. Please select another...", id)
	case feasibility.QuotaFull.String():
		return fmt.Sprintf("You have already selected enough players at %s's position.", id)
	case feasibility.OverBudget.String():
		return fmt.Sprintf("You cannot afford %s.", id)
	case feasibility.WouldBeShorthanded.String():
		return fmt.Sprintf("Selecting %s would leave too little budget to fill the rest of your roster.", id)
	default:
		return fmt.Sprintf("%s cannot be selected: %s", id, reason)
	}
}

func formatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
