package presenter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Billy-Davies-2/hockey-draft/internal/draft"
)

// Commands a human manager can type instead of an athlete id
const (
	CommandAvailable = "available_players"
	CommandHelp      = "help"
)

// HumanChooser reads picks for a human manager from a line based input
type HumanChooser struct {
	in      *bufio.Scanner
	console *Console
}

// NewHumanChooser creates a chooser reading from in. Managers at the same
// terminal share one scanner.
func NewHumanChooser(in *bufio.Scanner, console *Console) *HumanChooser {
	return &HumanChooser{in: in, console: console}
}

// Choose answers side commands itself and returns the first other line
func (h *HumanChooser) Choose(ctx context.Context, turn draft.Turn) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		h.console.Ask("Enter the id of the player you want to select: ")
		line, err := ReadLine(h.in)
		if err != nil {
			return "", err
		}

		switch line {
		case "":
			continue
		case CommandAvailable:
			h.console.AvailablePlayers(turn.Pool.Entries())
		case CommandHelp:
			h.console.Help()
		default:
			return line, nil
		}
	}
}

// ReadLine returns the next trimmed line, or io.EOF when input has ended
func ReadLine(in *bufio.Scanner) (string, error) {
	if !in.Scan() {
		if err := in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(in.Text()), nil
}

// AskMode asks for the draft mode until a listed one is entered
func (c *Console) AskMode(in *bufio.Scanner) (int, error) {
	for {
		c.println("Select a mode:")
		c.println("0 : Computer")
		c.println("1 : Multiplayer")
		c.Ask("> ")

		line, err := ReadLine(in)
		if err != nil {
			return 0, err
		}
		switch line {
		case "0":
			return 0, nil
		case "1":
			return 1, nil
		}
		c.println(warn.Render(fmt.Sprintf("%q is not a mode.", line)))
	}
}
