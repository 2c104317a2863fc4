package dal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Billy-Davies-2/hockey-draft/internal/models"
)

// LoadRosterFile reads a roster file of "display name:record" lines
func LoadRosterFile(path string) ([]models.AthleteEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer f.Close()

	entries, err := ParseRoster(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// ParseRoster parses roster lines. Blank lines are skipped and both halves
// of a line are trimmed.
func ParseRoster(r io.Reader) ([]models.AthleteEntry, error) {
	var entries []models.AthleteEntry

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		name, record, ok := strings.Cut(text, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: missing ':' separator", line)
		}
		entries = append(entries, models.AthleteEntry{
			Name:   strings.TrimSpace(name),
			Record: strings.TrimSpace(record),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}

	return entries, nil
}
