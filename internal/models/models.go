package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Position represents a hockey roster position
type Position int

const (
	PositionUnknown Position = iota
	Forward
	Defenceman
	Goalie
)

// Positions lists every draftable position in display order
var Positions = []Position{Forward, Defenceman, Goalie}

// Position tags as they appear in an athlete record
const (
	ForwardTag    = 'F'
	DefencemanTag = 'D'
	GoalieTag     = 'G'
)

// PositionFromTag maps a record tag character to a Position
func PositionFromTag(tag byte) Position {
	switch tag {
	case ForwardTag:
		return Forward
	case DefencemanTag:
		return Defenceman
	case GoalieTag:
		return Goalie
	default:
		return PositionUnknown
	}
}

// Tag returns the record tag character, or 0 for PositionUnknown
func (p Position) Tag() byte {
	switch p {
	case Forward:
		return ForwardTag
	case Defenceman:
		return DefencemanTag
	case Goalie:
		return GoalieTag
	default:
		return 0
	}
}

// IsSkater reports whether the position carries skater stats
func (p Position) IsSkater() bool {
	return p == Forward || p == Defenceman
}

func (p Position) String() string {
	switch p {
	case Forward:
		return "Forward"
	case Defenceman:
		return "Defenceman"
	case Goalie:
		return "Goalie"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the position as its name for JSON payloads
func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText accepts either the position name or its tag character
func (p *Position) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Forward", "F":
		*p = Forward
	case "Defenceman", "D":
		*p = Defenceman
	case "Goalie", "G":
		*p = Goalie
	case "Unknown", "":
		*p = PositionUnknown
	default:
		return fmt.Errorf("unknown position %q", string(b))
	}
	return nil
}

// Athlete is the decoded, read-only view of one pool record
type Athlete struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
	Price    int      `json:"price"`

	// Skater stats
	Goals                 int `json:"goals,omitempty"`
	Assists               int `json:"assists,omitempty"`
	DefensiveContribution int `json:"defensiveContribution,omitempty"`
	Hits                  int `json:"hits,omitempty"`

	// Goalie stats
	GoalsAgainstAverage decimal.Decimal `json:"goalsAgainstAverage"`
	SavePercentage      decimal.Decimal `json:"savePercentage"`

	Record string `json:"record"`
}

// IsEmpty reports whether the athlete was decoded from an empty record
func (a Athlete) IsEmpty() bool {
	return a.Record == ""
}

// AthleteEntry is one line of a roster source: a display name and its record
type AthleteEntry struct {
	Name   string `json:"name"`
	Record string `json:"record"`
}

// Counts tracks how many athletes a manager holds per position
type Counts struct {
	Forwards   int `json:"forwards"`
	Defencemen int `json:"defencemen"`
	Goalies    int `json:"goalies"`
}

// Get returns the count for a position
func (c Counts) Get(p Position) int {
	switch p {
	case Forward:
		return c.Forwards
	case Defenceman:
		return c.Defencemen
	case Goalie:
		return c.Goalies
	default:
		return 0
	}
}

// With returns a copy of the counts with one more athlete at p
func (c Counts) With(p Position) Counts {
	switch p {
	case Forward:
		c.Forwards++
	case Defenceman:
		c.Defencemen++
	case Goalie:
		c.Goalies++
	}
	return c
}

// Total returns the number of athletes across all positions
func (c Counts) Total() int {
	return c.Forwards + c.Defencemen + c.Goalies
}

// Pick is one accepted draft selection
type Pick struct {
	Number  int     `json:"number"`
	Round   int     `json:"round"`
	Manager string  `json:"manager"`
	Name    string  `json:"name"`
	Athlete Athlete `json:"athlete"`
	Score   float64 `json:"score"`
	TS      int64   `json:"ts"`
}

// ManagerSnapshot is a read-only copy of a manager's state for presentation
type ManagerSnapshot struct {
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	Automated    bool      `json:"automated"`
	Budget       int       `json:"budget"`
	Counts       Counts    `json:"counts"`
	Roster       []Athlete `json:"roster"`
	RosterString string    `json:"rosterString"`
	Score        float64   `json:"score"`
}

// DraftResult summarises a finished draft
type DraftResult struct {
	RunID    string            `json:"runId"`
	Managers []ManagerSnapshot `json:"managers"`
	Picks    []Pick            `json:"picks"`
	Winner   string            `json:"winner"`
	Tie      bool              `json:"tie"`
}
