// Package codec reads and rewrites the compact athlete record format.
//
// A skater record looks like MGO_PD_G0-_A14_DC43_H70_Pr5- and a goalie record
// like CLA_PG_GAA2.23_SV0.910_Pr20. Integer stats live in two character slots
// where '-' fills the unused second digit. Packed id strings such as
// DOL_NCA_MGO_ hold one id per token, each followed by the '_' delimiter.
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Billy-Davies-2/hockey-draft/internal/models"
	"github.com/shopspring/decimal"
)

const (
	// Delimiter terminates every token of a packed id string
	Delimiter = '_'
	// Filler stands in for an unused digit of a fixed-width slot
	Filler = '-'

	IDLength       = 3
	positionOffset = 5
	slotWidth      = 2

	SkaterRecordLength = 28
	GoalieRecordLength = 27
)

// ErrMalformedRecord is returned by Decode for records it cannot lay out
var ErrMalformedRecord = errors.New("malformed athlete record")

// SkaterStat selects an integer slot of a skater record
type SkaterStat int

const (
	Goals SkaterStat = iota
	Assists
	DefensiveContribution
	Hits
)

// GoalieStat selects a decimal field of a goalie record
type GoalieStat int

const (
	GoalsAgainstAverage GoalieStat = iota
	SavePercentage
)

type span struct{ start, end int }

var skaterSlots = map[SkaterStat]span{
	Goals:                 {8, 10},
	Assists:               {12, 14},
	DefensiveContribution: {17, 19},
	Hits:                  {21, 23},
}

var goalieFields = map[GoalieStat]span{
	GoalsAgainstAverage: {10, 14},
	SavePercentage:      {17, 22},
}

// DecodeID returns the athlete id, or "" for an empty record
func DecodeID(record string) string {
	if len(record) < IDLength {
		return record
	}
	return record[:IDLength]
}

// DecodePosition returns the position tagged in the record
func DecodePosition(record string) models.Position {
	if len(record) <= positionOffset {
		return models.PositionUnknown
	}
	return models.PositionFromTag(record[positionOffset])
}

// DecodePrice returns the trailing price slot, or 0 for an empty record
func DecodePrice(record string) int {
	if len(record) < slotWidth {
		return 0
	}
	return decodeSlot(record[len(record)-slotWidth:])
}

// DecodeSkaterStat returns one integer stat of a skater record.
// The caller must have checked that the record is a skater; any other
// record yields 0.
func DecodeSkaterStat(record string, stat SkaterStat) int {
	s, ok := skaterSlots[stat]
	if !ok || !DecodePosition(record).IsSkater() || len(record) < s.end {
		return 0
	}
	return decodeSlot(record[s.start:s.end])
}

// DecodeGoalieStat returns one decimal stat of a goalie record.
// The caller must have checked that the record is a goalie; any other
// record yields zero.
func DecodeGoalieStat(record string, stat GoalieStat) decimal.Decimal {
	s, ok := goalieFields[stat]
	if !ok || DecodePosition(record) != models.Goalie || len(record) < s.end {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.Trim(record[s.start:s.end], string(Filler)))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Decode parses every field of a record. An empty record decodes to the
// zero Athlete without error.
func Decode(record string) (models.Athlete, error) {
	if record == "" {
		return models.Athlete{}, nil
	}

	a := models.Athlete{
		ID:       DecodeID(record),
		Position: DecodePosition(record),
		Record:   record,
	}

	switch a.Position {
	case models.Forward, models.Defenceman:
		if len(record) < SkaterRecordLength {
			return models.Athlete{}, fmt.Errorf("%w: skater record %q is %d chars, want %d", ErrMalformedRecord, record, len(record), SkaterRecordLength)
		}
		a.Goals = DecodeSkaterStat(record, Goals)
		a.Assists = DecodeSkaterStat(record, Assists)
		a.DefensiveContribution = DecodeSkaterStat(record, DefensiveContribution)
		a.Hits = DecodeSkaterStat(record, Hits)
	case models.Goalie:
		if len(record) < GoalieRecordLength {
			return models.Athlete{}, fmt.Errorf("%w: goalie record %q is %d chars, want %d", ErrMalformedRecord, record, len(record), GoalieRecordLength)
		}
		a.GoalsAgainstAverage = DecodeGoalieStat(record, GoalsAgainstAverage)
		a.SavePercentage = DecodeGoalieStat(record, SavePercentage)
	default:
		return models.Athlete{}, fmt.Errorf("%w: unknown position tag in %q", ErrMalformedRecord, record)
	}

	a.Price = DecodePrice(record)
	return a, nil
}

// AppendToRoster appends the record's id token to a packed roster string.
// An empty record leaves the roster unchanged.
func AppendToRoster(record, roster string) string {
	if record == "" {
		return roster
	}
	return roster + DecodeID(record) + string(Delimiter)
}

// RemoveFromPool removes the id token whose delimiter sits at index.
// An out of range index, or one that does not point at a delimiter closing a
// full token, returns packed unchanged.
func RemoveFromPool(packed string, index int) string {
	if index < IDLength || index >= len(packed) || packed[index] != Delimiter {
		return packed
	}
	return packed[:index-IDLength] + packed[index+1:]
}

// TokenEnd returns the index of the delimiter closing id in packed, or -1
func TokenEnd(packed, id string) int {
	for i := 0; i+IDLength < len(packed); i += IDLength + 1 {
		if packed[i:i+IDLength] == id && packed[i+IDLength] == Delimiter {
			return i + IDLength
		}
	}
	return -1
}

// PackIDs joins ids into a packed id string
func PackIDs(ids []string) string {
	var b strings.Builder
	b.Grow(len(ids) * (IDLength + 1))
	for _, id := range ids {
		b.WriteString(id)
		b.WriteByte(Delimiter)
	}
	return b.String()
}

// IsAvailable reports whether the record's id is a token of packed
func IsAvailable(record, packed string) bool {
	if record == "" {
		return false
	}
	return TokenEnd(packed, DecodeID(record)) >= 0
}

// EncodeSlot renders n into a two character slot, padding with the filler
func EncodeSlot(n int) (string, error) {
	if n < 0 || n > 99 {
		return "", fmt.Errorf("value %d does not fit a %d digit slot", n, slotWidth)
	}
	s := strconv.Itoa(n)
	if len(s) < slotWidth {
		s += string(Filler)
	}
	return s, nil
}

// EncodeSkater builds a skater record from its fields
func EncodeSkater(id string, pos models.Position, goals, assists, dc, hits, price int) (string, error) {
	if !pos.IsSkater() {
		return "", fmt.Errorf("%s is not a skater position", pos)
	}
	if len(id) != IDLength {
		return "", fmt.Errorf("athlete id %q must be %d characters", id, IDLength)
	}
	slots := make([]string, 0, 5)
	for _, n := range []int{goals, assists, dc, hits, price} {
		s, err := EncodeSlot(n)
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", id, err)
		}
		slots = append(slots, s)
	}
	return fmt.Sprintf("%s_P%c_G%s_A%s_DC%s_H%s_Pr%s", id, pos.Tag(), slots[0], slots[1], slots[2], slots[3], slots[4]), nil
}

// EncodeGoalie builds a goalie record from its fields. GAA is written with
// two decimals and SV with three, matching the fixed layout.
func EncodeGoalie(id string, gaa, sv decimal.Decimal, price int) (string, error) {
	if len(id) != IDLength {
		return "", fmt.Errorf("athlete id %q must be %d characters", id, IDLength)
	}
	if gaa.IsNegative() || gaa.GreaterThanOrEqual(decimal.NewFromInt(10)) {
		return "", fmt.Errorf("encode %s: goals against average %s out of range", id, gaa)
	}
	if sv.IsNegative() || sv.GreaterThanOrEqual(decimal.NewFromInt(10)) {
		return "", fmt.Errorf("encode %s: save percentage %s out of range", id, sv)
	}
	p, err := EncodeSlot(price)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", id, err)
	}
	return fmt.Sprintf("%s_PG_GAA%s_SV%s_Pr%s", id, gaa.StringFixed(2), sv.StringFixed(3), p), nil
}

func decodeSlot(slot string) int {
	n, err := strconv.Atoi(strings.Trim(slot, string(Filler)))
	if err != nil {
		return 0
	}
	return n
}
