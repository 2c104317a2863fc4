// Package pool holds the athletes still available in a draft.
//
// The ordered entry list is the only state. Id lists, the packed id string
// and per-position prices are derived from it on demand, so removing an
// athlete updates every view at once.
package pool

import (
	"fmt"
	"slices"

	"github.com/Billy-Davies-2/hockey-draft/internal/codec"
	"github.com/Billy-Davies-2/hockey-draft/internal/models"
)

// Entry is one available athlete
type Entry struct {
	Name    string         `json:"name"`
	Athlete models.Athlete `json:"athlete"`
}

// Pool is an ordered collection of available athletes. It is not safe for
// concurrent use; the draft engine owns it.
type Pool struct {
	entries []Entry
}

// New decodes every roster entry into a pool, preserving order. Duplicate ids
// are rejected since ids are the lookup key.
func New(src []models.AthleteEntry) (*Pool, error) {
	p := &Pool{entries: make([]Entry, 0, len(src))}
	seen := make(map[string]bool, len(src))

	for _, e := range src {
		a, err := codec.Decode(e.Record)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Name, err)
		}
		if a.IsEmpty() {
			continue
		}
		if seen[a.ID] {
			return nil, fmt.Errorf("duplicate athlete id %q (%s)", a.ID, e.Name)
		}
		seen[a.ID] = true
		p.entries = append(p.entries, Entry{Name: e.Name, Athlete: a})
	}

	return p, nil
}

// Len returns the number of available athletes
func (p *Pool) Len() int {
	return len(p.entries)
}

// Entries returns a copy of the available entries in pool order
func (p *Pool) Entries() []Entry {
	return slices.Clone(p.entries)
}

// IDs returns the available ids in pool order
func (p *Pool) IDs() []string {
	ids := make([]string, len(p.entries))
	for i, e := range p.entries {
		ids[i] = e.Athlete.ID
	}
	return ids
}

// Records returns the available source records in pool order
func (p *Pool) Records() []string {
	records := make([]string, len(p.entries))
	for i, e := range p.entries {
		records[i] = e.Athlete.Record
	}
	return records
}

// Packed returns the packed id string of the available athletes
func (p *Pool) Packed() string {
	return codec.PackIDs(p.IDs())
}

// Index returns the position of id in the pool, or -1
func (p *Pool) Index(id string) int {
	return slices.IndexFunc(p.entries, func(e Entry) bool { return e.Athlete.ID == id })
}

// Get returns the entry for id
func (p *Pool) Get(id string) (Entry, bool) {
	i := p.Index(id)
	if i < 0 {
		return Entry{}, false
	}
	return p.entries[i], true
}

// Remove takes id out of the pool and returns its entry. It reports false and
// leaves the pool untouched when id is not available.
func (p *Pool) Remove(id string) (Entry, bool) {
	i := p.Index(id)
	if i < 0 {
		return Entry{}, false
	}
	e := p.entries[i]
	p.entries = slices.Delete(p.entries, i, i+1)
	return e, true
}

// Clone returns an independent copy used for hypothetical picks
func (p *Pool) Clone() *Pool {
	return &Pool{entries: slices.Clone(p.entries)}
}

// Without returns a copy of the pool with id removed
func (p *Pool) Without(id string) *Pool {
	c := p.Clone()
	c.Remove(id)
	return c
}

// PricesByPosition partitions the available prices by position
func (p *Pool) PricesByPosition() map[models.Position][]int {
	prices := make(map[models.Position][]int, len(models.Positions))
	for _, e := range p.entries {
		prices[e.Athlete.Position] = append(prices[e.Athlete.Position], e.Athlete.Price)
	}
	return prices
}

// Available returns how many athletes of a position remain
func (p *Pool) Available(pos models.Position) int {
	n := 0
	for _, e := range p.entries {
		if e.Athlete.Position == pos {
			n++
		}
	}
	return n
}
