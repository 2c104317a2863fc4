package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionFromTag(t *testing.T) {
	assert.Equal(t, Forward, PositionFromTag('F'))
	assert.Equal(t, Defenceman, PositionFromTag('D'))
	assert.Equal(t, Goalie, PositionFromTag('G'))
	assert.Equal(t, PositionUnknown, PositionFromTag('X'))

	for _, p := range Positions {
		assert.Equal(t, p, PositionFromTag(p.Tag()))
	}
}

func TestPositionJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		P Position `json:"p"`
	}{Defenceman})
	require.NoError(t, err)
	assert.JSONEq(t, `{"p":"Defenceman"}`, string(b))

	var out struct {
		P Position `json:"p"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"p":"G"}`), &out))
	assert.Equal(t, Goalie, out.P)

	assert.Error(t, json.Unmarshal([]byte(`{"p":"Winger"}`), &out))
}

func TestCountsWith(t *testing.T) {
	var c Counts
	c = c.With(Forward).With(Forward).With(Goalie)

	assert.Equal(t, 2, c.Get(Forward))
	assert.Equal(t, 0, c.Get(Defenceman))
	assert.Equal(t, 1, c.Get(Goalie))
	assert.Equal(t, 3, c.Total())

	// With returns a copy
	d := c.With(Defenceman)
	assert.Equal(t, 0, c.Defencemen)
	assert.Equal(t, 1, d.Defencemen)
}
