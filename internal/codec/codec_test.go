package codec

import (
	"errors"
	"testing"

	"github.com/Billy-Davies-2/hockey-draft/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	mgo = "MGO_PD_G0-_A14_DC43_H70_Pr5-"
	nsh = "NSH_PF_G7-_A14_DC20_H73_Pr10"
	rgi = "RGI_PF_G20_A67_DC43_H8-_Pr20"
	cla = "CLA_PG_GAA2.23_SV0.910_Pr20"
)

func TestDecodeID(t *testing.T) {
	assert.Equal(t, "MGO", DecodeID(mgo))
	assert.Equal(t, "NSH", DecodeID(nsh))
	assert.Equal(t, "", DecodeID(""))
}

func TestDecodePosition(t *testing.T) {
	assert.Equal(t, models.Defenceman, DecodePosition(mgo))
	assert.Equal(t, models.Forward, DecodePosition(nsh))
	assert.Equal(t, models.Goalie, DecodePosition(cla))
	assert.Equal(t, models.PositionUnknown, DecodePosition(""))
}

func TestDecodePrice(t *testing.T) {
	assert.Equal(t, 5, DecodePrice(mgo))
	assert.Equal(t, 20, DecodePrice(rgi))
	assert.Equal(t, 20, DecodePrice(cla))
	assert.Equal(t, 0, DecodePrice(""))
}

func TestDecodeSkaterStat(t *testing.T) {
	tests := []struct {
		record string
		stat   SkaterStat
		want   int
	}{
		{mgo, Goals, 0},
		{mgo, Assists, 14},
		{mgo, DefensiveContribution, 43},
		{mgo, Hits, 70},
		{rgi, Goals, 20},
		{rgi, Assists, 67},
		{rgi, Hits, 8},
		{"NCA_PD_G4-_A9-_DC50_H66_Pr10", Assists, 9},
		// goalie records carry no skater stats
		{cla, Goals, 0},
		{"", Hits, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DecodeSkaterStat(tt.record, tt.stat), "record %q stat %d", tt.record, tt.stat)
	}
}

func TestDecodeGoalieStat(t *testing.T) {
	assert.Equal(t, "2.23", DecodeGoalieStat(cla, GoalsAgainstAverage).String())
	assert.Equal(t, "0.91", DecodeGoalieStat(cla, SavePercentage).String())
	assert.True(t, DecodeGoalieStat(mgo, SavePercentage).IsZero())
}

func TestDecode(t *testing.T) {
	a, err := Decode(mgo)
	require.NoError(t, err)
	assert.Equal(t, models.Athlete{
		ID: "MGO", Position: models.Defenceman, Price: 5,
		Goals: 0, Assists: 14, DefensiveContribution: 43, Hits: 70,
		Record: mgo,
	}, a)

	g, err := Decode(cla)
	require.NoError(t, err)
	assert.Equal(t, models.Goalie, g.Position)
	assert.Equal(t, 20, g.Price)
	assert.True(t, g.GoalsAgainstAverage.Equal(decimal.RequireFromString("2.23")))
	assert.True(t, g.SavePercentage.Equal(decimal.RequireFromString("0.910")))

	empty, err := Decode("")
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestDecodeMalformed(t *testing.T) {
	for _, record := range []string{"MGO_PX_G0-_A14_DC43_H70_Pr5-", "MGO_PD_G0-", "CLA_PG_GAA2.23"} {
		_, err := Decode(record)
		assert.True(t, errors.Is(err, ErrMalformedRecord), "record %q", record)
	}
}

func TestAppendToRoster(t *testing.T) {
	assert.Equal(t, "DOL_NCA_MGO_", AppendToRoster(mgo, "DOL_NCA_"))
	assert.Equal(t, "DOL_NCA_MGO_CLA_", AppendToRoster(cla, "DOL_NCA_MGO_"))
	assert.Equal(t, "DOL_NCA_MGO_", AppendToRoster("", "DOL_NCA_MGO_"))
	assert.Equal(t, "MGO_", AppendToRoster(mgo, ""))
}

func TestRemoveFromPool(t *testing.T) {
	tests := []struct {
		name   string
		packed string
		index  int
		want   string
	}{
		{"middle token", "DOL_NCA_MGO_AHS_", 7, "DOL_MGO_AHS_"},
		{"first token", "DOL_NCA_MGO_AHS_", 3, "NCA_MGO_AHS_"},
		{"last token", "DOL_NCA_MGO_AHS_", 15, "DOL_NCA_MGO_"},
		{"not a delimiter", "DOL_NCA_MGO_AHS_", 2, "DOL_NCA_MGO_AHS_"},
		{"past the end", "DOL_NCA_MGO_AHS_", 20, "DOL_NCA_MGO_AHS_"},
		{"at length", "DOL_NCA_MGO_AHS_", 16, "DOL_NCA_MGO_AHS_"},
		{"negative", "DOL_NCA_MGO_AHS_", -1, "DOL_NCA_MGO_AHS_"},
		{"empty", "", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveFromPool(tt.packed, tt.index))
		})
	}
}

func TestRemoveFromPoolWithTokenEnd(t *testing.T) {
	packed := "DOL_NCA_MGO_AHS_"
	idx := TokenEnd(packed, "MGO")
	assert.Equal(t, 11, idx)

	packed = RemoveFromPool(packed, idx)
	assert.Equal(t, "DOL_NCA_AHS_", packed)

	// a stale index no longer points at a delimiter and is ignored
	assert.Equal(t, packed, RemoveFromPool(packed, 13))
	assert.Equal(t, -1, TokenEnd(packed, "MGO"))
}

func TestIsAvailable(t *testing.T) {
	assert.True(t, IsAvailable(mgo, "DOL_NCA_MGO_AHS_"))
	assert.False(t, IsAvailable("GGG_PD_G0-_A14_DC43_H70_Pr5-", "DOL_NCA_MGO_AHS_"))
	assert.False(t, IsAvailable("", "DOL_NCA_MGO_AHS_"))
	// ids must match on token boundaries
	assert.False(t, IsAvailable("OLN_PF_G7-_A14_DC20_H73_Pr10", "DOL_NCA_"))
}

func TestPackIDs(t *testing.T) {
	assert.Equal(t, "DOL_NCA_MGO_", PackIDs([]string{"DOL", "NCA", "MGO"}))
	assert.Equal(t, "", PackIDs(nil))
}

func TestPriceSlotRoundTrip(t *testing.T) {
	for price := 0; price <= 99; price++ {
		slot, err := EncodeSlot(price)
		require.NoError(t, err)
		require.Len(t, slot, 2)

		record := "AAA_PF_G1-_A1-_DC1-_H1-_Pr" + slot
		assert.Equal(t, price, DecodePrice(record), "slot %q", slot)
	}

	_, err := EncodeSlot(100)
	assert.Error(t, err)
	_, err = EncodeSlot(-1)
	assert.Error(t, err)
}

func TestEncodeSkater(t *testing.T) {
	record, err := EncodeSkater("MGO", models.Defenceman, 0, 14, 43, 70, 5)
	require.NoError(t, err)
	assert.Equal(t, mgo, record)

	record, err = EncodeSkater("RGI", models.Forward, 20, 67, 43, 8, 20)
	require.NoError(t, err)
	assert.Equal(t, rgi, record)

	_, err = EncodeSkater("CLA", models.Goalie, 0, 0, 0, 0, 0)
	assert.Error(t, err)
	_, err = EncodeSkater("TOOLONG", models.Forward, 0, 0, 0, 0, 0)
	assert.Error(t, err)
	_, err = EncodeSkater("BIG", models.Forward, 100, 0, 0, 0, 0)
	assert.Error(t, err)
}

func TestEncodeGoalie(t *testing.T) {
	record, err := EncodeGoalie("CLA", decimal.RequireFromString("2.23"), decimal.RequireFromString("0.91"), 20)
	require.NoError(t, err)
	assert.Equal(t, cla, record)

	record, err = EncodeGoalie("GMC", decimal.RequireFromString("2.57"), decimal.RequireFromString("0.902"), 15)
	require.NoError(t, err)
	assert.Equal(t, "GMC_PG_GAA2.57_SV0.902_Pr15", record)

	_, err = EncodeGoalie("GMC", decimal.RequireFromString("12.5"), decimal.RequireFromString("0.902"), 15)
	assert.Error(t, err)
}
