package fuzz

import (
	"errors"
	"strings"
	"testing"

	"github.com/Billy-Davies-2/hockey-draft/internal/codec"
	"github.com/Billy-Davies-2/hockey-draft/internal/logger"
	"github.com/Billy-Davies-2/hockey-draft/internal/models"
)

func init() {
	// Initialize logger for tests
	logger.Init()
}

// FuzzDecode feeds arbitrary records to the decoder
func FuzzDecode(f *testing.F) {
	f.Add("MGO_PD_G0-_A14_DC43_H70_Pr5-")
	f.Add("CLA_PG_GAA2.23_SV0.910_Pr20")
	f.Add("JBA_PF_G5-")
	f.Add("XXX_PZ_")
	f.Add("")

	f.Fuzz(func(t *testing.T, record string) {
		a, err := codec.Decode(record)
		if err != nil {
			if !errors.Is(err, codec.ErrMalformedRecord) {
				t.Fatalf("unexpected error type: %v", err)
			}
			return
		}
		if record == "" {
			if !a.IsEmpty() {
				t.Fatalf("empty record decoded to %+v", a)
			}
			return
		}
		if a.ID != codec.DecodeID(record) || a.Record != record {
			t.Fatalf("decoded %+v does not match record %q", a, record)
		}
		if a.Position == models.PositionUnknown {
			t.Fatalf("record %q decoded without a position", record)
		}
	})
}

// FuzzRemoveFromPool checks removal never corrupts the remaining tokens
func FuzzRemoveFromPool(f *testing.F) {
	f.Add("AAA_BBB_CCC_", 3)
	f.Add("AAA_BBB_CCC_", 11)
	f.Add("AAA_", 0)
	f.Add("", 3)
	f.Add("AAA_BBB_", -1)

	f.Fuzz(func(t *testing.T, packed string, index int) {
		out := codec.RemoveFromPool(packed, index)
		switch len(out) {
		case len(packed):
			if out != packed {
				t.Fatalf("unchanged length but different content: %q -> %q", packed, out)
			}
		case len(packed) - codec.IDLength - 1:
			if out != packed[:index-codec.IDLength]+packed[index+1:] {
				t.Fatalf("removed the wrong token from %q at %d: %q", packed, index, out)
			}
		default:
			t.Fatalf("unexpected length change: %q -> %q", packed, out)
		}
	})
}

// FuzzTokenRoundTrip packs ids and removes each one by its token end
func FuzzTokenRoundTrip(f *testing.F) {
	f.Add("AAABBBCCC")
	f.Add("MGOMGO")
	f.Add("")

	f.Fuzz(func(t *testing.T, raw string) {
		if strings.ContainsRune(raw, codec.Delimiter) {
			return
		}
		var ids []string
		for i := 0; i+codec.IDLength <= len(raw); i += codec.IDLength {
			ids = append(ids, raw[i:i+codec.IDLength])
		}

		packed := codec.PackIDs(ids)
		for _, id := range ids {
			end := codec.TokenEnd(packed, id)
			if end < 0 {
				t.Fatalf("%q not found in %q", id, packed)
			}
			packed = codec.RemoveFromPool(packed, end)
		}
		if packed != "" {
			t.Fatalf("pool not drained: %q", packed)
		}
	})
}

// FuzzEncodeSkater round-trips in-range stats through the record layout
func FuzzEncodeSkater(f *testing.F) {
	f.Add(0, 14, 43, 70, 5, true)
	f.Add(99, 99, 99, 99, 99, false)
	f.Add(-1, 100, 7, 3, 1, true)

	f.Fuzz(func(t *testing.T, goals, assists, dc, hits, price int, forward bool) {
		pos := models.Defenceman
		if forward {
			pos = models.Forward
		}

		rec, err := codec.EncodeSkater("FUZ", pos, goals, assists, dc, hits, price)
		inRange := true
		for _, n := range []int{goals, assists, dc, hits, price} {
			if n < 0 || n > 99 {
				inRange = false
			}
		}
		if !inRange {
			if err == nil {
				t.Fatalf("out of range stats encoded to %q", rec)
			}
			return
		}
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if len(rec) != codec.SkaterRecordLength {
			t.Fatalf("record %q is %d chars", rec, len(rec))
		}

		a, err := codec.Decode(rec)
		if err != nil {
			t.Fatalf("decode %q: %v", rec, err)
		}
		if a.Position != pos || a.Goals != goals || a.Assists != assists ||
			a.DefensiveContribution != dc || a.Hits != hits || a.Price != price {
			t.Fatalf("round trip mismatch for %q: %+v", rec, a)
		}
	})
}
