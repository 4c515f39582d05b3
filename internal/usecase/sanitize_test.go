package usecase

import (
	"math"
	"testing"
)

func TestRoundClampsNonFinite(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
		{2.346, 2.35},
		{2.344, 2.34},
		{-1.2345, -1.23},
	}
	for _, tc := range cases {
		if got := round2(tc.in); got != tc.want {
			t.Fatalf("round2(%v)=%v, want %v", tc.in, got, tc.want)
		}
	}

	if got := round3(0.11375); got != 0.114 {
		t.Fatalf("round3=%v, want 0.114", got)
	}
}

func TestScrubNonFinite(t *testing.T) {
	tree := map[string]any{
		"ok":  1.5,
		"nan": math.NaN(),
		"nested": map[string]any{
			"inf": math.Inf(1),
		},
		"list": []any{math.Inf(-1), 2.0, "text"},
	}

	scrubbed := ScrubNonFinite(tree).(map[string]any)

	if scrubbed["ok"] != 1.5 {
		t.Fatalf("finite value changed: %v", scrubbed["ok"])
	}
	if scrubbed["nan"] != float64(0) {
		t.Fatalf("NaN not scrubbed: %v", scrubbed["nan"])
	}
	nested := scrubbed["nested"].(map[string]any)
	if nested["inf"] != float64(0) {
		t.Fatalf("nested Inf not scrubbed: %v", nested["inf"])
	}
	list := scrubbed["list"].([]any)
	if list[0] != float64(0) || list[1] != 2.0 || list[2] != "text" {
		t.Fatalf("list scrub wrong: %v", list)
	}
}
