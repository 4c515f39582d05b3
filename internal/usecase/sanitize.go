package usecase

import "math"

// round truncates a value to the given number of decimal places,
// clamping non-finite input to 0 so a degenerate division can never
// leak NaN or Infinity into a computed field.
func round(val float64, decimals int) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0
	}
	shift := math.Pow(10, float64(decimals))
	return math.Round(val*shift) / shift
}

func round1(val float64) float64 { return round(val, 1) }
func round2(val float64) float64 { return round(val, 2) }
func round3(val float64) float64 { return round(val, 3) }
func round4(val float64) float64 { return round(val, 4) }

// ScrubNonFinite walks a decoded JSON tree and replaces every NaN or
// infinite float with 0. Rounding guards each computation site already;
// this final pass over the assembled tree is what guarantees the output
// invariant regardless of where a value came from.
func ScrubNonFinite(node any) any {
	switch v := node.(type) {
	case map[string]any:
		for key, child := range v {
			v[key] = ScrubNonFinite(child)
		}
		return v
	case []any:
		for i, child := range v {
			v[i] = ScrubNonFinite(child)
		}
		return v
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return float64(0)
		}
		return v
	default:
		return node
	}
}
