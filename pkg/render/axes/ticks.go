package axes

import (
	"math"
	"strconv"
)

var niceSteps = []float64{1, 2, 2.5, 5, 10}

// NiceTicks returns tick values inside [lo, hi] using at most bins intervals,
// with steps of 1, 2, 2.5 or 5 times a power of ten. It also returns the
// step. Ranges too wide or too narrow for float64 steps yield no ticks.
func NiceTicks(lo, hi float64, bins int) ([]float64, float64) {
	if bins <= 0 {
		bins = DefaultYBins
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, 0
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return []float64{lo}, 0
	}

	raw := (hi - lo) / float64(bins)
	if !positiveFinite(raw) {
		return nil, 0
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	if !positiveFinite(mag) {
		return nil, 0
	}
	step := mag * 10
	for _, s := range niceSteps {
		if s*mag >= raw*(1-1e-9) {
			step = s * mag
			break
		}
	}

	if !positiveFinite(step) {
		return nil, 0
	}

	first := math.Ceil(lo/step-1e-9) * step
	if math.IsNaN(first) || math.IsInf(first, 0) {
		return nil, 0
	}
	var out []float64
	for i := 0; i <= bins+1; i++ {
		v := first + float64(i)*step
		if v > hi+step*1e-9 {
			break
		}
		// Snap away float noise such as 0.30000000000000004.
		v = math.Round(v/step) * step
		if v == 0 {
			v = 0 // normalize -0
		}
		out = append(out, v)
	}
	return out, step
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// FormatTick formats v with just enough decimals to distinguish ticks that
// are step apart.
func FormatTick(v, step float64) string {
	decimals := 0
	if step > 0 && step < 1 {
		decimals = int(math.Ceil(-math.Log10(step) - 1e-9))
		// 0.25, 0.025, ... need one more digit.
		if r := step * math.Pow(10, float64(decimals)); math.Abs(r-math.Round(r)) > 1e-9 {
			decimals++
		}
	} else if step >= 1 && math.Abs(step-math.Round(step)) > 1e-9 {
		decimals = 1
	}
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if s == "-0" || (len(s) > 2 && s[:2] == "-0" && isZero(s[1:])) {
		s = s[1:]
	}
	return s
}

func isZero(s string) bool {
	for _, r := range s {
		if r != '0' && r != '.' {
			return false
		}
	}
	return true
}
