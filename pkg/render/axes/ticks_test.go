package axes

import (
	"math"
	"reflect"
	"testing"
)

func TestNiceTicks(t *testing.T) {
	tests := []struct {
		name     string
		lo, hi   float64
		bins     int
		want     []float64
		wantStep float64
	}{
		{"unit steps", 0, 5, 5, []float64{0, 1, 2, 3, 4, 5}, 1},
		{"twos", 0, 10, 5, []float64{0, 2, 4, 6, 8, 10}, 2},
		{"fives across zero", -10, 21.5, 8, []float64{-10, -5, 0, 5, 10, 15, 20}, 5},
		{"quarter steps", 0, 1, 4, []float64{0, 0.25, 0.5, 0.75, 1}, 0.25},
		{"offset start", 3, 27, 5, []float64{5, 10, 15, 20, 25}, 5},
		{"reversed bounds", 10, 0, 5, []float64{0, 2, 4, 6, 8, 10}, 2},
		{"default bins", 0, 80, 0, []float64{0, 10, 20, 30, 40, 50, 60, 70, 80}, 10},
		{"degenerate", 3, 3, 4, []float64{3}, 0},
		{"range overflows", -8.8e307, 9.68e307, 5, nil, 0},
		{"step underflows", 0, 5e-324, 5, nil, 0},
		{"magnitude underflows", 0, 5e-324, 1, nil, 0},
		{"infinite bound", 0, math.Inf(1), 5, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, step := NiceTicks(tt.lo, tt.hi, tt.bins)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NiceTicks() = %v, want %v", got, tt.want)
			}
			if step != tt.wantStep {
				t.Errorf("step = %v, want %v", step, tt.wantStep)
			}
		})
	}
}

func TestNiceTicksBounded(t *testing.T) {
	for _, bins := range []int{1, 4, 8} {
		for _, r := range [][2]float64{{-1e300, 1e300}, {1e20, 1e20 + 1e5}, {-3.7, 91.2}} {
			got, _ := NiceTicks(r[0], r[1], bins)
			if len(got) > bins+2 {
				t.Errorf("NiceTicks(%g, %g, %d) returned %d ticks", r[0], r[1], bins, len(got))
			}
		}
	}
}

func TestFormatTick(t *testing.T) {
	tests := []struct {
		v, step float64
		want    string
	}{
		{10, 5, "10"},
		{-5, 5, "-5"},
		{0.5, 0.25, "0.50"},
		{0.75, 0.25, "0.75"},
		{0.2, 0.2, "0.2"},
		{2.5, 2.5, "2.5"},
		{0, 0.1, "0.0"},
		{-0.0000001, 0.1, "0.0"},
	}

	for _, tt := range tests {
		if got := FormatTick(tt.v, tt.step); got != tt.want {
			t.Errorf("FormatTick(%v, %v) = %q, want %q", tt.v, tt.step, got, tt.want)
		}
	}
}
