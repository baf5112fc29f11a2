// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"math"
	"testing"
)

func TestSanitizeGain(t *testing.T) {
	t.Parallel()

	subnormal := math.Float32frombits(1)
	tests := []struct {
		name  string
		input float32
		want  float32
	}{
		{name: "zero", input: 0, want: 0},
		{name: "half", input: 0.5, want: 0.5},
		{name: "unity", input: 1, want: 1},
		{name: "above unity", input: 3.5, want: 1},
		{name: "negative", input: -0.25, want: 0},
		{name: "nan", input: float32(math.NaN()), want: 0},
		{name: "subnormal", input: subnormal, want: 0},
		{name: "positive infinity", input: float32(math.Inf(1)), want: 1},
		{name: "negative infinity", input: float32(math.Inf(-1)), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := sanitizeGain(tt.input); got != tt.want {
				t.Errorf("sanitizeGain(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestGainSetImmediate(t *testing.T) {
	t.Parallel()

	var g gain
	if !g.set(0.5, 0) {
		t.Fatal("set() = false, want true")
	}
	if g.target != 0.5 || g.prev != 0.5 || g.inc != 0 {
		t.Errorf("float = %v/%v/%v, want 0.5/0.5/0", g.target, g.prev, g.inc)
	}
	if g.itarget != 2048 || g.iprev != 2048<<16 || g.iinc != 0 {
		t.Errorf("fixed = %d/%d/%d, want 2048/%d/0", g.itarget, g.iprev, g.iinc, 2048<<16)
	}
	if g.ramping() {
		t.Error("ramping() = true after immediate set")
	}
}

func TestGainSetUnityFixed(t *testing.T) {
	t.Parallel()

	var g gain
	g.set(1, 0)
	if g.itarget != unityGainInt || g.iprev != unityGainInt<<16 {
		t.Errorf("fixed unity = %d/%d", g.itarget, g.iprev)
	}
}

func TestGainSetIdempotent(t *testing.T) {
	t.Parallel()

	var g gain
	g.set(0.75, 64)
	before := g
	if g.set(0.75, 64) {
		t.Error("second set() = true, want false")
	}
	if g != before {
		t.Errorf("state changed: %+v -> %+v", before, g)
	}
}

func TestGainSetRejectsTinyRamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		start  float32
		target float32
		ramp   int
	}{
		// fixed increment truncates to zero
		{name: "fixed increment zero", start: 0, target: 1e-6, ramp: 64},
		// float increment is subnormal
		{name: "float increment subnormal", start: 0, target: 1e-37, ramp: 1 << 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var g gain
			g.set(tt.start, 0)
			g.set(tt.target, tt.ramp)
			if g.ramping() {
				t.Fatalf("ramping() = true, want collapse to an immediate set")
			}
			if g.prev != g.target || g.iprev != int32(g.itarget)<<16 {
				t.Errorf("prev %v/%d not snapped to target %v/%d", g.prev, g.iprev, g.target, g.itarget)
			}
		})
	}
}

func TestGainRampLawFloat(t *testing.T) {
	t.Parallel()

	for _, ramp := range []int{1, 7, 64, 441, 1024} {
		var g gain
		g.set(0.2, 0)
		if !g.set(0.9, ramp) {
			t.Fatal("set() = false")
		}
		if !g.ramping() {
			t.Fatalf("ramp %d: ramping() = false", ramp)
		}

		// step in uneven chunks the way the block loop does
		for left := ramp; left > 0; {
			n := min(left, 16)
			for range n {
				g.prev += g.inc
			}
			g.adjust(n, true)
			left -= n
		}

		if g.ramping() {
			t.Errorf("ramp %d: still ramping after %d frames", ramp, ramp)
		}
		if g.prev != g.target || g.iprev != int32(g.itarget)<<16 {
			t.Errorf("ramp %d: prev %v/%d, target %v/%d", ramp, g.prev, g.iprev, g.target, g.itarget)
		}
	}
}

func TestGainRampLawFixed(t *testing.T) {
	t.Parallel()

	for _, ramp := range []int{3, 10, 64, 1000} {
		var g gain
		g.set(1, 0)
		g.set(0.1, ramp)

		for left := ramp; left > 0; {
			n := min(left, 16)
			for range n {
				g.iprev += g.iinc
			}
			g.adjust(n, false)
			left -= n
		}

		if g.ramping() {
			t.Errorf("ramp %d: still ramping", ramp)
		}
		if g.prev != g.target || g.iprev != int32(g.itarget)<<16 {
			t.Errorf("ramp %d: prev %v/%d, target %v/%d", ramp, g.prev, g.iprev, g.target, g.itarget)
		}
	}
}

func TestGainAdjustMirrors(t *testing.T) {
	t.Parallel()

	var g gain
	g.set(1, 100)
	for range 10 {
		g.prev += g.inc
	}
	g.adjust(10, true)
	if !g.ramping() {
		t.Fatal("ramp completed early")
	}
	if want := u428FromFloat(g.prev); g.iprev != want {
		t.Errorf("iprev = %d, want mirror %d", g.iprev, want)
	}

	for range 10 {
		g.iprev += g.iinc
	}
	g.adjust(10, false)
	if want := floatFromU428(g.iprev); g.prev != want {
		t.Errorf("prev = %v, want mirror %v", g.prev, want)
	}
}

func TestU428Conversion(t *testing.T) {
	t.Parallel()

	if got := u428FromFloat(1); got != 1<<28 {
		t.Errorf("u428FromFloat(1) = %d", got)
	}
	if got := u428FromFloat(-1); got != 0 {
		t.Errorf("u428FromFloat(-1) = %d", got)
	}
	if got := u428FromFloat(100); got != math.MaxInt32 {
		t.Errorf("u428FromFloat(100) = %d", got)
	}
	if got := floatFromU428(1 << 27); got != 0.5 {
		t.Errorf("floatFromU428(1<<27) = %v", got)
	}
}
