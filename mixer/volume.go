// SPDX-License-Identifier: EPL-2.0

package mixer

import "math"

const (
	unityGainFloat = float32(1)
	unityGainInt   = 1 << 12 // U4.12
	u428Scale      = 1 << 28
)

// gain is one ramped gain held in float and in fixed point. The fixed side
// keeps a U4.12 target and ramps a U4.28 value.
type gain struct {
	target float32
	prev   float32
	inc    float32

	itarget int16
	iprev   int32
	iinc    int32

	remaining int // frames left in the current ramp
}

// set moves the gain towards v over ramp frames, 0 meaning at once. It
// reports whether the target changed.
func (g *gain) set(v float32, ramp int) bool {
	if v == g.target {
		return false
	}
	v = sanitizeGain(v)

	if ramp != 0 {
		inc := (v - g.prev) / float32(ramp)
		maxv := max(v, g.prev)
		if isNormal(inc) && maxv+inc != maxv {
			g.inc = inc
		} else {
			ramp = 0
		}
	}

	scaled := v * unityGainInt
	ivol := int32(unityGainInt)
	if scaled < unityGainInt {
		ivol = int32(scaled)
	}

	if ramp != 0 {
		inc := (ivol<<16 - g.iprev) / int32(ramp)
		if inc != 0 {
			g.iinc = inc
		} else {
			ramp = 0
		}
	}

	if ramp == 0 {
		g.inc = 0
		g.prev = v
		g.iinc = 0
		g.iprev = ivol << 16
	}
	g.target = v
	g.itarget = int16(ivol)
	g.remaining = ramp
	return true
}

// ramping reports a pending increment in either domain.
func (g *gain) ramping() bool {
	return g.inc != 0 || g.iinc != 0
}

// adjust checks for ramp completion after frames were mixed. useFloat
// names the domain that advanced; the other one is mirrored from it.
func (g *gain) adjust(frames int, useFloat bool) {
	if !g.ramping() {
		return
	}
	g.remaining -= frames
	if g.remaining <= 0 || g.reached(useFloat) {
		g.complete()
		return
	}
	if useFloat {
		g.iprev = u428FromFloat(g.prev)
	} else {
		g.prev = floatFromU428(g.iprev)
	}
}

// reached reports whether one more increment meets or passes the target.
func (g *gain) reached(useFloat bool) bool {
	if useFloat {
		next := g.prev + g.inc
		return (g.inc > 0 && next >= g.target) || (g.inc < 0 && next <= g.target)
	}
	next := (g.iprev + g.iinc) >> 16
	t := int32(g.itarget)
	return (g.iinc > 0 && next >= t) || (g.iinc < 0 && next <= t)
}

func (g *gain) complete() {
	g.inc = 0
	g.prev = g.target
	g.iinc = 0
	g.iprev = int32(g.itarget) << 16
	g.remaining = 0
}

// sanitizeGain maps v into [0, unity]. NaN and subnormals become 0.
func sanitizeGain(v float32) float32 {
	switch {
	case v < 0, v != v:
		return 0
	case math.IsInf(float64(v), 1):
		return unityGainFloat
	case v != 0 && !isNormal(v):
		return 0
	case v > unityGainFloat:
		return unityGainFloat
	}
	return v
}

// isNormal reports whether v is finite, non-zero and not subnormal.
func isNormal(v float32) bool {
	exp := math.Float32bits(v) >> 23 & 0xff
	return exp != 0 && exp != 0xff
}

func u428FromFloat(v float32) int32 {
	if v <= 0 {
		return 0
	}
	const limit = float32(math.MaxInt32) / u428Scale
	if v >= limit {
		return math.MaxInt32
	}
	return int32(v*u428Scale + 0.5)
}

func floatFromU428(v int32) float32 {
	return float32(v) * (1.0 / u428Scale)
}
