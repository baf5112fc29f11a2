// SPDX-License-Identifier: EPL-2.0

package resample

import "github.com/ik5/audmix/pcm"

// Cubic resamples with Catmull-Rom interpolation. It is cheap and has no
// lookahead beyond two frames, which suits speech and dynamic rates.
type Cubic struct {
	channels int
	inRate   int
	outRate  int
	step     float64 // input frames per output frame

	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames [4][pcm.MaxChannels]float32
	// input frames still to shift in before the next output frame
	pos float64

	left, right float32
	feed        feed
}

// NewCubic returns a cubic resampler. Rates must be positive.
func NewCubic(channels, inRate, outRate int) *Cubic {
	c := &Cubic{
		channels: channels,
		outRate:  outRate,
		left:     1,
		right:    1,
		feed:     newFeed(channels),
	}
	c.SetSampleRate(inRate)
	c.Reset()
	return c
}

func (c *Cubic) SetSampleRate(inRate int) {
	c.inRate = inRate
	c.step = float64(inRate) / float64(c.outRate)
}

func (c *Cubic) SetVolume(left, right float32) {
	c.left, c.right = left, right
}

// Reset clears the window. The first output frame after a reset lands
// exactly on the first input frame.
func (c *Cubic) Reset() {
	c.frames = [4][pcm.MaxChannels]float32{}
	c.pos = 3
	c.feed.reset()
}

func (c *Cubic) UnreleasedFrames() int { return c.feed.pending() }

func (c *Cubic) Resample(out []float32, frames int, src pcm.FloatProvider) int {
	ch := c.channels
	produced := 0
	for produced < frames {
		for c.pos >= 1 {
			if !c.shift(src, frames-produced) {
				return produced
			}
			c.pos--
		}

		x := float32(c.pos)
		o := out[produced*ch : produced*ch+ch]
		for k := range o {
			y := CubicInterpolate(c.frames[0][k], c.frames[1][k], c.frames[2][k], c.frames[3][k], x)
			if k == 1 {
				o[k] += c.right * y
			} else {
				o[k] += c.left * y
			}
		}

		produced++
		c.pos += c.step
	}
	return produced
}

// shift moves the window one input frame forward.
func (c *Cubic) shift(src pcm.FloatProvider, remaining int) bool {
	if c.feed.pending() == 0 && !c.feed.fill(src, framesNeeded(remaining, c.inRate, c.outRate)) {
		return false
	}
	c.frames[0] = c.frames[1]
	c.frames[1] = c.frames[2]
	c.frames[2] = c.frames[3]
	copy(c.frames[3][:c.channels], c.feed.frame())
	return true
}

// CubicInterpolate performs Catmull-Rom interpolation. x is the fractional
// position between y1 and y2 (0 <= x <= 1); y0..y3 are consecutive samples.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}
