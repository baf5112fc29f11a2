// SPDX-License-Identifier: EPL-2.0

package resample

import (
	"github.com/oov/audio/resampler"

	"github.com/ik5/audmix/pcm"
)

// Polyphase wraps the windowed-sinc resampler from oov/audio, which works
// on planar float64 channels. ProcessFloat32 stages through a stack array
// that escapes, so the float64 entry point is used with owned planes.
type Polyphase struct {
	channels int
	inRate   int
	outRate  int
	quality  int

	r *resampler.Resampler

	left, right float32
	feed        feed
	planeIn     [pcm.MaxChannels][]float64
	planeOut    [pcm.MaxChannels][]float64
}

// NewPolyphase returns a polyphase resampler; quality runs 0..10.
func NewPolyphase(channels, inRate, outRate, quality int) *Polyphase {
	p := &Polyphase{
		channels: channels,
		inRate:   inRate,
		outRate:  outRate,
		quality:  quality,
		left:     1,
		right:    1,
		feed:     newFeed(channels),
	}
	for c := range channels {
		p.planeIn[c] = make([]float64, stagingFrames)
		p.planeOut[c] = make([]float64, stagingFrames)
	}
	p.r = resampler.New(channels, inRate, outRate, quality)
	return p
}

// SetSampleRate rebuilds the filter when the rate actually changes.
func (p *Polyphase) SetSampleRate(inRate int) {
	if inRate == p.inRate {
		return
	}
	p.inRate = inRate
	p.r = resampler.New(p.channels, inRate, p.outRate, p.quality)
}

func (p *Polyphase) SetVolume(left, right float32) {
	p.left, p.right = left, right
}

func (p *Polyphase) Reset() {
	p.r = resampler.New(p.channels, p.inRate, p.outRate, p.quality)
	p.feed.reset()
}

func (p *Polyphase) UnreleasedFrames() int { return p.feed.pending() }

func (p *Polyphase) Resample(out []float32, frames int, src pcm.FloatProvider) int {
	ch := p.channels
	produced := 0
	for produced < frames {
		want := min(frames-produced, stagingFrames)
		if p.feed.pending() == 0 && !p.feed.fill(src, framesNeeded(want, p.inRate, p.outRate)) {
			break
		}

		pending := p.feed.pending()
		base := p.feed.pos * ch
		for c := range ch {
			plane := p.planeIn[c][:pending]
			for i := range plane {
				plane[i] = float64(p.feed.buf[base+i*ch+c])
			}
		}

		var read, written int
		for c := range ch {
			read, written = p.r.ProcessFloat64(c, p.planeIn[c][:pending], p.planeOut[c][:want])
		}
		p.feed.pos += read

		for f := range written {
			o := out[(produced+f)*ch : (produced+f)*ch+ch]
			for c := range o {
				g := p.left
				if c == 1 {
					g = p.right
				}
				o[c] += g * float32(p.planeOut[c][f])
			}
		}
		produced += written

		if read == 0 && written == 0 {
			break
		}
	}
	return produced
}
