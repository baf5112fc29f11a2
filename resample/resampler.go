// SPDX-License-Identifier: EPL-2.0

package resample

import (
	"fmt"

	"github.com/ik5/audmix/pcm"
)

// Resampler pulls input at one rate and accumulates gained output at another.
type Resampler interface {
	// SetSampleRate changes the input rate. The output rate is fixed.
	SetSampleRate(inRate int)
	// SetVolume sets the gain applied to channel 0 (left) and channel 1
	// (right). Channels beyond the second use left.
	SetVolume(left, right float32)
	// Resample accumulates up to frames output frames into out and returns
	// how many were produced. Fewer than frames means src starved.
	Resample(out []float32, frames int, src pcm.FloatProvider) int
	// Reset drops filter history and staged input.
	Reset()
	// UnreleasedFrames reports input frames staged but not yet consumed.
	UnreleasedFrames() int
}

// Quality selects the resampling algorithm.
type Quality int

const (
	QualityAuto Quality = iota
	QualityLow
	QualityDefault
	QualityHigh
)

// polyphase filter quality per level, on oov's 0..10 scale
const (
	polyphaseDefault = 4
	polyphaseHigh    = 10
)

// stagingFrames bounds one pull from the provider.
const stagingFrames = 1024

// IsMusicRate reports whether rate is one of the rates music is usually
// produced at.
func IsMusicRate(rate int) bool {
	return rate == 44100 || rate == 48000
}

// New returns a resampler for channels interleaved channels converting
// inRate to outRate.
func New(channels, inRate, outRate int, q Quality) (Resampler, error) {
	if channels < 1 || channels > pcm.MaxChannels {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	if inRate <= 0 || outRate <= 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidRate, inRate, outRate)
	}

	if q == QualityAuto {
		q = QualityLow
		if IsMusicRate(inRate) {
			q = QualityDefault
		}
	}

	switch q {
	case QualityLow:
		return NewCubic(channels, inRate, outRate), nil
	case QualityHigh:
		return NewPolyphase(channels, inRate, outRate, polyphaseHigh), nil
	default:
		return NewPolyphase(channels, inRate, outRate, polyphaseDefault), nil
	}
}

// feed stages interleaved input pulled from a provider.
type feed struct {
	channels int
	buf      []float32
	pos, n   int // consumed and staged frames

	lent pcm.FloatBuffer // handed to src on each fill
}

func newFeed(channels int) feed {
	return feed{channels: channels, buf: make([]float32, stagingFrames*channels)}
}

func (f *feed) pending() int { return f.n - f.pos }

func (f *feed) reset() { f.pos, f.n = 0, 0 }

// fill pulls up to want more frames. It reports false when the provider
// starved and nothing is staged.
func (f *feed) fill(src pcm.FloatProvider, want int) bool {
	ch := f.channels
	if f.pos > 0 {
		copy(f.buf, f.buf[f.pos*ch:f.n*ch])
		f.n -= f.pos
		f.pos = 0
	}
	want = min(want, len(f.buf)/ch-f.n)
	if want <= 0 {
		return f.pending() > 0
	}

	b := &f.lent
	b.FrameCount = want
	src.NextBuffer(b)
	if b.Data == nil {
		return f.pending() > 0
	}
	got := min(b.FrameCount, want, len(b.Data)/ch)
	copy(f.buf[f.n*ch:], b.Data[:got*ch])
	f.n += got
	b.FrameCount = got
	src.ReleaseBuffer(b)

	return f.pending() > 0
}

// frame returns the next staged frame and consumes it.
func (f *feed) frame() []float32 {
	ch := f.channels
	fr := f.buf[f.pos*ch : f.pos*ch+ch]
	f.pos++
	return fr
}

// framesNeeded estimates input frames for out output frames.
func framesNeeded(out, inRate, outRate int) int {
	return (out*inRate+outRate-1)/outRate + 1
}
