// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"log/slog"

	"github.com/ik5/audmix/pcm"
	"github.com/ik5/audmix/resample"
)

// track is one input stream and everything needed to mix it.
type track struct {
	id        int
	sessionID int
	enabled   bool

	channelMask  pcm.ChannelMask
	channelCount int
	format       pcm.Format

	mixerInFormat     pcm.Format // accumulator domain, PCM16 or PCMFloat
	mixerFormat       pcm.Format // sink format of the main buffer
	mixerChannelMask  pcm.ChannelMask
	mixerChannelCount int

	volume [2]gain
	aux    gain

	sampleRate int
	resampler  resample.Resampler

	provider   pcm.BufferProvider
	mainBuffer *Output
	auxBuffer  []float32

	teeBuffer     []byte
	teeFrameCount int
	teeOffset     int // frames

	needs  needs
	kernel kernelKey
	mix    mixType
	gidx   [pcm.MaxChannels]uint8 // gain slot per mixer channel

	in  input
	log *slog.Logger
}

func newTrack(id int, mask pcm.ChannelMask, format pcm.Format, sessionID int, m *Mixer) *track {
	t := &track{
		id:               id,
		sessionID:        sessionID,
		channelMask:      mask,
		channelCount:     mask.Count(),
		format:           format,
		mixerInFormat:    m.inFormat,
		mixerFormat:      pcm.PCM16,
		mixerChannelMask: pcm.ChannelStereo,
		sampleRate:       m.sampleRate,
		log:              m.log.With(slog.Int("track", id)),
	}
	t.mixerChannelCount = t.mixerChannelMask.Count()
	t.in.setup(t, m.frameCount)
	return t
}

func (t *track) frameSize() int {
	return t.format.FrameSize(t.channelCount)
}

// muted reports all channel targets at zero.
func (t *track) muted() bool {
	return t.volume[0].target == 0 && t.volume[1].target == 0
}

func (t *track) needsRamp() bool {
	return t.volume[0].ramping() || t.volume[1].ramping() || t.aux.ramping()
}

func (t *track) doesResample() bool {
	return t.resampler != nil
}

// useStereoVolume applies left and right gains by speaker side.
func (t *track) useStereoVolume() bool {
	return t.channelMask == pcm.ChannelStereo && t.mixerChannelMask.IsPosition()
}

// expandsMono keeps a mono track mono up to the kernel, which copies each
// sample to every mixer channel.
func (t *track) expandsMono() bool {
	return t.channelMask == pcm.ChannelMono && t.mixerChannelMask.IsPosition()
}

// kernelChannels is the interleave width the kernel reads.
func (t *track) kernelChannels() int {
	if t.expandsMono() {
		return 1
	}
	return t.mixerChannelCount
}

// setChannelMasks reports whether either mask changed.
func (t *track) setChannelMasks(m *Mixer, trackMask, mixerMask pcm.ChannelMask) bool {
	if trackMask == t.channelMask && mixerMask == t.mixerChannelMask {
		return false
	}
	t.channelMask = trackMask
	t.channelCount = trackMask.Count()
	t.mixerChannelMask = mixerMask
	t.mixerChannelCount = mixerMask.Count()
	t.in.setup(t, m.frameCount)

	// resampler width follows the kernel input width
	t.recreateResampler(m)
	return true
}

// setResampler installs, retunes or drops the resampler for a new track
// rate. It reports whether anything changed.
func (t *track) setResampler(m *Mixer, rate int) bool {
	if rate == t.sampleRate {
		return false
	}
	t.sampleRate = rate
	if rate == m.sampleRate {
		t.resampler = nil
		return true
	}
	if t.resampler != nil {
		t.resampler.SetSampleRate(rate)
		return true
	}

	r, err := m.newResampler(t.kernelChannels(), rate, m.sampleRate)
	if err != nil {
		panic(wrapParam(err, "resampler %d -> %d Hz", rate, m.sampleRate))
	}
	t.resampler = r
	return true
}

func (t *track) recreateResampler(m *Mixer) {
	if t.resampler == nil {
		return
	}
	rate := t.sampleRate
	t.resampler = nil
	t.sampleRate = m.sampleRate
	t.setResampler(m, rate)
}

func (t *track) unreleasedFrames() int {
	if t.resampler == nil {
		return 0
	}
	return t.resampler.UnreleasedFrames()
}
