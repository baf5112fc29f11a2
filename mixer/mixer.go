// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ik5/audmix/pcm"
	"github.com/ik5/audmix/resample"
)

// Output is a main destination buffer. Tracks sharing an *Output form one
// group. The slice matching the sink format of the group's first track
// must hold frameCount frames of that track's mixer channels.
type Output struct {
	I16 []int16
	F32 []float32
}

// ResamplerFactory builds the resampler for a track whose rate differs
// from the mixer rate.
type ResamplerFactory func(channels, inRate, outRate int) (resample.Resampler, error)

// Option configures a Mixer.
type Option func(*Mixer)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Mixer) { m.log = l }
}

// WithMixerInFormat selects the accumulator domain: pcm.PCMFloat (the
// default) or pcm.PCM16 for Q4.27 fixed point.
func WithMixerInFormat(f pcm.Format) Option {
	return func(m *Mixer) { m.inFormat = f }
}

// WithResamplerFactory replaces the resampler constructor.
func WithResamplerFactory(f ResamplerFactory) Option {
	return func(m *Mixer) { m.newResampler = f }
}

// WithResampleQuality builds resamplers from package resample at quality q.
func WithResampleQuality(q resample.Quality) Option {
	return WithResamplerFactory(func(channels, inRate, outRate int) (resample.Resampler, error) {
		return resample.New(channels, inRate, outRate, q)
	})
}

// Mixer mixes tracks into their main buffers once per Process call. A
// Mixer must be driven from one goroutine.
type Mixer struct {
	frameCount   int
	sampleRate   int
	inFormat     pcm.Format
	log          *slog.Logger
	newResampler ResamplerFactory

	tracks registry

	dirty    bool
	strategy strategy
	enabled  []handle
	groups   []group
	all16    bool
	outcomes []outcome

	block blockScratch

	// period-long scratch, allocated the first time resampling is needed
	outF    []float32
	outQ    []int32
	tempF   []float32
	tempI16 []int16
}

// New returns a mixer producing frameCount frames per period at
// sampleRate Hz.
func New(frameCount, sampleRate int, opts ...Option) (*Mixer, error) {
	m := &Mixer{
		frameCount: frameCount,
		sampleRate: sampleRate,
		inFormat:   pcm.PCMFloat,
		log:        slog.Default(),
		tracks:     newRegistry(),
		strategy:   strategyNop,
	}
	m.newResampler = func(channels, inRate, outRate int) (resample.Resampler, error) {
		return resample.New(channels, inRate, outRate, resample.QualityAuto)
	}
	for _, opt := range opts {
		opt(m)
	}

	if frameCount <= 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d frames at %d Hz", ErrInvalidConfig, frameCount, sampleRate)
	}
	if m.inFormat != pcm.PCM16 && m.inFormat != pcm.PCMFloat {
		return nil, fmt.Errorf("%w: accumulator format %v", ErrInvalidConfig, m.inFormat)
	}

	m.log = m.log.With(slog.String("mixer", uuid.NewString()))
	m.log.Debug("mixer created",
		slog.Int("frameCount", frameCount),
		slog.Int("sampleRate", sampleRate),
		slog.String("format", m.inFormat.String()))
	return m, nil
}

// FrameCount returns the period length in frames.
func (m *Mixer) FrameCount() int { return m.frameCount }

// SampleRate returns the output rate in Hz.
func (m *Mixer) SampleRate() int { return m.sampleRate }

func (m *Mixer) invalidate() {
	m.dirty = true
}

// IsValidFormat reports whether f is accepted as track input.
func IsValidFormat(f pcm.Format) bool {
	return f.IsValid()
}

// IsValidChannelMask reports whether mask is accepted for a track.
func IsValidChannelMask(mask pcm.ChannelMask) bool {
	return mask.IsValid()
}

// Create adds a disabled, silent track. An invalid mask or format is
// reported without touching any state; an id already in use panics.
func (m *Mixer) Create(id int, mask pcm.ChannelMask, format pcm.Format, sessionID int) error {
	if m.tracks.exists(id) {
		panic(fmt.Errorf("%w: %d", ErrTrackExists, id))
	}
	if !IsValidChannelMask(mask) {
		m.log.Error("create: invalid channel mask", slog.Int("track", id), slog.Any("mask", uint32(mask)))
		return fmt.Errorf("%w: %#x", ErrInvalidChannelMask, uint32(mask))
	}
	if !IsValidFormat(format) {
		m.log.Error("create: invalid format", slog.Int("track", id), slog.String("format", format.String()))
		return fmt.Errorf("%w: %v", ErrInvalidFormat, format)
	}

	t := newTrack(id, mask, format, sessionID, m)
	m.tracks.insert(t)
	m.log.Debug("create", slog.Int("track", id), slog.Int("channels", t.channelCount),
		slog.String("format", format.String()), slog.Int("session", sessionID))
	return nil
}

// Destroy removes a track.
func (m *Mixer) Destroy(id int) {
	t := m.tracks.mustLookup(id)
	if t.enabled {
		m.invalidate()
	}
	m.tracks.remove(id)
	m.log.Debug("destroy", slog.Int("track", id))
}

// Enable adds a track to the mix from the next period on. The track
// needs a provider and a main buffer by then.
func (m *Mixer) Enable(id int) {
	t := m.tracks.mustLookup(id)
	if !t.enabled {
		t.enabled = true
		m.log.Debug("enable", slog.Int("track", id))
		m.invalidate()
	}
}

// Disable removes a track from the mix from the next period on.
func (m *Mixer) Disable(id int) {
	t := m.tracks.mustLookup(id)
	if t.enabled {
		t.enabled = false
		m.log.Debug("disable", slog.Int("track", id))
		m.invalidate()
	}
}

// Exists reports whether id names a live track.
func (m *Mixer) Exists(id int) bool {
	return m.tracks.exists(id)
}

// SetBufferProvider sets where a track pulls its input from.
func (m *Mixer) SetBufferProvider(id int, p pcm.BufferProvider) {
	t := m.tracks.mustLookup(id)
	t.release()
	t.provider = p
	if t.resampler != nil {
		t.resampler.Reset()
	}
	m.invalidate()
}

// UnreleasedFrames reports input frames a track's resampler holds but has
// not emitted. Unknown ids report 0.
func (m *Mixer) UnreleasedFrames(id int) int {
	t, _, ok := m.tracks.lookup(id)
	if !ok {
		return 0
	}
	return t.unreleasedFrames()
}

// TrackNames lists live track ids in ascending order, space separated.
func (m *Mixer) TrackNames() string {
	ids := make([]string, len(m.tracks.order))
	for i, id := range m.tracks.order {
		ids[i] = strconv.Itoa(id)
	}
	return strings.Join(ids, " ")
}

// Process mixes one period into every enabled track's main buffer.
func (m *Mixer) Process() {
	if m.dirty {
		m.validate()
		return
	}
	m.run()
}
