// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"

	"github.com/ik5/audmix/pcm"
)

// Waveform returns the normalized sample in [-1, 1] for a frame and channel.
type Waveform func(frame, channel int) float32

// Sine returns a waveform of the given frequency at rate Hz.
func Sine(rate int, frequency float64) Waveform {
	return func(frame, _ int) float32 {
		t := float64(frame) / float64(rate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	}
}

// Constant returns a waveform that yields values[channel] on every frame.
func Constant(values ...float32) Waveform {
	return func(_, channel int) float32 {
		return values[channel%len(values)]
	}
}

// Int16 scales a 16-bit sample to the normalized range so that encoding it
// back to PCM16 is exact.
func Int16(v int16) float32 { return float32(v) / 32768 }

// MockProvider is a pcm.BufferProvider generating raw PCM in a fixed format.
//
// Grants scripts the provider: call i grants at most Grants[i] frames, and
// a zero entry starves that call. Once the script is used up every request
// is granted in full until TotalFrames have been produced (TotalFrames < 0
// never runs out).
type MockProvider struct {
	Format      pcm.Format
	Channels    int
	TotalFrames int
	Waveform    Waveform
	Grants      []int

	Calls    int // NextBuffer calls
	Released int // frames released
	Pending  bool

	produced int
	data     []byte
	ints     []int
	floats   []float32
}

// NewMockProvider creates a provider producing totalFrames frames.
func NewMockProvider(format pcm.Format, channels, totalFrames int, w Waveform) *MockProvider {
	return &MockProvider{
		Format:      format,
		Channels:    channels,
		TotalFrames: totalFrames,
		Waveform:    w,
	}
}

// NewSilentProvider creates an unlimited PCM16 provider of zeros.
func NewSilentProvider(channels int) *MockProvider {
	return NewMockProvider(pcm.PCM16, channels, -1, Constant(0))
}

func (m *MockProvider) grant(requested int) int {
	call := m.Calls
	m.Calls++
	n := requested
	if call < len(m.Grants) {
		n = min(n, m.Grants[call])
	}
	if m.TotalFrames >= 0 {
		n = min(n, m.TotalFrames-m.produced)
	}
	return max(n, 0)
}

func (m *MockProvider) NextBuffer(b *pcm.Buffer) {
	n := m.grant(b.FrameCount)
	if n == 0 {
		b.FrameCount = 0
		b.Data = nil
		return
	}

	samples := n * m.Channels
	size := samples * m.Format.BytesPerSample()
	if cap(m.data) < size {
		m.data = make([]byte, size)
		m.ints = make([]int, samples)
		m.floats = make([]float32, samples)
	}

	for f := range n {
		for c := range m.Channels {
			m.floats[f*m.Channels+c] = m.Waveform(m.produced+f, c)
		}
	}
	data := m.data[:size]
	m.encode(data, m.floats[:samples])

	b.FrameCount = n
	b.Data = data
	m.Pending = true
}

func (m *MockProvider) encode(dst []byte, src []float32) {
	if m.Format == pcm.PCMFloat {
		pcm.PutFloat32s(dst, src)
		return
	}
	ints := m.ints[:len(src)]
	for i, v := range src {
		switch m.Format {
		case pcm.PCM8:
			ints[i] = int(clamp(float64(v)*128, -128, 127)) + 128
		case pcm.PCM16:
			ints[i] = int(pcm.Float32ToInt16(v))
		case pcm.PCM24Packed:
			ints[i] = int(clamp(float64(v)*(1<<23), -(1 << 23), 1<<23-1))
		default:
			ints[i] = int(clamp(float64(v)*(1<<31), -(1 << 31), 1<<31-1))
		}
	}
	pcm.PutInts(dst, ints, m.Format)
}

func (m *MockProvider) ReleaseBuffer(b *pcm.Buffer) {
	m.produced += b.FrameCount
	m.Released += b.FrameCount
	m.Pending = false
	b.Data = nil
	b.FrameCount = 0
}

// MockFloatProvider is a pcm.FloatProvider generating interleaved float32.
type MockFloatProvider struct {
	Channels    int
	TotalFrames int
	Waveform    Waveform

	Released int

	produced int
	data     []float32
}

// NewMockFloatProvider creates a float provider producing totalFrames frames
// (totalFrames < 0 never runs out).
func NewMockFloatProvider(channels, totalFrames int, w Waveform) *MockFloatProvider {
	return &MockFloatProvider{Channels: channels, TotalFrames: totalFrames, Waveform: w}
}

// NewConstantFloatProvider creates an unlimited float provider of a constant.
func NewConstantFloatProvider(channels int, value float32) *MockFloatProvider {
	return NewMockFloatProvider(channels, -1, Constant(value))
}

func (m *MockFloatProvider) NextBuffer(b *pcm.FloatBuffer) {
	n := b.FrameCount
	if m.TotalFrames >= 0 {
		n = min(n, m.TotalFrames-m.produced)
	}
	if n <= 0 {
		b.FrameCount = 0
		b.Data = nil
		return
	}
	if cap(m.data) < n*m.Channels {
		m.data = make([]float32, n*m.Channels)
	}
	data := m.data[:n*m.Channels]
	for f := range n {
		for c := range m.Channels {
			data[f*m.Channels+c] = m.Waveform(m.produced+f, c)
		}
	}
	b.FrameCount = n
	b.Data = data
}

func (m *MockFloatProvider) ReleaseBuffer(b *pcm.FloatBuffer) {
	m.produced += b.FrameCount
	m.Released += b.FrameCount
	b.Data = nil
	b.FrameCount = 0
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
