// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"log/slog"

	"github.com/ik5/audmix/pcm"
)

// input turns raw provider buffers into kernel frames: decode to the
// accumulator domain, remix to the mixer layout, and copy to the tee.
type input struct {
	channels  int // kernel interleave width
	capFrames int

	remix *pcm.Remixer // nil when decoding lands in the kernel layout

	buf    pcm.Buffer // upstream buffer currently held
	held   bool
	frames int // converted frames not yet consumed
	pos    int // next converted frame

	f32  []float32
	i16  []int16
	decF []float32
	decI []int16
}

// setup sizes scratch for the current masks. It runs on create and on
// layout changes, never while mixing.
func (in *input) setup(t *track, frameCount int) {
	in.channels = t.kernelChannels()
	in.capFrames = frameCount
	in.f32 = make([]float32, frameCount*in.channels)
	in.i16 = make([]int16, frameCount*in.channels)

	in.remix, in.decF, in.decI = nil, nil, nil
	if t.expandsMono() {
		return
	}
	r := pcm.NewRemixer(t.channelMask, t.mixerChannelMask)
	if r.Identity() {
		return
	}
	in.remix = r
	in.decF = make([]float32, frameCount*t.channelCount)
	in.decI = make([]int16, frameCount*t.channelCount)
}

// acquire pulls up to frames frames from the provider and converts them.
// It reports false on starvation, leaving nothing held.
func (t *track) acquire(frames int, float bool) bool {
	in := &t.in
	frames = min(frames, in.capFrames)

	in.buf.FrameCount = frames
	t.provider.NextBuffer(&in.buf)
	if in.buf.Data == nil {
		in.frames, in.pos = 0, 0
		return false
	}

	n := min(in.buf.FrameCount, frames)
	size := n * t.frameSize()
	if n <= 0 || len(in.buf.Data) < size {
		if n > 0 {
			t.log.Error("misaligned input buffer",
				slog.Int("frames", n), slog.Int("bytes", len(in.buf.Data)), slog.Int("want", size))
		}
		in.buf.FrameCount = 0
		t.provider.ReleaseBuffer(&in.buf)
		in.frames, in.pos = 0, 0
		return false
	}
	in.buf.FrameCount = n
	in.held = true

	raw := in.buf.Data[:size]
	t.tee(raw, n)
	t.decode(raw, n, float)

	in.frames, in.pos = n, 0
	return true
}

// release hands the held buffer back to the provider.
func (t *track) release() {
	in := &t.in
	if !in.held {
		return
	}
	t.provider.ReleaseBuffer(&in.buf)
	in.held = false
	in.frames, in.pos = 0, 0
}

func (t *track) decode(raw []byte, frames int, float bool) {
	in := &t.in
	src := frames * t.channelCount
	if float {
		if in.remix == nil {
			pcm.DecodeFloat32(in.f32[:src], raw, t.format)
			return
		}
		pcm.DecodeFloat32(in.decF[:src], raw, t.format)
		in.remix.Float32(in.f32, in.decF, frames)
		return
	}
	if in.remix == nil {
		pcm.DecodeInt16(in.i16[:src], raw, t.format)
		return
	}
	pcm.DecodeInt16(in.decI[:src], raw, t.format)
	in.remix.Int16(in.i16, in.decI, frames)
}

// tee copies raw input into the tee ring.
func (t *track) tee(raw []byte, frames int) {
	if t.teeBuffer == nil || t.teeFrameCount <= 0 {
		return
	}
	fs := t.frameSize()
	for frames > 0 {
		n := min(frames, t.teeFrameCount-t.teeOffset)
		copy(t.teeBuffer[t.teeOffset*fs:], raw[:n*fs])
		raw = raw[n*fs:]
		frames -= n
		t.teeOffset = (t.teeOffset + n) % t.teeFrameCount
	}
}

// consume advances past n converted frames.
func (in *input) consume(n int) {
	in.frames -= n
	in.pos += n
}

func (in *input) floats(n int) []float32 {
	return in.f32[in.pos*in.channels : (in.pos+n)*in.channels]
}

func (in *input) ints(n int) []int16 {
	return in.i16[in.pos*in.channels : (in.pos+n)*in.channels]
}

// NextBuffer feeds the resampler with float frames.
func (t *track) NextBuffer(b *pcm.FloatBuffer) {
	if !t.acquire(b.FrameCount, true) {
		b.FrameCount = 0
		b.Data = nil
		return
	}
	b.FrameCount = t.in.frames
	b.Data = t.in.floats(t.in.frames)
}

// ReleaseBuffer returns the frames the resampler pulled.
func (t *track) ReleaseBuffer(b *pcm.FloatBuffer) {
	t.release()
	b.FrameCount = 0
	b.Data = nil
}
