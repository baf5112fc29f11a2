// SPDX-License-Identifier: EPL-2.0

package audio

import "github.com/ik5/audmix/pcm"

// FloatReader yields interleaved float32 samples and returns the number of
// values read, as oggvorbis.Reader does.
type FloatReader interface {
	Read(p []float32) (int, error)
}

// FloatStream serves samples from a FloatReader as pcm.PCMFloat.
type FloatStream struct {
	header

	r      FloatReader
	floats []float32
	carry  int // buffered samples not yet released
	buf    []byte
}

func NewFloatStream(r FloatReader, rate, channels int) (*FloatStream, error) {
	h, err := newHeader(rate, channels, pcm.PCMFloat, r)
	if err != nil {
		return nil, err
	}
	return &FloatStream{header: h, r: r}, nil
}

func (s *FloatStream) NextBuffer(b *pcm.Buffer) {
	s.mustNotBeLent()
	want := b.FrameCount * s.channels
	if want <= 0 {
		s.lend(b, nil, 0)
		return
	}
	if cap(s.floats) < want {
		grown := make([]float32, want)
		copy(grown, s.floats[:s.carry])
		s.floats = grown
	}
	s.floats = s.floats[:max(want, s.carry)]

	for s.carry < want && !s.eof {
		n, err := s.r.Read(s.floats[s.carry:want])
		s.carry += n
		s.note(err)
		if n == 0 && err == nil {
			break
		}
	}

	frames := min(s.carry, want) / s.channels
	size := frames * s.frameSize
	if cap(s.buf) < size {
		s.buf = make([]byte, size)
	}
	pcm.PutFloat32s(s.buf[:size], s.floats[:frames*s.channels])
	s.lend(b, s.buf, frames)
}

// ReleaseBuffer consumes b.FrameCount frames; the rest are served again.
func (s *FloatStream) ReleaseBuffer(b *pcm.Buffer) {
	used := min(max(b.FrameCount, 0)*s.channels, s.carry)
	s.carry = copy(s.floats, s.floats[used:s.carry])
	s.pending = false
	b.FrameCount = 0
	b.Data = nil
}

func (s *FloatStream) Done() bool {
	return s.eof && !s.pending && s.carry < s.channels
}
