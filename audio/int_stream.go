// SPDX-License-Identifier: EPL-2.0

package audio

import (
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audmix/pcm"
)

// IntReader is implemented by the go-audio wav and aiff decoders. A call
// that returns 0 samples and no error marks the end of the data.
type IntReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// IntStream serves samples decoded by an IntReader, re-encoded as packed
// little-endian PCM in format. Sample values must already be scaled to
// the format's bit depth, with PCM8 unsigned.
type IntStream struct {
	header

	r     IntReader
	ib    goaudio.IntBuffer
	ints  []int
	carry int // buffered samples not yet released
	buf   []byte
}

func NewIntStream(r IntReader, rate, channels int, format pcm.Format) (*IntStream, error) {
	h, err := newHeader(rate, channels, format, r)
	if err != nil {
		return nil, err
	}
	s := &IntStream{header: h, r: r}
	s.ib.Format = &goaudio.Format{NumChannels: channels, SampleRate: rate}
	s.ib.SourceBitDepth = format.BytesPerSample() * 8
	return s, nil
}

func (s *IntStream) NextBuffer(b *pcm.Buffer) {
	s.mustNotBeLent()
	want := b.FrameCount * s.channels
	if want <= 0 {
		s.lend(b, nil, 0)
		return
	}
	if cap(s.ints) < want {
		grown := make([]int, want)
		copy(grown, s.ints[:s.carry])
		s.ints = grown
	}
	s.ints = s.ints[:max(want, s.carry)]

	for s.carry < want && !s.eof {
		s.ib.Data = s.ints[s.carry:want]
		n, err := s.r.PCMBuffer(&s.ib)
		s.carry += n
		s.note(err)
		if n == 0 {
			s.eof = true
		}
	}

	frames := min(s.carry, want) / s.channels
	size := frames * s.frameSize
	if cap(s.buf) < size {
		s.buf = make([]byte, size)
	}
	pcm.PutInts(s.buf[:size], s.ints[:frames*s.channels], s.format)
	s.lend(b, s.buf, frames)
}

// ReleaseBuffer consumes b.FrameCount frames; the rest are served again.
func (s *IntStream) ReleaseBuffer(b *pcm.Buffer) {
	used := min(max(b.FrameCount, 0)*s.channels, s.carry)
	s.carry = copy(s.ints, s.ints[used:s.carry])
	s.pending = false
	b.FrameCount = 0
	b.Data = nil
}

func (s *IntStream) Done() bool {
	return s.eof && !s.pending && s.carry < s.channels
}
