// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"

	"github.com/ik5/audmix/pcm"
)

// ByteStream serves raw little-endian PCM read from an io.Reader. A partial
// frame at the end of a read is kept for the next one.
type ByteStream struct {
	header

	r     io.Reader
	buf   []byte
	carry int // buffered bytes not yet released
}

// NewByteStream wraps r, which yields interleaved samples in format. If r
// is an io.Closer, Close closes it.
func NewByteStream(r io.Reader, rate, channels int, format pcm.Format) (*ByteStream, error) {
	h, err := newHeader(rate, channels, format, r)
	if err != nil {
		return nil, err
	}
	return &ByteStream{header: h, r: r}, nil
}

func (s *ByteStream) NextBuffer(b *pcm.Buffer) {
	s.mustNotBeLent()
	want := b.FrameCount * s.frameSize
	if want <= 0 {
		s.lend(b, nil, 0)
		return
	}
	if cap(s.buf) < want {
		grown := make([]byte, want)
		copy(grown, s.buf[:s.carry])
		s.buf = grown
	}
	s.buf = s.buf[:max(want, s.carry)]

	if s.carry < want && !s.eof {
		n, err := io.ReadFull(s.r, s.buf[s.carry:want])
		s.carry += n
		s.note(err)
	}
	s.lend(b, s.buf, min(s.carry, want)/s.frameSize)
}

// ReleaseBuffer consumes b.FrameCount frames; the rest are served again.
func (s *ByteStream) ReleaseBuffer(b *pcm.Buffer) {
	used := min(max(b.FrameCount, 0)*s.frameSize, s.carry)
	s.carry = copy(s.buf, s.buf[used:s.carry])
	s.pending = false
	b.FrameCount = 0
	b.Data = nil
}

func (s *ByteStream) Done() bool {
	return s.eof && !s.pending && s.carry < s.frameSize
}
