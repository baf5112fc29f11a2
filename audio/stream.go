// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audmix/pcm"
)

// header carries what every stream reports about itself.
type header struct {
	rate      int
	channels  int
	mask      pcm.ChannelMask
	format    pcm.Format
	frameSize int

	eof     bool // source exhausted
	pending bool // a buffer is lent out
	err     error
	closer  io.Closer
}

func newHeader(rate, channels int, format pcm.Format, src any) (header, error) {
	if rate <= 0 {
		return header{}, fmt.Errorf("%w: %d", ErrInvalidSampleRate, rate)
	}
	if channels < 1 || channels > pcm.MaxChannels {
		return header{}, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	if !format.IsValid() {
		return header{}, fmt.Errorf("%w: %v", ErrInvalidFormat, format)
	}
	h := header{
		rate:      rate,
		channels:  channels,
		mask:      pcm.StereoOrMultichannel(channels),
		format:    format,
		frameSize: format.FrameSize(channels),
	}
	if c, ok := src.(io.Closer); ok {
		h.closer = c
	}
	return h, nil
}

func (h *header) SampleRate() int              { return h.rate }
func (h *header) ChannelMask() pcm.ChannelMask { return h.mask }
func (h *header) Format() pcm.Format           { return h.format }
func (h *header) Err() error                   { return h.err }

func (h *header) Close() error {
	if h.closer == nil {
		return nil
	}
	if err := h.closer.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// note records the outcome of a read. io.EOF and io.ErrUnexpectedEOF end
// the stream quietly; anything else ends it with an error.
func (h *header) note(err error) {
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		h.eof = true
	default:
		h.eof = true
		if h.err == nil {
			h.err = fmt.Errorf("%w", err)
		}
	}
}

// lend hands out frames of data, or starves the caller when there are none.
func (h *header) lend(b *pcm.Buffer, data []byte, frames int) {
	if frames <= 0 {
		b.FrameCount = 0
		b.Data = nil
		return
	}
	h.pending = true
	b.FrameCount = frames
	b.Data = data[:frames*h.frameSize]
}

// mustNotBeLent guards NextBuffer against a caller that never released.
func (h *header) mustNotBeLent() {
	if h.pending {
		panic(ErrBufferNotReleased)
	}
}
