// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/pcm"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type Decoder struct{}

// Decode returns a stream of the file's samples converted from big-endian
// to the little-endian layout the mixer reads, at the file's bit depth.
func (Decoder) Decode(r io.Reader) (audio.Stream, error) {
	// go-audio requires io.ReadSeeker
	rs, err := audio.Seekable(r)
	if err != nil {
		return nil, fmt.Errorf("reading aiff data: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	return newStream(dec, int(dec.BitDepth))
}

func newStream(dec aiffReader, bitDepth int) (audio.Stream, error) {
	info := dec.Format()
	if info == nil {
		return nil, ErrUnsupportedAiffLayout
	}

	// 8-bit AIFF is signed, unlike the unsigned pcm.PCM8
	var format pcm.Format
	switch bitDepth {
	case 16:
		format = pcm.PCM16
	case 24:
		format = pcm.PCM24Packed
	case 32:
		format = pcm.PCM32
	default:
		return nil, fmt.Errorf("%w: %d-bit", ErrUnsupportedBitDepth, bitDepth)
	}

	s, err := audio.NewIntStream(dec, info.SampleRate, info.NumChannels, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}
	return s, nil
}
