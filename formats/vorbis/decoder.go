// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audmix/audio"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Stream, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return newStream(dec)
}

// newStream serves the decoder's float output as pcm.PCMFloat. Read
// counts interleaved values, not frames.
func newStream(dec oggReader) (audio.Stream, error) {
	s, err := audio.NewFloatStream(dec, dec.SampleRate(), dec.Channels())
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return s, nil
}
