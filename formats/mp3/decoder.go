// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/pcm"
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// go-mp3 always produces interleaved stereo, duplicating mono streams.
const outputChannels = 2

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Stream, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return newStream(dec)
}

// newStream serves the decoder's 16-bit little-endian output unchanged.
func newStream(dec mp3Reader) (audio.Stream, error) {
	s, err := audio.NewByteStream(dec, dec.SampleRate(), outputChannels, pcm.PCM16)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return s, nil
}
