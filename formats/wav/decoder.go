// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/pcm"
)

// wavFormatPCM is the fmt chunk tag of integer PCM.
const wavFormatPCM = 1

type Decoder struct{}

// Decode reads the RIFF headers of r and returns a stream positioned at
// the first sample of the data chunk. Samples keep the file's bit depth:
// 8-bit files become pcm.PCM8, 24-bit ones pcm.PCM24Packed, and so on.
func (Decoder) Decode(r io.Reader) (audio.Stream, error) {
	rs, err := audio.Seekable(r)
	if err != nil {
		return nil, err
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedWavLayout, dec.WavAudioFormat)
	}

	format, err := pcm.FormatForBitDepth(int(dec.BitDepth))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedBitDepth, err)
	}

	if err := dec.FwdToPCM(); err != nil || dec.PCMChunk == nil {
		return nil, ErrUnsupportedWavChunks
	}

	s, err := audio.NewIntStream(dec, int(dec.SampleRate), int(dec.NumChans), format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}
	return s, nil
}
