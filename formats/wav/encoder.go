// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// Encoder appends interleaved 16-bit periods to a WAV file as they are
// produced. The RIFF and data sizes are patched in by Close, which is why
// it needs an io.WriteSeeker; use WriteWAV16 for plain writers.
type Encoder struct {
	enc      *gowav.Encoder
	channels int
	ib       goaudio.IntBuffer
	started  bool
}

func NewEncoder(ws io.WriteSeeker, sampleRate, channels int) (*Encoder, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannelCount, channels)
	}
	e := &Encoder{
		enc:      gowav.NewEncoder(ws, sampleRate, 16, channels, wavFormatPCM),
		channels: channels,
	}
	e.ib.Format = &goaudio.Format{NumChannels: channels, SampleRate: sampleRate}
	e.ib.SourceBitDepth = 16
	return e, nil
}

// Write appends whole frames; len(samples) must be a multiple of the
// channel count.
func (e *Encoder) Write(samples []int16) error {
	if len(samples)%e.channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channel(s)", ErrInvalidChannelCount, len(samples), e.channels)
	}
	if cap(e.ib.Data) < len(samples) {
		e.ib.Data = make([]int, len(samples))
	}
	e.ib.Data = e.ib.Data[:len(samples)]
	for i, s := range samples {
		e.ib.Data[i] = int(s)
	}
	if err := e.enc.Write(&e.ib); err != nil {
		return fmt.Errorf("%w", err)
	}
	e.started = true
	return nil
}

// Close finalizes the headers. It does not close the underlying writer.
func (e *Encoder) Close() error {
	if !e.started {
		// headers and an empty data chunk
		if err := e.Write(nil); err != nil {
			return err
		}
	}
	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
