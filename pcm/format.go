// SPDX-License-Identifier: EPL-2.0

package pcm

import "fmt"

// Format identifies the encoding of one PCM sample.
type Format int

const (
	FormatInvalid Format = iota
	PCM8
	PCM16
	PCM24Packed
	PCM32
	PCMFloat
)

func (f Format) String() string {
	switch f {
	case PCM8:
		return "pcm8"
	case PCM16:
		return "pcm16"
	case PCM24Packed:
		return "pcm24packed"
	case PCM32:
		return "pcm32"
	case PCMFloat:
		return "float"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// IsValid reports whether f is one of the accepted linear PCM formats.
func (f Format) IsValid() bool {
	switch f {
	case PCM8, PCM16, PCM24Packed, PCM32, PCMFloat:
		return true
	default:
		return false
	}
}

// BytesPerSample returns the storage size of one sample, or 0 for an
// invalid format.
func (f Format) BytesPerSample() int {
	switch f {
	case PCM8:
		return 1
	case PCM16:
		return 2
	case PCM24Packed:
		return 3
	case PCM32, PCMFloat:
		return 4
	default:
		return 0
	}
}

// FrameSize returns the byte size of one frame of channels samples.
func (f Format) FrameSize(channels int) int {
	return f.BytesPerSample() * channels
}

// FormatForBitDepth maps an integer bit depth, as reported by container
// decoders, onto the matching integer format.
func FormatForBitDepth(bits int) (Format, error) {
	switch bits {
	case 8:
		return PCM8, nil
	case 16:
		return PCM16, nil
	case 24:
		return PCM24Packed, nil
	case 32:
		return PCM32, nil
	default:
		return FormatInvalid, fmt.Errorf("%w: %d-bit", ErrBadFormat, bits)
	}
}
