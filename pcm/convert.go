// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	q427Scale   = 1 << 27
	floatToQ15  = 32768.0
	q15ToFloat  = 1.0 / 32768.0
	q23ToFloat  = 1.0 / 8388608.0
	q31ToFloat  = 1.0 / 2147483648.0
	q427ToFloat = 1.0 / q427Scale
)

// Float32ToInt16 scales x from [-1, 1] to a 16-bit sample, rounding to the
// nearest value and saturating outside the range. NaN maps to 0.
func Float32ToInt16(x float32) int16 {
	v := x * floatToQ15
	switch {
	case v != v:
		return 0
	case v >= math.MaxInt16:
		return math.MaxInt16
	case v <= math.MinInt16:
		return math.MinInt16
	}
	return int16(math.Round(float64(v)))
}

// Int16ToFloat32 is the inverse of Float32ToInt16 for in-range samples.
func Int16ToFloat32(v int16) float32 {
	return float32(v) * q15ToFloat
}

// Q427ToInt16 drops the 12 fractional gain bits of a Q4.27 accumulator
// sample and saturates to 16 bits.
func Q427ToInt16(v int32) int16 {
	v >>= 12
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}

// Q427ToFloat32 converts a Q4.27 accumulator sample to float.
func Q427ToFloat32(v int32) float32 {
	return float32(v) * q427ToFloat
}

// ConvertFloatToFloat copies a float accumulator into a float sink.
func ConvertFloatToFloat(dst, src []float32) {
	copy(dst, src)
}

// ConvertFloatToInt16 writes a float accumulator into a 16-bit sink.
func ConvertFloatToInt16(dst []int16, src []float32) {
	for i, v := range src {
		dst[i] = Float32ToInt16(v)
	}
}

// ConvertQ427ToFloat writes a Q4.27 accumulator into a float sink.
func ConvertQ427ToFloat(dst []float32, src []int32) {
	for i, v := range src {
		dst[i] = Q427ToFloat32(v)
	}
}

// ConvertQ427ToInt16 writes a Q4.27 accumulator into a 16-bit sink.
func ConvertQ427ToInt16(dst []int16, src []int32) {
	for i, v := range src {
		dst[i] = Q427ToInt16(v)
	}
}

// DecodeFloat32 decodes len(dst) samples of format f from src into
// normalized float32. It returns the number of samples written, limited by
// the whole samples available in src.
func DecodeFloat32(dst []float32, src []byte, f Format) int {
	n := decodeCount(len(dst), len(src), f)
	switch f {
	case PCM8:
		for i := range n {
			dst[i] = float32(int32(src[i])-128) * (1.0 / 128.0)
		}
	case PCM16:
		for i := range n {
			dst[i] = float32(int16(binary.LittleEndian.Uint16(src[2*i:]))) * q15ToFloat
		}
	case PCM24Packed:
		for i := range n {
			dst[i] = float32(int24(src[3*i:])) * q23ToFloat
		}
	case PCM32:
		for i := range n {
			dst[i] = float32(float64(int32(binary.LittleEndian.Uint32(src[4*i:]))) * q31ToFloat)
		}
	case PCMFloat:
		for i := range n {
			dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[4*i:]))
		}
	default:
		panic(fmt.Errorf("%w: %v", ErrBadFormat, f))
	}
	return n
}

// DecodeInt16 decodes len(dst) samples of format f from src into 16-bit
// samples, truncating wider integer formats and rounding float.
func DecodeInt16(dst []int16, src []byte, f Format) int {
	n := decodeCount(len(dst), len(src), f)
	switch f {
	case PCM8:
		for i := range n {
			dst[i] = int16(int32(src[i])-128) << 8
		}
	case PCM16:
		for i := range n {
			dst[i] = int16(binary.LittleEndian.Uint16(src[2*i:]))
		}
	case PCM24Packed:
		for i := range n {
			dst[i] = int16(int24(src[3*i:]) >> 8)
		}
	case PCM32:
		for i := range n {
			dst[i] = int16(int32(binary.LittleEndian.Uint32(src[4*i:])) >> 16)
		}
	case PCMFloat:
		for i := range n {
			dst[i] = Float32ToInt16(math.Float32frombits(binary.LittleEndian.Uint32(src[4*i:])))
		}
	default:
		panic(fmt.Errorf("%w: %v", ErrBadFormat, f))
	}
	return n
}

func decodeCount(dstLen, srcLen int, f Format) int {
	bps := f.BytesPerSample()
	if bps == 0 {
		return 0
	}
	return min(dstLen, srcLen/bps)
}

func int24(b []byte) int32 {
	return int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8
}

// PutInt16s encodes samples little-endian into dst, which must hold
// 2*len(samples) bytes.
func PutInt16s(dst []byte, samples []int16) {
	for i, s := range samples {
		binary.LittleEndian.PutUint16(dst[2*i:], uint16(s))
	}
}

// PutFloat32s encodes samples little-endian into dst, which must hold
// 4*len(samples) bytes.
func PutFloat32s(dst []byte, samples []float32) {
	for i, s := range samples {
		binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(s))
	}
}

// PutInts encodes integer samples of the given integer format into dst.
// Values are taken as already scaled to the format's bit depth; PCM8 values
// are unsigned.
func PutInts(dst []byte, samples []int, f Format) {
	switch f {
	case PCM8:
		for i, s := range samples {
			dst[i] = byte(s)
		}
	case PCM16:
		for i, s := range samples {
			binary.LittleEndian.PutUint16(dst[2*i:], uint16(int16(s)))
		}
	case PCM24Packed:
		for i, s := range samples {
			v := uint32(int32(s))
			dst[3*i] = byte(v)
			dst[3*i+1] = byte(v >> 8)
			dst[3*i+2] = byte(v >> 16)
		}
	case PCM32:
		for i, s := range samples {
			binary.LittleEndian.PutUint32(dst[4*i:], uint32(int32(s)))
		}
	default:
		panic(fmt.Errorf("%w: %v", ErrBadFormat, f))
	}
}
