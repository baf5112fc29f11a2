// SPDX-License-Identifier: EPL-2.0

// Package pcm describes raw PCM data as the mixer sees it: sample formats,
// channel masks, the buffer-provider contract used to pull input, and the
// conversions between raw input, mixer accumulators and sink buffers.
//
// # Sample Formats
//
// Five linear PCM formats are accepted as track input:
//
//	pcm.PCM8        // unsigned 8-bit, offset 128
//	pcm.PCM16       // signed 16-bit little-endian
//	pcm.PCM24Packed // signed 24-bit little-endian, 3 bytes per sample
//	pcm.PCM32       // signed 32-bit little-endian
//	pcm.PCMFloat    // IEEE-754 float32 little-endian, nominal range [-1, 1]
//
// Only PCM16 and PCMFloat are valid as mixer-internal and sink formats.
//
// # Accumulators
//
// The mixer accumulates either in float32 or in Q4.27 fixed point held in
// int32 (a 16-bit sample multiplied by a U4.12 gain). The Convert* functions
// turn an accumulator into a sink buffer once per group and period.
//
// # Providers
//
// Upstream data arrives through BufferProvider:
//
//	b := pcm.Buffer{FrameCount: 256}
//	p.NextBuffer(&b)
//	if b.Data == nil {
//	    // starved, try again next period
//	}
//	// consume b.FrameCount frames from b.Data
//	p.ReleaseBuffer(&b)
package pcm
