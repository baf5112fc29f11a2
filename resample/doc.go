// SPDX-License-Identifier: EPL-2.0

// Package resample converts a pulled float32 stream from one sample rate to
// another while accumulating the result into a caller-owned buffer.
//
// Two implementations are provided:
//
//	Polyphase - windowed-sinc filter from github.com/oov/audio/resampler
//	Cubic     - Catmull-Rom interpolation over a four-frame window
//
// New picks one from a Quality. QualityAuto uses Polyphase when the input
// runs at a music rate (44.1 kHz or 48 kHz) and Cubic otherwise.
//
// A Resampler never owns its input. Each call to Resample pulls frames
// through a pcm.FloatProvider, copies them to internal staging and releases
// the provider buffer before returning. Frames staged but not yet consumed
// are reported by UnreleasedFrames.
//
// Output is accumulated, never overwritten:
//
//	out[f*channels+0] += left  * y
//	out[f*channels+1] += right * y
//	out[f*channels+c] += left  * y  // c >= 2
//
// so a caller wanting plain output clears out first and sets unity volume.
package resample
