// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to parse the file. The
// decoder hands out an audio.Stream in the file's own bit depth, byte
// swapped to little-endian, ready to be attached to a mixer track:
//
//	f, _ := os.Open("audio.aif")
//	src, err := aiff.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//	m.SetBufferProvider(id, src)
//
// # Supported Formats
//
//   - PCM 16, 24 and 32-bit
//   - Mono and multi-channel, up to eight channels
//   - Any sample rate
//
// 8-bit AIFF stores signed samples and is rejected with
// ErrUnsupportedBitDepth. AIFF-C compressed files are not supported.
//
// Readers that cannot seek are buffered in memory first.
package aiff
