// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files into
// an audio.Stream that a mixer track can pull from directly.
//
//	f, _ := os.Open("audio.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//	m.SetBufferProvider(id, src)
//
// # Output Format
//
//   - Sample format: pcm.PCM16
//   - Channels: 2 (go-mp3 duplicates mono files to stereo)
//   - Sample rate: that of the file, typically 44.1kHz or 48kHz
//
// Tracks whose rate differs from the mixer's are resampled by the mixer.
package mp3
