// SPDX-License-Identifier: EPL-2.0

// Package wav decodes WAV files into mixer-ready streams and writes 16-bit
// PCM WAV files.
//
// Decoding is done by github.com/go-audio/wav. The returned audio.Stream
// keeps the file's sample format, so an 8-bit file is served as
// pcm.PCM8 and a 24-bit one as pcm.PCM24Packed; conversion to the mixer's
// internal format happens inside the mixer.
//
//	f, _ := os.Open("voice.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    // errors.Is(err, wav.ErrNotWavFile) ...
//	}
//	m.SetBufferProvider(id, src)
//
// Readers that cannot seek are buffered in memory first.
//
// # Writing
//
// WriteWAV16 writes a whole file to any io.Writer. Encoder appends one
// mixer period at a time and fixes up the sizes on Close, which needs an
// io.WriteSeeker such as *os.File.
//
// # Limitations
//
// Only integer PCM (format tag 1) at 8, 16, 24 or 32 bits is decoded.
// IEEE float, A-law and extensible headers are rejected with
// ErrUnsupportedWavLayout.
package wav
