// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis, a pure Go decoder.
// Vorbis decodes to floating point, so the stream is served as
// pcm.PCMFloat and keeps full precision until the mixer converts it.
//
//	f, _ := os.Open("music.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//	m.SetBufferProvider(id, src)
//
// Channel counts above eight are rejected.
package vorbis
