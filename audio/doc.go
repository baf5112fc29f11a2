// SPDX-License-Identifier: EPL-2.0

// Package audio provides the upstream side of the mixer: decoded PCM
// streams that a mixer track pulls from.
//
// This package contains:
//   - Stream interface for decoded audio in its native PCM format
//   - ByteStream, IntStream and FloatStream adapters
//   - Format registry for decoder registration
//
// # Stream Interface
//
// A Stream is a pcm.BufferProvider that also describes itself:
//
//	type Stream interface {
//	    pcm.BufferProvider
//	    SampleRate() int
//	    ChannelMask() pcm.ChannelMask
//	    Format() pcm.Format
//	    Done() bool
//	    Err() error
//	    Close() error
//	}
//
// Streams hand out whole frames in their own format; the mixer converts,
// remixes and resamples on its side. Each NextBuffer must be matched by a
// ReleaseBuffer before the next NextBuffer.
//
// # Adapters
//
// ByteStream reads raw little-endian PCM from an io.Reader:
//
//	s, err := audio.NewByteStream(file, 48000, 2, pcm.PCM16)
//
// IntStream wraps go-audio decoders (wav, aiff) that fill an IntBuffer,
// and FloatStream wraps readers of float32 samples such as oggvorbis.
//
// # Format Registry
//
// The registry allows dynamic decoder registration:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	stream, err := registry.Decode("wav", file)
//
// # End of Stream
//
// A stream that has nothing to give returns a nil Data buffer. This is
// starvation, not end of stream: check Done to tell the two apart, and Err
// for a read failure.
package audio
