// SPDX-License-Identifier: EPL-2.0

package pcm

// Buffer is a window of interleaved frames lent by a BufferProvider.
//
// Before NextBuffer, FrameCount holds the number of frames requested. On
// return it holds the number granted and Data holds exactly that many frames
// in the provider's format. A nil Data means the provider has nothing right
// now; the caller must not treat it as end of stream.
type Buffer struct {
	FrameCount int
	Data       []byte
}

// BufferProvider is the upstream source of a track. Calls never block.
type BufferProvider interface {
	NextBuffer(b *Buffer)
	ReleaseBuffer(b *Buffer)
}

// FloatBuffer is the float32 counterpart of Buffer, used between a track's
// input stage and its resampler.
type FloatBuffer struct {
	FrameCount int
	Data       []float32
}

// FloatProvider supplies interleaved float32 frames to a resampler.
type FloatProvider interface {
	NextBuffer(b *FloatBuffer)
	ReleaseBuffer(b *FloatBuffer)
}
