// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/ik5/audmix/pcm"
)

// Stream is a decoded PCM stream in its native format. It feeds a mixer
// track through the pcm.BufferProvider methods.
type Stream interface {
	pcm.BufferProvider

	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// ChannelMask describes the interleaved channel layout.
	ChannelMask() pcm.ChannelMask
	// Format is the encoding of the bytes handed out by NextBuffer.
	Format() pcm.Format
	// Done reports that the source is exhausted and every frame it
	// produced has been released.
	Done() bool
	// Err returns the first read error other than io.EOF.
	Err() error
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Stream from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Stream, error)
}

// Registry maps format names such as "wav" or "vorbis" to decoders.
// Names are case-insensitive. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// Register binds d to format, replacing any earlier binding.
func (r *Registry) Register(format string, d Decoder) {
	r.mu.Lock()
	r.decoders[strings.ToLower(format)] = d
	r.mu.Unlock()
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.RLock()
	d, ok := r.decoders[strings.ToLower(format)]
	r.mu.RUnlock()
	return d, ok
}

// Formats lists the registered format names in sorted order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.decoders))
}

// Decode looks up the decoder for format and opens a stream on rd.
// Decoder failures are prefixed with the format name.
func (r *Registry) Decode(format string, rd io.Reader) (Stream, error) {
	d, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	s, err := d.Decode(rd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", strings.ToLower(format), err)
	}
	return s, nil
}
