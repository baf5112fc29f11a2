// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"
)

func TestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrUnknownFormat", ErrUnknownFormat, "no decoder registered for format"},
		{"ErrInvalidSampleRate", ErrInvalidSampleRate, "sample rate must be positive"},
		{"ErrInvalidChannels", ErrInvalidChannels, "unsupported channel count"},
		{"ErrInvalidFormat", ErrInvalidFormat, "unsupported sample format"},
		{"ErrBufferNotReleased", ErrBufferNotReleased, "previous buffer was not released"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.err.Error() != tt.msg {
				t.Errorf("%s.Error() = %q, want %q", tt.name, tt.err.Error(), tt.msg)
			}
			if !errors.Is(errors.Join(tt.err, errors.New("context")), tt.err) {
				t.Errorf("errors.Is() failed for joined %s", tt.name)
			}
		})
	}
}
