// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrUnknownFormat     = errors.New("no decoder registered for format")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrInvalidChannels   = errors.New("unsupported channel count")
	ErrInvalidFormat     = errors.New("unsupported sample format")
	ErrBufferNotReleased = errors.New("previous buffer was not released")
)
