// SPDX-License-Identifier: EPL-2.0

package mixer

import "errors"

var (
	ErrInvalidChannelMask = errors.New("invalid channel mask")
	ErrInvalidFormat      = errors.New("invalid sample format")
	ErrInvalidConfig      = errors.New("invalid mixer configuration")

	// Contract violations. These are raised with panic, wrapped so that a
	// recovering caller can match them with errors.Is.
	ErrTrackExists  = errors.New("track already exists")
	ErrUnknownTrack = errors.New("unknown track")
	ErrBadParameter = errors.New("bad parameter")
	ErrNotReady     = errors.New("enabled track is missing a provider or main buffer")
)
