// SPDX-License-Identifier: EPL-2.0

package resample

import "errors"

var (
	ErrInvalidRate     = errors.New("invalid sample rate")
	ErrInvalidChannels = errors.New("invalid channel count")
)
