// SPDX-License-Identifier: EPL-2.0

package pcm

import "errors"

var (
	ErrBadFormatPair = errors.New("unsupported accumulator/sink format pair")
	ErrBadFormat     = errors.New("unsupported pcm format")
)
