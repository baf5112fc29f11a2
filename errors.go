// SPDX-License-Identifier: EPL-2.0

package audmix

import "errors"

var (
	ErrNoInputs      = errors.New("nothing to mix")
	ErrInvalidOutput = errors.New("invalid output layout")
	ErrInputFailed   = errors.New("input stream failed")
)
