// SPDX-License-Identifier: EPL-2.0

package alemu

import "errors"

var (
	ErrInvalidFrames  = errors.New("frame count must not be negative")
	ErrInvalidQuantum = errors.New("render quantum must be positive")
)
