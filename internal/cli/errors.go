// SPDX-License-Identifier: EPL-2.0

package cli

import "errors"

var (
	ErrUnknownEncoding = errors.New("unknown output encoding")
	ErrUnboundedMix    = errors.New("looping sources need --duration")
	ErrWAVEncoding     = errors.New("wav output requires s16 encoding")
	ErrInvalidPitch    = errors.New("pitch must be positive")
	ErrInvalidDuration = errors.New("duration must not be negative")
)
