// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrUnknownFormat        = errors.New("unknown sample format")
	ErrInvalidChannels      = errors.New("channel count must be 1 or 2")
	ErrInvalidBlockAlign    = errors.New("ADPCM block alignment must be even and at least 2")
	ErrUnsupportedEncoding  = errors.New("encoding not supported for output")
	ErrInvalidSampleRate    = errors.New("sample rate must be positive")
	ErrUnsupportedContainer = errors.New("no decoder registered for container")
)
