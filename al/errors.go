// SPDX-License-Identifier: EPL-2.0

package al

import (
	"errors"
	"fmt"
)

// ErrorKind is the error taxonomy reported through GetError. The values
// are the native ones.
type ErrorKind int32

const (
	NoError          ErrorKind = 0
	InvalidName      ErrorKind = 0xA001
	InvalidEnum      ErrorKind = 0xA002
	InvalidValue     ErrorKind = 0xA003
	InvalidOperation ErrorKind = 0xA004
	OutOfMemory      ErrorKind = 0xA005
)

func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "no error"
	case InvalidName:
		return "invalid name"
	case InvalidEnum:
		return "invalid enum"
	case InvalidValue:
		return "invalid value"
	case InvalidOperation:
		return "invalid operation"
	case OutOfMemory:
		return "out of memory"
	default:
		return fmt.Sprintf("error(0x%x)", int32(k))
	}
}

// Error lets a kind be used as a target for errors.Is.
func (k ErrorKind) Error() string { return k.String() }

// Error is returned by every failing Context call. The same Kind is also
// recorded as the pending context error.
type Error struct {
	Op   string
	ID   ID
	Kind ErrorKind
}

func (e *Error) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("al: %s %d: %s", e.Op, e.ID, e.Kind)
	}

	return fmt.Sprintf("al: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Kind }

var (
	ErrContextExists     = errors.New("context was already created")
	ErrContextNotCreated = errors.New("context not created")
	ErrInvalidOptions    = errors.New("invalid context options")
)
