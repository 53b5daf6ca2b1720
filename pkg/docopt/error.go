// SPDX-License-Identifier: MPL-2.0

package docopt

import "errors"

// ErrInvalidUsage is the sentinel error wrapped by UsageError.
var ErrInvalidUsage = errors.New("invalid usage specification")

// UsageError is returned when usage text fails validation. It wraps
// ErrInvalidUsage for errors.Is() compatibility. The message is an opaque
// human-readable description; callers should not parse it.
type UsageError struct {
	Message string
}

// Error implements the error interface.
func (e *UsageError) Error() string { return e.Message }

// Unwrap returns ErrInvalidUsage for errors.Is() compatibility.
func (e *UsageError) Unwrap() error { return ErrInvalidUsage }
