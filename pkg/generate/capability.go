// SPDX-License-Identifier: MPL-2.0

package generate

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// CapabilityDecode is the mandatory decoding capability. Every record
	// carries it first: it contributes the docopt field tags and the
	// descriptor factory.
	CapabilityDecode Capability = "decode"
	// CapabilityStringer adds a String() method over the record fields.
	CapabilityStringer Capability = "stringer"
	// CapabilityJSON adds json struct tags.
	CapabilityJSON Capability = "json"
	// CapabilityYAML adds yaml struct tags.
	CapabilityYAML Capability = "yaml"

	// extensionPrefix marks host-specific capabilities the generator
	// passes through as marker comments. The underscore keeps extension
	// names valid trait identifiers.
	extensionPrefix = "x_"
)

// ErrUnknownCapability indicates a trait outside the capability set.
var ErrUnknownCapability = errors.New("unknown capability")

// Capability is one record capability from the deriving list. The set is
// closed apart from x_-prefixed extensions, so misspellings are caught at
// generation time rather than silently ignored.
type Capability string

// IsValid returns whether the Capability is a defined one or an x_
// extension, and a list of validation errors if it is neither.
func (c Capability) IsValid() (bool, []error) {
	switch c {
	case CapabilityDecode, CapabilityStringer, CapabilityJSON, CapabilityYAML:
		return true, nil
	}
	if c.IsExtension() {
		return true, nil
	}
	return false, []error{fmt.Errorf("%w: %q", ErrUnknownCapability, c)}
}

// IsExtension reports whether the capability is a pass-through extension.
func (c Capability) IsExtension() bool {
	return strings.HasPrefix(string(c), extensionPrefix) && len(c) > len(extensionPrefix)
}

// String returns the capability name.
func (c Capability) String() string { return string(c) }
