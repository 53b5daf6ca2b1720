// SPDX-License-Identifier: MPL-2.0

// Package docopt parses docopt-style usage text into a validated descriptor.
//
// The descriptor is an ordered mapping from atoms (positional arguments,
// options, and commands) to per-atom facts: whether the atom may repeat and
// whether it takes a value. Order is the order of first appearance in the
// usage patterns, followed by options declared only in options sections.
//
// The package validates structure (exactly one usage section, balanced
// groups, consistent option arity) and atom naming (lowercase kebab-case
// segments, or ALL-CAPS positionals), and keeps the full documentation text
// verbatim so a descriptor can be reconstructed from it later. Matching
// actual process arguments against a descriptor is out of scope.
package docopt
