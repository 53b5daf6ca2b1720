// SPDX-License-Identifier: MPL-2.0

package docopt

import (
	"fmt"
	"strings"
)

const (
	// AtomPositional is a positional argument (`<file>` or `FILE`).
	AtomPositional AtomKind = "positional"
	// AtomOption is a short or long option (`-v`, `--verbose`).
	AtomOption AtomKind = "option"
	// AtomCommand is a bare-word subcommand.
	AtomCommand AtomKind = "command"

	// ArgZero means the atom takes no value of its own.
	ArgZero ArgCount = "zero"
	// ArgOne means the atom consumes one value.
	ArgOne ArgCount = "one"
)

type (
	// AtomKind classifies a usage-pattern element.
	AtomKind string

	// ArgCount is the value arity of an atom. Positionals and commands are
	// always ArgZero; only options declared or used with a value are ArgOne.
	ArgCount string

	// Atom identifies one usage-pattern element. Name is the canonical key
	// spelling: `--verbose` or `-v` for options (the long form wins when an
	// options section declares both), `<file>` or `FILE` for positionals,
	// and the bare word for commands. Atoms are comparable and unique
	// within one Usage.
	Atom struct {
		Kind AtomKind
		Name string
	}

	// Options holds the per-atom facts produced by validation. Immutable
	// once the Usage is built.
	Options struct {
		// Repeats is true when the atom carries `...` or appears more than
		// once within a single pattern alternative.
		Repeats bool
		// Arg is the atom's value arity.
		Arg ArgCount
		// Default is the `[default: ...]` value from an options section,
		// empty when none was declared.
		Default string
	}
)

// String returns the kind name.
func (k AtomKind) String() string { return string(k) }

// IsValid returns whether the AtomKind is one of the defined kinds,
// and a list of validation errors if it is not.
func (k AtomKind) IsValid() (bool, []error) {
	switch k {
	case AtomPositional, AtomOption, AtomCommand:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: unknown atom kind %q", ErrInvalidUsage, k)}
	}
}

// String returns the arity name.
func (c ArgCount) String() string { return string(c) }

// IsValid returns whether the ArgCount is one of the defined arities,
// and a list of validation errors if it is not.
func (c ArgCount) IsValid() (bool, []error) {
	switch c {
	case ArgZero, ArgOne:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: unknown arg count %q", ErrInvalidUsage, c)}
	}
}

// Key returns the canonical key for the atom, i.e. its Name. Keys are what
// the field-naming transform operates on.
func (a Atom) Key() string { return a.Name }

// String returns the canonical spelling.
func (a Atom) String() string { return a.Name }

// isKebabName reports whether s is lowercase kebab-case: segments of
// [a-z][a-z0-9]* joined by single hyphens. The segment-leading-letter rule
// is what keeps the key<->identifier transform a bijection.
func isKebabName(s string) bool {
	if s == "" {
		return false
	}
	segStart := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '-':
			if segStart {
				return false
			}
			segStart = true
		case c >= 'a' && c <= 'z':
			segStart = false
		case c >= '0' && c <= '9':
			if segStart {
				return false
			}
		default:
			return false
		}
	}
	return !segStart
}

// isCapsName reports whether s is an ALL-CAPS positional name:
// [A-Z][A-Z0-9]*.
func isCapsName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			continue
		}
		if i > 0 && c >= '0' && c <= '9' {
			continue
		}
		return false
	}
	return true
}

// isCapsLetters reports whether s is at least two uppercase letters with
// no digits. Bare positionals are held to this stricter shape so they stay
// distinguishable from camel-cased kebab names.
func isCapsLetters(s string) bool {
	if len(s) < 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// hasMultiCharSegment reports whether any hyphen-separated segment of s is
// longer than one character.
func hasMultiCharSegment(s string) bool {
	for _, seg := range strings.Split(s, "-") {
		if len(seg) > 1 {
			return true
		}
	}
	return false
}

// validateAtomName checks an atom's canonical spelling against the key
// language. Shorts are restricted to a single lowercase letter so that
// `-v` and `-V` cannot collapse to the same generated identifier.
func validateAtomName(a Atom) error {
	switch a.Kind {
	case AtomOption:
		if len(a.Name) == 2 && a.Name[0] == '-' && a.Name[1] != '-' {
			if a.Name[1] >= 'a' && a.Name[1] <= 'z' {
				return nil
			}
			return &UsageError{Message: fmt.Sprintf("short option %q: only lowercase letters are allowed", a.Name)}
		}
		name := a.Name[2:]
		if len(name) < 2 || !isKebabName(name) {
			return &UsageError{Message: fmt.Sprintf("long option %q: name must be lowercase kebab-case with at least two characters", a.Name)}
		}
	case AtomPositional:
		if a.Name[0] == '<' {
			inner := a.Name[1 : len(a.Name)-1]
			if !isKebabName(inner) {
				return &UsageError{Message: fmt.Sprintf("positional %q: name must be lowercase kebab-case", a.Name)}
			}
			// A hyphenated name of single-letter segments ("a-b") would
			// collide with the ALL-CAPS form ("AB") once camel-cased.
			if strings.Contains(inner, "-") && !hasMultiCharSegment(inner) {
				return &UsageError{Message: fmt.Sprintf("positional %q: hyphenated names need at least one multi-character segment", a.Name)}
			}
			return nil
		}
		if !isCapsLetters(a.Name) {
			return &UsageError{Message: fmt.Sprintf("positional %q: bare positionals must be at least two ALL-CAPS letters", a.Name)}
		}
	case AtomCommand:
		if !isKebabName(a.Name) {
			return &UsageError{Message: fmt.Sprintf("command %q: name must be lowercase kebab-case", a.Name)}
		}
	}
	return nil
}
