// SPDX-License-Identifier: MPL-2.0

// Package invocation parses generator invocations of the form
//
//	[public] Name [deriving Trait ...] , "usage text" [, Field: Type]...
//
// into a validated Invocation value. The invocation text is scanned as Go
// tokens; the usage argument may be any constant string expression (string
// literals, parentheses, and concatenation), mirroring how a compiler sees
// the argument after constant expansion. The usage text itself is handed to
// pkg/docopt for validation, so a returned Invocation always carries a
// well-formed usage descriptor.
//
// A failed parse produces exactly one diagnostic and no Invocation. The
// caller decides what to do with siblings; this package handles one
// invocation at a time and keeps no state between calls.
package invocation

import "github.com/zerosign/usagegen/pkg/docopt"

type (
	// StructInfo describes the argument record an invocation declares.
	StructInfo struct {
		// Name is the record name as written.
		Name string
		// Public is true when the invocation carried the `public` marker;
		// the generated record name is then exported.
		Public bool
		// Traits is the deriving list in declared order. Duplicates are
		// preserved; validation against the capability set happens at
		// synthesis time.
		Traits []string
	}

	// Override is one `Field: Type` entry. The type is kept as its printed
	// Go expression; the synthesizer folds it into the descriptor type sum.
	Override struct {
		// Field is the field identifier as written.
		Field string
		// Key is the canonical usage key the field name maps back to. An
		// override whose key matches no usage atom is inert.
		Key string
		// Type is the type expression rendered in canonical Go syntax.
		Type string
	}

	// Invocation is one parsed and validated generator invocation. Built
	// once, consumed by the synthesizer, never mutated.
	Invocation struct {
		Struct    StructInfo
		Usage     *docopt.Usage
		Overrides []Override
	}
)

// Override returns the override declared for a canonical usage key. When a
// key was overridden more than once the last entry wins.
func (inv *Invocation) Override(key string) (Override, bool) {
	for i := len(inv.Overrides) - 1; i >= 0; i-- {
		if inv.Overrides[i].Key == key {
			return inv.Overrides[i], true
		}
	}
	return Override{}, false
}
