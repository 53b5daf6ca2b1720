// SPDX-License-Identifier: MPL-2.0

package generate

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/zerosign/usagegen/pkg/diag"
	"github.com/zerosign/usagegen/pkg/docopt"
	"github.com/zerosign/usagegen/pkg/fieldname"
	"github.com/zerosign/usagegen/pkg/invocation"
)

type (
	// Field is one generated record field.
	Field struct {
		// Name is the exported Go identifier derived from the key.
		Name string
		// Key is the canonical usage key the field decodes.
		Key string
		// Type is the field's descriptor type.
		Type FieldType
	}

	// Schema is the synthesized shape of one argument record: the fields
	// in usage-descriptor order, the capability list with the decoding
	// capability first, and the documentation text the descriptor can be
	// rebuilt from.
	Schema struct {
		// Name is the record name as emitted.
		Name string
		// Public is true when the name was explicitly exported.
		Public bool
		// Capabilities holds CapabilityDecode followed by the declared
		// traits in order, duplicates preserved.
		Capabilities []Capability
		// Fields has exactly one entry per usage atom, in descriptor
		// order.
		Fields []Field
		// Doc is the full documentation text, verbatim.
		Doc string
	}
)

// Infer derives the field type for one atom from its usage facts: whether
// it repeats, whether it takes a value, and what kind of atom it is. It is
// total over that domain and never returns an opaque type.
func Infer(opts docopt.Options, kind docopt.AtomKind) FieldType {
	switch {
	case opts.Arg == docopt.ArgOne:
		if opts.Repeats {
			return SequenceOfString
		}
		return String
	case opts.Repeats:
		if kind == docopt.AtomPositional {
			return SequenceOfString
		}
		return UnsignedCount
	case kind == docopt.AtomPositional:
		return String
	default:
		return Boolean
	}
}

// Synthesize builds the record schema for a parsed invocation. The trait
// list is checked against the capability set here; an unknown trait yields
// a single diagnostic and no schema.
func Synthesize(inv *invocation.Invocation) (*Schema, *diag.Diagnostic) {
	name := inv.Struct.Name
	if inv.Struct.Public {
		name = exportedName(name)
	}

	caps := make([]Capability, 0, len(inv.Struct.Traits)+1)
	caps = append(caps, CapabilityDecode)
	for _, trait := range inv.Struct.Traits {
		c := Capability(trait)
		if ok, _ := c.IsValid(); !ok {
			return nil, &diag.Diagnostic{
				Severity: diag.SeverityError,
				Code:     diag.CodeInvalidTraitKeyword,
				Message:  fmt.Sprintf("unknown capability '%s' in deriving list", trait),
				Subject:  name,
				Cause:    ErrUnknownCapability,
			}
		}
		caps = append(caps, c)
	}

	atoms := inv.Usage.Atoms()
	fields := make([]Field, 0, len(atoms))
	for _, atom := range atoms {
		var ft FieldType
		if o, ok := inv.Override(atom.Key()); ok {
			ft = TypeFromExpr(o.Type)
		} else {
			opts, _ := inv.Usage.Options(atom)
			ft = Infer(opts, atom.Kind)
		}
		fields = append(fields, Field{
			Name: fieldname.FromKey(atom.Key()),
			Key:  atom.Key(),
			Type: ft,
		})
	}

	return &Schema{
		Name:         name,
		Public:       inv.Struct.Public,
		Capabilities: caps,
		Fields:       fields,
		Doc:          inv.Usage.Doc(),
	}, nil
}

// Has reports whether the schema carries a capability.
func (s *Schema) Has(c Capability) bool {
	for _, have := range s.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// exportedName upper-cases the first rune when it is not already upper.
func exportedName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
