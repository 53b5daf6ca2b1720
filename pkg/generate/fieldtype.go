// SPDX-License-Identifier: MPL-2.0

package generate

import (
	"errors"
	"fmt"
)

const (
	// KindBoolean is a presence flag.
	KindBoolean TypeKind = "boolean"
	// KindString is a single string value.
	KindString TypeKind = "string"
	// KindUnsignedCount counts repetitions of a value-less atom.
	KindUnsignedCount TypeKind = "unsigned_count"
	// KindSequenceOfString collects repeated values in order.
	KindSequenceOfString TypeKind = "string_sequence"
	// KindOpaque is a caller-supplied override type, carried verbatim.
	KindOpaque TypeKind = "opaque"
)

// ErrUnknownTypeKind indicates a type kind outside the defined sum.
var ErrUnknownTypeKind = errors.New("unknown field type kind")

type (
	// TypeKind names one variant of the descriptor type sum.
	TypeKind string

	// FieldType is the type of one generated record field. The sum is
	// closed: the four canonical variants plus Opaque for overrides the
	// generator passes through untouched.
	FieldType struct {
		Kind TypeKind
		// Name is the rendered Go type for opaque overrides, empty for
		// the canonical variants.
		Name string
	}
)

var (
	// Boolean is the field type of a non-repeating value-less option or
	// command.
	Boolean = FieldType{Kind: KindBoolean}
	// String is the field type of a single positional or option value.
	String = FieldType{Kind: KindString}
	// UnsignedCount is the field type of a repeating value-less option or
	// command.
	UnsignedCount = FieldType{Kind: KindUnsignedCount}
	// SequenceOfString is the field type of repeating values.
	SequenceOfString = FieldType{Kind: KindSequenceOfString}
)

// Opaque wraps a caller-supplied type expression the generator emits
// verbatim. Resolving the expression's imports is the caller's concern,
// just as an override type had to be in scope at the original use site.
func Opaque(name string) FieldType {
	return FieldType{Kind: KindOpaque, Name: name}
}

// TypeFromExpr folds a rendered Go type expression into the descriptor
// type sum. The four canonical spellings map to their closed variants;
// anything else is carried opaquely.
func TypeFromExpr(expr string) FieldType {
	switch expr {
	case "bool":
		return Boolean
	case "string":
		return String
	case "uint":
		return UnsignedCount
	case "[]string":
		return SequenceOfString
	default:
		return Opaque(expr)
	}
}

// IsValid returns whether the TypeKind is one of the defined variants,
// and a list of validation errors if it is not.
func (k TypeKind) IsValid() (bool, []error) {
	switch k {
	case KindBoolean, KindString, KindUnsignedCount, KindSequenceOfString, KindOpaque:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrUnknownTypeKind, k)}
	}
}

// Go returns the Go spelling of the type.
func (t FieldType) Go() string {
	switch t.Kind {
	case KindBoolean:
		return "bool"
	case KindString:
		return "string"
	case KindUnsignedCount:
		return "uint"
	case KindSequenceOfString:
		return "[]string"
	default:
		return t.Name
	}
}

// String returns the Go spelling.
func (t FieldType) String() string { return t.Go() }
