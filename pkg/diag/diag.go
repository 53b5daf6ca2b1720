// SPDX-License-Identifier: MPL-2.0

// Package diag defines the structured diagnostics produced while turning
// generator invocations into argument-record schemas. Diagnostics are
// returned to callers (rather than written to stderr) for consistent
// rendering policy.
package diag

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// SeverityWarning indicates a recoverable generation warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a per-invocation error; sibling invocations
	// in the same batch are unaffected.
	SeverityError Severity = "error"
	// SeverityFatal indicates an internal consistency fault. Generation
	// cannot vouch for its own output and the whole batch is suspect.
	SeverityFatal Severity = "fatal"
)

const (
	// CodeMissingArgument reports an invocation that ended before a
	// required grammar element.
	CodeMissingArgument Code = "missing_argument"
	// CodeUnexpectedToken reports a token that does not fit the invocation
	// grammar at its position.
	CodeUnexpectedToken Code = "unexpected_token"
	// CodeInvalidTraitKeyword reports a malformed or unknown capability
	// list in the deriving clause.
	CodeInvalidTraitKeyword Code = "invalid_trait_keyword"
	// CodeNotAStringLiteral reports a usage argument that did not evaluate
	// to a string literal.
	CodeNotAStringLiteral Code = "not_a_string_literal"
	// CodeInvalidUsageSpecification reports a usage text rejected by the
	// usage validator; the validator's description is carried verbatim.
	CodeInvalidUsageSpecification Code = "invalid_usage_specification"
	// CodeInternalConsistency reports that a just-synthesized schema
	// failed its own factory check.
	CodeInternalConsistency Code = "internal_consistency"
)

var (
	// ErrUnknownSeverity indicates a severity outside the defined set.
	ErrUnknownSeverity = errors.New("unknown diagnostic severity")
	// ErrUnknownCode indicates a diagnostic code outside the defined set.
	ErrUnknownCode = errors.New("unknown diagnostic code")
)

type (
	// Severity represents the diagnostic level.
	Severity string

	// Code is a machine-readable diagnostic identifier. Codes are stable
	// and documented; `usagegen explain <code>` renders the long-form
	// description.
	Code string

	// Diagnostic represents one structured generation finding.
	Diagnostic struct {
		// Severity is the diagnostic level (warning, error, or fatal).
		Severity Severity
		// Code is the machine-readable identifier (e.g., "missing_argument").
		Code Code
		// Message is the human-readable description.
		Message string
		// Subject is the name of the argument record the invocation was
		// declaring, when parsing got far enough to know it (optional).
		Subject string
		// Pos is the source position of the invocation (optional).
		Pos string
		// Cause is the underlying error (optional, for programmatic
		// inspection).
		Cause error
	}

	// Diagnostics is an ordered collection of findings from one generation
	// request. It implements error so a failed request can surface its
	// findings through a plain error return.
	Diagnostics []Diagnostic
)

// IsValid returns whether the Severity is one of the defined levels,
// and a list of validation errors if it is not.
func (s Severity) IsValid() (bool, []error) {
	switch s {
	case SeverityWarning, SeverityError, SeverityFatal:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrUnknownSeverity, s)}
	}
}

// String returns the severity name.
func (s Severity) String() string { return string(s) }

// IsValid returns whether the Code is one of the defined identifiers,
// and a list of validation errors if it is not.
func (c Code) IsValid() (bool, []error) {
	switch c {
	case CodeMissingArgument, CodeUnexpectedToken, CodeInvalidTraitKeyword,
		CodeNotAStringLiteral, CodeInvalidUsageSpecification, CodeInternalConsistency:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrUnknownCode, c)}
	}
}

// String returns the code identifier.
func (c Code) String() string { return string(c) }

// Error renders the diagnostic in compiler style:
// "error: <subject>: <message>".
func (d Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString(string(d.Severity))
	b.WriteString(": ")
	if d.Subject != "" {
		b.WriteString(d.Subject)
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (d Diagnostic) Unwrap() error { return d.Cause }

// HasErrors reports whether any diagnostic is error-level or worse.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError || d.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// HasFatal reports whether any diagnostic is fatal.
func (ds Diagnostics) HasFatal() bool {
	for _, d := range ds {
		if d.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// Error joins the individual findings with "; ".
func (ds Diagnostics) Error() string {
	msgs := make([]string, 0, len(ds))
	for _, d := range ds {
		msgs = append(msgs, d.Error())
	}
	return strings.Join(msgs, "; ")
}
