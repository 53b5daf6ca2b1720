// SPDX-License-Identifier: MPL-2.0

// Package generate turns docopt-style generator invocations into argument
// record schemas and renders them as Go source.
//
// Build handles one invocation in isolation: it produces either a Schema
// or exactly one diagnostic, never both and never more, so a failing
// invocation in a batch cannot affect its siblings. RenderFile emits a
// whole batch as a single formatted file, substituting a placeholder
// comment for each failed invocation.
package generate

import (
	"github.com/zerosign/usagegen/pkg/diag"
	"github.com/zerosign/usagegen/pkg/invocation"
)

// Result is the outcome of one invocation.
type Result struct {
	// Schema is nil when the invocation failed.
	Schema *Schema
	// Diagnostics carries exactly one entry for a failed invocation and
	// is empty on success.
	Diagnostics diag.Diagnostics
}

// Build parses one invocation, validates its usage text, and synthesizes
// the record schema.
func Build(src string) Result {
	inv, d := invocation.Parse(src)
	if d != nil {
		return Result{Diagnostics: diag.Diagnostics{*d}}
	}
	schema, sd := Synthesize(inv)
	if sd != nil {
		return Result{Diagnostics: diag.Diagnostics{*sd}}
	}
	return Result{Schema: schema}
}
