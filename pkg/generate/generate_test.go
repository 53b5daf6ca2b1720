// SPDX-License-Identifier: MPL-2.0

package generate

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zerosign/usagegen/pkg/diag"
	"github.com/zerosign/usagegen/pkg/docopt"
)

func TestBuildEndToEnd(t *testing.T) {
	t.Parallel()

	const usage = "Usage: prog [--verbose] <file>"
	r := Build(`Args, "` + usage + `"`)
	if len(r.Diagnostics) != 0 {
		t.Fatalf("Build() diagnostics = %v, want none", r.Diagnostics)
	}
	if r.Schema == nil {
		t.Fatal("Build() schema = nil, want one")
	}

	want := []Field{
		{Name: "FlagVerbose", Key: "--verbose", Type: Boolean},
		{Name: "ArgFile", Key: "<file>", Type: String},
	}
	if diff := cmp.Diff(want, r.Schema.Fields); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Capability{CapabilityDecode}, r.Schema.Capabilities); diff != "" {
		t.Errorf("Capabilities mismatch (-want +got):\n%s", diff)
	}
	if r.Schema.Doc != usage {
		t.Errorf("Doc = %q, want %q", r.Schema.Doc, usage)
	}

	// The stored text must reconstruct the same descriptor the schema was
	// built from, which is what the generated factory does at runtime.
	u, err := docopt.Parse(r.Schema.Doc)
	if err != nil {
		t.Fatalf("Parse(Doc) error = %v, want nil", err)
	}
	atoms := u.Atoms()
	if len(atoms) != len(r.Schema.Fields) {
		t.Fatalf("reconstructed atoms = %d, fields = %d, want equal", len(atoms), len(r.Schema.Fields))
	}
	for i, atom := range atoms {
		if atom.Key() != r.Schema.Fields[i].Key {
			t.Errorf("reconstructed key[%d] = %q, want %q", i, atom.Key(), r.Schema.Fields[i].Key)
		}
	}
}

func TestBuildFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{
			name: "empty invocation",
			src:  ``,
			code: diag.CodeMissingArgument,
		},
		{
			name: "misspelled deriving keyword",
			src:  `Args derivng Foo, "Usage: prog"`,
			code: diag.CodeInvalidTraitKeyword,
		},
		{
			name: "unknown capability",
			src:  `Args deriving Clone, "Usage: prog"`,
			code: diag.CodeInvalidTraitKeyword,
		},
		{
			name: "usage argument is not a literal",
			src:  `Args, usageText`,
			code: diag.CodeNotAStringLiteral,
		},
		{
			name: "usage text rejected by the validator",
			src:  `Args, "no usage here"`,
			code: diag.CodeInvalidUsageSpecification,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := Build(tt.src)
			if r.Schema != nil {
				t.Fatalf("Build() schema = %+v, want nil", r.Schema)
			}
			if len(r.Diagnostics) != 1 {
				t.Fatalf("Build() diagnostics = %v, want exactly one", r.Diagnostics)
			}
			if got := r.Diagnostics[0].Code; got != tt.code {
				t.Errorf("Code = %q, want %q", got, tt.code)
			}
		})
	}
}

// TestBatchIsolation checks that one failing invocation neither blocks nor
// contaminates the records generated for its siblings.
func TestBatchIsolation(t *testing.T) {
	t.Parallel()

	srcs := []string{
		`First, "Usage: prog [-a]"`,
		`Second derivng Broken, "Usage: prog"`,
		`Third, "Usage: prog <path>..."`,
	}
	results := make([]Result, 0, len(srcs))
	for _, src := range srcs {
		results = append(results, Build(src))
	}

	if results[0].Schema == nil || results[2].Schema == nil {
		t.Fatalf("sibling schemas = %v, %v, want both built", results[0].Schema, results[2].Schema)
	}
	if results[1].Schema != nil || len(results[1].Diagnostics) != 1 {
		t.Fatalf("failed result = %+v, want one diagnostic and no schema", results[1])
	}

	out, err := RenderFile("cli", results)
	if err != nil {
		t.Fatalf("RenderFile() error = %v, want nil", err)
	}
	src := string(out)
	if !strings.Contains(src, "type First struct") || !strings.Contains(src, "type Third struct") {
		t.Errorf("sibling records missing:\n%s", src)
	}
	if !strings.Contains(src, "// usagegen: generation of Second failed; see reported diagnostics.") {
		t.Errorf("placeholder for failed invocation missing:\n%s", src)
	}
	if strings.Contains(src, "Broken") {
		t.Errorf("failed invocation leaked into output:\n%s", src)
	}
}
