// SPDX-License-Identifier: MPL-2.0

package generate

import (
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zerosign/usagegen/pkg/diag"
	"github.com/zerosign/usagegen/pkg/docopt"
)

// docoptImportPath is the import generated files use for the descriptor
// factory.
const docoptImportPath = "github.com/zerosign/usagegen/pkg/docopt"

type (
	// RenderOption configures RenderFile.
	RenderOption func(*renderOptions)

	renderOptions struct {
		headerNote string
	}
)

// WithHeaderNote adds an extra comment line under the generated-code
// header. Multi-line notes are rejected at configuration load; a note
// containing a newline here would break the header block.
func WithHeaderNote(note string) RenderOption {
	return func(o *renderOptions) { o.headerNote = note }
}

// RenderFile renders a batch of generation results into one formatted Go
// source file. Failed invocations contribute a placeholder comment instead
// of a record, so one bad invocation never poisons its siblings' output.
//
// Before emitting a record the renderer re-parses its stored usage text
// and checks the descriptor still matches the schema; a mismatch is an
// internal consistency fault, returned as a fatal diagnostic. Succeeding
// here therefore implies the generated factory cannot fail at runtime.
func RenderFile(pkgName string, results []Result, opts ...RenderOption) ([]byte, error) {
	var ro renderOptions
	for _, opt := range opts {
		opt(&ro)
	}

	var b strings.Builder
	b.WriteString("// Code generated by usagegen. DO NOT EDIT.\n")
	if ro.headerNote != "" {
		fmt.Fprintf(&b, "// %s\n", ro.headerNote)
	}
	fmt.Fprintf(&b, "\npackage %s\n", pkgName)

	needDocopt := false
	needFmt := false
	for _, r := range results {
		if r.Schema == nil {
			continue
		}
		needDocopt = true
		if r.Schema.Has(CapabilityStringer) && len(r.Schema.Fields) > 0 {
			needFmt = true
		}
	}
	var imps []string
	if needFmt {
		imps = append(imps, strconv.Quote("fmt"))
	}
	if needDocopt {
		imps = append(imps, strconv.Quote(docoptImportPath))
	}
	switch len(imps) {
	case 0:
	case 1:
		fmt.Fprintf(&b, "\nimport %s\n", imps[0])
	default:
		b.WriteString("\nimport (\n")
		for _, imp := range imps {
			fmt.Fprintf(&b, "\t%s\n", imp)
		}
		b.WriteString(")\n")
	}

	for _, r := range results {
		if r.Schema == nil {
			renderPlaceholder(&b, r.Diagnostics)
			continue
		}
		if d := consistency(r.Schema); d != nil {
			return nil, *d
		}
		renderSchema(&b, r.Schema)
	}

	out, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, diag.Diagnostic{
			Severity: diag.SeverityFatal,
			Code:     diag.CodeInternalConsistency,
			Message:  fmt.Sprintf("generated source failed to format: %v", err),
			Cause:    err,
		}
	}
	return out, nil
}

// consistency re-parses the stored documentation text and checks it still
// yields the synthesized descriptor.
func consistency(s *Schema) *diag.Diagnostic {
	fault := func(msg string, cause error) *diag.Diagnostic {
		return &diag.Diagnostic{
			Severity: diag.SeverityFatal,
			Code:     diag.CodeInternalConsistency,
			Message:  msg,
			Subject:  s.Name,
			Cause:    cause,
		}
	}

	u, err := docopt.Parse(s.Doc)
	if err != nil {
		return fault(fmt.Sprintf("stored usage text no longer parses: %v", err), err)
	}
	atoms := u.Atoms()
	if len(atoms) != len(s.Fields) {
		return fault(fmt.Sprintf("stored usage text yields %d atoms, schema has %d fields", len(atoms), len(s.Fields)), nil)
	}
	for i, atom := range atoms {
		if atom.Key() != s.Fields[i].Key {
			return fault(fmt.Sprintf("descriptor key %q does not match schema field key %q", atom.Key(), s.Fields[i].Key), nil)
		}
	}
	return nil
}

func renderPlaceholder(b *strings.Builder, ds diag.Diagnostics) {
	name := ""
	if len(ds) > 0 {
		name = ds[0].Subject
	}
	if name != "" {
		fmt.Fprintf(b, "\n// usagegen: generation of %s failed; see reported diagnostics.\n", name)
		return
	}
	b.WriteString("\n// usagegen: generation failed; see reported diagnostics.\n")
}

func renderSchema(b *strings.Builder, s *Schema) {
	recv := receiverName(s.Name)

	fmt.Fprintf(b, "\n// %s holds the arguments declared by its usage text.\n", s.Name)
	for _, c := range s.Capabilities {
		if c.IsExtension() {
			fmt.Fprintf(b, "//usagegen:capability %s\n", c)
		}
	}
	// Field names are derived from usage keys and may violate naming
	// lint.
	b.WriteString("//nolint:revive,staticcheck\n")
	fmt.Fprintf(b, "type %s struct {\n", s.Name)
	for _, f := range s.Fields {
		tag := fmt.Sprintf("docopt:%q", f.Key)
		if s.Has(CapabilityJSON) {
			tag += fmt.Sprintf(" json:%q", tagName(f.Key))
		}
		if s.Has(CapabilityYAML) {
			tag += fmt.Sprintf(" yaml:%q", tagName(f.Key))
		}
		fmt.Fprintf(b, "\t%s %s `%s`\n", f.Name, f.Type.Go(), tag)
	}
	b.WriteString("}\n")

	fmt.Fprintf(b, "\n// %sUsage is the documentation text %s rebuilds its descriptor from.\n", s.Name, s.Name)
	fmt.Fprintf(b, "const %sUsage = %s\n", s.Name, strconv.Quote(s.Doc))

	b.WriteString("\n// Usage reconstructs the argument descriptor from the stored text. It\n")
	b.WriteString("// panics when the text no longer parses: generation verified it once,\n")
	b.WriteString("// so a failure here means the binary and the text went out of sync.\n")
	fmt.Fprintf(b, "func (%s %s) Usage() *docopt.Usage {\n", recv, s.Name)
	fmt.Fprintf(b, "\tu, err := docopt.Parse(%sUsage)\n", s.Name)
	b.WriteString("\tif err != nil {\n")
	b.WriteString("\t\tpanic(\"usagegen: internal consistency fault: \" + err.Error())\n")
	b.WriteString("\t}\n")
	b.WriteString("\treturn u\n")
	b.WriteString("}\n")

	if s.Has(CapabilityStringer) {
		renderStringer(b, s, recv)
	}
}

func renderStringer(b *strings.Builder, s *Schema, recv string) {
	b.WriteString("\n// String summarizes the record fields.\n")
	fmt.Fprintf(b, "func (%s %s) String() string {\n", recv, s.Name)
	if len(s.Fields) == 0 {
		fmt.Fprintf(b, "\treturn %q\n", s.Name+"{}")
		b.WriteString("}\n")
		return
	}

	verbs := make([]string, 0, len(s.Fields))
	args := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		verbs = append(verbs, f.Name+": %v")
		args = append(args, recv+"."+f.Name)
	}
	layout := s.Name + "{" + strings.Join(verbs, ", ") + "}"
	fmt.Fprintf(b, "\treturn fmt.Sprintf(%s, %s)\n", strconv.Quote(layout), strings.Join(args, ", "))
	b.WriteString("}\n")
}

// tagName strips a usage key down to its bare name for json/yaml tags.
func tagName(key string) string {
	switch {
	case strings.HasPrefix(key, "--"):
		return key[2:]
	case strings.HasPrefix(key, "-"):
		return key[1:]
	case strings.HasPrefix(key, "<"):
		return strings.TrimSuffix(key[1:], ">")
	default:
		return key
	}
}

// receiverName picks a one-letter receiver from the record name.
func receiverName(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	lr := unicode.ToLower(r)
	if !unicode.IsLetter(lr) {
		return "r"
	}
	return string(lr)
}
