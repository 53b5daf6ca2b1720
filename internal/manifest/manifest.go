// SPDX-License-Identifier: MPL-2.0

// Package manifest loads batch generation manifests.
//
// A manifest is a CUE file listing invocations to generate into a single
// output file. It is validated against the embedded #Manifest schema before
// decoding, so field typos and malformed names surface as CUE errors with
// file positions instead of failing later inside the generator.
package manifest

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/zerosign/usagegen/internal/cueutil"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

//go:embed manifest_schema.cue
var manifestSchema []byte

type (
	// Invocation is one record declaration from a manifest.
	Invocation struct {
		// Name is the record name.
		Name string `json:"name"`
		// Public exports the record regardless of the name's own casing.
		Public bool `json:"public,omitempty"`
		// Deriving lists capabilities beyond the implied decode capability.
		Deriving []string `json:"deriving,omitempty"`
		// Usage is the usage text for the record.
		Usage string `json:"usage"`
		// Overrides maps field names to Go type expressions.
		Overrides map[string]string `json:"overrides,omitempty"`
	}

	// Manifest is a parsed batch generation manifest.
	Manifest struct {
		// Package is the package clause for the output file. The CUE field
		// is named pkg because "package" opens the CUE preamble.
		Package string `json:"pkg"`
		// Output is the path of the generated file, relative to the manifest.
		Output string `json:"output"`
		// Invocations lists the records to generate, in order.
		Invocations []Invocation `json:"invocations"`
	}
)

// Source renders the invocation in directive grammar, the single input
// format the generator consumes. Overrides are emitted in sorted field
// order so the rendering is deterministic.
func (i Invocation) Source() string {
	var sb strings.Builder

	if i.Public {
		sb.WriteString("public ")
	}
	sb.WriteString(i.Name)

	if len(i.Deriving) > 0 {
		sb.WriteString(" deriving ")
		sb.WriteString(strings.Join(i.Deriving, " "))
	}

	sb.WriteString(", ")
	sb.WriteString(strconv.Quote(i.Usage))

	fields := maps.Keys(i.Overrides)
	slices.Sort(fields)
	for _, field := range fields {
		fmt.Fprintf(&sb, ", %s: %s", field, i.Overrides[field])
	}

	return sb.String()
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	result, err := cueutil.ParseAndDecode[Manifest](manifestSchema, data, "#Manifest",
		cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}

	return result.Value, nil
}

// Default returns the starter manifest written by 'usagegen init'.
func Default() *Manifest {
	return &Manifest{
		Package: "main",
		Output:  "usage_gen.go",
		Invocations: []Invocation{
			{
				Name:     "Args",
				Deriving: []string{"stringer"},
				Usage:    "Usage: prog [--verbose] <file>",
			},
		},
	}
}

// GenerateCUE generates a CUE representation of the manifest.
func GenerateCUE(m *Manifest) string {
	var sb strings.Builder

	sb.WriteString("// usagegen manifest file\n")
	sb.WriteString("// Run 'usagegen generate --manifest' against this file.\n\n")

	sb.WriteString(fmt.Sprintf("pkg:    %q\n", m.Package))
	sb.WriteString(fmt.Sprintf("output: %q\n", m.Output))

	sb.WriteString("\ninvocations: [\n")
	for _, inv := range m.Invocations {
		sb.WriteString("\t{\n")
		sb.WriteString(fmt.Sprintf("\t\tname: %q\n", inv.Name))
		if inv.Public {
			sb.WriteString("\t\tpublic: true\n")
		}
		if len(inv.Deriving) > 0 {
			sb.WriteString("\t\tderiving: [")
			for j, trait := range inv.Deriving {
				if j > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(strconv.Quote(trait))
			}
			sb.WriteString("]\n")
		}
		sb.WriteString(fmt.Sprintf("\t\tusage: %q\n", inv.Usage))
		if len(inv.Overrides) > 0 {
			sb.WriteString("\t\toverrides: {\n")
			fields := maps.Keys(inv.Overrides)
			slices.Sort(fields)
			for _, field := range fields {
				sb.WriteString(fmt.Sprintf("\t\t\t%q: %q\n", field, inv.Overrides[field]))
			}
			sb.WriteString("\t\t}\n")
		}
		sb.WriteString("\t},\n")
	}
	sb.WriteString("]\n")

	return sb.String()
}
