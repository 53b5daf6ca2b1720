// SPDX-License-Identifier: MPL-2.0

// Package directive locates usagegen generate directives in Go sources.
//
// A directive is a line comment starting exactly with the //usagegen:generate
// marker. The rest of the line is the invocation text, and every following
// line of the same comment group extends it, joined with newlines, so raw
// string literals inside an invocation can span lines:
//
//	//usagegen:generate Args, `Usage: prog ship <name> move <x> <y>
//	//       prog ship shoot <x> <y>`
//
// Block comments are never directives. Continuation lines are taken
// verbatim after stripping the comment marker and one leading space.
package directive

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Marker opens a generate directive. Like other Go tool directives there is
// no space between the comment slashes and the marker word.
const Marker = "//usagegen:generate"

type (
	// Directive is one generate invocation found in a source file.
	Directive struct {
		// File is the path of the source file the directive came from.
		File string
		// Line is the 1-based line of the marker comment.
		Line int
		// Text is the invocation text with continuation lines joined by newlines.
		Text string
	}

	// File holds the directives of one scanned source file together with
	// the metadata the generated counterpart needs.
	File struct {
		// Path is the scanned source file path.
		Path string
		// Package is the package clause of the scanned file, reused for output.
		Package string
		// Directives lists the generate directives in source order.
		Directives []Directive
	}
)

// MapPos rebases a "line:column" position inside the directive text onto the
// scanned file, where line 1 of the text is the marker line itself. Columns
// stay relative to the invocation text. Positions that do not parse fall
// back to the marker location.
func (d Directive) MapPos(pos string) string {
	lineStr, colStr, ok := strings.Cut(pos, ":")
	if !ok {
		return fmt.Sprintf("%s:%d", d.File, d.Line)
	}
	line, err := strconv.Atoi(lineStr)
	if err != nil {
		return fmt.Sprintf("%s:%d", d.File, d.Line)
	}
	return fmt.Sprintf("%s:%d:%s", d.File, d.Line+line-1, colStr)
}

// OutputPath returns the path of the generated counterpart for the scanned
// file: the source base name with its ".go" extension replaced by suffix.
func (f *File) OutputPath(suffix string) string {
	return strings.TrimSuffix(f.Path, ".go") + suffix
}

// ParseFile reads and scans one Go source file.
func ParseFile(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseSource(path, src)
}

// ParseSource scans Go source held in memory. The path is recorded in the
// result and used for positions only.
func ParseSource(path string, src []byte) (*File, error) {
	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, path, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	f := &File{
		Path:    path,
		Package: parsed.Name.Name,
	}

	for _, group := range parsed.Comments {
		var cur *Directive
		for _, c := range group.List {
			text := c.Text
			if !strings.HasPrefix(text, "//") {
				// Block comments neither open nor continue a directive.
				cur = nil
				continue
			}

			if rest, ok := cutMarker(text); ok {
				f.Directives = append(f.Directives, Directive{
					File: path,
					Line: fset.Position(c.Pos()).Line,
					Text: rest,
				})
				cur = &f.Directives[len(f.Directives)-1]
				continue
			}

			if cur != nil {
				line := strings.TrimPrefix(text, "//")
				line = strings.TrimPrefix(line, " ")
				cur.Text += "\n" + line
			}
		}
	}

	return f, nil
}

// cutMarker splits a marker line into its invocation text. The marker must
// be followed by whitespace or end-of-line so that words merely sharing the
// prefix do not match.
func cutMarker(text string) (string, bool) {
	rest, ok := strings.CutPrefix(text, Marker)
	if !ok {
		return "", false
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// Scan collects directive files from a path. A directory is scanned
// non-recursively over its .go files, skipping test files and previously
// generated outputs (names ending in skipSuffix). A single file is scanned
// unconditionally. Files without directives are dropped; a nil slice with a
// nil error means nothing to generate.
func Scan(path string, skipSuffix string) ([]*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}

	if !info.IsDir() {
		f, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		if len(f.Directives) == 0 {
			return nil, nil
		}
		return []*File{f}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}

	var files []*File
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		if skipSuffix != "" && strings.HasSuffix(name, skipSuffix) {
			continue
		}
		f, err := ParseFile(filepath.Join(path, name))
		if err != nil {
			return nil, err
		}
		if len(f.Directives) > 0 {
			files = append(files, f)
		}
	}

	return files, nil
}
