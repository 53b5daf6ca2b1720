// SPDX-License-Identifier: MPL-2.0

package docopt

import (
	"fmt"
	"regexp"
	"strings"
)

// optionDecl is one option declaration from an options section, or an
// option first sighted inside a usage pattern. Long and Short carry the
// dashed spellings; either may be empty.
type optionDecl struct {
	short    string
	long     string
	argcount int
	def      string
	declared bool // true when it came from an options section
}

// canonical returns the atom spelling for the declaration: the long form
// when one exists, else the short form.
func (d *optionDecl) canonical() string {
	if d.long != "" {
		return d.long
	}
	return d.short
}

// sections returns the body of every section with the given case-insensitive
// header name (e.g. "usage:", "options:"). A section body is the text after
// the header name on its line plus every following non-blank line that
// starts with a space or tab.
func sections(name, doc string) []string {
	var out []string
	lines := strings.Split(doc, "\n")
	for i := 0; i < len(lines); i++ {
		idx := strings.Index(strings.ToLower(lines[i]), name)
		if idx < 0 {
			continue
		}
		body := []string{lines[i][idx+len(name):]}
		for i+1 < len(lines) {
			next := lines[i+1]
			if strings.TrimSpace(next) == "" || (next[0] != ' ' && next[0] != '\t') {
				break
			}
			body = append(body, next)
			i++
		}
		out = append(out, strings.Join(body, "\n"))
	}
	return out
}

// usageSection extracts the single usage section body. Zero or more than
// one usage header is a validation error.
func usageSection(doc string) (string, error) {
	switch n := strings.Count(strings.ToLower(doc), "usage:"); {
	case n == 0:
		return "", &UsageError{Message: `"usage:" (case-insensitive) not found`}
	case n > 1:
		return "", &UsageError{Message: `more than one "usage:" (case-insensitive) section`}
	}
	sec := sections("usage:", doc)
	if len(sec) == 0 {
		return "", &UsageError{Message: `"usage:" (case-insensitive) not found`}
	}
	if strings.TrimSpace(sec[0]) == "" {
		return "", &UsageError{Message: "empty usage section"}
	}
	return sec[0], nil
}

var defaultPattern = regexp.MustCompile(`(?i)\[default: (.*)\]`)

// parseOptionDecls reads every options section and returns the declared
// options in declaration order. An option line starts (after indentation)
// with a dash; subsequent non-option lines continue its description. The
// synopsis part runs up to the first two-space gap; within it, commas and
// equals signs separate spellings, and any bare word marks a one-value
// arity. Defaults come from a trailing `[default: ...]` in the description.
func parseOptionDecls(doc string) ([]*optionDecl, error) {
	var decls []*optionDecl
	byName := map[string]*optionDecl{}

	for _, sec := range sections("options:", doc) {
		for _, chunk := range splitOptionChunks(sec) {
			d, err := parseOptionDecl(chunk)
			if err != nil {
				return nil, err
			}
			for _, spelling := range []string{d.short, d.long} {
				if spelling == "" {
					continue
				}
				if prev, ok := byName[spelling]; ok {
					if prev.argcount != d.argcount || prev.long != d.long || prev.short != d.short {
						return nil, &UsageError{Message: fmt.Sprintf("option %s declared twice with conflicting forms", spelling)}
					}
					continue
				}
				byName[spelling] = d
			}
			if byName[d.canonical()] == d {
				decls = append(decls, d)
			}
		}
	}
	return decls, nil
}

// splitOptionChunks splits an options-section body into one chunk per
// declared option. A chunk begins at a line whose first non-space rune is
// a dash and extends through its continuation lines.
func splitOptionChunks(sec string) []string {
	var chunks []string
	var cur []string
	for _, line := range strings.Split(sec, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-") {
			if len(cur) > 0 {
				chunks = append(chunks, strings.Join(cur, "\n"))
			}
			cur = []string{trimmed}
			continue
		}
		if len(cur) > 0 && trimmed != "" {
			cur = append(cur, trimmed)
		}
	}
	if len(cur) > 0 {
		chunks = append(chunks, strings.Join(cur, "\n"))
	}
	return chunks
}

// parseOptionDecl parses one option chunk like
// "-s, --speed <kn>  Maximum speed [default: 10]".
func parseOptionDecl(chunk string) (*optionDecl, error) {
	synopsis, description, found := strings.Cut(chunk, "  ")
	if !found {
		if nl, rest, ok := strings.Cut(chunk, "\n"); ok {
			synopsis, description = nl, rest
		}
	}

	d := &optionDecl{declared: true}
	cleaned := strings.NewReplacer(",", " ", "=", " ").Replace(synopsis)
	for _, w := range strings.Fields(cleaned) {
		switch {
		case strings.HasPrefix(w, "--"):
			d.long = w
		case strings.HasPrefix(w, "-"):
			d.short = w
		default:
			d.argcount = 1
		}
	}
	if d.short == "" && d.long == "" {
		return nil, &UsageError{Message: fmt.Sprintf("malformed option description %q", synopsis)}
	}
	if d.argcount == 1 {
		if m := defaultPattern.FindStringSubmatch(description); m != nil {
			d.def = m[1]
		}
	}
	return d, nil
}
