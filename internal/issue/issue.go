// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	MissingArgumentId Id = iota + 1
	UnexpectedTokenId
	InvalidTraitKeywordId
	NotAStringLiteralId
	InvalidUsageSpecificationId
	InternalConsistencyId
	ConfigLoadFailedId
	ManifestParseErrorId
	NoInvocationsFoundId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

// Issue is an explain page for one failure class. The code slug matches the
// diagnostic code emitted by the generator where one exists, so that
// 'usagegen explain <code>' resolves directly from a reported diagnostic.
type Issue struct {
	id       Id          // ID used to look up the issue
	code     string      // user-facing slug, matches diagnostic codes where applicable
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // project documentation links
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) Code() string {
	return i.code
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	missingArgumentIssue = &Issue{
		id:   MissingArgumentId,
		code: "missing_argument",
		mdMsg: `
# Invocation ended too early!

A generate directive stopped before all required parts were given. Every
invocation needs at least a record name and a usage string.

## Required shape:
~~~
//usagegen:generate [public] Name [deriving Trait ...], "usage string" [, Field: Type ...]
~~~

## Things you can try:
- Add the missing usage string after the record name:
~~~
//usagegen:generate Args, "Usage: prog [--verbose] <file>"
~~~

- If the invocation spans several comment lines, check that the continuation
  lines are part of the same comment group (no blank line in between)
- Check for a trailing comma with nothing after it`,
	}

	unexpectedTokenIssue = &Issue{
		id:   UnexpectedTokenId,
		code: "unexpected_token",
		mdMsg: `
# Unexpected token in invocation!

The invocation contains a token that does not fit the grammar at that
position.

## Common causes:
- A semicolon inside the invocation (use commas between parts)
- A missing comma between the record name and the usage string
- A field override without a ':' between field name and type
- A field override whose type is not a valid Go type expression

## Things you can try:
- Compare against the expected shape:
~~~
//usagegen:generate Args deriving json, "Usage: prog <file>", ArgFile: mypkg.Path
~~~

- Remove stray punctuation between parts`,
	}

	invalidTraitKeywordIssue = &Issue{
		id:   InvalidTraitKeywordId,
		code: "invalid_trait_keyword",
		mdMsg: `
# Unknown word in capability position!

The word after the record name was not 'deriving', or the deriving list
names a capability the generator does not know.

## Known capabilities:
- decode (always present, implied)
- stringer
- json
- yaml
- x_<name> for external extensions

## Things you can try:
- Check the spelling of 'deriving'
- Check each capability name against the list above:
~~~
//usagegen:generate Args deriving stringer json, "Usage: prog <file>"
~~~

- Prefix custom capability names with x_ so downstream tooling can claim them`,
	}

	notAStringLiteralIssue = &Issue{
		id:   NotAStringLiteralId,
		code: "not_a_string_literal",
		mdMsg: `
# Usage argument is not a string constant!

The second invocation argument must fold to a string at generation time.
Variables, function calls, and non-string expressions are rejected.

## Accepted forms:
- A plain string literal: ` + "`\"Usage: prog\"`" + `
- A raw string literal: ` + "`` `Usage: prog` ``" + `
- Concatenation of string constants: ` + "`\"Usage: prog \" + \"[--fast]\"`" + `
- Any of the above in parentheses

## Things you can try:
- Inline the usage text instead of referring to a variable
- Split long usage text across lines with '+' concatenation:
~~~
//usagegen:generate Args, "Usage: prog ship <name> move <x> <y>\n" +
//                        "       prog ship shoot <x> <y>"
~~~`,
	}

	invalidUsageSpecificationIssue = &Issue{
		id:   InvalidUsageSpecificationId,
		code: "invalid_usage_specification",
		mdMsg: `
# Usage text rejected!

The usage string did not validate. The message after the colon comes from
the usage validator and points at the offending construct.

## Structural rules:
- Exactly one "usage:" section (case-insensitive)
- Option descriptions live in lines starting with '-' after the usage section
- An option taking a value needs '=<arg>' or a ' <ARG>' in its description line

## Name rules:
- Long options: ` + "`--kebab-case`" + `, at least two characters
- Short options: a single lowercase letter, like ` + "`-v`" + `
- Positionals: ` + "`<kebab-case>`" + ` or at least two ALL-CAPS letters, like ` + "`FILE`" + `
- Commands: bare kebab-case words

## Things you can try:
- Start the text with "Usage: prog ..."
- Rename arguments that mix the shapes above`,
		extLinks: []HttpLink{"http://docopt.org"},
	}

	internalConsistencyIssue = &Issue{
		id:   InternalConsistencyId,
		code: "internal_consistency",
		mdMsg: `
# Internal consistency fault!

The generator validated a usage text once, then failed to reproduce the same
descriptor from the stored copy. This is a bug in usagegen, not in your
invocation.

## Things you can try:
- Re-run the generation; if the fault persists, the stored text and the
  validator disagree
- Check that the generated file was not edited by hand
- Report the usage text that triggered the fault`,
	}

	configLoadFailedIssue = &Issue{
		id:   ConfigLoadFailedId,
		code: "config_load_failed",
		mdMsg: `
# Failed to load configuration!

Your config file could not be loaded or contains invalid values.

## Config file locations (in order of precedence):
1. Path given via --config
2. ~/.config/usagegen/config.cue (or platform equivalent)
3. config.cue in the current directory

## Things you can try:
- Check the CUE syntax of your config file
- See the effective configuration:
~~~
$ usagegen config show
~~~

- Write a fresh default config:
~~~
$ usagegen config init
~~~`,
	}

	manifestParseErrorIssue = &Issue{
		id:   ManifestParseErrorId,
		code: "manifest_parse_error",
		mdMsg: `
# Failed to parse manifest!

The manifest file contains syntax errors or invalid fields.

## Things you can try:
- Check the error message above for the specific line/column
- Create a starter manifest:
~~~
$ usagegen init
~~~

## Example of a valid manifest:
~~~cue
pkg:    "main"
output: "usage_gen.go"

invocations: [
	{
		name:  "Args"
		usage: "Usage: prog [--verbose] <file>"
	},
]
~~~`,
	}

	noInvocationsFoundIssue = &Issue{
		id:   NoInvocationsFoundId,
		code: "no_invocations_found",
		mdMsg: `
# No generate directives found!

The scanned sources contain no usagegen directives, so there is nothing to
generate.

## Things you can try:
- Add a directive above the spot where the record should live:
~~~go
//usagegen:generate Args, "Usage: prog [--verbose] <file>"
~~~

- Check the directive spelling: it must start exactly with ` + "`//usagegen:generate`" + `
- Check that you scanned the right files or directory`,
	}

	issues = map[Id]*Issue{
		missingArgumentIssue.Id():           missingArgumentIssue,
		unexpectedTokenIssue.Id():           unexpectedTokenIssue,
		invalidTraitKeywordIssue.Id():       invalidTraitKeywordIssue,
		notAStringLiteralIssue.Id():         notAStringLiteralIssue,
		invalidUsageSpecificationIssue.Id(): invalidUsageSpecificationIssue,
		internalConsistencyIssue.Id():       internalConsistencyIssue,
		configLoadFailedIssue.Id():          configLoadFailedIssue,
		manifestParseErrorIssue.Id():        manifestParseErrorIssue,
		noInvocationsFoundIssue.Id():        noInvocationsFoundIssue,
	}
)

// Values returns all registered issues ordered by id.
func Values() []*Issue {
	all := maps.Values(issues)
	slices.SortFunc(all, func(a, b *Issue) int {
		return int(a.id) - int(b.id)
	})
	return all
}

func Get(id Id) *Issue {
	return issues[id]
}

// ForCode resolves an issue by its code slug. Returns nil when the code is
// unknown.
func ForCode(code string) *Issue {
	for _, i := range issues {
		if i.code == code {
			return i
		}
	}
	return nil
}
