// SPDX-License-Identifier: MPL-2.0

// Package fieldname maps usage-pattern keys to generated struct field
// identifiers and back.
//
// The two transforms are mutually consistent: ToKey(FromKey(k)) == k for
// every key the usage validator can produce (lowercase kebab-case names,
// single-letter shorts, ALL-CAPS positionals). Field identifiers are always
// exported.
package fieldname

import "strings"

const (
	flagPrefix = "Flag"
	argPrefix  = "Arg"
	cmdPrefix  = "Cmd"
)

// FromKey derives the generated field identifier for a canonical atom key.
//
//	--dry-run  -> FlagDryRun
//	-v         -> FlagV
//	<file>     -> ArgFile
//	FILE       -> ArgFILE
//	build      -> CmdBuild
func FromKey(key string) string {
	switch {
	case strings.HasPrefix(key, "--"):
		return flagPrefix + camel(key[2:])
	case strings.HasPrefix(key, "-") && len(key) > 1:
		return flagPrefix + strings.ToUpper(key[1:])
	case strings.HasPrefix(key, "<") && strings.HasSuffix(key, ">") && len(key) > 2:
		return argPrefix + camel(key[1:len(key)-1])
	case isCaps(key):
		return argPrefix + key
	default:
		return cmdPrefix + camel(key)
	}
}

// ToKey is the inverse of FromKey. It is total: identifiers without a
// recognized prefix map to a command-style key, which simply matches no
// atom when no such command exists.
func ToKey(ident string) string {
	switch {
	case strings.HasPrefix(ident, flagPrefix) && len(ident) > len(flagPrefix):
		rest := ident[len(flagPrefix):]
		if len(rest) == 1 {
			return "-" + strings.ToLower(rest)
		}
		return "--" + kebab(rest)
	case strings.HasPrefix(ident, argPrefix) && len(ident) > len(argPrefix):
		rest := ident[len(argPrefix):]
		if isCaps(rest) {
			return rest
		}
		return "<" + kebab(rest) + ">"
	case strings.HasPrefix(ident, cmdPrefix) && len(ident) > len(cmdPrefix):
		return kebab(ident[len(cmdPrefix):])
	default:
		return kebab(ident)
	}
}

// camel turns a kebab-case name into a CamelCase identifier fragment.
func camel(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	upperNext := true
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '-' {
			upperNext = true
			continue
		}
		if upperNext && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upperNext = false
		b.WriteByte(c)
	}
	return b.String()
}

// kebab reverses camel: a hyphen is inserted before every uppercase letter
// except the first, and everything is lowered.
func kebab(ident string) string {
	var b strings.Builder
	b.Grow(len(ident) + 2)
	for i := 0; i < len(ident); i++ {
		c := ident[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// isCaps reports whether s is at least two uppercase letters. The usage
// validator holds bare positionals to the same shape, which keeps them
// distinguishable from camel-cased kebab names.
func isCaps(s string) bool {
	if len(s) < 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
