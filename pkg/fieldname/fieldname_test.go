// SPDX-License-Identifier: MPL-2.0

package fieldname

import "testing"

func TestFromKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{key: "--verbose", want: "FlagVerbose"},
		{key: "--dry-run", want: "FlagDryRun"},
		{key: "--max-jobs2", want: "FlagMaxJobs2"},
		{key: "-v", want: "FlagV"},
		{key: "-q", want: "FlagQ"},
		{key: "<file>", want: "ArgFile"},
		{key: "<output-dir>", want: "ArgOutputDir"},
		{key: "<x>", want: "ArgX"},
		{key: "FILE", want: "ArgFILE"},
		{key: "PATH", want: "ArgPATH"},
		{key: "build", want: "CmdBuild"},
		{key: "dry-run", want: "CmdDryRun"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()

			if got := FromKey(tt.key); got != tt.want {
				t.Errorf("FromKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestToKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ident string
		want  string
	}{
		{ident: "FlagVerbose", want: "--verbose"},
		{ident: "FlagDryRun", want: "--dry-run"},
		{ident: "FlagV", want: "-v"},
		{ident: "ArgFile", want: "<file>"},
		{ident: "ArgOutputDir", want: "<output-dir>"},
		{ident: "ArgX", want: "<x>"},
		{ident: "ArgFILE", want: "FILE"},
		{ident: "CmdBuild", want: "build"},
		{ident: "CmdDryRun", want: "dry-run"},
		// Identifiers without a recognized prefix fall back to a
		// command-style key, which matches no atom.
		{ident: "Whatever", want: "whatever"},
		{ident: "SomeField", want: "some-field"},
	}
	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			t.Parallel()

			if got := ToKey(tt.ident); got != tt.want {
				t.Errorf("ToKey(%q) = %q, want %q", tt.ident, got, tt.want)
			}
		})
	}
}

// TestRoundTrip checks ToKey(FromKey(k)) == k over a corpus covering every
// key shape the usage validator can produce.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	var keys []string

	// Single-letter short options.
	for c := byte('a'); c <= 'z'; c++ {
		keys = append(keys, "-"+string(c))
	}

	// Kebab-case names in their long-option, bracketed-positional, and
	// command guises. Hyphenated names carry a multi-character segment,
	// matching what the validator admits.
	kebabs := []string{
		"verbose", "dry-run", "out2", "speed", "x", "a2b",
		"max-jobs2", "no-color", "a2-bc", "level3",
	}
	for _, name := range kebabs {
		keys = append(keys, "<"+name+">", name)
		if len(name) >= 2 {
			// Long option names are at least two characters.
			keys = append(keys, "--"+name)
		}
	}

	// Bare ALL-CAPS positionals.
	for _, name := range []string{"FILE", "PATH", "ARGS", "XY"} {
		keys = append(keys, name)
	}

	for _, key := range keys {
		ident := FromKey(key)
		if got := ToKey(ident); got != key {
			t.Errorf("ToKey(FromKey(%q)) = %q via %q, want %q", key, got, ident, key)
		}
	}
}
