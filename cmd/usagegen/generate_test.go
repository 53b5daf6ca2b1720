// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zerosign/usagegen/internal/config"
	"github.com/zerosign/usagegen/pkg/diag"
	"github.com/zerosign/usagegen/pkg/types"
)

type (
	// stubGenerator returns canned results and records the request.
	stubGenerator struct {
		result GenerateResult
		err    error
		got    GenerateRequest
	}

	// stubConfig serves a fixed config without touching the filesystem.
	stubConfig struct {
		cfg *config.Config
	}
)

func (s *stubGenerator) Generate(_ context.Context, req GenerateRequest) (GenerateResult, error) {
	s.got = req
	return s.result, s.err
}

func (s *stubConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if s.cfg != nil {
		return s.cfg, nil
	}
	return config.DefaultConfig(), nil
}

// newTestApp builds an App around stubs, capturing stdout/stderr.
func newTestApp(t *testing.T, gen GenerationService) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app, err := NewApp(Dependencies{
		Config:    &stubConfig{},
		Generator: gen,
		Stdout:    &stdout,
		Stderr:    &stderr,
	})
	if err != nil {
		t.Fatalf("NewApp() failed: %v", err)
	}
	return app, &stdout, &stderr
}

func TestRunGenerate_ModeValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   generateInputs
	}{
		{"no input at all", generateInputs{}},
		{"text with scan", generateInputs{Args: []string{`Args, "Usage: p"`}, ScanPath: "."}},
		{"text with manifest", generateInputs{Args: []string{`Args, "Usage: p"`}, ManifestPath: "m.cue"}},
		{"whitespace scan path", generateInputs{ScanPath: "   "}},
		{"whitespace manifest path", generateInputs{ManifestPath: "\t"}},
		{"whitespace out path", generateInputs{Args: []string{`Args, "Usage: p"`}, OutputPath: "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := &stubGenerator{}
			app, _, _ := newTestApp(t, gen)

			if err := runGenerate(context.Background(), app, tt.in); err == nil {
				t.Error("runGenerate() = nil, want mode validation error")
			}
			if gen.got.Invocation != "" || gen.got.ScanPath != "" {
				t.Error("generator was called despite invalid mode combination")
			}
		})
	}
}

func TestRunGenerate_WhitespacePathError(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{}
	app, _, _ := newTestApp(t, gen)

	err := runGenerate(context.Background(), app, generateInputs{ScanPath: " "})
	if err == nil {
		t.Fatal("runGenerate() = nil, want path validation error")
	}
	if !errors.Is(err, types.ErrInvalidFilesystemPath) {
		t.Errorf("error = %v, want wrapped ErrInvalidFilesystemPath", err)
	}
	if !strings.Contains(err.Error(), "--scan") {
		t.Errorf("error %q should name the offending flag", err)
	}
}

func TestRunGenerate_Success(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{
		result: GenerateResult{
			Files:     []GeneratedFile{{Path: "", Content: []byte("package main\n")}},
			Succeeded: 1,
		},
	}
	app, stdout, stderr := newTestApp(t, gen)

	err := runGenerate(context.Background(), app, generateInputs{
		Args:    []string{"Args,", `"Usage: prog <file>"`},
		Package: "main",
	})
	if err != nil {
		t.Fatalf("runGenerate() error = %v", err)
	}

	// Joined args reach the service as one invocation text.
	if want := `Args, "Usage: prog <file>"`; gen.got.Invocation != want {
		t.Errorf("Invocation = %q, want %q", gen.got.Invocation, want)
	}
	// Config defaults flow into the request.
	if gen.got.Suffix != config.DefaultOutputSuffix {
		t.Errorf("Suffix = %q, want %q", gen.got.Suffix, config.DefaultOutputSuffix)
	}
	if stdout.String() != "package main\n" {
		t.Errorf("stdout = %q, want generated content", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want empty", stderr.String())
	}
}

func TestRunGenerate_WritesFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outPath := filepath.Join(dir, "demo_usagegen.go")
	gen := &stubGenerator{
		result: GenerateResult{
			Files:     []GeneratedFile{{Path: outPath, Content: []byte("package demo\n")}},
			Succeeded: 1,
		},
	}
	app, stdout, _ := newTestApp(t, gen)

	err := runGenerate(context.Background(), app, generateInputs{ScanPath: dir})
	if err != nil {
		t.Fatalf("runGenerate() error = %v", err)
	}

	written, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("generated file not written: %v", err)
	}
	if string(written) != "package demo\n" {
		t.Errorf("written content = %q", written)
	}
	if !strings.Contains(stdout.String(), outPath) {
		t.Errorf("confirmation line missing from stdout: %q", stdout.String())
	}
}

func TestRunGenerate_ExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result GenerateResult
		want   types.ExitCode
	}{
		{
			name: "per-invocation failure exits 1",
			result: GenerateResult{
				Files:       []GeneratedFile{{Content: []byte("package main\n")}},
				Succeeded:   1,
				Failed:      1,
				Diagnostics: diag.Diagnostics{{Severity: diag.SeverityError, Code: diag.CodeUnexpectedToken, Message: "boom"}},
			},
			want: types.ExitFailure,
		},
		{
			name: "internal consistency fault exits 2",
			result: GenerateResult{
				Diagnostics: diag.Diagnostics{{Severity: diag.SeverityFatal, Code: diag.CodeInternalConsistency, Message: "boom"}},
			},
			want: types.ExitFault,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := &stubGenerator{result: tt.result}
			app, _, stderr := newTestApp(t, gen)

			err := runGenerate(context.Background(), app, generateInputs{
				Args: []string{`Args, "Usage: p"`},
			})
			var exitErr *ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("runGenerate() error = %v, want *ExitError", err)
			}
			if exitErr.Code != tt.want {
				t.Errorf("exit code = %v, want %v", exitErr.Code, tt.want)
			}
			// Diagnostics are rendered before exiting.
			if !strings.Contains(stderr.String(), "boom") {
				t.Errorf("diagnostics not rendered to stderr: %q", stderr.String())
			}
		})
	}
}

func TestRunGenerate_ServiceErrorRendered(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{
		err: newServiceError(errors.New("no generate directives found"), 0, "styled hint\n"),
	}
	app, _, stderr := newTestApp(t, gen)

	err := runGenerate(context.Background(), app, generateInputs{ScanPath: "."})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("runGenerate() error = %v, want *ExitError", err)
	}
	if exitErr.Code != types.ExitFailure {
		t.Errorf("exit code = %v, want %v", exitErr.Code, types.ExitFailure)
	}
	if !strings.Contains(stderr.String(), "styled hint") {
		t.Errorf("styled message not rendered: %q", stderr.String())
	}
}

func TestDefaultDiagnosticRenderer(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	r := &defaultDiagnosticRenderer{}
	r.Render(context.Background(), diag.Diagnostics{
		{
			Severity: diag.SeverityError,
			Code:     diag.CodeNotAStringLiteral,
			Message:  "expected string literal but got `x`",
			Subject:  "Args",
			Pos:      "main.go:10:5",
		},
		{
			Severity: diag.SeverityWarning,
			Code:     diag.CodeInvalidUsageSpecification,
			Message:  "suspicious usage",
		},
	}, &stderr)

	out := stderr.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, want 2:\n%s", len(lines), out)
	}
	for _, want := range []string{"main.go:10:5", "Args", "expected string literal", "[not_a_string_literal]"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("first line missing %q: %q", want, lines[0])
		}
	}
	if !strings.Contains(lines[1], "suspicious usage") {
		t.Errorf("second line missing message: %q", lines[1])
	}
}

func TestWriteGeneratedFiles_StreamError(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t, &stubGenerator{})
	app.stdout = failingWriter{}

	err := writeGeneratedFiles(app, []GeneratedFile{{Content: []byte("x")}})
	if err == nil {
		t.Error("writeGeneratedFiles() = nil, want stream error")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }
