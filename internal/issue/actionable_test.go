// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name: "operation only",
			err: &ActionableError{
				Operation: "load manifest",
			},
			expected: "failed to load manifest",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "load manifest",
				Resource:  "./usagegen.cue",
			},
			expected: "failed to load manifest: ./usagegen.cue",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "parse config",
				Cause:     errors.New("syntax error at line 5"),
			},
			expected: "failed to parse config: syntax error at line 5",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "scan source file",
				Resource:  "cmd/main.go",
				Cause:     errors.New("file not found"),
			},
			expected: "failed to scan source file: cmd/main.go: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &ActionableError{
		Operation: "test",
		Cause:     cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap() should return the cause error")
	}

	errNoCause := &ActionableError{Operation: "test"}
	if errNoCause.Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	cause := errors.New("specific error")
	wrapped := &ActionableError{
		Operation: "test",
		Cause:     cause,
	}

	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "simple error non-verbose",
			err: &ActionableError{
				Operation: "load config",
			},
			verbose:  false,
			contains: []string{"failed to load config"},
			excludes: []string{"Error chain"},
		},
		{
			name: "error with suggestions",
			err: &ActionableError{
				Operation:   "load manifest",
				Resource:    "./usagegen.cue",
				Suggestions: []string{"Run 'usagegen init'", "Check file permissions"},
			},
			verbose: false,
			contains: []string{
				"failed to load manifest",
				"./usagegen.cue",
				"• Run 'usagegen init'",
				"• Check file permissions",
			},
		},
		{
			name: "verbose includes error chain",
			err: &ActionableError{
				Operation: "write generated file",
				Cause:     errors.New("disk full"),
			},
			verbose: true,
			contains: []string{
				"failed to write generated file",
				"Error chain:",
				"1. disk full",
			},
		},
		{
			name: "non-verbose hides error chain",
			err: &ActionableError{
				Operation: "write generated file",
				Cause:     errors.New("disk full"),
			},
			verbose:  false,
			contains: []string{"failed to write generated file: disk full"},
			excludes: []string{"Error chain"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Format(tt.verbose)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Format(%v) missing %q in:\n%s", tt.verbose, want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("Format(%v) should not contain %q in:\n%s", tt.verbose, bad, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	cause := errors.New("boom")
	err := NewErrorContext().
		WithOperation("load configuration").
		WithResource("config.cue").
		WithSuggestion("Check the CUE syntax").
		WithSuggestion("Run 'usagegen config show'").
		Wrap(cause).
		Build()

	if err == nil {
		t.Fatal("Build() returned nil with operation set")
	}
	if err.Operation != "load configuration" {
		t.Errorf("Operation = %q, want %q", err.Operation, "load configuration")
	}
	if err.Resource != "config.cue" {
		t.Errorf("Resource = %q, want %q", err.Resource, "config.cue")
	}
	if len(err.Suggestions) != 2 {
		t.Errorf("len(Suggestions) = %d, want 2", len(err.Suggestions))
	}
	if !errors.Is(err, cause) {
		t.Error("built error should wrap the cause")
	}
	if !err.HasSuggestions() {
		t.Error("HasSuggestions() = false, want true")
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	if err := NewErrorContext().WithResource("x").Build(); err != nil {
		t.Errorf("Build() without operation = %v, want nil", err)
	}
	if err := NewErrorContext().WithResource("x").BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil", err)
	}
}

func TestWrapWithOperation(t *testing.T) {
	if got := WrapWithOperation(nil, "anything"); got != nil {
		t.Errorf("WrapWithOperation(nil) = %v, want nil", got)
	}

	cause := errors.New("permission denied")
	got := WrapWithOperation(cause, "write generated file")
	if got == nil {
		t.Fatal("WrapWithOperation() returned nil for non-nil cause")
	}
	if got.Error() != "failed to write generated file: permission denied" {
		t.Errorf("Error() = %q", got.Error())
	}
	if !errors.Is(got, cause) {
		t.Error("wrapped error should match the cause")
	}
}
