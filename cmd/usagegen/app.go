// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zerosign/usagegen/internal/config"
	"github.com/zerosign/usagegen/pkg/diag"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer — all Cobra command handlers receive an App reference and delegate
	// business logic through its service interfaces (Generator, Config, Diagnostics).
	App struct {
		Config      ConfigProvider
		Generator   GenerationService
		Diagnostics DiagnosticRenderer
		logger      *log.Logger
		stdout      io.Writer
		stderr      io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp. Tests can supply mock implementations
	// to isolate specific service behavior.
	Dependencies struct {
		Config      ConfigProvider
		Generator   GenerationService
		Diagnostics DiagnosticRenderer
		Logger      *log.Logger
		Stdout      io.Writer
		Stderr      io.Writer
	}

	// GenerateRequest captures all generation inputs as an immutable value.
	// It is the request-scoped data contract between the CLI layer (Cobra handlers)
	// and the GenerationService implementation. Exactly one of Invocation,
	// ScanPath, and ManifestPath is set.
	GenerateRequest struct {
		// Invocation is the invocation text in direct mode.
		Invocation string
		// ScanPath is the Go file or directory to scan for generate directives.
		ScanPath string
		// ManifestPath is the CUE manifest listing invocations.
		ManifestPath string
		// Package is the package clause for direct-mode output.
		Package string
		// OutputPath redirects direct-mode output into a file ("" = stdout).
		OutputPath string
		// Suffix names generated counterparts in scan mode.
		Suffix config.OutputSuffix
		// HeaderNote is an extra comment line under the generated-file header.
		HeaderNote config.HeaderNote
	}

	// GeneratedFile is one planned output file. A Path of "" means standard output.
	GeneratedFile struct {
		Path    string
		Content []byte
	}

	// GenerateResult contains generation outcomes: the rendered sources for the
	// CLI layer to write and one diagnostic per failed invocation.
	GenerateResult struct {
		Files       []GeneratedFile
		Diagnostics diag.Diagnostics
		// Succeeded counts invocations that produced a record.
		Succeeded int
		// Failed counts invocations that produced a placeholder.
		Failed int
	}

	// GenerationService runs one generation request. Implementations must not
	// write directly to stdout/stderr; outputs and diagnostics are returned as
	// structured data for the CLI layer to render. The returned error covers
	// input-level failures (unreadable scan path, malformed manifest);
	// per-invocation failures are diagnostics in the result.
	GenerationService interface {
		Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error)
	}

	// DiagnosticRenderer renders structured diagnostics.
	DiagnosticRenderer interface {
		Render(ctx context.Context, diags diag.Diagnostics, stderr io.Writer)
	}

	// ConfigProvider loads configuration using explicit options.
	// This abstraction enables testing with custom config sources or mock implementations.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	defaultDiagnosticRenderer struct{}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Logger == nil {
		deps.Logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "usagegen",
		})
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Diagnostics == nil {
		deps.Diagnostics = &defaultDiagnosticRenderer{}
	}
	if deps.Generator == nil {
		deps.Generator = newGenerationService(deps.Logger)
	}

	return &App{
		Config:      deps.Config,
		Generator:   deps.Generator,
		Diagnostics: deps.Diagnostics,
		logger:      deps.Logger,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
	}, nil
}

// Render writes structured diagnostics to stderr with lipgloss styling. Each
// line ends with the diagnostic code in brackets so it can be fed straight to
// 'usagegen explain'.
func (r *defaultDiagnosticRenderer) Render(_ context.Context, diags diag.Diagnostics, stderr io.Writer) {
	for _, d := range diags {
		prefix := WarningStyle.Render(diag.SeverityWarning.String())
		switch d.Severity {
		case diag.SeverityError, diag.SeverityFatal:
			prefix = ErrorStyle.Render(d.Severity.String())
		}

		var b strings.Builder
		b.WriteString(prefix)
		b.WriteString(": ")
		if d.Pos != "" {
			b.WriteString(d.Pos)
			b.WriteString(": ")
		}
		if d.Subject != "" {
			b.WriteString(d.Subject)
			b.WriteString(": ")
		}
		b.WriteString(d.Message)

		_, _ = fmt.Fprintf(stderr, "%s [%s]\n", b.String(), CodeStyle.Render(d.Code.String()))
	}
}
