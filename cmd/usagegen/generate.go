// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zerosign/usagegen/internal/config"
	"github.com/zerosign/usagegen/internal/issue"
	"github.com/zerosign/usagegen/pkg/types"

	"github.com/spf13/cobra"
)

// newGenerateCommand creates the `usagegen generate` command. The three
// input modes are mutually exclusive: positional invocation text, --scan,
// or --manifest.
func newGenerateCommand(app *App) *cobra.Command {
	var (
		scanPath     string
		manifestPath string
		pkgName      string
		outPath      string
	)

	genCmd := &cobra.Command{
		Use:   "generate [invocation text]",
		Short: "Generate argument records from usage text",
		Long: `Generate argument records from docopt-style usage text.

Input modes (exactly one):
  - Invocation text as arguments: one record, printed to stdout or --out.
  - --scan: collect //usagegen:generate directives from Go sources; each
    scanned file gets a generated counterpart next to it.
  - --manifest: render every invocation of a CUE manifest into its
    configured output file.

A failed invocation reports one diagnostic and leaves a placeholder comment
in the output; sibling invocations still generate.`,
		Example: `  usagegen generate 'Args, "Usage: prog [--verbose] <file>"'
  usagegen generate --pkg cli --out args_gen.go 'Args, "Usage: prog <file>"'
  usagegen generate --scan ./cmd
  usagegen generate --manifest usagegen.cue`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), app, generateInputs{
				Args:         args,
				ScanPath:     scanPath,
				ManifestPath: manifestPath,
				Package:      pkgName,
				OutputPath:   outPath,
			})
		},
	}

	genCmd.Flags().StringVar(&scanPath, "scan", "", "Go file or directory to scan for //usagegen:generate directives")
	genCmd.Flags().StringVar(&manifestPath, "manifest", "", "CUE manifest listing invocations to generate")
	genCmd.Flags().StringVar(&pkgName, "pkg", "main", "package clause for direct-mode output")
	genCmd.Flags().StringVarP(&outPath, "out", "o", "", "write direct-mode output to a file instead of stdout")
	genCmd.MarkFlagsMutuallyExclusive("scan", "manifest")

	return genCmd
}

// generateInputs carries raw flag/arg state from Cobra into runGenerate.
type generateInputs struct {
	Args         []string
	ScanPath     string
	ManifestPath string
	Package      string
	OutputPath   string
}

func runGenerate(ctx context.Context, app *App, in generateInputs) error {
	invocationText := strings.Join(in.Args, " ")

	switch {
	case in.ScanPath == "" && in.ManifestPath == "" && invocationText == "":
		return fmt.Errorf("nothing to generate: provide invocation text, --scan, or --manifest")
	case invocationText != "" && (in.ScanPath != "" || in.ManifestPath != ""):
		return fmt.Errorf("invocation text cannot be combined with --scan or --manifest")
	}

	pathFlags := []struct {
		flag string
		path types.FilesystemPath
	}{
		{"--scan", types.FilesystemPath(in.ScanPath)},
		{"--manifest", types.FilesystemPath(in.ManifestPath)},
		{"--out", types.FilesystemPath(in.OutputPath)},
	}
	for _, pf := range pathFlags {
		if pf.path == "" {
			continue
		}
		if err := pf.path.Validate(); err != nil {
			return fmt.Errorf("%s: %w", pf.flag, err)
		}
	}

	// Output naming and the header note come from configuration; a load
	// failure falls back to defaults so generation stays operational.
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		cfg = config.DefaultConfig()
	}

	result, err := app.Generator.Generate(ctx, GenerateRequest{
		Invocation:   invocationText,
		ScanPath:     in.ScanPath,
		ManifestPath: in.ManifestPath,
		Package:      in.Package,
		OutputPath:   in.OutputPath,
		Suffix:       cfg.Generate.Suffix,
		HeaderNote:   cfg.Generate.HeaderNote,
	})
	if err != nil {
		var svcErr *ServiceError
		if errors.As(err, &svcErr) {
			renderServiceError(app.stderr, svcErr)
		}
		return &ExitError{Code: types.ExitFailure, Err: err}
	}

	app.Diagnostics.Render(ctx, result.Diagnostics, app.stderr)

	if err := writeGeneratedFiles(app, result.Files); err != nil {
		return &ExitError{Code: types.ExitFailure, Err: err}
	}

	switch {
	case result.Diagnostics.HasFatal():
		return &ExitError{
			Code: types.ExitFault,
			Err:  fmt.Errorf("generation aborted by an internal consistency fault"),
		}
	case result.Failed > 0:
		return &ExitError{
			Code: types.ExitFailure,
			Err:  fmt.Errorf("%d of %d invocations failed", result.Failed, result.Failed+result.Succeeded),
		}
	}
	return nil
}

// writeGeneratedFiles writes each planned output. A Path of "" streams the
// content to stdout; everything else lands in a file with a confirmation
// line.
func writeGeneratedFiles(app *App, files []GeneratedFile) error {
	for _, f := range files {
		if f.Path == "" {
			if _, err := app.stdout.Write(f.Content); err != nil {
				return fmt.Errorf("write generated source: %w", err)
			}
			continue
		}

		if err := os.WriteFile(f.Path, f.Content, 0o644); err != nil {
			return issue.NewErrorContext().
				WithOperation("write generated file").
				WithResource(f.Path).
				WithSuggestion("Check the directory exists and is writable").
				Wrap(err).
				BuildError()
		}
		fmt.Fprintf(app.stdout, "%s wrote %s\n", SuccessStyle.Render("✓"), f.Path)
	}
	return nil
}
