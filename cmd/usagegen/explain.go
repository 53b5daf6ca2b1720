// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/zerosign/usagegen/internal/config"
	"github.com/zerosign/usagegen/internal/issue"

	"github.com/spf13/cobra"
)

// newExplainCommand creates the `usagegen explain` command. Diagnostic
// lines end with their code in brackets; this command renders the long-form
// page for one of those codes.
func newExplainCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [code]",
		Short: "Explain a diagnostic code",
		Long: `Explain a diagnostic code.

Every diagnostic printed by 'usagegen generate' carries a code in brackets,
like [not_a_string_literal]. This command renders the long-form page for a
code: what went wrong and what to try. Without a code it lists all pages.`,
		Example: `  usagegen explain not_a_string_literal
  usagegen explain invalid_usage_specification`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listExplainCodes(app)
			}
			return explainCode(cmd.Context(), app, args[0])
		},
	}
}

func listExplainCodes(app *App) error {
	fmt.Fprintln(app.stdout, TitleStyle.Render("Diagnostic codes"))
	fmt.Fprintln(app.stdout)
	for _, i := range issue.Values() {
		fmt.Fprintf(app.stdout, "  %s\n", CodeStyle.Render(i.Code()))
	}
	fmt.Fprintln(app.stdout)
	fmt.Fprintln(app.stdout, SubtitleStyle.Render("Run 'usagegen explain <code>' for the full page."))
	return nil
}

func explainCode(ctx context.Context, app *App, code string) error {
	entry := issue.ForCode(code)
	if entry == nil {
		known := make([]string, 0)
		for _, i := range issue.Values() {
			known = append(known, i.Code())
		}
		return fmt.Errorf("unknown diagnostic code %q (known: %s)", code, strings.Join(known, ", "))
	}

	rendered, err := entry.Render(explainStyle(ctx, app))
	if err != nil {
		return fmt.Errorf("render explain page for %q: %w", code, err)
	}
	fmt.Fprint(app.stdout, rendered)
	return nil
}

// explainStyle maps the configured color scheme onto a glamour style name.
func explainStyle(ctx context.Context, app *App) string {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return "dark"
	}
	switch cfg.UI.ColorScheme {
	case config.ColorSchemeLight:
		return "light"
	case config.ColorSchemeDark:
		return "dark"
	default:
		return "auto"
	}
}
