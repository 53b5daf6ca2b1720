// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zerosign/usagegen/internal/manifest"

	"github.com/spf13/cobra"
)

// newInitCommand creates the `usagegen init` command, which writes a
// starter manifest for batch generation.
func newInitCommand() *cobra.Command {
	var initForce bool

	initCmd := &cobra.Command{
		Use:   "init [filename]",
		Short: "Create a new usagegen manifest in the current directory",
		Long: `Create a new usagegen manifest in the current directory with an example
invocation.

The manifest lists invocations to generate into one output file; run
'usagegen generate --manifest <file>' against it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args, initForce)
		},
	}

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing manifest")

	return initCmd
}

func runInit(args []string, force bool) error {
	filename := "usagegen.cue"
	if len(args) > 0 {
		filename = args[0]
	}

	// Check if file exists
	if _, err := os.Stat(filename); err == nil && !force {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	content := manifest.GenerateCUE(manifest.Default())

	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Edit the manifest to declare your records")
	fmt.Println("  2. Run 'usagegen generate --manifest " + filename + "'")
	fmt.Println("  3. Import the generated file and use the records")

	return nil
}
