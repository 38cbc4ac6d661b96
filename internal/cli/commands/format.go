package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pld-lang/pld/internal/cli/config"
	"github.com/pld-lang/pld/internal/compiler/formatter"
	"github.com/pld-lang/pld/internal/compiler/source"
	"github.com/pld-lang/pld/internal/utils"
)

var formatDry bool

// NewFormatCommand creates the format command, grounded on the teacher's
// format.go but with the diff-preview default dropped in favor of
// pld's simpler write/dry split: by default format rewrites files in
// place; --dry reports findings without touching anything, the same
// Dry flag formatter.Options already exposes.
func NewFormatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format [files...]",
		Short: "Format schema source files",
		Long: `Run every formatter rule over the manifest's matched .pld files (or
the files named on the command line) and rewrite them in place.

Use --dry to report what would change without writing anything.`,
		Example: `  # Format every file the manifest matches
  pld format

  # Report findings without writing
  pld format --dry

  # Format specific files
  pld format billing/core.pld`,
		RunE: runFormat,
	}

	cmd.Flags().BoolVar(&formatDry, "dry", false, "Report findings without rewriting files")

	return cmd
}

func runFormat(cmd *cobra.Command, args []string) error {
	infoColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen)
	errorColor := color.New(color.FgRed, color.Bold)

	paths, err := formatTargetFiles(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .pld files to format")
	}

	changed := 0
	errored := 0

	for _, path := range paths {
		text, err := os.ReadFile(path)
		if err != nil {
			errorColor.Fprintf(cmd.ErrOrStderr(), "reading %s: %v\n", path, err)
			errored++
			continue
		}

		out, findings, err := formatter.Format(source.New(path, string(text)), formatter.Options{Dry: formatDry})
		if err != nil {
			errorColor.Fprintf(cmd.ErrOrStderr(), "formatting %s: %v\n", path, err)
			errored++
			continue
		}

		if len(findings) == 0 {
			continue
		}

		changed++
		infoColor.Fprintf(cmd.OutOrStdout(), "%s\n", path)
		for _, f := range findings {
			status := "would apply"
			if f.Applied {
				status = "applied"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s (%s)\n", f.Rule, f.Detail, status)
		}

		if !formatDry && out != string(text) {
			if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
				errorColor.Fprintf(cmd.ErrOrStderr(), "writing %s: %v\n", path, err)
				errored++
				continue
			}
			successColor.Fprintf(cmd.OutOrStdout(), "✓ %s formatted\n", path)
		}
	}

	if errored > 0 {
		return fmt.Errorf("%d file(s) had errors", errored)
	}
	if formatDry && changed > 0 {
		return fmt.Errorf("%d file(s) need formatting", changed)
	}
	return nil
}

// formatTargetFiles resolves explicit path arguments if given, otherwise
// falls back to the manifest's sources.include/exclude globs.
func formatTargetFiles(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	manifest, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}
	return utils.ResolveSources(".", manifest.Sources.Include, manifest.Sources.Exclude)
}
