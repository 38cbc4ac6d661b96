package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pld-lang/pld/internal/cli/config"
	"github.com/pld-lang/pld/internal/compiler/errors"
	"github.com/pld-lang/pld/internal/compiler/validator"
)

var checkJSON bool

// NewCheckCommand creates the check command: resolution and validation
// only, no emission, grounded on the teacher's build.go's lex/parse/
// typecheck phases but stopping short of code generation.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve and validate schema sources without generating code",
		Long: `Resolve every .pld file matched by the manifest's sources.include/
exclude globs into a single namespace table and run the validator against
it, without invoking any language generator.`,
		Example: `  # Check the current project
  pld check

  # Check and emit diagnostics as JSON (useful for tooling)
  pld check --json`,
		RunE: runCheck,
	}

	cmd.Flags().BoolVar(&checkJSON, "json", false, "Output diagnostics in JSON format")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	manifest, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading manifest: %w", err)
	}

	paths, err := resolveManifestSources(manifest)
	if err != nil {
		return err
	}

	rc, diags, err := buildContext(paths)
	if err != nil {
		return err
	}
	if diags.HasErrors() {
		return reportDiagnostics(cmd, diags, checkJSON)
	}

	overrides := overridesFromRules(manifest.Rules)
	diags = append(diags, validator.Validate(rc, overrides)...)

	if err := reportDiagnostics(cmd, diags, checkJSON); err != nil {
		return err
	}

	successColor := color.New(color.FgGreen, color.Bold)
	successColor.Fprintf(cmd.OutOrStdout(), "✓ %d namespace(s) checked, no errors\n", len(rc.Namespaces()))
	return nil
}

// reportDiagnostics renders diags either as terminal text or JSON and
// returns a non-nil error iff diags contains at least one error-severity
// entry, the shared exit-code contract `check` and `generate` both use.
func reportDiagnostics(cmd *cobra.Command, diags errors.List, asJSON bool) error {
	if len(diags) == 0 {
		return nil
	}

	if asJSON {
		out, err := diags.ToJSON()
		if err != nil {
			return fmt.Errorf("rendering diagnostics: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	} else {
		fmt.Fprint(cmd.ErrOrStderr(), errors.RenderTerminalList(diags))
	}

	if diags.HasErrors() {
		return fmt.Errorf("validation failed")
	}
	return nil
}
