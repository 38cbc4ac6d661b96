package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	initName        string
	initLanguage    string
	initInteractive bool
)

var validInitName = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// NewInitCommand creates the init command: scaffolds a new pld project
// (a manifest plus one sample namespace file), grounded on the
// teacher's new.go survey-driven prompting and project-name validation,
// retargeted from a full web-app skeleton to the much smaller
// manifest+schema pair pld projects need.
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [project-name]",
		Short: "Scaffold a new pld project",
		Long: `Create a pld.yml manifest and a sample namespace file in the current
directory (or under project-name/, if given).

If no project name is provided, --interactive prompts for one along
with the target language.`,
		Example: `  pld init
  pld init billing
  pld init --interactive`,
		RunE: runInit,
	}

	cmd.Flags().StringVar(&initLanguage, "language", "rust", "Target generator language")
	cmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "Prompt for project settings")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgCyan)

	if len(args) > 0 {
		initName = args[0]
	}

	if initInteractive || initName == "" {
		if err := promptInitSettings(); err != nil {
			return err
		}
	}

	if initName != "" {
		if err := validateInitName(initName); err != nil {
			return err
		}
	}

	root := "."
	if initName != "" {
		root = initName
		if err := os.MkdirAll(root, 0o755); err != nil {
			return fmt.Errorf("creating project directory %s: %w", root, err)
		}
	}

	manifestPath := filepath.Join(root, "pld.yml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("%s already exists", manifestPath)
	}

	if err := os.WriteFile(manifestPath, []byte(manifestTemplate(initLanguage)), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", manifestPath, err)
	}
	infoColor.Fprintf(cmd.OutOrStdout(), "  created %s\n", manifestPath)

	schemaPath := filepath.Join(root, "core.pld")
	if err := os.WriteFile(schemaPath, []byte(sampleSchema), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", schemaPath, err)
	}
	infoColor.Fprintf(cmd.OutOrStdout(), "  created %s\n", schemaPath)

	successColor.Fprintf(cmd.OutOrStdout(), "\n✓ project ready\n")
	infoColor.Fprintln(cmd.OutOrStdout(), "  run `pld check` to validate, `pld generate` to emit code")
	return nil
}

func promptInitSettings() error {
	if initName == "" {
		if err := survey.AskOne(&survey.Input{Message: "Project name:"}, &initName); err != nil {
			return err
		}
	}

	languages := []string{"rust"}
	var selected string
	if err := survey.AskOne(&survey.Select{
		Message: "Target language:",
		Options: languages,
		Default: "rust",
	}, &selected); err != nil {
		return err
	}
	initLanguage = selected
	return nil
}

func validateInitName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) == 0 || len(name) > 100 {
		return fmt.Errorf("project name must be 1-100 characters")
	}
	if filepath.IsAbs(name) {
		return fmt.Errorf("project name cannot be an absolute path")
	}
	if !validInitName.MatchString(name) {
		return fmt.Errorf("project name can only contain letters, numbers, dashes, and underscores")
	}
	return nil
}

func manifestTemplate(language string) string {
	return fmt.Sprintf(`sources:
  include:
    - "**/*.pld"
  exclude: []

targets:
  - types

languages:
  - %s

language:
  %s:
    output_dir: build/%s

rules: {}
`, language, language, language)
}

const sampleSchema = `namespace core;

struct User {
  id: str;
  name: str;
  email: str?;
}
`
