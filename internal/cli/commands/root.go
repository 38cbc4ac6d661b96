// Package commands is the pld CLI's cobra command tree, grounded on the
// teacher's cmd/conduit layout: a root command that wires subcommands,
// each subcommand in its own file, colored terminal rendering delegated
// to internal/cli/ui and internal/compiler/errors.
package commands

import (
	"github.com/spf13/cobra"
)

// Version information, set at build time via -ldflags the same way the
// teacher's cmd/conduit/main.go sets its Version/GitCommit/BuildDate vars.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewRootCommand builds the pld command tree: generate, check, format,
// init, lsp, watch, completion, version. This intentionally drops the
// teacher's new/build/run/migrate/debug/template subcommands, which
// belong to Conduit's web-application domain and have no pld analogue.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "pld",
		Short: "pld schema compiler and tooling",
		Long: `pld is a schema compiler for a cross-language interface definition
language: namespaces, structs, enums, oneofs, type aliases, unions, errors
and operations, compiled to per-language client/server/types code.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(NewGenerateCommand())
	root.AddCommand(NewCheckCommand())
	root.AddCommand(NewFormatCommand())
	root.AddCommand(NewInitCommand())
	root.AddCommand(NewLSPCommand())
	root.AddCommand(NewWatchCommand())
	root.AddCommand(NewCompletionCommand())
	root.AddCommand(NewVersionCommand())

	return root
}

// NewVersionCommand reports the compiler's build identity, grounded on
// the teacher's cmd/conduit/version.go.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the pld compiler version, Git commit, and build date",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Printf("pld version: %s\n", Version)
			cmd.Printf("Git commit: %s\n", GitCommit)
			cmd.Printf("Build date: %s\n", BuildDate)
			return nil
		},
	}
}

// Execute runs the root command, the entrypoint cmd/pld/main.go calls.
func Execute() error {
	return NewRootCommand().Execute()
}
