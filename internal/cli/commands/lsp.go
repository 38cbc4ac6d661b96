package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pld-lang/pld/internal/cli/config"
	"github.com/pld-lang/pld/internal/lsp"
	"github.com/pld-lang/pld/internal/tooling"
)

// NewLSPCommand creates the lsp command, grounded on the teacher's
// lsp.go: build the shared context the CLI's other commands use, wrap
// it in the tooling façade, and run the server over stdin/stdout until
// a signal or client `exit` tells it to stop.
func NewLSPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the pld Language Server Protocol (LSP) server.

This command starts an LSP server that provides editor integration:
  - textDocument/publishDiagnostics backed by the shared validator
  - hover
  - go-to-definition

The LSP server communicates via JSON-RPC over stdin/stdout and is
typically started automatically by an editor, not run interactively.`,
		RunE: runLSP,
	}
}

func runLSP(cmd *cobra.Command, args []string) error {
	manifest, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading manifest: %w", err)
	}

	paths, err := resolveManifestSources(manifest)
	if err != nil {
		// An empty/unconfigured workspace is still a valid place to start
		// the server: didOpen/didChange populate the context as the editor
		// opens files, the same lazy load the teacher's LSP server uses.
		paths = nil
	}

	rc, _, err := buildContext(paths)
	if err != nil {
		return fmt.Errorf("building initial context: %w", err)
	}

	api := tooling.New(rc)
	api.SetOverrides(overridesFromRules(manifest.Rules))

	server := lsp.NewServer(api)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return server.Run(ctx)
}
