package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/pld-lang/pld/internal/cli/config"
	"github.com/pld-lang/pld/internal/compiler/errors"
	"github.com/pld-lang/pld/internal/tooling"
	"github.com/pld-lang/pld/internal/watch"
	"github.com/pld-lang/pld/internal/web/introspect"
)

// NewWatchCommand creates the watch command: a long-running process that
// recompiles the schema on every change and pushes diagnostics over
// WebSocket, grounded on the teacher's watch.go (port flag, signal-based
// shutdown, banner print) but rebuilt on pld's own internal/watch
// (FileWatcher + DiagnosticServer) rather than the teacher's
// asset-reload dev server, since there's no browser or app binary here
// to reload.
func NewWatchCommand() *cobra.Command {
	var port int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch schema sources and push diagnostics on every change",
		Long: `Watch every .pld file matched by the manifest for changes. On each
change, re-resolve and re-validate the affected namespaces and push the
resulting diagnostics to any connected WebSocket client at /ws, plus
serve the read-only introspection HTTP surface on the same port.`,
		Example: `  # Watch with the default port
  pld watch

  # Watch on a custom port
  pld watch --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, port, verbose)
		},
	}

	cmd.Flags().IntVar(&port, "port", 4173, "HTTP/WebSocket port for diagnostics and introspection")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show verbose watch output")

	return cmd
}

func runWatch(cmd *cobra.Command, port int, verbose bool) error {
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

	api := tooling.New(rc)
	api.SetOverrides(overridesFromRules(manifest.Rules))

	ds := watch.NewDiagnosticServer()
	defer ds.Close()

	if diags.HasErrors() {
		ds.NotifyDiagnostics(diags, 0)
	} else {
		ds.NotifySuccess(0)
	}

	onChange := func(files []string) error {
		return rebuildAndNotify(api, manifest, ds, files, verbose)
	}

	fw, err := watch.NewFileWatcher([]string{"."}, []string{"*.swp", "*.swo", "*~"}, onChange)
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fw.Start(); err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}

	r := chi.NewRouter()
	r.Mount("/", introspect.NewRouter(api))
	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) { ds.HandleWebSocket(w, req) })

	httpServer := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: r}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(cmd.ErrOrStderr(), "watch: http server error: %v\n", err)
		}
	}()

	banner := color.New(color.FgCyan, color.Bold)
	info := color.New(color.FgWhite)

	fmt.Fprintln(cmd.OutOrStdout())
	banner.Fprintln(cmd.OutOrStdout(), "pld watch")
	info.Fprintf(cmd.OutOrStdout(), "  diagnostics: ws://localhost:%d/ws\n", port)
	info.Fprintf(cmd.OutOrStdout(), "  introspection: http://localhost:%d/namespaces\n", port)
	fmt.Fprintln(cmd.OutOrStdout())
	color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")
	fmt.Fprintln(cmd.OutOrStdout())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	fmt.Fprintln(cmd.OutOrStdout(), "\nshutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)

	return fw.Stop()
}

// rebuildAndNotify re-merges the changed files into the shared tooling
// API, re-runs the validator, and pushes the combined diagnostics.
func rebuildAndNotify(api *tooling.API, manifest *config.Manifest, ds *watch.DiagnosticServer, files []string, verbose bool) error {
	start := time.Now()
	ds.NotifyBuilding(files)

	var diags errors.List
	for _, f := range files {
		text, err := os.ReadFile(f)
		if err != nil {
			continue // removed file; nothing more to merge
		}
		fileDiags, _ := api.UpdateDocument(f, string(text))
		diags = append(diags, fileDiags...)
	}
	diags = append(diags, api.Diagnostics("")...)

	elapsed := time.Since(start)
	if diags.HasErrors() {
		ds.NotifyDiagnostics(diags, elapsed)
	} else {
		ds.NotifySuccess(elapsed)
	}
	if verbose {
		fmt.Printf("[watch] rebuilt %d file(s) in %s\n", len(files), elapsed)
	}
	return nil
}
