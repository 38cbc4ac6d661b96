package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pld-lang/pld/internal/cli/config"
	"github.com/pld-lang/pld/internal/compiler/emitter"
	"github.com/pld-lang/pld/internal/compiler/emitter/rustgen"
	"github.com/pld-lang/pld/internal/compiler/validator"
)

var (
	generateJSON    bool
	generateVerbose bool
)

// NewGenerateCommand creates the generate command: the manifest-driven
// pipeline from SPEC_FULL.md §7.5 — resolve sources, build a resolver
// context, validate, then drive every configured language's generator
// through internal/compiler/emitter.Driver. Grounded on the teacher's
// build.go phase sequence (lex -> parse -> typecheck -> codegen), with
// Go compilation dropped since pld generates source text, not binaries.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compile schema sources and emit target-language code",
		Long: `Resolve and validate every .pld file matched by the manifest, then run
the generator configured for each entry in languages.

Each language writes either to its configured output_dir, or, when
language.<name>.mem is set, to an in-memory sink whose contents are
dumped to a single <language>.mem file for inspection.`,
		Example: `  # Generate every configured language
  pld generate

  # Generate with verbose per-generator logging
  pld generate --verbose`,
		RunE: runGenerate,
	}

	cmd.Flags().BoolVar(&generateJSON, "json", false, "Output diagnostics in JSON format")
	cmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Show per-generator logging")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	infoColor := color.New(color.FgCyan)
	successColor := color.New(color.FgGreen, color.Bold)

	manifest, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading manifest: %w", err)
	}

	paths, err := resolveManifestSources(manifest)
	if err != nil {
		return err
	}
	if generateVerbose {
		infoColor.Fprintf(cmd.OutOrStdout(), "Found %d .pld file(s)\n", len(paths))
	}

	rc, diags, err := buildContext(paths)
	if err != nil {
		return err
	}
	if diags.HasErrors() {
		return reportDiagnostics(cmd, diags, generateJSON)
	}

	overrides := overridesFromRules(manifest.Rules)
	diags = append(diags, validator.Validate(rc, overrides)...)
	if err := reportDiagnostics(cmd, diags, generateJSON); err != nil {
		return err
	}

	jobs, mems, err := buildJobs(manifest)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if generateVerbose {
		if l, err := zap.NewDevelopment(); err == nil {
			logger = l
		}
	}

	driver := emitter.NewDriver(logger)
	if err := driver.Run(context.Background(), rc, jobs); err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	for language, entry := range mems {
		if err := writeMemDump(language, entry.outputDir, entry.sink); err != nil {
			return err
		}
	}

	successColor.Fprintf(cmd.OutOrStdout(), "✓ generated %d language(s)\n", len(jobs))
	return nil
}

type memEntry struct {
	outputDir string
	sink      *emitter.MemSink
}

// buildJobs turns the manifest's languages/targets/language table into
// emitter.Job values, one per configured language, the way build.go
// turns its cfg.Build fields into a single codegen.Generator call.
func buildJobs(manifest *config.Manifest) ([]emitter.Job, map[string]memEntry, error) {
	targets := make([]emitter.Target, 0, len(manifest.Targets))
	for _, t := range manifest.Targets {
		targets = append(targets, emitter.Target(t))
	}

	jobs := make([]emitter.Job, 0, len(manifest.Languages))
	mems := make(map[string]memEntry)

	for _, language := range manifest.Languages {
		gen, err := generatorFor(language)
		if err != nil {
			return nil, nil, err
		}

		langCfg := manifest.Language[language]
		opts := emitter.Options{
			Language:  language,
			Targets:   targets,
			OutputDir: langCfg.OutputDir,
			Mem:       langCfg.Mem,
			Opts:      langCfg.Opts,
		}
		if opts.OutputDir == "" {
			opts.OutputDir = filepath.Join("build", language)
		}

		var sink emitter.Sink
		if opts.Mem {
			mem := emitter.NewMemSink()
			sink = mem
			mems[language] = memEntry{outputDir: opts.OutputDir, sink: mem}
		} else {
			sink = emitter.NewFileSink(opts.OutputDir)
		}

		jobs = append(jobs, emitter.Job{Generator: gen, Options: opts, Sink: sink})
	}

	return jobs, mems, nil
}

// generatorFor maps a manifest language name to its emitter.Generator.
// rustgen is the only generator SPEC_FULL.md names as implemented;
// anything else is a configuration error rather than a silent no-op.
func generatorFor(language string) (emitter.Generator, error) {
	switch language {
	case "rust":
		return rustgen.New(), nil
	default:
		return nil, fmt.Errorf("generate: unsupported language %q (supported: rust)", language)
	}
}

// writeMemDump serializes a MemSink's accumulated files into a single
// deterministic text file named <language>.mem, so an in-memory run
// still leaves something on disk to diff or inspect.
func writeMemDump(language, outputDir string, sink *emitter.MemSink) error {
	snapshot := sink.Snapshot()
	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("generate: creating %s: %w", outputDir, err)
	}

	path := filepath.Join(outputDir, language+".mem")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("generate: creating %s: %w", path, err)
	}
	defer f.Close()

	for _, name := range names {
		fmt.Fprintf(f, "===== %s =====\n", name)
		f.Write(snapshot[name])
		fmt.Fprintln(f)
	}
	return nil
}
