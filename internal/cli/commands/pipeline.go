package commands

import (
	"fmt"

	"github.com/pld-lang/pld/internal/cli/config"
	"github.com/pld-lang/pld/internal/compiler/errors"
	"github.com/pld-lang/pld/internal/compiler/resolver"
	"github.com/pld-lang/pld/internal/compiler/source"
	"github.com/pld-lang/pld/internal/compiler/validator"
	"github.com/pld-lang/pld/internal/utils"
)

// resolveManifestSources expands a manifest's sources.include/exclude
// globs against the current directory into concrete file paths, the way
// the teacher's build.go turns its SourceDir into a file list before
// handing it to the compiler.
func resolveManifestSources(m *config.Manifest) ([]string, error) {
	paths, err := utils.ResolveSources(".", m.Sources.Include, m.Sources.Exclude)
	if err != nil {
		return nil, fmt.Errorf("resolving sources: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .pld files matched sources.include %v", m.Sources.Include)
	}
	return paths, nil
}

// buildContext loads every path into a resolver.Context, collecting
// parse/lex diagnostics from every file before returning, so a single
// `generate`/`check` invocation reports every broken file at once rather
// than stopping at the first one.
func buildContext(paths []string) (*resolver.Context, errors.List, error) {
	ctx := resolver.New()
	var diags errors.List

	for _, p := range paths {
		file, err := source.Load(p)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", p, err)
		}
		fileDiags, err := ctx.AddFile(file)
		diags = append(diags, fileDiags...)
		if err != nil {
			return nil, diags, fmt.Errorf("loading %s: %w", p, err)
		}
	}

	return ctx, diags, nil
}

// overridesFromRules converts a manifest's rules map (rule code -> level
// string) into validator.Overrides, the way the teacher's build.go turns
// its lint config into linter.Options.
func overridesFromRules(rules map[string]string) validator.Overrides {
	overrides := make(validator.Overrides, len(rules))
	for code, level := range rules {
		overrides[code] = validator.Severity(level)
	}
	return overrides
}
