// Package config loads the pld project manifest (spec.md §6's
// sources/targets/languages table) the way the teacher's
// internal/cli/config loads conduit.yml: viper, SetDefault for
// defaults, AutomaticEnv for environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// RemoteSource is one `sources.remote` entry: a schema fetched by the
// CLI's fetch collaborator before the parser ever sees it.
type RemoteSource struct {
	URL     string            `mapstructure:"url"`
	Headers map[string]string `mapstructure:"headers"`
}

// Sources selects which `.pld` files feed the compiler.
type Sources struct {
	Include []string       `mapstructure:"include"`
	Exclude []string       `mapstructure:"exclude"`
	Remote  []RemoteSource `mapstructure:"remote"`
}

// LanguageConfig configures one emitter target language.
type LanguageConfig struct {
	OutputDir string         `mapstructure:"output_dir"`
	Mem       bool           `mapstructure:"mem"`
	Opts      map[string]any `mapstructure:"opts"`
}

// Manifest is the full pld.yml project configuration: spec.md §6's
// manifest table.
type Manifest struct {
	Sources   Sources                   `mapstructure:"sources"`
	Targets   []string                  `mapstructure:"targets"`
	Languages []string                  `mapstructure:"languages"`
	Language  map[string]LanguageConfig `mapstructure:"language"`
	Rules     map[string]string         `mapstructure:"rules"`
}

// Load loads the manifest from pld.yml/pld.yaml in the current
// directory, falling back to documented defaults when the file is
// absent. Environment variables prefixed PLD_ override any value
// (e.g. PLD_TARGETS, PLD_LANGUAGES), matching spec.md §6's
// "environment variables prefixed with a configured namespace."
func Load() (*Manifest, error) {
	v := viper.New()

	v.SetDefault("sources.include", []string{"**/*.pld"})
	v.SetDefault("sources.exclude", []string{})
	v.SetDefault("targets", []string{"types"})
	v.SetDefault("languages", []string{"rust"})

	v.SetConfigName("pld")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PLD")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var manifest Manifest
	if err := v.Unmarshal(&manifest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateManifest(&manifest); err != nil {
		return nil, err
	}

	return &manifest, nil
}

func validateManifest(m *Manifest) error {
	validTargets := map[string]bool{"client": true, "server": true, "types": true}
	for _, t := range m.Targets {
		if !validTargets[t] {
			return fmt.Errorf("targets: unknown target %q (want client, server, or types)", t)
		}
	}
	return nil
}

// InProject reports whether the current directory has a pld manifest.
func InProject() bool {
	if _, err := os.Stat("pld.yml"); err == nil {
		return true
	}
	if _, err := os.Stat("pld.yaml"); err == nil {
		return true
	}
	return false
}

// ProjectRoot walks up from the working directory looking for a pld
// manifest, the way the teacher's GetProjectRoot looks for conduit.yml.
func ProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "pld.yml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "pld.yaml")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a pld project (no pld.yml found)")
		}
		dir = parent
	}
}
