package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-bookfmt/internal/config"
)

// envPrefix starts every recognized environment variable.
const envPrefix = "BOOKFMT_"

// envConfig holds configuration from environment variables.
// Lets CI jobs point at a book without a YAML file.
type envConfig struct {
	ConfigPath string // BOOKFMT_CONFIG: config file name or path
	InputDir   string // BOOKFMT_INPUT_DIR: chapter sources
	OutputDir  string // BOOKFMT_OUTPUT_DIR: generated pages
	CodeDir    string // BOOKFMT_CODE_DIR: code excerpt sources
	Format     string // BOOKFMT_FORMAT: html or xml
	Workers    int    // BOOKFMT_WORKERS: parallel workers
}

// knownEnvVars lists valid BOOKFMT_* environment variables.
var knownEnvVars = map[string]bool{
	"BOOKFMT_CONFIG":     true,
	"BOOKFMT_INPUT_DIR":  true,
	"BOOKFMT_OUTPUT_DIR": true,
	"BOOKFMT_CODE_DIR":   true,
	"BOOKFMT_FORMAT":     true,
	"BOOKFMT_WORKERS":    true,
}

// loadEnvConfig reads the recognized BOOKFMT_* variables.
// Invalid worker counts are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("BOOKFMT_CONFIG"),
		InputDir:   getenv("BOOKFMT_INPUT_DIR"),
		OutputDir:  getenv("BOOKFMT_OUTPUT_DIR"),
		CodeDir:    getenv("BOOKFMT_CODE_DIR"),
		Format:     getenv("BOOKFMT_FORMAT"),
	}

	if workers := getenv("BOOKFMT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars reports unrecognized BOOKFMT_* variables, which are
// usually typos.
func warnUnknownEnvVars(environ []string, w io.Writer) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig copies environment values over the loaded config.
// Priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.Dir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.CodeDir != "" {
		cfg.Code.Dir = env.CodeDir
	}
	if env.Format != "" {
		cfg.Output.Format = strings.ToLower(env.Format)
	}
}
