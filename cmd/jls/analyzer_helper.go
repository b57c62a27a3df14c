package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"

	"jls/internal/config"
	"jls/internal/frontend"
	"jls/internal/logging"
	"jls/internal/service"
)

var (
	analyzerOnce   sync.Once
	sharedAnalyzer *service.Analyzer
	analyzerErr    error
)

// getAnalyzer returns a shared Analyzer instance, lazily initialized on
// first use.
func getAnalyzer(root string, logger *logging.Logger) (*service.Analyzer, error) {
	analyzerOnce.Do(func() {
		cfg, err := config.LoadConfig(root)
		if err != nil {
			logger.Warn("Failed to load config, using defaults", map[string]interface{}{
				"error": err.Error(),
			})
			cfg = config.DefaultConfig()
		}
		cfg.SourceRoot = root

		analyzer, err := service.New(cfg, logger)
		if err != nil {
			analyzerErr = fmt.Errorf("failed to create analyzer: %w", err)
			return
		}
		sharedAnalyzer = analyzer
	})
	return sharedAnalyzer, analyzerErr
}

// mustGetAnalyzer returns the shared Analyzer or exits on error.
func mustGetAnalyzer(root string, logger *logging.Logger) *service.Analyzer {
	analyzer, err := getAnalyzer(root, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing analyzer: %v\n", err)
		os.Exit(1)
	}
	return analyzer
}

// getWorkspaceRoot resolves the workspace root from the --root flag or
// the current directory.
func getWorkspaceRoot() (string, error) {
	if rootFlag != "" {
		return rootFlag, nil
	}
	return os.Getwd()
}

// mustGetWorkspaceRoot returns the workspace root or exits on error.
func mustGetWorkspaceRoot() string {
	root, err := getWorkspaceRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return root
}

// newLogger builds the command logger honoring the --format flag.
func newLogger(format string) *logging.Logger {
	f := logging.JSONFormat
	if format == "human" {
		f = logging.HumanFormat
	}
	return logging.New(logging.Config{Format: f, Level: logging.InfoLevel})
}

// newContext creates a new context for command execution.
func newContext() context.Context {
	return context.Background()
}

// mustReadFile reads a source file or exits.
func mustReadFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return string(data)
}

// mustParsePosition converts line and column arguments, 1-based.
func mustParsePosition(lineArg, colArg string) (int, int) {
	line, err := strconv.Atoi(lineArg)
	if err != nil || line < 1 {
		fmt.Fprintf(os.Stderr, "Error: invalid line %q\n", lineArg)
		os.Exit(1)
	}
	col, err := strconv.Atoi(colArg)
	if err != nil || col < 1 {
		fmt.Fprintf(os.Stderr, "Error: invalid column %q\n", colArg)
		os.Exit(1)
	}
	return line, col
}

// exitError prints an error and exits non-zero.
func exitError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// printJSON renders a command result on stdout.
func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// elementJSON flattens an element for output.
func elementJSON(e *frontend.Element) map[string]interface{} {
	if e == nil {
		return nil
	}
	out := map[string]interface{}{
		"kind":      e.Kind.String(),
		"name":      e.Name,
		"signature": e.String(),
	}
	if e.Qualified != "" {
		out["qualified"] = e.Qualified
	}
	if e.Type != nil {
		out["type"] = e.Type.String()
	}
	if e.Owner != nil && e.Owner.Kind != frontend.ElemPackage {
		out["owner"] = e.Owner.String()
	}
	return out
}
