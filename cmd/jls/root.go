package main

import (
	"jls/internal/version"

	"github.com/spf13/cobra"
)

var (
	// rootFlag is the CLI --root flag value
	rootFlag string
	// formatFlag is the CLI --format flag value
	formatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "jls",
	Short: "jls - incremental Java source analysis",
	Long: `jls is an incremental source-code intelligence service for Java
workspaces. It answers editor-style queries (completion, signatures,
definitions, references, import fixes) by focusing analysis on the code
around a cursor instead of recompiling whole projects.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("jls version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "",
		"Workspace root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "json",
		"Output format (json, human)")
}
