package main

import (
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the workspace class catalog",
	Long: `Rebuild the workspace class catalog.

The catalog backs not-yet-imported completion and import fixing. It is
stored as SQLite under the workspace's .jls directory.`,
	Args: cobra.NoArgs,
	Run:  runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) {
	logger := newLogger(formatFlag)
	root := mustGetWorkspaceRoot()
	analyzer := mustGetAnalyzer(root, logger)

	if err := analyzer.RebuildIndex(newContext()); err != nil {
		logger.Error("Index rebuild failed", map[string]interface{}{"error": err.Error()})
		exitError(err)
	}
	printJSON(map[string]interface{}{"status": "ok"})
}
