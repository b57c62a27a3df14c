package main

import (
	"github.com/spf13/cobra"

	"jls/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a workspace",
	Long: `Initialize a workspace: write the default configuration to
.jls/config.json and build the class catalog.`,
	Args: cobra.NoArgs,
	Run:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	logger := newLogger(formatFlag)
	root := mustGetWorkspaceRoot()

	cfg := config.DefaultConfig()
	cfg.SourceRoot = root
	if err := cfg.Save(root); err != nil {
		logger.Error("Failed to write config", map[string]interface{}{"error": err.Error()})
		exitError(err)
	}

	analyzer := mustGetAnalyzer(root, logger)
	if err := analyzer.RebuildIndex(newContext()); err != nil {
		logger.Error("Index build failed", map[string]interface{}{"error": err.Error()})
		exitError(err)
	}
	printJSON(map[string]interface{}{
		"status": "ok",
		"root":   root,
	})
}
