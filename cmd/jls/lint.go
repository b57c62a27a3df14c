package main

import (
	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:   "lint <files...>",
	Short: "Report resolution diagnostics for files",
	Args:  cobra.MinimumNArgs(1),
	Run:   runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) {
	logger := newLogger(formatFlag)
	root := mustGetWorkspaceRoot()
	analyzer := mustGetAnalyzer(root, logger)

	diags, err := analyzer.Lint(args)
	if err != nil {
		logger.Error("Lint failed", map[string]interface{}{"error": err.Error()})
		exitError(err)
	}
	out := make(map[string][]map[string]interface{}, len(diags))
	for path, list := range diags {
		entries := make([]map[string]interface{}, 0, len(list))
		for _, d := range list {
			entries = append(entries, map[string]interface{}{
				"code":    d.Code,
				"message": d.Message,
				"start":   d.Start,
				"end":     d.End,
			})
		}
		out[path] = entries
	}
	printJSON(map[string]interface{}{"diagnostics": out})
}
