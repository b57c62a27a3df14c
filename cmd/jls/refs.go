package main

import (
	"github.com/spf13/cobra"
)

var refsCmd = &cobra.Command{
	Use:   "refs <file> <line> <column>",
	Short: "Find workspace references to the element under a cursor",
	Long: `Find workspace references to the element under a cursor.

Candidate files are narrowed with a textual scan before analysis, so
the cost scales with how often the name appears, not with workspace
size.`,
	Args: cobra.ExactArgs(3),
	Run:  runRefs,
}

func init() {
	rootCmd.AddCommand(refsCmd)
}

func runRefs(cmd *cobra.Command, args []string) {
	logger := newLogger(formatFlag)
	root := mustGetWorkspaceRoot()
	analyzer := mustGetAnalyzer(root, logger)
	line, col := mustParsePosition(args[1], args[2])

	locations, err := analyzer.ReferencesTo(newContext(), args[0], mustReadFile(args[0]), line, col)
	if err != nil {
		logger.Error("Reference search failed", map[string]interface{}{"error": err.Error()})
		exitError(err)
	}
	out := make([]map[string]interface{}, 0, len(locations))
	for _, loc := range locations {
		out = append(out, map[string]interface{}{
			"path":   loc.Path,
			"line":   loc.Line,
			"column": loc.Column,
		})
	}
	printJSON(map[string]interface{}{"references": out})
}
