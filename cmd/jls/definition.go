package main

import (
	"github.com/spf13/cobra"
)

var definitionCmd = &cobra.Command{
	Use:   "definition <file> <line> <column>",
	Short: "Jump to the declaration of the element under a cursor",
	Long: `Jump to the declaration of the element under a cursor.

Platform classes have no source location; for those only the element
description is returned.`,
	Args: cobra.ExactArgs(3),
	Run:  runDefinition,
}

var elementCmd = &cobra.Command{
	Use:   "element <file> <line> <column>",
	Short: "Describe the element under a cursor",
	Args:  cobra.ExactArgs(3),
	Run:   runElement,
}

func init() {
	rootCmd.AddCommand(definitionCmd)
	rootCmd.AddCommand(elementCmd)
}

func runDefinition(cmd *cobra.Command, args []string) {
	logger := newLogger(formatFlag)
	root := mustGetWorkspaceRoot()
	analyzer := mustGetAnalyzer(root, logger)
	line, col := mustParsePosition(args[1], args[2])

	def, err := analyzer.DefinitionOf(args[0], mustReadFile(args[0]), line, col)
	if err != nil {
		logger.Error("Definition lookup failed", map[string]interface{}{"error": err.Error()})
		exitError(err)
	}
	out := map[string]interface{}{"element": elementJSON(def.Element)}
	if def.Path != "" {
		out["path"] = def.Path
		out["line"] = def.Line
		out["column"] = def.Column
	}
	printJSON(out)
}

func runElement(cmd *cobra.Command, args []string) {
	logger := newLogger(formatFlag)
	root := mustGetWorkspaceRoot()
	analyzer := mustGetAnalyzer(root, logger)
	line, col := mustParsePosition(args[1], args[2])

	elem, err := analyzer.ElementAt(args[0], mustReadFile(args[0]), line, col)
	if err != nil {
		logger.Error("Element lookup failed", map[string]interface{}{"error": err.Error()})
		exitError(err)
	}
	printJSON(elementJSON(elem))
}
