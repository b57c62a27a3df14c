package main

import (
	"github.com/spf13/cobra"
)

var fixImportsCmd = &cobra.Command{
	Use:   "fix-imports <file>",
	Short: "Compute the import list a file should have",
	Long: `Compute the import list a file should have.

The list covers every class the file references and adds best-guess
imports for unresolved class names, preferring whatever the rest of the
workspace imports for the same name.`,
	Args: cobra.ExactArgs(1),
	Run:  runFixImports,
}

func init() {
	rootCmd.AddCommand(fixImportsCmd)
}

func runFixImports(cmd *cobra.Command, args []string) {
	logger := newLogger(formatFlag)
	root := mustGetWorkspaceRoot()
	analyzer := mustGetAnalyzer(root, logger)

	imports, unresolved, err := analyzer.FixImports(args[0], mustReadFile(args[0]))
	if err != nil {
		logger.Error("Import fixing failed", map[string]interface{}{"error": err.Error()})
		exitError(err)
	}
	printJSON(map[string]interface{}{
		"imports":    imports,
		"unresolved": unresolved,
	})
}
