package main

import (
	"github.com/spf13/cobra"

	"jls/internal/complete"
)

var (
	completeReference bool
	completeLimit     int
)

var completeCmd = &cobra.Command{
	Use:   "complete <file> <line> <column>",
	Short: "Complete at a cursor position",
	Long: `Complete at a cursor position.

The completion kind follows from the text before the cursor: after a
dot the members of the qualifier are offered, after :: referencable
members, otherwise names in scope plus keywords plus indexed classes.

Examples:
  jls complete src/main/java/App.java 12 18
  jls complete App.java 3 9 --format=human`,
	Args: cobra.ExactArgs(3),
	Run:  runComplete,
}

var membersCmd = &cobra.Command{
	Use:   "members <file> <line> <column>",
	Short: "List members of the expression at a cursor",
	Long: `List members of the expression at a cursor position.

With --reference the ::-referencable view is produced, which includes
constructors.`,
	Args: cobra.ExactArgs(3),
	Run:  runMembers,
}

var scopeCmd = &cobra.Command{
	Use:   "scope <file> <line> <column>",
	Short: "List every name visible at a cursor",
	Args:  cobra.ExactArgs(3),
	Run:   runScope,
}

var signatureCmd = &cobra.Command{
	Use:   "signature <file> <line> <column>",
	Short: "Describe the method call surrounding a cursor",
	Args:  cobra.ExactArgs(3),
	Run:   runSignature,
}

func init() {
	completeCmd.Flags().IntVar(&completeLimit, "limit", -1,
		"Cap on indexed-class candidates (-1 uses the configured default, 0 is unbounded)")
	membersCmd.Flags().BoolVar(&completeReference, "reference", false,
		"List the ::-referencable members instead of the dotted view")
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(scopeCmd)
	rootCmd.AddCommand(signatureCmd)
}

func runComplete(cmd *cobra.Command, args []string) {
	logger := newLogger(formatFlag)
	root := mustGetWorkspaceRoot()
	analyzer := mustGetAnalyzer(root, logger)
	line, col := mustParsePosition(args[1], args[2])

	result, err := analyzer.Completions(args[0], mustReadFile(args[0]), line, col, completeLimit)
	if err != nil {
		logger.Error("Completion failed", map[string]interface{}{"error": err.Error()})
		exitError(err)
	}
	printJSON(map[string]interface{}{
		"isIncomplete": result.IsIncomplete,
		"items":        itemsJSON(result.Items),
	})
}

func runMembers(cmd *cobra.Command, args []string) {
	logger := newLogger(formatFlag)
	root := mustGetWorkspaceRoot()
	analyzer := mustGetAnalyzer(root, logger)
	line, col := mustParsePosition(args[1], args[2])

	result, err := analyzer.Members(args[0], mustReadFile(args[0]), line, col, completeReference)
	if err != nil {
		logger.Error("Member listing failed", map[string]interface{}{"error": err.Error()})
		exitError(err)
	}
	printJSON(map[string]interface{}{"items": itemsJSON(result.Items)})
}

func runScope(cmd *cobra.Command, args []string) {
	logger := newLogger(formatFlag)
	root := mustGetWorkspaceRoot()
	analyzer := mustGetAnalyzer(root, logger)
	line, col := mustParsePosition(args[1], args[2])

	elems, err := analyzer.ScopeMembers(args[0], mustReadFile(args[0]), line, col)
	if err != nil {
		logger.Error("Scope listing failed", map[string]interface{}{"error": err.Error()})
		exitError(err)
	}
	out := make([]map[string]interface{}, 0, len(elems))
	for _, e := range elems {
		out = append(out, elementJSON(e))
	}
	printJSON(map[string]interface{}{"members": out})
}

func runSignature(cmd *cobra.Command, args []string) {
	logger := newLogger(formatFlag)
	root := mustGetWorkspaceRoot()
	analyzer := mustGetAnalyzer(root, logger)
	line, col := mustParsePosition(args[1], args[2])

	inv, err := analyzer.MethodInvocation(args[0], mustReadFile(args[0]), line, col)
	if err != nil {
		logger.Error("Signature lookup failed", map[string]interface{}{"error": err.Error()})
		exitError(err)
	}
	overloads := make([]map[string]interface{}, 0, len(inv.Overloads))
	for _, m := range inv.Overloads {
		overloads = append(overloads, elementJSON(m))
	}
	printJSON(map[string]interface{}{
		"overloads":       overloads,
		"active":          elementJSON(inv.Active),
		"activeParameter": inv.ActiveParameter,
	})
}

func itemsJSON(items []complete.Item) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		entry := map[string]interface{}{"kind": item.Kind.String()}
		switch item.Kind {
		case complete.ItemElement:
			entry["element"] = elementJSON(item.Element)
		case complete.ItemKeyword, complete.ItemPackagePart:
			entry["label"] = item.Label
		case complete.ItemNotImportedClass:
			entry["className"] = item.ClassName
		}
		out = append(out, entry)
	}
	return out
}
