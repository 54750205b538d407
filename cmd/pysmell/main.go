package main

import (
	"os"

	"github.com/ludo-technologies/pysmell/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pysmell",
	Short: "A Python Code Smell Detector",
	Long: `pysmell detects maintainability problems in Python source code.

It parses each file into a structural model and runs a set of classic
code smell detectors over it:
  • Long methods (length and cyclomatic complexity)
  • God classes (too many fields, methods, or lines)
  • Duplicated code (token and structural similarity between functions)
  • Large parameter lists
  • Magic numbers
  • Feature envy (methods more interested in other objects than their own)`,
	Version: version.Short(),
}

func init() {
	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
