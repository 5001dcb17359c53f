package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var (
	flagVerbose   bool
	flagOptimize  bool
	flagRegisters int
	flagConfig    string
)

var rootCmd = &cobra.Command{
	Use:   "jmmc",
	Short: "Jmm-to-Jasmin compiler back end",
	Long: `jmmc lowers a Jmm program (supplied as a JSON-encoded AST, since
parsing Jmm source text is outside this tool's scope) through symbol
table construction, semantic analysis, constant folding, varargs
lowering, OLLIR emission, and register allocation, down to Jasmin
assembly text.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("jmmc version {{.Version}}\ncommit: %s\n", GitCommit))
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&flagOptimize, "optimize", false, "run ConstantOptimiser before emission")
	rootCmd.PersistentFlags().IntVar(&flagRegisters, "registers", -1, "register allocation ceiling (-1 disables the cap)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file overriding optimize/registers/outputDir")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
