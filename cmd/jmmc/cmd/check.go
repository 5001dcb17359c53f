package cmd

import (
	"fmt"

	"github.com/marco-vb/jmmc/internal/driver"
	"github.com/marco-vb/jmmc/internal/jmmerrors"
	"github.com/marco-vb/jmmc/internal/semantic"
	"github.com/spf13/cobra"
)

var flagCheckJSON bool

var checkCmd = &cobra.Command{
	Use:   "check [ast.json]",
	Short: "Run SymbolTable and SemanticPasses only, printing diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		prog, opts, err := loadProgram(args[0])
		if err != nil {
			return err
		}
		analysis := semantic.Analyze(prog)
		reports := make([]*jmmerrors.CompilerError, len(analysis.Reports))
		for i, rep := range analysis.Reports {
			reports[i] = jmmerrors.NewCompilerError(jmmerrors.Semantic, rep.Pos,
				fmt.Sprintf("[%s] %s", rep.Kind, rep.Message), opts.Source, opts.File)
		}

		if flagCheckJSON {
			out, err := (&driver.Result{Reports: reports}).ReportsJSON()
			if err != nil {
				return fmt.Errorf("failed to marshal diagnostics: %w", err)
			}
			fmt.Println(out)
			if len(reports) > 0 {
				exitWithReports(reports)
			}
			return nil
		}

		if len(reports) == 0 {
			fmt.Println("OK")
			return nil
		}
		printReports(reports)
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&flagCheckJSON, "json", false, "print diagnostics as JSON (editor/CI integrations) instead of caret-pointed text")
	rootCmd.AddCommand(checkCmd)
}
