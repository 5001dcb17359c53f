package cmd

import (
	"fmt"

	"github.com/marco-vb/jmmc/internal/driver"
	"github.com/spf13/cobra"
)

var ollirCmd = &cobra.Command{
	Use:   "ollir [ast.json]",
	Short: "Run the pipeline through OllirEmitter and print the OLLIR text",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		prog, opts, err := loadProgram(args[0])
		if err != nil {
			return err
		}
		result, err := driver.CompileToOllir(prog, opts)
		if err != nil {
			exitWithError("%v", err)
		}
		if !result.OK() {
			printReports(result.Reports)
			return nil
		}
		fmt.Print(result.Ollir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ollirCmd)
}
