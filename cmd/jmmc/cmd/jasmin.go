package cmd

import (
	"fmt"

	"github.com/marco-vb/jmmc/internal/driver"
	"github.com/spf13/cobra"
)

var jasminCmd = &cobra.Command{
	Use:   "jasmin [ast.json]",
	Short: "Run the full pipeline and print Jasmin assembly",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		prog, opts, err := loadProgram(args[0])
		if err != nil {
			return err
		}
		result, err := driver.Compile(prog, opts)
		if err != nil {
			exitWithError("%v", err)
		}
		if !result.OK() {
			printReports(result.Reports)
			return nil
		}
		fmt.Print(result.Jasmin)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jasminCmd)
}
