package cmd

import (
	"fmt"
	"os"

	"github.com/marco-vb/jmmc/internal/ast"
	"github.com/marco-vb/jmmc/internal/astjson"
	"github.com/marco-vb/jmmc/internal/config"
	"github.com/marco-vb/jmmc/internal/driver"
	"github.com/marco-vb/jmmc/internal/jmmerrors"
)

// loadProgram reads filename (a JSON-encoded AST) and applies any
// `// jmmc: {...}` override comment found in it on top of opts.
func loadProgram(filename string) (*ast.Program, driver.Options, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, driver.Options{}, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	prog, err := astjson.Load(data)
	if err != nil {
		return nil, driver.Options{}, fmt.Errorf("failed to parse AST in %s: %w", filename, err)
	}

	opts := driver.Options{
		Optimize:           flagOptimize,
		RegisterAllocation: flagRegisters,
		Source:             string(data),
		File:               filename,
	}
	if flagConfig != "" {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return nil, driver.Options{}, fmt.Errorf("failed to read config %s: %w", flagConfig, err)
		}
		opts.Optimize = cfg.Optimize
		opts.RegisterAllocation = cfg.RegisterAllocation
	}
	if ov := config.ScanOverrides(string(data)); ov.Registers != -1 || ov.Optimize != nil {
		if ov.Registers != -1 {
			opts.RegisterAllocation = ov.Registers
		}
		if ov.Optimize != nil {
			opts.Optimize = *ov.Optimize
		}
	}
	return prog, opts, nil
}

// printReports writes every diagnostic to stderr and exits nonzero if
// any of them is ERROR severity, per spec.md §6's driver-surface
// contract.
func printReports(reports []*jmmerrors.CompilerError) {
	hasError := false
	for _, rep := range reports {
		fmt.Fprintln(os.Stderr, rep.Format(true))
		if rep.Severity == jmmerrors.ErrorSeverity {
			hasError = true
		}
	}
	if hasError {
		os.Exit(1)
	}
}

// exitWithReports exits nonzero if any report is ERROR severity, without
// printing anything itself — for callers that already rendered the
// reports in a different format (e.g. check --json).
func exitWithReports(reports []*jmmerrors.CompilerError) {
	for _, rep := range reports {
		if rep.Severity == jmmerrors.ErrorSeverity {
			os.Exit(1)
		}
	}
}
