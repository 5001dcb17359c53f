// Package driver wires the pipeline stages spec.md §3 lists — SymbolTable,
// SemanticPasses, ConstantOptimiser, VarargsLowerer, OllirEmitter,
// OllirReader, RegisterAllocator, JasminEmitter — into Compile/CompileToOllir
// entry points, mirroring the teacher's pkg/dwscript facade role.
package driver

import (
	"fmt"

	"github.com/marco-vb/jmmc/internal/ast"
	"github.com/marco-vb/jmmc/internal/constfold"
	"github.com/marco-vb/jmmc/internal/jasmin"
	"github.com/marco-vb/jmmc/internal/jmmerrors"
	"github.com/marco-vb/jmmc/internal/lexer"
	"github.com/marco-vb/jmmc/internal/ollir"
	"github.com/marco-vb/jmmc/internal/regalloc"
	"github.com/marco-vb/jmmc/internal/semantic"
	"github.com/marco-vb/jmmc/internal/symtable"
	"github.com/marco-vb/jmmc/internal/varargs"
)

// noRegisterCeiling disables the RegisterAllocator's cap: the flag value
// spec.md §6 calls "-1" is translated to this sentinel before Allocate
// ever sees it, since Allocate takes an inclusive ceiling.
const noRegisterCeiling = 1<<31 - 1

// Options configures one Compile call (spec.md §6's driver surface).
type Options struct {
	Optimize           bool
	RegisterAllocation int // -1 disables the cap
	Source             string
	File               string
}

// Result carries every artifact a caller might want out of one
// compilation, plus the diagnostics that halted it, if any.
type Result struct {
	Table   *symtable.Table
	Reports []*jmmerrors.CompilerError
	Ollir   string
	Jasmin  string
}

// OK reports whether compilation produced no diagnostics.
func (r *Result) OK() bool { return len(r.Reports) == 0 }

func reportsFromAnalysis(analysis *semantic.Result, opts Options) []*jmmerrors.CompilerError {
	reports := make([]*jmmerrors.CompilerError, len(analysis.Reports))
	for i, rep := range analysis.Reports {
		reports[i] = jmmerrors.NewCompilerError(jmmerrors.Semantic, rep.Pos,
			fmt.Sprintf("[%s] %s", rep.Kind, rep.Message), opts.Source, opts.File)
	}
	return reports
}

func recoverInternal(result **Result, opts Options) {
	r := recover()
	if r == nil {
		return
	}
	ie, ok := r.(*jmmerrors.InternalError)
	if !ok {
		panic(r)
	}
	*result = &Result{Reports: []*jmmerrors.CompilerError{
		jmmerrors.NewCompilerError(jmmerrors.Internal, lexer.Position{}, ie.Error(), opts.Source, opts.File),
	}}
}

// CompileToOllir runs SymbolTable, SemanticPasses, ConstantOptimiser (if
// enabled), VarargsLowerer, and OllirEmitter only — the scope of
// cmd/jmmc's "ollir" subcommand, which never needs a register ceiling.
func CompileToOllir(prog *ast.Program, opts Options) (result *Result, err error) {
	defer recoverInternal(&result, opts)

	analysis := semantic.Analyze(prog)
	if len(analysis.Reports) > 0 {
		return &Result{Table: analysis.Table, Reports: reportsFromAnalysis(analysis, opts)}, nil
	}

	if opts.Optimize {
		constfold.Run(prog)
	}
	te := semantic.NewTypeEngine(analysis.Table)
	varargs.Run(prog, te)

	ollirText := ollir.NewEmitter(analysis.Table, te).Emit(prog)

	return &Result{Table: analysis.Table, Ollir: ollirText}, nil
}

// Compile runs prog through every stage in order, stopping as soon as
// SemanticPasses reports anything (spec.md §4.3) or RegisterAllocator
// rejects the requested ceiling (spec.md §4.7). A panic raised with
// jmmerrors.Panic by any stage is recovered here and converted into a
// single INTERNAL-stage CompilerError rather than crashing the caller.
func Compile(prog *ast.Program, opts Options) (result *Result, err error) {
	defer recoverInternal(&result, opts)

	toOllir, err := CompileToOllir(prog, opts)
	if err != nil {
		return nil, err
	}
	if !toOllir.OK() {
		return toOllir, nil
	}

	cu := ollir.Read(toOllir.Ollir)

	ceiling := opts.RegisterAllocation
	if ceiling < 0 {
		ceiling = noRegisterCeiling
	}
	registers := make(map[string]map[string]int, len(cu.Methods))
	for _, m := range cu.Methods {
		alloc, allocErr := regalloc.Allocate(m, ceiling)
		if allocErr != nil {
			raErr, ok := allocErr.(*regalloc.Error)
			if !ok {
				return nil, allocErr
			}
			return &Result{Table: toOllir.Table, Ollir: toOllir.Ollir, Reports: []*jmmerrors.CompilerError{
				jmmerrors.NewCompilerError(jmmerrors.Optimization, lexer.Position{},
					fmt.Sprintf("%s (need at least %d registers)", raErr.Error(), raErr.MinNeeded),
					opts.Source, opts.File),
			}}, nil
		}
		registers[m.Name] = alloc.Registers
	}

	imports := make([]string, len(prog.Imports))
	for i, imp := range prog.Imports {
		imports[i] = imp.Name
	}
	jasminText := jasmin.NewEmitter(cu, imports).Emit(registers)

	return &Result{
		Table:  toOllir.Table,
		Ollir:  toOllir.Ollir,
		Jasmin: jasminText,
	}, nil
}
