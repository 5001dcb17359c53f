package semantic

import (
	"github.com/marco-vb/jmmc/internal/ast"
	"github.com/marco-vb/jmmc/internal/symtable"
)

// DefaultPasses returns the SemanticPasses in the fixed order spec.md
// §4.3 lists them. Order matters: later passes assume earlier ones
// found nothing, e.g. TypeError's call-arity check trusts
// DuplicatedElement already ruled out same-named overload ambiguity,
// and UndefinedMethod assumes UndeclaredVariable already validated
// every receiver identifier.
func DefaultPasses() []Pass {
	return []Pass{
		DuplicatedElement{},
		ThisInStaticMethod{},
		InvalidMethodDeclaration{},
		UndeclaredVariable{},
		UndefinedMethod{},
		TypeError{},
		InvalidArrayAccess{},
		InvalidVarargs{},
	}
}

// Result is the outcome of running the analyzer over one program.
type Result struct {
	Table   *symtable.Table
	Reports []Report
}

// Analyze builds the SymbolTable and runs DefaultPasses against prog,
// halting at the first pass that reports anything (spec.md §4.3).
func Analyze(prog *ast.Program) *Result {
	st := symtable.Build(prog)
	ctx := NewContext(st)
	pm := NewPassManager(DefaultPasses()...)
	reports := pm.RunAll(prog, ctx)
	return &Result{Table: st, Reports: reports}
}

// OK reports whether analysis found no diagnostics.
func (r *Result) OK() bool { return len(r.Reports) == 0 }
