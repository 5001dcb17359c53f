package semantic

import "github.com/marco-vb/jmmc/internal/ast"

// UndeclaredVariable requires every VarRefExpr to resolve to a local,
// parameter, field, or imported class (spec.md §4.3).
type UndeclaredVariable struct{}

func (UndeclaredVariable) Name() string { return "UndeclaredVariable" }

func (p UndeclaredVariable) Run(prog *ast.Program, ctx *Context) {
	if prog == nil || prog.Class == nil {
		return
	}
	for _, m := range prog.Class.Methods {
		ast.Walk(&ast.ScopeStmt{Stmts: m.Body}, func(n ast.Node) bool {
			ref, ok := n.(*ast.VarRefExpr)
			if !ok {
				return true
			}
			if _, resolved := ctx.TE.ResolveName(ref.Name, m); !resolved {
				ctx.AddReport(p.Name(), n, "undeclared variable %q", ref.Name)
			}
			return true
		})
	}
}
