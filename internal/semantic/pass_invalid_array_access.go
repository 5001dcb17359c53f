package semantic

import "github.com/marco-vb/jmmc/internal/ast"

// InvalidArrayAccess requires the indexed expression of every
// ArrayAccessExpr to have an array type (spec.md §4.3).
type InvalidArrayAccess struct{}

func (InvalidArrayAccess) Name() string { return "InvalidArrayAccess" }

func (p InvalidArrayAccess) Run(prog *ast.Program, ctx *Context) {
	if prog == nil || prog.Class == nil {
		return
	}
	for _, m := range prog.Class.Methods {
		ast.Walk(&ast.ScopeStmt{Stmts: m.Body}, func(n ast.Node) bool {
			aa, ok := n.(*ast.ArrayAccessExpr)
			if !ok {
				return true
			}
			t := ctx.TE.ExprType(aa.Arr, m)
			if !t.IsArray {
				ctx.AddReport(p.Name(), aa, "cannot index non-array type %s", t)
			}
			return true
		})
	}
}
