package semantic

import "github.com/marco-vb/jmmc/internal/ast"

// UndefinedMethod requires every FuncExpr's method name to be either
// declared in this class, callable on a receiver whose static type is
// an imported class, or callable on an instance of this class whose
// (assumed-available) superclass is imported (spec.md §4.3).
type UndefinedMethod struct{}

func (UndefinedMethod) Name() string { return "UndefinedMethod" }

func (p UndefinedMethod) Run(prog *ast.Program, ctx *Context) {
	if prog == nil || prog.Class == nil {
		return
	}
	for _, m := range prog.Class.Methods {
		ast.Walk(&ast.ScopeStmt{Stmts: m.Body}, func(n ast.Node) bool {
			fe, ok := n.(*ast.FuncExpr)
			if !ok {
				return true
			}
			if !p.resolvable(fe, m, ctx) {
				ctx.AddReport(p.Name(), n, "undefined method %q", fe.MethodName)
			}
			return true
		})
	}
}

func (p UndefinedMethod) resolvable(fe *ast.FuncExpr, m *ast.Method, ctx *Context) bool {
	st := ctx.ST
	recvType := ctx.TE.ExprType(fe.Receiver, m)

	if st.HasMethod(fe.MethodName) && recvType.Name == st.ClassName() && !recvType.IsArray {
		return true
	}
	if recvType.Name != "" && st.IsImported(recvType.Name) {
		return true
	}
	if recvType.Name == st.ClassName() && !recvType.IsArray {
		if super, ok := st.SuperClassName(); ok && st.IsImported(super) {
			return true
		}
	}
	return false
}
