package semantic

import "github.com/marco-vb/jmmc/internal/ast"

// InvalidMethodDeclaration enforces spec.md §4.3's method-shape rules:
// only "main" may be static, "main" must be static/void/single
// String[] parameter, a non-void method has exactly one ReturnStmt as
// its last statement, and a void method has none.
type InvalidMethodDeclaration struct{}

func (InvalidMethodDeclaration) Name() string { return "InvalidMethodDeclaration" }

func (p InvalidMethodDeclaration) Run(prog *ast.Program, ctx *Context) {
	if prog == nil || prog.Class == nil {
		return
	}
	for _, m := range prog.Class.Methods {
		if m.Name == "main" {
			p.checkMain(m, ctx)
		} else if m.IsStatic {
			ctx.AddReport(p.Name(), m, "only 'main' may be declared static, got %q", m.Name)
		}

		isVoid := m.ReturnType == nil || m.ReturnType.Name == "void"
		count := 0
		ast.Walk(&ast.ScopeStmt{Stmts: m.Body}, func(n ast.Node) bool {
			if _, ok := n.(*ast.ReturnStmt); ok {
				count++
			}
			return true
		})

		if isVoid {
			if count != 0 {
				ctx.AddReport(p.Name(), m, "void method %q must not contain a return statement", m.Name)
			}
			continue
		}

		if count != 1 {
			ctx.AddReport(p.Name(), m, "method %q must contain exactly one return statement, found %d", m.Name, count)
			continue
		}
		if len(m.Body) == 0 {
			ctx.AddReport(p.Name(), m, "method %q must end with its return statement", m.Name)
			continue
		}
		if _, ok := m.Body[len(m.Body)-1].(*ast.ReturnStmt); !ok {
			ctx.AddReport(p.Name(), m, "method %q's return statement must be its last statement", m.Name)
		}
	}
}

func (p InvalidMethodDeclaration) checkMain(m *ast.Method, ctx *Context) {
	if !m.IsStatic {
		ctx.AddReport(p.Name(), m, "'main' must be declared static")
	}
	if m.ReturnType == nil || m.ReturnType.Name != "void" || m.ReturnType.IsArray {
		ctx.AddReport(p.Name(), m, "'main' must return void")
	}
	if m.Params == nil || len(m.Params.List) != 1 {
		ctx.AddReport(p.Name(), m, "'main' must declare exactly one parameter")
		return
	}
	param := m.Params.List[0]
	if param.Type == nil || param.Type.Name != "String" || !param.Type.IsArray || param.Type.IsVarargs {
		ctx.AddReport(p.Name(), m, "'main' parameter must be of type String[]")
	}
}
