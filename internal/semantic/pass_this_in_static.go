package semantic

import "github.com/marco-vb/jmmc/internal/ast"

// ThisInStaticMethod forbids ThisExpr inside a static method body
// (spec.md §4.3).
type ThisInStaticMethod struct{}

func (ThisInStaticMethod) Name() string { return "ThisInStaticMethod" }

func (p ThisInStaticMethod) Run(prog *ast.Program, ctx *Context) {
	if prog == nil || prog.Class == nil {
		return
	}
	for _, m := range prog.Class.Methods {
		if !m.IsStatic {
			continue
		}
		for _, s := range m.Body {
			ast.Walk(s, func(n ast.Node) bool {
				if _, ok := n.(*ast.ThisExpr); ok {
					ctx.AddReport(p.Name(), n, "'this' used inside static method %q", m.Name)
				}
				return true
			})
		}
	}
}
