package semantic

import (
	"testing"

	"github.com/marco-vb/jmmc/internal/ast"
)

func TestUndefinedMethod_RejectsUnknownCall(t *testing.T) {
	m := &ast.Method{
		Name: "f",
		Body: []ast.Stmt{
			&ast.ExpressionStmt{Expr: &ast.FuncExpr{Receiver: &ast.ThisExpr{}, MethodName: "ghost"}},
		},
	}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Name: "Calc", Methods: []*ast.Method{m}}}
	ctx := runPass(UndefinedMethod{}, prog)
	if !ctx.HasReports() {
		t.Fatalf("expected a report for a call to an undeclared method")
	}
}

func TestUndefinedMethod_AllowsCallToDeclaredMethod(t *testing.T) {
	callee := &ast.Method{Name: "helper"}
	caller := &ast.Method{
		Name: "f",
		Body: []ast.Stmt{
			&ast.ExpressionStmt{Expr: &ast.FuncExpr{Receiver: &ast.ThisExpr{}, MethodName: "helper"}},
		},
	}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Name: "Calc", Methods: []*ast.Method{callee, caller}}}
	ctx := runPass(UndefinedMethod{}, prog)
	if ctx.HasReports() {
		t.Fatalf("expected no report for a call to a declared method, got %+v", ctx.Reports)
	}
}

func TestUndefinedMethod_AllowsCallOnImportedReceiver(t *testing.T) {
	caller := &ast.Method{
		Name: "f",
		Locals: []*ast.Variable{
			{Name: "lst", Type: &ast.TypeExpr{Name: "List"}},
		},
		Body: []ast.Stmt{
			&ast.ExpressionStmt{Expr: &ast.FuncExpr{Receiver: &ast.VarRefExpr{Name: "lst"}, MethodName: "size"}},
		},
	}
	prog := &ast.Program{
		Imports: []*ast.ImportDeclaration{{Name: "java.util.List"}},
		Class:   &ast.ClassDeclaration{Name: "Calc", Methods: []*ast.Method{caller}},
	}
	ctx := runPass(UndefinedMethod{}, prog)
	if ctx.HasReports() {
		t.Fatalf("expected no report for a call on an imported-type receiver, got %+v", ctx.Reports)
	}
}
