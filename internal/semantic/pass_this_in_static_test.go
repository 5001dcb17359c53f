package semantic

import (
	"testing"

	"github.com/marco-vb/jmmc/internal/ast"
)

func TestThisInStaticMethod_RejectsThisInStaticBody(t *testing.T) {
	m := &ast.Method{
		Name:     "main",
		IsStatic: true,
		Body: []ast.Stmt{
			&ast.ExpressionStmt{Expr: &ast.FuncExpr{Receiver: &ast.ThisExpr{}, MethodName: "helper"}},
		},
	}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Name: "Calc", Methods: []*ast.Method{m}}}
	ctx := runPass(ThisInStaticMethod{}, prog)
	if !ctx.HasReports() {
		t.Fatalf("expected a report for 'this' used inside a static method")
	}
}

func TestThisInStaticMethod_AllowsThisInInstanceMethod(t *testing.T) {
	m := &ast.Method{
		Name: "f",
		Body: []ast.Stmt{
			&ast.ExpressionStmt{Expr: &ast.FuncExpr{Receiver: &ast.ThisExpr{}, MethodName: "helper"}},
		},
	}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Name: "Calc", Methods: []*ast.Method{m}}}
	ctx := runPass(ThisInStaticMethod{}, prog)
	if ctx.HasReports() {
		t.Fatalf("expected no report for 'this' used inside an instance method, got %+v", ctx.Reports)
	}
}

func TestThisInStaticMethod_AllowsStaticMethodWithoutThis(t *testing.T) {
	m := &ast.Method{
		Name:     "main",
		IsStatic: true,
		Body: []ast.Stmt{
			&ast.ExpressionStmt{Expr: &ast.FuncExpr{Receiver: nil, MethodName: "helper"}},
		},
	}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Name: "Calc", Methods: []*ast.Method{m}}}
	ctx := runPass(ThisInStaticMethod{}, prog)
	if ctx.HasReports() {
		t.Fatalf("expected no report for a static method without 'this', got %+v", ctx.Reports)
	}
}
