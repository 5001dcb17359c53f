package semantic

import (
	"testing"

	"github.com/marco-vb/jmmc/internal/ast"
)

func TestUndeclaredVariable_RejectsUnknownLocal(t *testing.T) {
	m := &ast.Method{
		Name: "f",
		Body: []ast.Stmt{
			&ast.ExpressionStmt{Expr: &ast.VarRefExpr{Name: "ghost"}},
		},
	}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Name: "Calc", Methods: []*ast.Method{m}}}
	ctx := runPass(UndeclaredVariable{}, prog)
	if !ctx.HasReports() {
		t.Fatalf("expected a report for an undeclared variable")
	}
}

func TestUndeclaredVariable_AllowsParam(t *testing.T) {
	m := &ast.Method{
		Name:   "f",
		Params: &ast.Arguments{List: []*ast.Argument{{Name: "a", Type: &ast.TypeExpr{Name: "int"}}}},
		Body: []ast.Stmt{
			&ast.ExpressionStmt{Expr: &ast.VarRefExpr{Name: "a"}},
		},
	}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Name: "Calc", Methods: []*ast.Method{m}}}
	ctx := runPass(UndeclaredVariable{}, prog)
	if ctx.HasReports() {
		t.Fatalf("expected no report for a declared parameter, got %+v", ctx.Reports)
	}
}

func TestUndeclaredVariable_AllowsField(t *testing.T) {
	m := &ast.Method{
		Name: "f",
		Body: []ast.Stmt{
			&ast.ExpressionStmt{Expr: &ast.VarRefExpr{Name: "counter"}},
		},
	}
	prog := &ast.Program{Class: &ast.ClassDeclaration{
		Name:    "Calc",
		Fields:  []*ast.Variable{{Name: "counter", Type: &ast.TypeExpr{Name: "int"}}},
		Methods: []*ast.Method{m},
	}}
	ctx := runPass(UndeclaredVariable{}, prog)
	if ctx.HasReports() {
		t.Fatalf("expected no report for a declared field, got %+v", ctx.Reports)
	}
}

func TestUndeclaredVariable_AllowsImportedClassName(t *testing.T) {
	m := &ast.Method{
		Name: "f",
		Body: []ast.Stmt{
			&ast.ExpressionStmt{Expr: &ast.VarRefExpr{Name: "List"}},
		},
	}
	prog := &ast.Program{
		Imports: []*ast.ImportDeclaration{{Name: "java.util.List"}},
		Class:   &ast.ClassDeclaration{Name: "Calc", Methods: []*ast.Method{m}},
	}
	ctx := runPass(UndeclaredVariable{}, prog)
	if ctx.HasReports() {
		t.Fatalf("expected no report for a reference to an imported class name, got %+v", ctx.Reports)
	}
}
