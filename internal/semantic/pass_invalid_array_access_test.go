package semantic

import (
	"testing"

	"github.com/marco-vb/jmmc/internal/ast"
)

func TestInvalidArrayAccess_RejectsIndexingScalar(t *testing.T) {
	m := &ast.Method{
		Name:   "f",
		Locals: []*ast.Variable{{Name: "n", Type: &ast.TypeExpr{Name: "int"}}},
		Body: []ast.Stmt{
			&ast.ExpressionStmt{Expr: &ast.ArrayAccessExpr{
				Arr: &ast.VarRefExpr{Name: "n"},
				Idx: &ast.IntegerLiteral{Value: "0"},
			}},
		},
	}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Methods: []*ast.Method{m}}}
	ctx := runPass(InvalidArrayAccess{}, prog)
	if !ctx.HasReports() {
		t.Fatalf("expected a report for indexing a non-array")
	}
}

func TestInvalidArrayAccess_AllowsIndexingArray(t *testing.T) {
	m := &ast.Method{
		Name:   "f",
		Locals: []*ast.Variable{{Name: "xs", Type: &ast.TypeExpr{Name: "int", IsArray: true}}},
		Body: []ast.Stmt{
			&ast.ExpressionStmt{Expr: &ast.ArrayAccessExpr{
				Arr: &ast.VarRefExpr{Name: "xs"},
				Idx: &ast.IntegerLiteral{Value: "0"},
			}},
		},
	}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Methods: []*ast.Method{m}}}
	ctx := runPass(InvalidArrayAccess{}, prog)
	if ctx.HasReports() {
		t.Fatalf("expected no report for indexing an array, got %+v", ctx.Reports)
	}
}
