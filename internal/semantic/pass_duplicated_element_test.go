package semantic

import (
	"testing"

	"github.com/marco-vb/jmmc/internal/ast"
)

func TestDuplicatedElement_RejectsDuplicateImport(t *testing.T) {
	prog := &ast.Program{
		Imports: []*ast.ImportDeclaration{{Name: "java.util.List"}, {Name: "java.util.List"}},
		Class:   &ast.ClassDeclaration{Name: "Calc"},
	}
	ctx := runPass(DuplicatedElement{}, prog)
	if !ctx.HasReports() {
		t.Fatalf("expected a report for a duplicated import")
	}
}

func TestDuplicatedElement_RejectsDuplicateField(t *testing.T) {
	prog := &ast.Program{Class: &ast.ClassDeclaration{
		Name:   "Calc",
		Fields: []*ast.Variable{{Name: "x"}, {Name: "x"}},
	}}
	ctx := runPass(DuplicatedElement{}, prog)
	if !ctx.HasReports() {
		t.Fatalf("expected a report for a duplicated field")
	}
}

func TestDuplicatedElement_RejectsDuplicateMethod(t *testing.T) {
	prog := &ast.Program{Class: &ast.ClassDeclaration{
		Name:    "Calc",
		Methods: []*ast.Method{{Name: "f"}, {Name: "f"}},
	}}
	ctx := runPass(DuplicatedElement{}, prog)
	if !ctx.HasReports() {
		t.Fatalf("expected a report for a duplicated method")
	}
}

func TestDuplicatedElement_RejectsDuplicateParam(t *testing.T) {
	m := &ast.Method{Name: "f", Params: &ast.Arguments{List: []*ast.Argument{
		{Name: "x"}, {Name: "x"},
	}}}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Name: "Calc", Methods: []*ast.Method{m}}}
	ctx := runPass(DuplicatedElement{}, prog)
	if !ctx.HasReports() {
		t.Fatalf("expected a report for a duplicated parameter")
	}
}

func TestDuplicatedElement_RejectsLocalShadowingParam(t *testing.T) {
	m := &ast.Method{
		Name:   "f",
		Params: &ast.Arguments{List: []*ast.Argument{{Name: "x"}}},
		Locals: []*ast.Variable{{Name: "x"}},
	}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Name: "Calc", Methods: []*ast.Method{m}}}
	ctx := runPass(DuplicatedElement{}, prog)
	if !ctx.HasReports() {
		t.Fatalf("expected a report for a local shadowing a parameter")
	}
}

func TestDuplicatedElement_AllowsDistinctNames(t *testing.T) {
	m := &ast.Method{
		Name:   "f",
		Params: &ast.Arguments{List: []*ast.Argument{{Name: "x"}}},
		Locals: []*ast.Variable{{Name: "y"}},
	}
	prog := &ast.Program{
		Imports: []*ast.ImportDeclaration{{Name: "java.util.List"}},
		Class: &ast.ClassDeclaration{
			Name:    "Calc",
			Fields:  []*ast.Variable{{Name: "z"}},
			Methods: []*ast.Method{m},
		},
	}
	ctx := runPass(DuplicatedElement{}, prog)
	if ctx.HasReports() {
		t.Fatalf("expected no reports for distinct names, got %+v", ctx.Reports)
	}
}
