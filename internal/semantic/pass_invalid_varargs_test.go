package semantic

import (
	"testing"

	"github.com/marco-vb/jmmc/internal/ast"
	"github.com/marco-vb/jmmc/internal/symtable"
)

func runPass(p Pass, prog *ast.Program) *Context {
	ctx := NewContext(symtable.Build(prog))
	p.Run(prog, ctx)
	return ctx
}

func TestInvalidVarargs_RejectsVarargsField(t *testing.T) {
	prog := &ast.Program{Class: &ast.ClassDeclaration{
		Fields: []*ast.Variable{{Name: "xs", Type: &ast.TypeExpr{Name: "int", IsArray: true, IsVarargs: true}}},
	}}
	ctx := runPass(InvalidVarargs{}, prog)
	if !ctx.HasReports() {
		t.Fatalf("expected a report for a varargs field")
	}
}

func TestInvalidVarargs_RejectsNonLastVarargsParam(t *testing.T) {
	m := &ast.Method{Name: "f", Params: &ast.Arguments{List: []*ast.Argument{
		{Name: "xs", Type: &ast.TypeExpr{Name: "int", IsArray: true, IsVarargs: true}},
		{Name: "y", Type: &ast.TypeExpr{Name: "int"}},
	}}}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Methods: []*ast.Method{m}}}
	ctx := runPass(InvalidVarargs{}, prog)
	if !ctx.HasReports() {
		t.Fatalf("expected a report for a non-last varargs parameter")
	}
}

func TestInvalidVarargs_AllowsLastVarargsParam(t *testing.T) {
	m := &ast.Method{Name: "f", Params: &ast.Arguments{List: []*ast.Argument{
		{Name: "y", Type: &ast.TypeExpr{Name: "int"}},
		{Name: "xs", Type: &ast.TypeExpr{Name: "int", IsArray: true, IsVarargs: true}},
	}}}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Methods: []*ast.Method{m}}}
	ctx := runPass(InvalidVarargs{}, prog)
	if ctx.HasReports() {
		t.Fatalf("expected no report for a valid trailing varargs parameter, got %+v", ctx.Reports)
	}
}

func TestInvalidVarargs_RejectsMultipleVarargsParams(t *testing.T) {
	m := &ast.Method{Name: "f", Params: &ast.Arguments{List: []*ast.Argument{
		{Name: "xs", Type: &ast.TypeExpr{Name: "int", IsArray: true, IsVarargs: true}},
		{Name: "ys", Type: &ast.TypeExpr{Name: "int", IsArray: true, IsVarargs: true}},
	}}}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Methods: []*ast.Method{m}}}
	ctx := runPass(InvalidVarargs{}, prog)
	if !ctx.HasReports() {
		t.Fatalf("expected a report for more than one varargs parameter")
	}
}
