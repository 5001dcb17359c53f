package symtable

import (
	"testing"

	"github.com/marco-vb/jmmc/internal/ast"
)

func sampleProgram() *ast.Program {
	method := &ast.Method{
		Name:       "add",
		ReturnType: &ast.TypeExpr{Name: "int"},
		Params: &ast.Arguments{List: []*ast.Argument{
			{Type: &ast.TypeExpr{Name: "int"}, Name: "a"},
			{Type: &ast.TypeExpr{Name: "int"}, Name: "b"},
		}},
		Locals: []*ast.Variable{{Type: &ast.TypeExpr{Name: "int"}, Name: "t"}},
	}
	return &ast.Program{
		Imports: []*ast.ImportDeclaration{{Name: "java.util.List"}},
		Class: &ast.ClassDeclaration{
			Name:    "Calc",
			Extends: "Base",
			Fields:  []*ast.Variable{{Type: &ast.TypeExpr{Name: "int"}, Name: "total"}},
			Methods: []*ast.Method{method},
		},
	}
}

func TestBuild_ExtractsClassAndSuper(t *testing.T) {
	st := Build(sampleProgram())
	if st.ClassName() != "Calc" {
		t.Fatalf("expected class name Calc, got %q", st.ClassName())
	}
	super, ok := st.SuperClassName()
	if !ok || super != "Base" {
		t.Fatalf("expected superclass Base, got %q (ok=%v)", super, ok)
	}
}

func TestBuild_ImportsResolveByBothDottedAndBareName(t *testing.T) {
	st := Build(sampleProgram())
	if !st.IsImported("java.util.List") || !st.IsImported("List") {
		t.Fatalf("expected both dotted and bare import spellings to resolve")
	}
	if st.IsImported("Unrelated") {
		t.Fatalf("expected an unrelated name to not resolve as imported")
	}
}

func TestBuild_FieldsAndMethods(t *testing.T) {
	st := Build(sampleProgram())
	field, ok := st.Field("total")
	if !ok || field.Type.Name != "int" {
		t.Fatalf("expected field total:int, got %+v (ok=%v)", field, ok)
	}
	if !st.HasMethod("add") {
		t.Fatalf("expected method add to be registered")
	}
	if st.HasMethod("missing") {
		t.Fatalf("expected an undeclared method to report false")
	}

	mi, ok := st.MethodInfoOf("add")
	if !ok {
		t.Fatalf("expected MethodInfoOf(add) to succeed")
	}
	if len(mi.Params) != 2 || mi.Params[0].Name != "a" || mi.Params[1].Name != "b" {
		t.Fatalf("unexpected params: %+v", mi.Params)
	}
	if len(mi.Locals) != 1 || mi.Locals[0].Name != "t" {
		t.Fatalf("unexpected locals: %+v", mi.Locals)
	}
	if mi.ReturnType.Name != "int" {
		t.Fatalf("expected return type int, got %+v", mi.ReturnType)
	}
}

func TestBuild_FirstDuplicateWins(t *testing.T) {
	prog := sampleProgram()
	dup := &ast.Method{Name: "add", ReturnType: &ast.TypeExpr{Name: "boolean"}}
	prog.Class.Methods = append(prog.Class.Methods, dup)

	st := Build(prog)
	rt, ok := st.ReturnTypeOf("add")
	if !ok || rt.Name != "int" {
		t.Fatalf("expected the first declaration's return type (int) to win, got %+v", rt)
	}
}

func TestBuild_NilClassReturnsEmptyTable(t *testing.T) {
	st := Build(&ast.Program{})
	if st.ClassName() != "" {
		t.Fatalf("expected an empty class name for a program with no class")
	}
	if len(st.Methods()) != 0 || len(st.Fields()) != 0 {
		t.Fatalf("expected no methods or fields for an empty program")
	}
}
