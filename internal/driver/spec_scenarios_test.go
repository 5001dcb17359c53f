package driver

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/marco-vb/jmmc/internal/ast"
)

// TestMain makes sure obsolete snapshots are pruned once the whole
// package's tests have run, matching the teacher's go-snaps convention.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

// These six scenarios pin the exact OLLIR/Jasmin/diagnostic shape of the
// compiler's documented end-to-end cases as golden snapshots, rather than
// spot-checking a handful of substrings.

func TestScenario_S1_SimpleAddMethod(t *testing.T) {
	result, err := Compile(addMethodProgram(), Options{File: "calc.jmm"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK() {
		t.Fatalf("expected no diagnostics, got %+v", result.Reports)
	}
	snaps.MatchSnapshot(t, "ollir", result.Ollir)
	snaps.MatchSnapshot(t, "jasmin", result.Jasmin)
}

func s2Program() *ast.Program {
	method := &ast.Method{
		Name:       "f",
		IsPublic:   true,
		ReturnType: &ast.TypeExpr{Name: "int"},
		Locals:     []*ast.Variable{{Name: "x", Type: &ast.TypeExpr{Name: "int"}}},
		Body: []ast.Stmt{
			&ast.AssignStmt{Lhs: &ast.VarRefExpr{Name: "x"}, Rhs: &ast.IntegerLiteral{Value: "2"}},
			&ast.AssignStmt{Lhs: &ast.VarRefExpr{Name: "x"}, Rhs: &ast.BinaryExpr{
				Op: ast.OpAdd,
				L:  &ast.VarRefExpr{Name: "x"},
				R:  &ast.IntegerLiteral{Value: "3"},
			}},
			&ast.ReturnStmt{Expr: &ast.VarRefExpr{Name: "x"}},
		},
	}
	return &ast.Program{Class: &ast.ClassDeclaration{Name: "Calc", Methods: []*ast.Method{method}}}
}

func TestScenario_S2_ConstantFoldingWithOptimizeOn(t *testing.T) {
	result, err := Compile(s2Program(), Options{File: "calc.jmm", Optimize: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK() {
		t.Fatalf("expected no diagnostics, got %+v", result.Reports)
	}
	snaps.MatchSnapshot(t, "ollir", result.Ollir)
	snaps.MatchSnapshot(t, "jasmin", result.Jasmin)
}

func s3Program() *ast.Program {
	sum := &ast.Method{
		Name:       "sum",
		IsPublic:   true,
		ReturnType: &ast.TypeExpr{Name: "int"},
		Params: &ast.Arguments{List: []*ast.Argument{
			{Name: "xs", Type: &ast.TypeExpr{Name: "int", IsArray: true, IsVarargs: true}},
		}},
		Body: []ast.Stmt{
			&ast.ReturnStmt{Expr: &ast.ArrayAccessExpr{
				Arr: &ast.VarRefExpr{Name: "xs"},
				Idx: &ast.IntegerLiteral{Value: "0"},
			}},
		},
	}
	caller := &ast.Method{
		Name:       "call",
		IsPublic:   true,
		ReturnType: &ast.TypeExpr{Name: "int"},
		Body: []ast.Stmt{
			&ast.ReturnStmt{Expr: &ast.FuncExpr{
				Receiver:   &ast.ThisExpr{},
				MethodName: "sum",
				Args: []ast.Expr{
					&ast.IntegerLiteral{Value: "1"},
					&ast.IntegerLiteral{Value: "2"},
					&ast.IntegerLiteral{Value: "3"},
				},
			}},
		},
	}
	return &ast.Program{Class: &ast.ClassDeclaration{Name: "Calc", Methods: []*ast.Method{sum, caller}}}
}

func TestScenario_S3_VarargsCallLowersToArrayExpr(t *testing.T) {
	result, err := CompileToOllir(s3Program(), Options{File: "calc.jmm"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK() {
		t.Fatalf("expected no diagnostics, got %+v", result.Reports)
	}
	snaps.MatchSnapshot(t, "ollir", result.Ollir)
}

// s4Program exercises this repo's manifestation of the static-context
// family of errors: ThisInStaticMethod is the only pass that rejects
// member access inside a static method (there is no separate field
// declaration staticness to violate, since Jmm fields are never static
// here — only "main" may be static at all).
func s4Program() *ast.Program {
	helper := &ast.Method{Name: "helper", ReturnType: &ast.TypeExpr{Name: "int"},
		Body: []ast.Stmt{&ast.ReturnStmt{Expr: &ast.IntegerLiteral{Value: "0"}}}}
	main := &ast.Method{
		Name:       "main",
		IsStatic:   true,
		ReturnType: &ast.TypeExpr{Name: "void"},
		Params: &ast.Arguments{List: []*ast.Argument{
			{Name: "args", Type: &ast.TypeExpr{Name: "String", IsArray: true}},
		}},
		Body: []ast.Stmt{
			&ast.ExpressionStmt{Expr: &ast.FuncExpr{Receiver: &ast.ThisExpr{}, MethodName: "helper"}},
		},
	}
	return &ast.Program{Class: &ast.ClassDeclaration{Name: "Calc", Methods: []*ast.Method{helper, main}}}
}

func TestScenario_S4_ThisInStaticMethodReported(t *testing.T) {
	result, err := CompileToOllir(s4Program(), Options{File: "calc.jmm"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OK() {
		t.Fatalf("expected a diagnostic for 'this' used inside a static method")
	}
	messages := make([]string, len(result.Reports))
	for i, rep := range result.Reports {
		messages[i] = rep.Message
	}
	snaps.MatchSnapshot(t, "diagnostics", messages)
}

func s5Program() *ast.Program {
	method := &ast.Method{
		Name:       "p",
		IsPublic:   true,
		ReturnType: &ast.TypeExpr{Name: "boolean"},
		Params: &ast.Arguments{List: []*ast.Argument{
			{Name: "a", Type: &ast.TypeExpr{Name: "boolean"}},
			{Name: "b", Type: &ast.TypeExpr{Name: "boolean"}},
		}},
		Body: []ast.Stmt{
			&ast.ReturnStmt{Expr: &ast.BinaryExpr{
				Op: ast.OpAnd,
				L:  &ast.VarRefExpr{Name: "a"},
				R:  &ast.VarRefExpr{Name: "b"},
			}},
		},
	}
	return &ast.Program{Class: &ast.ClassDeclaration{Name: "Calc", Methods: []*ast.Method{method}}}
}

func TestScenario_S5_ShortCircuitAnd(t *testing.T) {
	result, err := Compile(s5Program(), Options{File: "calc.jmm"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK() {
		t.Fatalf("expected no diagnostics, got %+v", result.Reports)
	}
	snaps.MatchSnapshot(t, "ollir", result.Ollir)
	snaps.MatchSnapshot(t, "jasmin", result.Jasmin)
}

func s6Program() *ast.Program {
	method := &ast.Method{
		Name:       "f",
		IsPublic:   true,
		ReturnType: &ast.TypeExpr{Name: "int"},
		Locals: []*ast.Variable{
			{Name: "a", Type: &ast.TypeExpr{Name: "int"}},
			{Name: "b", Type: &ast.TypeExpr{Name: "int"}},
			{Name: "c", Type: &ast.TypeExpr{Name: "int"}},
		},
		Body: []ast.Stmt{
			&ast.AssignStmt{Lhs: &ast.VarRefExpr{Name: "a"}, Rhs: &ast.IntegerLiteral{Value: "1"}},
			&ast.AssignStmt{Lhs: &ast.VarRefExpr{Name: "b"}, Rhs: &ast.IntegerLiteral{Value: "2"}},
			&ast.AssignStmt{Lhs: &ast.VarRefExpr{Name: "c"}, Rhs: &ast.BinaryExpr{
				Op: ast.OpAdd, L: &ast.VarRefExpr{Name: "a"}, R: &ast.VarRefExpr{Name: "b"},
			}},
			&ast.ReturnStmt{Expr: &ast.VarRefExpr{Name: "c"}},
		},
	}
	return &ast.Program{Class: &ast.ClassDeclaration{Name: "Calc", Methods: []*ast.Method{method}}}
}

func TestScenario_S6_RegisterCeilingOfTwoFits(t *testing.T) {
	result, err := Compile(s6Program(), Options{File: "calc.jmm", RegisterAllocation: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK() {
		t.Fatalf("expected ceiling 2 to suffice, got %+v", result.Reports)
	}
	snaps.MatchSnapshot(t, "jasmin", result.Jasmin)
}

func TestScenario_S6_RegisterCeilingOfOneReportsNeedTwo(t *testing.T) {
	result, err := Compile(s6Program(), Options{File: "calc.jmm", RegisterAllocation: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OK() {
		t.Fatalf("expected a register-ceiling violation")
	}
	snaps.MatchSnapshot(t, "message", result.Reports[0].Message)
}
