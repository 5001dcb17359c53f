package varargs

import (
	"testing"

	"github.com/marco-vb/jmmc/internal/ast"
)

func intVar(name string) *ast.VarRefExpr { return &ast.VarRefExpr{Name: name} }

// printAllSum is the callee: "int sum(int first, int... rest)".
func printAllSum() *ast.Method {
	return &ast.Method{
		Name: "sum",
		Params: &ast.Arguments{List: []*ast.Argument{
			{Name: "first", Type: &ast.TypeExpr{Name: "int"}},
			{Name: "rest", Type: &ast.TypeExpr{Name: "int", IsArray: true, IsVarargs: true}},
		}},
	}
}

func TestRun_CollapsesTrailingArgsIntoArray(t *testing.T) {
	call := &ast.FuncExpr{
		MethodName: "sum",
		Args:       []ast.Expr{intVar("a"), intVar("b"), intVar("c"), intVar("d")},
	}
	caller := &ast.Method{Name: "caller", Body: []ast.Stmt{&ast.ExpressionStmt{Expr: call}}}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Methods: []*ast.Method{printAllSum(), caller}}}

	Run(prog, nil)

	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args after lowering (first, array), got %d: %+v", len(call.Args), call.Args)
	}
	if _, ok := call.Args[0].(*ast.VarRefExpr); !ok {
		t.Fatalf("expected the fixed first parameter to stay untouched, got %T", call.Args[0])
	}
	arr, ok := call.Args[1].(*ast.ArrayExpr)
	if !ok {
		t.Fatalf("expected trailing args collapsed into an ArrayExpr, got %T", call.Args[1])
	}
	if len(arr.Elems) != 3 {
		t.Fatalf("expected 3 elements in the lowered array, got %d", len(arr.Elems))
	}
}

func TestRun_LeavesAlreadyArrayCallUntouched(t *testing.T) {
	call := &ast.FuncExpr{
		MethodName: "sum",
		Args:       []ast.Expr{intVar("a"), &ast.ArrayExpr{Elems: []ast.Expr{intVar("b"), intVar("c")}}},
	}
	caller := &ast.Method{Name: "caller", Body: []ast.Stmt{&ast.ExpressionStmt{Expr: call}}}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Methods: []*ast.Method{printAllSum(), caller}}}

	Run(prog, nil)

	if len(call.Args) != 2 {
		t.Fatalf("expected args to stay at 2, got %d", len(call.Args))
	}
	arr, ok := call.Args[1].(*ast.ArrayExpr)
	if !ok || len(arr.Elems) != 2 {
		t.Fatalf("expected the pre-built array to be left alone, got %+v", call.Args[1])
	}
}

func TestRun_IgnoresCallsToNonVarargsMethods(t *testing.T) {
	plain := &ast.Method{
		Name:   "plain",
		Params: &ast.Arguments{List: []*ast.Argument{{Name: "x", Type: &ast.TypeExpr{Name: "int"}}}},
	}
	call := &ast.FuncExpr{MethodName: "plain", Args: []ast.Expr{intVar("a")}}
	caller := &ast.Method{Name: "caller", Body: []ast.Stmt{&ast.ExpressionStmt{Expr: call}}}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Methods: []*ast.Method{plain, caller}}}

	Run(prog, nil)

	if len(call.Args) != 1 {
		t.Fatalf("expected args untouched for a non-varargs target, got %+v", call.Args)
	}
	if _, ok := call.Args[0].(*ast.VarRefExpr); !ok {
		t.Fatalf("expected the original VarRefExpr to survive, got %T", call.Args[0])
	}
}

// arrayTypedResolver reports every expression named in arrayVars as
// array-typed and everything else as scalar, standing in for a real
// semantic.TypeEngine in tests that only care about the array/scalar
// distinction lowerCall makes.
type arrayTypedResolver struct{ arrayVars map[string]bool }

func (r arrayTypedResolver) ExprTypeIsArray(expr ast.Expr, _ *ast.Method) bool {
	ref, ok := expr.(*ast.VarRefExpr)
	return ok && r.arrayVars[ref.Name]
}

// sumVarargsOnly is the callee for the single-varargs-parameter shape
// spec.md §8 S3 uses: "int sum(int... xs)".
func sumVarargsOnly() *ast.Method {
	return &ast.Method{
		Name: "sum",
		Params: &ast.Arguments{List: []*ast.Argument{
			{Name: "xs", Type: &ast.TypeExpr{Name: "int", IsArray: true, IsVarargs: true}},
		}},
	}
}

func TestRun_LeavesArrayTypedVariableArgumentUnwrapped(t *testing.T) {
	call := &ast.FuncExpr{MethodName: "sum", Args: []ast.Expr{intVar("arr")}}
	caller := &ast.Method{Name: "caller", Body: []ast.Stmt{&ast.ExpressionStmt{Expr: call}}}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Methods: []*ast.Method{sumVarargsOnly(), caller}}}

	Run(prog, arrayTypedResolver{arrayVars: map[string]bool{"arr": true}})

	if len(call.Args) != 1 {
		t.Fatalf("expected the array-typed argument to stay a single arg, got %d: %+v", len(call.Args), call.Args)
	}
	if _, ok := call.Args[0].(*ast.VarRefExpr); !ok {
		t.Fatalf("expected the array-typed VarRefExpr to survive unwrapped, got %T", call.Args[0])
	}
}

func TestRun_WrapsScalarVariableArgumentEvenWithResolver(t *testing.T) {
	call := &ast.FuncExpr{MethodName: "sum", Args: []ast.Expr{intVar("n")}}
	caller := &ast.Method{Name: "caller", Body: []ast.Stmt{&ast.ExpressionStmt{Expr: call}}}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Methods: []*ast.Method{sumVarargsOnly(), caller}}}

	Run(prog, arrayTypedResolver{arrayVars: map[string]bool{}})

	arr, ok := call.Args[0].(*ast.ArrayExpr)
	if !ok || len(arr.Elems) != 1 {
		t.Fatalf("expected the scalar argument wrapped into a 1-element array, got %+v", call.Args[0])
	}
}

func TestRun_DescendsIntoNestedStatementsAndExpressions(t *testing.T) {
	inner := &ast.FuncExpr{MethodName: "sum", Args: []ast.Expr{intVar("a"), intVar("b"), intVar("c")}}
	caller := &ast.Method{
		Name: "caller",
		Body: []ast.Stmt{
			&ast.IfElseStmt{
				Cond: &ast.BooleanLiteral{Value: true},
				Then: &ast.ScopeStmt{Stmts: []ast.Stmt{
					&ast.ReturnStmt{Expr: inner},
				}},
			},
		},
	}
	prog := &ast.Program{Class: &ast.ClassDeclaration{Methods: []*ast.Method{printAllSum(), caller}}}

	Run(prog, nil)

	if len(inner.Args) != 2 {
		t.Fatalf("expected the nested call to be lowered too, got %+v", inner.Args)
	}
}
