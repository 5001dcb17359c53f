// Package varargs implements the VarargsLowerer (spec.md §4.5): an
// AST→AST rewrite that runs after semantic analysis has already accepted
// the program, turning each varargs call site's trailing arguments into
// a single array-literal argument so OllirEmitter never has to special
// case varargs itself.
package varargs

import "github.com/marco-vb/jmmc/internal/ast"

// TypeResolver is the slice of *semantic.TypeEngine's behavior that the
// lowerer needs: enough to tell whether a call's last argument is already of
// array type, so a pre-existing array variable or expression passed to a
// varargs parameter isn't re-wrapped into a nested array (spec.md §4.5,
// §8 property 5). Declared locally rather than imported from package
// semantic so varargs has no dependency on it beyond this one method.
type TypeResolver interface {
	ExprTypeIsArray(expr ast.Expr, method *ast.Method) bool
}

// Run rewrites every call to a locally declared method whose last
// parameter is varargs, in place. te resolves the static type of a call's
// trailing argument so an already-array-typed expression is left alone.
func Run(prog *ast.Program, te TypeResolver) {
	if prog == nil || prog.Class == nil {
		return
	}
	methodsByName := make(map[string]*ast.Method, len(prog.Class.Methods))
	for _, m := range prog.Class.Methods {
		methodsByName[m.Name] = m
	}
	for _, m := range prog.Class.Methods {
		lowerStmts(m.Body, m, methodsByName, te)
	}
}

func lowerStmts(stmts []ast.Stmt, method *ast.Method, methodsByName map[string]*ast.Method, te TypeResolver) {
	for _, s := range stmts {
		lowerStmt(s, method, methodsByName, te)
	}
}

func lowerStmt(s ast.Stmt, method *ast.Method, methodsByName map[string]*ast.Method, te TypeResolver) {
	switch st := s.(type) {
	case *ast.AssignStmt:
		lowerExpr(&st.Rhs, method, methodsByName, te)
	case *ast.ArrayAssignStmt:
		lowerExpr(&st.Index, method, methodsByName, te)
		lowerExpr(&st.Rhs, method, methodsByName, te)
	case *ast.ExpressionStmt:
		lowerExpr(&st.Expr, method, methodsByName, te)
	case *ast.ReturnStmt:
		if st.Expr != nil {
			lowerExpr(&st.Expr, method, methodsByName, te)
		}
	case *ast.IfElseStmt:
		lowerExpr(&st.Cond, method, methodsByName, te)
		lowerStmt(st.Then, method, methodsByName, te)
		if st.Else != nil {
			lowerStmt(st.Else, method, methodsByName, te)
		}
	case *ast.WhileStmt:
		lowerExpr(&st.Cond, method, methodsByName, te)
		lowerStmt(st.Body, method, methodsByName, te)
	case *ast.ScopeStmt:
		lowerStmts(st.Stmts, method, methodsByName, te)
	}
}

// lowerExpr descends into e in place, rewriting any FuncExpr call site it
// finds, then recurses into e's own children to reach nested calls.
func lowerExpr(e *ast.Expr, method *ast.Method, methodsByName map[string]*ast.Method, te TypeResolver) {
	if e == nil || *e == nil {
		return
	}
	switch ex := (*e).(type) {
	case *ast.FuncExpr:
		if ex.Receiver != nil {
			lowerExpr(&ex.Receiver, method, methodsByName, te)
		}
		for i := range ex.Args {
			lowerExpr(&ex.Args[i], method, methodsByName, te)
		}
		lowerCall(ex, method, methodsByName, te)
	case *ast.BinaryExpr:
		lowerExpr(&ex.L, method, methodsByName, te)
		lowerExpr(&ex.R, method, methodsByName, te)
	case *ast.UnaryExpr:
		lowerExpr(&ex.Child, method, methodsByName, te)
	case *ast.ParenExpr:
		lowerExpr(&ex.Child, method, methodsByName, te)
	case *ast.ArrayAccessExpr:
		lowerExpr(&ex.Arr, method, methodsByName, te)
		lowerExpr(&ex.Idx, method, methodsByName, te)
	case *ast.MemberExpr:
		lowerExpr(&ex.Obj, method, methodsByName, te)
	case *ast.ArrayExpr:
		for i := range ex.Elems {
			lowerExpr(&ex.Elems[i], method, methodsByName, te)
		}
	case *ast.NewArrayExpr:
		lowerExpr(&ex.Size, method, methodsByName, te)
	}
}

// lowerCall rewrites fe in place if it targets a known varargs method and
// its trailing arguments are not already a single expression of array
// type — a literal ArrayExpr or a variable/call already typed as an
// array (spec.md §4.5, §8 property 5).
func lowerCall(fe *ast.FuncExpr, method *ast.Method, methodsByName map[string]*ast.Method, te TypeResolver) {
	target, ok := methodsByName[fe.MethodName]
	if !ok || target.Params == nil {
		return
	}
	params := target.Params.List
	n := len(params)
	if n == 0 || !params[n-1].Type.IsVarargs {
		return
	}
	if len(fe.Args) == n {
		last := fe.Args[n-1]
		if _, isArray := last.(*ast.ArrayExpr); isArray {
			return
		}
		if te != nil && te.ExprTypeIsArray(last, method) {
			return
		}
	}
	if len(fe.Args) < n-1 {
		return // malformed call; TypeError already reported it
	}

	trailing := make([]ast.Expr, 0, len(fe.Args)-(n-1))
	for len(fe.Args) > n-1 {
		trailing = append(trailing, fe.Detach(n-1))
	}
	fe.Args = append(fe.Args, &ast.ArrayExpr{Elems: trailing})
}
