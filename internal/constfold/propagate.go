package constfold

import "github.com/marco-vb/jmmc/internal/ast"

// propagateStmts scans stmts in source order, substituting known
// literal values into expression uses and tracking new literal bindings
// as it goes (spec.md §4.4 "propagate"). It mutates the env maps as a
// side effect, so callers that need the pre-call environment preserved
// (branch processing) must pass a clone.
func propagateStmts(stmts []ast.Stmt, intEnv map[string]int32, boolEnv map[string]bool) bool {
	changed := false
	for _, s := range stmts {
		if propagateStmt(s, intEnv, boolEnv) {
			changed = true
		}
	}
	return changed
}

func propagateStmt(s ast.Stmt, intEnv map[string]int32, boolEnv map[string]bool) bool {
	changed := false
	switch st := s.(type) {
	case *ast.AssignStmt:
		if e, ok := substitute(st.Rhs, intEnv, boolEnv); ok {
			st.Rhs = e
			changed = true
		}
		if ref, ok := st.Lhs.(*ast.VarRefExpr); ok {
			bindResultOf(st.Rhs, ref.Name, intEnv, boolEnv)
		}
	case *ast.ArrayAssignStmt:
		if e, ok := substitute(st.Index, intEnv, boolEnv); ok {
			st.Index = e
			changed = true
		}
		if e, ok := substitute(st.Rhs, intEnv, boolEnv); ok {
			st.Rhs = e
			changed = true
		}
	case *ast.ExpressionStmt:
		if e, ok := substitute(st.Expr, intEnv, boolEnv); ok {
			st.Expr = e
			changed = true
		}
	case *ast.ReturnStmt:
		if st.Expr != nil {
			if e, ok := substitute(st.Expr, intEnv, boolEnv); ok {
				st.Expr = e
				changed = true
			}
		}
	case *ast.IfElseStmt:
		if e, ok := substitute(st.Cond, intEnv, boolEnv); ok {
			st.Cond = e
			changed = true
		}
		thenInt, thenBool := cloneInt(intEnv), cloneBool(boolEnv)
		if propagateStmt(st.Then, thenInt, thenBool) {
			changed = true
		}
		if st.Else != nil {
			elseInt, elseBool := cloneInt(intEnv), cloneBool(boolEnv)
			if propagateStmt(st.Else, elseInt, elseBool) {
				changed = true
			}
		}
		for name := range mutatedNames(st.Then) {
			delete(intEnv, name)
			delete(boolEnv, name)
		}
		if st.Else != nil {
			for name := range mutatedNames(st.Else) {
				delete(intEnv, name)
				delete(boolEnv, name)
			}
		}
	case *ast.WhileStmt:
		if e, ok := substitute(st.Cond, intEnv, boolEnv); ok {
			st.Cond = e
			changed = true
		}
		for name := range mutatedNames(st.Body) {
			delete(intEnv, name)
			delete(boolEnv, name)
		}
		bodyInt, bodyBool := cloneInt(intEnv), cloneBool(boolEnv)
		if propagateStmt(st.Body, bodyInt, bodyBool) {
			changed = true
		}
	case *ast.ScopeStmt:
		if propagateStmts(st.Stmts, intEnv, boolEnv) {
			changed = true
		}
	}
	return changed
}

// bindResultOf records name's new binding after an assignment whose RHS
// is, after substitution, exactly a literal; any other RHS shape
// invalidates the previous binding (the assignment's LHS is never
// substituted into its own RHS per spec.md §4.4's "never substitute the
// LHS being redefined").
func bindResultOf(rhs ast.Expr, name string, intEnv map[string]int32, boolEnv map[string]bool) {
	switch lit := rhs.(type) {
	case *ast.IntegerLiteral:
		intEnv[name] = lit.Int32()
		delete(boolEnv, name)
	case *ast.BooleanLiteral:
		boolEnv[name] = lit.Value
		delete(intEnv, name)
	default:
		delete(intEnv, name)
		delete(boolEnv, name)
	}
}

// mutatedNames collects every name that is the LHS of a plain-variable
// AssignStmt anywhere inside s, used to decide which bindings a branch
// or loop body invalidates (spec.md §4.4).
func mutatedNames(s ast.Stmt) map[string]bool {
	names := make(map[string]bool)
	ast.Walk(s, func(n ast.Node) bool {
		if a, ok := n.(*ast.AssignStmt); ok {
			if ref, ok := a.Lhs.(*ast.VarRefExpr); ok {
				names[ref.Name] = true
			}
		}
		return true
	})
	return names
}

func cloneInt(m map[string]int32) map[string]int32 {
	out := make(map[string]int32, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneBool(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// substitute replaces every VarRefExpr bound in intEnv/boolEnv with its
// literal value, recursively, returning the (possibly new) expression
// and whether anything changed.
func substitute(e ast.Expr, intEnv map[string]int32, boolEnv map[string]bool) (ast.Expr, bool) {
	if e == nil {
		return e, false
	}
	switch ex := e.(type) {
	case *ast.VarRefExpr:
		if v, ok := intEnv[ex.Name]; ok {
			return ast.NewIntegerLiteral(ex, v), true
		}
		if b, ok := boolEnv[ex.Name]; ok {
			return ast.NewBooleanLiteral(ex, b), true
		}
		return e, false
	case *ast.BinaryExpr:
		changed := false
		if l, ok := substitute(ex.L, intEnv, boolEnv); ok {
			ex.L = l
			changed = true
		}
		if r, ok := substitute(ex.R, intEnv, boolEnv); ok {
			ex.R = r
			changed = true
		}
		return ex, changed
	case *ast.UnaryExpr:
		if c, ok := substitute(ex.Child, intEnv, boolEnv); ok {
			ex.Child = c
			return ex, true
		}
		return ex, false
	case *ast.ParenExpr:
		if c, ok := substitute(ex.Child, intEnv, boolEnv); ok {
			ex.Child = c
			return ex, true
		}
		return ex, false
	case *ast.ArrayAccessExpr:
		changed := false
		if a, ok := substitute(ex.Arr, intEnv, boolEnv); ok {
			ex.Arr = a
			changed = true
		}
		if i, ok := substitute(ex.Idx, intEnv, boolEnv); ok {
			ex.Idx = i
			changed = true
		}
		return ex, changed
	case *ast.FuncExpr:
		changed := false
		if ex.Receiver != nil {
			if r, ok := substitute(ex.Receiver, intEnv, boolEnv); ok {
				ex.Receiver = r
				changed = true
			}
		}
		for i, a := range ex.Args {
			if na, ok := substitute(a, intEnv, boolEnv); ok {
				ex.Args[i] = na
				changed = true
			}
		}
		return ex, changed
	case *ast.MemberExpr:
		if o, ok := substitute(ex.Obj, intEnv, boolEnv); ok {
			ex.Obj = o
			return ex, true
		}
		return ex, false
	case *ast.ArrayExpr:
		changed := false
		for i, el := range ex.Elems {
			if ne, ok := substitute(el, intEnv, boolEnv); ok {
				ex.Elems[i] = ne
				changed = true
			}
		}
		return ex, changed
	case *ast.NewArrayExpr:
		if s, ok := substitute(ex.Size, intEnv, boolEnv); ok {
			ex.Size = s
			return ex, true
		}
		return ex, false
	default:
		return e, false
	}
}
