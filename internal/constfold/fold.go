package constfold

import "github.com/marco-vb/jmmc/internal/ast"

// foldStmts walks stmts, folding every pure-literal sub-expression it
// finds into a single literal node (spec.md §4.4 "fold").
func foldStmts(stmts []ast.Stmt) bool {
	changed := false
	for _, s := range stmts {
		if foldStmt(s) {
			changed = true
		}
	}
	return changed
}

func foldStmt(s ast.Stmt) bool {
	changed := false
	switch st := s.(type) {
	case *ast.AssignStmt:
		if e, ok := foldExpr(st.Rhs); ok {
			st.Rhs = e
			changed = true
		}
	case *ast.ArrayAssignStmt:
		if e, ok := foldExpr(st.Index); ok {
			st.Index = e
			changed = true
		}
		if e, ok := foldExpr(st.Rhs); ok {
			st.Rhs = e
			changed = true
		}
	case *ast.ExpressionStmt:
		if e, ok := foldExpr(st.Expr); ok {
			st.Expr = e
			changed = true
		}
	case *ast.ReturnStmt:
		if st.Expr != nil {
			if e, ok := foldExpr(st.Expr); ok {
				st.Expr = e
				changed = true
			}
		}
	case *ast.IfElseStmt:
		if e, ok := foldExpr(st.Cond); ok {
			st.Cond = e
			changed = true
		}
		if foldStmt(st.Then) {
			changed = true
		}
		if st.Else != nil && foldStmt(st.Else) {
			changed = true
		}
	case *ast.WhileStmt:
		if e, ok := foldExpr(st.Cond); ok {
			st.Cond = e
			changed = true
		}
		if foldStmt(st.Body) {
			changed = true
		}
	case *ast.ScopeStmt:
		if foldStmts(st.Stmts) {
			changed = true
		}
	}
	return changed
}

// foldExpr recursively folds e's sub-expressions, then tries to collapse
// e itself into a literal when every operand is already a literal. It
// never folds ArrayAccessExpr, FuncExpr, ArrayExpr, NewArrayExpr,
// MemberExpr or NewExpr to a literal (spec.md §4.4 "never fold on
// reference/array nodes"), though it still folds their children.
func foldExpr(e ast.Expr) (ast.Expr, bool) {
	if e == nil {
		return e, false
	}
	switch ex := e.(type) {
	case *ast.BinaryExpr:
		changed := false
		if l, ok := foldExpr(ex.L); ok {
			ex.L = l
			changed = true
		}
		if r, ok := foldExpr(ex.R); ok {
			ex.R = r
			changed = true
		}
		if folded, ok := foldBinary(ex); ok {
			return folded, true
		}
		return ex, changed
	case *ast.UnaryExpr:
		changed := false
		if c, ok := foldExpr(ex.Child); ok {
			ex.Child = c
			changed = true
		}
		if b, ok := ex.Child.(*ast.BooleanLiteral); ok {
			return ast.NewBooleanLiteral(ex, !b.Value), true
		}
		return ex, changed
	case *ast.ParenExpr:
		child, childChanged := foldExpr(ex.Child)
		ex.Child = child
		switch child.(type) {
		case *ast.IntegerLiteral, *ast.BooleanLiteral:
			return child, true
		}
		return ex, childChanged
	case *ast.ArrayAccessExpr:
		changed := false
		if a, ok := foldExpr(ex.Arr); ok {
			ex.Arr = a
			changed = true
		}
		if i, ok := foldExpr(ex.Idx); ok {
			ex.Idx = i
			changed = true
		}
		return ex, changed
	case *ast.FuncExpr:
		changed := false
		if ex.Receiver != nil {
			if r, ok := foldExpr(ex.Receiver); ok {
				ex.Receiver = r
				changed = true
			}
		}
		for i, a := range ex.Args {
			if na, ok := foldExpr(a); ok {
				ex.Args[i] = na
				changed = true
			}
		}
		return ex, changed
	case *ast.MemberExpr:
		if o, ok := foldExpr(ex.Obj); ok {
			ex.Obj = o
			return ex, true
		}
		return ex, false
	case *ast.ArrayExpr:
		changed := false
		for i, el := range ex.Elems {
			if ne, ok := foldExpr(el); ok {
				ex.Elems[i] = ne
				changed = true
			}
		}
		return ex, changed
	case *ast.NewArrayExpr:
		if s, ok := foldExpr(ex.Size); ok {
			ex.Size = s
			return ex, true
		}
		return ex, false
	default:
		return e, false
	}
}

// foldBinary evaluates e when both operands are already literals,
// honoring 32-bit wraparound arithmetic and leaving division by zero
// unfolded for the runtime to fault on (spec.md §9).
func foldBinary(e *ast.BinaryExpr) (ast.Expr, bool) {
	if li, lok := e.L.(*ast.IntegerLiteral); lok {
		if ri, rok := e.R.(*ast.IntegerLiteral); rok {
			a, b := li.Int32(), ri.Int32()
			switch e.Op {
			case ast.OpAdd:
				return ast.NewIntegerLiteral(e, a+b), true
			case ast.OpSub:
				return ast.NewIntegerLiteral(e, a-b), true
			case ast.OpMul:
				return ast.NewIntegerLiteral(e, a*b), true
			case ast.OpDiv:
				if b == 0 {
					return e, false
				}
				return ast.NewIntegerLiteral(e, a/b), true
			case ast.OpLt:
				return ast.NewBooleanLiteral(e, a < b), true
			case ast.OpLe:
				return ast.NewBooleanLiteral(e, a <= b), true
			case ast.OpGt:
				return ast.NewBooleanLiteral(e, a > b), true
			case ast.OpGe:
				return ast.NewBooleanLiteral(e, a >= b), true
			case ast.OpEq:
				return ast.NewBooleanLiteral(e, a == b), true
			}
		}
		return e, false
	}
	if lb, lok := e.L.(*ast.BooleanLiteral); lok {
		if rb, rok := e.R.(*ast.BooleanLiteral); rok {
			switch e.Op {
			case ast.OpAnd:
				return ast.NewBooleanLiteral(e, lb.Value && rb.Value), true
			case ast.OpOr:
				return ast.NewBooleanLiteral(e, lb.Value || rb.Value), true
			case ast.OpEq:
				return ast.NewBooleanLiteral(e, lb.Value == rb.Value), true
			}
		}
	}
	return e, false
}
