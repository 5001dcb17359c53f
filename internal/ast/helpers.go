package ast

import "strconv"

// Int32 parses the literal's decimal text as a 32-bit two's-complement
// value, matching the integer semantics constant folding must use
// (spec.md §9).
func (n *IntegerLiteral) Int32() int32 {
	v, _ := strconv.ParseInt(n.Value, 10, 64)
	return int32(v)
}

// NewIntegerLiteral builds a literal node carrying v's decimal text.
func NewIntegerLiteral(pos Node, v int32) *IntegerLiteral {
	return &IntegerLiteral{base: base{Position: pos.Pos()}, Value: strconv.FormatInt(int64(v), 10)}
}

// NewBooleanLiteral builds a boolean literal node at pos's position.
func NewBooleanLiteral(pos Node, v bool) *BooleanLiteral {
	return &BooleanLiteral{base: base{Position: pos.Pos()}, Value: v}
}

// Walk calls visit on n and every descendant, depth first, pre-order.
// visit returns false to stop descending into the current node's
// children (the node itself was already visited).
func Walk(n Node, visit func(Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	switch v := n.(type) {
	case *Program:
		for _, imp := range v.Imports {
			Walk(imp, visit)
		}
		Walk(v.Class, visit)
	case *ClassDeclaration:
		for _, f := range v.Fields {
			Walk(f, visit)
		}
		for _, m := range v.Methods {
			Walk(m, visit)
		}
	case *Variable:
		Walk(v.Type, visit)
	case *Method:
		Walk(v.ReturnType, visit)
		Walk(v.Params, visit)
		for _, l := range v.Locals {
			Walk(l, visit)
		}
		for _, s := range v.Body {
			Walk(s, visit)
		}
	case *Arguments:
		for _, a := range v.List {
			Walk(a, visit)
		}
	case *Argument:
		Walk(v.Type, visit)
	case *AssignStmt:
		Walk(v.Lhs, visit)
		Walk(v.Rhs, visit)
	case *ArrayAssignStmt:
		Walk(v.Index, visit)
		Walk(v.Rhs, visit)
	case *IfElseStmt:
		Walk(v.Cond, visit)
		Walk(v.Then, visit)
		Walk(v.Else, visit)
	case *WhileStmt:
		Walk(v.Cond, visit)
		Walk(v.Body, visit)
	case *ScopeStmt:
		for _, s := range v.Stmts {
			Walk(s, visit)
		}
	case *ReturnStmt:
		Walk(v.Expr, visit)
	case *ExpressionStmt:
		Walk(v.Expr, visit)
	case *BinaryExpr:
		Walk(v.L, visit)
		Walk(v.R, visit)
	case *UnaryExpr:
		Walk(v.Child, visit)
	case *ParenExpr:
		Walk(v.Child, visit)
	case *FuncExpr:
		Walk(v.Receiver, visit)
		for _, a := range v.Args {
			Walk(a, visit)
		}
	case *MemberExpr:
		Walk(v.Obj, visit)
	case *ArrayAccessExpr:
		Walk(v.Arr, visit)
		Walk(v.Idx, visit)
	case *ArrayExpr:
		for _, e := range v.Elems {
			Walk(e, visit)
		}
	case *NewArrayExpr:
		Walk(v.Size, visit)
	}
}
