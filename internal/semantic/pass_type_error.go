package semantic

import (
	"github.com/marco-vb/jmmc/internal/ast"
	"github.com/marco-vb/jmmc/internal/types"
)

// TypeError checks every typing rule of spec.md §4.3 except array-ness
// of an indexed expression (InvalidArrayAccess owns that one).
type TypeError struct{}

func (TypeError) Name() string { return "TypeError" }

func (p TypeError) Run(prog *ast.Program, ctx *Context) {
	if prog == nil || prog.Class == nil {
		return
	}
	methodsByName := make(map[string]*ast.Method, len(prog.Class.Methods))
	for _, m := range prog.Class.Methods {
		methodsByName[m.Name] = m
	}

	for _, m := range prog.Class.Methods {
		ast.Walk(&ast.ScopeStmt{Stmts: m.Body}, func(n ast.Node) bool {
			switch node := n.(type) {
			case *ast.BinaryExpr:
				p.checkBinary(node, m, ctx)
			case *ast.ArrayAccessExpr:
				idxType := ctx.TE.ExprType(node.Idx, m)
				if !idxType.Equal(types.IntType()) {
					ctx.AddReport(p.Name(), node, "array index must be int, got %s", idxType)
				}
			case *ast.AssignStmt:
				p.checkAssign(node, m, ctx)
			case *ast.ArrayAssignStmt:
				p.checkArrayAssign(node, m, ctx)
			case *ast.IfElseStmt:
				p.requireBoolean(node.Cond, m, ctx, "if condition")
			case *ast.WhileStmt:
				p.requireBoolean(node.Cond, m, ctx, "while condition")
			case *ast.ReturnStmt:
				p.checkReturn(node, m, ctx)
			case *ast.FuncExpr:
				p.checkCall(node, methodsByName, m, ctx)
			}
			return true
		})
	}
}

func (p TypeError) requireBoolean(e ast.Expr, m *ast.Method, ctx *Context, what string) {
	if e == nil {
		return
	}
	t := ctx.TE.ExprType(e, m)
	if !t.Equal(types.BoolType()) {
		ctx.AddReport(p.Name(), e, "%s must be boolean, got %s", what, t)
	}
}

func (p TypeError) checkBinary(b *ast.BinaryExpr, m *ast.Method, ctx *Context) {
	lt := ctx.TE.ExprType(b.L, m)
	rt := ctx.TE.ExprType(b.R, m)

	if lt.IsArray || rt.IsArray {
		ctx.AddReport(p.Name(), b, "array type not allowed in binary expression %q", b.Op)
		return
	}

	switch {
	case b.Op.IsArithmetic():
		if !lt.Equal(types.IntType()) || !rt.Equal(types.IntType()) {
			ctx.AddReport(p.Name(), b, "arithmetic operator %q requires int operands, got %s and %s", b.Op, lt, rt)
		}
	case b.Op.IsLogical():
		if !lt.Equal(types.BoolType()) || !rt.Equal(types.BoolType()) {
			ctx.AddReport(p.Name(), b, "logical operator %q requires boolean operands, got %s and %s", b.Op, lt, rt)
		}
	default: // relational / equality
		if !lt.Equal(rt) {
			ctx.AddReport(p.Name(), b, "comparison operator %q requires operands of the same type, got %s and %s", b.Op, lt, rt)
		}
	}
}

func (p TypeError) checkAssign(a *ast.AssignStmt, m *ast.Method, ctx *Context) {
	lt := ctx.TE.ExprType(a.Lhs, m)
	rt := ctx.TE.ExprType(a.Rhs, m)
	if !ctx.TE.Assignable(rt, lt) {
		ctx.AddReport(p.Name(), a, "cannot assign %s to %s", rt, lt)
	}
}

func (p TypeError) checkArrayAssign(a *ast.ArrayAssignStmt, m *ast.Method, ctx *Context) {
	idxType := ctx.TE.ExprType(a.Index, m)
	if !idxType.Equal(types.IntType()) {
		ctx.AddReport(p.Name(), a, "array index must be int, got %s", idxType)
	}
	arrType, ok := ctx.TE.ResolveName(a.Id, m)
	if !ok {
		return // UndeclaredVariable already reports this
	}
	elemType := types.Type{Name: arrType.Name}
	rt := ctx.TE.ExprType(a.Rhs, m)
	if !ctx.TE.Assignable(rt, elemType) {
		ctx.AddReport(p.Name(), a, "cannot assign %s to array element of type %s", rt, elemType)
	}
}

func (p TypeError) checkReturn(r *ast.ReturnStmt, m *ast.Method, ctx *Context) {
	if r.Expr == nil || m.ReturnType == nil {
		return
	}
	declared := types.Type{Name: m.ReturnType.Name, IsArray: m.ReturnType.IsArray}
	got := ctx.TE.ExprType(r.Expr, m)
	if !ctx.TE.Assignable(got, declared) {
		ctx.AddReport(p.Name(), r, "return type mismatch: method returns %s, got %s", declared, got)
	}
}

func (p TypeError) checkCall(fe *ast.FuncExpr, methodsByName map[string]*ast.Method, m *ast.Method, ctx *Context) {
	target, ok := methodsByName[fe.MethodName]
	if !ok {
		return // UndefinedMethod (or an external/imported call) owns unresolved targets
	}

	var params []*ast.Argument
	if target.Params != nil {
		params = target.Params.List
	}
	n := len(params)
	varargs := n > 0 && params[n-1].Type.IsVarargs

	if !varargs {
		if len(fe.Args) != n {
			ctx.AddReport(p.Name(), fe, "method %q expects %d argument(s), got %d", fe.MethodName, n, len(fe.Args))
			return
		}
		for i, arg := range fe.Args {
			p.checkArgType(fe, arg, params[i].Type, m, ctx)
		}
		return
	}

	elemType := types.Type{Name: params[n-1].Type.Name}

	if len(fe.Args) == n {
		lastType := ctx.TE.ExprType(fe.Args[n-1], m)
		if lastType.IsArray && lastType.Name == elemType.Name {
			for i := 0; i < n-1; i++ {
				p.checkArgType(fe, fe.Args[i], params[i].Type, m, ctx)
			}
			return
		}
	}

	if len(fe.Args) < n-1 {
		ctx.AddReport(p.Name(), fe, "method %q expects at least %d argument(s), got %d", fe.MethodName, n-1, len(fe.Args))
		return
	}

	for i := 0; i < n-1; i++ {
		p.checkArgType(fe, fe.Args[i], params[i].Type, m, ctx)
	}
	for i := n - 1; i < len(fe.Args); i++ {
		got := ctx.TE.ExprType(fe.Args[i], m)
		if !ctx.TE.Assignable(got, elemType) {
			ctx.AddReport(p.Name(), fe, "varargs argument %d of %q must be %s, got %s", i+1, fe.MethodName, elemType, got)
		}
	}
}

func (p TypeError) checkArgType(fe *ast.FuncExpr, arg ast.Expr, want *ast.TypeExpr, m *ast.Method, ctx *Context) {
	wantType := types.Type{Name: want.Name, IsArray: want.IsArray || want.IsVarargs}
	got := ctx.TE.ExprType(arg, m)
	if !ctx.TE.Assignable(got, wantType) {
		ctx.AddReport(p.Name(), arg, "argument to %q has type %s, expected %s", fe.MethodName, got, wantType)
	}
}
