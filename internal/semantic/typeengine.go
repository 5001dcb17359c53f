package semantic

import (
	"github.com/marco-vb/jmmc/internal/ast"
	"github.com/marco-vb/jmmc/internal/symtable"
	"github.com/marco-vb/jmmc/internal/types"
)

// TypeEngine derives the semantic type of any AST expression given a
// SymbolTable (spec.md §4.2).
type TypeEngine struct {
	st *symtable.Table
}

// NewTypeEngine builds a TypeEngine bound to st.
func NewTypeEngine(st *symtable.Table) *TypeEngine {
	return &TypeEngine{st: st}
}

// ResolveName resolves an identifier in the context of method (nil for
// a reference outside any method, which cannot happen in a well-formed
// Jmm program but is handled defensively): params/locals first, then
// fields, then imports. The second return is false when nothing binds
// the name — UndeclaredVariable is responsible for reporting that.
func (te *TypeEngine) ResolveName(name string, method *ast.Method) (types.Type, bool) {
	if method != nil {
		if method.Params != nil {
			for _, p := range method.Params.List {
				if p.Name == name {
					return typeExprType(p.Type), true
				}
			}
		}
		for _, l := range method.Locals {
			if l.Name == name {
				return typeExprType(l.Type), true
			}
		}
	}
	if te.st != nil {
		if f, ok := te.st.Field(name); ok {
			return f.Type, true
		}
		if te.st.IsImported(name) {
			return types.ClassType(name), true
		}
	}
	return types.Type{}, false
}

func typeExprType(te *ast.TypeExpr) types.Type {
	if te == nil {
		return types.VoidType()
	}
	return types.Type{Name: te.Name, IsArray: te.IsArray || te.IsVarargs}
}

// ExprType derives expr's type per the spec.md §4.2 table. method gives
// the enclosing method for identifier/this resolution; it is nil only
// when expr cannot contain an identifier (never true in practice, but
// callers outside a method body — there are none in Jmm — would pass
// nil safely).
func (te *TypeEngine) ExprType(expr ast.Expr, method *ast.Method) types.Type {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return types.IntType()
	case *ast.BooleanLiteral:
		return types.BoolType()
	case *ast.ArrayAccessExpr:
		return types.IntType()
	case *ast.ArrayExpr:
		return types.IntArrayType()
	case *ast.NewArrayExpr:
		return types.IntArrayType()
	case *ast.NewExpr:
		return types.ClassType(e.ClassName)
	case *ast.ThisExpr:
		if te.st != nil {
			return types.ClassType(te.st.ClassName())
		}
		return types.AnyType()
	case *ast.VarRefExpr:
		if t, ok := te.ResolveName(e.Name, method); ok {
			return t
		}
		return types.Type{}
	case *ast.ParenExpr:
		return te.ExprType(e.Child, method)
	case *ast.UnaryExpr:
		return types.BoolType()
	case *ast.BinaryExpr:
		if e.Op.IsArithmetic() {
			return types.IntType()
		}
		return types.BoolType()
	case *ast.FuncExpr:
		if te.st != nil && te.st.HasMethod(e.MethodName) {
			rt, _ := te.st.ReturnTypeOf(e.MethodName)
			return rt
		}
		return types.AnyType()
	case *ast.MemberExpr:
		return types.AnyType()
	}
	return types.Type{}
}

// Assignable delegates to types.Assignable using this engine's table.
func (te *TypeEngine) Assignable(src, dst types.Type) bool {
	return types.Assignable(src, dst, te.st)
}

// ExprTypeIsArray reports whether expr's static type is an array,
// satisfying package varargs's TypeResolver so VarargsLowerer can tell an
// already-array-typed call argument from one that still needs wrapping.
func (te *TypeEngine) ExprTypeIsArray(expr ast.Expr, method *ast.Method) bool {
	return te.ExprType(expr, method).IsArray
}
