// Package ast defines the Jmm abstract syntax tree consumed by the core
// pipeline (symbol table, semantic passes, optimisers, OLLIR emitter).
//
// The tree is a Go tagged union: one concrete struct per node kind from
// the data model, each implementing Node (and, where applicable, Stmt or
// Expr). This replaces the dynamic kind-tag/attribute-map representation
// of the original language's own AST with typed fields per variant, per
// the "Visitors" design note; no generic attribute map remains (TypeExpr's
// array/varargs flags are plain bool fields, see declarations.go).
package ast

import "github.com/marco-vb/jmmc/internal/lexer"

// Node is implemented by every AST node.
type Node interface {
	Pos() lexer.Position
	node()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmt()
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	expr()
}

// base carries the position every node needs; embed it to satisfy Node.Pos.
type base struct {
	Position lexer.Position
}

func (b base) Pos() lexer.Position { return b.Position }
func (base) node()                 {}

// Program is the root node: zero or more imports, exactly one class
// (spec.md §3 invariant).
type Program struct {
	base
	Imports []*ImportDeclaration
	Class   *ClassDeclaration
}

// ImportDeclaration names a dotted import path, e.g. "java.util.List".
type ImportDeclaration struct {
	base
	Name string
}

// ClassDeclaration is the program's single class.
type ClassDeclaration struct {
	base
	Name    string
	Extends string // "" when there is no explicit superclass
	Fields  []*Variable
	Methods []*Method
}
