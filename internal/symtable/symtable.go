// Package symtable builds the SymbolTable (spec.md §4.1): the indexed
// facts extracted once from a validated Program AST that every later
// stage — TypeEngine, SemanticPasses, OllirEmitter — reads from rather
// than re-walking the AST.
package symtable

import (
	"github.com/marco-vb/jmmc/internal/ast"
	"github.com/marco-vb/jmmc/internal/types"
)

// Symbol is (type, name); identity is by enclosing scope + name.
type Symbol struct {
	Type types.Type
	Name string
}

// MethodInfo is the per-method view: ordered parameters, ordered
// locals, and the declared return type.
type MethodInfo struct {
	Params     []Symbol
	Locals     []Symbol
	ReturnType types.Type
}

// Table is the SymbolTable: five views over one class's declarations.
type Table struct {
	className  string
	superClass string
	hasSuper   bool
	imports    []string
	importSet  map[string]bool
	fields     []Symbol
	fieldIndex map[string]int
	methods    []string
	methodInfo map[string]*MethodInfo
}

// ClassName returns the program's single class name.
func (t *Table) ClassName() string { return t.className }

// SuperClassName returns the declared superclass, if any.
func (t *Table) SuperClassName() (string, bool) { return t.superClass, t.hasSuper }

// Imports returns the ordered import list.
func (t *Table) Imports() []string { return t.imports }

// IsImported reports whether name is the last segment of some import,
// or the fully-dotted import string itself (both spellings occur as a
// static type at a call site: the dotted form in source, the bare
// segment for a resolved class reference per spec.md §4.2/§4.8).
func (t *Table) IsImported(name string) bool { return t.importSet[name] }

// Fields returns the ordered field list.
func (t *Table) Fields() []Symbol { return t.fields }

// Field looks up a field by name.
func (t *Table) Field(name string) (Symbol, bool) {
	i, ok := t.fieldIndex[name]
	if !ok {
		return Symbol{}, false
	}
	return t.fields[i], true
}

// Methods returns the ordered method-name list.
func (t *Table) Methods() []string { return t.methods }

// HasMethod reports whether name is declared in this class.
func (t *Table) HasMethod(name string) bool {
	_, ok := t.methodInfo[name]
	return ok
}

// ReturnTypeOf returns the declared return type of method name.
func (t *Table) ReturnTypeOf(name string) (types.Type, bool) {
	mi, ok := t.methodInfo[name]
	if !ok {
		return types.Type{}, false
	}
	return mi.ReturnType, true
}

// ParamsOf returns the ordered parameter list of method name.
func (t *Table) ParamsOf(name string) ([]Symbol, bool) {
	mi, ok := t.methodInfo[name]
	if !ok {
		return nil, false
	}
	return mi.Params, true
}

// LocalsOf returns the ordered local-variable list of method name.
func (t *Table) LocalsOf(name string) ([]Symbol, bool) {
	mi, ok := t.methodInfo[name]
	if !ok {
		return nil, false
	}
	return mi.Locals, true
}

// MethodInfoOf returns the full per-method record.
func (t *Table) MethodInfoOf(name string) (*MethodInfo, bool) {
	mi, ok := t.methodInfo[name]
	return mi, ok
}

func typeOf(te *ast.TypeExpr) types.Type {
	if te == nil {
		return types.VoidType()
	}
	return types.Type{Name: te.Name, IsArray: te.IsArray || te.IsVarargs}
}

// Build extracts a Table from prog. Per spec.md §4.1, duplicate names
// within a scope do not abort the build — the first occurrence wins and
// SemanticPasses.DuplicatedElement is responsible for reporting the
// conflict later.
func Build(prog *ast.Program) *Table {
	t := &Table{
		importSet:  make(map[string]bool),
		fieldIndex: make(map[string]int),
		methodInfo: make(map[string]*MethodInfo),
	}
	if prog == nil || prog.Class == nil {
		return t
	}

	for _, imp := range prog.Imports {
		t.imports = append(t.imports, imp.Name)
		t.importSet[imp.Name] = true
		t.importSet[lastSegment(imp.Name)] = true
	}

	class := prog.Class
	t.className = class.Name
	if class.Extends != "" {
		t.superClass = class.Extends
		t.hasSuper = true
	}

	for _, f := range class.Fields {
		name := f.Name
		if _, exists := t.fieldIndex[name]; exists {
			continue
		}
		t.fieldIndex[name] = len(t.fields)
		t.fields = append(t.fields, Symbol{Type: typeOf(f.Type), Name: name})
	}

	for _, m := range class.Methods {
		if _, exists := t.methodInfo[m.Name]; exists {
			continue
		}
		mi := &MethodInfo{ReturnType: typeOf(m.ReturnType)}
		seen := make(map[string]bool)
		if m.Params != nil {
			for _, p := range m.Params.List {
				if seen[p.Name] {
					continue
				}
				seen[p.Name] = true
				mi.Params = append(mi.Params, Symbol{Type: typeOf(p.Type), Name: p.Name})
			}
		}
		for _, l := range m.Locals {
			if seen[l.Name] {
				continue
			}
			seen[l.Name] = true
			mi.Locals = append(mi.Locals, Symbol{Type: typeOf(l.Type), Name: l.Name})
		}
		t.methods = append(t.methods, m.Name)
		t.methodInfo[m.Name] = mi
	}

	return t
}

func lastSegment(dotted string) string {
	last := dotted
	for i := len(dotted) - 1; i >= 0; i-- {
		if dotted[i] == '.' {
			last = dotted[i+1:]
			break
		}
	}
	return last
}
