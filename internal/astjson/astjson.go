// Package astjson loads a Jmm AST from the JSON form an external
// frontend (lexer/parser — out of scope per spec.md §1) is expected to
// produce. Every node is a JSON object tagged by a "kind" field; this
// mirrors the tagged-union shape internal/ast itself uses in Go, just
// spelled as data instead of a type switch.
//
// Parsing uses github.com/tidwall/gjson rather than encoding/json
// struct tags, matching the teacher's preference for the tidwall JSON
// family (see internal/jmmerrors for the same choice on the output
// side).
package astjson

import (
	"fmt"

	"github.com/marco-vb/jmmc/internal/ast"
	"github.com/tidwall/gjson"
)

// Load parses data (the JSON-encoded AST of one compilation unit) into
// an *ast.Program.
func Load(data []byte) (*ast.Program, error) {
	root := gjson.ParseBytes(data)
	if !root.Exists() {
		return nil, fmt.Errorf("astjson: empty or invalid document")
	}
	return parseProgram(root)
}

func parseProgram(v gjson.Result) (*ast.Program, error) {
	prog := &ast.Program{}
	var imports []*ast.ImportDeclaration
	for _, imp := range v.Get("imports").Array() {
		imports = append(imports, &ast.ImportDeclaration{Name: imp.Get("name").String()})
	}
	prog.Imports = imports

	classVal := v.Get("class")
	if !classVal.Exists() {
		return nil, fmt.Errorf("astjson: program has no \"class\"")
	}
	class, err := parseClass(classVal)
	if err != nil {
		return nil, err
	}
	prog.Class = class
	return prog, nil
}

func parseClass(v gjson.Result) (*ast.ClassDeclaration, error) {
	c := &ast.ClassDeclaration{
		Name:    v.Get("name").String(),
		Extends: v.Get("extends").String(),
	}
	for _, fv := range v.Get("fields").Array() {
		c.Fields = append(c.Fields, parseVariable(fv))
	}
	for _, mv := range v.Get("methods").Array() {
		m, err := parseMethod(mv)
		if err != nil {
			return nil, err
		}
		c.Methods = append(c.Methods, m)
	}
	return c, nil
}

func parseType(v gjson.Result) *ast.TypeExpr {
	if !v.Exists() {
		return nil
	}
	return &ast.TypeExpr{
		Name:      v.Get("name").String(),
		IsArray:   v.Get("isArray").Bool(),
		IsVarargs: v.Get("isVarargs").Bool(),
	}
}

func parseVariable(v gjson.Result) *ast.Variable {
	return &ast.Variable{Type: parseType(v.Get("type")), Name: v.Get("name").String()}
}

func parseMethod(v gjson.Result) (*ast.Method, error) {
	m := &ast.Method{
		Name:       v.Get("name").String(),
		IsPublic:   v.Get("isPublic").Bool(),
		IsStatic:   v.Get("isStatic").Bool(),
		ReturnType: parseType(v.Get("returnType")),
		Params:     &ast.Arguments{},
	}
	for _, pv := range v.Get("params").Array() {
		m.Params.List = append(m.Params.List, &ast.Argument{
			Type: parseType(pv.Get("type")),
			Name: pv.Get("name").String(),
		})
	}
	for _, lv := range v.Get("locals").Array() {
		m.Locals = append(m.Locals, parseVariable(lv))
	}
	for _, sv := range v.Get("body").Array() {
		st, err := parseStmt(sv)
		if err != nil {
			return nil, err
		}
		m.Body = append(m.Body, st)
	}
	return m, nil
}

func parseStmt(v gjson.Result) (ast.Stmt, error) {
	kind := v.Get("kind").String()
	switch kind {
	case "Assign":
		lhs, err := parseExpr(v.Get("lhs"))
		if err != nil {
			return nil, err
		}
		rhs, err := parseExpr(v.Get("rhs"))
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Lhs: lhs, Rhs: rhs}, nil
	case "ArrayAssign":
		idx, err := parseExpr(v.Get("index"))
		if err != nil {
			return nil, err
		}
		rhs, err := parseExpr(v.Get("rhs"))
		if err != nil {
			return nil, err
		}
		return &ast.ArrayAssignStmt{Id: v.Get("id").String(), Index: idx, Rhs: rhs}, nil
	case "IfElse":
		cond, err := parseExpr(v.Get("cond"))
		if err != nil {
			return nil, err
		}
		then, err := parseStmt(v.Get("then"))
		if err != nil {
			return nil, err
		}
		var elseStmt ast.Stmt
		if ev := v.Get("else"); ev.Exists() {
			elseStmt, err = parseStmt(ev)
			if err != nil {
				return nil, err
			}
		}
		return &ast.IfElseStmt{Cond: cond, Then: then, Else: elseStmt}, nil
	case "While":
		cond, err := parseExpr(v.Get("cond"))
		if err != nil {
			return nil, err
		}
		body, err := parseStmt(v.Get("body"))
		if err != nil {
			return nil, err
		}
		return &ast.WhileStmt{Cond: cond, Body: body}, nil
	case "Scope":
		var stmts []ast.Stmt
		for _, sv := range v.Get("stmts").Array() {
			st, err := parseStmt(sv)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, st)
		}
		return &ast.ScopeStmt{Stmts: stmts}, nil
	case "Return":
		var expr ast.Expr
		if ev := v.Get("expr"); ev.Exists() {
			var err error
			expr, err = parseExpr(ev)
			if err != nil {
				return nil, err
			}
		}
		return &ast.ReturnStmt{Expr: expr}, nil
	case "Expression":
		expr, err := parseExpr(v.Get("expr"))
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStmt{Expr: expr}, nil
	default:
		return nil, fmt.Errorf("astjson: unknown statement kind %q", kind)
	}
}

func parseExpr(v gjson.Result) (ast.Expr, error) {
	kind := v.Get("kind").String()
	switch kind {
	case "Binary":
		l, err := parseExpr(v.Get("l"))
		if err != nil {
			return nil, err
		}
		r, err := parseExpr(v.Get("r"))
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Op: ast.BinaryOp(v.Get("op").String()), L: l, R: r}, nil
	case "Unary":
		child, err := parseExpr(v.Get("child"))
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Child: child}, nil
	case "Paren":
		child, err := parseExpr(v.Get("child"))
		if err != nil {
			return nil, err
		}
		return &ast.ParenExpr{Child: child}, nil
	case "VarRef":
		return &ast.VarRefExpr{Name: v.Get("name").String()}, nil
	case "Func":
		var recv ast.Expr
		if rv := v.Get("receiver"); rv.Exists() {
			var err error
			recv, err = parseExpr(rv)
			if err != nil {
				return nil, err
			}
		}
		var args []ast.Expr
		for _, av := range v.Get("args").Array() {
			a, err := parseExpr(av)
			if err != nil {
				return nil, err
			}
			args = append(args, a)
		}
		return &ast.FuncExpr{Receiver: recv, MethodName: v.Get("methodName").String(), Args: args}, nil
	case "Member":
		obj, err := parseExpr(v.Get("obj"))
		if err != nil {
			return nil, err
		}
		var path []string
		for _, p := range v.Get("path").Array() {
			path = append(path, p.String())
		}
		return &ast.MemberExpr{Obj: obj, Path: path}, nil
	case "ArrayAccess":
		arr, err := parseExpr(v.Get("arr"))
		if err != nil {
			return nil, err
		}
		idx, err := parseExpr(v.Get("idx"))
		if err != nil {
			return nil, err
		}
		return &ast.ArrayAccessExpr{Arr: arr, Idx: idx}, nil
	case "Array":
		var elems []ast.Expr
		for _, ev := range v.Get("elems").Array() {
			e, err := parseExpr(ev)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		return &ast.ArrayExpr{Elems: elems}, nil
	case "New":
		return &ast.NewExpr{ClassName: v.Get("className").String()}, nil
	case "NewArray":
		size, err := parseExpr(v.Get("size"))
		if err != nil {
			return nil, err
		}
		return &ast.NewArrayExpr{Size: size}, nil
	case "IntegerLiteral":
		return &ast.IntegerLiteral{Value: v.Get("value").String()}, nil
	case "BooleanLiteral":
		return &ast.BooleanLiteral{Value: v.Get("value").Bool()}, nil
	case "This":
		return &ast.ThisExpr{}, nil
	default:
		return nil, fmt.Errorf("astjson: unknown expression kind %q", kind)
	}
}
