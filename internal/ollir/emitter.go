package ollir

import (
	"fmt"
	"strings"

	"github.com/marco-vb/jmmc/internal/ast"
	"github.com/marco-vb/jmmc/internal/semantic"
	"github.com/marco-vb/jmmc/internal/symtable"
	"github.com/marco-vb/jmmc/internal/types"
)

// Emitter is the OllirEmitter (spec.md §4.6): it walks a validated,
// already-lowered AST and renders OLLIR source text. Temp and label
// counters live on the Emitter instance rather than as package globals,
// so one compilation's counters never leak into another's (spec.md §9
// "Global counters").
type Emitter struct {
	st     *symtable.Table
	te     *semantic.TypeEngine
	tmp    int
	labels map[string]int
}

// NewEmitter builds an Emitter bound to st and te.
func NewEmitter(st *symtable.Table, te *semantic.TypeEngine) *Emitter {
	return &Emitter{st: st, te: te, labels: make(map[string]int)}
}

func (e *Emitter) freshTemp(t types.Type) string {
	e.tmp++
	return fmt.Sprintf("t%d.%s", e.tmp, Suffix(t))
}

func (e *Emitter) freshLabel(tag string) string {
	e.labels[tag]++
	return fmt.Sprintf("L_%s%d", tag, e.labels[tag])
}

// Emit renders prog's single class as OLLIR text.
func (e *Emitter) Emit(prog *ast.Program) string {
	if prog == nil || prog.Class == nil {
		return ""
	}
	var b strings.Builder
	class := prog.Class

	for _, imp := range prog.Imports {
		fmt.Fprintf(&b, "import %s;\n", imp.Name)
	}

	extends := class.Extends
	if extends == "" {
		extends = "Object"
	}
	fmt.Fprintf(&b, "%s extends %s {\n", class.Name, extends)

	for _, f := range class.Fields {
		fmt.Fprintf(&b, "    .field public %s.%s;\n", f.Name, Suffix(typeOf(f.Type)))
	}

	fmt.Fprintf(&b, "    .construct %s().V {\n", class.Name)
	fmt.Fprintf(&b, "        invokespecial(this, \"<init>\").V;\n")
	fmt.Fprintf(&b, "    }\n")

	for _, m := range class.Methods {
		e.emitMethod(&b, m)
	}

	b.WriteString("}\n")
	return b.String()
}

func typeOf(te *ast.TypeExpr) types.Type {
	if te == nil {
		return types.VoidType()
	}
	return types.Type{Name: te.Name, IsArray: te.IsArray || te.IsVarargs}
}

func (e *Emitter) emitMethod(b *strings.Builder, m *ast.Method) {
	mods := "public"
	if m.IsStatic {
		mods = "public static"
	}

	var params []string
	if m.Params != nil {
		for _, p := range m.Params.List {
			params = append(params, fmt.Sprintf("%s.%s", p.Name, Suffix(typeOf(p.Type))))
		}
	}
	retType := typeOf(m.ReturnType)

	fmt.Fprintf(b, "    .method %s %s(%s).%s {\n", mods, m.Name, strings.Join(params, ", "), Suffix(retType))

	var body strings.Builder
	hasReturn := false
	for _, s := range m.Body {
		if _, ok := s.(*ast.ReturnStmt); ok {
			hasReturn = true
		}
		e.emitStmt(&body, s, m)
	}
	if !hasReturn && retType.IsVoid() {
		body.WriteString("        ret.V;\n")
	}
	b.WriteString(body.String())
	b.WriteString("    }\n")
}

func (e *Emitter) emitStmt(b *strings.Builder, s ast.Stmt, m *ast.Method) {
	switch st := s.(type) {
	case *ast.AssignStmt:
		ref, isRef := st.Lhs.(*ast.VarRefExpr)
		if isRef && e.isField(ref.Name, m) {
			lt := e.te.ExprType(st.Lhs, m)
			code := e.emitExpr(b, st.Rhs, m, lt, true)
			fmt.Fprintf(b, "        putfield(this, %s.%s, %s).V;\n", ref.Name, Suffix(lt), code)
			return
		}
		lt := e.te.ExprType(st.Lhs, m)
		code := e.emitExpr(b, st.Rhs, m, lt, true)
		if isRef {
			fmt.Fprintf(b, "        %s.%s :=.%s %s;\n", ref.Name, Suffix(lt), Suffix(lt), code)
		}
	case *ast.ArrayAssignStmt:
		idxCode := e.emitExpr(b, st.Index, m, types.IntType(), false)
		elemType, _ := e.te.ResolveName(st.Id, m)
		elemType = types.Type{Name: elemType.Name}
		rhsCode := e.emitExpr(b, st.Rhs, m, elemType, false)
		fmt.Fprintf(b, "        %s[%s].%s :=.%s %s;\n", st.Id, idxCode, Suffix(elemType), Suffix(elemType), rhsCode)
	case *ast.IfElseStmt:
		elseLabel := e.freshLabel("else")
		endLabel := e.freshLabel("endif")
		condCode := e.emitExpr(b, st.Cond, m, types.BoolType(), false)
		fmt.Fprintf(b, "        if (!.bool %s) goto %s;\n", condCode, elseLabel)
		e.emitStmt(b, st.Then, m)
		fmt.Fprintf(b, "        goto %s;\n", endLabel)
		fmt.Fprintf(b, "    %s:\n", elseLabel)
		if st.Else != nil {
			e.emitStmt(b, st.Else, m)
		}
		fmt.Fprintf(b, "    %s:\n", endLabel)
	case *ast.WhileStmt:
		startLabel := e.freshLabel("while")
		endLabel := e.freshLabel("endwhile")
		fmt.Fprintf(b, "    %s:\n", startLabel)
		condCode := e.emitExpr(b, st.Cond, m, types.BoolType(), false)
		fmt.Fprintf(b, "        if (!.bool %s) goto %s;\n", condCode, endLabel)
		e.emitStmt(b, st.Body, m)
		fmt.Fprintf(b, "        goto %s;\n", startLabel)
		fmt.Fprintf(b, "    %s:\n", endLabel)
	case *ast.ScopeStmt:
		for _, child := range st.Stmts {
			e.emitStmt(b, child, m)
		}
	case *ast.ReturnStmt:
		retType := typeOf(m.ReturnType)
		if st.Expr == nil {
			b.WriteString("        ret.V;\n")
			return
		}
		code := e.emitExpr(b, st.Expr, m, retType, false)
		fmt.Fprintf(b, "        ret.%s %s;\n", Suffix(retType), code)
	case *ast.ExpressionStmt:
		e.emitExpr(b, st.Expr, m, types.VoidType(), false)
	}
}

func (e *Emitter) isField(name string, m *ast.Method) bool {
	if m.Params != nil {
		for _, p := range m.Params.List {
			if p.Name == name {
				return false
			}
		}
	}
	for _, l := range m.Locals {
		if l.Name == name {
			return false
		}
	}
	_, ok := e.st.Field(name)
	return ok
}

// emitExpr writes any computation lines expr requires into b and returns
// the operand text ("name.T", "t3.i32", "5.i32", ...) to splice into the
// caller's own statement. expected carries the parent-context type used
// to resolve a call's return type (spec.md §4.6); directAssignRHS allows
// the "inline instead of bind to a temp" shortcut for a binary expr that
// is itself the direct RHS of an AssignStmt.
func (e *Emitter) emitExpr(b *strings.Builder, expr ast.Expr, m *ast.Method, expected types.Type, directAssignRHS bool) string {
	switch ex := expr.(type) {
	case *ast.IntegerLiteral:
		return fmt.Sprintf("%s.i32", ex.Value)
	case *ast.BooleanLiteral:
		if ex.Value {
			return "1.bool"
		}
		return "0.bool"
	case *ast.ThisExpr:
		return "this"
	case *ast.ParenExpr:
		return e.emitExpr(b, ex.Child, m, expected, directAssignRHS)
	case *ast.VarRefExpr:
		t := e.te.ExprType(ex, m)
		if e.isField(ex.Name, m) {
			tmp := e.freshTemp(t)
			fmt.Fprintf(b, "        %s :=.%s getfield(this, %s.%s).%s;\n", tmp, Suffix(t), ex.Name, Suffix(t), Suffix(t))
			return tmp
		}
		return fmt.Sprintf("%s.%s", ex.Name, Suffix(t))
	case *ast.UnaryExpr:
		childCode := e.emitExpr(b, ex.Child, m, types.BoolType(), false)
		tmp := e.freshTemp(types.BoolType())
		fmt.Fprintf(b, "        %s :=.bool !.bool %s;\n", tmp, childCode)
		return tmp
	case *ast.BinaryExpr:
		return e.emitBinary(b, ex, m, directAssignRHS)
	case *ast.ArrayAccessExpr:
		arrCode := e.emitExpr(b, ex.Arr, m, types.IntArrayType(), false)
		idxCode := e.emitExpr(b, ex.Idx, m, types.IntType(), false)
		tmp := e.freshTemp(types.IntType())
		fmt.Fprintf(b, "        %s :=.i32 %s[%s].i32;\n", tmp, arrCode, idxCode)
		return tmp
	case *ast.NewExpr:
		t := types.ClassType(ex.ClassName)
		tmp := e.freshTemp(t)
		fmt.Fprintf(b, "        %s :=.%s new(%s).%s;\n", tmp, Suffix(t), ex.ClassName, Suffix(t))
		fmt.Fprintf(b, "        invokespecial(%s, \"<init>\").V;\n", tmp)
		return tmp
	case *ast.NewArrayExpr:
		sizeCode := e.emitExpr(b, ex.Size, m, types.IntType(), false)
		tmp := e.freshTemp(types.IntArrayType())
		fmt.Fprintf(b, "        %s :=.array.i32 new(array, %s).array.i32;\n", tmp, sizeCode)
		return tmp
	case *ast.ArrayExpr:
		n := len(ex.Elems)
		tmp := e.freshTemp(types.IntArrayType())
		fmt.Fprintf(b, "        %s :=.array.i32 new(array, %d.i32).array.i32;\n", tmp, n)
		for i, el := range ex.Elems {
			elCode := e.emitExpr(b, el, m, types.IntType(), false)
			fmt.Fprintf(b, "        %s[%d.i32].i32 :=.i32 %s;\n", tmp, i, elCode)
		}
		return tmp
	case *ast.MemberExpr:
		return e.emitExpr(b, ex.Obj, m, expected, false)
	case *ast.FuncExpr:
		return e.emitCall(b, ex, m, expected)
	}
	return ""
}

// emitBinary implements spec.md §4.6's BinaryExpr rules: && short-circuits,
// everything else linearises both operands first and either inlines or
// binds into a fresh temporary.
func (e *Emitter) emitBinary(b *strings.Builder, bin *ast.BinaryExpr, m *ast.Method, directAssignRHS bool) string {
	if bin.Op == ast.OpAnd {
		result := e.freshTemp(types.BoolType())
		falseLabel := e.freshLabel("false")
		endLabel := e.freshLabel("end")
		lCode := e.emitExpr(b, bin.L, m, types.BoolType(), false)
		fmt.Fprintf(b, "        if (!.bool %s) goto %s;\n", lCode, falseLabel)
		rCode := e.emitExpr(b, bin.R, m, types.BoolType(), false)
		fmt.Fprintf(b, "        %s :=.bool %s;\n", result, rCode)
		fmt.Fprintf(b, "        goto %s;\n", endLabel)
		fmt.Fprintf(b, "    %s:\n", falseLabel)
		fmt.Fprintf(b, "        %s :=.bool 0.bool;\n", result)
		fmt.Fprintf(b, "    %s:\n", endLabel)
		return result
	}

	lCode := e.emitExpr(b, bin.L, m, types.IntType(), false)
	rCode := e.emitExpr(b, bin.R, m, types.IntType(), false)

	var resultType types.Type
	if bin.Op.IsArithmetic() {
		resultType = types.IntType()
	} else {
		resultType = types.BoolType()
	}

	opExpr := fmt.Sprintf("%s %s.%s %s", lCode, bin.Op, Suffix(resultType), rCode)

	if directAssignRHS && isTrivialName(bin.L) && isTrivialName(bin.R) {
		return opExpr
	}

	tmp := e.freshTemp(resultType)
	fmt.Fprintf(b, "        %s :=.%s %s;\n", tmp, Suffix(resultType), opExpr)
	return tmp
}

func isTrivialName(e ast.Expr) bool {
	switch e.(type) {
	case *ast.IntegerLiteral, *ast.BooleanLiteral, *ast.VarRefExpr:
		return true
	}
	return false
}

// emitCall implements spec.md §4.6's FuncExpr dispatch-kind resolution.
func (e *Emitter) emitCall(b *strings.Builder, fe *ast.FuncExpr, m *ast.Method, expected types.Type) string {
	if fe.MethodName == "length" && len(fe.Args) == 0 {
		if recvType := e.te.ExprType(fe.Receiver, m); recvType.IsArray {
			arrCode := e.emitExpr(b, fe.Receiver, m, recvType, false)
			tmp := e.freshTemp(types.IntType())
			fmt.Fprintf(b, "        %s :=.i32 arraylength(%s).i32;\n", tmp, arrCode)
			return tmp
		}
	}

	_, isThis := fe.Receiver.(*ast.ThisExpr)
	if isThis && len(fe.Args) == 0 {
		if _, ok := e.st.Field(fe.MethodName); ok {
			t := e.te.ExprType(&ast.VarRefExpr{Name: fe.MethodName}, m)
			tmp := e.freshTemp(t)
			fmt.Fprintf(b, "        %s :=.%s getfield(this, %s.%s).%s;\n", tmp, Suffix(t), fe.MethodName, Suffix(t), Suffix(t))
			return tmp
		}
	}

	retType := e.resolveCallReturnType(fe, expected)

	var argCodes []string
	for _, a := range fe.Args {
		argCodes = append(argCodes, e.emitExpr(b, a, m, types.AnyType(), false))
	}
	argList := strings.Join(argCodes, ", ")

	var invocation string
	switch {
	case isThis:
		if argList != "" {
			invocation = fmt.Sprintf("invokevirtual(this, \"%s\", %s)", fe.MethodName, argList)
		} else {
			invocation = fmt.Sprintf("invokevirtual(this, \"%s\")", fe.MethodName)
		}
	default:
		if recvName, ok := fe.Receiver.(*ast.VarRefExpr); ok && e.st.IsImported(recvName.Name) {
			if argList != "" {
				invocation = fmt.Sprintf("invokestatic(%s, \"%s\", %s)", recvName.Name, fe.MethodName, argList)
			} else {
				invocation = fmt.Sprintf("invokestatic(%s, \"%s\")", recvName.Name, fe.MethodName)
			}
		} else {
			recvCode := e.emitExpr(b, fe.Receiver, m, types.AnyType(), false)
			if argList != "" {
				invocation = fmt.Sprintf("invokevirtual(%s, \"%s\", %s)", recvCode, fe.MethodName, argList)
			} else {
				invocation = fmt.Sprintf("invokevirtual(%s, \"%s\")", recvCode, fe.MethodName)
			}
		}
	}

	if retType.IsVoid() {
		fmt.Fprintf(b, "        %s.V;\n", invocation)
		return ""
	}
	tmp := e.freshTemp(retType)
	fmt.Fprintf(b, "        %s :=.%s %s.%s;\n", tmp, Suffix(retType), invocation, Suffix(retType))
	return tmp
}

func (e *Emitter) resolveCallReturnType(fe *ast.FuncExpr, expected types.Type) types.Type {
	if e.st.HasMethod(fe.MethodName) {
		rt, _ := e.st.ReturnTypeOf(fe.MethodName)
		return rt
	}
	if expected.Name != "" {
		return expected
	}
	return types.VoidType()
}
