// Package jasmin implements the JasminEmitter (spec.md §4.8): it walks
// one method's OLLIR IR (as produced by internal/ollir and, optionally,
// register-assigned by internal/regalloc) and renders Jasmin assembler
// text consumed by an external JVM assembler.
package jasmin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/marco-vb/jmmc/internal/ollir"
)

// Emitter renders one ClassUnit as Jasmin text.
type Emitter struct {
	cu      *ollir.ClassUnit
	imports ImportMap
}

// NewEmitter builds an Emitter for cu using imports to qualify class
// names referenced from calls, fields, and descriptors.
func NewEmitter(cu *ollir.ClassUnit, imports []string) *Emitter {
	return &Emitter{cu: cu, imports: NewImportMap(imports)}
}

// Emit renders the whole class. registers maps each method name to its
// RegisterAllocator assignment (name -> slot); a local with no entry in
// that map gets the next unused slot, in order of first use.
func (e *Emitter) Emit(registers map[string]map[string]int) string {
	var b strings.Builder
	super := e.cu.Extends
	if super == "" || super == "Object" {
		super = "java/lang/Object"
	} else {
		super = e.imports.Qualify(super)
	}

	fmt.Fprintf(&b, ".class public %s\n", e.cu.Name)
	fmt.Fprintf(&b, ".super %s\n\n", super)

	for _, f := range e.cu.Fields {
		fmt.Fprintf(&b, ".field public %s %s\n", f.Name, Descriptor(f.Type, e.imports))
	}
	b.WriteString("\n")

	b.WriteString(".method public <init>()V\n")
	b.WriteString("    .limit stack 1\n")
	b.WriteString("    .limit locals 1\n")
	b.WriteString("    aload_0\n")
	fmt.Fprintf(&b, "    invokespecial %s/<init>()V\n", super)
	b.WriteString("    return\n")
	b.WriteString(".end method\n\n")

	for _, m := range e.cu.Methods {
		regs := registers[m.Name]
		me := &methodEmitter{Emitter: e, m: m, regs: regs, paramSlot: map[string]int{}}
		me.assignParamSlots()
		b.WriteString(me.emit())
		b.WriteString("\n")
	}

	return b.String()
}

type methodEmitter struct {
	*Emitter
	m         *ollir.Method
	regs      map[string]int
	paramSlot map[string]int

	stack    int
	maxStack int
	maxLocal int

	body          strings.Builder
	labelCounters map[string]int
}

func (me *methodEmitter) assignParamSlots() {
	slot := 0
	if !me.m.IsStatic {
		slot = 1
	}
	for _, p := range me.m.Params {
		me.paramSlot[p.Name] = slot
		slot++
	}
	me.touchLocal(slot - 1)
	if !me.m.IsStatic {
		me.touchLocal(0)
	}
}

func (me *methodEmitter) touchLocal(slot int) {
	if slot > me.maxLocal {
		me.maxLocal = slot
	}
}

// slotOf resolves a variable name to its local-variable slot: this (0),
// a parameter, a register-allocated local, or else the next unused slot.
func (me *methodEmitter) slotOf(name string) int {
	if slot, ok := me.paramSlot[name]; ok {
		return slot
	}
	if slot, ok := me.regs[name]; ok {
		me.touchLocal(slot)
		return slot
	}
	if name == "this" || name == "" {
		me.touchLocal(0)
		return 0
	}
	slot := me.maxLocal + 1
	for _, s := range me.regs {
		if s >= slot {
			slot = s + 1
		}
	}
	me.paramSlot[name] = slot
	me.touchLocal(slot)
	return slot
}

func (me *methodEmitter) push(n int) {
	me.stack += n
	if me.stack > me.maxStack {
		me.maxStack = me.stack
	}
}

func (me *methodEmitter) pop(n int) { me.stack -= n }

func (me *methodEmitter) line(format string, args ...any) {
	fmt.Fprintf(&me.body, "        "+format+"\n", args...)
}

func (me *methodEmitter) label(name string) {
	fmt.Fprintf(&me.body, "    %s:\n", name)
}

func (me *methodEmitter) emit() string {
	mods := "public"
	if me.m.IsStatic {
		mods = "public static"
	}
	var argDescs []string
	for _, p := range me.m.Params {
		argDescs = append(argDescs, Descriptor(p.Type, me.imports))
	}
	desc := "(" + strings.Join(argDescs, "") + ")" + Descriptor(me.m.ReturnType, me.imports)

	for _, instr := range me.m.Instructions {
		for _, l := range instr.Labels {
			me.label(l)
		}
		me.emitInstr(instr)
	}

	var header strings.Builder
	fmt.Fprintf(&header, ".method %s %s%s\n", mods, me.m.Name, desc)
	fmt.Fprintf(&header, "    .limit stack %d\n", max(me.maxStack, 1))
	fmt.Fprintf(&header, "    .limit locals %d\n", me.maxLocal+1)
	header.WriteString(me.body.String())
	header.WriteString(".end method\n")
	return header.String()
}

func (me *methodEmitter) emitInstr(instr *ollir.Instruction) {
	switch instr.Kind {
	case ollir.KindAssign:
		if me.tryIinc(instr) {
			return
		}
		if len(instr.Dest.Indices) > 0 {
			me.line("aload %d", me.slotOf(instr.Dest.Name))
			me.push(1)
			me.loadIndex(instr.Dest.Indices[0])
			me.loadValue(instr.Rhs)
			me.storeArray(instr.Dest.Type)
			return
		}
		me.loadValue(instr.Rhs)
		me.storeVar(instr.Dest.Name, instr.Dest.Type)
	case ollir.KindPutField:
		me.line("aload_0")
		me.push(1)
		me.loadValue(instr.Rhs)
		fmt.Fprintf(&me.body, "        putfield %s/%s %s\n", me.cu.Name, instr.Operand.Name, Descriptor(instr.Operand.Type, me.imports))
		me.pop(2)
	case ollir.KindCall:
		me.loadValue(instr)
		if instr.ReturnType == "V" {
			return
		}
		me.pop(1) // standalone non-void call statement: discard result
		me.line("pop")
	case ollir.KindReturn:
		me.emitReturn(instr)
	case ollir.KindGoto:
		me.line("goto %s", instr.Target)
	case ollir.KindCondBranch:
		me.emitCondBranch(instr)
	}
}

// loadValue pushes instr's value onto the stack, dispatching on its kind.
func (me *methodEmitter) loadValue(instr *ollir.Instruction) {
	switch instr.Kind {
	case ollir.KindLiteral:
		me.loadLiteral(instr.Operand)
	case ollir.KindOperand:
		me.loadVar(instr.Operand.Name, instr.Operand.Type)
	case ollir.KindArrayOperand:
		me.line("aload %d", me.slotOf(instr.Operand.Name))
		me.push(1)
		if len(instr.Operand.Indices) > 0 {
			me.loadIndex(instr.Operand.Indices[0])
		}
		me.line("iaload")
		me.pop(1)
	case ollir.KindGetField:
		me.line("aload_0")
		me.push(1)
		fmt.Fprintf(&me.body, "        getfield %s/%s %s\n", me.cu.Name, instr.Operand.Name, Descriptor(instr.Operand.Type, me.imports))
	case ollir.KindBinaryOp:
		me.emitBinaryOp(instr)
	case ollir.KindUnaryOp:
		me.loadValue(instr.L)
		me.line("iconst_1")
		me.push(1)
		me.line("ixor")
		me.pop(1)
	case ollir.KindCall:
		me.emitCall(instr)
	}
}

func (me *methodEmitter) loadIndex(idx *ollir.Operand) {
	if idx == nil {
		return
	}
	if idx.Literal != "" {
		me.loadIntConst(mustAtoi(idx.Literal))
		return
	}
	me.loadVar(idx.Name, idx.Type)
}

func (me *methodEmitter) loadLiteral(op *ollir.Operand) {
	switch op.Type {
	case "i32":
		me.loadIntConst(mustAtoi(op.Literal))
	case "bool":
		me.loadIntConst(mustAtoi(op.Literal))
	default:
		me.line("ldc %s", op.Literal)
		me.push(1)
	}
}

func mustAtoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

// loadIntConst picks the narrowest constant-push mnemonic (spec.md §4.8).
func (me *methodEmitter) loadIntConst(v int) {
	switch {
	case v == -1:
		me.line("iconst_m1")
	case v >= 0 && v <= 5:
		me.line("iconst_%d", v)
	case v >= -128 && v <= 127:
		me.line("bipush %d", v)
	case v >= -32768 && v <= 32767:
		me.line("sipush %d", v)
	default:
		me.line("ldc %d", v)
	}
	me.push(1)
}

func (me *methodEmitter) loadVar(name, typ string) {
	slot := me.slotOf(name)
	prefix := "i"
	if IsReference(typ) {
		prefix = "a"
	}
	if slot <= 3 {
		me.line("%sload_%d", prefix, slot)
	} else {
		me.line("%sload %d", prefix, slot)
	}
	me.push(1)
}

func (me *methodEmitter) storeVar(name, typ string) {
	slot := me.slotOf(name)
	prefix := "i"
	if IsReference(typ) {
		prefix = "a"
	}
	if slot <= 3 {
		me.line("%sstore_%d", prefix, slot)
	} else {
		me.line("%sstore %d", prefix, slot)
	}
	me.pop(1)
}

func (me *methodEmitter) storeArray(typ string) {
	if IsReference(typ) {
		me.line("aastore")
	} else {
		me.line("iastore")
	}
	me.pop(3)
}

var arithMnemonic = map[string]string{
	"+": "iadd", "-": "isub", "*": "imul", "/": "idiv",
}

var compareJump = map[string]string{
	"<": "iflt", "<=": "ifle", ">": "ifgt", ">=": "ifge", "==": "ifeq",
}

func (me *methodEmitter) emitBinaryOp(instr *ollir.Instruction) {
	if mnemonic, ok := arithMnemonic[instr.Op]; ok {
		me.loadValue(instr.L)
		me.loadValue(instr.R)
		me.line(mnemonic)
		me.pop(1)
		return
	}
	switch instr.Op {
	case "&&":
		me.loadValue(instr.L)
		me.loadValue(instr.R)
		me.line("iand")
		me.pop(1)
		return
	case "||":
		me.loadValue(instr.L)
		me.loadValue(instr.R)
		me.line("ior")
		me.pop(1)
		return
	}
	jump, ok := compareJump[instr.Op]
	if !ok {
		jump = "ifeq"
	}
	base := me.stack
	me.loadValue(instr.L)
	me.loadValue(instr.R)
	me.line("isub")
	me.pop(1)
	trueLabel := me.freshLabel("cmptrue")
	endLabel := me.freshLabel("cmpend")
	me.line("%s %s", jump, trueLabel)
	me.pop(1)
	me.line("iconst_0")
	me.push(1)
	me.line("goto %s", endLabel)
	me.stack = base // both branches converge with one value pushed relative to base
	me.label(trueLabel)
	me.line("iconst_1")
	me.push(1)
	me.label(endLabel)
}

func (me *methodEmitter) freshLabel(tag string) string {
	if me.labelCounters == nil {
		me.labelCounters = map[string]int{}
	}
	me.labelCounters[tag]++
	return fmt.Sprintf("L_%s%d", tag, me.labelCounters[tag])
}

// tryIinc implements the peephole of spec.md §4.8: `x := x +/- literal`
// with a byte-range literal becomes a single iinc.
func (me *methodEmitter) tryIinc(instr *ollir.Instruction) bool {
	if len(instr.Dest.Indices) > 0 || IsReference(instr.Dest.Type) {
		return false
	}
	bin := instr.Rhs
	if bin == nil || bin.Kind != ollir.KindBinaryOp {
		return false
	}
	if bin.Op != "+" && bin.Op != "-" {
		return false
	}
	l, r := bin.L, bin.R
	var operandSide, litSide *ollir.Instruction
	if l.Kind == ollir.KindOperand && r.Kind == ollir.KindLiteral {
		operandSide, litSide = l, r
	} else if r.Kind == ollir.KindOperand && l.Kind == ollir.KindLiteral && bin.Op == "+" {
		operandSide, litSide = r, l
	} else {
		return false
	}
	if operandSide.Operand.Name != instr.Dest.Name {
		return false
	}
	val := mustAtoi(litSide.Operand.Literal)
	if bin.Op == "-" {
		val = -val
	}
	if val < -128 || val > 127 {
		return false
	}
	me.line("iinc %d %d", me.slotOf(instr.Dest.Name), val)
	return true
}

func (me *methodEmitter) emitCall(instr *ollir.Instruction) {
	switch instr.Invocation {
	case ollir.InvokeNew:
		if instr.MethodName == "array" {
			me.loadValue(instr.Arguments[0])
			me.line("newarray int")
			return
		}
		cls := me.imports.Qualify(instr.MethodName)
		me.line("new %s", cls)
		me.push(1)
	case ollir.InvokeArrayLength:
		me.loadValue(instr.Arguments[0])
		me.line("arraylength")
	case ollir.InvokeSpecial:
		if instr.Caller != nil {
			me.loadOperand(instr.Caller)
		}
		var argTypes []string
		for _, a := range instr.Arguments {
			me.loadValue(a)
			argTypes = append(argTypes, exprType(a))
		}
		cls := me.cu.Name
		if instr.Caller != nil && instr.Caller.Type != "" {
			cls = me.imports.Qualify(instr.Caller.Type)
		}
		fmt.Fprintf(&me.body, "        invokespecial %s/<init>%s\n", cls, MethodDescriptor(argTypes, "V", me.imports))
		me.pop(len(argTypes) + 1)
	case ollir.InvokeStatic:
		var argTypes []string
		for _, a := range instr.Arguments {
			me.loadValue(a)
			argTypes = append(argTypes, exprType(a))
		}
		cls := me.imports.Qualify(callerName(instr.Caller))
		fmt.Fprintf(&me.body, "        invokestatic %s/%s%s\n", cls, instr.MethodName, MethodDescriptor(argTypes, instr.ReturnType, me.imports))
		me.pop(len(argTypes))
		if instr.ReturnType != "V" {
			me.push(1)
		}
	case ollir.InvokeVirtual:
		if instr.Caller != nil {
			me.loadOperand(instr.Caller)
		}
		var argTypes []string
		for _, a := range instr.Arguments {
			me.loadValue(a)
			argTypes = append(argTypes, exprType(a))
		}
		cls := me.cu.Name
		fmt.Fprintf(&me.body, "        invokevirtual %s/%s%s\n", cls, instr.MethodName, MethodDescriptor(argTypes, instr.ReturnType, me.imports))
		me.pop(len(argTypes) + 1)
		if instr.ReturnType != "V" {
			me.push(1)
		}
	}
}

func (me *methodEmitter) loadOperand(op *ollir.Operand) {
	if op.Name == "this" {
		me.line("aload_0")
		me.push(1)
		return
	}
	me.loadVar(op.Name, op.Type)
}

func callerName(op *ollir.Operand) string {
	if op == nil {
		return ""
	}
	return op.Name
}

func exprType(instr *ollir.Instruction) string {
	if instr.Operand != nil {
		return instr.Operand.Type
	}
	return instr.ReturnType
}

func (me *methodEmitter) emitReturn(instr *ollir.Instruction) {
	for me.stack > 0 {
		me.line("pop")
		me.pop(1)
	}
	switch {
	case instr.ReturnType == "V":
		me.line("return")
		return
	case instr.ReturnOperand != nil:
		me.loadValue(instr.ReturnOperand)
	}
	switch {
	case instr.ReturnType == "i32" || instr.ReturnType == "bool":
		me.line("ireturn")
	default:
		me.line("areturn")
	}
}

func (me *methodEmitter) emitCondBranch(instr *ollir.Instruction) {
	cond := instr.Condition
	if cond != nil && cond.Kind == ollir.KindUnaryOp {
		me.loadValue(cond.L)
		me.line("ifeq %s", instr.Target)
		me.pop(1)
		return
	}
	if cond != nil {
		me.loadValue(cond)
	}
	me.line("ifne %s", instr.Target)
	me.pop(1)
}
