// Package ollir implements the textual OLLIR intermediate representation
// (spec.md §3, §4.6): the OllirEmitter turns a validated AST into OLLIR
// source text, and the OllirReader turns that text back into a typed IR
// model consumed by the register allocator and JasminEmitter.
package ollir

// InvocationType distinguishes the dispatch form of a Call instruction.
type InvocationType int

const (
	InvokeStatic InvocationType = iota
	InvokeSpecial
	InvokeVirtual
	InvokeNew
	InvokeArrayLength
	InvokeLdc
)

// Operand is a named, typed value: a local/param/field name, a temporary,
// or a literal rendered as text.
type Operand struct {
	Name    string // empty for a pure literal
	Type    string // OLLIR type suffix without the leading dot, e.g. "i32"
	Literal string // set instead of Name for Literal operands
	Indices []*Operand
}

// IsLiteral reports whether this operand is a bare literal rather than a
// named slot.
func (o Operand) IsLiteral() bool { return o.Name == "" && o.Literal != "" }

// InstrKind tags the variant of Instruction, mirroring spec.md §3's IR
// instruction list.
type InstrKind int

const (
	KindAssign InstrKind = iota
	KindBinaryOp
	KindUnaryOp
	KindSingleOp
	KindLiteral
	KindOperand
	KindArrayOperand
	KindGetField
	KindPutField
	KindCall
	KindReturn
	KindCondBranch
	KindGoto
)

// Instruction is one IR node inside a method body, with enough shape to
// drive both liveness analysis (RegisterAllocator) and code generation
// (JasminEmitter).
type Instruction struct {
	ID     int
	Kind   InstrKind
	Labels []string

	Dest *Operand // Assign
	Rhs  *Instruction

	Op string // BinaryOp/UnaryOp operator text
	L  *Instruction
	R  *Instruction

	Operand *Operand // SingleOp/Operand/ArrayOperand/GetField.field/PutField.field

	Object *Operand // GetField/PutField

	Invocation InvocationType
	Caller     *Operand
	MethodName string
	Arguments  []*Instruction
	ReturnType string

	ReturnOperand *Instruction // Return
	Condition     *Instruction // CondBranch
	Target        string       // CondBranch/Goto label

	Successors []int
}

// Method is one compiled method's IR body.
type Method struct {
	Name         string
	IsPublic     bool
	IsStatic     bool
	Params       []Operand
	ReturnType   string
	Instructions []*Instruction
	VarRegisters map[string]int
}

// ClassUnit is the whole IR for one compiled source file.
type ClassUnit struct {
	Name    string
	Extends string
	Fields  []Operand
	Methods []*Method
}
