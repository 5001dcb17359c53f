package ollir

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reImport     = regexp.MustCompile(`^import\s+(\S+);$`)
	reClassHead  = regexp.MustCompile(`^(\w+)\s+extends\s+(\w+)\s*\{$`)
	reField      = regexp.MustCompile(`^\.field\s+public\s+(\w+)\.([\w.]+);$`)
	reMethodHead = regexp.MustCompile(`^\.method\s+(public(?:\s+static)?)\s+(\w+)\(([^)]*)\)\.([\w.]+)\s*\{$`)
	reLabel      = regexp.MustCompile(`^(\w+):$`)
	reGoto       = regexp.MustCompile(`^goto\s+(\w+);$`)
	reIfGoto     = regexp.MustCompile(`^if\s+\((.+)\)\s+goto\s+(\w+);$`)
	reRetVoid    = regexp.MustCompile(`^ret\.V;$`)
	reRet        = regexp.MustCompile(`^ret\.([\w.]+)\s+(.+);$`)
	reArrayAssn  = regexp.MustCompile(`^(\w+)\[(.+)\]\.([\w.]+)\s+:=\.([\w.]+)\s+(.+);$`)
	rePutfield   = regexp.MustCompile(`^putfield\((\w+),\s*(\w+)\.([\w.]+),\s*(.+)\)\.V;$`)
	reAssign     = regexp.MustCompile(`^(\w+)\.([\w.]+)\s+:=\.([\w.]+)\s+(.+);$`)
	reVoidStmt   = regexp.MustCompile(`^(.+)\.V;$`)

	reInvoke     = regexp.MustCompile(`^(invokevirtual|invokestatic|invokespecial)\((.+)\)\.([\w.]+)$`)
	reNew        = regexp.MustCompile(`^new\((.+)\)\.([\w.]+)$`)
	reArrayLen   = regexp.MustCompile(`^arraylength\((.+)\)\.i32$`)
	reGetfield   = regexp.MustCompile(`^getfield\((\w+),\s*(\w+)\.([\w.]+)\)\.([\w.]+)$`)
	reBinary     = regexp.MustCompile(`^(\S+)\s+(\+|-|\*|/|<=|>=|==|<|>|&&|\|\|)\.([\w.]+)\s+(\S+)$`)
	reUnary      = regexp.MustCompile(`^!\.bool\s+(.+)$`)
	reArrayIndex = regexp.MustCompile(`^(\w+)\[(.+)\]\.([\w.]+)$`)
	rePlain      = regexp.MustCompile(`^(\S+)\.([\w.]+)$`)
)

// Read parses OLLIR source text (as produced by Emitter.Emit) into a
// ClassUnit IR, resolving labels to instruction-index CFG edges.
func Read(text string) *ClassUnit {
	lines := splitStmts(text)
	cu := &ClassUnit{}
	i := 0
	for i < len(lines) {
		line := lines[i]
		switch {
		case reImport.MatchString(line):
			i++
		case reClassHead.MatchString(line):
			m := reClassHead.FindStringSubmatch(line)
			cu.Name, cu.Extends = m[1], m[2]
			i++
		case reField.MatchString(line):
			m := reField.FindStringSubmatch(line)
			cu.Fields = append(cu.Fields, Operand{Name: m[1], Type: m[2]})
			i++
		case strings.HasPrefix(line, ".construct"):
			for i < len(lines) && lines[i] != "}" {
				i++
			}
			i++ // consume closing brace
		case reMethodHead.MatchString(line):
			method, consumed := parseMethod(lines[i:])
			cu.Methods = append(cu.Methods, method)
			i += consumed
		case line == "}":
			i++
		default:
			i++
		}
	}
	return cu
}

// splitStmts normalises the emitted text into one trimmed line per
// instruction/label/brace, independent of the emitter's indentation.
func splitStmts(text string) []string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		l := strings.TrimSpace(raw)
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}

func parseMethod(lines []string) (*Method, int) {
	head := reMethodHead.FindStringSubmatch(lines[0])
	m := &Method{
		Name:       head[2],
		IsStatic:   strings.Contains(head[1], "static"),
		IsPublic:   true,
		ReturnType: head[4],
	}
	if head[3] != "" {
		for _, p := range strings.Split(head[3], ",") {
			p = strings.TrimSpace(p)
			if plain := rePlain.FindStringSubmatch(p); plain != nil {
				m.Params = append(m.Params, Operand{Name: plain[1], Type: plain[2]})
			}
		}
	}

	labelOf := make(map[string]int)
	pendingLabels := []string{}
	i := 1
	for i < len(lines) && lines[i] != "}" {
		line := lines[i]
		if lbl := reLabel.FindStringSubmatch(line); lbl != nil {
			pendingLabels = append(pendingLabels, lbl[1])
			i++
			continue
		}
		instr := parseInstrLine(line)
		instr.ID = len(m.Instructions)
		instr.Labels = pendingLabels
		for _, l := range pendingLabels {
			labelOf[l] = instr.ID
		}
		pendingLabels = nil
		m.Instructions = append(m.Instructions, instr)
		i++
	}
	i++ // consume method's closing brace

	linkSuccessors(m.Instructions, labelOf)
	return m, i
}

func linkSuccessors(instrs []*Instruction, labelOf map[string]int) {
	for idx, instr := range instrs {
		switch instr.Kind {
		case KindGoto:
			if target, ok := labelOf[instr.Target]; ok {
				instr.Successors = []int{target}
			}
		case KindCondBranch:
			var succ []int
			if idx+1 < len(instrs) {
				succ = append(succ, idx+1)
			}
			if target, ok := labelOf[instr.Target]; ok {
				succ = append(succ, target)
			}
			instr.Successors = succ
		case KindReturn:
			// no successors
		default:
			if idx+1 < len(instrs) {
				instr.Successors = []int{idx + 1}
			}
		}
	}
}

func parseInstrLine(line string) *Instruction {
	switch {
	case reGoto.MatchString(line):
		m := reGoto.FindStringSubmatch(line)
		return &Instruction{Kind: KindGoto, Target: m[1]}
	case reIfGoto.MatchString(line):
		m := reIfGoto.FindStringSubmatch(line)
		return &Instruction{Kind: KindCondBranch, Condition: parseExpr(m[1]), Target: m[2]}
	case reRetVoid.MatchString(line):
		return &Instruction{Kind: KindReturn, ReturnType: "V"}
	case reRet.MatchString(line):
		m := reRet.FindStringSubmatch(line)
		return &Instruction{Kind: KindReturn, ReturnType: m[1], ReturnOperand: parseExpr(m[2])}
	case reArrayAssn.MatchString(line):
		m := reArrayAssn.FindStringSubmatch(line)
		dest := &Operand{Name: m[1], Type: m[3], Indices: []*Operand{operandOf(parseExpr(m[2]))}}
		return &Instruction{Kind: KindAssign, Dest: dest, Rhs: parseExpr(m[5])}
	case rePutfield.MatchString(line):
		m := rePutfield.FindStringSubmatch(line)
		return &Instruction{
			Kind:    KindPutField,
			Object:  &Operand{Name: m[1]},
			Operand: &Operand{Name: m[2], Type: m[3]},
			Rhs:     parseExpr(m[4]),
		}
	case reAssign.MatchString(line):
		m := reAssign.FindStringSubmatch(line)
		return &Instruction{Kind: KindAssign, Dest: &Operand{Name: m[1], Type: m[2]}, Rhs: parseExpr(m[4])}
	case reVoidStmt.MatchString(line):
		m := reVoidStmt.FindStringSubmatch(line)
		return parseExpr(m[1] + ".V")
	default:
		return &Instruction{Kind: KindOperand, Operand: &Operand{Literal: line}}
	}
}

// parseExpr parses a single flat RHS expression into an Instruction tree.
// Operands inside it are always plain names/temps/literals — the emitter
// never nests sub-expressions textually, since every non-trivial
// sub-expression is already hoisted into its own temp and preceding
// computation line.
func parseExpr(text string) *Instruction {
	text = strings.TrimSpace(text)
	switch {
	case text == "this":
		return &Instruction{Kind: KindOperand, Operand: &Operand{Name: "this"}}
	case reInvoke.MatchString(text):
		m := reInvoke.FindStringSubmatch(text)
		kind := map[string]InvocationType{
			"invokevirtual": InvokeVirtual,
			"invokestatic":  InvokeStatic,
			"invokespecial": InvokeSpecial,
		}[m[1]]
		return parseCall(kind, m[2], m[3])
	case reNew.MatchString(text):
		m := reNew.FindStringSubmatch(text)
		args := splitArgs(m[1])
		if len(args) >= 1 && strings.TrimSpace(args[0]) == "array" {
			return &Instruction{Kind: KindCall, Invocation: InvokeNew, MethodName: "array", Arguments: []*Instruction{parseExpr(args[1])}, ReturnType: m[2]}
		}
		return &Instruction{Kind: KindCall, Invocation: InvokeNew, MethodName: strings.TrimSpace(args[0]), ReturnType: m[2]}
	case reArrayLen.MatchString(text):
		m := reArrayLen.FindStringSubmatch(text)
		return &Instruction{Kind: KindCall, Invocation: InvokeArrayLength, Arguments: []*Instruction{parseExpr(m[1])}, ReturnType: "i32"}
	case reGetfield.MatchString(text):
		m := reGetfield.FindStringSubmatch(text)
		return &Instruction{Kind: KindGetField, Object: &Operand{Name: m[1]}, Operand: &Operand{Name: m[2], Type: m[3]}, ReturnType: m[4]}
	case reBinary.MatchString(text):
		m := reBinary.FindStringSubmatch(text)
		return &Instruction{Kind: KindBinaryOp, Op: m[2], L: parseExpr(m[1]), R: parseExpr(m[4])}
	case reUnary.MatchString(text):
		m := reUnary.FindStringSubmatch(text)
		return &Instruction{Kind: KindUnaryOp, Op: "!", L: parseExpr(m[1])}
	case reArrayIndex.MatchString(text):
		m := reArrayIndex.FindStringSubmatch(text)
		op := &Operand{Name: m[1], Type: m[3], Indices: []*Operand{operandOf(parseExpr(m[2]))}}
		return &Instruction{Kind: KindArrayOperand, Operand: op}
	case rePlain.MatchString(text):
		m := rePlain.FindStringSubmatch(text)
		if isLiteralText(m[1]) {
			return &Instruction{Kind: KindLiteral, Operand: &Operand{Literal: m[1], Type: m[2]}}
		}
		return &Instruction{Kind: KindOperand, Operand: &Operand{Name: m[1], Type: m[2]}}
	default:
		return &Instruction{Kind: KindOperand, Operand: &Operand{Literal: text}}
	}
}

func parseCall(kind InvocationType, argsText, retType string) *Instruction {
	parts := splitArgs(argsText)
	instr := &Instruction{Kind: KindCall, Invocation: kind, ReturnType: retType}
	if len(parts) == 0 {
		return instr
	}
	instr.Caller = operandOf(parseExpr(strings.TrimSpace(parts[0])))
	if len(parts) >= 2 {
		instr.MethodName = strings.Trim(strings.TrimSpace(parts[1]), `"`)
	}
	for _, a := range parts[2:] {
		instr.Arguments = append(instr.Arguments, parseExpr(strings.TrimSpace(a)))
	}
	return instr
}

// splitArgs splits a comma-separated argument list respecting nested
// parentheses/brackets (call arguments can themselves be simple operands
// only, but caller text such as "this" or a class name never nests, so a
// depth-aware split is defensive rather than load-bearing here).
func splitArgs(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func operandOf(instr *Instruction) *Operand {
	if instr.Operand != nil {
		return instr.Operand
	}
	return &Operand{Literal: ""}
}

func isLiteralText(s string) bool {
	if s == "" {
		return false
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	return false
}
