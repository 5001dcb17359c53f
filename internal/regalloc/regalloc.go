// Package regalloc implements the RegisterAllocator (spec.md §4.7):
// liveness analysis and Chaitin-style graph colouring over one method's
// OLLIR instruction list, assigning a JVM local-variable slot to every
// non-parameter, non-this local.
package regalloc

import (
	"fmt"
	"sort"

	"github.com/marco-vb/jmmc/internal/ollir"
)

// Result is the outcome of allocating registers for one method.
type Result struct {
	Registers map[string]int // name -> assigned slot
	MinNeeded int             // smallest k that colours successfully
}

// Error reports that the requested ceiling was too low.
type Error struct {
	Method    string
	MinNeeded int
}

func (e *Error) Error() string {
	return fmt.Sprintf("method %q needs at least %d registers", e.Method, e.MinNeeded)
}

// Allocate computes register assignments for m. ceiling is the
// user-requested cap (spec.md §6 registerAllocation flag); pass a
// sufficiently large ceiling (e.g. len(candidates)) to mean "no cap".
// When the minimum achievable colouring exceeds ceiling, Allocate
// returns an *Error naming the minimum required count.
func Allocate(m *ollir.Method, ceiling int) (*Result, error) {
	candidates := localNames(m)
	if len(candidates) == 0 {
		return &Result{Registers: map[string]int{}, MinNeeded: 0}, nil
	}

	def, use := defUse(m)
	_, out := liveness(m, def, use)
	graph := interferenceGraph(candidates, m, def, out)

	paramStart := 0
	if !m.IsStatic {
		paramStart = 1 // slot 0 is "this"
	}
	firstParamSlot := paramStart + len(m.Params)
	regs, minNeeded := colour(candidates, graph, firstParamSlot)

	if minNeeded > ceiling {
		return nil, &Error{Method: m.Name, MinNeeded: minNeeded}
	}
	return &Result{Registers: regs, MinNeeded: minNeeded}, nil
}

// localNames enumerates every non-parameter, non-this variable name
// defined or used anywhere in m's body.
func localNames(m *ollir.Method) []string {
	params := make(map[string]bool, len(m.Params))
	for _, p := range m.Params {
		params[p.Name] = true
	}
	seen := make(map[string]bool)
	var names []string
	add := func(n string) {
		if n == "" || n == "this" || params[n] || seen[n] {
			return
		}
		seen[n] = true
		names = append(names, n)
	}
	for _, instr := range m.Instructions {
		d, u := instrDefUse(instr)
		if d != "" {
			add(d)
		}
		for _, x := range u {
			add(x)
		}
	}
	sort.Strings(names)
	return names
}

// defUse computes, per instruction index, the set of names it defines
// and the set of names it uses (spec.md §4.7 step 2).
func defUse(m *ollir.Method) (def []string, use [][]string) {
	def = make([]string, len(m.Instructions))
	use = make([][]string, len(m.Instructions))
	for i, instr := range m.Instructions {
		d, u := instrDefUse(instr)
		def[i] = d
		use[i] = u
	}
	return def, use
}

func instrDefUse(instr *ollir.Instruction) (string, []string) {
	var uses []string
	collectOperandNames(instr.Rhs, &uses)
	collectOperandNames(instr.Condition, &uses)
	collectOperandNames(instr.ReturnOperand, &uses)
	collectOperandNames(instr.L, &uses)
	collectOperandNames(instr.R, &uses)
	for _, a := range instr.Arguments {
		collectOperandNames(a, &uses)
	}
	if instr.Caller != nil && instr.Caller.Name != "" {
		uses = append(uses, instr.Caller.Name)
	}
	if instr.Operand != nil {
		uses = append(uses, instr.Operand.Name)
		for _, idx := range instr.Operand.Indices {
			if idx != nil && idx.Name != "" {
				uses = append(uses, idx.Name)
			}
		}
	}

	def := ""
	switch instr.Kind {
	case ollir.KindAssign:
		if instr.Dest != nil {
			def = instr.Dest.Name
			for _, idx := range instr.Dest.Indices {
				if idx != nil && idx.Name != "" {
					uses = append(uses, idx.Name)
				}
			}
		}
	case ollir.KindPutField:
		if instr.Operand != nil {
			def = instr.Operand.Name
		}
	}
	return def, uses
}

// collectOperandNames walks a (possibly nil) RHS instruction tree,
// appending every plain operand/local name it references.
func collectOperandNames(instr *ollir.Instruction, out *[]string) {
	if instr == nil {
		return
	}
	if instr.Operand != nil && instr.Operand.Name != "" {
		*out = append(*out, instr.Operand.Name)
		for _, idx := range instr.Operand.Indices {
			if idx != nil && idx.Name != "" {
				*out = append(*out, idx.Name)
			}
		}
	}
	if instr.Caller != nil && instr.Caller.Name != "" {
		*out = append(*out, instr.Caller.Name)
	}
	collectOperandNames(instr.L, out)
	collectOperandNames(instr.R, out)
	for _, a := range instr.Arguments {
		collectOperandNames(a, out)
	}
}

// liveness computes in/out sets to a fixed point (spec.md §4.7 step 3).
func liveness(m *ollir.Method, def []string, use [][]string) (in, out []map[string]bool) {
	n := len(m.Instructions)
	in = make([]map[string]bool, n)
	out = make([]map[string]bool, n)
	for i := range in {
		in[i] = map[string]bool{}
		out[i] = map[string]bool{}
	}
	for {
		changed := false
		for i := n - 1; i >= 0; i-- {
			newOut := map[string]bool{}
			for _, s := range m.Instructions[i].Successors {
				for name := range in[s] {
					newOut[name] = true
				}
			}
			newIn := map[string]bool{}
			for _, u := range use[i] {
				newIn[u] = true
			}
			for name := range newOut {
				if name != def[i] {
					newIn[name] = true
				}
			}
			if !setEqual(newIn, in[i]) || !setEqual(newOut, out[i]) {
				changed = true
			}
			in[i] = newIn
			out[i] = newOut
		}
		if !changed {
			break
		}
	}
	return in, out
}

func setEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// interferenceGraph builds one node per candidate local and an edge for
// every pair simultaneously in def[i] ∪ out[i] (spec.md §4.7 step 4).
func interferenceGraph(candidates []string, m *ollir.Method, def []string, out []map[string]bool) map[string]map[string]bool {
	isCandidate := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		isCandidate[c] = true
	}
	graph := make(map[string]map[string]bool, len(candidates))
	for _, c := range candidates {
		graph[c] = map[string]bool{}
	}
	addEdge := func(a, b string) {
		if a == b || !isCandidate[a] || !isCandidate[b] {
			return
		}
		graph[a][b] = true
		graph[b][a] = true
	}
	for i := range m.Instructions {
		live := map[string]bool{}
		if def[i] != "" {
			live[def[i]] = true
		}
		for name := range out[i] {
			live[name] = true
		}
		names := make([]string, 0, len(live))
		for n := range live {
			names = append(names, n)
		}
		for a := 0; a < len(names); a++ {
			for bIdx := a + 1; bIdx < len(names); bIdx++ {
				addEdge(names[a], names[bIdx])
			}
		}
	}
	return graph
}

// colour runs Chaitin simplification/select, starting k at 1 and raising
// it until the graph is k-colourable (spec.md §4.7 steps 5-6), returning
// the assignment that used the smallest successful k.
func colour(candidates []string, graph map[string]map[string]bool, firstSlot int) (map[string]int, int) {
	maxDegree := 0
	for _, neighbors := range graph {
		if len(neighbors) > maxDegree {
			maxDegree = len(neighbors)
		}
	}
	for k := 1; k <= maxDegree+1; k++ {
		if regs, ok := tryColour(candidates, graph, k, firstSlot); ok {
			return regs, k
		}
	}
	regs, _ := tryColour(candidates, graph, len(candidates), firstSlot)
	return regs, len(candidates)
}

func tryColour(candidates []string, graph map[string]map[string]bool, k int, firstSlot int) (map[string]int, bool) {
	remaining := make(map[string]map[string]bool, len(graph))
	for n, edges := range graph {
		cp := make(map[string]bool, len(edges))
		for e := range edges {
			cp[e] = true
		}
		remaining[n] = cp
	}

	var stack []string
	for len(remaining) > 0 {
		picked := ""
		for _, name := range candidates {
			edges, ok := remaining[name]
			if !ok {
				continue
			}
			if len(edges) < k {
				picked = name
				break
			}
		}
		if picked == "" {
			return nil, false
		}
		stack = append(stack, picked)
		for other := range remaining[picked] {
			delete(remaining[other], picked)
		}
		delete(remaining, picked)
	}

	colours := make(map[string]int, len(candidates))
	for i := len(stack) - 1; i >= 0; i-- {
		name := stack[i]
		used := map[int]bool{}
		for neighbor := range graph[name] {
			if c, ok := colours[neighbor]; ok {
				used[c] = true
			}
		}
		c := firstSlot
		for used[c] {
			c++
		}
		colours[name] = c
	}
	return colours, true
}
