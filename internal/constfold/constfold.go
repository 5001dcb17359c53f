// Package constfold implements the ConstantOptimiser (spec.md §4.4):
// an AST→AST rewrite that propagates literal values into uses and folds
// pure literal expressions, iterated to a fixed point. It follows the
// fixpoint-iteration shape of the teacher's
// internal/bytecode/optimizer.go chunkOptimizer.run() — a fixed list of
// named sub-passes, each reporting whether it rewrote anything, looped
// until a full round changes nothing — applied here to the AST instead
// of to emitted bytecode, and scoped per Run call instead of per
// package-global state (spec.md §9 "Global counters").
package constfold

import "github.com/marco-vb/jmmc/internal/ast"

// Run rewrites prog's method bodies in place, iterating propagate then
// fold until neither produces a further rewrite (spec.md §4.4, §9's
// resolved reading of "iterate while any rewrite occurred").
func Run(prog *ast.Program) {
	if prog == nil || prog.Class == nil {
		return
	}
	for {
		changed := false
		for _, m := range prog.Class.Methods {
			intEnv := make(map[string]int32)
			boolEnv := make(map[string]bool)
			if propagateStmts(m.Body, intEnv, boolEnv) {
				changed = true
			}
			if foldStmts(m.Body) {
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}
