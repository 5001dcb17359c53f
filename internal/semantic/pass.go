package semantic

import "github.com/marco-vb/jmmc/internal/ast"

// Pass is one semantic analysis pass (spec.md §4.3): it inspects the
// program and the shared Context, appending Reports. A pass must never
// mutate the AST — ConstantOptimiser and VarargsLowerer are the only
// stages allowed to do that, and they run after SemanticPasses succeeds.
type Pass interface {
	Name() string
	Run(prog *ast.Program, ctx *Context)
}

// PassManager runs an ordered list of passes, halting at the first one
// that produces any report (spec.md §4.3: "the driver stops at the
// first pass that produced any report").
type PassManager struct {
	passes []Pass
}

// NewPassManager builds a manager over passes, run in the given order.
func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

// RunAll runs passes in order against prog, returning the reports of
// whichever pass halted the sequence (nil if every pass passed clean).
func (pm *PassManager) RunAll(prog *ast.Program, ctx *Context) []Report {
	for _, p := range pm.passes {
		before := len(ctx.Reports)
		p.Run(prog, ctx)
		if len(ctx.Reports) > before {
			return ctx.Reports[before:]
		}
	}
	return nil
}

// Passes returns the registered pass list, in run order.
func (pm *PassManager) Passes() []Pass { return pm.passes }
