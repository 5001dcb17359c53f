package semantic

import "github.com/marco-vb/jmmc/internal/ast"

// InvalidVarargs forbids varargs on fields/locals/return types and
// allows at most one varargs parameter, only in the last position
// (spec.md §4.3).
type InvalidVarargs struct{}

func (InvalidVarargs) Name() string { return "InvalidVarargs" }

func (p InvalidVarargs) Run(prog *ast.Program, ctx *Context) {
	if prog == nil || prog.Class == nil {
		return
	}

	for _, f := range prog.Class.Fields {
		if f.Type != nil && f.Type.IsVarargs {
			ctx.AddReport(p.Name(), f, "field %q may not be varargs", f.Name)
		}
	}

	for _, m := range prog.Class.Methods {
		if m.ReturnType != nil && m.ReturnType.IsVarargs {
			ctx.AddReport(p.Name(), m, "method %q's return type may not be varargs", m.Name)
		}
		for _, l := range m.Locals {
			if l.Type != nil && l.Type.IsVarargs {
				ctx.AddReport(p.Name(), l, "local %q may not be varargs", l.Name)
			}
		}
		if m.Params == nil {
			continue
		}
		for i, a := range m.Params.List {
			if a.Type == nil || !a.Type.IsVarargs {
				continue
			}
			if i != len(m.Params.List)-1 {
				ctx.AddReport(p.Name(), a, "varargs parameter %q must be the last parameter of %q", a.Name, m.Name)
			}
		}
		varargsCount := 0
		for _, a := range m.Params.List {
			if a.Type != nil && a.Type.IsVarargs {
				varargsCount++
			}
		}
		if varargsCount > 1 {
			ctx.AddReport(p.Name(), m, "method %q declares more than one varargs parameter", m.Name)
		}
	}
}
