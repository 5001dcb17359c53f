package semantic

import "github.com/marco-vb/jmmc/internal/ast"

// DuplicatedElement checks uniqueness of imports, field names, method
// names, and per-method parameter/local names (spec.md §4.3).
type DuplicatedElement struct{}

func (DuplicatedElement) Name() string { return "DuplicatedElement" }

func (p DuplicatedElement) Run(prog *ast.Program, ctx *Context) {
	if prog == nil || prog.Class == nil {
		return
	}

	seenImports := make(map[string]bool)
	for _, imp := range prog.Imports {
		if seenImports[imp.Name] {
			ctx.AddReport(p.Name(), imp, "duplicated import %q", imp.Name)
			continue
		}
		seenImports[imp.Name] = true
	}

	seenFields := make(map[string]bool)
	for _, f := range prog.Class.Fields {
		if seenFields[f.Name] {
			ctx.AddReport(p.Name(), f, "duplicated field %q", f.Name)
			continue
		}
		seenFields[f.Name] = true
	}

	seenMethods := make(map[string]bool)
	for _, m := range prog.Class.Methods {
		if seenMethods[m.Name] {
			ctx.AddReport(p.Name(), m, "duplicated method %q", m.Name)
			continue
		}
		seenMethods[m.Name] = true

		seenParams := make(map[string]bool)
		if m.Params != nil {
			for _, a := range m.Params.List {
				if seenParams[a.Name] {
					ctx.AddReport(p.Name(), a, "duplicated parameter %q in method %q", a.Name, m.Name)
					continue
				}
				seenParams[a.Name] = true
			}
		}

		seenLocals := make(map[string]bool)
		for _, l := range m.Locals {
			if seenParams[l.Name] || seenLocals[l.Name] {
				ctx.AddReport(p.Name(), l, "duplicated local %q in method %q", l.Name, m.Name)
				continue
			}
			seenLocals[l.Name] = true
		}
	}
}
