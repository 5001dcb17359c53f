// Package jmmc is the public facade over the compiler core: an Engine
// wraps internal/driver so that consumers never import internal/*
// directly, mirroring the teacher's pkg/dwscript.Engine role.
package jmmc

import (
	"github.com/marco-vb/jmmc/internal/ast"
	"github.com/marco-vb/jmmc/internal/driver"
	"github.com/marco-vb/jmmc/internal/jmmerrors"
)

// CompilerError is the public alias for one diagnostic.
type CompilerError = jmmerrors.CompilerError

// NoRegisterCeiling disables the RegisterAllocator's cap (spec.md §6's
// "-1" flag value).
const NoRegisterCeiling = -1

// Engine compiles Jmm programs with a fixed set of options, built via
// New and the With* functional options below.
type Engine struct {
	optimize  bool
	registers int
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOptimize enables ConstantOptimiser (spec.md §4.4).
func WithOptimize(enabled bool) Option {
	return func(e *Engine) { e.optimize = enabled }
}

// WithRegisterCeiling sets the RegisterAllocator cap (spec.md §4.7);
// pass NoRegisterCeiling to disable it.
func WithRegisterCeiling(ceiling int) Option {
	return func(e *Engine) { e.registers = ceiling }
}

// New builds an Engine with optimisation off and no register ceiling
// unless overridden by opts.
func New(opts ...Option) *Engine {
	e := &Engine{registers: NoRegisterCeiling}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the public view of one Compile call.
type Result struct {
	inner *driver.Result
}

// OK reports whether compilation produced no diagnostics.
func (r *Result) OK() bool { return r.inner.OK() }

// Ollir returns the emitted OLLIR text (empty if compilation halted
// before OllirEmitter ran).
func (r *Result) Ollir() string { return r.inner.Ollir }

// Jasmin returns the emitted Jasmin assembly text (empty if compilation
// halted before JasminEmitter ran).
func (r *Result) Jasmin() string { return r.inner.Jasmin }

// Diagnostics returns every CompilerError collected, in report order.
func (r *Result) Diagnostics() []*CompilerError { return r.inner.Reports }

// Compile runs prog (an already-built AST — parsing source text into an
// AST is outside this module's scope, see SPEC_FULL.md) through the
// full pipeline: SymbolTable, SemanticPasses, ConstantOptimiser (if
// enabled), VarargsLowerer, OllirEmitter, OllirReader, RegisterAllocator,
// JasminEmitter.
func (e *Engine) Compile(prog *ast.Program, source, file string) (*Result, error) {
	res, err := driver.Compile(prog, e.options(source, file))
	if err != nil {
		return nil, err
	}
	return &Result{inner: res}, nil
}

// CompileToOllir runs the pipeline through OllirEmitter only, skipping
// RegisterAllocator and JasminEmitter.
func (e *Engine) CompileToOllir(prog *ast.Program, source, file string) (*Result, error) {
	res, err := driver.CompileToOllir(prog, e.options(source, file))
	if err != nil {
		return nil, err
	}
	return &Result{inner: res}, nil
}

func (e *Engine) options(source, file string) driver.Options {
	return driver.Options{
		Optimize:           e.optimize,
		RegisterAllocation: e.registers,
		Source:             source,
		File:               file,
	}
}
