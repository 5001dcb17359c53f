package semantic

import (
	"fmt"

	"github.com/marco-vb/jmmc/internal/ast"
	"github.com/marco-vb/jmmc/internal/symtable"
)

// Context is the shared state threaded through every Pass, mirroring the
// teacher's PassContext: a single mutable object passes read from and
// append diagnostics to, rather than each pass returning its own result
// type. CurrentMethod tracks which method body a pass is presently
// walking, needed by passes like ThisInStaticMethod that care about the
// enclosing method's modifiers.
type Context struct {
	ST            *symtable.Table
	TE            *TypeEngine
	CurrentMethod *ast.Method
	Reports       []Report
}

// NewContext builds a Context from a built symbol table.
func NewContext(st *symtable.Table) *Context {
	return &Context{ST: st, TE: NewTypeEngine(st)}
}

// AddReport appends a SEMANTIC/ERROR diagnostic.
func (c *Context) AddReport(kind string, pos ast.Node, format string, args ...any) {
	c.Reports = append(c.Reports, Report{
		Kind:     kind,
		Stage:    StageSemantic,
		Severity: SeverityError,
		Pos:      pos.Pos(),
		Message:  fmt.Sprintf(format, args...),
	})
}

// HasReports reports whether this pass run produced any diagnostic.
func (c *Context) HasReports() bool { return len(c.Reports) > 0 }
