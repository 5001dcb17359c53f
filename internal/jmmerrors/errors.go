// Package jmmerrors implements the two-tier error model of spec.md §7:
// user-facing diagnostics produced by SemanticPasses/RegisterAllocator,
// and InternalError for compiler-bug states that should be unreachable.
package jmmerrors

import (
	"fmt"
	"strings"

	"github.com/marco-vb/jmmc/internal/lexer"
	"golang.org/x/text/width"
)

// Stage tags which part of the pipeline produced a CompilerError
// (spec.md §7).
type Stage string

const (
	Semantic     Stage = "SEMANTIC"
	Optimization Stage = "OPTIMIZATION"
	Internal     Stage = "INTERNAL"
)

// Severity is always ERROR today; kept as its own type so a future WARN
// tier does not require changing every call site's shape.
type Severity string

const ErrorSeverity Severity = "ERROR"

// CompilerError is one user-facing diagnostic, adapted from the
// teacher's internal/errors.CompilerError: the same caret-pointed
// source-context rendering, extended with the Stage/Severity fields
// spec.md §7 requires.
type CompilerError struct {
	Stage    Stage
	Severity Severity
	Pos      lexer.Position
	Message  string
	Source   string
	File     string
}

// NewCompilerError builds a CompilerError at ErrorSeverity.
func NewCompilerError(stage Stage, pos lexer.Position, message, source, file string) *CompilerError {
	return &CompilerError{Stage: stage, Severity: ErrorSeverity, Pos: pos, Message: message, Source: source, File: file}
}

func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the error with a single source line and a caret
// pointing at the offending column. Column alignment accounts for
// East Asian wide and fullwidth runes via golang.org/x/text/width so the
// caret still lands under the right character in non-ASCII source.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "[%s] %s in %s:%d:%d\n", e.Stage, e.Severity, e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "[%s] %s at line %d:%d\n", e.Stage, e.Severity, e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+caretOffset(line, e.Pos.Column)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

// caretOffset returns the display-column offset of a 1-based rune
// column, widening by one extra column for each fullwidth/wide rune
// before it.
func caretOffset(line string, column int) int {
	if column < 1 {
		return 0
	}
	offset := 0
	n := 0
	for _, r := range line {
		if n >= column-1 {
			break
		}
		n++
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			offset += 2
		default:
			offset++
		}
	}
	return offset
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func (e *CompilerError) sourceContext(lineNum, before, after int) (lines []string, start int) {
	all := strings.Split(e.Source, "\n")
	if e.Source == "" || lineNum < 1 || lineNum > len(all) {
		return nil, 0
	}
	start = max(lineNum-before, 1)
	end := min(lineNum+after, len(all))
	return all[start-1 : end], start
}

// FormatWithContext renders the error with contextLines of surrounding
// source on either side of the offending line.
func (e *CompilerError) FormatWithContext(contextLines int, color bool) string {
	ctx, start := e.sourceContext(e.Pos.Line, contextLines, contextLines)
	if len(ctx) == 0 {
		return e.Format(color)
	}

	var sb strings.Builder
	if e.File != "" {
		fmt.Fprintf(&sb, "[%s] %s in %s:%d:%d\n", e.Stage, e.Severity, e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "[%s] %s at line %d:%d\n", e.Stage, e.Severity, e.Pos.Line, e.Pos.Column)
	}

	for i, line := range ctx {
		current := start + i
		lineNumStr := fmt.Sprintf("%4d | ", current)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		if current == e.Pos.Line {
			sb.WriteString(strings.Repeat(" ", len(lineNumStr)+caretOffset(line, e.Pos.Column)))
			if color {
				sb.WriteString("\033[1;31m")
			}
			sb.WriteString("^")
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(e.Message)
	return sb.String()
}

// FormatErrors renders a batch of diagnostics, one per line group.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Compilation failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(errs))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// InternalError marks a compiler-bug condition (spec.md §7): an IR shape
// or attribute lookup that should be unreachable once semantics have
// passed. The driver is the only place that recovers it.
type InternalError struct {
	Pass    string
	Message string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error in pass %q: %s", e.Pass, e.Message)
}

// Panic raises an InternalError for pass; call sites use this instead of
// returning an error for states that indicate a compiler bug rather than
// a user-facing diagnostic.
func Panic(pass, format string, args ...any) {
	panic(&InternalError{Pass: pass, Message: fmt.Sprintf(format, args...)})
}
