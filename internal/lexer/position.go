// Package lexer holds the small set of types the core pipeline needs to
// describe source positions. Tokenizing and parsing Jmm source text are
// out of scope for this repository; whatever builds an AST (an external
// parser, or a test) is expected to stamp nodes with a Position so that
// diagnostics can point at source.
package lexer

import "fmt"

// Position identifies a single point in a source file, 1-indexed.
type Position struct {
	Line   int
	Column int
}

// String renders the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsZero reports whether the position was never set.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}
