package semantic

import "github.com/marco-vb/jmmc/internal/lexer"

// Stage tags a Report with the pipeline stage that produced it
// (spec.md §7).
type Stage string

const (
	StageSemantic     Stage = "SEMANTIC"
	StageOptimization Stage = "OPTIMIZATION"
)

// Severity is currently always "ERROR" — spec.md §7 defines no warning
// tier for the core, but the field is kept distinct from Stage so a
// future hint/warning severity doesn't require a shape change.
type Severity string

const (
	SeverityError Severity = "ERROR"
)

// Report is one diagnostic: (kind, stage, line, column, message) per
// spec.md §6's driver surface, where Kind carries the reporting pass's
// name (e.g. "UndeclaredVariable") and Severity carries the ERROR tier.
type Report struct {
	Kind     string
	Stage    Stage
	Severity Severity
	Pos      lexer.Position
	Message  string
}
