package diag

import "github.com/strata-lang/strata/internal/source"

// Stage identifies which checker phase produced the diagnostic.
type Stage string

const (
	StageDecode    Stage = "decode"
	StageTypeCheck Stage = "typecheck"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic. Editor tooling keys on these,
// so they never change once published.
type Code string

const (
	// Lambda checking
	CodeLambdaArityMismatch      Code = "LambdaArityMismatch"
	CodeExpectedLambdaExpression Code = "ExpectedLambdaExpression"
	CodeLambdaReturnTypeMismatch Code = "LambdaReturnTypeMismatch"
	CodeLambdaNotSupportedHere   Code = "LambdaNotSupportedHere"
	CodeIncompleteLambda         Code = "IncompleteLambda"

	// Operator and call resolution
	CodeNoMatchingOverload    Code = "NoMatchingOverload"
	CodeArgumentCountMismatch Code = "ArgumentCountMismatch"
	CodeExpectedArrayArgument Code = "ExpectedArrayArgument"
	CodeArgumentTypeMismatch  Code = "ArgumentTypeMismatch"
	CodeUnknownFunction       Code = "UnknownFunction"

	// Names, members and indexing
	CodeUndefinedIdentifier Code = "UndefinedIdentifier"
	CodeUnknownProperty     Code = "UnknownProperty"
	CodeNoMatchingIndexer   Code = "NoMatchingIndexer"
	CodeCyclicReference     Code = "CyclicReference"

	// Declarations
	CodeUnknownResourceType   Code = "UnknownResourceType"
	CodePropertyTypeMismatch  Code = "PropertyTypeMismatch"
	CodeExpectedCondition     Code = "ExpectedCondition"
	CodeDuplicateDeclaration  Code = "DuplicateDeclaration"
)

// Diagnostic is a checker diagnostic surfaced to end-users. It is a plain
// value: the core never throws, it reports and keeps checking.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     source.Span
	Notes    []string // Additional notes to display
	Help     string   // Optional help text for fixing the error
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// Sink collects diagnostics in report order. Each document-checking worker
// owns exactly one sink; sinks are not safe for concurrent use.
type Sink struct {
	diags []Diagnostic
}

// NewSink creates an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Report appends a diagnostic to the sink.
func (s *Sink) Report(d Diagnostic) {
	s.diags = append(s.diags, d)
}

// All returns the collected diagnostics in report order.
func (s *Sink) All() []Diagnostic {
	return s.diags
}

// Len returns the number of collected diagnostics.
func (s *Sink) Len() int {
	return len(s.diags)
}

// HasErrors reports whether any error-severity diagnostic was collected.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
