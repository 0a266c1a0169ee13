package diag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-lang/strata/internal/source"
)

func TestSinkOrderAndErrors(t *testing.T) {
	sink := NewSink()
	assert.False(t, sink.HasErrors())

	sink.Report(Diagnostic{Severity: SeverityWarning, Code: CodeUnknownProperty, Message: "first"})
	sink.Report(Diagnostic{Severity: SeverityError, Code: CodeNoMatchingOverload, Message: "second"})

	require.Equal(t, 2, sink.Len())
	assert.Equal(t, "first", sink.All()[0].Message)
	assert.Equal(t, "second", sink.All()[1].Message)
	assert.True(t, sink.HasErrors())
}

func TestDiagnosticBuilders(t *testing.T) {
	d := Diagnostic{Severity: SeverityError, Code: CodeLambdaArityMismatch, Message: "expected 1 parameter"}
	d = d.WithNote("lambda declared here").WithHelp("remove the extra parameter")

	require.Len(t, d.Notes, 1)
	assert.Equal(t, "lambda declared here", d.Notes[0])
	assert.Equal(t, "remove the extra parameter", d.Help)

	// Builders return copies, the original stays untouched.
	base := Diagnostic{Severity: SeverityError}
	_ = base.WithNote("a note")
	assert.Empty(t, base.Notes)
}

func TestFormatterOutput(t *testing.T) {
	var buf strings.Builder
	f := NewFormatter(&buf)

	f.Format(Diagnostic{
		Severity: SeverityError,
		Code:     CodeLambdaArityMismatch,
		Message:  "lambda has 0 parameters but 1 was expected",
		Span:     source.Span{Filename: "main.strata", Line: 3, Column: 14},
		Help:     "add a parameter",
	})

	out := buf.String()
	assert.Contains(t, out, "main.strata:3:14")
	assert.Contains(t, out, "error[LambdaArityMismatch]")
	assert.Contains(t, out, "help: add a parameter")
}
