package types

import (
	"fmt"

	"github.com/strata-lang/strata/internal/diag"
	"github.com/strata-lang/strata/internal/source"
)

func (c *Checker) reportError(code diag.Code, span source.Span, format string, args ...interface{}) {
	c.Sink.Report(diag.Diagnostic{
		Stage:    diag.StageTypeCheck,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	})
}

func (c *Checker) reportErrorWithHelp(code diag.Code, span source.Span, help, format string, args ...interface{}) {
	c.Sink.Report(diag.Diagnostic{
		Stage:    diag.StageTypeCheck,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
		Help:     help,
	})
}
