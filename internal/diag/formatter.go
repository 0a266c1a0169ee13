package diag

import (
	"fmt"
	"io"
	"strings"
)

// Formatter renders diagnostics as text. The checker has no access to the
// original document text (it only sees the syntax tree), so rendering is
// line oriented: header, location, notes, help.
type Formatter struct {
	w io.Writer
}

// NewFormatter creates a formatter writing to w.
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// Format writes one diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = string(SeverityError)
	}

	if d.Span.IsValid() {
		fmt.Fprintf(f.w, "%s: %s[%s]: %s\n", d.Span, severity, d.Code, d.Message)
	} else if d.Code != "" {
		fmt.Fprintf(f.w, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.w, "%s: %s\n", severity, d.Message)
	}

	for _, note := range d.Notes {
		fmt.Fprintf(f.w, "  note: %s\n", note)
	}
	if d.Help != "" {
		for _, line := range strings.Split(d.Help, "\n") {
			fmt.Fprintf(f.w, "  help: %s\n", line)
		}
	}
}

// FormatAll writes every diagnostic in the sink, in report order.
func (f *Formatter) FormatAll(s *Sink) {
	for _, d := range s.All() {
		f.Format(d)
	}
}
