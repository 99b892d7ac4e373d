// Package issues provides the issue type attached to conversion results.
package issues

import (
	"fmt"

	"github.com/erraggy/formatconv/internal/severity"
)

// Issue represents a single notice produced while executing a conversion.
type Issue struct {
	// Pair identifies the conversion the issue belongs to (e.g. "png -> jpeg")
	Pair string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Context provides additional information about the issue (optional)
	Context string
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	default:
		symbol = "ℹ"
	}

	msg := fmt.Sprintf("%s [%s] %s", symbol, i.Pair, i.Message)
	if i.Context != "" {
		msg += " (" + i.Context + ")"
	}
	return msg
}
