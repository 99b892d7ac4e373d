package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/formatconv/internal/severity"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name     string
		issue    Issue
		expected string
	}{
		{
			name: "info issue",
			issue: Issue{
				Pair:     "base64 -> text",
				Message:  "handled by derived reverse unit",
				Severity: severity.SeverityInfo,
			},
			expected: "ℹ [base64 -> text] handled by derived reverse unit",
		},
		{
			name: "warning with context",
			issue: Issue{
				Pair:     "png -> jpeg",
				Message:  "alpha channel flattened onto white background",
				Severity: severity.SeverityWarning,
				Context:  "JPEG has no transparency",
			},
			expected: "⚠ [png -> jpeg] alpha channel flattened onto white background (JPEG has no transparency)",
		},
		{
			name: "critical issue",
			issue: Issue{
				Pair:     "gif -> png",
				Message:  "animation frames beyond the first were discarded",
				Severity: severity.SeverityCritical,
			},
			expected: "✗ [gif -> png] animation frames beyond the first were discarded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.issue.String())
		})
	}
}
