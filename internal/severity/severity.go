// Package severity provides severity level constants for issues reported
// alongside conversion results.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Critical
package severity

// Severity indicates the severity level of an issue reported during a
// conversion.
type Severity int

const (
	// SeverityInfo indicates informational messages about processing choices,
	// such as a derived reverse unit handling the request.
	SeverityInfo Severity = iota

	// SeverityWarning indicates lossy or best-effort transformations that
	// completed but may not round-trip, such as flattening an alpha channel.
	SeverityWarning

	// SeverityCritical indicates data that could not be carried into the
	// target format at all.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
