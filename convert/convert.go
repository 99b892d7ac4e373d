// Package convert is the dispatch façade of formatconv. It resolves a
// (source, target) pair against a registry, enforces input constraints,
// delegates to the resolved unit, and returns a Result carrying the
// output alongside any conversion issues.
package convert

import (
	"errors"

	"github.com/erraggy/formatconv/converrors"
	"github.com/erraggy/formatconv/internal/issues"
	"github.com/erraggy/formatconv/internal/severity"
	"github.com/erraggy/formatconv/registry"
)

// Severity indicates the severity level of a conversion issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about conversion choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates lossy conversions or best-effort transformations
	SeverityWarning = severity.SeverityWarning
	// SeverityCritical indicates conversions that lost data outright
	SeverityCritical = severity.SeverityCritical
)

// Issue represents a single conversion issue or limitation
type Issue = issues.Issue

// Result contains the outcome of a single conversion.
type Result struct {
	// Output is the converted value; its dynamic type matches the
	// unit's declared output shape
	Output any
	// Key is the resolved (source, target) pair
	Key registry.Key
	// SourceFormat is the normalized source format identifier
	SourceFormat string
	// TargetFormat is the normalized target format identifier
	TargetFormat string
	// Derived is true when the conversion ran through an auto-derived
	// reverse unit rather than an explicitly registered one
	Derived bool
	// Issues contains all conversion issues in the order they arose
	Issues []Issue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if conversion completed without critical issues
	Success bool
}

// HasCriticalIssues returns true if there are any critical issues
func (r *Result) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *Result) HasWarnings() bool {
	return r.WarningCount > 0
}

// Dispatcher routes conversion requests to registered units.
type Dispatcher struct {
	// Registry is the unit registry to resolve against. Required.
	Registry *registry.Registry
	// MaxInputSize caps input payloads in bytes. Zero means unlimited.
	// A per-call registry.OptMaxInputSize option overrides it.
	MaxInputSize int64
	// IncludeInfo determines whether to include informational messages
	IncludeInfo bool
	// Logger receives per-conversion debug logging.
	// Defaults to the registry NopLogger if not set.
	Logger registry.Logger
}

// New creates a new Dispatcher over reg with default settings.
func New(reg *registry.Registry) *Dispatcher {
	return &Dispatcher{
		Registry:    reg,
		IncludeInfo: true,
	}
}

// Convert is a convenience function that dispatches a single conversion
// against reg. It's equivalent to creating a Dispatcher with New() and
// calling Convert().
//
// Example:
//
//	result, err := convert.Convert(reg, "Hello World", "text", "base64", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Output) // SGVsbG8gV29ybGQ=
func Convert(reg *registry.Registry, value any, source, target string, opts registry.Options) (*Result, error) {
	d := New(reg)
	return d.Convert(value, source, target, opts)
}

// Convert resolves the (source, target) pair, validates the input
// against the unit's declared shape and the size limit, and delegates
// to the unit.
//
// Errors follow the conversion taxonomy: an unresolvable pair yields a
// converrors.UnsupportedConversionError, malformed or mis-shaped input
// a converrors.ValidationError, oversized input a
// converrors.PayloadTooLargeError, and a transformation failure a
// converrors.ConversionError.
func (d *Dispatcher) Convert(value any, source, target string, opts registry.Options) (*Result, error) {
	if d.Registry == nil {
		return nil, &converrors.ValidationError{Message: "dispatcher has no registry"}
	}
	logger := d.Logger
	if logger == nil {
		logger = registry.NopLogger{}
	}

	key := registry.NewKey(source, target)
	if key.Source == "" || key.Target == "" {
		return nil, &converrors.ValidationError{
			Source:  string(key.Source),
			Target:  string(key.Target),
			Message: "source and target formats are required",
		}
	}

	unit, err := d.Registry.Resolve(key)
	if err != nil {
		return nil, err
	}

	if err := d.checkSize(key, value, opts); err != nil {
		return nil, err
	}
	if got := registry.ShapeOf(value); got != unit.Input() {
		return nil, &converrors.ValidationError{
			Source:  string(key.Source),
			Target:  string(key.Target),
			Message: "expected " + unit.Input().String() + " input, got " + got.String(),
		}
	}

	logger.Debug("dispatching conversion", "key", key.String())
	out, err := unit.Convert(value, opts)
	if err != nil {
		return nil, wrapUnitError(key, err)
	}

	result := &Result{
		Output:       out,
		Key:          key,
		SourceFormat: string(key.Source),
		TargetFormat: string(key.Target),
		Derived:      d.Registry.Derived(key),
	}
	if result.Derived {
		d.addIssue(result, key, "using auto-derived reverse of "+key.Swap().String(), SeverityInfo)
	}
	if lossy, ok := unit.(interface{ Lossy() bool }); ok && lossy.Lossy() {
		d.addIssue(result, key, "conversion is lossy; some information from the source may be discarded", SeverityWarning)
	}

	d.updateCounts(result)
	result.Success = result.CriticalCount == 0

	if !d.IncludeInfo {
		filtered := make([]Issue, 0, len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Severity != SeverityInfo {
				filtered = append(filtered, issue)
			}
		}
		result.Issues = filtered
		result.InfoCount = 0
	}
	return result, nil
}

// checkSize enforces the input size cap for sized payloads. Structured
// values pass through uncapped.
func (d *Dispatcher) checkSize(key registry.Key, value any, opts registry.Options) error {
	limit := opts.Int64(registry.OptMaxInputSize, d.MaxInputSize)
	if limit <= 0 {
		return nil
	}
	var size int64
	switch v := value.(type) {
	case string:
		size = int64(len(v))
	case []byte:
		size = int64(len(v))
	default:
		return nil
	}
	if size > limit {
		return &converrors.PayloadTooLargeError{
			Source: string(key.Source),
			Target: string(key.Target),
			Limit:  limit,
			Actual: size,
		}
	}
	return nil
}

// addIssue is a helper to add a conversion issue to the result
func (d *Dispatcher) addIssue(result *Result, key registry.Key, message string, severity Severity) {
	result.Issues = append(result.Issues, Issue{
		Pair:     key.String(),
		Message:  message,
		Severity: severity,
	})
}

// updateCounts updates the issue counts in the result
func (d *Dispatcher) updateCounts(result *Result) {
	result.InfoCount = 0
	result.WarningCount = 0
	result.CriticalCount = 0

	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityInfo:
			result.InfoCount++
		case SeverityWarning:
			result.WarningCount++
		case SeverityCritical:
			result.CriticalCount++
		}
	}
}

// wrapUnitError ensures an error escaping a unit carries the conversion
// taxonomy. Errors already in the taxonomy pass through unchanged.
func wrapUnitError(key registry.Key, err error) error {
	if errors.Is(err, converrors.ErrValidation) ||
		errors.Is(err, converrors.ErrConversion) ||
		errors.Is(err, converrors.ErrUnsupportedConversion) ||
		errors.Is(err, converrors.ErrPayloadTooLarge) {
		return err
	}
	return &converrors.ConversionError{
		Source:  string(key.Source),
		Target:  string(key.Target),
		Message: "conversion failed",
		Cause:   err,
	}
}
