// Package converrors provides structured error types for formatconv.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - UnsupportedConversionError: no converter resolves the requested format pair
//   - ValidationError: input does not match the declared shape of its claimed source format
//   - ConversionError: the transformation itself failed for a reason intrinsic to the data
//   - DuplicateConversionError: two distinct units registered for the same format pair
//   - PayloadTooLargeError: input exceeds the configured maximum size
//
// # Usage with errors.As
//
//	result, err := convert.Convert(reg, value, "text", "base64", nil)
//	if err != nil {
//	    var unsupported *converrors.UnsupportedConversionError
//	    if errors.As(err, &unsupported) {
//	        // Offer the caller the list of supported pairs
//	    }
//	}
package converrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrUnsupportedConversion indicates no unit resolves the requested pair.
	ErrUnsupportedConversion = errors.New("unsupported conversion")

	// ErrValidation indicates the input failed validation for its claimed format.
	ErrValidation = errors.New("validation error")

	// ErrConversion indicates a transformation failure intrinsic to the data.
	ErrConversion = errors.New("conversion error")

	// ErrDuplicateConversion indicates two distinct units were registered for one pair.
	ErrDuplicateConversion = errors.New("duplicate conversion")

	// ErrPayloadTooLarge indicates the input exceeded the configured size limit.
	ErrPayloadTooLarge = errors.New("payload too large")
)

// UnsupportedConversionError reports that no converter unit resolves the
// requested (source, target) pair. It is always recoverable: the caller can
// choose a different pair.
type UnsupportedConversionError struct {
	// Source is the requested source format identifier
	Source string
	// Target is the requested target format identifier
	Target string
	// Known lists supported format identifiers, when available
	Known []string
}

// Error returns a human-readable error message naming both formats.
func (e *UnsupportedConversionError) Error() string {
	msg := fmt.Sprintf("unsupported conversion from %q to %q", e.Source, e.Target)
	if len(e.Known) > 0 {
		msg += ": known formats: " + strings.Join(e.Known, ", ")
	}
	return msg
}

// Unwrap returns nil as UnsupportedConversionError has no underlying cause.
func (e *UnsupportedConversionError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *UnsupportedConversionError) Is(target error) bool {
	return target == ErrUnsupportedConversion
}

// ValidationError reports input that does not satisfy the declared shape or
// semantic constraints of its claimed source format, such as a hex value
// containing non-hex characters. Fixing the input is always the caller's
// responsibility.
type ValidationError struct {
	// Source is the claimed source format identifier
	Source string
	// Target is the requested target format identifier (may be empty)
	Target string
	// Message describes the validation failure
	Message string
	// Value is the offending value, when small enough to echo (may be nil)
	Value any
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Source != "" {
		msg += " for " + e.Source
		if e.Target != "" {
			msg += " -> " + e.Target
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConversionError reports a transformation failure intrinsic to the data,
// such as corrupt image bytes or an unparseable structured document.
type ConversionError struct {
	// Source is the source format identifier
	Source string
	// Target is the target format identifier
	Target string
	// Message describes the conversion failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConversionError) Error() string {
	msg := "conversion error"
	if e.Source != "" && e.Target != "" {
		msg += fmt.Sprintf(" (%s -> %s)", e.Source, e.Target)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// DuplicateConversionError reports registration of a second distinct unit
// for a format pair that already has an explicit unit. This indicates a
// programming error in a format family module and should halt process
// startup; it is never reachable at request time.
type DuplicateConversionError struct {
	// Source is the source format identifier of the contested pair
	Source string
	// Target is the target format identifier of the contested pair
	Target string
	// Existing describes the unit already registered
	Existing string
	// Incoming describes the unit whose registration was rejected
	Incoming string
}

// Error returns a human-readable error message.
func (e *DuplicateConversionError) Error() string {
	msg := fmt.Sprintf("duplicate conversion registered for %s -> %s", e.Source, e.Target)
	if e.Existing != "" {
		msg += fmt.Sprintf(": existing %q", e.Existing)
	}
	if e.Incoming != "" {
		msg += fmt.Sprintf(", incoming %q", e.Incoming)
	}
	return msg
}

// Unwrap returns nil as DuplicateConversionError has no underlying cause.
func (e *DuplicateConversionError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *DuplicateConversionError) Is(target error) bool {
	return target == ErrDuplicateConversion
}

// PayloadTooLargeError reports input that exceeds the configured
// maximum-input-size constraint. The engine fails fast instead of
// allocating unbounded intermediate buffers.
type PayloadTooLargeError struct {
	// Source is the source format identifier
	Source string
	// Target is the target format identifier
	Target string
	// Limit is the configured maximum input size in bytes
	Limit int64
	// Actual is the size of the rejected input in bytes
	Actual int64
}

// Error returns a human-readable error message.
func (e *PayloadTooLargeError) Error() string {
	msg := "payload too large"
	if e.Source != "" && e.Target != "" {
		msg += fmt.Sprintf(" (%s -> %s)", e.Source, e.Target)
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(": limit %d bytes", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", got %d", e.Actual)
		}
	}
	return msg
}

// Unwrap returns nil as PayloadTooLargeError has no underlying cause.
func (e *PayloadTooLargeError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *PayloadTooLargeError) Is(target error) bool {
	return target == ErrPayloadTooLarge
}
