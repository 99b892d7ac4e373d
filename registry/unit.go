package registry

import (
	"fmt"

	"github.com/erraggy/formatconv/converrors"
)

// ConvertFunc transforms a value from the source format to the target
// format. Func.Convert checks the value against the declared input shape
// before invoking the func, so the value's dynamic type always matches.
type ConvertFunc func(value any, opts Options) (any, error)

// Unit is the capability a conversion unit must provide to be
// registered. Implementations must be safe for concurrent use; the
// registry calls Convert from multiple goroutines.
type Unit interface {
	// Key reports the ordered (source, target) pair this unit serves.
	Key() Key

	// Input reports the value shape the unit accepts.
	Input() Shape

	// Output reports the value shape the unit produces.
	Output() Shape

	// Convert transforms value from the source format to the target
	// format. Malformed input yields a converrors.ValidationError;
	// failures past input validation yield a converrors.ConversionError.
	Convert(value any, opts Options) (any, error)
}

// ReversibleUnit is a Unit that can derive its own inverse. Register
// consults it to auto-register the swapped direction when that
// direction has no explicit unit.
type ReversibleUnit interface {
	Unit

	// Reverse returns a unit for the swapped key, or nil when no
	// inverse exists.
	Reverse() Unit
}

// Describer is an optional interface reporting human-readable unit
// metadata for listings.
type Describer interface {
	// Family groups related formats for listing order, such as
	// "encoding" or "image".
	Family() string

	// Description is a one-line summary of the conversion.
	Description() string
}

// Def configures a conversion unit for NewUnit. Source, Target, and
// Convert are required; everything else is optional.
type Def struct {
	// Source is the format converted from
	Source string
	// Target is the format converted to
	Target string
	// Family groups the unit in listings, such as "encoding"
	Family string
	// Input is the value shape the unit accepts
	Input Shape
	// Output is the value shape the unit produces
	Output Shape
	// Description is a one-line summary for listings
	Description string
	// Convert performs the forward transformation
	Convert ConvertFunc
	// Inverse, when set, performs the reverse transformation and
	// makes the unit reversible
	Inverse ConvertFunc
	// OneWay declares the conversion destructive, such as a digest.
	// One-way units never derive a reverse.
	OneWay bool
	// Lossy declares the forward direction discards information,
	// such as an alpha-dropping image re-encode. Lossy units never
	// derive a reverse; pair two explicit units instead.
	Lossy bool
}

// Func is an immutable conversion unit built from a Def. Its zero value
// is not usable; construct with NewUnit.
type Func struct {
	key         Key
	family      string
	input       Shape
	output      Shape
	description string
	fn          ConvertFunc
	inverse     ConvertFunc
	oneWay      bool
	lossy       bool
	derived     bool
}

// compile-time interface checks
var (
	_ Unit           = (*Func)(nil)
	_ ReversibleUnit = (*Func)(nil)
	_ Describer      = (*Func)(nil)
)

// NewUnit builds an immutable unit from a Def. It panics when Source,
// Target, or Convert is missing; unit definitions are program
// constants and a bad one is a programming error.
func NewUnit(def Def) *Func {
	key := NewKey(def.Source, def.Target)
	if key.Source == "" || key.Target == "" {
		panic(fmt.Sprintf("registry: unit %q has an empty format id", key))
	}
	if def.Convert == nil {
		panic(fmt.Sprintf("registry: unit %q has no convert func", key))
	}
	if def.OneWay && def.Inverse != nil {
		panic(fmt.Sprintf("registry: unit %q is one-way but has an inverse", key))
	}
	return &Func{
		key:         key,
		family:      def.Family,
		input:       def.Input,
		output:      def.Output,
		description: def.Description,
		fn:          def.Convert,
		inverse:     def.Inverse,
		oneWay:      def.OneWay,
		lossy:       def.Lossy,
	}
}

// Key reports the ordered (source, target) pair this unit serves.
func (f *Func) Key() Key { return f.key }

// Family reports the format family used for listing order.
func (f *Func) Family() string { return f.family }

// Input reports the value shape the unit accepts.
func (f *Func) Input() Shape { return f.input }

// Output reports the value shape the unit produces.
func (f *Func) Output() Shape { return f.output }

// Description reports the one-line summary for listings.
func (f *Func) Description() string { return f.description }

// OneWay reports whether the conversion is declared destructive.
func (f *Func) OneWay() bool { return f.oneWay }

// Lossy reports whether the forward direction discards information.
func (f *Func) Lossy() bool { return f.lossy }

// Derived reports whether this unit was auto-derived from another
// unit's inverse rather than registered explicitly.
func (f *Func) Derived() bool { return f.derived }

// Convert transforms value from the source format to the target format.
// A value whose dynamic type does not match the declared input shape is
// rejected with a ValidationError, so the conversion funcs may assert
// their input type without checking.
func (f *Func) Convert(value any, opts Options) (any, error) {
	if got := ShapeOf(value); got != f.input {
		return nil, &converrors.ValidationError{
			Source:  string(f.key.Source),
			Target:  string(f.key.Target),
			Message: fmt.Sprintf("expected %s input, got %s", f.input, got),
		}
	}
	return f.fn(value, opts)
}

// Reverse returns the derived inverse unit, or nil when the unit is
// one-way, lossy, or has no inverse primitive.
func (f *Func) Reverse() Unit {
	if f.inverse == nil || f.oneWay || f.lossy {
		return nil
	}
	return &Func{
		key:         f.key.Swap(),
		family:      f.family,
		input:       f.output,
		output:      f.input,
		description: reverseDescription(f.description, f.key),
		fn:          f.inverse,
		inverse:     f.fn,
		derived:     true,
	}
}

func reverseDescription(desc string, key Key) string {
	if desc == "" {
		return ""
	}
	return fmt.Sprintf("inverse of %s", key)
}
