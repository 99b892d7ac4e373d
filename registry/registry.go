// Package registry implements the conversion registry at the core of
// formatconv: converter units keyed by ordered (source, target) format
// pairs, automatic derivation of reverse units from inverse primitives,
// and deterministic listing of the supported conversion surface.
//
// A Registry is an explicit value. Construct one with [New], populate it
// with [Registry.Register] (typically via the formats package), and pass
// it to the convert dispatcher. There is no package-level default
// registry and no import-time registration.
package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/erraggy/formatconv/converrors"
)

// Registry maps ordered (source, target) format pairs to conversion
// units. Registration derives reverse directions from reversible units,
// enforces the duplicate rule, and keeps listing order deterministic.
//
// A Registry is safe for concurrent use. Registration is expected at
// startup; Resolve and List may be called from any goroutine afterward.
type Registry struct {
	mu      sync.RWMutex
	units   map[Key]Unit
	derived map[Key]bool
	logger  Logger
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		units:   make(map[Key]Unit),
		derived: make(map[Key]bool),
		logger:  NopLogger{},
	}
}

// SetLogger configures structured logging for registration events.
// Passing nil restores the no-op logger.
func (r *Registry) SetLogger(logger Logger) {
	if logger == nil {
		logger = NopLogger{}
	}
	r.mu.Lock()
	r.logger = logger
	r.mu.Unlock()
}

// Register adds a unit for its (source, target) key and, when the unit
// is reversible, derives a unit for the swapped key if that direction
// has no unit yet.
//
// Registration rules:
//   - Registering the identical unit value again is a no-op.
//   - Registering a distinct unit for a pair that already has an
//     explicit unit returns a converrors.DuplicateConversionError.
//   - An explicit unit replaces a previously derived one for the same
//     pair; riding on a derived slot is never an error.
func (r *Registry) Register(u Unit) error {
	if u == nil {
		return &converrors.ValidationError{Message: "cannot register a nil unit"}
	}
	key := u.Key()
	if key.Source == "" || key.Target == "" {
		return &converrors.ValidationError{
			Source:  string(key.Source),
			Target:  string(key.Target),
			Message: "unit key has an empty format id",
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.units[key]; ok {
		switch {
		case sameUnit(existing, u):
			// idempotent re-registration
			return nil
		case r.derived[key]:
			r.logger.Debug("explicit unit replaces derived", "key", key.String())
		default:
			return &converrors.DuplicateConversionError{
				Source:   string(key.Source),
				Target:   string(key.Target),
				Existing: describeUnit(existing),
				Incoming: describeUnit(u),
			}
		}
	}

	r.units[key] = u
	delete(r.derived, key)
	r.logger.Debug("registered unit", "key", key.String())

	if rev, ok := u.(ReversibleUnit); ok {
		if inverse := rev.Reverse(); inverse != nil {
			rkey := key.Swap()
			if _, taken := r.units[rkey]; !taken {
				r.units[rkey] = inverse
				r.derived[rkey] = true
				r.logger.Debug("derived reverse unit", "key", rkey.String())
			}
		}
	}
	return nil
}

// Resolve returns the unit registered for key, or a
// converrors.UnsupportedConversionError naming the known formats when
// the pair has no unit.
func (r *Registry) Resolve(key Key) (Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.units[key]; ok {
		return u, nil
	}
	return nil, &converrors.UnsupportedConversionError{
		Source: string(key.Source),
		Target: string(key.Target),
		Known:  r.formatsLocked(),
	}
}

// ResolvePair is Resolve with raw format names, normalizing both.
func (r *Registry) ResolvePair(source, target string) (Unit, error) {
	return r.Resolve(NewKey(source, target))
}

// Derived reports whether the unit for key was auto-derived rather
// than registered explicitly. A key with no unit is not derived.
func (r *Registry) Derived(key Key) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.derived[key]
}

// Len reports the number of registered conversion directions,
// counting derived units.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.units)
}

// List returns every registered key ordered by format family, then by
// source and target identifier. The order is deterministic across
// processes for the same registration sequence.
func (r *Registry) List() []Key {
	entries := r.Entries()
	keys := make([]Key, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}

// Entry describes one registered conversion direction for listings.
type Entry struct {
	// Key is the (source, target) pair
	Key Key
	// Family groups related formats, empty when the unit reports none
	Family string
	// Description is the unit's one-line summary, when available
	Description string
	// Reversible reports whether the swapped direction is registered
	Reversible bool
	// Derived reports whether this direction was auto-derived
	Derived bool
	// OneWay reports whether the unit declares itself destructive
	OneWay bool
}

// Entries returns metadata for every registered direction in List order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.units))
	for key, u := range r.units {
		e := Entry{
			Key:     key,
			Derived: r.derived[key],
		}
		if d, ok := u.(Describer); ok {
			e.Family = d.Family()
			e.Description = d.Description()
		}
		if ow, ok := u.(interface{ OneWay() bool }); ok {
			e.OneWay = ow.OneWay()
		}
		if _, ok := r.units[key.Swap()]; ok {
			e.Reversible = true
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Family != entries[j].Family {
			return entries[i].Family < entries[j].Family
		}
		if entries[i].Key.Source != entries[j].Key.Source {
			return entries[i].Key.Source < entries[j].Key.Source
		}
		return entries[i].Key.Target < entries[j].Key.Target
	})
	return entries
}

// Formats returns every format identifier that appears as a source or
// target of a registered direction, sorted lexically.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.formatsLocked()
}

func (r *Registry) formatsLocked() []string {
	seen := make(map[FormatID]bool, len(r.units))
	for key := range r.units {
		seen[key.Source] = true
		seen[key.Target] = true
	}
	formats := make([]string, 0, len(seen))
	for f := range seen {
		formats = append(formats, string(f))
	}
	sort.Strings(formats)
	return formats
}

// sameUnit reports whether two units are the identical value. Units of
// non-comparable dynamic types are never identical.
func sameUnit(a, b Unit) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

func describeUnit(u Unit) string {
	if d, ok := u.(Describer); ok && d.Description() != "" {
		return d.Description()
	}
	return fmt.Sprintf("%T", u)
}
