package registry

// Option keys understood by the dispatcher itself. Individual units
// document their own keys alongside their registration.
const (
	// OptMaxInputSize caps the input payload size in bytes. Zero or
	// absent means unlimited. Enforced by the dispatcher before the
	// unit runs.
	OptMaxInputSize = "max_input_size"
)

// Options carries converter-specific parameters by key. Units read the
// keys they understand and ignore the rest. A nil Options is valid and
// behaves as empty.
type Options map[string]any

// String returns the string stored under key, or def when the key is
// absent or holds a non-string value.
func (o Options) String(key, def string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return def
}

// Int returns the int stored under key, accepting int and int64 values,
// or def when absent or of another type.
func (o Options) Int(key string, def int) int {
	switch v := o[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// Int64 returns the int64 stored under key, accepting int and int64
// values, or def when absent or of another type.
func (o Options) Int64(key string, def int64) int64 {
	switch v := o[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return def
}

// Bool returns the bool stored under key, or def when absent or of
// another type.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return def
}
