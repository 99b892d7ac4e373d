// Package formats provides the built-in conversion units of formatconv,
// grouped by format family: encoding, charset, number, digest, data, and
// image. Each family has a RegisterX function that installs its units
// into a registry; RegisterAll installs every family.
//
// Registration is explicit. Importing this package registers nothing;
// callers build a registry and populate it:
//
//	reg := registry.New()
//	if err := formats.RegisterAll(reg); err != nil {
//	    log.Fatal(err)
//	}
//
// A registration error always indicates a programming error (two
// distinct units claiming the same pair) and should halt startup.
package formats

import "github.com/erraggy/formatconv/registry"

// RegisterAll installs every built-in family into reg in a fixed
// order, so derivation and listing are deterministic across processes.
func RegisterAll(reg *registry.Registry) error {
	registrars := []func(*registry.Registry) error{
		RegisterEncoding,
		RegisterCharset,
		RegisterNumber,
		RegisterDigest,
		RegisterData,
		RegisterImage,
	}
	for _, register := range registrars {
		if err := register(reg); err != nil {
			return err
		}
	}
	return nil
}

// registerUnits installs units in order, stopping at the first error.
func registerUnits(reg *registry.Registry, units ...*registry.Func) error {
	for _, u := range units {
		if err := reg.Register(u); err != nil {
			return err
		}
	}
	return nil
}
