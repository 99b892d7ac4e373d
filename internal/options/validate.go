// Package options validates input-source selection for the CLI and MCP
// surfaces, which each accept a value inline, from a file, or from stdin
// but never from more than one place at once.
package options

import "errors"

// ValidateSingleInputSource checks that exactly one of the given source
// flags is set. noSourceMsg and multiSourceMsg become the error text for
// the zero and many cases so each caller can name its own flags.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	count := 0
	for _, set := range sources {
		if set {
			count++
		}
	}

	switch {
	case count == 0:
		return errors.New(noSourceMsg)
	case count > 1:
		return errors.New(multiSourceMsg)
	}
	return nil
}
