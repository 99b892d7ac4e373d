// Package cliutil provides small output helpers shared by the
// formatconv command handlers.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to the writer. A failed write is
// reported on stderr rather than returned; command output targets
// stdout or a flag-selected file and the handlers have no error path
// for it.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}
