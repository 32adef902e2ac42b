// Package styles colors the command line tool's own messages.
package styles

import (
	"os"

	"github.com/muesli/termenv"
)

var (
	stderr = termenv.NewOutput(os.Stderr)

	ERROR = func(s string) string {
		return stderr.String(s).
			Foreground(stderr.Color("9")).
			String()
	}
	WARNING = func(s string) string {
		return stderr.String(s).
			Foreground(stderr.Color("11")).
			String()
	}
	HINT = func(s string) string {
		return stderr.String(s).
			Foreground(stderr.Color("8")).
			Italic().
			String()
	}
)
