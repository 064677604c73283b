package ntru

import (
	"os"

	"github.com/rs/zerolog"
)

// logger is silent unless NTRU_DEBUG=1.
var logger = defaultLogger()

func defaultLogger() zerolog.Logger {
	if os.Getenv("NTRU_DEBUG") != "1" {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Str("pkg", "ntru").Logger()
}

// SetLogger routes the package's debug events to l. It is not safe to call
// concurrently with other functions of this package.
func SetLogger(l zerolog.Logger) { logger = l }
