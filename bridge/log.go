package bridge

import "github.com/rs/zerolog"

var logger = zerolog.Nop()

// SetLogger installs a logger for boundary diagnostics. Capture
// classification, raises, and destroys are logged at debug and trace levels.
// The default logger discards everything.
func SetLogger(l zerolog.Logger) {
	logger = l
}
