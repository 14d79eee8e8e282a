package bridge

import (
	"fmt"
	"os"
)

// AbortFunc receives the formatted message for a contract violation. It must
// not return; if it does, the process exits anyway.
type AbortFunc func(msg string)

var abort AbortFunc = defaultAbort

func defaultAbort(msg string) {
	fmt.Fprintln(os.Stderr, "fatal: "+msg)
	os.Exit(2)
}

// SetAbort replaces the handler invoked on contract violations and returns
// the previous handler. The default writes the message to stderr and exits.
// Tests substitute a handler that panics with a sentinel value instead.
func SetAbort(fn AbortFunc) AbortFunc {
	prev := abort
	abort = fn
	return prev
}

// ContractViolation terminates the process loudly. It is called when the
// protocol has been misused in a way that cannot be reported as an error:
// continuing would silently propagate corrupted exception state through the
// unwinding machinery. Never returns.
func ContractViolation(format string, args ...any) {
	msg := "contract violation: " + fmt.Sprintf(format, args...)
	logger.Error().Msg(msg)
	abort(msg)
	os.Exit(2)
}
