package ffi

// testException is the fixed exception raised by RaiseTestException.
type testException struct {
	message string
}

func (e *testException) Error() string {
	return e.message
}

// RaiseTestException raises a native exception carrying the given message.
// It stands in for an external collaborator that throws across the boundary
// and exists only to exercise the capture path. Never returns.
func RaiseTestException(message string) {
	panic(&testException{message: message})
}
