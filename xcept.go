// Package xcept lets exceptions cross a foreign-function boundary without
// corrupting either side's unwinding machinery. Foreign exceptions traverse
// Go frames as opaque two-word handles; Go panics are captured into boxes
// that the foreign side can inspect, re-raise, and destroy.
//
// This package is the ergonomic, typed layer. The wire-shaped protocol lives
// in the bridge and ffi packages:
//
//	result, exc := xcept.Try(func() int {
//		xcept.Throw(myException{})
//		return 0
//	})
package xcept

import (
	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/xcept/bridge"
	"github.com/deepnoodle-ai/xcept/ffi"
)

// Exception is implemented by values that can be thrown across the boundary.
type Exception interface {
	What() string
}

// thrown tags an Exception raised by Throw. It satisfies the error interface
// so the trampoline classifies it as a described native exception, and it
// lets Try hand back the original thrown value with identity preserved.
type thrown struct {
	exc Exception
}

func (t *thrown) Error() string {
	return t.exc.What()
}

// Throw raises exc in the native exception model so that an enclosing Try
// (or ffi.Capture) recovers it. Never returns.
func Throw(exc Exception) {
	panic(&thrown{exc: exc})
}

// Try runs fn under a protective trampoline. On success the second return
// value is nil. A value raised with Throw is returned as-is, with identity
// preserved. Any other native panic is returned as a *Boxed exception owning
// the captured box; a foreign exception in transit is returned as a *Foreign
// exception wrapping its opaque handle. Boxed and Foreign exceptions hold
// resources that the caller must release with Close exactly once.
func Try[T any](fn func() T) (T, Exception) {
	var result T
	out := bridge.Capture(func() {
		result = fn()
	})
	switch {
	case out.IsZero():
		return result, nil
	case out.Foreign:
		return result, &Foreign{
			handle: out.Handle,
			box:    bridge.NewForeignBox(out.Handle),
		}
	default:
		if th, ok := out.Box.NativeToken().(*thrown); ok {
			// Reconstitute the original thrown value; the box wrapper is
			// no longer needed.
			out.Box.Destroy()
			return result, th.exc
		}
		return result, &Boxed{box: out.Box}
	}
}

// Boxed is a captured native exception owned by the caller. It implements
// both Exception and error.
type Boxed struct {
	box *bridge.Box
}

// What returns the message captured when the exception was caught, or a
// fixed placeholder if the panic value had no message capability.
func (e *Boxed) What() string {
	return e.box.Describe()
}

func (e *Boxed) Error() string {
	return e.What()
}

// Rethrow re-raises the original exception with its dynamic type preserved,
// restoring normal native propagation. The receiver must still be closed.
// Never returns.
func (e *Boxed) Rethrow() {
	e.box.Rethrow()
}

// Box exposes the underlying captured box.
func (e *Boxed) Box() *bridge.Box {
	return e.box
}

// Close destroys the underlying box. Exactly once.
func (e *Boxed) Close() {
	e.box.Destroy()
}

// Foreign is a foreign exception passing through Go frames. Its message is
// owned by the foreign side and not decodable here; What yields a fixed
// placeholder.
type Foreign struct {
	handle bridge.ForeignHandle
	box    *bridge.Box
}

func (e *Foreign) What() string {
	return e.box.Describe()
}

func (e *Foreign) Error() string {
	return e.What()
}

// Handle returns the opaque handle, copied verbatim from the foreign side.
func (e *Foreign) Handle() bridge.ForeignHandle {
	return e.handle
}

// Raise pushes the handle back into the native exception model so an
// enclosing trampoline (or the original foreign caller) can recapture it.
// Ownership of the handle transfers into the raised exception. Never
// returns.
func (e *Foreign) Raise() {
	bridge.RaiseForeign(e.handle)
}

// Close destroys the wrapper box. The foreign payload itself stays owned by
// the foreign side.
func (e *Foreign) Close() {
	e.box.Destroy()
}

// SetLogger installs a logger for boundary diagnostics across the bridge and
// ffi layers. The default discards everything.
func SetLogger(l zerolog.Logger) {
	bridge.SetLogger(l)
	ffi.SetLogger(l)
}
