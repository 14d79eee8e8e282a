// Package ffi exposes the exception bridge through an extern "C"-shaped
// surface: data crosses as two-word handles or single-word opaque box
// references, so a foreign runtime can drive the protocol without any
// knowledge of Go types. Captured boxes are tracked in an instrumented
// registry that detects double-destroys and leaks.
package ffi

import (
	"unsafe"

	"github.com/deepnoodle-ai/xcept/bridge"
)

// Callback is the shape of a foreign-supplied entry point: a zero-argument
// block with one opaque state pointer threaded through.
type Callback func(state unsafe.Pointer)

// BoxRef is an opaque single-word reference to a captured exception box. The
// foreign side stores and hands it back but never interprets it.
type BoxRef uintptr

// Capture executes callback(state) under a protective trampoline.
//
// On normal return the result is the all-zero handle and caughtForeign is
// false; callers must check for the zero handle before consulting the flag.
// If the callback raised a foreign exception, caughtForeign is set and the
// handle is returned verbatim. If it raised a native exception, caughtForeign
// is cleared and the handle's Data field carries the BoxRef of the newly
// registered box, which the caller must route to exactly one of Describe
// (repeatable), RethrowNative, or Destroy (terminal, exactly once).
func Capture(callback Callback, state unsafe.Pointer, caughtForeign *bool) bridge.ForeignHandle {
	out := bridge.Capture(func() {
		callback(state)
	})
	switch {
	case out.IsZero():
		*caughtForeign = false
		return bridge.ForeignHandle{}
	case out.Foreign:
		*caughtForeign = true
		return out.Handle
	default:
		*caughtForeign = false
		ref := boxes.put(out.Box)
		return bridge.ForeignHandle{Data: uintptr(ref)}
	}
}

// RaiseForeign re-raises a foreign handle as the carrier exception so an
// enclosing Capture can pick it up again. Never returns.
func RaiseForeign(h bridge.ForeignHandle) {
	bridge.RaiseForeign(h)
}

// RethrowNative re-raises the referenced box's native exception with its
// original dynamic type. The box stays registered and must still be
// destroyed. Fatal if the box holds a foreign passthrough. Never returns.
func RethrowNative(ref BoxRef) {
	boxes.get(ref).Rethrow()
}

// Describe returns a human-readable description of the referenced box. The
// result is valid until the box is destroyed.
func Describe(ref BoxRef) string {
	return boxes.get(ref).Describe()
}

// Destroy releases the referenced box and forgets the reference. Exactly one
// Destroy per Capture result is mandatory; destroying an unknown or
// already-destroyed reference is a fatal contract violation.
func Destroy(ref BoxRef) {
	boxes.remove(ref).Destroy()
}

// CheckLeaks returns an error describing every captured box that has not
// been destroyed, or nil when the registry is clean.
func CheckLeaks() error {
	return boxes.checkLeaks()
}
