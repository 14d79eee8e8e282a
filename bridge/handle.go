// Package bridge implements the core capture/propagate/inspect/destroy
// protocol for exceptions crossing a foreign-function boundary. Go panics are
// the native exception model; the foreign side identifies its own in-flight
// exceptions by an opaque two-word handle that this package stores and copies
// but never interprets.
package bridge

// ForeignHandle identifies a live exception object owned by the foreign side
// of the boundary. It is exactly two machine words, in fixed order, and the
// layout must not change: the foreign side constructs and consumes these
// records independently. Conventionally Data is the foreign object pointer
// and Type is its type or vtable pointer, but nothing on this side may
// dereference either field.
type ForeignHandle struct {
	Data uintptr
	Type uintptr
}

// IsZero reports whether h is the all-zero handle, which Capture returns when
// the callback completed without raising.
func (h ForeignHandle) IsZero() bool {
	return h.Data == 0 && h.Type == 0
}

// carrier transports a ForeignHandle through Go unwinding. It is a unique
// tagged type so that Capture matches it by tag, never structurally: an
// unrelated panic value that happens to contain two words can never be
// mistaken for a foreign exception in transit.
type carrier struct {
	handle ForeignHandle
}
