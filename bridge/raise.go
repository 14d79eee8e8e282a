package bridge

// RaiseForeign re-raises a foreign handle as the carrier exception in the Go
// exception model, so that Go frames which do not understand the foreign
// exception unwind correctly past it and a Capture higher up the stack (or
// the original foreign caller) can recapture it. Ownership of the handle
// transfers unconditionally into the raised exception; the handle is never
// inspected or freed here. Never returns.
func RaiseForeign(h ForeignHandle) {
	logger.Debug().
		Uint64("data", uint64(h.Data)).
		Uint64("type", uint64(h.Type)).
		Msg("raising foreign exception")
	panic(carrier{handle: h})
}

// Rethrow re-raises the box's underlying native exception with its original
// dynamic type and message, restoring normal native propagation semantics.
// The box remains valid and must still be destroyed by its owner; Rethrow
// does not free it. Calling Rethrow on a foreign-passthrough box is a fatal
// contract violation, since no native token exists to re-raise. Never
// returns.
func (b *Box) Rethrow() {
	b.ensureLive("rethrow")
	token := variants[b.kind].token(b)
	logger.Debug().Str("kind", b.kind.String()).Msg("rethrowing native exception")
	panic(token)
}
