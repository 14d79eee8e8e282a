package bridge

// Outcome is the result of one protected callback execution. Foreign and the
// handle or box must always be read together: when Foreign is true, Handle is
// a foreign exception copied out verbatim; when Foreign is false and Box is
// non-nil, a native panic was captured. The zero Outcome means the callback
// returned normally, and callers must check for it before consulting Foreign.
type Outcome struct {
	Foreign bool
	Handle  ForeignHandle
	Box     *Box
}

// IsZero reports whether the callback completed without raising.
func (o Outcome) IsZero() bool {
	return !o.Foreign && o.Handle.IsZero() && o.Box == nil
}

// Capture executes fn under a protective recover and converts any panic into
// an Outcome. A panic never escapes past Capture.
//
// Classification is ordered: the carrier tag is checked first, since a
// foreign exception in transit must be passed through untouched; then the
// error interface, which marks a native exception with an extractable
// message; then everything else. The message text is copied at the moment of
// recovery. Exactly one allocation occurs for a captured native panic and
// none for a passthrough or a normal return.
func Capture(fn func()) (out Outcome) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch exc := r.(type) {
		case carrier:
			out = Outcome{Foreign: true, Handle: exc.handle}
			logger.Debug().
				Uint64("data", uint64(exc.handle.Data)).
				Uint64("type", uint64(exc.handle.Type)).
				Msg("foreign exception passed through")
		case error:
			out = Outcome{Box: newDescribedBox(exc, exc.Error())}
			logger.Debug().
				Str("message", out.Box.message).
				Msg("captured native exception")
		default:
			out = Outcome{Box: newOpaqueBox(r)}
			logger.Debug().Msg("captured native exception with no message")
		}
	}()
	fn()
	return
}
