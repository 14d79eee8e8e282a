package bridge

// Kind discriminates the three forms a captured exception can take.
type Kind int

const (
	// ForeignPassthrough holds a foreign exception in transit. It has no
	// native message and no native token; it must be handed back to the
	// foreign side or re-raised with RaiseForeign.
	ForeignPassthrough Kind = iota
	// DescribedNative holds a native exception together with a copy of its
	// message text.
	DescribedNative
	// OpaqueNative holds a native exception with no message-producing
	// capability.
	OpaqueNative
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case ForeignPassthrough:
		return "foreign-passthrough"
	case DescribedNative:
		return "described-native"
	case OpaqueNative:
		return "opaque-native"
	default:
		return "unknown"
	}
}

// Placeholder descriptions for boxes whose message is not decodable natively.
const (
	foreignPlaceholder = "<foreign exception>"
	unknownPlaceholder = "<unknown exception>"
)

// Box is the native-side owning wrapper around one captured exception.
// Exactly one variant is active per box, selected at construction and never
// mutated. A box is single-owner: it is created by Capture (or NewForeignBox)
// and must be destroyed exactly once. Describe is non-consuming and
// repeatable; Rethrow consumes the native token at most once.
type Box struct {
	kind      Kind
	handle    ForeignHandle
	token     any
	message   string
	destroyed bool
}

// variant is the closed dispatch table for per-kind box behavior.
type variant struct {
	describe func(*Box) string
	token    func(*Box) any
	release  func(*Box)
}

var variants = [...]variant{
	ForeignPassthrough: {
		describe: func(b *Box) string { return foreignPlaceholder },
		token: func(b *Box) any {
			ContractViolation("native token requested from a foreign-passthrough box")
			return nil
		},
		// The foreign payload is owned by the foreign side; releasing the
		// box only drops our copy of the handle.
		release: func(b *Box) { b.handle = ForeignHandle{} },
	},
	DescribedNative: {
		describe: func(b *Box) string { return b.message },
		token:    func(b *Box) any { return b.token },
		release:  func(b *Box) { b.token = nil; b.message = "" },
	},
	OpaqueNative: {
		describe: func(b *Box) string { return unknownPlaceholder },
		token:    func(b *Box) any { return b.token },
		release:  func(b *Box) { b.token = nil },
	},
}

func newDescribedBox(token any, message string) *Box {
	return &Box{kind: DescribedNative, token: token, message: message}
}

func newOpaqueBox(token any) *Box {
	return &Box{kind: OpaqueNative, token: token}
}

// NewForeignBox wraps a foreign handle in a box so that foreign and native
// exceptions can be inspected uniformly. The box never owns the foreign
// payload; destroying it only frees the wrapper.
func NewForeignBox(h ForeignHandle) *Box {
	return &Box{kind: ForeignPassthrough, handle: h}
}

// Kind returns the active variant of the box.
func (b *Box) Kind() Kind {
	return b.kind
}

// Handle returns the foreign handle held by a foreign-passthrough box. For
// the native variants it returns the zero handle.
func (b *Box) Handle() ForeignHandle {
	return b.handle
}

// Describe returns a human-readable description of the captured exception
// without consuming it. DescribedNative boxes yield the captured message
// text; the other variants yield a fixed placeholder. The result is valid
// until the box is destroyed.
func (b *Box) Describe() string {
	b.ensureLive("describe")
	return variants[b.kind].describe(b)
}

// NativeToken returns the captured native exception token. Calling this on a
// foreign-passthrough box is a fatal contract violation: no native token
// exists, and returning garbage would corrupt the unwind that receives it.
func (b *Box) NativeToken() any {
	b.ensureLive("native token")
	return variants[b.kind].token(b)
}

// Destroy releases all resources owned by the box. It must be called exactly
// once per box; the box is unusable afterward. Destroying a box never frees
// the foreign payload itself.
func (b *Box) Destroy() {
	b.ensureLive("destroy")
	variants[b.kind].release(b)
	b.destroyed = true
	logger.Trace().Str("kind", b.kind.String()).Msg("box destroyed")
}

// Destroyed reports whether Destroy has been called on the box.
func (b *Box) Destroyed() bool {
	return b.destroyed
}

func (b *Box) ensureLive(op string) {
	if b.destroyed {
		ContractViolation("%s called on a destroyed box", op)
	}
}
