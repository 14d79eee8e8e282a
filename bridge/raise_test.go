package bridge

import (
	"errors"
	"fmt"
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
)

func TestRaiseForeignPanicsWithCarrier(t *testing.T) {
	h := ForeignHandle{Data: 10, Type: 20}
	defer func() {
		r := recover()
		c, ok := r.(carrier)
		assert.True(t, ok, "expected carrier, got %v", r)
		assert.Equal(t, c.handle, h)
	}()
	RaiseForeign(h)
	t.Fatal("RaiseForeign returned")
}

type pathError struct {
	path string
}

func (e *pathError) Error() string {
	return fmt.Sprintf("no such path: %s", e.path)
}

func TestRethrowPreservesDynamicType(t *testing.T) {
	original := &pathError{path: "/tmp/missing"}
	out := Capture(func() {
		panic(original)
	})
	assert.NotNil(t, out.Box)
	assert.Equal(t, out.Box.Kind(), DescribedNative)

	// Rethrow restores normal native propagation with the original token
	rethrown := Capture(func() {
		out.Box.Rethrow()
	})
	assert.NotNil(t, rethrown.Box)
	token, ok := rethrown.Box.NativeToken().(*pathError)
	assert.True(t, ok)
	assert.True(t, token == original, "rethrown token is not the original")

	// The first box is still valid and must still be destroyed
	assert.False(t, out.Box.Destroyed())
	out.Box.Destroy()
	rethrown.Box.Destroy()
}

func TestRethrowOpaque(t *testing.T) {
	out := Capture(func() {
		panic("untyped signal")
	})
	assert.Equal(t, out.Box.Kind(), OpaqueNative)
	rethrown := Capture(func() {
		out.Box.Rethrow()
	})
	assert.NotNil(t, rethrown.Box)
	assert.Equal(t, rethrown.Box.NativeToken(), "untyped signal")
}

func TestRethrowForeignAborts(t *testing.T) {
	box := NewForeignBox(ForeignHandle{Data: 1, Type: 2})
	expectViolation(t, "foreign-passthrough", func() {
		box.Rethrow()
	})
	// The box survives the (stubbed) abort path untouched
	assert.False(t, box.Destroyed())
}

func TestRethrowAfterDestroyAborts(t *testing.T) {
	out := Capture(func() {
		panic(errors.New("done"))
	})
	out.Box.Destroy()
	expectViolation(t, "rethrow called on a destroyed box", func() {
		out.Box.Rethrow()
	})
}
