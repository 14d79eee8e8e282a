package bridge

import (
	"errors"
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
)

type abortPanic struct {
	msg string
}

// stubAbort replaces the process abort with a panic carrying the violation
// message, so tests can observe fatal paths without exiting.
func stubAbort(t *testing.T) {
	t.Helper()
	prev := SetAbort(func(msg string) {
		panic(abortPanic{msg: msg})
	})
	t.Cleanup(func() {
		SetAbort(prev)
	})
}

func expectViolation(t *testing.T, contains string, fn func()) {
	t.Helper()
	stubAbort(t)
	defer func() {
		r := recover()
		ap, ok := r.(abortPanic)
		assert.True(t, ok, "expected a contract violation, recovered: %v", r)
		assert.Contains(t, ap.msg, contains)
	}()
	fn()
	t.Fatal("expected a contract violation, got none")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, ForeignPassthrough.String(), "foreign-passthrough")
	assert.Equal(t, DescribedNative.String(), "described-native")
	assert.Equal(t, OpaqueNative.String(), "opaque-native")
	assert.Equal(t, Kind(42).String(), "unknown")
}

func TestDescribedBox(t *testing.T) {
	err := errors.New("file not found")
	box := newDescribedBox(err, err.Error())
	assert.Equal(t, box.Kind(), DescribedNative)
	assert.Equal(t, box.Describe(), "file not found")
	// Describe is repeatable and non-consuming
	assert.Equal(t, box.Describe(), "file not found")
	assert.Equal(t, box.NativeToken(), err)
	assert.True(t, box.Handle().IsZero())
}

func TestOpaqueBox(t *testing.T) {
	box := newOpaqueBox(42)
	assert.Equal(t, box.Kind(), OpaqueNative)
	assert.Equal(t, box.Describe(), "<unknown exception>")
	assert.Equal(t, box.NativeToken(), 42)
}

func TestForeignBox(t *testing.T) {
	h := ForeignHandle{Data: 0xdead, Type: 0xbeef}
	box := NewForeignBox(h)
	assert.Equal(t, box.Kind(), ForeignPassthrough)
	assert.Equal(t, box.Describe(), "<foreign exception>")
	assert.Equal(t, box.Handle(), h)
}

func TestForeignBoxNativeTokenAborts(t *testing.T) {
	box := NewForeignBox(ForeignHandle{Data: 1, Type: 2})
	expectViolation(t, "native token", func() {
		box.NativeToken()
	})
}

func TestDestroyReleasesResources(t *testing.T) {
	box := newDescribedBox(errors.New("boom"), "boom")
	assert.False(t, box.Destroyed())
	box.Destroy()
	assert.True(t, box.Destroyed())
	assert.Nil(t, box.token)
	assert.Equal(t, box.message, "")
}

func TestDestroyForeignBoxKeepsPayloadForeignOwned(t *testing.T) {
	// Destroying a foreign-passthrough box frees only the wrapper; the
	// handle copy is dropped, never dereferenced or freed.
	box := NewForeignBox(ForeignHandle{Data: 7, Type: 8})
	box.Destroy()
	assert.True(t, box.Destroyed())
	assert.True(t, box.handle.IsZero())
}

func TestDoubleDestroyAborts(t *testing.T) {
	box := newOpaqueBox("x")
	box.Destroy()
	expectViolation(t, "destroy called on a destroyed box", func() {
		box.Destroy()
	})
}

func TestDescribeAfterDestroyAborts(t *testing.T) {
	box := newDescribedBox(errors.New("gone"), "gone")
	box.Destroy()
	expectViolation(t, "describe called on a destroyed box", func() {
		box.Describe()
	})
}
