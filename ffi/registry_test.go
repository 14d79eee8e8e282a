package ffi

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/xcept/bridge"
)

func TestRegistryRefsAreUnique(t *testing.T) {
	h1, _ := capture(func() { RaiseTestException("one") })
	h2, _ := capture(func() { RaiseTestException("two") })
	require.NotEqual(t, h1.Data, h2.Data)
	Destroy(BoxRef(h1.Data))
	Destroy(BoxRef(h2.Data))
}

func TestRegistryEntriesCarryCaptureIDs(t *testing.T) {
	h, _ := capture(func() { RaiseTestException("tagged") })
	ref := BoxRef(h.Data)

	boxes.mu.Lock()
	e := boxes.entries[ref]
	boxes.mu.Unlock()
	require.NotNil(t, e)
	require.False(t, e.captureID.IsNil())
	require.False(t, e.createdAt.IsZero())
	require.Equal(t, bridge.DescribedNative, e.box.Kind())

	Destroy(ref)
}

func TestCheckLeaksReportsLiveBoxes(t *testing.T) {
	require.NoError(t, CheckLeaks())

	h, _ := capture(func() { RaiseTestException("leaked") })
	ref := BoxRef(h.Data)

	err := CheckLeaks()
	require.Error(t, err)
	require.Contains(t, err.Error(), "was never destroyed")
	require.Contains(t, err.Error(), "described-native")

	Destroy(ref)
	require.NoError(t, CheckLeaks())
}
