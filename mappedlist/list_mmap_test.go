//go:build unix

package mappedlist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axonmem/mapped.go/memory"
)

// The list core must behave identically regardless of which provider backs the value cells.
func TestList_MmapBacked(t *testing.T) {
	provider, err := memory.NewMmapProvider()
	require.NoError(t, err)

	testList := New[uint64](provider)
	for i := uint64(1); i <= 100; i++ {
		require.NoError(t, testList.PushBack(i))
	}
	require.EqualValues(t, 100, provider.LiveRegions())

	iterator := testList.Iterator()
	for i := uint64(1); i <= 100; i++ {
		value, exists := iterator.Next()
		require.True(t, exists)
		require.Equal(t, i, value)
	}

	requirePopped(t, testList.PopFront, 1, 2, 3)
	requirePopped(t, testList.PopBack, 100, 99, 98)

	require.NoError(t, testList.Close())
	require.EqualValues(t, 0, provider.LiveRegions(), "teardown should unmap every region")
	require.NoError(t, provider.Close())
}
