package memtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axonmem/mapped.go/memory"
)

func TestRecordingProvider(t *testing.T) {
	provider := NewRecordingProvider(memory.NewHeapProvider())

	firstRegion, err := provider.AllocAndMap(8)
	require.NoError(t, err)
	secondRegion, err := provider.AllocAndMap(8)
	require.NoError(t, err)

	require.Equal(t, 2, provider.Allocated())
	require.Equal(t, 2, provider.Live())

	require.NoError(t, secondRegion.Release())
	require.NoError(t, firstRegion.Release())
	require.Equal(t, []int{2, 1}, provider.ReleaseOrder())
	require.Equal(t, 0, provider.Live())

	require.ErrorIs(t, firstRegion.Release(), memory.ErrRegionReleased)
	require.Equal(t, 1, provider.DoubleReleases())
	require.Equal(t, []int{2, 1}, provider.ReleaseOrder(), "a rejected release should not be recorded")
}

func TestFailingProvider(t *testing.T) {
	provider := NewFailingProvider(memory.NewHeapProvider(), 1)

	region, err := provider.AllocAndMap(8)
	require.NoError(t, err)
	require.NoError(t, region.Release())

	_, err = provider.AllocAndMap(8)
	require.ErrorIs(t, err, memory.ErrAllocationFailed)
}
