package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestHeapProvider_AllocAndMap(t *testing.T) {
	provider := NewHeapProvider(WithLogger(zaptest.NewLogger(t)))

	region, err := provider.AllocAndMap(16)
	require.NoError(t, err)
	require.Equal(t, 16, region.Size())
	require.Len(t, region.Bytes(), 16)
	require.EqualValues(t, 1, provider.LiveRegions())
	require.EqualValues(t, 16, provider.LiveBytes())

	require.NoError(t, region.Release())
	require.EqualValues(t, 0, provider.LiveRegions())
	require.EqualValues(t, 0, provider.LiveBytes())
}

func TestHeapProvider_InvalidSize(t *testing.T) {
	provider := NewHeapProvider()

	_, err := provider.AllocAndMap(-1)
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestHeapProvider_Closed(t *testing.T) {
	provider := NewHeapProvider()
	require.NoError(t, provider.Close())
	require.NoError(t, provider.Close(), "closing twice should be harmless")

	_, err := provider.AllocAndMap(8)
	require.ErrorIs(t, err, ErrProviderClosed)
}

func TestHeapRegion_DoubleRelease(t *testing.T) {
	provider := NewHeapProvider()

	region, err := provider.AllocAndMap(8)
	require.NoError(t, err)

	require.NoError(t, region.Release())
	require.ErrorIs(t, region.Release(), ErrRegionReleased)
	require.EqualValues(t, 0, provider.LiveRegions(), "a rejected release should not corrupt the bookkeeping")
}

func TestHeapRegion_BytesAfterReleasePanics(t *testing.T) {
	provider := NewHeapProvider()

	region, err := provider.AllocAndMap(8)
	require.NoError(t, err)
	require.NoError(t, region.Release())

	require.Panics(t, func() {
		region.Bytes()
	})
}
