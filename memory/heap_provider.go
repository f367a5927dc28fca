package memory

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// region HeapProvider /////////////////////////////////////////////////////////////////////////////////////////////////

// HeapProvider implements the Provider interface on top of the Go heap. Regions are ordinary byte slices; Release
// only updates the bookkeeping and leaves reclamation to the garbage collector.
type HeapProvider struct {
	// logger receives allocation diagnostics.
	logger *zap.Logger

	// closed signals that the provider was torn down.
	closed atomic.Bool

	// liveRegions counts the regions that were allocated but not yet released.
	liveRegions atomic.Int64

	// liveBytes counts the bytes held by live regions.
	liveBytes atomic.Int64
}

// NewHeapProvider creates a new HeapProvider.
func NewHeapProvider(opts ...ProviderOption) *HeapProvider {
	return &HeapProvider{
		logger: newProviderOptions(opts).logger,
	}
}

// AllocAndMap allocates and maps a region of exactly byteSize bytes for read/write access.
func (h *HeapProvider) AllocAndMap(byteSize int) (Region, error) {
	if byteSize < 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "requested %d bytes", byteSize)
	}
	if h.closed.Load() {
		return nil, ErrProviderClosed
	}

	h.liveRegions.Inc()
	h.liveBytes.Add(int64(byteSize))
	h.logger.Debug("allocated heap region", zap.Int("size", byteSize))

	return &heapRegion{
		provider: h,
		buf:      make([]byte, byteSize),
	}, nil
}

// Close tears down the HeapProvider. Live regions stay valid and are released individually.
func (h *HeapProvider) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return nil
	}

	if liveRegions := h.liveRegions.Load(); liveRegions != 0 {
		h.logger.Warn("closing heap provider with live regions", zap.Int64("liveRegions", liveRegions))
	}

	return nil
}

// LiveRegions returns the number of regions that were allocated but not yet released.
func (h *HeapProvider) LiveRegions() int64 {
	return h.liveRegions.Load()
}

// LiveBytes returns the number of bytes held by live regions.
func (h *HeapProvider) LiveBytes() int64 {
	return h.liveBytes.Load()
}

// code contract - make sure the type implements the interface.
var _ Provider = &HeapProvider{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region heapRegion ///////////////////////////////////////////////////////////////////////////////////////////////////

// heapRegion implements the Region interface for the HeapProvider.
type heapRegion struct {
	provider *HeapProvider
	buf      []byte
	released atomic.Bool
}

// Bytes returns the read/write view over the region's memory.
func (h *heapRegion) Bytes() []byte {
	if h.released.Load() {
		panic("heap region accessed after release")
	}

	return h.buf
}

// Size returns the byte length of the region.
func (h *heapRegion) Size() int {
	return len(h.buf)
}

// Release returns the region's memory to the garbage collector.
func (h *heapRegion) Release() error {
	if !h.released.CompareAndSwap(false, true) {
		return errors.Wrapf(ErrRegionReleased, "heap region of %d bytes", len(h.buf))
	}

	h.provider.liveRegions.Dec()
	h.provider.liveBytes.Sub(int64(len(h.buf)))
	h.provider.logger.Debug("released heap region", zap.Int("size", len(h.buf)))
	h.buf = nil

	return nil
}

// code contract - make sure the type implements the interface.
var _ Region = &heapRegion{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
