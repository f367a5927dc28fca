//go:build unix

package memory

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// region MmapProvider /////////////////////////////////////////////////////////////////////////////////////////////////

// MmapProvider implements the Provider interface on top of anonymous memory mappings. Every region is backed by its
// own private read/write mapping that is unmapped on Release, so the memory held by a region lives outside of the Go
// heap and must not contain Go pointers.
type MmapProvider struct {
	// logger receives allocation diagnostics.
	logger *zap.Logger

	// closed signals that the provider was torn down.
	closed atomic.Bool

	// liveRegions counts the regions that were allocated but not yet released.
	liveRegions atomic.Int64

	// liveBytes counts the bytes held by live regions.
	liveBytes atomic.Int64
}

// NewMmapProvider creates a new MmapProvider.
func NewMmapProvider(opts ...ProviderOption) (*MmapProvider, error) {
	return &MmapProvider{
		logger: newProviderOptions(opts).logger,
	}, nil
}

// AllocAndMap allocates and maps a region of exactly byteSize bytes for read/write access.
func (m *MmapProvider) AllocAndMap(byteSize int) (Region, error) {
	if byteSize < 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "requested %d bytes", byteSize)
	}
	if m.closed.Load() {
		return nil, ErrProviderClosed
	}

	// mmap rejects zero-length mappings, so zero-sized regions carry no mapping at all.
	var buf []byte
	if byteSize > 0 {
		mapped, err := unix.Mmap(-1, 0, byteSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
		if err != nil {
			return nil, errors.Wrapf(ErrAllocationFailed, "mmap of %d bytes: %v", byteSize, err)
		}
		buf = mapped
	}

	m.liveRegions.Inc()
	m.liveBytes.Add(int64(byteSize))
	m.logger.Debug("mapped anonymous region", zap.Int("size", byteSize))

	return &mmapRegion{
		provider: m,
		buf:      buf,
		size:     byteSize,
	}, nil
}

// Close tears down the MmapProvider. Live regions stay mapped and are unmapped individually on Release.
func (m *MmapProvider) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}

	if liveRegions := m.liveRegions.Load(); liveRegions != 0 {
		m.logger.Warn("closing mmap provider with live mappings", zap.Int64("liveRegions", liveRegions))
	}

	return nil
}

// LiveRegions returns the number of regions that were allocated but not yet released.
func (m *MmapProvider) LiveRegions() int64 {
	return m.liveRegions.Load()
}

// LiveBytes returns the number of bytes held by live regions.
func (m *MmapProvider) LiveBytes() int64 {
	return m.liveBytes.Load()
}

// code contract - make sure the type implements the interface.
var _ Provider = &MmapProvider{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region mmapRegion ///////////////////////////////////////////////////////////////////////////////////////////////////

// mmapRegion implements the Region interface for the MmapProvider.
type mmapRegion struct {
	provider *MmapProvider
	buf      []byte
	size     int
	released atomic.Bool
}

// Bytes returns the read/write view over the region's memory.
func (m *mmapRegion) Bytes() []byte {
	if m.released.Load() {
		panic("mapped region accessed after release")
	}

	return m.buf
}

// Size returns the byte length of the region.
func (m *mmapRegion) Size() int {
	return m.size
}

// Release unmaps the region's memory.
func (m *mmapRegion) Release() error {
	if !m.released.CompareAndSwap(false, true) {
		return errors.Wrapf(ErrRegionReleased, "mapped region of %d bytes", m.size)
	}

	m.provider.liveRegions.Dec()
	m.provider.liveBytes.Sub(int64(m.size))
	m.provider.logger.Debug("unmapped anonymous region", zap.Int("size", m.size))

	if m.buf == nil {
		return nil
	}
	buf := m.buf
	m.buf = nil

	return errors.WithMessage(unix.Munmap(buf), "failed to unmap region")
}

// code contract - make sure the type implements the interface.
var _ Region = &mmapRegion{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
