// Package memory defines the allocator-provider boundary used by the mapped
// collections: a Provider hands out mapped memory Regions of a requested byte
// size, and typed views interpret a Region's bytes as a single value.
//
// Values whose only reference lives inside a Region obtained from a provider
// that manages memory outside of the Go heap (e.g. MmapProvider) are invisible
// to the garbage collector. Such Regions must only hold values that do not
// contain Go pointers.
package memory

import (
	"fmt"
	"unsafe"

	"github.com/cockroachdb/errors"
)

var (
	// ErrAllocationFailed is returned when a Provider cannot produce a mapped region of the requested size.
	ErrAllocationFailed = errors.New("allocation failed")

	// ErrInvalidSize is returned when a negative byte size is requested.
	ErrInvalidSize = errors.New("invalid allocation size")

	// ErrProviderClosed is returned when allocating from a Provider that has been closed.
	ErrProviderClosed = errors.New("provider is closed")

	// ErrRegionReleased is returned when releasing a Region that was already released.
	ErrRegionReleased = errors.New("region already released")
)

// region Provider /////////////////////////////////////////////////////////////////////////////////////////////////////

// Provider represents an interface for an allocation source that hands out mapped memory regions.
type Provider interface {
	// AllocAndMap allocates and maps a region of exactly byteSize bytes for read/write access.
	AllocAndMap(byteSize int) (Region, error)

	// Close tears down the Provider. Allocations after Close fail with ErrProviderClosed; regions that are still
	// live remain valid and are released individually.
	Close() error
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Region ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Region represents an interface for a single mapped memory region owned by exactly one holder.
type Region interface {
	// Bytes returns the read/write view over the region's memory. Must not be called after Release.
	Bytes() []byte

	// Size returns the byte length of the region.
	Size() int

	// Release returns the region's memory to the Provider that created it. Releasing a region twice fails with
	// ErrRegionReleased.
	Release() error
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region typed views //////////////////////////////////////////////////////////////////////////////////////////////////

// SizeOf returns the in-memory size of T in bytes.
func SizeOf[T any]() int {
	var zero T

	return int(unsafe.Sizeof(zero))
}

// zeroSized backs views of zero-sized types.
var zeroSized struct{}

// View interprets the given Region's memory as a single value of type T and returns a pointer to it. The returned
// pointer stays valid until the Region is released. It panics if the Region is too small or misaligned for T.
func View[T any](region Region) *T {
	var zero T
	if size := int(unsafe.Sizeof(zero)); size == 0 {
		return (*T)(unsafe.Pointer(&zeroSized))
	} else if regionBytes := region.Bytes(); len(regionBytes) < size {
		panic(fmt.Sprintf("region of %d bytes is too small for a value of %d bytes", len(regionBytes), size))
	} else if address := unsafe.Pointer(&regionBytes[0]); uintptr(address)%unsafe.Alignof(zero) != 0 {
		panic(fmt.Sprintf("region at %p is misaligned for alignment %d", address, unsafe.Alignof(zero)))
	} else {
		return (*T)(address)
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
