// Package memtest provides Provider wrappers for tests: a RecordingProvider that tracks allocation and release
// order and a FailingProvider that runs out of an allocation budget, so leak, teardown-order and failure-atomicity
// properties can be asserted against any real Provider.
package memtest

import (
	"github.com/cockroachdb/errors"

	"github.com/axonmem/mapped.go/memory"
)

// region RecordingProvider ////////////////////////////////////////////////////////////////////////////////////////////

// RecordingProvider wraps a Provider and records the order in which regions are allocated and released. Regions are
// numbered by allocation order starting at 1.
type RecordingProvider struct {
	inner          memory.Provider
	allocated      int
	releaseOrder   []int
	doubleReleases int
}

// NewRecordingProvider creates a new RecordingProvider wrapping the given Provider.
func NewRecordingProvider(inner memory.Provider) *RecordingProvider {
	return &RecordingProvider{
		inner: inner,
	}
}

// AllocAndMap allocates a region from the wrapped Provider and assigns it the next allocation number.
func (r *RecordingProvider) AllocAndMap(byteSize int) (memory.Region, error) {
	region, err := r.inner.AllocAndMap(byteSize)
	if err != nil {
		return nil, err
	}

	r.allocated++

	return &recordedRegion{
		Region:   region,
		provider: r,
		id:       r.allocated,
	}, nil
}

// Close closes the wrapped Provider.
func (r *RecordingProvider) Close() error {
	return r.inner.Close()
}

// Allocated returns the number of successful allocations.
func (r *RecordingProvider) Allocated() int {
	return r.allocated
}

// ReleaseOrder returns the allocation numbers of the released regions in release order.
func (r *RecordingProvider) ReleaseOrder() []int {
	return r.releaseOrder
}

// Live returns the number of regions that were allocated but not yet released.
func (r *RecordingProvider) Live() int {
	return r.allocated - len(r.releaseOrder)
}

// DoubleReleases returns the number of rejected repeated releases.
func (r *RecordingProvider) DoubleReleases() int {
	return r.doubleReleases
}

// code contract - make sure the type implements the interface.
var _ memory.Provider = &RecordingProvider{}

// recordedRegion decorates a Region with its allocation number.
type recordedRegion struct {
	memory.Region

	provider *RecordingProvider
	id       int
}

// Release releases the wrapped region and records the release.
func (r *recordedRegion) Release() error {
	if err := r.Region.Release(); err != nil {
		if errors.Is(err, memory.ErrRegionReleased) {
			r.provider.doubleReleases++
		}

		return err
	}

	r.provider.releaseOrder = append(r.provider.releaseOrder, r.id)

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region FailingProvider //////////////////////////////////////////////////////////////////////////////////////////////

// FailingProvider wraps a Provider and fails every allocation once the given budget of successes is used up.
type FailingProvider struct {
	inner  memory.Provider
	budget int
}

// NewFailingProvider creates a new FailingProvider that lets the first succeedFirst allocations through to the
// wrapped Provider and fails every later one with ErrAllocationFailed.
func NewFailingProvider(inner memory.Provider, succeedFirst int) *FailingProvider {
	return &FailingProvider{
		inner:  inner,
		budget: succeedFirst,
	}
}

// AllocAndMap allocates from the wrapped Provider while the budget lasts.
func (f *FailingProvider) AllocAndMap(byteSize int) (memory.Region, error) {
	if f.budget <= 0 {
		return nil, errors.Wrap(memory.ErrAllocationFailed, "allocation budget exhausted")
	}
	f.budget--

	return f.inner.AllocAndMap(byteSize)
}

// Close closes the wrapped Provider.
func (f *FailingProvider) Close() error {
	return f.inner.Close()
}

// code contract - make sure the type implements the interface.
var _ memory.Provider = &FailingProvider{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
