package mappedlist

import (
	"github.com/cockroachdb/errors"

	"github.com/axonmem/mapped.go/memory"
)

// cell owns the mapped memory region backing a single list element. The region is sized exactly for one value of
// type T and holds an initialized value from creation until the value is extracted; after extraction the region is
// logically empty and must not be read again.
type cell[T any] struct {
	region    memory.Region
	extracted bool
}

// newCell allocates a region for one value of type T from the given provider and writes the value into it. On
// allocation failure no region is retained and the error is returned wrapped around memory.ErrAllocationFailed.
func newCell[T any](value T, provider memory.Provider) (cell[T], error) {
	region, err := provider.AllocAndMap(memory.SizeOf[T]())
	if err != nil {
		return cell[T]{}, errors.WithMessage(err, "failed to allocate value cell")
	}

	*memory.View[T](region) = value

	return cell[T]{region: region}, nil
}

// load returns a pointer to the value inside the mapped region. It panics if the value was already extracted.
func (c *cell[T]) load() *T {
	if c.extracted {
		panic("value cell accessed after extraction")
	}

	return memory.View[T](c.region)
}

// extract moves the value out of the mapped region, leaving the region logically empty. It panics if called twice.
func (c *cell[T]) extract() (value T) {
	if c.extracted {
		panic("value cell extracted twice")
	}

	view := memory.View[T](c.region)
	value = *view

	// zero the region so no stale copy of the value lingers in mapped memory
	var zero T
	*view = zero
	c.extracted = true

	return value
}

// free releases the region backing this cell. It is called exactly once, by the pop operation or the teardown that
// removes the owning node.
func (c *cell[T]) free() error {
	return c.region.Release()
}
