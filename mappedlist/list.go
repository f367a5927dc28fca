// Package mappedlist provides a doubly linked list that keeps each element's value in a separately allocated mapped
// memory region obtained from a pluggable memory.Provider, instead of embedding values in the list's own nodes.
package mappedlist

import (
	"github.com/axonmem/mapped.go/memory"
)

// region List /////////////////////////////////////////////////////////////////////////////////////////////////////////

// List represents an interface for a doubly linked list whose element values live in provider-backed mapped memory
// regions. The List is not thread-safe; concurrent access requires external synchronization.
type List[T any] interface {
	// PushFront inserts the given value at the front of the List. On allocation failure the List is left unchanged.
	PushFront(value T) error

	// PushBack inserts the given value at the back of the List. On allocation failure the List is left unchanged.
	PushBack(value T) error

	// PopFront removes and returns the first value of the List and whether the value exists.
	PopFront() (value T, exists bool)

	// PopBack removes and returns the last value of the List and whether the value exists.
	PopBack() (value T, exists bool)

	// Front returns the first value of the List without removing it and whether the value exists.
	Front() (value T, exists bool)

	// Back returns the last value of the List without removing it and whether the value exists.
	Back() (value T, exists bool)

	// ForEach executes the given callback for each value in the List. The iteration is aborted if the callback
	// returns an error.
	ForEach(callback func(value T) error) error

	// ForEachReverse executes the given callback for each value in the List in reverse order. The iteration is
	// aborted if the callback returns an error.
	ForEachReverse(callback func(value T) error) error

	// Range executes the given callback for each value in the List.
	Range(callback func(value T))

	// RangeReverse executes the given callback for each value in the List in reverse order.
	RangeReverse(callback func(value T))

	// Values returns a slice of all values in the List.
	Values() []T

	// Iterator returns a new Iterator that walks the List from both ends toward the middle.
	Iterator() *Iterator[T]

	// Len returns the number of values in the List.
	Len() int

	// IsEmpty checks if the List is empty.
	IsEmpty() bool

	// Clear removes all values from the List, releasing their regions in back-to-front order, and returns the first
	// release error.
	Clear() error

	// Close tears down the List by clearing it. The List is empty and reusable afterwards.
	Close() error
}

// New creates a new List that allocates every element's backing region from the given provider.
func New[T any](provider memory.Provider) List[T] {
	return newList[T](provider)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
