package mappedlist

import (
	"fmt"
	"strings"

	"github.com/axonmem/mapped.go/memory"
)

// region list /////////////////////////////////////////////////////////////////////////////////////////////////////////

// The two ends of the list. A node's prev link and the list's head handle share the front index, next and tail share
// the back index, which lets both push/pop pairs run through one direction-parameterized implementation.
const (
	front = 0
	back  = 1
)

// noneHandle marks an absent link or end.
const noneHandle = int32(-1)

// node is a single slot in the list's arena: two optional neighbor handles plus the cell holding the element's
// value. Free slots chain through links[back].
type node[T any] struct {
	links [2]int32
	cell  cell[T]
}

// list implements the List interface on top of a slot arena addressed by stable handles instead of raw pointers.
type list[T any] struct {
	// nodes is the arena of node slots; handles are indices into it.
	nodes []node[T]

	// ends holds the head (front) and tail (back) handles, noneHandle when the list is empty.
	ends [2]int32

	// freeSlot is the head of the free-slot chain, noneHandle when no slot can be recycled.
	freeSlot int32

	// len is the current number of values in the list.
	len int

	// version counts mutations and invalidates outstanding iterators.
	version uint64

	// provider backs the regions of all value cells.
	provider memory.Provider

	// releaseErr retains the first region release failure until the next Clear.
	releaseErr error
}

// newList returns a new empty list instance backed by the given provider.
func newList[T any](provider memory.Provider) *list[T] {
	return &list[T]{
		ends:     [2]int32{noneHandle, noneHandle},
		freeSlot: noneHandle,
		provider: provider,
	}
}

// PushFront inserts the given value at the front of the List. On allocation failure the List is left unchanged.
func (l *list[T]) PushFront(value T) error {
	return l.push(front, value)
}

// PushBack inserts the given value at the back of the List. On allocation failure the List is left unchanged.
func (l *list[T]) PushBack(value T) error {
	return l.push(back, value)
}

// PopFront removes and returns the first value of the List and whether the value exists.
func (l *list[T]) PopFront() (value T, exists bool) {
	return l.pop(front)
}

// PopBack removes and returns the last value of the List and whether the value exists.
func (l *list[T]) PopBack() (value T, exists bool) {
	return l.pop(back)
}

// Front returns the first value of the List without removing it and whether the value exists.
func (l *list[T]) Front() (value T, exists bool) {
	return l.peek(front)
}

// Back returns the last value of the List without removing it and whether the value exists.
func (l *list[T]) Back() (value T, exists bool) {
	return l.peek(back)
}

// ForEach executes the given callback for each value in the List. The iteration is aborted if the callback returns
// an error.
func (l *list[T]) ForEach(callback func(value T) error) error {
	for handle := l.ends[front]; handle != noneHandle; handle = l.nodes[handle].links[back] {
		if err := callback(*l.nodes[handle].cell.load()); err != nil {
			return err
		}
	}

	return nil
}

// ForEachReverse executes the given callback for each value in the List in reverse order. The iteration is aborted
// if the callback returns an error.
func (l *list[T]) ForEachReverse(callback func(value T) error) error {
	for handle := l.ends[back]; handle != noneHandle; handle = l.nodes[handle].links[front] {
		if err := callback(*l.nodes[handle].cell.load()); err != nil {
			return err
		}
	}

	return nil
}

// Range executes the given callback for each value in the List.
func (l *list[T]) Range(callback func(value T)) {
	for handle := l.ends[front]; handle != noneHandle; handle = l.nodes[handle].links[back] {
		callback(*l.nodes[handle].cell.load())
	}
}

// RangeReverse executes the given callback for each value in the List in reverse order.
func (l *list[T]) RangeReverse(callback func(value T)) {
	for handle := l.ends[back]; handle != noneHandle; handle = l.nodes[handle].links[front] {
		callback(*l.nodes[handle].cell.load())
	}
}

// Values returns a slice of all values in the List.
func (l *list[T]) Values() []T {
	values := make([]T, 0, l.len)

	l.Range(func(value T) {
		values = append(values, value)
	})

	return values
}

// Iterator returns a new Iterator that walks the List from both ends toward the middle.
func (l *list[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{
		list:      l,
		cursors:   l.ends,
		remaining: l.len,
		version:   l.version,
	}
}

// Len returns the number of values in the List.
func (l *list[T]) Len() int {
	return l.len
}

// IsEmpty checks if the List is empty.
func (l *list[T]) IsEmpty() bool {
	return l.len == 0
}

// Clear removes all values from the List, releasing their regions in back-to-front order, and returns the first
// release error.
func (l *list[T]) Clear() error {
	for {
		if _, exists := l.PopBack(); !exists {
			break
		}
	}

	err := l.releaseErr
	l.releaseErr = nil

	return err
}

// Close tears down the List by clearing it. The List is empty and reusable afterwards.
func (l *list[T]) Close() error {
	return l.Clear()
}

// String returns a human readable version of the List.
func (l *list[T]) String() string {
	builder := strings.Builder{}
	builder.WriteString("MappedList[")

	firstValue := true
	l.Range(func(value T) {
		if !firstValue {
			builder.WriteString(" ")
		}
		firstValue = false

		builder.WriteString(fmt.Sprintf("%v", value))
	})
	builder.WriteString("]")

	return builder.String()
}

// push creates a cell for the value and links a new node at the given end. The cell is created before any link is
// touched, so a failed allocation leaves the list unchanged.
func (l *list[T]) push(end int, value T) error {
	valueCell, err := newCell[T](value, l.provider)
	if err != nil {
		return err
	}

	newHandle := l.allocNode(valueCell)
	oldEnd := l.ends[end]
	l.nodes[newHandle].links[1-end] = oldEnd
	if oldEnd == noneHandle {
		l.ends[1-end] = newHandle
	} else {
		l.nodes[oldEnd].links[end] = newHandle
	}
	l.ends[end] = newHandle
	l.len++
	l.version++

	return nil
}

// pop detaches the node at the given end, extracts its value and releases its cell's region.
func (l *list[T]) pop(end int) (value T, exists bool) {
	oldHandle := l.ends[end]
	if oldHandle == noneHandle {
		return value, false
	}

	l.ends[end] = l.nodes[oldHandle].links[1-end]
	if l.ends[end] == noneHandle {
		l.ends[1-end] = noneHandle
	} else {
		l.nodes[l.ends[end]].links[end] = noneHandle
	}
	l.len--
	l.version++

	value = l.nodes[oldHandle].cell.extract()
	if err := l.nodes[oldHandle].cell.free(); err != nil && l.releaseErr == nil {
		l.releaseErr = err
	}
	l.freeNode(oldHandle)

	return value, true
}

// peek returns the value at the given end without removing it.
func (l *list[T]) peek(end int) (value T, exists bool) {
	handle := l.ends[end]
	if handle == noneHandle {
		return value, false
	}

	return *l.nodes[handle].cell.load(), true
}

// allocNode takes a slot from the free chain or grows the arena and returns the slot's handle.
func (l *list[T]) allocNode(valueCell cell[T]) int32 {
	newNode := node[T]{
		links: [2]int32{noneHandle, noneHandle},
		cell:  valueCell,
	}

	if l.freeSlot != noneHandle {
		handle := l.freeSlot
		l.freeSlot = l.nodes[handle].links[back]
		l.nodes[handle] = newNode

		return handle
	}

	l.nodes = append(l.nodes, newNode)

	return int32(len(l.nodes) - 1)
}

// freeNode clears the slot and chains it into the free list for reuse.
func (l *list[T]) freeNode(handle int32) {
	l.nodes[handle] = node[T]{
		links: [2]int32{noneHandle, l.freeSlot},
	}
	l.freeSlot = handle
}

// code contract - make sure the type implements the interface.
var _ List[int] = &list[int]{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
