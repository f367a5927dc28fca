package mappedlist

// region Iterator /////////////////////////////////////////////////////////////////////////////////////////////////////

// Iterator walks a List from both ends toward the middle, yielding every value exactly once. It snapshots the head,
// tail and length of the List on creation and shares one remaining-count between both directions, so it is exhausted
// once Next and NextBack together yielded Len values. An exhausted Iterator keeps reporting that no value exists and
// cannot be restarted.
//
// The List must not be mutated while an Iterator over it is in use: any push, pop or clear invalidates the Iterator
// and the next call to Next or NextBack panics instead of observing relinked or released nodes.
type Iterator[T any] struct {
	list      *list[T]
	cursors   [2]int32
	remaining int
	version   uint64
}

// Next yields the next value from the front end of the Iterator and whether a value exists.
func (i *Iterator[T]) Next() (value T, exists bool) {
	return i.advance(front)
}

// NextBack yields the next value from the back end of the Iterator and whether a value exists.
func (i *Iterator[T]) NextBack() (value T, exists bool) {
	return i.advance(back)
}

// Remaining returns the number of values that were not yielded yet.
func (i *Iterator[T]) Remaining() int {
	return i.remaining
}

// advance moves the cursor of the given end inward by one node and yields that node's value.
func (i *Iterator[T]) advance(end int) (value T, exists bool) {
	if i.remaining == 0 {
		return value, false
	}
	if i.version != i.list.version {
		panic("list mutated while an iterator is in use")
	}

	handle := i.cursors[end]
	i.cursors[end] = i.list.nodes[handle].links[1-end]
	i.remaining--

	return *i.list.nodes[handle].cell.load(), true
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
