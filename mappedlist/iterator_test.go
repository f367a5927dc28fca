package mappedlist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axonmem/mapped.go/memory"
)

func TestIterator_Forward(t *testing.T) {
	testList := newTestList(t, 1, 2, 3)

	iterator := testList.Iterator()
	require.Equal(t, testList.Len(), iterator.Remaining())

	for _, expectedValue := range []int{1, 2, 3} {
		value, exists := iterator.Next()
		require.True(t, exists)
		require.Equal(t, expectedValue, value)
	}

	_, exists := iterator.Next()
	require.False(t, exists)
	require.Equal(t, 0, iterator.Remaining())
	require.Equal(t, 3, testList.Len(), "iterating should not mutate the list")
}

func TestIterator_Backward(t *testing.T) {
	testList := newTestList(t, 1, 2, 3)

	iterator := testList.Iterator()
	for _, expectedValue := range []int{3, 2, 1} {
		value, exists := iterator.NextBack()
		require.True(t, exists)
		require.Equal(t, expectedValue, value)
	}

	_, exists := iterator.NextBack()
	require.False(t, exists)
}

func TestIterator_MeetInMiddle(t *testing.T) {
	testList := newTestList(t, 1, 2, 3, 4, 5)

	iterator := testList.Iterator()

	value, _ := iterator.Next()
	require.Equal(t, 1, value)
	value, _ = iterator.NextBack()
	require.Equal(t, 5, value)
	value, _ = iterator.Next()
	require.Equal(t, 2, value)
	value, _ = iterator.NextBack()
	require.Equal(t, 4, value)
	value, _ = iterator.Next()
	require.Equal(t, 3, value)

	// both ends share one remaining-count, so the value in the middle is yielded only once
	_, exists := iterator.Next()
	require.False(t, exists)
	_, exists = iterator.NextBack()
	require.False(t, exists)
}

func TestIterator_Fused(t *testing.T) {
	testList := newTestList(t, 1)

	iterator := testList.Iterator()
	_, exists := iterator.Next()
	require.True(t, exists)

	for i := 0; i < 3; i++ {
		_, exists = iterator.Next()
		require.False(t, exists)
		_, exists = iterator.NextBack()
		require.False(t, exists)
	}
}

func TestIterator_Empty(t *testing.T) {
	testList := New[int](memory.NewHeapProvider())

	iterator := testList.Iterator()
	require.Equal(t, 0, iterator.Remaining())

	_, exists := iterator.Next()
	require.False(t, exists)
	_, exists = iterator.NextBack()
	require.False(t, exists)
}

func TestIterator_InvalidatedByMutation(t *testing.T) {
	testList := newTestList(t, 1, 2, 3)

	iterator := testList.Iterator()
	_, exists := iterator.Next()
	require.True(t, exists)

	require.NoError(t, testList.PushBack(4))

	require.Panics(t, func() {
		iterator.Next()
	}, "a mutation should invalidate the iterator")

	// a fresh iterator observes the mutated list
	freshIterator := testList.Iterator()
	require.Equal(t, 4, freshIterator.Remaining())
}

func TestIterator_ExhaustedSurvivesMutation(t *testing.T) {
	testList := newTestList(t, 1)

	iterator := testList.Iterator()
	_, exists := iterator.Next()
	require.True(t, exists)

	testList.PopBack()

	// an exhausted iterator no longer touches the list, so it stays safe to call
	require.NotPanics(t, func() {
		_, exists = iterator.Next()
	})
	require.False(t, exists)
}

func newTestList(t *testing.T, values ...int) List[int] {
	t.Helper()

	testList := New[int](memory.NewHeapProvider())
	for _, value := range values {
		require.NoError(t, testList.PushBack(value))
	}

	return testList
}
