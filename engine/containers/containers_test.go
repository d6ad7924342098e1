package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingBufferQueue(t *testing.T) {
	rb := NewRingBuffer[int](2)
	require.NoError(t, rb.Enqueue(1))
	require.NoError(t, rb.Enqueue(2))
	assert.ErrorIs(t, rb.Enqueue(3), ErrQueueFull)

	v, err := rb.Peek()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = rb.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	v, _ = rb.Dequeue()
	assert.Equal(t, 2, v)

	_, err = rb.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)
}

func TestRingBufferPushEvictsOldest(t *testing.T) {
	rb := NewRingBuffer[int](3)
	for i := 1; i <= 5; i++ {
		rb.Push(i)
	}
	var got []int
	rb.Each(func(v int) { got = append(got, v) })
	assert.Equal(t, []int{3, 4, 5}, got)
	assert.True(t, rb.IsFull())
	assert.Equal(t, 5%3, rb.WriteIndex())

	rb.Reset()
	assert.True(t, rb.IsEmpty())
	assert.Equal(t, 3, rb.Cap())
}

func TestSparseSetSwapRemove(t *testing.T) {
	s := NewSparseSet[uint32, string]()
	s.Set(10, "a")
	s.Set(20, "b")
	s.Set(30, "c")
	s.Set(20, "B")

	v, ok := s.Get(20)
	require.True(t, ok)
	assert.Equal(t, "B", *v)

	assert.True(t, s.Remove(10))
	assert.False(t, s.Remove(10))
	assert.Equal(t, 2, s.Len())
	assert.ElementsMatch(t, []uint32{20, 30}, s.Keys())

	v, ok = s.Get(30)
	require.True(t, ok)
	assert.Equal(t, "c", *v)

	var visited []uint32
	s.Each(func(k uint32, _ *string) bool {
		visited = append(visited, k)
		return false
	})
	assert.Len(t, visited, 1)

	s.Clear()
	assert.Zero(t, s.Len())
	assert.False(t, s.Has(20))
}
