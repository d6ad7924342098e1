package containers

import "errors"

var (
	ErrQueueFull  = errors.New("queue is full")
	ErrQueueEmpty = errors.New("queue is empty")
)

// RingBuffer is a fixed-capacity FIFO. Enqueue fails when full while Push
// overwrites the oldest element, which is what sliding windows want.
type RingBuffer[T any] struct {
	data       []T
	size       int
	readIndex  int
	writeIndex int
	count      int
}

// Create a new RingBuffer. Size must be positive.
func NewRingBuffer[T any](size int) *RingBuffer[T] {
	if size <= 0 {
		panic("containers: ring buffer size must be positive")
	}
	return &RingBuffer[T]{
		data: make([]T, size),
		size: size,
	}
}

// Enqueue adds an element to the queue
func (rb *RingBuffer[T]) Enqueue(value T) error {
	if rb.IsFull() {
		return ErrQueueFull
	}

	rb.data[rb.writeIndex] = value
	rb.writeIndex = (rb.writeIndex + 1) % rb.size
	rb.count++
	return nil
}

// Push adds an element, evicting the oldest one when the buffer is full.
func (rb *RingBuffer[T]) Push(value T) {
	rb.data[rb.writeIndex] = value
	rb.writeIndex = (rb.writeIndex + 1) % rb.size
	if rb.count == rb.size {
		rb.readIndex = rb.writeIndex
		return
	}
	rb.count++
}

// Dequeue removes and returns the front element in the queue
func (rb *RingBuffer[T]) Dequeue() (T, error) {
	var zero T
	if rb.IsEmpty() {
		return zero, ErrQueueEmpty
	}

	value := rb.data[rb.readIndex]
	rb.data[rb.readIndex] = zero
	rb.readIndex = (rb.readIndex + 1) % rb.size
	rb.count--
	return value, nil
}

// Peek returns the front element without removing it
func (rb *RingBuffer[T]) Peek() (T, error) {
	if rb.IsEmpty() {
		var zero T
		return zero, ErrQueueEmpty
	}
	return rb.data[rb.readIndex], nil
}

// Each calls fn on every buffered element, oldest first.
func (rb *RingBuffer[T]) Each(fn func(T)) {
	for i := 0; i < rb.count; i++ {
		fn(rb.data[(rb.readIndex+i)%rb.size])
	}
}

// WriteIndex is the slot the next Push will write to.
func (rb *RingBuffer[T]) WriteIndex() int {
	return rb.writeIndex
}

func (rb *RingBuffer[T]) Len() int {
	return rb.count
}

func (rb *RingBuffer[T]) Cap() int {
	return rb.size
}

// Reset empties the buffer without reallocating.
func (rb *RingBuffer[T]) Reset() {
	clear(rb.data)
	rb.readIndex = 0
	rb.writeIndex = 0
	rb.count = 0
}

// IsEmpty checks if the queue is empty
func (rb *RingBuffer[T]) IsEmpty() bool {
	return rb.count == 0
}

// IsFull checks if the queue is full
func (rb *RingBuffer[T]) IsFull() bool {
	return rb.count == rb.size
}
