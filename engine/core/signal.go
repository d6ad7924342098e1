package core

// Subscription identifies a connected slot. It is the only way to disconnect.
type Subscription uint64

// Slot handles one emission. Returning true marks the value as handled and
// stops it from reaching slots connected later.
type Slot[T any] func(value T) bool

type connection[T any] struct {
	id   Subscription
	slot Slot[T]
}

// Signal is an ordered list of slots. It is not safe for concurrent use; the
// engine emits every signal from the main thread.
type Signal[T any] struct {
	slots  []connection[T]
	nextID Subscription
}

// Connect appends slot and returns the handle needed to remove it.
func (s *Signal[T]) Connect(slot Slot[T]) Subscription {
	s.nextID++
	s.slots = append(s.slots, connection[T]{id: s.nextID, slot: slot})
	return s.nextID
}

// ConnectFunc adapts a handler that never consumes the value.
func (s *Signal[T]) ConnectFunc(fn func(value T)) Subscription {
	return s.Connect(func(value T) bool {
		fn(value)
		return false
	})
}

// Disconnect removes the slot and reports whether it was connected.
func (s *Signal[T]) Disconnect(id Subscription) bool {
	for i, c := range s.slots {
		if c.id == id {
			s.slots = append(s.slots[:i], s.slots[i+1:]...)
			return true
		}
	}
	return false
}

// Emit calls the slots in connection order until one returns true, and
// reports whether the value was handled.
func (s *Signal[T]) Emit(value T) bool {
	// slots may disconnect themselves while we iterate
	snapshot := append([]connection[T](nil), s.slots...)
	for _, c := range snapshot {
		if c.slot(value) {
			return true
		}
	}
	return false
}

func (s *Signal[T]) Len() int {
	return len(s.slots)
}

func (s *Signal[T]) DisconnectAll() {
	s.slots = nil
}
