package containers

// SparseSet stores one value per key in a densely packed slice so iteration
// touches contiguous memory. Removal swaps the last element into the hole.
type SparseSet[K comparable, V any] struct {
	keys   []K
	values []V
	index  map[K]int
}

func NewSparseSet[K comparable, V any]() *SparseSet[K, V] {
	return &SparseSet[K, V]{index: make(map[K]int)}
}

// Set inserts or replaces the value stored for key.
func (s *SparseSet[K, V]) Set(key K, value V) {
	if i, ok := s.index[key]; ok {
		s.values[i] = value
		return
	}
	s.index[key] = len(s.values)
	s.keys = append(s.keys, key)
	s.values = append(s.values, value)
}

// Get returns a pointer into the dense storage. The pointer is invalidated by
// the next Set or Remove.
func (s *SparseSet[K, V]) Get(key K) (*V, bool) {
	i, ok := s.index[key]
	if !ok {
		return nil, false
	}
	return &s.values[i], true
}

func (s *SparseSet[K, V]) Has(key K) bool {
	_, ok := s.index[key]
	return ok
}

// Remove deletes key and reports whether it was present.
func (s *SparseSet[K, V]) Remove(key K) bool {
	i, ok := s.index[key]
	if !ok {
		return false
	}
	last := len(s.values) - 1
	if i != last {
		s.keys[i] = s.keys[last]
		s.values[i] = s.values[last]
		s.index[s.keys[i]] = i
	}
	var zero V
	s.values[last] = zero
	s.keys = s.keys[:last]
	s.values = s.values[:last]
	delete(s.index, key)
	return true
}

func (s *SparseSet[K, V]) Len() int {
	return len(s.values)
}

// Keys returns the dense key slice. Callers must not modify it.
func (s *SparseSet[K, V]) Keys() []K {
	return s.keys
}

// Each visits every entry in dense order. Returning false stops the walk.
func (s *SparseSet[K, V]) Each(fn func(key K, value *V) bool) {
	for i := range s.values {
		if !fn(s.keys[i], &s.values[i]) {
			return
		}
	}
}

func (s *SparseSet[K, V]) Clear() {
	clear(s.values)
	s.keys = s.keys[:0]
	s.values = s.values[:0]
	clear(s.index)
}
