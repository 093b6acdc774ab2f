package changetracking

// itemSet is an insertion-ordered set whose membership is decided by a Comparer.
// It is never mutated once it is handed out by a constructor or a merge.
type itemSet[T any] struct {
	comparer Comparer[T]
	items    []T
	buckets  map[uint64][]int
}

func newItemSet[T any](comparer Comparer[T], items ...[]T) itemSet[T] {
	size := 0
	for _, group := range items {
		size += len(group)
	}

	s := itemSet[T]{
		comparer: comparer,
		items:    make([]T, 0, size),
		buckets:  make(map[uint64][]int, size),
	}

	for _, group := range items {
		for _, item := range group {
			s.add(item)
		}
	}

	return s
}

func (s *itemSet[T]) add(item T) {
	if s.contains(item) {
		return
	}

	hash := s.comparer.Hash(item)
	s.buckets[hash] = append(s.buckets[hash], len(s.items))
	s.items = append(s.items, item)
}

func (s itemSet[T]) contains(item T) bool {
	if len(s.items) == 0 {
		return false
	}

	for _, index := range s.buckets[s.comparer.Hash(item)] {
		if s.comparer.Equal(s.items[index], item) {
			return true
		}
	}

	return false
}

func (s itemSet[T]) len() int {
	return len(s.items)
}

// snapshot returns a copy of the items in insertion order.
func (s itemSet[T]) snapshot() []T {
	items := make([]T, len(s.items))
	copy(items, s.items)

	return items
}

// except returns a new set with the items of s that are not contained in other.
func (s itemSet[T]) except(other itemSet[T]) itemSet[T] {
	result := newItemSet[T](s.comparer)
	for _, item := range s.items {
		if !other.contains(item) {
			result.add(item)
		}
	}

	return result
}

func (s itemSet[T]) setEquals(other itemSet[T]) bool {
	if s.len() != other.len() {
		return false
	}

	for _, item := range s.items {
		if !other.contains(item) {
			return false
		}
	}

	return true
}
