package stack

// Stack is a LIFO of frames. The zero value is ready to use.
type Stack[T any] struct {
	items []T
}

func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// NewWithCapacity reduces allocations when the expected depth is known.
func NewWithCapacity[T any](capacity int) *Stack[T] {
	return &Stack[T]{
		items: make([]T, 0, capacity),
	}
}

// Push adds elements in order with the last element at the top.
func (s *Stack[T]) Push(items ...T) {
	s.items = append(s.items, items...)
}

func (s *Stack[T]) Pop() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}

	index := len(s.items) - 1
	item := s.items[index]
	var zero T
	s.items[index] = zero
	s.items = s.items[:index]
	return item, true
}

func (s *Stack[T]) Peek() (T, bool) {
	return s.FromTop(0)
}

// FromTop returns the element depth positions below the top; depth 0 is the top.
func (s *Stack[T]) FromTop(depth int) (T, bool) {
	if depth < 0 || depth >= len(s.items) {
		var zero T
		return zero, false
	}

	return s.items[len(s.items)-1-depth], true
}

// PeekRef allows modifying the top element in place.
func (s *Stack[T]) PeekRef() *T {
	if len(s.items) == 0 {
		return nil
	}

	return &s.items[len(s.items)-1]
}

func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

func (s *Stack[T]) Size() int {
	return len(s.items)
}
