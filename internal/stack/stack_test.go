package stack

import (
	"testing"
)

func TestStack_New(t *testing.T) {
	s := New[int]()

	if !s.IsEmpty() {
		t.Error("New() stack should be empty")
	}

	if s.Size() != 0 {
		t.Errorf("New() stack size = %d, want 0", s.Size())
	}
}

func TestStack_ZeroValue(t *testing.T) {
	var s Stack[string]

	s.Push("a")
	val, ok := s.Pop()
	if !ok || val != "a" {
		t.Errorf("Pop() = %q, %t, want \"a\", true", val, ok)
	}
}

func TestStack_PushAndPop(t *testing.T) {
	s := NewWithCapacity[int](4)

	s.Push(1)
	s.Push(2, 3)

	if s.Size() != 3 {
		t.Errorf("Push() stack size = %d, want 3", s.Size())
	}

	for _, want := range []int{3, 2, 1} {
		val, ok := s.Pop()
		if !ok || val != want {
			t.Errorf("Pop() = %d, %t, want %d, true", val, ok, want)
		}
	}

	val, ok := s.Pop()
	if ok || val != 0 {
		t.Errorf("Pop() from empty stack = %d, %t, want 0, false", val, ok)
	}
}

func TestStack_FromTop(t *testing.T) {
	s := New[string]()
	s.Push("root", "parent", "child")

	tests := []struct {
		depth  int
		want   string
		wantOK bool
	}{
		{depth: 0, want: "child", wantOK: true},
		{depth: 1, want: "parent", wantOK: true},
		{depth: 2, want: "root", wantOK: true},
		{depth: 3, want: "", wantOK: false},
		{depth: -1, want: "", wantOK: false},
	}

	for _, tt := range tests {
		got, ok := s.FromTop(tt.depth)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("FromTop(%d) = %q, %t, want %q, %t", tt.depth, got, ok, tt.want, tt.wantOK)
		}
	}

	if s.Size() != 3 {
		t.Errorf("FromTop() changed stack size to %d, want 3", s.Size())
	}
}

func TestStack_Peek(t *testing.T) {
	s := New[string]()

	val, ok := s.Peek()
	if ok || val != "" {
		t.Errorf("Peek() on empty stack = %q, %t, want \"\", false", val, ok)
	}

	s.Push("first", "second")

	val, ok = s.Peek()
	if !ok || val != "second" {
		t.Errorf("Peek() = %q, %t, want \"second\", true", val, ok)
	}
}

func TestStack_PeekRef(t *testing.T) {
	s := New[int]()

	if ref := s.PeekRef(); ref != nil {
		t.Error("PeekRef() on empty stack should return nil")
	}

	s.Push(42, 100)

	ref := s.PeekRef()
	if ref == nil {
		t.Fatal("PeekRef() should not return nil for non-empty stack")
	}

	*ref = 200

	val, _ := s.Peek()
	if val != 200 {
		t.Errorf("After modifying through PeekRef(), top element = %d, want 200", val)
	}
}
