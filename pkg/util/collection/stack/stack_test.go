package stack

import "testing"

func TestStack_PushPop(t *testing.T) {
	s := NewStack[int]()
	s.Push(1)
	s.Push(2)
	s.Push(3)

	if got := s.Pop(); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}

	if got := s.Peek(0); got != 2 {
		t.Fatalf("expected top to be 2, got %d", got)
	}
}

func TestStack_UnwindTo(t *testing.T) {
	s := NewStack[int]()
	s.PushAll([]int{1, 2, 3, 4, 5})

	popped := s.UnwindTo(2)

	if s.Len() != 2 {
		t.Fatalf("expected length 2 after unwind, got %d", s.Len())
	}

	want := []int{5, 4, 3}
	if len(popped) != len(want) {
		t.Fatalf("expected %d popped items, got %d", len(want), len(popped))
	}

	for i, w := range want {
		if popped[i] != w {
			t.Fatalf("expected popped[%d]=%d, got %d", i, w, popped[i])
		}
	}
}

func TestStack_UnwindTo_NoOpWhenAlreadyShortEnough(t *testing.T) {
	s := NewStack[int]()
	s.PushAll([]int{1, 2})

	popped := s.UnwindTo(2)
	if popped != nil {
		t.Fatalf("expected no items popped, got %v", popped)
	}
}

func TestStack_UnwindTo_PanicsPastStackLength(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic unwinding past stack length")
		}
	}()

	s := NewStack[int]()
	s.Push(1)
	s.UnwindTo(5)
}
