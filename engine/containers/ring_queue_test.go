package containers

import (
	"errors"
	"testing"
)

func TestRingQueueFIFO(t *testing.T) {
	rq := NewRingQueue[string](2)
	if err := rq.Enqueue("a"); err != nil {
		t.Fatal(err)
	}
	if err := rq.Enqueue("b"); err != nil {
		t.Fatal(err)
	}
	if err := rq.Enqueue("c"); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("Enqueue on full queue: %v", err)
	}
	v, _ := rq.Dequeue()
	if v != "a" {
		t.Fatalf("Dequeue = %q", v)
	}
	// Wrap around.
	if err := rq.Enqueue("c"); err != nil {
		t.Fatal(err)
	}
	if rq.Len() != 2 {
		t.Fatalf("Len = %d", rq.Len())
	}
	for _, want := range []string{"b", "c"} {
		got, err := rq.Dequeue()
		if err != nil || got != want {
			t.Fatalf("Dequeue = %q, %v; want %q", got, err, want)
		}
	}
	if _, err := rq.Dequeue(); !errors.Is(err, ErrQueueEmpty) {
		t.Fatalf("Dequeue on empty queue: %v", err)
	}
}
