package equeue

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/youssef-mansor/logic-sim/event"
	"github.com/youssef-mansor/logic-sim/tvl"
)

func TestEmptyQueue(t *testing.T) {
	q := New()
	if !q.Empty() || q.Len() != 0 {
		t.Fatalf(`new queue should be empty`)
	}
	if _, err := q.PopNext(); !errors.Is(err, ErrEmpty) {
		t.Errorf(`PopNext on empty queue: got err %v, want ErrEmpty`, err)
	}
	if _, err := q.PeekTime(); !errors.Is(err, ErrEmpty) {
		t.Errorf(`PeekTime on empty queue: got err %v, want ErrEmpty`, err)
	}
}

func TestScheduleAndPopOrder(t *testing.T) {
	q := New()
	times := []uint64{300, 100, 200, 100, 0}
	for _, tm := range times {
		q.Schedule(event.New(tm, 1, tvl.One))
	}
	if q.Len() != len(times) {
		t.Fatalf(`Len() = %d, want %d`, q.Len(), len(times))
	}
	var popped []uint64
	for !q.Empty() {
		pt, err := q.PeekTime()
		if err != nil {
			t.Fatal(err)
		}
		e, err := q.PopNext()
		if err != nil {
			t.Fatal(err)
		}
		if e.Time != pt {
			t.Errorf(`PopNext().Time = %d, want PeekTime() %d`, e.Time, pt)
		}
		popped = append(popped, e.Time)
	}
	for i := 1; i < len(popped); i++ {
		if popped[i] < popped[i-1] {
			t.Fatalf(`pop sequence not non-decreasing: %v`, popped)
		}
	}
}

func TestRandomizedOrdering(t *testing.T) {
	q := New()
	r := rand.New(rand.NewSource(1))
	n := 500
	for i := 0; i < n; i++ {
		q.Schedule(event.New(uint64(r.Intn(1000)), uint64(i), tvl.Zero))
	}
	var last uint64
	for i := 0; i < n; i++ {
		e, err := q.PopNext()
		if err != nil {
			t.Fatal(err)
		}
		if e.Time < last {
			t.Fatalf(`pop %d: time %d < previous %d`, i, e.Time, last)
		}
		last = e.Time
	}
	if !q.Empty() {
		t.Fatal(`queue should be empty after popping all events`)
	}
}
