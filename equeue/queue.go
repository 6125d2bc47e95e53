// Package equeue implements the simulator's time-ordered event queue: a
// container/heap min-heap keyed on Event.Time.
package equeue

import (
	"container/heap"
	"errors"

	"github.com/youssef-mansor/logic-sim/event"
)

// ErrEmpty is returned by PopNext and PeekTime when the queue has no events.
var ErrEmpty = errors.New(`equeue: queue is empty`)

// Queue is a min-priority queue of events ordered by Event.Time. Pop order
// among events sharing a timestamp is unspecified; the kernel's same-time
// batching removes any observable dependence on that order.
type Queue struct {
	h eventHeap
}

// New returns an empty Queue, ready to use.
func New() *Queue {
	return &Queue{}
}

// Schedule inserts e into the queue. It always succeeds.
func (q *Queue) Schedule(e event.Event) {
	heap.Push(&q.h, e)
}

// PopNext removes and returns the event with the smallest Time. It fails
// with ErrEmpty if the queue has no events.
func (q *Queue) PopNext() (event.Event, error) {
	if q.h.Len() == 0 {
		return event.Event{}, ErrEmpty
	}
	return heap.Pop(&q.h).(event.Event), nil
}

// PeekTime returns the Time of the next event to be popped, without removing
// it. It fails with ErrEmpty if the queue has no events.
func (q *Queue) PeekTime() (uint64, error) {
	if q.h.Len() == 0 {
		return 0, ErrEmpty
	}
	return q.h[0].Time, nil
}

// Len returns the number of events currently queued.
func (q *Queue) Len() int { return q.h.Len() }

// Empty reports whether the queue has no events.
func (q *Queue) Empty() bool { return q.h.Len() == 0 }

// eventHeap implements heap.Interface over event.Event, ordered by Time.
type eventHeap []event.Event

func (h eventHeap) Len() int           { return len(h) }
func (h eventHeap) Less(i, j int) bool { return h[i].Time < h[j].Time }
func (h eventHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(event.Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
