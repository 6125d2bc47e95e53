// Package event defines the simulator's scheduled-change record.
package event

import (
	"fmt"

	"github.com/youssef-mansor/logic-sim/tvl"
)

// Event is an immutable (time, signal, new value) triple. Time is simulated
// time in picoseconds, measured from the simulator's epoch of 0.
type Event struct {
	Time     uint64
	SignalID uint64
	Value    tvl.Value
}

// New constructs an Event. It does not validate Value against tvl's domain;
// that is the signal's job when the kernel applies the event (SPEC_FULL.md
// §4.H), since the event alone has no way to surface a construction error
// without complicating every call site that merely schedules a known-valid
// transition.
func New(t uint64, signalID uint64, v tvl.Value) Event {
	return Event{Time: t, SignalID: signalID, Value: v}
}

// String renders an Event for trace lines and debugging, e.g. "t=150ps
// signal=3 -> 1".
func (e Event) String() string {
	return fmt.Sprintf(`t=%dps signal=%d -> %s`, e.Time, e.SignalID, e.Value)
}
