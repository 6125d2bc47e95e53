// Package signal implements the named, uniquely-identified nets that carry
// tri-valued values between components.
package signal

import (
	"errors"
	"fmt"

	"github.com/youssef-mansor/logic-sim/event"
	"github.com/youssef-mansor/logic-sim/tvl"
)

// ErrInvalidArgument is returned when a signal is constructed with an empty
// name or an out-of-range value.
var ErrInvalidArgument = errors.New(`signal: invalid argument`)

// Scheduler lets a Signal's observers schedule future events without this
// package importing the simulator that owns them.
type Scheduler interface {
	ScheduleEvent(e event.Event)
}

// Observer is anything that reacts to a Signal's value changing. Components
// satisfy this interface structurally; the signal package never imports
// component, which keeps the two packages free of an import cycle.
type Observer interface {
	Evaluate(sched Scheduler, now uint64)
}

// Signal is a net: a stable id, a unique name, a current value, and the
// ordered list of observers attached to it. The simulator is the only owner
// of Signal values; everything else borrows a pointer to one.
type Signal struct {
	id        uint64
	name      string
	value     tvl.Value
	observers []Observer
}

// New constructs a Signal with the given id, name, and initial value. The
// simulator is responsible for assigning globally-unique ids; New only
// validates the name and value.
func New(id uint64, name string, initial tvl.Value) (*Signal, error) {
	if name == "" {
		return nil, fmt.Errorf(`%w: signal name must not be empty`, ErrInvalidArgument)
	}
	if !initial.Valid() {
		return nil, fmt.Errorf(`%w: signal %q: invalid initial value %v`, ErrInvalidArgument, name, initial)
	}
	return &Signal{id: id, name: name, value: initial}, nil
}

// ID returns the signal's stable, globally-unique identifier.
func (s *Signal) ID() uint64 { return s.id }

// Name returns the signal's unique-within-simulator name.
func (s *Signal) Name() string { return s.name }

// Value returns the signal's current value.
func (s *Signal) Value() tvl.Value { return s.value }

// SetValue overwrites the signal's current value. Only the simulator
// kernel's Step calls this; everything else changes a signal's value by
// scheduling an event through Simulator.ScheduleEvent. It is exported
// (rather than unexported) solely because Step lives in a different
// package; callers outside sim should treat it as package-private by
// convention.
func (s *Signal) SetValue(v tvl.Value) error {
	if !v.Valid() {
		return fmt.Errorf(`%w: signal %q: invalid value %v`, ErrInvalidArgument, s.name, v)
	}
	s.value = v
	return nil
}

// AttachObserver appends o to the signal's observer list. Order is insertion
// order; the caller must not attach the same observer to the same signal
// twice.
func (s *Signal) AttachObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// Observers returns the signal's observer list. The returned slice must not
// be mutated by callers.
func (s *Signal) Observers() []Observer {
	return s.observers
}
