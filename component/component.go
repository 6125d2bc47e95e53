// Package component implements the evaluate-on-notification contract shared
// by combinational gates and the sequential D flip-flop.
package component

import (
	"errors"

	"github.com/youssef-mansor/logic-sim/signal"
)

// ErrInvalidArgument is returned when a component is asked to connect a nil
// signal.
var ErrInvalidArgument = errors.New(`component: invalid argument`)

// Component is a polymorphic circuit element: it reacts to a change on one
// of its connected signals by (re)computing an output and, if that output
// changed, scheduling a future event.
type Component interface {
	signal.Observer
	Delay() uint64
	ID() uint64
}
