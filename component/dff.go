package component

import (
	"fmt"

	"github.com/youssef-mansor/logic-sim/event"
	"github.com/youssef-mansor/logic-sim/signal"
	"github.com/youssef-mansor/logic-sim/tvl"
)

// DefaultDFFDelay is the default DFF propagation delay, in picoseconds.
const DefaultDFFDelay uint64 = 100

// Edge selects which clock transition a DFF captures on.
type Edge int8

const (
	Rising Edge = iota
	Falling
	Both
)

func (e Edge) String() string {
	switch e {
	case Rising:
		return `rising`
	case Falling:
		return `falling`
	case Both:
		return `both`
	default:
		return fmt.Sprintf(`Edge(%d)`, int8(e))
	}
}

// DFFOption configures a DFF at construction time.
type DFFOption func(*dffConfig)

type dffConfig struct {
	delay    uint64
	hasDelay bool
	edge     Edge
}

// WithDFFDelay overrides a DFF's propagation delay.
func WithDFFDelay(delay uint64) DFFOption {
	return func(c *dffConfig) {
		c.delay = delay
		c.hasDelay = true
	}
}

// WithEdge selects the clock edge a DFF triggers on (default Rising).
func WithEdge(edge Edge) DFFOption {
	return func(c *dffConfig) { c.edge = edge }
}

// DFF is an edge-triggered D flip-flop with optional asynchronous reset and
// clock enable, per §4.E.
type DFF struct {
	id    uint64
	delay uint64
	edge  Edge

	clock     *signal.Signal
	data      *signal.Signal
	q         *signal.Signal
	asyncRst  *signal.Signal
	enable    *signal.Signal
	lastClock tvl.Value
}

// NewDFF constructs a DFF with the given id, default delay (DefaultDFFDelay)
// and default trigger edge (Rising), unless overridden with WithDFFDelay /
// WithEdge. lastClock starts Unknown, matching a not-yet-connected clock net;
// ConnectClock syncs it to the clock's actual value once one is attached.
func NewDFF(id uint64, opts ...DFFOption) *DFF {
	var c dffConfig
	c.delay = DefaultDFFDelay
	for _, opt := range opts {
		opt(&c)
	}
	return &DFF{id: id, delay: c.delay, edge: c.edge, lastClock: tvl.Unknown}
}

// ID returns the DFF's stable, globally-unique identifier.
func (d *DFF) ID() uint64 { return d.id }

// Delay returns the DFF's configured propagation delay in picoseconds.
func (d *DFF) Delay() uint64 { return d.delay }

// ConnectClock attaches sig as the DFF's clock input; the DFF is registered
// as an observer of sig so that any clock transition re-evaluates it.
// lastClock is synced to sig's current value immediately, so that the first
// real transition afterward is compared against the clock's actual idle
// level rather than Unknown, which would never satisfy Rising or Falling.
func (d *DFF) ConnectClock(sig *signal.Signal) error {
	if sig == nil {
		return fmt.Errorf(`%w: dff %d: nil clock signal`, ErrInvalidArgument, d.id)
	}
	d.clock = sig
	d.lastClock = sig.Value()
	sig.AttachObserver(d)
	return nil
}

// ConnectData sets the DFF's data input. It is sampled, not observed: a
// change to D alone does not re-evaluate the DFF.
func (d *DFF) ConnectData(sig *signal.Signal) error {
	if sig == nil {
		return fmt.Errorf(`%w: dff %d: nil data signal`, ErrInvalidArgument, d.id)
	}
	d.data = sig
	return nil
}

// ConnectQ sets the DFF's output signal.
func (d *DFF) ConnectQ(sig *signal.Signal) error {
	if sig == nil {
		return fmt.Errorf(`%w: dff %d: nil output signal`, ErrInvalidArgument, d.id)
	}
	d.q = sig
	return nil
}

// ConnectReset attaches sig as the DFF's asynchronous reset input; the DFF
// is registered as an observer of sig.
func (d *DFF) ConnectReset(sig *signal.Signal) error {
	if sig == nil {
		return fmt.Errorf(`%w: dff %d: nil reset signal`, ErrInvalidArgument, d.id)
	}
	d.asyncRst = sig
	sig.AttachObserver(d)
	return nil
}

// ConnectEnable attaches sig as the DFF's clock-enable input; the DFF is
// registered as an observer of sig.
func (d *DFF) ConnectEnable(sig *signal.Signal) error {
	if sig == nil {
		return fmt.Errorf(`%w: dff %d: nil enable signal`, ErrInvalidArgument, d.id)
	}
	d.enable = sig
	sig.AttachObserver(d)
	return nil
}

// detectEdge runs the edge detector against the clock's current value and
// advances lastClock, per the trigger table in §4.E.
func (d *DFF) detectEdge() bool {
	if d.clock == nil {
		return false
	}
	current := d.clock.Value()
	last := d.lastClock
	d.lastClock = current

	switch d.edge {
	case Rising:
		return last == tvl.Zero && current == tvl.One
	case Falling:
		return last == tvl.One && current == tvl.Zero
	case Both:
		return last != current && current != tvl.Unknown
	default:
		return false
	}
}

// Evaluate implements the DFF contract of §4.E: asynchronous reset
// dominates, then the edge detector gates whether D is sampled into Q.
func (d *DFF) Evaluate(sched signal.Scheduler, now uint64) {
	// detectEdge also advances lastClock; it must run even while reset is
	// asserted so a clock transition during reset isn't mistaken for an
	// edge once reset deasserts.
	edge := d.detectEdge()

	if d.asyncRst != nil && d.asyncRst.Value() == tvl.One {
		if d.q != nil && d.q.Value() != tvl.Zero {
			sched.ScheduleEvent(event.New(now+d.delay, d.q.ID(), tvl.Zero))
		}
		return
	}

	if !edge {
		return
	}

	if d.enable != nil && d.enable.Value() == tvl.Zero {
		return
	}

	if d.data == nil || d.q == nil {
		return
	}
	sampled := d.data.Value()
	if sampled == d.q.Value() {
		return
	}
	sched.ScheduleEvent(event.New(now+d.delay, d.q.ID(), sampled))
}
