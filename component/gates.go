package component

import (
	"fmt"

	"github.com/youssef-mansor/logic-sim/event"
	"github.com/youssef-mansor/logic-sim/signal"
	"github.com/youssef-mansor/logic-sim/tvl"
)

// Default propagation delays, in picoseconds, per §4.D.
const (
	DefaultANDDelay uint64 = 100
	DefaultORDelay  uint64 = 100
	DefaultNOTDelay uint64 = 50
	DefaultXORDelay uint64 = 50
)

// GateOption configures a gate at construction time. A propagation delay of
// exactly 0 is meaningful input, so gates take options rather than a
// positional delay argument that would need a zero-value sentinel.
type GateOption func(*gateConfig)

type gateConfig struct {
	delay    uint64
	hasDelay bool
}

// WithDelay overrides a gate's propagation delay.
func WithDelay(delay uint64) GateOption {
	return func(c *gateConfig) {
		c.delay = delay
		c.hasDelay = true
	}
}

func resolveDelay(opts []GateOption, fallback uint64) uint64 {
	var c gateConfig
	for _, opt := range opts {
		opt(&c)
	}
	if c.hasDelay {
		return c.delay
	}
	return fallback
}

// gate is the shared base embedded by every combinational gate type: a
// stable id, a propagation delay, an ordered list of input signals, and a
// single output signal. self holds the concrete (*And, *Or, ...) value, so
// that ConnectInput attaches the type implementing Evaluate as the
// signal's observer rather than the embedded base, which does not.
type gate struct {
	id     uint64
	delay  uint64
	inputs []*signal.Signal
	output *signal.Signal
	self   signal.Observer
}

// ID returns the gate's stable, globally-unique identifier.
func (g *gate) ID() uint64 { return g.id }

// Delay returns the gate's configured propagation delay in picoseconds.
func (g *gate) Delay() uint64 { return g.delay }

// ConnectInput appends sig to the gate's input list and attaches the gate as
// one of sig's observers. Connecting the same signal twice registers the
// gate as an observer twice; callers must not do this.
func (g *gate) ConnectInput(sig *signal.Signal) error {
	if sig == nil {
		return fmt.Errorf(`%w: gate %d: nil input signal`, ErrInvalidArgument, g.id)
	}
	g.inputs = append(g.inputs, sig)
	sig.AttachObserver(g.self)
	return nil
}

// ConnectOutput sets the gate's output signal.
func (g *gate) ConnectOutput(sig *signal.Signal) error {
	if sig == nil {
		return fmt.Errorf(`%w: gate %d: nil output signal`, ErrInvalidArgument, g.id)
	}
	g.output = sig
	return nil
}

// emit schedules an output transition if the new value differs from the
// output signal's current value (glitch suppression, §4.D.3), and if an
// output signal is connected at all.
func (g *gate) emit(sched signal.Scheduler, now uint64, r tvl.Value) {
	if g.output == nil {
		return
	}
	if r == g.output.Value() {
		return
	}
	sched.ScheduleEvent(event.New(now+g.delay, g.output.ID(), r))
}

func (g *gate) inputValues() []tvl.Value {
	vs := make([]tvl.Value, len(g.inputs))
	for i, in := range g.inputs {
		vs[i] = in.Value()
	}
	return vs
}

// And is a tri-valued AND gate. It is a no-op until at least two inputs are
// connected.
type And struct{ gate }

// NewAnd constructs an AND gate with the given id and default delay
// (DefaultANDDelay), unless overridden with WithDelay.
func NewAnd(id uint64, opts ...GateOption) *And {
	g := &And{gate{id: id, delay: resolveDelay(opts, DefaultANDDelay)}}
	g.self = g
	return g
}

// Evaluate recomputes the gate's output from its current inputs.
func (g *And) Evaluate(sched signal.Scheduler, now uint64) {
	if len(g.inputs) < 2 {
		return
	}
	g.emit(sched, now, tvl.And(g.inputValues()...))
}

// Or is a tri-valued OR gate. It is a no-op until at least two inputs are
// connected.
type Or struct{ gate }

// NewOr constructs an OR gate with the given id and default delay
// (DefaultORDelay), unless overridden with WithDelay.
func NewOr(id uint64, opts ...GateOption) *Or {
	g := &Or{gate{id: id, delay: resolveDelay(opts, DefaultORDelay)}}
	g.self = g
	return g
}

// Evaluate recomputes the gate's output from its current inputs.
func (g *Or) Evaluate(sched signal.Scheduler, now uint64) {
	if len(g.inputs) < 2 {
		return
	}
	g.emit(sched, now, tvl.Or(g.inputValues()...))
}

// Not is a tri-valued NOT (inverter) gate. It uses the first connected
// input; it is a no-op until one is connected.
type Not struct{ gate }

// NewNot constructs a NOT gate with the given id and default delay
// (DefaultNOTDelay), unless overridden with WithDelay.
func NewNot(id uint64, opts ...GateOption) *Not {
	g := &Not{gate{id: id, delay: resolveDelay(opts, DefaultNOTDelay)}}
	g.self = g
	return g
}

// Evaluate recomputes the gate's output from its current input.
func (g *Not) Evaluate(sched signal.Scheduler, now uint64) {
	if len(g.inputs) < 1 {
		return
	}
	g.emit(sched, now, tvl.Not(g.inputs[0].Value()))
}

// Xor is a tri-valued XOR gate over any number of inputs. It is a no-op
// until at least two inputs are connected.
type Xor struct{ gate }

// NewXor constructs an XOR gate with the given id and default delay
// (DefaultXORDelay), unless overridden with WithDelay.
func NewXor(id uint64, opts ...GateOption) *Xor {
	g := &Xor{gate{id: id, delay: resolveDelay(opts, DefaultXORDelay)}}
	g.self = g
	return g
}

// Evaluate recomputes the gate's output from its current inputs.
func (g *Xor) Evaluate(sched signal.Scheduler, now uint64) {
	if len(g.inputs) < 2 {
		return
	}
	g.emit(sched, now, tvl.Xor(g.inputValues()...))
}
