// Package sim implements the simulator kernel: signal/component
// registration, the event queue, the same-timestamp batching algorithm, the
// trace log, console tracing, and an optional structured operational
// logger.
package sim

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"

	"github.com/youssef-mansor/logic-sim/component"
	"github.com/youssef-mansor/logic-sim/equeue"
	"github.com/youssef-mansor/logic-sim/event"
	"github.com/youssef-mansor/logic-sim/signal"
	"github.com/youssef-mansor/logic-sim/trace"
	"github.com/youssef-mansor/logic-sim/tvl"
	"github.com/youssef-mansor/logic-sim/waveform"
)

// Error taxonomy, tested with errors.Is and wrapped with fmt.Errorf("%w: ...")
// for context, per the sentinel-error convention this module follows
// throughout.
var (
	ErrInvalidArgument = errors.New(`sim: invalid argument`)
	ErrDuplicateName   = errors.New(`sim: duplicate signal name`)
	ErrEmpty           = errors.New(`sim: event queue is empty`)
	ErrUnknownSignal   = errors.New(`sim: unknown signal`)
	ErrIO              = errors.New(`sim: i/o error`)
)

// Option configures a Simulator at construction time.
type Option func(*config)

type config struct {
	logger        *logiface.Logger[*izerolog.Event]
	consoleTrace  bool
	consoleWriter io.Writer
}

// WithLogger attaches a structured operational logger. A nil Simulator
// logger (the default, when this option is never supplied) disables
// operational logging entirely; the kernel remains fully usable without it.
func WithLogger(logger *logiface.Logger[*izerolog.Event]) Option {
	return func(c *config) { c.logger = logger }
}

// WithConsoleTrace enables the "t=<now>ps: <name> <old> -> <new>" console
// line per transition, written to w (os.Stdout if w is nil). Lines are
// written only while the trace log is recording (see EnableTrace).
func WithConsoleTrace(w io.Writer) Option {
	return func(c *config) {
		c.consoleTrace = true
		c.consoleWriter = w
	}
}

// Simulator owns the canonical collections of signals and components, the
// event queue, and the simulated clock. It assumes single-goroutine access.
type Simulator struct {
	now uint64

	signalsByID   map[uint64]*signal.Signal
	signalsByName map[string]*signal.Signal
	components    []component.Component
	nextID        uint64

	queue *equeue.Queue

	initial map[uint64]tvl.Value

	traceLog      *trace.Log
	consoleTrace  bool
	consoleWriter io.Writer

	logger *logiface.Logger[*izerolog.Event]
}

// New constructs an empty, ready-to-use Simulator.
func New(opts ...Option) *Simulator {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	consoleWriter := c.consoleWriter
	if c.consoleTrace && consoleWriter == nil {
		consoleWriter = os.Stdout
	}
	return &Simulator{
		signalsByID:   make(map[uint64]*signal.Signal),
		signalsByName: make(map[string]*signal.Signal),
		queue:         equeue.New(),
		initial:       make(map[uint64]tvl.Value),
		traceLog:      trace.NewLog(),
		consoleTrace:  c.consoleTrace,
		consoleWriter: consoleWriter,
		logger:        c.logger,
	}
}

// Now returns the simulator's current simulated time, in picoseconds.
func (s *Simulator) Now() uint64 { return s.now }

// NextID hands out a single monotonic id shared by signals and components,
// collapsing the one-counter-per-component-kind scheme a netlist author
// would otherwise need to keep consistent by hand. Component constructors
// take an explicit id (see package component), so callers building a
// component call NextID to obtain one before construction; CreateSignal
// calls it internally.
func (s *Simulator) NextID() uint64 {
	id := s.nextID
	s.nextID++
	return id
}

// CreateSignal constructs and registers a new signal, enforcing name
// uniqueness within this simulator and recording the initial value for
// later waveform emission.
func (s *Simulator) CreateSignal(name string, initial tvl.Value) (*signal.Signal, error) {
	if _, exists := s.signalsByName[name]; exists {
		err := fmt.Errorf(`%w: %q`, ErrDuplicateName, name)
		s.logErr(`create signal failed`, err)
		return nil, err
	}
	id := s.NextID()
	sig, err := signal.New(id, name, initial)
	if err != nil {
		wrapped := fmt.Errorf(`%w: %v`, ErrInvalidArgument, err)
		s.logErr(`create signal failed`, wrapped)
		return nil, wrapped
	}
	s.signalsByID[id] = sig
	s.signalsByName[name] = sig
	s.initial[id] = initial
	s.logDebug(`signal created`, func(b *logiface.Builder[*izerolog.Event]) {
		b.Str(`name`, name).Uint64(`id`, id)
	})
	return sig, nil
}

// AddComponent registers c with this simulator.
func (s *Simulator) AddComponent(c component.Component) error {
	if c == nil {
		err := fmt.Errorf(`%w: nil component`, ErrInvalidArgument)
		s.logErr(`add component failed`, err)
		return err
	}
	s.components = append(s.components, c)
	s.logDebug(`component added`, func(b *logiface.Builder[*izerolog.Event]) {
		b.Uint64(`id`, c.ID())
	})
	return nil
}

// SignalByName looks up a signal by name. The second return value is false
// if no such signal is registered; this never fails.
func (s *Simulator) SignalByName(name string) (*signal.Signal, bool) {
	sig, ok := s.signalsByName[name]
	return sig, ok
}

// SignalByID looks up a signal by id. The second return value is false if
// no such signal is registered; this never fails.
func (s *Simulator) SignalByID(id uint64) (*signal.Signal, bool) {
	sig, ok := s.signalsByID[id]
	return sig, ok
}

// ScheduleEvent enqueues e. It satisfies signal.Scheduler so that components
// can call it back during Evaluate.
func (s *Simulator) ScheduleEvent(e event.Event) {
	s.queue.Schedule(e)
}

// EnableTrace clears the trace log and turns recording on.
func (s *Simulator) EnableTrace() { s.traceLog.Enable() }

// DisableTrace turns trace recording off, preserving accumulated records.
func (s *Simulator) DisableTrace() { s.traceLog.Disable() }

// PrintTrace writes a fixed-width table of the accumulated trace log to w.
func (s *Simulator) PrintTrace(w io.Writer) error {
	return s.traceLog.Print(w)
}

// TraceRecords returns the accumulated trace log records, for consumption by
// the waveform package. The returned slice must not be mutated by callers.
func (s *Simulator) TraceRecords() []trace.Record {
	return s.traceLog.Records()
}

// InitialValues returns the snapshot of each signal's value at the time it
// was created, keyed by signal id, for consumption by the waveform package.
func (s *Simulator) InitialValues() map[uint64]tvl.Value {
	return s.initial
}

// Signals returns every registered signal, in an unspecified order.
func (s *Simulator) Signals() []*signal.Signal {
	out := make([]*signal.Signal, 0, len(s.signalsByID))
	for _, sig := range s.signalsByID {
		out = append(out, sig)
	}
	return out
}

// Step advances simulated time by one timestamp batch, per the kernel's
// central algorithm: peek the next event time, drain every event sharing
// that time (writing signals and appending trace records as it goes), and
// only then fire each affected signal's observers — once per occurrence,
// with no deduplication across signals.
func (s *Simulator) Step() error {
	if s.queue.Empty() {
		return nil
	}
	t, err := s.queue.PeekTime()
	if err != nil {
		wrapped := fmt.Errorf(`%w: %v`, ErrEmpty, err)
		s.logErr(`step failed`, wrapped)
		return wrapped
	}
	s.now = t

	var observerBatches [][]signal.Observer
	drained := 0
	for {
		peek, err := s.queue.PeekTime()
		if err != nil || peek != t {
			break
		}
		e, err := s.queue.PopNext()
		if err != nil {
			wrapped := fmt.Errorf(`%w: %v`, ErrEmpty, err)
			s.logErr(`step failed`, wrapped)
			return wrapped
		}
		drained++

		sig, ok := s.signalsByID[e.SignalID]
		if !ok {
			wrapped := fmt.Errorf(`%w: signal id %d`, ErrUnknownSignal, e.SignalID)
			s.logErr(`step failed`, wrapped)
			return wrapped
		}

		old := sig.Value()
		if err := sig.SetValue(e.Value); err != nil {
			wrapped := fmt.Errorf(`%w: %v`, ErrInvalidArgument, err)
			s.logErr(`step failed`, wrapped)
			return wrapped
		}

		if old != e.Value && s.traceLog.Enabled() {
			rec := trace.Record{Time: t, SignalName: sig.Name(), Old: old, New: e.Value}
			s.traceLog.Append(rec)
			if s.consoleTrace {
				fmt.Fprintln(s.consoleWriter, rec.String())
			}
		}

		observerBatches = append(observerBatches, sig.Observers())
	}

	fired := 0
	for _, batch := range observerBatches {
		for _, o := range batch {
			o.Evaluate(s, s.now)
			fired++
		}
	}

	s.logDebug(`step completed`, func(b *logiface.Builder[*izerolog.Event]) {
		b.Uint64(`now`, s.now).Int(`events_drained`, drained).Int(`observers_fired`, fired)
	})
	return nil
}

// RunUntil repeatedly steps while the queue is non-empty and its next
// event's time does not exceed deadline.
func (s *Simulator) RunUntil(deadline uint64) error {
	for {
		if s.queue.Empty() {
			return nil
		}
		t, err := s.queue.PeekTime()
		if err != nil {
			return fmt.Errorf(`%w: %v`, ErrEmpty, err)
		}
		if t > deadline {
			return nil
		}
		if err := s.Step(); err != nil {
			return err
		}
	}
}

// RunAll steps until the event queue is empty.
func (s *Simulator) RunAll() error {
	for !s.queue.Empty() {
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// DumpWaveform writes a VCD file capturing the initial value of every
// registered signal and every recorded trace transition to path.
func (s *Simulator) DumpWaveform(path string) error {
	f, err := os.Create(path)
	if err != nil {
		wrapped := fmt.Errorf(`%w: %v`, ErrIO, err)
		s.logErr(`dump waveform failed`, wrapped)
		return wrapped
	}
	defer f.Close()

	sigs := s.Signals()
	views := make([]waveform.SignalView, len(sigs))
	for i, sig := range sigs {
		views[i] = sig
	}
	records := s.traceLog.Records()

	if err := waveform.Write(f, views, s.initial, records); err != nil {
		wrapped := fmt.Errorf(`%w: %v`, ErrIO, err)
		s.logErr(`dump waveform failed`, wrapped)
		return wrapped
	}

	s.logInfo(`waveform dumped`, func(b *logiface.Builder[*izerolog.Event]) {
		b.Str(`path`, path).Int(`records`, len(records))
	})
	return nil
}

func (s *Simulator) logInfo(msg string, fn func(b *logiface.Builder[*izerolog.Event])) {
	if s.logger == nil {
		return
	}
	b := s.logger.Info()
	fn(b)
	b.Log(msg)
}

func (s *Simulator) logDebug(msg string, fn func(b *logiface.Builder[*izerolog.Event])) {
	if s.logger == nil {
		return
	}
	b := s.logger.Debug()
	fn(b)
	b.Log(msg)
}

func (s *Simulator) logErr(msg string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Err().Err(err).Log(msg)
}
