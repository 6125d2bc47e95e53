package component

import (
	"testing"

	"github.com/youssef-mansor/logic-sim/event"
	"github.com/youssef-mansor/logic-sim/signal"
	"github.com/youssef-mansor/logic-sim/tvl"
)

func newWiredDFF(t *testing.T, opts ...DFFOption) (*DFF, *signal.Signal, *signal.Signal, *signal.Signal) {
	t.Helper()
	clk := mustSignal(t, 1, `CLK`, tvl.Zero)
	d := mustSignal(t, 2, `D`, tvl.Zero)
	q := mustSignal(t, 3, `Q`, tvl.Unknown)
	dff := NewDFF(10, opts...)
	if err := dff.ConnectClock(clk); err != nil {
		t.Fatal(err)
	}
	if err := dff.ConnectData(d); err != nil {
		t.Fatal(err)
	}
	if err := dff.ConnectQ(q); err != nil {
		t.Fatal(err)
	}
	return dff, clk, d, q
}

func TestDFFRisingEdgeCapture(t *testing.T) {
	// ConnectClock syncs lastClock to the clock's current (idle-low) value,
	// so the very first Evaluate call the kernel ever makes on this DFF — the
	// one triggered by the clock's actual 0->1 transition — must already
	// register as a rising edge, with no preceding warm-up call.
	dff, clk, d, q := newWiredDFF(t, WithDFFDelay(50))
	_ = d.SetValue(tvl.One)
	_ = clk.SetValue(tvl.One)
	sched := &fakeScheduler{}
	dff.Evaluate(sched, 100)
	want := event.New(150, q.ID(), tvl.One)
	if len(sched.scheduled) != 1 || sched.scheduled[0] != want {
		t.Fatalf(`scheduled %v, want [%+v]`, sched.scheduled, want)
	}
}

func TestDFFHoldsOnFallingEdge(t *testing.T) {
	dff, clk, _, q := newWiredDFF(t, WithDFFDelay(50))
	_ = q.SetValue(tvl.Zero)
	_ = clk.SetValue(tvl.One)
	sched := &fakeScheduler{}
	dff.Evaluate(sched, 0)
	if len(sched.scheduled) != 0 {
		t.Fatal(`D still Zero == Q, nothing should schedule`)
	}
	_ = q.SetValue(tvl.One) // make Q differ from D, so a falling-edge capture would schedule
	_ = clk.SetValue(tvl.Zero)
	dff.Evaluate(sched, 200)
	if len(sched.scheduled) != 0 {
		t.Fatalf(`falling edge with Rising trigger should not capture, got %v`, sched.scheduled)
	}
}

func TestDFFAsyncResetDominates(t *testing.T) {
	dff, clk, d, q := newWiredDFF(t, WithDFFDelay(50))
	rst := mustSignal(t, 4, `RST`, tvl.Zero)
	if err := dff.ConnectReset(rst); err != nil {
		t.Fatal(err)
	}
	_ = q.SetValue(tvl.One)
	_ = rst.SetValue(tvl.One)
	sched := &fakeScheduler{}
	dff.Evaluate(sched, 300)
	want := event.New(350, q.ID(), tvl.Zero)
	if len(sched.scheduled) != 1 || sched.scheduled[0] != want {
		t.Fatalf(`scheduled %v, want [%+v]`, sched.scheduled, want)
	}

	_ = q.SetValue(tvl.Zero)
	_ = clk.SetValue(tvl.One)
	sched2 := &fakeScheduler{}
	dff.Evaluate(sched2, 600)
	if len(sched2.scheduled) != 0 {
		t.Fatalf(`clock edge while reset asserted must not capture, got %v`, sched2.scheduled)
	}

	_ = d.SetValue(tvl.One)
	_ = rst.SetValue(tvl.Zero)
	sched3 := &fakeScheduler{}
	dff.Evaluate(sched3, 800)
	if len(sched3.scheduled) != 0 {
		t.Fatalf(`reset deassertion itself must not be a capture trigger, got %v`, sched3.scheduled)
	}

	_ = clk.SetValue(tvl.Zero)
	dff.Evaluate(sched3, 900)
	_ = clk.SetValue(tvl.One)
	dff.Evaluate(sched3, 1000)
	want2 := event.New(1050, q.ID(), tvl.One)
	if len(sched3.scheduled) != 1 || sched3.scheduled[0] != want2 {
		t.Fatalf(`scheduled %v, want [%+v]`, sched3.scheduled, want2)
	}
}

func TestDFFEnableGatesCapture(t *testing.T) {
	dff, clk, d, q := newWiredDFF(t, WithDFFDelay(10))
	en := mustSignal(t, 5, `EN`, tvl.Zero)
	if err := dff.ConnectEnable(en); err != nil {
		t.Fatal(err)
	}
	_ = d.SetValue(tvl.One)
	_ = clk.SetValue(tvl.One)
	sched := &fakeScheduler{}
	dff.Evaluate(sched, 0)
	if len(sched.scheduled) != 0 {
		t.Fatalf(`enable=0 should suppress capture, got %v`, sched.scheduled)
	}

	_ = clk.SetValue(tvl.Zero)
	dff.Evaluate(sched, 10)
	_ = en.SetValue(tvl.One)
	_ = clk.SetValue(tvl.One)
	dff.Evaluate(sched, 20)
	want := event.New(30, q.ID(), tvl.One)
	if len(sched.scheduled) != 1 || sched.scheduled[0] != want {
		t.Fatalf(`scheduled %v, want [%+v]`, sched.scheduled, want)
	}
}
