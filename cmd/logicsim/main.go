// Command logicsim drives a fixed illustrative circuit — a full adder built
// from two half adders and an OR gate — through a short stimulus sequence,
// prints the resulting trace, and writes a VCD waveform file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"

	"github.com/youssef-mansor/logic-sim/component"
	"github.com/youssef-mansor/logic-sim/event"
	"github.com/youssef-mansor/logic-sim/sim"
	"github.com/youssef-mansor/logic-sim/tvl"
)

func main() {
	waveformPath := flag.String(`waveform`, `full_adder.vcd`, `path to write the VCD waveform file`)
	verbose := flag.Bool(`verbose`, false, `enable structured operational logging to stderr`)
	flag.Parse()

	var opts []sim.Option
	opts = append(opts, sim.WithConsoleTrace(os.Stdout))
	if *verbose {
		zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		logger := logiface.New(izerolog.WithZerolog(zl))
		opts = append(opts, sim.WithLogger(logger))
	}

	s := sim.New(opts...)
	if err := run(s, *waveformPath); err != nil {
		fmt.Fprintln(os.Stderr, `logicsim:`, err)
		os.Exit(1)
	}
}

func run(s *sim.Simulator, waveformPath string) error {
	a, err := s.CreateSignal(`A`, tvl.Zero)
	if err != nil {
		return err
	}
	b, err := s.CreateSignal(`B`, tvl.Zero)
	if err != nil {
		return err
	}
	cin, err := s.CreateSignal(`Cin`, tvl.Zero)
	if err != nil {
		return err
	}
	sum1, err := s.CreateSignal(`Sum1`, tvl.Unknown)
	if err != nil {
		return err
	}
	carry1, err := s.CreateSignal(`Carry1`, tvl.Unknown)
	if err != nil {
		return err
	}
	sum, err := s.CreateSignal(`Sum`, tvl.Unknown)
	if err != nil {
		return err
	}
	carry2, err := s.CreateSignal(`Carry2`, tvl.Unknown)
	if err != nil {
		return err
	}
	cout, err := s.CreateSignal(`Cout`, tvl.Unknown)
	if err != nil {
		return err
	}

	xor1 := component.NewXor(s.NextID(), component.WithDelay(0))
	if err := xor1.ConnectInput(a); err != nil {
		return err
	}
	if err := xor1.ConnectInput(b); err != nil {
		return err
	}
	if err := xor1.ConnectOutput(sum1); err != nil {
		return err
	}
	if err := s.AddComponent(xor1); err != nil {
		return err
	}

	and1 := component.NewAnd(s.NextID(), component.WithDelay(0))
	if err := and1.ConnectInput(a); err != nil {
		return err
	}
	if err := and1.ConnectInput(b); err != nil {
		return err
	}
	if err := and1.ConnectOutput(carry1); err != nil {
		return err
	}
	if err := s.AddComponent(and1); err != nil {
		return err
	}

	xor2 := component.NewXor(s.NextID(), component.WithDelay(0))
	if err := xor2.ConnectInput(sum1); err != nil {
		return err
	}
	if err := xor2.ConnectInput(cin); err != nil {
		return err
	}
	if err := xor2.ConnectOutput(sum); err != nil {
		return err
	}
	if err := s.AddComponent(xor2); err != nil {
		return err
	}

	and2 := component.NewAnd(s.NextID(), component.WithDelay(0))
	if err := and2.ConnectInput(sum1); err != nil {
		return err
	}
	if err := and2.ConnectInput(cin); err != nil {
		return err
	}
	if err := and2.ConnectOutput(carry2); err != nil {
		return err
	}
	if err := s.AddComponent(and2); err != nil {
		return err
	}

	orGate := component.NewOr(s.NextID(), component.WithDelay(0))
	if err := orGate.ConnectInput(carry1); err != nil {
		return err
	}
	if err := orGate.ConnectInput(carry2); err != nil {
		return err
	}
	if err := orGate.ConnectOutput(cout); err != nil {
		return err
	}
	if err := s.AddComponent(orGate); err != nil {
		return err
	}

	s.EnableTrace()

	type combo struct{ a, b, cin tvl.Value }
	stimulus := []combo{
		{tvl.Zero, tvl.Zero, tvl.Zero},
		{tvl.One, tvl.Zero, tvl.Zero},
		{tvl.Zero, tvl.One, tvl.Zero},
		{tvl.One, tvl.One, tvl.Zero},
		{tvl.One, tvl.One, tvl.One},
	}
	now := uint64(0)
	for _, c := range stimulus {
		s.ScheduleEvent(event.New(now, a.ID(), c.a))
		s.ScheduleEvent(event.New(now, b.ID(), c.b))
		s.ScheduleEvent(event.New(now, cin.ID(), c.cin))
		now += 400
		if err := s.RunUntil(now); err != nil {
			return err
		}
	}

	if err := s.PrintTrace(os.Stdout); err != nil {
		return err
	}
	return s.DumpWaveform(waveformPath)
}
