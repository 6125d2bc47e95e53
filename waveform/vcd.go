// Package waveform serializes a simulator's trace log into the
// Value-Change-Dump (VCD) text format.
package waveform

import (
	"bufio"
	"fmt"
	"io"

	"github.com/youssef-mansor/logic-sim/trace"
	"github.com/youssef-mansor/logic-sim/tvl"
)

// SignalView is the read-only view of a registered signal the writer needs:
// its id and name. *signal.Signal satisfies this directly.
type SignalView interface {
	ID() uint64
	Name() string
}

func valueToChar(v tvl.Value) byte {
	switch v {
	case tvl.Zero:
		return '0'
	case tvl.One:
		return '1'
	default:
		return 'X'
	}
}

// Write serializes a VCD file to w: a header, one $var declaration per
// signal, a $dumpvars block from the initial-value snapshot, and one #<t>
// marker per distinct time in the trace log followed by the value changes
// at that time. A trailing "#<last_time+100>" marker is emitted only if the
// log is non-empty.
func Write(w io.Writer, signals []SignalView, initial map[uint64]tvl.Value, log []trace.Record) error {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "$date\n  Digital Logic Simulator\n$end\n$timescale 1ps $end\n")

	fmt.Fprint(bw, "$scope module top $end\n")
	for _, sig := range signals {
		fmt.Fprintf(bw, "$var wire 1 %d %s $end\n", sig.ID(), sig.Name())
	}
	fmt.Fprint(bw, "$upscope $end\n$enddefinitions $end\n")

	fmt.Fprint(bw, "\n$dumpvars\n")
	for _, sig := range signals {
		fmt.Fprintf(bw, "%c%d\n", valueToChar(initial[sig.ID()]), sig.ID())
	}
	fmt.Fprint(bw, "$end\n")

	nameToID := make(map[string]uint64, len(signals))
	for _, sig := range signals {
		nameToID[sig.Name()] = sig.ID()
	}

	var lastTime uint64
	firstChange := true
	for _, rec := range log {
		if firstChange || rec.Time != lastTime {
			fmt.Fprintf(bw, "#%d\n", rec.Time)
			lastTime = rec.Time
			firstChange = false
		}
		id, ok := nameToID[rec.SignalName]
		if !ok {
			continue
		}
		fmt.Fprintf(bw, "%c%d\n", valueToChar(rec.New), id)
	}

	if len(log) > 0 {
		fmt.Fprintf(bw, "#%d\n", lastTime+100)
	}

	return bw.Flush()
}
