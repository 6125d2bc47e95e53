package waveform

import (
	"strings"
	"testing"

	"github.com/youssef-mansor/logic-sim/trace"
	"github.com/youssef-mansor/logic-sim/tvl"
)

type fakeSignal struct {
	id   uint64
	name string
}

func (f fakeSignal) ID() uint64   { return f.id }
func (f fakeSignal) Name() string { return f.name }

func TestWriteStructure(t *testing.T) {
	signals := []SignalView{fakeSignal{0, `A`}, fakeSignal{1, `Y`}}
	initial := map[uint64]tvl.Value{0: tvl.Zero, 1: tvl.Unknown}
	log := []trace.Record{
		{Time: 100, SignalName: `Y`, Old: tvl.Unknown, New: tvl.One},
		{Time: 100, SignalName: `A`, Old: tvl.Zero, New: tvl.One},
		{Time: 200, SignalName: `Y`, Old: tvl.One, New: tvl.Zero},
	}

	var sb strings.Builder
	if err := Write(&sb, signals, initial, log); err != nil {
		t.Fatal(err)
	}
	out := sb.String()

	for _, want := range []string{
		`$date`, `$timescale 1ps $end`,
		`$var wire 1 0 A $end`, `$var wire 1 1 Y $end`,
		`$dumpvars`, `00`, `X1`,
		`#100`, `11`, `#200`, `01`,
		`#300`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf(`output missing %q; got:\n%s`, want, out)
		}
	}
}

func TestWriteEmptyLogNoTrailingMarker(t *testing.T) {
	signals := []SignalView{fakeSignal{0, `A`}}
	initial := map[uint64]tvl.Value{0: tvl.Zero}
	var sb strings.Builder
	if err := Write(&sb, signals, initial, nil); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(sb.String(), `#`) {
		t.Errorf(`empty trace log should emit no time markers; got:\n%s`, sb.String())
	}
}
