// Package trace implements the simulator's in-memory record of value
// transitions, distinct from the structured operational log the kernel
// emits about its own behavior.
package trace

import (
	"fmt"
	"io"

	"github.com/youssef-mansor/logic-sim/tvl"
)

// Record is one observed value transition on a named signal.
type Record struct {
	Time       uint64
	SignalName string
	Old        tvl.Value
	New        tvl.Value
}

// String renders a Record the way the console trace prints it:
// "t=<time>ps: <name> <old> -> <new>".
func (r Record) String() string {
	return fmt.Sprintf(`t=%dps: %s %s -> %s`, r.Time, r.SignalName, r.Old, r.New)
}

// Log is an append-only sequence of Records, gated by an enabled flag.
type Log struct {
	enabled bool
	records []Record
}

// NewLog returns a disabled, empty Log.
func NewLog() *Log {
	return &Log{}
}

// Enable clears the log and turns recording on.
func (l *Log) Enable() {
	l.records = nil
	l.enabled = true
}

// Disable turns recording off without discarding accumulated records.
func (l *Log) Disable() {
	l.enabled = false
}

// Enabled reports whether the log is currently recording.
func (l *Log) Enabled() bool {
	return l.enabled
}

// Append adds r to the log if recording is enabled.
func (l *Log) Append(r Record) {
	if !l.enabled {
		return
	}
	l.records = append(l.records, r)
}

// Records returns the accumulated records. The returned slice must not be
// mutated by callers.
func (l *Log) Records() []Record {
	return l.records
}

// Print writes a fixed-width "Time(ps) | Signal | Change" table of the
// accumulated records to w.
func (l *Log) Print(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%-10s | %-16s | %s\n", `Time(ps)`, `Signal`, `Change`); err != nil {
		return err
	}
	for _, r := range l.records {
		if _, err := fmt.Fprintf(w, "%-10d | %-16s | %s -> %s\n", r.Time, r.SignalName, r.Old, r.New); err != nil {
			return err
		}
	}
	return nil
}
