// Package diag collects diagnostics produced while checking and running a
// Weft program and prints them through a schuko tracer.
package diag

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/you-not-fish/weft/internal/syntax"
)

// T traces to the global syntax tracer.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// Severity orders diagnostics from chatter to failure.
type Severity uint8

const (
	Debug Severity = iota
	Info
	Warning
	Error
	Off // above every reportable severity; used as a threshold only
)

var severityNames = [...]string{
	Debug:   "debug",
	Info:    "info",
	Warning: "warning",
	Error:   "error",
	Off:     "off",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return fmt.Sprintf("Severity(%d)", s)
}

// ParseSeverity maps a level name (off, error, warning, info, debug) to a
// threshold.
func ParseSeverity(s string) (Severity, bool) {
	for i, name := range severityNames {
		if strings.EqualFold(name, s) {
			return Severity(i), true
		}
	}
	return 0, false
}

// Phase names the processing stage that produced an entry.
type Phase string

const (
	PhaseSyntax Phase = "syntax"
	PhaseCheck  Phase = "check"
	PhaseRun    Phase = "run"
)

// Entry is a single diagnostic.
type Entry struct {
	Severity Severity
	Phase    Phase
	Pos      syntax.Pos
	Msg      string
}

// String formats the entry as "pos: severity: msg".
func (e Entry) String() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Severity, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Severity, e.Msg)
}

// Sink receives diagnostics.
type Sink interface {
	Report(e Entry)
}

// Discard is a Sink that drops every entry.
var Discard Sink = discard{}

type discard struct{}

func (discard) Report(Entry) {}

// TraceLevel maps a threshold onto the coarser levels of a tracer.
func TraceLevel(min Severity) tracing.TraceLevel {
	switch min {
	case Debug:
		return tracing.LevelDebug
	case Info, Warning:
		return tracing.LevelInfo
	}
	return tracing.LevelError
}

// Log records every entry of a run and prints those at or above its
// threshold through a tracer.
type Log struct {
	min     Severity
	trace   tracing.Trace
	entries []Entry
	counts  [Off]int
}

// NewLog creates a Log printing entries at or above min through t, and sets
// the trace level of t to match. A nil t selects the global syntax tracer.
func NewLog(t tracing.Trace, min Severity) *Log {
	if t == nil {
		t = T()
	}
	l := &Log{min: min}
	l.SetTracer(t)
	return l
}

// SetTracer replaces the tracer entries are printed through; nil only
// records.
func (l *Log) SetTracer(t tracing.Trace) {
	l.trace = t
	if t != nil {
		t.SetTraceLevel(TraceLevel(l.min))
	}
}

// Report records e.
func (l *Log) Report(e Entry) {
	l.entries = append(l.entries, e)
	if e.Severity >= Off {
		return
	}
	l.counts[e.Severity]++
	if l.trace == nil || e.Severity < l.min {
		return
	}
	switch e.Severity {
	case Debug:
		l.trace.Debugf("%s", e)
	case Info, Warning:
		l.trace.Infof("%s", e)
	default:
		l.trace.Errorf("%s", e)
	}
}

// Entries returns everything reported so far, in order.
func (l *Log) Entries() []Entry {
	return l.entries
}

// Count returns the number of entries with severity s.
func (l *Log) Count(s Severity) int {
	if s >= Off {
		return 0
	}
	return l.counts[s]
}

// Filter returns the entries with severity s.
func (l *Log) Filter(s Severity) []Entry {
	var list []Entry
	for _, e := range l.entries {
		if e.Severity == s {
			list = append(list, e)
		}
	}
	return list
}

// Reset forgets all recorded entries.
func (l *Log) Reset() {
	l.entries = nil
	l.counts = [Off]int{}
}
