// Package interp executes analyzed Weft programs, producing output lines.
package interp

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/you-not-fish/weft/internal/diag"
	"github.com/you-not-fish/weft/internal/syntax"
	"github.com/you-not-fish/weft/internal/types"
)

// Defaults used when the corresponding Config field is zero.
const (
	DefaultMaxCallDepth = 256
	DefaultPlaceholder  = "<?>"
)

// Config specifies the configuration for a run.
type Config struct {
	// Output receives each line as soon as it is produced.
	// If nil, lines are only collected in the Result.
	Output io.Writer

	// Diag receives runtime errors, warnings and trace entries.
	// If nil, nothing is reported.
	Diag diag.Sink

	// Rand is the source for rnd. If nil, a time-seeded source is used.
	Rand *rand.Rand

	// MaxCallDepth limits nested routine calls.
	// If zero, DefaultMaxCallDepth is used.
	MaxCallDepth int

	// Placeholder is rendered for values that cannot be shown as text.
	// If empty, DefaultPlaceholder is used.
	Placeholder string
}

// Result holds the outcome of a run.
type Result struct {
	Lines  []string        // output lines, without newlines
	Errors []*RuntimeError // runtime errors in the order they occurred
	Err    error           // first error writing to Config.Output
}

// NewRand returns a PCG source for seed. A zero seed picks a time-based
// seed.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// interpreter holds the state of a single run.
type interpreter struct {
	conf  Config
	table *types.Table
	out   emitter
	depth int // nested routine calls

	errors []*RuntimeError
}

// Run executes prog against table, which is normally the table returned by
// semantic analysis. Statements run in source order; a runtime error
// abandons only the expression or call that caused it. The table is
// updated in place. A nil table starts empty.
func Run(prog *syntax.Program, table *types.Table, conf *Config) *Result {
	in := &interpreter{table: table}
	if conf != nil {
		in.conf = *conf
	}
	if in.table == nil {
		in.table = types.NewTable()
	}
	if in.conf.Rand == nil {
		in.conf.Rand = NewRand(0)
	}
	if in.conf.MaxCallDepth <= 0 {
		in.conf.MaxCallDepth = DefaultMaxCallDepth
	}
	if in.conf.Placeholder == "" {
		in.conf.Placeholder = DefaultPlaceholder
	}
	in.out.w = in.conf.Output

	in.debugf(syntax.Pos{}, "beginning generation")
	if prog != nil {
		in.stmts(prog.Stmts)
	}
	in.debugf(syntax.Pos{}, "generation finished with %d runtime errors", len(in.errors))

	return &Result{Lines: in.out.lines, Errors: in.errors, Err: in.out.err}
}

// errorf records a runtime error.
func (in *interpreter) errorf(pos syntax.Pos, code Code, format string, args ...interface{}) {
	err := &RuntimeError{Pos: pos, Code: code, Msg: fmt.Sprintf(format, args...)}
	in.errors = append(in.errors, err)
	in.report(diag.Error, pos, err.Msg)
}

func (in *interpreter) warnf(pos syntax.Pos, format string, args ...interface{}) {
	in.report(diag.Warning, pos, fmt.Sprintf(format, args...))
}

func (in *interpreter) debugf(pos syntax.Pos, format string, args ...interface{}) {
	in.report(diag.Debug, pos, fmt.Sprintf(format, args...))
}

func (in *interpreter) report(sev diag.Severity, pos syntax.Pos, msg string) {
	if in.conf.Diag != nil {
		in.conf.Diag.Report(diag.Entry{Severity: sev, Phase: diag.PhaseRun, Pos: pos, Msg: msg})
	}
}
