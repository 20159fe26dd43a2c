package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/you-not-fish/weft/internal/config"
	"github.com/you-not-fish/weft/internal/diag"
	"github.com/you-not-fish/weft/internal/interp"
	"github.com/you-not-fish/weft/internal/syntax"
	"github.com/you-not-fish/weft/internal/types"
	"github.com/you-not-fish/weft/internal/types2"
)

const (
	promptMain = "weft> "
	promptCont = "  ... "
)

const replHelp = `Enter Weft statements. Symbols persist across inputs.
  :symbols   list the session's symbols
  :reset     forget all symbols
  :help      show this help
  :quit      leave the session
`

// session holds the state an interactive session keeps between inputs.
type session struct {
	conf  *config.Config
	out   io.Writer
	log   *diag.Log
	table *types.Table
	rand  *rand.Rand
	n     int // inputs evaluated, for positions
}

func newSession(conf *config.Config, out io.Writer, log *diag.Log) *session {
	return &session{
		conf:  conf,
		out:   out,
		log:   log,
		table: types.NewTable(),
		rand:  interp.NewRand(conf.Seed),
	}
}

// evalStatus is the outcome of evaluating one input.
type evalStatus int

const (
	evalOK         evalStatus = iota
	evalIncomplete            // more input needed; nothing was reported
	evalRejected              // syntax or semantic error; the session is unchanged
	evalRuntime               // ran with runtime errors
)

// eval parses, checks and runs src against the session table. The table is
// replaced only if src passes analysis.
func (s *session) eval(src string) evalStatus {
	filename := fmt.Sprintf("<input %d>", s.n+1)

	var errs []diag.Entry
	p := syntax.NewParser(filename, strings.NewReader(src), func(pos syntax.Pos, msg string) {
		errs = append(errs, diag.Entry{Severity: diag.Error, Phase: diag.PhaseSyntax, Pos: pos, Msg: msg})
	})
	prog := p.Parse()
	if p.Incomplete() {
		return evalIncomplete
	}
	s.n++
	if len(errs) > 0 {
		for _, e := range errs {
			s.log.Report(e)
		}
		return evalRejected
	}

	table, err := types2.Check(prog, &types2.Config{Diag: s.log, Table: s.table})
	if err != nil {
		return evalRejected
	}
	s.table = table

	res := interp.Run(prog, table, &interp.Config{
		Output:       s.out,
		Diag:         s.log,
		Rand:         s.rand,
		MaxCallDepth: s.conf.MaxCallDepth,
		Placeholder:  s.conf.Placeholder,
	})
	if len(res.Errors) > 0 {
		return evalRuntime
	}
	return evalOK
}

// command handles a ":" command. It reports whether the session should end.
func (s *session) command(line string) (exit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case ":quit", ":q", ":exit":
		return true
	case ":symbols":
		if s.table.Len() == 0 {
			fmt.Fprintln(s.out, "no symbols")
		} else {
			fmt.Fprint(s.out, s.table)
		}
	case ":reset":
		s.table = types.NewTable()
		fmt.Fprintln(s.out, "session reset.")
	case ":help":
		fmt.Fprint(s.out, replHelp)
	default:
		fmt.Fprintf(s.out, "unknown command %s. Type :help for help.\n", fields[0])
	}
	return false
}

// runREPL runs an interactive session on the terminal.
func runREPL(conf *config.Config) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	// Load history (best-effort)
	if conf.History != "" {
		if f, err := os.Open(conf.History); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	fmt.Printf("Weft %s. Type :help for help.\n", Version)
	s := newSession(conf, os.Stdout, newLog(conf))

	var buf strings.Builder
	for {
		prompt := promptMain
		if buf.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			break
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			buf.Reset()
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitFailure
		}

		if buf.Len() == 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, ":") {
				ln.AppendHistory(trimmed)
				if s.command(trimmed) {
					break
				}
				continue
			}
		}

		buf.WriteString(line)
		buf.WriteByte('\n')
		if s.eval(buf.String()) == evalIncomplete {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(strings.TrimSpace(buf.String()), "\n", " "))
		buf.Reset()
	}

	// Persist history (best-effort)
	if conf.History != "" {
		if f, err := os.Create(conf.History); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return exitOK
}
