// Package main implements the Weft driver entry point.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/you-not-fish/weft/internal/config"
	"github.com/you-not-fish/weft/internal/diag"
	"github.com/you-not-fish/weft/internal/interp"
	"github.com/you-not-fish/weft/internal/syntax"
	"github.com/you-not-fish/weft/internal/types"
	"github.com/you-not-fish/weft/internal/types2"
)

// Driver flags
var (
	emitTokens  = flag.Bool("emit-tokens", false, "Output token stream")
	noASI       = flag.Bool("no-asi", false, "Disable automatic semicolon insertion")
	emitAST     = flag.Bool("emit-ast", false, "Output AST")
	astFormat   = flag.String("ast-format", "text", "AST output format (text, json or yaml)")
	checkOnly   = flag.Bool("check", false, "Run semantic analysis only")
	emitSymbols = flag.Bool("emit-symbols", false, "Run the program and output the symbol table instead of its output")
	seed        = flag.Uint64("seed", 0, "Seed for rnd (0 = time-based)")
	maxDepth    = flag.Int("max-depth", interp.DefaultMaxCallDepth, "Maximum nested routine calls")
	configPath  = flag.String("config", "", "Settings file (default ./"+config.FileName+" if present)")
	verbose     = flag.Bool("v", false, "Print debug diagnostics")
	version     = flag.Bool("version", false, "Print version")
	repl        = flag.Bool("repl", false, "Start an interactive session")
)

// Version information
const Version = "0.1.0-dev"

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1 // IO, syntax or semantic errors
	exitRuntime = 2 // the program ran but reported runtime errors
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Weft %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: weftc [options] <file.weft|file.yaml>\n")
		fmt.Fprintf(os.Stderr, "       weftc -repl\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if err := setupTracing(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitFailure)
	}

	if *version {
		fmt.Printf("weftc version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(exitOK)
	}

	conf, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitFailure)
	}

	if *repl {
		os.Exit(runREPL(conf))
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input file")
		fmt.Fprintln(os.Stderr, "usage: weftc [options] <file.weft|file.yaml>")
		os.Exit(exitFailure)
	}

	filename := args[0]

	// Handle -emit-tokens
	if *emitTokens {
		os.Exit(runEmitTokens(filename))
	}

	// Handle -emit-ast
	if *emitAST {
		os.Exit(runEmitAST(filename, conf))
	}

	// Handle -check
	if *checkOnly {
		os.Exit(runCheck(filename, conf))
	}

	// Handle -emit-symbols
	if *emitSymbols {
		os.Exit(runEmitSymbols(filename, conf))
	}

	os.Exit(runProgram(filename, conf))
}

// loadSettings reads the settings file and applies the flags given on the
// command line on top of it.
func loadSettings() (*config.Config, error) {
	var conf *config.Config
	var err error
	if *configPath != "" {
		conf, err = config.Load(*configPath)
	} else {
		conf, err = config.Find(".")
	}
	if err != nil {
		return nil, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			conf.Seed = *seed
		case "max-depth":
			conf.MaxCallDepth = *maxDepth
		case "v":
			if *verbose {
				conf.Trace = diag.Debug
			}
		}
	})
	if conf.MaxCallDepth <= 0 {
		return nil, fmt.Errorf("-max-depth must be positive, got %d", conf.MaxCallDepth)
	}
	return conf, nil
}

// setupTracing installs go-logger tracers as the global tracers.
func setupTracing() error {
	return gtrace.CreateTracers(gologadapter.GetAdapter())
}

// newLog creates the diagnostics log of a run. Entries are printed to stderr
// through the global syntax tracer at the configured trace level.
func newLog(conf *config.Config) *diag.Log {
	t := gtrace.SyntaxTracer
	t.SetOutput(os.Stderr)
	return diag.NewLog(t, conf.Trace)
}

// isYAML reports whether filename holds a YAML-encoded program.
func isYAML(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// readProgram parses a .weft source file or decodes a YAML program. Errors
// are reported to log; ok is false if there were any.
func readProgram(filename string, log diag.Sink) (prog *syntax.Program, ok bool) {
	f, err := os.Open(filename)
	if err != nil {
		log.Report(diag.Entry{Severity: diag.Error, Phase: diag.PhaseSyntax, Msg: err.Error()})
		return nil, false
	}
	defer f.Close()

	if isYAML(filename) {
		prog, err = syntax.DecodeYAML(f, filename)
		if err != nil {
			e := diag.Entry{Severity: diag.Error, Phase: diag.PhaseSyntax, Msg: err.Error()}
			var serr *syntax.SyntaxError
			if errors.As(err, &serr) {
				e.Pos, e.Msg = serr.Pos, serr.Msg
			}
			log.Report(e)
			return nil, false
		}
		return prog, true
	}

	failed := false
	errh := func(pos syntax.Pos, msg string) {
		failed = true
		log.Report(diag.Entry{Severity: diag.Error, Phase: diag.PhaseSyntax, Pos: pos, Msg: msg})
	}
	p := syntax.NewParser(filename, f, errh)
	if *noASI {
		p.SetASIEnabled(false)
	}
	prog = p.Parse()
	return prog, !failed
}

// analyze reads and checks filename.
func analyze(filename string, log diag.Sink) (*syntax.Program, *types.Table, bool) {
	prog, ok := readProgram(filename, log)
	if !ok {
		return nil, nil, false
	}
	table, err := types2.Check(prog, &types2.Config{Diag: log})
	if err != nil {
		return nil, nil, false
	}
	return prog, table, true
}

// execute runs an analyzed program, writing its output to w.
func execute(prog *syntax.Program, table *types.Table, conf *config.Config, w io.Writer, log diag.Sink) int {
	res := interp.Run(prog, table, &interp.Config{
		Output:       w,
		Diag:         log,
		Rand:         interp.NewRand(conf.Seed),
		MaxCallDepth: conf.MaxCallDepth,
		Placeholder:  conf.Placeholder,
	})
	if res.Err != nil {
		fmt.Fprintf(os.Stderr, "error: writing output: %v\n", res.Err)
		return exitFailure
	}
	if len(res.Errors) > 0 {
		return exitRuntime
	}
	return exitOK
}

// runProgram analyzes and runs the input file.
func runProgram(filename string, conf *config.Config) int {
	log := newLog(conf)
	prog, table, ok := analyze(filename, log)
	if !ok {
		return exitFailure
	}
	return execute(prog, table, conf, os.Stdout, log)
}

// runCheck analyzes the input file without running it.
func runCheck(filename string, conf *config.Config) int {
	if _, _, ok := analyze(filename, newLog(conf)); !ok {
		return exitFailure
	}
	return exitOK
}

// runEmitSymbols runs the input file and prints the final symbol table.
func runEmitSymbols(filename string, conf *config.Config) int {
	log := newLog(conf)
	prog, table, ok := analyze(filename, log)
	if !ok {
		return exitFailure
	}
	code := execute(prog, table, conf, io.Discard, log)
	fmt.Print(table)
	return code
}

// runEmitAST reads the input file and outputs the AST.
func runEmitAST(filename string, conf *config.Config) int {
	prog, ok := readProgram(filename, newLog(conf))
	if prog == nil {
		return exitFailure
	}

	// Output AST
	switch *astFormat {
	case "json":
		if err := syntax.FprintJSON(os.Stdout, prog); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitFailure
		}
	case "yaml":
		if err := syntax.EncodeYAML(os.Stdout, prog); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitFailure
		}
	case "text":
		syntax.Fprint(os.Stdout, prog)
	default:
		fmt.Fprintf(os.Stderr, "error: unknown AST format %q\n", *astFormat)
		return exitFailure
	}

	if !ok {
		return exitFailure
	}
	return exitOK
}

// runEmitTokens scans the input file and prints all tokens with positions.
func runEmitTokens(filename string) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitFailure
	}
	defer f.Close()

	var errs []string
	errh := func(line, col uint32, msg string) {
		errs = append(errs, fmt.Sprintf("%s:%d:%d: %s", filename, line, col, msg))
	}

	s := syntax.NewScanner(filename, f, errh)
	if *noASI {
		s.SetASIEnabled(false)
	}

	// Print header
	fmt.Printf("%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Printf("%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))

	for {
		s.Next()
		tok := s.Token()
		fmt.Printf("%-20s %-12s %s\n", s.Pos(), tok, formatLiteral(s.Literal()))

		if tok.IsEOF() {
			break
		}
	}

	// Print any errors
	if len(errs) > 0 {
		fmt.Println()
		fmt.Println("Errors:")
		for _, e := range errs {
			fmt.Printf("  %s\n", e)
		}
		return exitFailure
	}

	return exitOK
}

// formatLiteral formats a literal for display, escaping special characters.
func formatLiteral(lit string) string {
	if lit == "" {
		return "\"\""
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		case 0:
			b.WriteString("\\0")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}
