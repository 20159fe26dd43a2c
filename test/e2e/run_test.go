package e2e

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/you-not-fish/weft/internal/diag"
	"github.com/you-not-fish/weft/internal/interp"
	"github.com/you-not-fish/weft/internal/syntax"
	"github.com/you-not-fish/weft/internal/types2"
)

// TestE2E runs end-to-end tests for all .weft files in testdata/.
// Each test:
//  1. Runs the full pipeline: parse → analyze → run
//  2. Captures the program output
//  3. Compares output against the .golden file
func TestE2E(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*.weft")
	if err != nil {
		t.Fatal(err)
	}
	if len(testFiles) == 0 {
		t.Fatal("no .weft test files found in testdata/")
	}

	for _, testFile := range testFiles {
		name := strings.TrimSuffix(filepath.Base(testFile), ".weft")
		t.Run(name, func(t *testing.T) {
			runE2ETest(t, testFile)
		})
	}
}

// runE2ETest runs a single end-to-end test.
func runE2ETest(t *testing.T, weftFile string) {
	t.Helper()

	goldenFile := strings.TrimSuffix(weftFile, ".weft") + ".golden"
	expected, err := os.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}

	got := run(t, weftFile)
	want := string(expected)
	if got != want {
		t.Errorf("output mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

// run parses, analyzes and runs weftFile in-process and returns its output.
func run(t *testing.T, weftFile string) string {
	t.Helper()

	f, err := os.Open(weftFile)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var parseErrs []string
	parseErrh := func(pos syntax.Pos, msg string) {
		parseErrs = append(parseErrs, pos.String()+": "+msg)
	}
	p := syntax.NewParser(weftFile, f, parseErrh)
	ast := p.Parse()
	if len(parseErrs) > 0 {
		t.Fatalf("parse errors:\n%s", strings.Join(parseErrs, "\n"))
	}

	// Analysis must succeed; warnings are logged only.
	var trace bytes.Buffer
	log := diag.NewLog(bufferTracer(&trace), diag.Warning)
	table, err := types2.Check(ast, &types2.Config{Diag: log})
	if err != nil {
		t.Fatalf("analysis failed: %v", err)
	}

	var out bytes.Buffer
	res := interp.Run(ast, table, &interp.Config{
		Output: &out,
		Diag:   log,
		Rand:   interp.NewRand(1),
	})
	if res.Err != nil {
		t.Fatalf("writing output: %v", res.Err)
	}
	if trace.Len() > 0 {
		t.Logf("diagnostics:\n%s", trace.String())
	}
	return out.String()
}

// bufferTracer returns a go-logger tracer writing to w.
func bufferTracer(w *bytes.Buffer) tracing.Trace {
	tr := gologadapter.New()
	tr.SetOutput(w)
	return tr
}

// TestE2EErrorsDoNotStopTheRun checks that runtime errors are reported while
// later statements still run.
func TestE2EErrorsDoNotStopTheRun(t *testing.T) {
	var trace bytes.Buffer
	log := diag.NewLog(bufferTracer(&trace), diag.Warning)

	p := syntax.NewParser("placeholders.weft", strings.NewReader(`out rpl("abc", "", "x")
out "next"
`), nil)
	ast := p.Parse()
	table, err := types2.Check(ast, &types2.Config{Diag: log})
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	res := interp.Run(ast, table, &interp.Config{Output: &out, Diag: log, Rand: interp.NewRand(1)})
	if got := out.String(); got != "abc\nnext\n" {
		t.Errorf("output = %q", got)
	}
	if len(res.Errors) != 1 || res.Errors[0].Code != interp.EmptyReplaceTarget {
		t.Errorf("errors = %v, want one EmptyReplaceTarget", res.Errors)
	}
	if !strings.Contains(trace.String(), "placeholders.weft:1:") {
		t.Errorf("diagnostics = %q, want an entry positioned in placeholders.weft", trace.String())
	}
}
