package syntax

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// readAll drains src and returns each character with its line:col.
func readAll(src *source) []string {
	var got []string
	for src.ch >= 0 {
		got = append(got, fmt.Sprintf("%q@%d:%d", src.ch, src.line, src.col))
		src.nextch()
	}
	return got
}

func TestSourcePositions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"empty", "", nil},
		{"call", "go!", []string{`'g'@1:1`, `'o'@1:2`, `'!'@1:3`}},
		{"newline", "a\nb", []string{`'a'@1:1`, `'\n'@1:2`, `'b'@2:1`}},
		{"blank_line", "\n\n$", []string{`'\n'@1:1`, `'\n'@2:1`, `'$'@3:1`}},
		// columns count bytes: ö is two bytes, 世 three
		{"multibyte", `"ö${x}"`, []string{`'"'@1:1`, `'ö'@1:2`, `'$'@1:4`, `'{'@1:5`, `'x'@1:6`, `'}'@1:7`, `'"'@1:8`}},
		{"wide", "世!", []string{`'世'@1:1`, `'!'@1:4`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readAll(newSource("test.weft", strings.NewReader(tt.src), nil))
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSourcePeek(t *testing.T) {
	src := newSource("test.weft", strings.NewReader(`$${ö`), nil)
	var got [][2]rune
	for src.ch >= 0 {
		got = append(got, [2]rune{src.ch, src.peek()})
		src.nextch()
	}
	want := [][2]rune{{'$', '$'}, {'$', '{'}, {'{', 'ö'}, {'ö', -1}}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("pairs = %q, want %q", got, want)
	}
	if src.peek() != -1 {
		t.Errorf("peek at EOF = %q, want -1", src.peek())
	}
}

func TestSourcePos(t *testing.T) {
	src := newSource("test.weft", strings.NewReader("é\nx"), nil)
	src.nextch()
	src.nextch()
	if got := src.pos().String(); got != "test.weft:2:1" {
		t.Errorf("pos = %s, want test.weft:2:1", got)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

// collectErrors returns an error handler appending "line:col: msg" to errs.
func collectErrors(errs *[]string) func(line, col uint32, msg string) {
	return func(line, col uint32, msg string) {
		*errs = append(*errs, fmt.Sprintf("%d:%d: %s", line, col, msg))
	}
}

func TestSourceReadError(t *testing.T) {
	var errs []string
	src := newSource("test.weft", failingReader{}, collectErrors(&errs))
	if len(errs) != 1 || errs[0] != "1:1: reading source: disk gone" {
		t.Errorf("errors = %q", errs)
	}
	if src.ch != -1 {
		t.Errorf("ch = %q, want EOF", src.ch)
	}
}

func TestSourceInvalidUTF8(t *testing.T) {
	var errs []string
	got := readAll(newSource("test.weft", strings.NewReader("a\xffb"), collectErrors(&errs)))
	if len(errs) != 1 || errs[0] != "1:2: invalid UTF-8 encoding" {
		t.Errorf("errors = %q", errs)
	}
	if len(got) != 3 || got[2] != `'b'@1:3` {
		t.Errorf("characters = %v, want reading to continue past the bad byte", got)
	}

	// a nil handler drops errors
	newSource("test.weft", strings.NewReader("\xff"), nil).error("ignored")
}

func TestCharClasses(t *testing.T) {
	tests := []struct {
		r                                   rune
		blank, start, name, decimal, opener bool
	}{
		{' ', true, false, false, false, false},
		{'\t', true, false, false, false, false},
		{'\n', false, false, false, false, false},
		{'_', false, true, true, false, false},
		{'Q', false, true, true, false, false},
		{'7', false, false, true, true, false},
		{'!', false, false, false, false, false},
		{'$', false, false, false, false, false},
		{'{', false, false, false, false, true},
		{'/', false, false, false, false, true},
		{'é', false, false, false, false, false},
		{-1, false, false, false, false, false},
	}

	for _, tt := range tests {
		got := []bool{isBlank(tt.r), isNameStart(tt.r), isNameChar(tt.r), isDecimal(tt.r), isOpStart(tt.r)}
		want := []bool{tt.blank, tt.start, tt.name, tt.decimal, tt.opener}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			t.Errorf("classes of %q = %v, want %v", tt.r, got, want)
		}
	}
}

func TestDigitVal(t *testing.T) {
	for r, want := range map[rune]int{'0': 0, '9': 9, 'a': 10, 'F': 15, 'g': 16, 'x': 16, '$': 16, -1: 16} {
		if got := digitVal(r); got != want {
			t.Errorf("digitVal(%q) = %d, want %d", r, got, want)
		}
	}
}

func TestRadixes(t *testing.T) {
	tests := []struct {
		prefix rune
		base   int
		name   string
	}{
		{'x', 16, "hex"}, {'X', 16, "hex"},
		{'o', 8, "octal"}, {'O', 8, "octal"},
		{'b', 2, "binary"}, {'B', 2, "binary"},
	}
	for _, tt := range tests {
		if r, ok := radixes[tt.prefix]; !ok || r.base != tt.base || r.name != tt.name {
			t.Errorf("radixes[%q] = %v, %v; want {%d %s}", tt.prefix, r, ok, tt.base, tt.name)
		}
	}
	if _, ok := radixes['d']; ok {
		t.Error("0d is not a radix prefix")
	}
}
