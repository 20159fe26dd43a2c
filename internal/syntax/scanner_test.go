package syntax

import (
	"strings"
	"testing"
)

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		tokens []Token
		lits   []string
	}{
		// Identifiers (ASI inserts ; at EOF for _Name)
		{"ident", "foo", []Token{_Name, _Semi}, []string{"foo", "EOF"}},
		{"ident_underscore", "_bar", []Token{_Name, _Semi}, []string{"_bar", "EOF"}},
		{"ident_mixed", "foo123", []Token{_Name, _Semi}, []string{"foo123", "EOF"}},
		{"ident_caps", "FooBar", []Token{_Name, _Semi}, []string{"FooBar", "EOF"}},

		// Marked routine calls drop the marker
		{"call", "greet!", []Token{_Call, _Semi}, []string{"greet", "EOF"}},
		{"call_digits", "r2d2!", []Token{_Call, _Semi}, []string{"r2d2", "EOF"}},

		// Integer literals
		{"int_dec", "123", []Token{_Literal, _Semi}, []string{"123", "EOF"}},
		{"int_zero", "0", []Token{_Literal, _Semi}, []string{"0", "EOF"}},
		{"int_hex", "0x1f", []Token{_Literal, _Semi}, []string{"0x1f", "EOF"}},
		{"int_oct", "0o77", []Token{_Literal, _Semi}, []string{"0o77", "EOF"}},
		{"int_bin", "0b1010", []Token{_Literal, _Semi}, []string{"0b1010", "EOF"}},
		{"int_leading_zero", "007", []Token{_Literal, _Semi}, []string{"007", "EOF"}},

		// String literals (decoded content)
		{"string_simple", `"hello"`, []Token{_Literal, _Semi}, []string{"hello", "EOF"}},
		{"string_empty", `""`, []Token{_Literal, _Semi}, []string{"", "EOF"}},
		{"string_escape_n", `"a\nb"`, []Token{_Literal, _Semi}, []string{"a\nb", "EOF"}},
		{"string_escape_t", `"a\tb"`, []Token{_Literal, _Semi}, []string{"a\tb", "EOF"}},
		{"string_escape_quote", `"a\"b"`, []Token{_Literal, _Semi}, []string{"a\"b", "EOF"}},
		{"string_escape_hex", `"\x41\x42"`, []Token{_Literal, _Semi}, []string{"AB", "EOF"}},
		{"string_escape_high_byte", `"\xff"`, []Token{_Literal, _Semi}, []string{"\xff", "EOF"}},
		{"string_interp", `"hi ${who}"`, []Token{_Literal, _Semi}, []string{"hi ${who}", "EOF"}},
		{"string_bare_dollar", `"$5"`, []Token{_Literal, _Semi}, []string{"$5", "EOF"}},

		// Operators and delimiters
		{"op_add", "+", []Token{_Add}, []string{"+"}},
		{"op_sub", "-", []Token{_Sub}, []string{"-"}},
		{"op_mul", "*", []Token{_Mul}, []string{"*"}},
		{"op_div", "/", []Token{_Div}, []string{"/"}},
		{"op_assign", "=", []Token{_Assign}, []string{"="}},
		{"delim_lparen", "(", []Token{_Lparen}, []string{"("}},
		{"delim_rparen", ")", []Token{_Rparen, _Semi}, []string{")", "EOF"}},
		{"delim_lbrace", "{", []Token{_Lbrace}, []string{"{"}},
		{"delim_rbrace", "}", []Token{_Rbrace, _Semi}, []string{"}", "EOF"}},
		{"delim_comma", ",", []Token{_Comma}, []string{","}},
		{"delim_semi", ";", []Token{_Semi}, []string{";"}},

		// Keywords
		{"kw_string", "string", []Token{_String}, []string{"string"}},
		{"kw_atomic", "atomic", []Token{_Atomic}, []string{"atomic"}},
		{"kw_buffer", "buffer", []Token{_Buffer}, []string{"buffer"}},
		{"kw_routine", "routine", []Token{_Routine}, []string{"routine"}},
		{"kw_out", "out", []Token{_Out}, []string{"out"}},
		{"kw_rnd", "rnd", []Token{_Rnd}, []string{"rnd"}},
		{"kw_rev", "rev", []Token{_Rev}, []string{"rev"}},
		{"kw_tup", "tup", []Token{_Tup}, []string{"tup"}},
		{"kw_tlo", "tlo", []Token{_Tlo}, []string{"tlo"}},
		{"kw_len", "len", []Token{_Len}, []string{"len"}},
		{"kw_rpl", "rpl", []Token{_Rpl}, []string{"rpl"}},
		{"kw_enc", "enc", []Token{_Enc}, []string{"enc"}},
		{"kw_dec", "dec", []Token{_Dec}, []string{"dec"}},

		// Compound
		{"decl", `string s = "x"`, []Token{_String, _Name, _Assign, _Literal, _Semi}, []string{"string", "s", "=", "x", "EOF"}},
		{"builtin_call", "rev(s)", []Token{_Rev, _Lparen, _Name, _Rparen, _Semi}, []string{"rev", "(", "s", ")", "EOF"}},
		{"arith", "1 + 2", []Token{_Literal, _Add, _Literal, _Semi}, []string{"1", "+", "2", "EOF"}},

		// Comments
		{"comment_skip", "a // comment\nb", []Token{_Name, _Semi, _Name, _Semi}, []string{"a", "newline", "b", "EOF"}},
		{"comment_eof", "a // comment", []Token{_Name, _Semi}, []string{"a", "EOF"}},

		// Whitespace handling
		{"whitespace_spaces", "  a  ", []Token{_Name, _Semi}, []string{"a", "EOF"}},
		{"whitespace_mixed", " \t a \t ", []Token{_Name, _Semi}, []string{"a", "EOF"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner("test", strings.NewReader(tt.src), nil)
			for i, wantTok := range tt.tokens {
				s.Next()
				if s.Token() != wantTok {
					t.Errorf("token %d: got %v, want %v", i, s.Token(), wantTok)
				}
				if tt.lits != nil && s.Literal() != tt.lits[i] {
					t.Errorf("literal %d: got %q, want %q", i, s.Literal(), tt.lits[i])
				}
			}
			s.Next()
			if !s.Token().IsEOF() {
				t.Errorf("expected EOF, got %v %q", s.Token(), s.Literal())
			}
		})
	}
}

func TestScanLitKind(t *testing.T) {
	tests := []struct {
		src  string
		kind LitKind
	}{
		{"123", IntLit},
		{"0x1F", IntLit},
		{"0o77", IntLit},
		{"0b1010", IntLit},
		{`"hello"`, StringLit},
		{`"cost \$5"`, StringLit},
		{`"${a}"`, InterpLit},
		{`"x ${a} y"`, InterpLit},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			s := NewScanner("test", strings.NewReader(tt.src), nil)
			s.Next()
			if s.Token() != _Literal {
				t.Fatalf("expected _Literal, got %v", s.Token())
			}
			if s.LitKind() != tt.kind {
				t.Errorf("LitKind = %v, want %v", s.LitKind(), tt.kind)
			}
		})
	}
}

func TestScanSegments(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Segment
	}{
		{"plain", `"hello"`, []Segment{{Text: "hello"}}},
		{"empty", `""`, nil},
		{"ref_only", `"${who}"`, []Segment{{Text: "who", Ref: true}}},
		{
			"mixed",
			`"hi ${who}!"`,
			[]Segment{{Text: "hi "}, {Text: "who", Ref: true}, {Text: "!"}},
		},
		{
			"adjacent_refs",
			`"${a}${b}"`,
			[]Segment{{Text: "a", Ref: true}, {Text: "b", Ref: true}},
		},
		{"escaped_dollar", `"\${x}"`, []Segment{{Text: "${x}"}}},
		{"lone_dollar", `"a $ b"`, []Segment{{Text: "a $ b"}}},
		{"dollar_before_ref", `"$${x}"`, []Segment{{Text: "$"}, {Text: "x", Ref: true}}},
		{"high_byte_escape_before_ref", `"\xff${x}"`, []Segment{{Text: "\xff"}, {Text: "x", Ref: true}}},
		{"escape_in_text", `"a\n${x}"`, []Segment{{Text: "a\n"}, {Text: "x", Ref: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner("test", strings.NewReader(tt.src), nil)
			s.Next()
			got := s.Segments()
			if len(got) != len(tt.want) {
				t.Fatalf("got %d segments %+v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i].Text != tt.want[i].Text || got[i].Ref != tt.want[i].Ref {
					t.Errorf("segment %d = {%q %v}, want {%q %v}",
						i, got[i].Text, got[i].Ref, tt.want[i].Text, tt.want[i].Ref)
				}
			}
		})
	}
}

func TestScanSegmentPositions(t *testing.T) {
	s := NewScanner("t.weft", strings.NewReader(`out "ab ${who} c"`), nil)
	s.Next() // out
	s.Next()
	segs := s.Segments()
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	want := []uint32{6, 9, 15}
	for i, seg := range segs {
		if seg.Pos.Line() != 1 || seg.Pos.Col() != want[i] {
			t.Errorf("segment %d at %s, want 1:%d", i, seg.Pos, want[i])
		}
	}
}

func TestASI(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		tokens []Token
		lits   []string
	}{
		{"ident_newline", "foo\nbar", []Token{_Name, _Semi, _Name}, []string{"foo", "newline", "bar"}},
		{"literal_newline", "123\n456", []Token{_Literal, _Semi, _Literal}, []string{"123", "newline", "456"}},
		{"call_newline", "go!\nfoo", []Token{_Call, _Semi, _Name}, []string{"go", "newline", "foo"}},
		{"rparen_newline", "rev(a)\nb", []Token{_Rev, _Lparen, _Name, _Rparen, _Semi, _Name}, []string{"rev", "(", "a", ")", "newline", "b"}},
		{"rbrace_newline", "{\n}\nfoo", []Token{_Lbrace, _Rbrace, _Semi, _Name}, []string{"{", "}", "newline", "foo"}},
		// no ASI after operators or keywords
		{"add_newline", "1 +\n2", []Token{_Literal, _Add, _Literal}, []string{"1", "+", "2"}},
		{"assign_newline", "x =\n1", []Token{_Name, _Assign, _Literal}, []string{"x", "=", "1"}},
		{"comma_newline", "a,\nb", []Token{_Name, _Comma, _Name}, []string{"a", ",", "b"}},
		{"out_newline", "out\nx", []Token{_Out, _Name}, []string{"out", "x"}},
		{"ident_eof", "foo", []Token{_Name, _Semi}, []string{"foo", "EOF"}},
		{"multiple_newlines", "foo\n\n\nbar", []Token{_Name, _Semi, _Name}, []string{"foo", "newline", "bar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner("test", strings.NewReader(tt.src), nil)
			for i, wantTok := range tt.tokens {
				s.Next()
				if s.Token() != wantTok {
					t.Errorf("token %d: got %v, want %v", i, s.Token(), wantTok)
				}
				if s.Literal() != tt.lits[i] {
					t.Errorf("literal %d: got %q, want %q", i, s.Literal(), tt.lits[i])
				}
			}
		})
	}
}

func TestASIDisabled(t *testing.T) {
	s := NewScanner("test", strings.NewReader("foo\nbar"), nil)
	s.SetASIEnabled(false)

	s.Next()
	if s.Token() != _Name || s.Literal() != "foo" {
		t.Errorf("got %v %q, want NAME foo", s.Token(), s.Literal())
	}
	s.Next()
	if s.Token() != _Name || s.Literal() != "bar" {
		t.Errorf("got %v %q, want NAME bar", s.Token(), s.Literal())
	}
	s.Next()
	if !s.Token().IsEOF() {
		t.Errorf("expected EOF, got %v", s.Token())
	}
}

func TestPosition(t *testing.T) {
	src := `string who = "world"

routine greet {
    out who
}`

	expected := []struct {
		tok  Token
		line uint32
		col  uint32
	}{
		{_String, 1, 1},
		{_Name, 1, 8},     // who
		{_Assign, 1, 12},  // =
		{_Literal, 1, 14}, // "world"
		{_Semi, 1, 21},    // ASI at newline
		{_Routine, 3, 1},  // after blank line
		{_Name, 3, 9},     // greet
		{_Lbrace, 3, 15},  // {
		{_Out, 4, 5},      // out
		{_Name, 4, 9},     // who
		{_Semi, 4, 12},    // ASI
		{_Rbrace, 5, 1},   // }
		{_Semi, 5, 2},     // ASI at EOF
	}

	s := NewScanner("test.weft", strings.NewReader(src), nil)
	for i, exp := range expected {
		s.Next()
		pos := s.Pos()
		if s.Token() != exp.tok {
			t.Errorf("token %d: got %v, want %v", i, s.Token(), exp.tok)
		}
		if pos.Line() != exp.line || pos.Col() != exp.col {
			t.Errorf("token %d (%v): pos = %d:%d, want %d:%d",
				i, s.Token(), pos.Line(), pos.Col(), exp.line, exp.col)
		}
	}
}

func TestPositionAfterMultibyte(t *testing.T) {
	// "wörld" is six bytes plus the quotes
	s := NewScanner("test.weft", strings.NewReader(`out "wörld" + x!`), nil)
	want := []struct {
		tok Token
		col uint32
	}{{_Out, 1}, {_Literal, 5}, {_Add, 14}, {_Call, 16}}
	for i, w := range want {
		s.Next()
		if s.Token() != w.tok || s.Pos().Col() != w.col {
			t.Errorf("token %d: got %v at col %d, want %v at col %d", i, s.Token(), s.Pos().Col(), w.tok, w.col)
		}
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"unterminated_string", `"hello`, "string not terminated"},
		{"bad_escape", `"\q"`, "unknown escape sequence"},
		{"bad_hex_escape", `"\xGG"`, "invalid hex escape"},
		{"bad_hex_literal", "0xGG", "invalid hex digit"},
		{"bad_octal_literal", "0o99", "invalid octal digit"},
		{"bad_binary_literal", "0b123", "invalid binary digit"},
		{"hex_trailing_letter", "0x1G", "invalid hex digit"},
		{"float_literal", "3.14", "floating-point literals are not supported"},
		{"bad_char", "@", "unexpected character"},
		{"bad_char_hash", "#", "unexpected character"},
		{"keyword_call", "rev!", "keyword rev cannot be called"},
		{"empty_ref", `"${}"`, "expected identifier in ${...}"},
		{"unclosed_ref", `"${abc"`, "expected } to close ${abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errMsg string
			errh := func(line, col uint32, msg string) {
				if errMsg == "" {
					errMsg = msg
				}
			}
			s := NewScanner("test", strings.NewReader(tt.src), errh)
			for i := 0; i < 100; i++ {
				s.Next()
				if s.Token().IsEOF() {
					break
				}
			}
			if errMsg == "" {
				t.Errorf("expected error containing %q, got no error", tt.wantErr)
			} else if !strings.Contains(errMsg, tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, errMsg)
			}
		})
	}
}

func TestCompleteProgram(t *testing.T) {
	src := `atomic n = 5
routine show {
    out "n=${n}"  // show it
}
show!
out enc(tup("abc"), "k")`

	expected := []Token{
		_Atomic, _Name, _Assign, _Literal, _Semi,
		_Routine, _Name, _Lbrace,
		_Out, _Literal, _Semi,
		_Rbrace, _Semi,
		_Call, _Semi,
		_Out, _Enc, _Lparen, _Tup, _Lparen, _Literal, _Rparen, _Comma, _Literal, _Rparen, _Semi,
		_EOF,
	}

	s := NewScanner("test.weft", strings.NewReader(src), nil)
	for i, wantTok := range expected {
		s.Next()
		if s.Token() != wantTok {
			t.Errorf("token %d: got %v, want %v", i, s.Token(), wantTok)
		}
	}
}

func FuzzScanner(f *testing.F) {
	seeds := []string{
		`string s = "hello\nworld"`,
		"atomic n = 0x1F",
		`out "a ${b} c"`,
		"routine r { out rev(x) }",
		"r!",
		`out rpl("aa", "a", "b")`,
		"// comment\nfoo",
		`"${`,
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		errh := func(line, col uint32, msg string) {}
		s := NewScanner("fuzz", strings.NewReader(src), errh)
		for i := 0; i < 10000; i++ {
			s.Next()
			if s.Token().IsEOF() {
				break
			}
		}
	})
}
