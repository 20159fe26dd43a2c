package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Segment is one piece of a scanned string literal: either raw text or a
// ${name} reference.
type Segment struct {
	Text string // decoded text, or the referenced name when Ref is set
	Ref  bool
	Pos  Pos
}

// Scanner performs lexical analysis on Weft source code.
type Scanner struct {
	source

	// Current token info
	tok    Token
	lit    string    // identifier name, number text, or decoded string content
	kind   LitKind   // only valid when tok == _Literal
	segs   []Segment // only valid when kind is StringLit or InterpLit
	tokPos Pos

	// ASI (Automatic Semicolon Insertion) state
	nlsemi     bool
	asiEnabled bool

	litBuf strings.Builder
}

// NewScanner creates a new Scanner for the given source.
// The errh function is called for each lexical error; if nil, errors are silently ignored.
func NewScanner(filename string, src io.Reader, errh func(line, col uint32, msg string)) *Scanner {
	return &Scanner{
		source:     *newSource(filename, src, errh),
		asiEnabled: true,
	}
}

// SetASIEnabled enables or disables automatic semicolon insertion.
func (s *Scanner) SetASIEnabled(enabled bool) {
	s.asiEnabled = enabled
}

// Next advances to the next token.
func (s *Scanner) Next() {
	nlsemi := s.nlsemi
	s.nlsemi = false
	s.segs = nil

redo:
	s.skipWhitespace()

	if s.asiEnabled && nlsemi && (s.ch == '\n' || s.ch < 0) {
		s.tokPos = s.pos()
		s.tok = _Semi
		if s.ch == '\n' {
			s.lit = "newline"
			s.nextch()
		} else {
			s.lit = "EOF"
		}
		return
	}

	if s.ch == '\n' {
		s.nextch()
		goto redo
	}

	s.tokPos = s.pos()

	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case isNameStart(s.ch):
		s.scanIdent()

	case isDecimal(s.ch):
		s.scanNumber()

	case s.ch == '"':
		s.scanString()

	case isOpStart(s.ch):
		if s.scanOperator() {
			goto redo
		}

	default:
		s.error(fmt.Sprintf("unexpected character %q", s.ch))
		s.nextch()
		goto redo
	}

	s.nlsemi = s.shouldInsertSemi()
}

// Token returns the current token type.
func (s *Scanner) Token() Token {
	return s.tok
}

// Literal returns the current token's literal value.
func (s *Scanner) Literal() string {
	return s.lit
}

// LitKind returns the current literal's kind (only valid when Token() == _Literal).
func (s *Scanner) LitKind() LitKind {
	return s.kind
}

// Segments returns the pieces of the current string literal in source order.
func (s *Scanner) Segments() []Segment {
	return s.segs
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

func (s *Scanner) skipWhitespace() {
	for isBlank(s.ch) {
		s.nextch()
	}
}

// shouldInsertSemi reports whether a newline after the current token ends a statement.
func (s *Scanner) shouldInsertSemi() bool {
	switch s.tok {
	case _Name, _Literal, _Call:
		return true
	case _Rparen, _Rbrace:
		return true
	}
	return false
}

// scanIdent scans an identifier, keyword, or marked routine call (name!).
func (s *Scanner) scanIdent() {
	s.litBuf.Reset()
	for isNameChar(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	s.lit = s.litBuf.String()
	s.tok = LookupKeyword(s.lit)

	if s.ch == '!' {
		if s.tok != _Name {
			s.error(fmt.Sprintf("keyword %s cannot be called as a routine", s.lit))
		}
		s.nextch()
		s.tok = _Call
	}
}

// scanNumber scans an integer literal.
func (s *Scanner) scanNumber() {
	s.litBuf.Reset()
	s.kind = IntLit

	if r, ok := radixes[s.peek()]; ok && s.ch == '0' {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
		s.litBuf.WriteRune(s.ch)
		s.nextch()
		s.scanDigits(r)
	} else {
		for isDecimal(s.ch) {
			s.litBuf.WriteRune(s.ch)
			s.nextch()
		}
	}

	if s.ch == '.' {
		s.error("floating-point literals are not supported")
		for s.ch == '.' || isDecimal(s.ch) {
			s.nextch()
		}
	}

	s.lit = s.litBuf.String()
	s.tok = _Literal
}

// scanDigits scans the digits following a radix prefix.
func (s *Scanner) scanDigits(r radix) {
	if digitVal(s.ch) >= r.base {
		s.error("invalid " + r.name + " digit")
		return
	}
	for digitVal(s.ch) < r.base {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	if isNameChar(s.ch) {
		s.error("invalid " + r.name + " digit")
	}
}

// scanString scans a string literal, splitting it into text segments and
// ${name} references. The literal is the decoded content with references kept
// in their ${name} form.
func (s *Scanner) scanString() {
	s.nextch() // skip opening "
	var (
		all  strings.Builder
		text strings.Builder
		tpos = s.pos()
	)

	flush := func() {
		if text.Len() > 0 {
			s.segs = append(s.segs, Segment{Text: text.String(), Pos: tpos})
			text.Reset()
		}
	}

	for {
		switch {
		case s.ch == '"':
			s.nextch()
			flush()
			s.finishString(all.String())
			return

		case s.ch == '\\':
			if text.Len() == 0 {
				tpos = s.pos()
			}
			// escapes denote single bytes
			if r, ok := s.scanEscape(); ok {
				text.WriteByte(byte(r))
				if r == '$' {
					all.WriteString(`\$`)
				} else {
					all.WriteByte(byte(r))
				}
			}

		case s.ch == '$' && s.peek() == '{':
			refPos := s.pos()
			s.nextch()
			s.nextch()
			name, ok := s.scanRefName()
			if !ok {
				continue
			}
			flush()
			s.segs = append(s.segs, Segment{Text: name, Ref: true, Pos: refPos})
			all.WriteString("${" + name + "}")
			tpos = s.pos()

		case s.ch == '\n' || s.ch < 0:
			s.error("string not terminated")
			flush()
			s.finishString(all.String())
			return

		default:
			if text.Len() == 0 {
				tpos = s.pos()
			}
			text.WriteRune(s.ch)
			all.WriteRune(s.ch)
			s.nextch()
		}
	}
}

func (s *Scanner) finishString(lit string) {
	s.lit = lit
	s.tok = _Literal
	s.kind = StringLit
	for _, seg := range s.segs {
		if seg.Ref {
			s.kind = InterpLit
			break
		}
	}
}

// scanRefName scans the identifier inside ${...} and the closing brace.
func (s *Scanner) scanRefName() (string, bool) {
	var b strings.Builder
	for isNameStart(s.ch) || (b.Len() > 0 && isDecimal(s.ch)) {
		b.WriteRune(s.ch)
		s.nextch()
	}
	if b.Len() == 0 {
		s.error("expected identifier in ${...}")
		s.skipToRefEnd()
		return "", false
	}
	if s.ch != '}' {
		s.error("expected } to close ${" + b.String())
		s.skipToRefEnd()
		return "", false
	}
	s.nextch()
	return b.String(), true
}

// skipToRefEnd recovers from a malformed reference without leaving the string.
func (s *Scanner) skipToRefEnd() {
	for s.ch != '}' && s.ch != '"' && s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
	if s.ch == '}' {
		s.nextch()
	}
}

// scanEscape scans an escape sequence and returns the decoded rune.
func (s *Scanner) scanEscape() (rune, bool) {
	s.nextch() // skip \

	switch s.ch {
	case 'n':
		s.nextch()
		return '\n', true
	case 't':
		s.nextch()
		return '\t', true
	case 'r':
		s.nextch()
		return '\r', true
	case '\\':
		s.nextch()
		return '\\', true
	case '"':
		s.nextch()
		return '"', true
	case '$':
		s.nextch()
		return '$', true
	case '0':
		s.nextch()
		return 0, true
	case 'x':
		s.nextch()
		return s.scanHexEscape()
	default:
		s.error(fmt.Sprintf("unknown escape sequence: \\%c", s.ch))
		s.nextch()
		return 0, false
	}
}

// scanHexEscape scans the two digits of a \xNN escape.
func (s *Scanner) scanHexEscape() (rune, bool) {
	var val rune
	for i := 0; i < 2; i++ {
		d := digitVal(s.ch)
		if d >= 16 {
			s.error("invalid hex escape")
			return 0, false
		}
		val = val*16 + rune(d)
		s.nextch()
	}
	return val, true
}

// scanOperator scans an operator or delimiter.
// Returns true if a comment was skipped (caller should rescan).
func (s *Scanner) scanOperator() bool {
	ch := s.ch
	s.nextch()

	switch ch {
	case '+':
		s.tok = _Add
	case '-':
		s.tok = _Sub
	case '*':
		s.tok = _Mul
	case '/':
		if s.ch == '/' {
			s.skipLineComment()
			return true
		}
		s.tok = _Div
	case '=':
		s.tok = _Assign
	case '(':
		s.tok = _Lparen
	case ')':
		s.tok = _Rparen
	case '{':
		s.tok = _Lbrace
	case '}':
		s.tok = _Rbrace
	case ',':
		s.tok = _Comma
	case ';':
		s.tok = _Semi
	}
	s.lit = s.tok.String()

	return false
}

// skipLineComment skips a line comment (from // to end of line).
func (s *Scanner) skipLineComment() {
	s.nextch()
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}
