package syntax

import (
	"io"
	"unicode/utf8"
)

// source hands the scanner one character at a time. line and col always
// describe ch; columns count bytes, like every other length in Weft.
type source struct {
	filename string
	buf      []byte
	next     int // offset of the character after ch

	line, col uint32
	ch        rune // -1 at EOF
	width     int  // encoded size of ch

	errh func(line, col uint32, msg string)
}

// newSource reads all of src and loads its first character. errh may be nil.
func newSource(filename string, src io.Reader, errh func(line, col uint32, msg string)) *source {
	s := &source{filename: filename, line: 1, col: 1, ch: -1, errh: errh}

	var err error
	if s.buf, err = io.ReadAll(src); err != nil {
		s.error("reading source: " + err.Error())
		return s
	}
	s.load()
	return s
}

// nextch moves past ch.
func (s *source) nextch() {
	switch {
	case s.ch == '\n':
		s.line++
		s.col = 1
	case s.ch >= 0:
		s.col += uint32(s.width)
	}
	s.load()
}

// load decodes the character at next into ch.
func (s *source) load() {
	if s.next >= len(s.buf) {
		s.ch, s.width = -1, 0
		return
	}
	r, w := rune(s.buf[s.next]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.buf[s.next:])
		if r == utf8.RuneError && w == 1 {
			s.error("invalid UTF-8 encoding")
		}
	}
	s.ch, s.width = r, w
	s.next += w
}

// peek returns the character after ch without consuming anything.
func (s *source) peek() rune {
	if s.next >= len(s.buf) {
		return -1
	}
	if b := s.buf[s.next]; b < utf8.RuneSelf {
		return rune(b)
	}
	r, _ := utf8.DecodeRune(s.buf[s.next:])
	return r
}

func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col)
}

// error reports a lexical error at ch.
func (s *source) error(msg string) {
	if s.errh != nil {
		s.errh(s.line, s.col, msg)
	}
}

// Character classes. Names, numbers and operators are ASCII; other
// characters may only appear inside string literals and comments.
const (
	blank     uint8 = 1 << iota // newline excluded: it may end a statement
	nameStart                   // letters and _
	decimal
	opStart // operators, delimiters and the start of a comment
)

var charClass [utf8.RuneSelf]uint8

func init() {
	for _, c := range " \t\r" {
		charClass[c] |= blank
	}
	for c := 'a'; c <= 'z'; c++ {
		charClass[c] |= nameStart
		charClass[c-'a'+'A'] |= nameStart
	}
	charClass['_'] |= nameStart
	for c := '0'; c <= '9'; c++ {
		charClass[c] |= decimal
	}
	for _, c := range "+-*/=(){},;" {
		charClass[c] |= opStart
	}
}

func classOf(r rune) uint8 {
	if r < 0 || r >= utf8.RuneSelf {
		return 0
	}
	return charClass[r]
}

func isBlank(r rune) bool     { return classOf(r)&blank != 0 }
func isNameStart(r rune) bool { return classOf(r)&nameStart != 0 }
func isNameChar(r rune) bool  { return classOf(r)&(nameStart|decimal) != 0 }
func isDecimal(r rune) bool   { return classOf(r)&decimal != 0 }
func isOpStart(r rune) bool   { return classOf(r)&opStart != 0 }

// digitVal returns the value of r as a hex digit, or 16 if it is not one.
func digitVal(r rune) int {
	switch {
	case '0' <= r && r <= '9':
		return int(r - '0')
	case 'a' <= r && r <= 'f':
		return int(r-'a') + 10
	case 'A' <= r && r <= 'F':
		return int(r-'A') + 10
	}
	return 16
}

// radix describes the digits allowed after a 0x, 0o or 0b prefix.
type radix struct {
	base int
	name string
}

var radixes = map[rune]radix{
	'x': {16, "hex"}, 'X': {16, "hex"},
	'o': {8, "octal"}, 'O': {8, "octal"},
	'b': {2, "binary"}, 'B': {2, "binary"},
}
