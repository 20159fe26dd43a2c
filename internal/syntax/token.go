// Package syntax implements lexical analysis for the Weft template language.
package syntax

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF   Token = iota // end of file
	_Error              // lexical error

	// Literals
	_Name    // identifier: greeting, count
	_Literal // literal value (used with LitKind)
	_Call    // marked routine call: greet! (literal holds the name without the marker)

	// Operators (ordered by precedence, low to high)
	_Assign // =

	// Arithmetic operators (additive)
	_Add // +
	_Sub // -

	// Arithmetic operators (multiplicative)
	_Mul // *
	_Div // /

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Lbrace // {
	_Rbrace // }
	_Comma  // ,
	_Semi   // ;

	// Keywords
	_Atomic
	_Buffer
	_Out
	_Routine
	_String

	// Built-in operations (lexically keywords)
	_Dec
	_Enc
	_Len
	_Rev
	_Rnd
	_Rpl
	_Tlo
	_Tup

	tokenCount
)

// tokenNames maps tokens to their string representation.
var tokenNames = [...]string{
	_EOF:   "EOF",
	_Error: "ERROR",

	_Name:    "NAME",
	_Literal: "LITERAL",
	_Call:    "CALL",

	_Assign: "=",

	_Add: "+",
	_Sub: "-",
	_Mul: "*",
	_Div: "/",

	_Lparen: "(",
	_Rparen: ")",
	_Lbrace: "{",
	_Rbrace: "}",
	_Comma:  ",",
	_Semi:   ";",

	_Atomic:  "atomic",
	_Buffer:  "buffer",
	_Out:     "out",
	_Routine: "routine",
	_String:  "string",

	_Dec: "dec",
	_Enc: "enc",
	_Len: "len",
	_Rev: "rev",
	_Rnd: "rnd",
	_Rpl: "rpl",
	_Tlo: "tlo",
	_Tup: "tup",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Precedence returns the operator precedence for binary operators.
// Returns 0 for non-operators.
//
//	1: + -
//	2: * /
func (t Token) Precedence() int {
	switch t {
	case _Add, _Sub:
		return 1
	case _Mul, _Div:
		return 2
	}
	return 0
}

// IsKeyword reports whether t is a keyword token, built-ins included.
func (t Token) IsKeyword() bool {
	return t >= _Atomic && t <= _Tup
}

// IsBuiltin reports whether t names a built-in operation.
func (t Token) IsBuiltin() bool {
	return t >= _Dec && t <= _Tup
}

// IsLiteral reports whether t is a literal token.
func (t Token) IsLiteral() bool {
	return t == _Literal
}

// IsOperator reports whether t is an operator token.
func (t Token) IsOperator() bool {
	return t >= _Assign && t <= _Div
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// Exported operator tokens for the analyzer and interpreter.
const (
	Add Token = _Add // +
	Sub Token = _Sub // -
	Mul Token = _Mul // *
	Div Token = _Div // /
)

// LitKind represents the kind of a literal token.
type LitKind uint8

const (
	IntLit    LitKind = iota // 123, 0x1F, 0o77, 0b1010
	StringLit                // "hello", "line\n"
	InterpLit                // "hello ${name}"
)

// litKindNames maps literal kinds to their string representation.
var litKindNames = [...]string{
	IntLit:    "int",
	StringLit: "string",
	InterpLit: "interpolation",
}

// String returns the string representation of the literal kind.
func (k LitKind) String() string {
	if k <= InterpLit {
		return litKindNames[k]
	}
	return fmt.Sprintf("LitKind(%d)", k)
}

// keywords maps keyword strings to their token type.
var keywords = map[string]Token{
	"atomic":  _Atomic,
	"buffer":  _Buffer,
	"out":     _Out,
	"routine": _Routine,
	"string":  _String,

	"dec": _Dec,
	"enc": _Enc,
	"len": _Len,
	"rev": _Rev,
	"rnd": _Rnd,
	"rpl": _Rpl,
	"tlo": _Tlo,
	"tup": _Tup,
}

// LookupKeyword returns the token for the given identifier string.
// If the identifier is a keyword, returns the keyword token.
// Otherwise, returns _Name.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}
