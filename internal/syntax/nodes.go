package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 3 classes of nodes: Statements, Expressions, and interpolation
// Fragments. All nodes implement the Node interface.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// Fragment is one piece of an Interpolation.
type Fragment interface {
	Node
	aFragment()
}

// ----------------------------------------------------------------------------
// Base node types

type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

type expr struct{ node }

func (*expr) aExpr() {}

type stmt struct{ node }

func (*stmt) aStmt() {}

type fragment struct{ node }

func (*fragment) aFragment() {}

// ----------------------------------------------------------------------------
// Program and statements

// Program is the root of a parsed source file.
type Program struct {
	node
	Stmts []Stmt
}

// DeclType is the declared type of a variable.
type DeclType uint8

const (
	StringType DeclType = iota
	AtomicType
	BufferType
)

var declTypeNames = [...]string{
	StringType: "string",
	AtomicType: "atomic",
	BufferType: "buffer",
}

func (t DeclType) String() string {
	if int(t) < len(declTypeNames) {
		return declTypeNames[t]
	}
	return fmt.Sprintf("DeclType(%d)", t)
}

// ParseDeclType maps a type keyword to its DeclType.
func ParseDeclType(s string) (DeclType, bool) {
	for i, name := range declTypeNames {
		if name == s {
			return DeclType(i), true
		}
	}
	return 0, false
}

// DeclStmt represents a variable declaration: Type Name = Value
// For atomic declarations Value is an integer *BasicLit. Buffer declarations
// may omit Value.
type DeclStmt struct {
	stmt
	Name  *Name
	Type  DeclType
	Value Expr
}

// RoutineDecl represents a routine definition: routine Name { Body }
type RoutineDecl struct {
	stmt
	Name   *Name
	Body   []Stmt
	Rbrace Pos
}

// CallStmt represents a routine call by name: Name or Name!
type CallStmt struct {
	stmt
	Name   *Name
	Marked bool // written with the call marker
}

// OutStmt represents an output statement: out X
type OutStmt struct {
	stmt
	X Expr
}

// ----------------------------------------------------------------------------
// Factors

// Name represents an identifier.
type Name struct {
	expr
	Value string
}

// BasicLit represents an integer or plain string constant.
type BasicLit struct {
	expr
	Value string  // literal text (decoded for strings)
	Kind  LitKind // IntLit or StringLit
}

// Int returns the value of an integer literal. Prefixed literals (0x, 0o, 0b)
// use their base; everything else is decimal.
func (b *BasicLit) Int() (int64, error) {
	digits := strings.TrimPrefix(b.Value, "-")
	base := 10
	if len(digits) > 2 && digits[0] == '0' && strings.ContainsRune("xXoObB", rune(digits[1])) {
		base = 0
	}
	return strconv.ParseInt(b.Value, base, 64)
}

// ParenExpr represents a parenthesized expression: (X)
type ParenExpr struct {
	expr
	X Expr
}

// Interpolation represents a string literal with ${name} references.
// Fragments are kept in source order.
type Interpolation struct {
	expr
	Fragments []Fragment
}

// LitFragment is raw text inside an interpolation.
type LitFragment struct {
	fragment
	Text string
}

// RefFragment is a ${name} reference inside an interpolation.
type RefFragment struct {
	fragment
	Name *Name
}

// ----------------------------------------------------------------------------
// Expressions

// Operation represents a binary arithmetic operation. The grammar reserves it;
// it has no evaluation semantics.
type Operation struct {
	expr
	Op Token
	X  Expr
	Y  Expr
}

// Builtin identifies a built-in operation.
type Builtin uint8

const (
	Rnd Builtin = iota
	Rev
	Tup
	Tlo
	Len
	Rpl
	Enc
	Dec
)

var builtinNames = [...]string{
	Rnd: "rnd",
	Rev: "rev",
	Tup: "tup",
	Tlo: "tlo",
	Len: "len",
	Rpl: "rpl",
	Enc: "enc",
	Dec: "dec",
}

func (b Builtin) String() string {
	if int(b) < len(builtinNames) {
		return builtinNames[b]
	}
	return fmt.Sprintf("Builtin(%d)", b)
}

// NumArgs returns the number of operands the built-in takes.
func (b Builtin) NumArgs() int {
	switch b {
	case Rnd, Rpl:
		return 3
	case Enc, Dec:
		return 2
	}
	return 1
}

// RandomExpr represents rnd(Min, Max, Charset).
type RandomExpr struct {
	expr
	Min     Expr
	Max     Expr
	Charset Expr
}

// UnaryExpr represents rev(X), tup(X), tlo(X), or len(X).
type UnaryExpr struct {
	expr
	Op Builtin
	X  Expr
}

// ReplaceExpr represents rpl(X, Target, With).
type ReplaceExpr struct {
	expr
	X      Expr
	Target Expr
	With   Expr
}

// CipherExpr represents enc(X, Key) or dec(X, Key).
type CipherExpr struct {
	expr
	Op  Builtin // Enc or Dec
	X   Expr
	Key Expr
}
