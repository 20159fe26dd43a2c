package types

import "github.com/you-not-fish/weft/internal/syntax"

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	Invalid BasicKind = iota // invalid type

	String // text
	Atomic // 64-bit signed integer
	Buffer // reserved; declared but never evaluated
)

// Basic represents one of the declarable variable types.
type Basic struct {
	typ
	kind BasicKind
	name string
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Name returns the name of the basic type.
func (b *Basic) Name() string {
	return b.name
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

// Typ holds the predeclared basic types, indexed by BasicKind.
// Typ[Invalid] is nil, representing an invalid type.
var Typ = []*Basic{
	Invalid: nil,
	String:  {kind: String, name: "string"},
	Atomic:  {kind: Atomic, name: "atomic"},
	Buffer:  {kind: Buffer, name: "buffer"},
}

// FromDecl returns the type named by a declaration keyword.
func FromDecl(t syntax.DeclType) *Basic {
	switch t {
	case syntax.StringType:
		return Typ[String]
	case syntax.AtomicType:
		return Typ[Atomic]
	case syntax.BufferType:
		return Typ[Buffer]
	}
	return nil
}
