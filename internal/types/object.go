package types

import "github.com/you-not-fish/weft/internal/syntax"

// ObjKind distinguishes the two kinds of symbols.
type ObjKind uint8

const (
	VarObj ObjKind = iota
	RoutineObj
)

func (k ObjKind) String() string {
	if k == RoutineObj {
		return "routine"
	}
	return "variable"
}

// Object represents a declared entity: a variable or a routine.
type Object interface {
	Name() string    // object name
	Kind() ObjKind   // variable or routine
	Pos() syntax.Pos // declaration position

	clone() Object // internal: copy stored by Table.Define
	aObject()      // marker method to restrict implementations
}

// object is the base struct for all objects.
type object struct {
	name string
	pos  syntax.Pos
}

func (o *object) Name() string    { return o.name }
func (o *object) Pos() syntax.Pos { return o.pos }
func (*object) aObject()          {}

// Var represents a typed variable and its current value.
type Var struct {
	object
	typ *Basic
	val Value
}

// NewVar creates a variable holding the zero value of typ.
func NewVar(pos syntax.Pos, name string, typ *Basic) *Var {
	return &Var{object: object{name: name, pos: pos}, typ: typ, val: Zero(typ)}
}

// Kind implements Object.
func (v *Var) Kind() ObjKind { return VarObj }

// Type returns the declared type.
func (v *Var) Type() *Basic { return v.typ }

// Value returns the current value.
func (v *Var) Value() Value { return v.val }

func (v *Var) clone() Object {
	c := *v
	return &c
}

// Routine represents a named, parameterless routine. It refers to the
// routine's definition but does not own it.
type Routine struct {
	object
	decl *syntax.RoutineDecl
}

// NewRoutine creates a routine object for decl.
func NewRoutine(decl *syntax.RoutineDecl) *Routine {
	return &Routine{object: object{name: decl.Name.Value, pos: decl.Pos()}, decl: decl}
}

// Kind implements Object.
func (r *Routine) Kind() ObjKind { return RoutineObj }

// Decl returns the routine definition.
func (r *Routine) Decl() *syntax.RoutineDecl { return r.decl }

// Body returns the routine's statements.
func (r *Routine) Body() []syntax.Stmt { return r.decl.Body }

func (r *Routine) clone() Object {
	c := *r
	return &c
}
