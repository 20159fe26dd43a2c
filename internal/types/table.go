package types

import (
	"fmt"
	"strings"
)

// Table is the single, flat namespace of a Weft program. Symbols keep the
// order in which they were defined and are never removed.
type Table struct {
	objs  []Object
	index map[string]int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Define stores a copy of obj. It reports false, leaving the table
// unchanged, if the name is already defined.
func (t *Table) Define(obj Object) bool {
	name := obj.Name()
	if _, ok := t.index[name]; ok {
		return false
	}
	t.index[name] = len(t.objs)
	t.objs = append(t.objs, obj.clone())
	return true
}

// IsDefined reports whether name is in the table.
func (t *Table) IsDefined(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Lookup returns the object with the given name, or nil.
func (t *Table) Lookup(name string) Object {
	if i, ok := t.index[name]; ok {
		return t.objs[i]
	}
	return nil
}

// LookupVar returns the variable with the given name, or nil if name is
// undefined or names a routine.
func (t *Table) LookupVar(name string) *Var {
	v, _ := t.Lookup(name).(*Var)
	return v
}

// LookupRoutine returns the routine with the given name, or nil if name is
// undefined or names a variable.
func (t *Table) LookupRoutine(name string) *Routine {
	r, _ := t.Lookup(name).(*Routine)
	return r
}

// SetValue replaces the current value of the variable name. It reports false
// if name is not a variable or val's type differs from the declared type.
func (t *Table) SetValue(name string, val Value) bool {
	v := t.LookupVar(name)
	if v == nil || val.Type() != v.typ {
		return false
	}
	v.val = val
	return true
}

// Names returns the defined names in definition order.
func (t *Table) Names() []string {
	names := make([]string, len(t.objs))
	for i, obj := range t.objs {
		names[i] = obj.Name()
	}
	return names
}

// Len returns the number of symbols.
func (t *Table) Len() int {
	return len(t.objs)
}

// Clone returns an independent copy of the table. Routine definitions are
// shared; variable values are copied.
func (t *Table) Clone() *Table {
	c := &Table{
		objs:  make([]Object, len(t.objs)),
		index: make(map[string]int, len(t.index)),
	}
	for i, obj := range t.objs {
		c.objs[i] = obj.clone()
	}
	for name, i := range t.index {
		c.index[name] = i
	}
	return c
}

// String returns a listing of the table, one symbol per line.
func (t *Table) String() string {
	var buf strings.Builder
	for _, obj := range t.objs {
		switch obj := obj.(type) {
		case *Var:
			fmt.Fprintf(&buf, "%s %s = %s\n", obj.typ, obj.name, obj.val.display())
		case *Routine:
			fmt.Fprintf(&buf, "routine %s (%d statements)\n", obj.name, len(obj.decl.Body))
		}
	}
	return buf.String()
}
