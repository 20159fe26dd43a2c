package types

import "strconv"

// Value is the current value of a variable. The zero Value has no type and
// renders as the empty string.
type Value struct {
	typ *Basic
	str string
	num int64
}

// StringValue returns a string value.
func StringValue(s string) Value {
	return Value{typ: Typ[String], str: s}
}

// AtomicValue returns an atomic value.
func AtomicValue(n int64) Value {
	return Value{typ: Typ[Atomic], num: n}
}

// BufferValue returns the (opaque) buffer value.
func BufferValue() Value {
	return Value{typ: Typ[Buffer]}
}

// Zero returns the initial value for a variable of type t.
func Zero(t *Basic) Value {
	if t == nil {
		return Value{}
	}
	return Value{typ: t}
}

// Type returns the value's type, or nil for the zero Value.
func (v Value) Type() *Basic {
	return v.typ
}

// Text renders the value as program text: atomics in decimal, strings
// verbatim, buffers as the empty string.
func (v Value) Text() string {
	if v.typ == nil {
		return ""
	}
	switch v.typ.kind {
	case Atomic:
		return strconv.FormatInt(v.num, 10)
	case String:
		return v.str
	}
	return ""
}

// Int returns the value of an atomic.
func (v Value) Int() (int64, bool) {
	if v.typ == nil || v.typ.kind != Atomic {
		return 0, false
	}
	return v.num, true
}

// String returns a debugging representation such as `string "hi"` or
// `atomic 5`.
func (v Value) String() string {
	if v.typ == nil {
		return "<unset>"
	}
	switch v.typ.kind {
	case String:
		return "string " + strconv.Quote(v.str)
	case Atomic:
		return "atomic " + strconv.FormatInt(v.num, 10)
	}
	return v.typ.name
}

// display renders the value for symbol listings.
func (v Value) display() string {
	if v.typ == nil {
		return "<unset>"
	}
	switch v.typ.kind {
	case String:
		return strconv.Quote(v.str)
	case Atomic:
		return strconv.FormatInt(v.num, 10)
	}
	return "<" + v.typ.name + ">"
}
