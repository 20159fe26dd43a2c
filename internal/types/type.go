// Package types implements the symbol table for Weft programs: the declared
// variable types, their values, and the flat table that holds them.
// This package depends on syntax only for positions and routine bodies.
package types

// Type is the interface implemented by all types.
type Type interface {
	// String returns the type's keyword.
	String() string

	// aType is a marker method to restrict implementations to this package.
	aType()
}

// typ is a base struct for all type implementations.
type typ struct{}

func (typ) aType() {}
