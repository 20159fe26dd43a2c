package interp

import (
	"errors"
	"fmt"

	"github.com/you-not-fish/weft/internal/syntax"
)

// Code classifies a runtime error.
type Code uint8

const (
	_ Code = iota
	BadRandomBounds
	EmptyCharset
	EmptyReplaceTarget
	CallDepthExceeded
	UndefinedName
	NotRoutine
	Unsupported
	BadCiphertext
)

var codeNames = [...]string{
	BadRandomBounds:    "BadRandomBounds",
	EmptyCharset:       "EmptyCharset",
	EmptyReplaceTarget: "EmptyReplaceTarget",
	CallDepthExceeded:  "CallDepthExceeded",
	UndefinedName:      "UndefinedName",
	NotRoutine:         "NotRoutine",
	Unsupported:        "Unsupported",
	BadCiphertext:      "BadCiphertext",
}

func (c Code) String() string {
	if int(c) < len(codeNames) && codeNames[c] != "" {
		return codeNames[c]
	}
	return fmt.Sprintf("Code(%d)", c)
}

// RuntimeError is a failure of a single statement or expression. Execution
// continues after it.
type RuntimeError struct {
	Pos  syntax.Pos
	Code Code
	Msg  string
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return e.Msg
}

// Errors returned by the built-in operations.
var (
	ErrBadBounds     = errors.New("random bounds must satisfy 0 <= min <= max and max > 0")
	ErrTooLong       = fmt.Errorf("random length exceeds %d bytes", MaxRandomLength)
	ErrEmptyCharset  = errors.New("random charset is empty")
	ErrEmptyTarget   = errors.New("replace target is empty")
	ErrBadCiphertext = errors.New("ciphertext is not valid base64")
)

// codeOf maps a built-in error to its runtime error code.
func codeOf(err error) Code {
	switch {
	case errors.Is(err, ErrEmptyCharset):
		return EmptyCharset
	case errors.Is(err, ErrEmptyTarget):
		return EmptyReplaceTarget
	case errors.Is(err, ErrBadCiphertext):
		return BadCiphertext
	}
	return BadRandomBounds
}
