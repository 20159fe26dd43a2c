// Package types2 implements semantic analysis for the Weft language.
package types2

import (
	"fmt"

	"github.com/you-not-fish/weft/internal/diag"
	"github.com/you-not-fish/weft/internal/syntax"
)

// ErrorCode classifies a semantic error.
type ErrorCode uint8

const (
	_ ErrorCode = iota
	DuplicateDeclaration
	DuplicateRoutine
	UndefinedIdentifier
	UndefinedRoutine
	InvalidAST
)

var codeNames = [...]string{
	DuplicateDeclaration: "DuplicateDeclaration",
	DuplicateRoutine:     "DuplicateRoutine",
	UndefinedIdentifier:  "UndefinedIdentifier",
	UndefinedRoutine:     "UndefinedRoutine",
	InvalidAST:           "InvalidAST",
}

func (c ErrorCode) String() string {
	if int(c) < len(codeNames) && codeNames[c] != "" {
		return codeNames[c]
	}
	return fmt.Sprintf("ErrorCode(%d)", c)
}

// Error represents a semantic error.
type Error struct {
	Pos  syntax.Pos
	Code ErrorCode
	Msg  string
	Hint string // similar defined name, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s (did you mean %q?)", e.Pos, e.Msg, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorHandler is a function called for each semantic error.
type ErrorHandler func(pos syntax.Pos, msg string)

// errorf reports a semantic error at the given position. Analysis stops at
// the first error; later reports are dropped.
func (c *Checker) errorf(pos syntax.Pos, code ErrorCode, format string, args ...interface{}) {
	c.errorHint(pos, code, "", format, args...)
}

// errorHint is errorf with a "did you mean" suggestion attached.
func (c *Checker) errorHint(pos syntax.Pos, code ErrorCode, hint string, format string, args ...interface{}) {
	if c.first != nil {
		return
	}
	c.first = &Error{Pos: pos, Code: code, Msg: fmt.Sprintf(format, args...), Hint: hint}

	msg := c.first.Msg
	if hint != "" {
		msg = fmt.Sprintf("%s (did you mean %q?)", msg, hint)
	}
	if c.conf.Error != nil {
		c.conf.Error(pos, msg)
	}
	c.report(diag.Error, pos, msg)
}

// invalidAST reports a tree the parser could not have produced.
func (c *Checker) invalidAST(pos syntax.Pos, format string, args ...interface{}) {
	c.errorf(pos, InvalidAST, "invalid AST: "+format, args...)
}

// warnf reports a problem that does not reject the program.
func (c *Checker) warnf(pos syntax.Pos, format string, args ...interface{}) {
	c.warnings++
	c.report(diag.Warning, pos, fmt.Sprintf(format, args...))
}

func (c *Checker) report(sev diag.Severity, pos syntax.Pos, msg string) {
	if c.conf.Diag != nil {
		c.conf.Diag.Report(diag.Entry{Severity: sev, Phase: diag.PhaseCheck, Pos: pos, Msg: msg})
	}
}
