package types2

import (
	"github.com/you-not-fish/weft/internal/syntax"
	"github.com/you-not-fish/weft/internal/types"
)

// Checker is the semantic analyzer.
type Checker struct {
	conf  *Config
	table *types.Table

	// Error tracking
	first    *Error // first error; analysis stops here
	warnings int
}

// program checks every top-level statement in source order.
func (c *Checker) program(prog *syntax.Program) {
	if prog == nil {
		c.invalidAST(syntax.Pos{}, "missing program")
		return
	}
	c.stmts(prog.Stmts)
}

// failed reports whether analysis has stopped.
func (c *Checker) failed() bool {
	return c.first != nil
}

// resolve looks up name and reports an undefined identifier.
func (c *Checker) resolve(name *syntax.Name) types.Object {
	if obj := c.table.Lookup(name.Value); obj != nil {
		return obj
	}
	c.errorHint(name.Pos(), UndefinedIdentifier, suggest(name.Value, c.table.Names()),
		"undefined: %s", name.Value)
	return nil
}
