package types2

import (
	"fmt"

	"github.com/you-not-fish/weft/internal/diag"
	"github.com/you-not-fish/weft/internal/syntax"
	"github.com/you-not-fish/weft/internal/types"
)

// stmts checks a list of statements, stopping at the first error.
func (c *Checker) stmts(list []syntax.Stmt) {
	for _, s := range list {
		if c.failed() {
			return
		}
		c.stmt(s)
	}
}

// stmt checks a single statement.
func (c *Checker) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.DeclStmt:
		c.declStmt(s)

	case *syntax.RoutineDecl:
		c.routineDecl(s)

	case *syntax.CallStmt:
		c.callStmt(s)

	case *syntax.OutStmt:
		c.expr(s.X)

	case nil:
		c.invalidAST(syntax.Pos{}, "missing statement")

	default:
		c.invalidAST(s.Pos(), "unexpected statement %T", s)
	}
}

// declStmt checks a variable declaration. The initializer is checked before
// the name is defined, so a variable cannot refer to itself.
func (c *Checker) declStmt(s *syntax.DeclStmt) {
	if s.Name == nil {
		c.invalidAST(s.Pos(), "declaration without a name")
		return
	}
	name := s.Name.Value
	if c.table.IsDefined(name) {
		c.errorf(s.Name.Pos(), DuplicateDeclaration, "%s redeclared", name)
		return
	}

	typ := types.FromDecl(s.Type)
	if typ == nil {
		c.invalidAST(s.Pos(), "unknown declaration type %s", s.Type)
		return
	}

	switch typ.Kind() {
	case types.String:
		if s.Value == nil {
			c.invalidAST(s.Pos(), "string %s has no initializer", name)
			return
		}
		c.expr(s.Value)

	case types.Atomic:
		lit, ok := s.Value.(*syntax.BasicLit)
		if !ok || lit.Kind != syntax.IntLit {
			c.invalidAST(s.Pos(), "atomic %s must be initialized with an integer constant", name)
			return
		}
		if _, err := lit.Int(); err != nil {
			c.invalidAST(lit.Pos(), "atomic %s: bad integer %q", name, lit.Value)
			return
		}
	}
	if c.failed() {
		return
	}

	c.table.Define(types.NewVar(s.Name.Pos(), name, typ))
	c.report(diag.Debug, s.Pos(), fmt.Sprintf("declared %s %s", typ, name))
}

// routineDecl checks a routine definition. The routine is defined before
// its body is checked, so it may call itself.
func (c *Checker) routineDecl(s *syntax.RoutineDecl) {
	if s.Name == nil {
		c.invalidAST(s.Pos(), "routine without a name")
		return
	}
	name := s.Name.Value
	if c.table.IsDefined(name) {
		c.errorf(s.Name.Pos(), DuplicateRoutine, "routine %s redefined", name)
		return
	}

	c.table.Define(types.NewRoutine(s))
	c.report(diag.Debug, s.Pos(), "defined routine "+name)

	c.stmts(s.Body)
}

// callStmt checks a routine call.
func (c *Checker) callStmt(s *syntax.CallStmt) {
	if s.Name == nil {
		c.invalidAST(s.Pos(), "call without a routine name")
		return
	}
	name := s.Name.Value
	switch obj := c.table.Lookup(name).(type) {
	case nil:
		c.errorHint(s.Name.Pos(), UndefinedRoutine, suggest(name, c.routineNames()),
			"undefined routine: %s", name)
	case *types.Var:
		c.warnf(s.Name.Pos(), "%s is a %s variable, not a routine", name, obj.Type())
	}
}

// routineNames lists the defined routines in definition order.
func (c *Checker) routineNames() []string {
	var list []string
	for _, n := range c.table.Names() {
		if c.table.LookupRoutine(n) != nil {
			list = append(list, n)
		}
	}
	return list
}
