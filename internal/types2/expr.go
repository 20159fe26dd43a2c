package types2

import (
	"github.com/you-not-fish/weft/internal/syntax"
	"github.com/you-not-fish/weft/internal/types"
)

// expr checks an expression and all of its operands.
func (c *Checker) expr(e syntax.Expr) {
	if c.failed() {
		return
	}

	switch e := e.(type) {
	case *syntax.Name:
		c.resolve(e)

	case *syntax.BasicLit:
		// constants are always valid

	case *syntax.ParenExpr:
		c.expr(e.X)

	case *syntax.Interpolation:
		c.interpolation(e)

	case *syntax.Operation:
		c.expr(e.X)
		c.expr(e.Y)

	case *syntax.RandomExpr:
		c.expr(e.Min)
		c.expr(e.Max)
		c.expr(e.Charset)

	case *syntax.UnaryExpr:
		c.expr(e.X)

	case *syntax.ReplaceExpr:
		c.expr(e.X)
		c.expr(e.Target)
		c.expr(e.With)

	case *syntax.CipherExpr:
		c.expr(e.X)
		c.expr(e.Key)

	case nil:
		c.invalidAST(syntax.Pos{}, "missing expression")

	default:
		c.invalidAST(e.Pos(), "unexpected expression %T", e)
	}
}

// interpolation checks the references of an interpolated string. A
// reference that cannot produce text is accepted with a warning.
func (c *Checker) interpolation(in *syntax.Interpolation) {
	for _, f := range in.Fragments {
		ref, ok := f.(*syntax.RefFragment)
		if !ok {
			continue
		}
		switch obj := c.resolve(ref.Name).(type) {
		case *types.Routine:
			c.warnf(ref.Pos(), "${%s} refers to a routine and renders as a placeholder", obj.Name())
		case *types.Var:
			if obj.Type().Kind() == types.Buffer {
				c.warnf(ref.Pos(), "${%s} refers to a buffer and renders as a placeholder", obj.Name())
			}
		}
		if c.failed() {
			return
		}
	}
}
