package interp

import (
	"strconv"
	"strings"

	"github.com/you-not-fish/weft/internal/syntax"
	"github.com/you-not-fish/weft/internal/types"
)

// expr evaluates e to text. On a runtime error it reports the error and
// yields the text documented for the failing operation.
func (in *interpreter) expr(e syntax.Expr) string {
	switch e := e.(type) {
	case *syntax.BasicLit:
		if e.Kind == syntax.IntLit {
			n, err := e.Int()
			if err != nil {
				in.errorf(e.Pos(), Unsupported, "bad integer %q", e.Value)
				return ""
			}
			return strconv.FormatInt(n, 10)
		}
		return e.Value

	case *syntax.Name:
		return in.name(e)

	case *syntax.ParenExpr:
		return in.expr(e.X)

	case *syntax.Interpolation:
		return in.interpolation(e)

	case *syntax.Operation:
		in.errorf(e.Pos(), Unsupported, "arithmetic (%s) is not supported", e.Op)
		return ""

	case *syntax.RandomExpr:
		return in.random(e)

	case *syntax.UnaryExpr:
		x := in.expr(e.X)
		switch e.Op {
		case syntax.Rev:
			return Reverse(x)
		case syntax.Tup:
			return ToUpper(x)
		case syntax.Tlo:
			return ToLower(x)
		case syntax.Len:
			return strconv.Itoa(Length(x))
		}
		in.errorf(e.Pos(), Unsupported, "unknown operation %s", e.Op)
		return ""

	case *syntax.ReplaceExpr:
		x := in.expr(e.X)
		res, err := Replace(x, in.expr(e.Target), in.expr(e.With))
		if err != nil {
			in.errorf(e.Pos(), codeOf(err), "rpl: %v", err)
		}
		return res

	case *syntax.CipherExpr:
		x, key := in.expr(e.X), in.expr(e.Key)
		if e.Op == syntax.Enc {
			return Encrypt(x, key)
		}
		res, err := Decrypt(x, key)
		if err != nil {
			in.errorf(e.Pos(), codeOf(err), "dec: %v", err)
		}
		return res
	}

	in.errorf(posOf(e), Unsupported, "cannot evaluate %T", e)
	return ""
}

// name evaluates an identifier. A routine is executed for its side effects
// and yields "".
func (in *interpreter) name(n *syntax.Name) string {
	switch obj := in.table.Lookup(n.Value).(type) {
	case *types.Var:
		if obj.Type().Kind() == types.Buffer {
			in.warnf(n.Pos(), "buffer %s cannot be rendered", n.Value)
			return in.conf.Placeholder
		}
		return obj.Value().Text()
	case *types.Routine:
		in.call(n)
		return ""
	}
	in.errorf(n.Pos(), UndefinedName, "undefined: %s", n.Value)
	return ""
}

// interpolation concatenates literal text and referenced values in source
// order. Referents that cannot be rendered become the placeholder.
func (in *interpreter) interpolation(x *syntax.Interpolation) string {
	var b strings.Builder
	for _, f := range x.Fragments {
		switch f := f.(type) {
		case *syntax.LitFragment:
			b.WriteString(f.Text)
		case *syntax.RefFragment:
			b.WriteString(in.ref(f))
		}
	}
	return b.String()
}

func (in *interpreter) ref(f *syntax.RefFragment) string {
	name := f.Name.Value
	switch obj := in.table.Lookup(name).(type) {
	case nil:
		in.errorf(f.Pos(), UndefinedName, "undefined: %s", name)
	case *types.Var:
		if obj.Type().Kind() != types.Buffer {
			return obj.Value().Text()
		}
		in.warnf(f.Pos(), "buffer %s cannot be rendered", name)
	default:
		in.warnf(f.Pos(), "%s is not a variable", name)
	}
	return in.conf.Placeholder
}

// random evaluates rnd(min, max, charset).
func (in *interpreter) random(e *syntax.RandomExpr) string {
	minText, maxText, charset := in.expr(e.Min), in.expr(e.Max), in.expr(e.Charset)

	lo, err := strconv.ParseInt(strings.TrimSpace(minText), 10, 64)
	if err != nil {
		in.errorf(e.Min.Pos(), BadRandomBounds, "rnd: min %q is not an integer", minText)
		return ""
	}
	hi, err := strconv.ParseInt(strings.TrimSpace(maxText), 10, 64)
	if err != nil {
		in.errorf(e.Max.Pos(), BadRandomBounds, "rnd: max %q is not an integer", maxText)
		return ""
	}

	s, err := Random(in.conf.Rand, lo, hi, charset)
	if err != nil {
		in.errorf(e.Pos(), codeOf(err), "%v", err)
		return ""
	}
	return s
}
