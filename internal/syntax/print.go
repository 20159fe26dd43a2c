package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// child prints a labeled sub-node one level deeper.
func (p *printer) child(label string, n Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(n)
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		p.printf("Program %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *DeclStmt:
		p.printf("DeclStmt %s %s\n", n.pos, n.Type)
		p.indent++
		p.printf("Name: %s\n", n.Name.Value)
		if n.Value != nil {
			p.child("Value", n.Value)
		}
		p.indent--

	case *RoutineDecl:
		p.printf("RoutineDecl %s\n", n.pos)
		p.indent++
		p.printf("Name: %s\n", n.Name.Value)
		if len(n.Body) > 0 {
			p.printf("Body:\n")
			p.indent++
			for _, s := range n.Body {
				p.print(s)
			}
			p.indent--
		}
		p.indent--

	case *CallStmt:
		if n.Marked {
			p.printf("CallStmt %s %s!\n", n.pos, n.Name.Value)
		} else {
			p.printf("CallStmt %s %s\n", n.pos, n.Name.Value)
		}

	case *OutStmt:
		p.printf("OutStmt %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *Name:
		p.printf("Name %s %q\n", n.pos, n.Value)

	case *BasicLit:
		p.printf("BasicLit %s %s %q\n", n.pos, n.Kind, n.Value)

	case *ParenExpr:
		p.printf("ParenExpr %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *Interpolation:
		p.printf("Interpolation %s\n", n.pos)
		p.indent++
		for _, f := range n.Fragments {
			p.print(f)
		}
		p.indent--

	case *LitFragment:
		p.printf("Text %s %q\n", n.pos, n.Text)

	case *RefFragment:
		p.printf("Ref %s %s\n", n.pos, n.Name.Value)

	case *Operation:
		p.printf("Operation %s %s\n", n.pos, n.Op)
		p.indent++
		p.child("X", n.X)
		p.child("Y", n.Y)
		p.indent--

	case *RandomExpr:
		p.printf("RandomExpr %s\n", n.pos)
		p.indent++
		p.child("Min", n.Min)
		p.child("Max", n.Max)
		p.child("Charset", n.Charset)
		p.indent--

	case *UnaryExpr:
		p.printf("UnaryExpr %s %s\n", n.pos, n.Op)
		p.indent++
		p.print(n.X)
		p.indent--

	case *ReplaceExpr:
		p.printf("ReplaceExpr %s\n", n.pos)
		p.indent++
		p.child("X", n.X)
		p.child("Target", n.Target)
		p.child("With", n.With)
		p.indent--

	case *CipherExpr:
		p.printf("CipherExpr %s %s\n", n.pos, n.Op)
		p.indent++
		p.child("X", n.X)
		p.child("Key", n.Key)
		p.indent--

	default:
		p.printf("<%T>\n", node)
	}
}

// ExprString renders an expression back in source form.
func ExprString(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr) {
	switch x := e.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Name:
		b.WriteString(x.Value)
	case *BasicLit:
		if x.Kind == IntLit {
			b.WriteString(x.Value)
		} else {
			b.WriteString(strings.ReplaceAll(quote(x.Value), "$", `\$`))
		}
	case *ParenExpr:
		b.WriteByte('(')
		writeExpr(b, x.X)
		b.WriteByte(')')
	case *Interpolation:
		b.WriteByte('"')
		for _, f := range x.Fragments {
			switch f := f.(type) {
			case *LitFragment:
				s := quote(f.Text)
				b.WriteString(strings.ReplaceAll(s[1:len(s)-1], "$", `\$`))
			case *RefFragment:
				b.WriteString("${" + f.Name.Value + "}")
			}
		}
		b.WriteByte('"')
	case *Operation:
		writeExpr(b, x.X)
		b.WriteString(" " + x.Op.String() + " ")
		writeExpr(b, x.Y)
	case *RandomExpr:
		writeCall(b, Rnd, x.Min, x.Max, x.Charset)
	case *UnaryExpr:
		writeCall(b, x.Op, x.X)
	case *ReplaceExpr:
		writeCall(b, Rpl, x.X, x.Target, x.With)
	case *CipherExpr:
		writeCall(b, x.Op, x.X, x.Key)
	default:
		fmt.Fprintf(b, "<%T>", e)
	}
}

func writeCall(b *strings.Builder, fn Builtin, args ...Expr) {
	b.WriteString(fn.String())
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		writeExpr(b, a)
	}
	b.WriteByte(')')
}

// quote produces a double-quoted literal using only the escapes the scanner
// understands.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\t':
			b.WriteString(`\t`)
		case c == '\r':
			b.WriteString(`\r`)
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
