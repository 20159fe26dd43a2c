package syntax

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAML interchange form of a program:
//
//	statements:
//	  - declare: {name: who, type: string, value: {string: world}}
//	  - routine: {name: greet, body: [{out: {interp: [{text: "hi "}, {ref: who}]}}]}
//	  - call: greet
//
// Every statement and expression is a single-key mapping naming its kind.
// Node positions are taken from the YAML line and column.

// DecodeYAML reads a program from its YAML interchange form.
func DecodeYAML(r io.Reader, filename string) (*Program, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			prog := &Program{}
			prog.pos = NewPos(filename, 1, 1)
			return prog, nil
		}
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	d := &yamlDecoder{filename: filename}
	return d.program(&doc)
}

type yamlDecoder struct {
	filename string
}

func (d *yamlDecoder) pos(n *yaml.Node) Pos {
	return NewPos(d.filename, uint32(n.Line), uint32(n.Column))
}

func (d *yamlDecoder) errorf(n *yaml.Node, format string, args ...interface{}) error {
	return &SyntaxError{Pos: d.pos(n), Msg: fmt.Sprintf(format, args...)}
}

func (d *yamlDecoder) program(doc *yaml.Node) (*Program, error) {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	prog := &Program{}
	prog.pos = d.pos(root)

	fields, err := d.fields(root, "statements")
	if err != nil {
		return nil, err
	}
	if list, ok := fields["statements"]; ok {
		prog.Stmts, err = d.stmtList(list)
		if err != nil {
			return nil, err
		}
	}
	return prog, nil
}

func (d *yamlDecoder) stmtList(n *yaml.Node) ([]Stmt, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, "expected a list of statements")
	}
	list := make([]Stmt, 0, len(n.Content))
	for _, item := range n.Content {
		s, err := d.stmt(item)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, nil
}

// single unpacks a one-key mapping into its key and value.
func (d *yamlDecoder) single(n *yaml.Node, what string) (string, *yaml.Node, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return "", nil, d.errorf(n, "%s must be a mapping with exactly one key", what)
	}
	return n.Content[0].Value, n.Content[1], nil
}

// fields unpacks a mapping, rejecting keys not in allowed.
func (d *yamlDecoder) fields(n *yaml.Node, allowed ...string) (map[string]*yaml.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "expected a mapping with keys %s", strings.Join(allowed, ", "))
	}
	m := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		known := false
		for _, a := range allowed {
			if k.Value == a {
				known = true
				break
			}
		}
		if !known {
			return nil, d.errorf(k, "unknown field %q", k.Value)
		}
		if _, dup := m[k.Value]; dup {
			return nil, d.errorf(k, "duplicate field %q", k.Value)
		}
		m[k.Value] = v
	}
	return m, nil
}

// require fetches mandatory fields from m in order.
func (d *yamlDecoder) require(n *yaml.Node, m map[string]*yaml.Node, keys ...string) ([]*yaml.Node, error) {
	out := make([]*yaml.Node, len(keys))
	for i, k := range keys {
		v, ok := m[k]
		if !ok {
			return nil, d.errorf(n, "missing field %q", k)
		}
		out[i] = v
	}
	return out, nil
}

func (d *yamlDecoder) scalar(n *yaml.Node, what string) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", d.errorf(n, "%s must be a scalar", what)
	}
	return n.Value, nil
}

func (d *yamlDecoder) name(n *yaml.Node) (*Name, error) {
	v, err := d.scalar(n, "name")
	if err != nil {
		return nil, err
	}
	if !isIdent(v) {
		return nil, d.errorf(n, "invalid identifier %q", v)
	}
	nm := &Name{Value: v}
	nm.pos = d.pos(n)
	return nm, nil
}

func (d *yamlDecoder) stmt(n *yaml.Node) (Stmt, error) {
	kind, body, err := d.single(n, "statement")
	if err != nil {
		return nil, err
	}
	switch kind {
	case "declare":
		m, err := d.fields(body, "name", "type", "value")
		if err != nil {
			return nil, err
		}
		req, err := d.require(body, m, "name", "type")
		if err != nil {
			return nil, err
		}
		s := &DeclStmt{}
		s.pos = d.pos(n)
		if s.Name, err = d.name(req[0]); err != nil {
			return nil, err
		}
		typ, ok := ParseDeclType(req[1].Value)
		if !ok {
			return nil, d.errorf(req[1], "unknown declaration type %q", req[1].Value)
		}
		s.Type = typ
		if v, ok := m["value"]; ok {
			if s.Value, err = d.expr(v); err != nil {
				return nil, err
			}
		}
		return s, nil

	case "routine":
		m, err := d.fields(body, "name", "body")
		if err != nil {
			return nil, err
		}
		req, err := d.require(body, m, "name")
		if err != nil {
			return nil, err
		}
		r := &RoutineDecl{}
		r.pos = d.pos(n)
		if r.Name, err = d.name(req[0]); err != nil {
			return nil, err
		}
		if b, ok := m["body"]; ok {
			if r.Body, err = d.stmtList(b); err != nil {
				return nil, err
			}
		}
		return r, nil

	case "call":
		s := &CallStmt{}
		s.pos = d.pos(n)
		if s.Name, err = d.name(body); err != nil {
			return nil, err
		}
		return s, nil

	case "out":
		s := &OutStmt{}
		s.pos = d.pos(n)
		if s.X, err = d.expr(body); err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, d.errorf(n.Content[0], "unknown statement kind %q", kind)
}

func (d *yamlDecoder) expr(n *yaml.Node) (Expr, error) {
	kind, body, err := d.single(n, "expression")
	if err != nil {
		return nil, err
	}
	pos := d.pos(n)

	switch kind {
	case "int":
		v, err := d.scalar(body, "int")
		if err != nil {
			return nil, err
		}
		lit := &BasicLit{Value: v, Kind: IntLit}
		lit.pos = pos
		if _, err := lit.Int(); err != nil {
			return nil, d.errorf(body, "invalid integer %q", v)
		}
		return lit, nil

	case "string":
		v, err := d.scalar(body, "string")
		if err != nil {
			return nil, err
		}
		lit := &BasicLit{Value: v, Kind: StringLit}
		lit.pos = pos
		return lit, nil

	case "name":
		return d.name(body)

	case "paren":
		x, err := d.expr(body)
		if err != nil {
			return nil, err
		}
		p := &ParenExpr{X: x}
		p.pos = pos
		return p, nil

	case "interp":
		if body.Kind != yaml.SequenceNode {
			return nil, d.errorf(body, "interp must be a list of fragments")
		}
		in := &Interpolation{}
		in.pos = pos
		for _, item := range body.Content {
			f, err := d.fragment(item)
			if err != nil {
				return nil, err
			}
			in.Fragments = append(in.Fragments, f)
		}
		return in, nil

	case "arith":
		args, err := d.args(body, "op", "x", "y")
		if err != nil {
			return nil, err
		}
		var op Token
		switch args[0].Value {
		case "+":
			op = Add
		case "-":
			op = Sub
		case "*":
			op = Mul
		case "/":
			op = Div
		default:
			return nil, d.errorf(args[0], "unknown operator %q", args[0].Value)
		}
		xs, err := d.exprs(args[1:]...)
		if err != nil {
			return nil, err
		}
		o := &Operation{Op: op, X: xs[0], Y: xs[1]}
		o.pos = pos
		return o, nil

	case "rnd":
		xs, err := d.builtinArgs(body, "min", "max", "charset")
		if err != nil {
			return nil, err
		}
		x := &RandomExpr{Min: xs[0], Max: xs[1], Charset: xs[2]}
		x.pos = pos
		return x, nil

	case "rev", "tup", "tlo", "len":
		arg, err := d.expr(body)
		if err != nil {
			return nil, err
		}
		x := &UnaryExpr{Op: builtinTokens[LookupKeyword(kind)], X: arg}
		x.pos = pos
		return x, nil

	case "rpl":
		xs, err := d.builtinArgs(body, "in", "target", "with")
		if err != nil {
			return nil, err
		}
		x := &ReplaceExpr{X: xs[0], Target: xs[1], With: xs[2]}
		x.pos = pos
		return x, nil

	case "enc", "dec":
		xs, err := d.builtinArgs(body, "in", "key")
		if err != nil {
			return nil, err
		}
		x := &CipherExpr{Op: builtinTokens[LookupKeyword(kind)], X: xs[0], Key: xs[1]}
		x.pos = pos
		return x, nil
	}
	return nil, d.errorf(n.Content[0], "unknown expression kind %q", kind)
}

func (d *yamlDecoder) args(n *yaml.Node, keys ...string) ([]*yaml.Node, error) {
	m, err := d.fields(n, keys...)
	if err != nil {
		return nil, err
	}
	return d.require(n, m, keys...)
}

func (d *yamlDecoder) builtinArgs(n *yaml.Node, keys ...string) ([]Expr, error) {
	nodes, err := d.args(n, keys...)
	if err != nil {
		return nil, err
	}
	return d.exprs(nodes...)
}

func (d *yamlDecoder) exprs(nodes ...*yaml.Node) ([]Expr, error) {
	xs := make([]Expr, len(nodes))
	for i, n := range nodes {
		x, err := d.expr(n)
		if err != nil {
			return nil, err
		}
		xs[i] = x
	}
	return xs, nil
}

func (d *yamlDecoder) fragment(n *yaml.Node) (Fragment, error) {
	kind, body, err := d.single(n, "fragment")
	if err != nil {
		return nil, err
	}
	switch kind {
	case "text":
		v, err := d.scalar(body, "text")
		if err != nil {
			return nil, err
		}
		f := &LitFragment{Text: v}
		f.pos = d.pos(n)
		return f, nil
	case "ref":
		nm, err := d.name(body)
		if err != nil {
			return nil, err
		}
		f := &RefFragment{Name: nm}
		f.pos = d.pos(n)
		return f, nil
	}
	return nil, d.errorf(n.Content[0], "unknown fragment kind %q", kind)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !isNameStart(r) && (i == 0 || !isDecimal(r)) {
			return false
		}
	}
	return LookupKeyword(s) == _Name
}

// ----------------------------------------------------------------------------
// Encoding

// EncodeYAML writes prog in its YAML interchange form.
func EncodeYAML(w io.Writer, prog *Program) error {
	stmts := seqNode()
	for _, s := range prog.Stmts {
		stmts.Content = append(stmts.Content, stmtYAML(s))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(mapNode("statements", stmts)); err != nil {
		return err
	}
	return enc.Close()
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func seqNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode}
}

// mapNode builds a mapping from alternating key, value pairs. Values are
// *yaml.Node or string.
func mapNode(kv ...interface{}) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(kv); i += 2 {
		v, ok := kv[i+1].(*yaml.Node)
		if !ok {
			v = strNode(kv[i+1].(string))
		}
		m.Content = append(m.Content, strNode(kv[i].(string)), v)
	}
	return m
}

func stmtYAML(s Stmt) *yaml.Node {
	switch s := s.(type) {
	case *DeclStmt:
		fields := []interface{}{"name", s.Name.Value, "type", s.Type.String()}
		if s.Value != nil {
			fields = append(fields, "value", exprYAML(s.Value))
		}
		return mapNode("declare", mapNode(fields...))
	case *RoutineDecl:
		body := seqNode()
		for _, b := range s.Body {
			body.Content = append(body.Content, stmtYAML(b))
		}
		return mapNode("routine", mapNode("name", s.Name.Value, "body", body))
	case *CallStmt:
		return mapNode("call", s.Name.Value)
	case *OutStmt:
		return mapNode("out", exprYAML(s.X))
	}
	panic(fmt.Sprintf("syntax: cannot encode %T", s))
}

func exprYAML(e Expr) *yaml.Node {
	switch x := e.(type) {
	case *Name:
		return mapNode("name", x.Value)
	case *BasicLit:
		if x.Kind == IntLit {
			return mapNode("int", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: x.Value})
		}
		return mapNode("string", x.Value)
	case *ParenExpr:
		return mapNode("paren", exprYAML(x.X))
	case *Interpolation:
		frags := seqNode()
		for _, f := range x.Fragments {
			switch f := f.(type) {
			case *LitFragment:
				frags.Content = append(frags.Content, mapNode("text", f.Text))
			case *RefFragment:
				frags.Content = append(frags.Content, mapNode("ref", f.Name.Value))
			}
		}
		return mapNode("interp", frags)
	case *Operation:
		return mapNode("arith", mapNode("op", x.Op.String(), "x", exprYAML(x.X), "y", exprYAML(x.Y)))
	case *RandomExpr:
		return mapNode("rnd", mapNode("min", exprYAML(x.Min), "max", exprYAML(x.Max), "charset", exprYAML(x.Charset)))
	case *UnaryExpr:
		return mapNode(x.Op.String(), exprYAML(x.X))
	case *ReplaceExpr:
		return mapNode("rpl", mapNode("in", exprYAML(x.X), "target", exprYAML(x.Target), "with", exprYAML(x.With)))
	case *CipherExpr:
		return mapNode(x.Op.String(), mapNode("in", exprYAML(x.X), "key", exprYAML(x.Key)))
	}
	panic(fmt.Sprintf("syntax: cannot encode %T", e))
}
