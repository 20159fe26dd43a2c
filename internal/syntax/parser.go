package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Maximum number of errors before aborting parse.
const maxErrors = 10

// SyntaxError represents a syntax error.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Parser performs syntax analysis on Weft source code.
type Parser struct {
	scanner *Scanner

	// Current token info (cached from scanner)
	tok Token
	lit string
	pos Pos

	// Error handling
	errh       func(pos Pos, msg string)
	errcnt     int
	first      error
	abort      bool
	incomplete bool // first error was hit at EOF
}

// NewParser creates a new Parser for the given source.
func NewParser(filename string, src io.Reader, errh func(pos Pos, msg string)) *Parser {
	p := &Parser{errh: errh}
	scanErrh := func(line, col uint32, msg string) {
		p.syntaxErrorAt(NewPos(filename, line, col), msg)
	}
	p.scanner = NewScanner(filename, src, scanErrh)
	p.next()
	return p
}

// SetASIEnabled passes the ASI setting to the underlying scanner.
func (p *Parser) SetASIEnabled(enabled bool) {
	p.scanner.SetASIEnabled(enabled)
}

// ----------------------------------------------------------------------------
// Token navigation

func (p *Parser) next() {
	p.scanner.Next()
	p.tok = p.scanner.Token()
	p.lit = p.scanner.Literal()
	p.pos = p.scanner.Pos()
}

// got consumes the current token if it is tok.
func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it matches tok, otherwise reports an error.
func (p *Parser) want(tok Token) {
	if !p.got(tok) {
		p.syntaxError("expected " + tok.String() + ", found " + p.describe())
		p.advance()
	}
}

// describe names the current token for error messages.
func (p *Parser) describe() string {
	switch p.tok {
	case _Name:
		return "name " + p.lit
	case _Literal:
		return "literal " + fmt.Sprintf("%q", p.lit)
	case _Semi:
		if p.lit == "newline" || p.lit == "EOF" {
			return p.lit
		}
	}
	return p.tok.String()
}

// ----------------------------------------------------------------------------
// Error handling

func (p *Parser) syntaxError(msg string) {
	p.syntaxErrorAt(p.pos, msg)
}

func (p *Parser) syntaxErrorAt(pos Pos, msg string) {
	if p.abort {
		return
	}
	if p.errcnt == 0 {
		p.first = &SyntaxError{Pos: pos, Msg: msg}
		p.incomplete = p.tok == _EOF || (p.tok == _Semi && p.lit == "EOF")
	}
	p.errcnt++

	if p.errh != nil {
		p.errh(pos, msg)
	}

	if p.errcnt >= maxErrors {
		p.abort = true
		if p.errh != nil {
			p.errh(pos, "too many errors; aborting parse")
		}
		p.tok = _EOF
	}
}

// advance skips tokens until a statement boundary for error recovery.
func (p *Parser) advance() {
	for p.tok != _EOF && p.tok != _Semi && p.tok != _Rbrace && !p.atStmtStart() {
		p.next()
	}
	if p.tok == _Semi {
		p.next()
	}
}

func (p *Parser) atStmtStart() bool {
	switch p.tok {
	case _String, _Atomic, _Buffer, _Routine, _Out, _Call:
		return true
	}
	return false
}

// Errors returns the number of errors encountered during parsing.
func (p *Parser) Errors() int {
	return p.errcnt
}

// FirstError returns the first error encountered, or nil if none.
func (p *Parser) FirstError() error {
	return p.first
}

// Incomplete reports whether parsing failed only because input ended early,
// e.g. inside an unclosed routine body.
func (p *Parser) Incomplete() bool {
	return p.errcnt > 0 && p.incomplete
}

// ----------------------------------------------------------------------------
// Parsing entry point

// Parse parses a complete program and returns the AST.
func (p *Parser) Parse() *Program {
	prog := &Program{}
	prog.pos = p.pos
	prog.Stmts = p.stmtList(_EOF)
	return prog
}

// stmtList parses statements until the closing token.
func (p *Parser) stmtList(close Token) []Stmt {
	var list []Stmt
	for !p.abort && p.tok != close && p.tok != _EOF {
		if p.got(_Semi) {
			continue
		}
		if s := p.stmt(); s != nil {
			list = append(list, s)
		}
	}
	return list
}

// ----------------------------------------------------------------------------
// Statements

func (p *Parser) stmt() Stmt {
	switch p.tok {
	case _String, _Atomic, _Buffer:
		return p.declStmt()
	case _Routine:
		return p.routineDecl()
	case _Out:
		return p.outStmt()
	case _Call, _Name:
		return p.callStmt()
	default:
		p.syntaxError("unexpected " + p.describe() + ", expected statement")
		if p.tok == _Rbrace {
			p.next()
		} else {
			p.advance()
		}
		return nil
	}
}

// declStmt parses: string|atomic|buffer name [= value]
func (p *Parser) declStmt() Stmt {
	s := &DeclStmt{}
	s.pos = p.pos
	typ, _ := ParseDeclType(p.tok.String())
	s.Type = typ
	p.next()

	s.Name = p.name()

	if !p.got(_Assign) {
		if s.Type != BufferType {
			p.syntaxError(fmt.Sprintf("missing initializer in %s declaration", s.Type))
			p.advance()
			return s
		}
		p.stmtEnd()
		return s
	}

	if s.Type == AtomicType {
		lit, ok := p.atomicLit()
		if !ok {
			return s
		}
		s.Value = lit
	} else {
		s.Value = p.expr()
	}
	p.stmtEnd()
	return s
}

// atomicLit parses an optionally negated integer literal. On failure it
// reports the error and skips to the next statement.
func (p *Parser) atomicLit() (*BasicLit, bool) {
	lit := &BasicLit{Kind: IntLit}
	lit.pos = p.pos
	neg := p.got(_Sub)
	if p.tok != _Literal || p.scanner.LitKind() != IntLit {
		p.syntaxError("atomic initializer must be an integer literal, found " + p.describe())
		p.advance()
		return nil, false
	}
	lit.Value = p.lit
	if neg {
		lit.Value = "-" + p.lit
	}
	if _, err := lit.Int(); err != nil {
		p.syntaxError("integer literal out of range: " + lit.Value)
	}
	p.next()
	return lit, true
}

// routineDecl parses: routine name { stmts }
func (p *Parser) routineDecl() Stmt {
	r := &RoutineDecl{}
	r.pos = p.pos
	p.want(_Routine)
	r.Name = p.name()

	p.want(_Lbrace)
	r.Body = p.stmtList(_Rbrace)
	r.Rbrace = p.pos
	p.want(_Rbrace)
	return r
}

// outStmt parses: out expr
func (p *Parser) outStmt() Stmt {
	s := &OutStmt{}
	s.pos = p.pos
	p.want(_Out)
	s.X = p.expr()
	p.stmtEnd()
	return s
}

// callStmt parses: name or name!
func (p *Parser) callStmt() Stmt {
	s := &CallStmt{Marked: p.tok == _Call}
	s.pos = p.pos
	s.Name = &Name{Value: p.lit}
	s.Name.pos = p.pos
	p.next()
	p.stmtEnd()
	return s
}

// stmtEnd consumes a statement terminator. A closing brace also ends a statement.
func (p *Parser) stmtEnd() {
	if p.tok == _Rbrace || p.tok == _EOF {
		return
	}
	p.want(_Semi)
}

// name parses an identifier and returns a Name node.
func (p *Parser) name() *Name {
	n := &Name{Value: p.lit}
	n.pos = p.pos
	if p.tok != _Name {
		p.syntaxError("expected identifier, found " + p.describe())
		n.Value = "_"
		return n
	}
	p.next()
	return n
}

// ----------------------------------------------------------------------------
// Expressions

func (p *Parser) expr() Expr {
	return p.binaryExpr(0)
}

// binaryExpr parses a binary expression with minimum precedence prec
// (precedence climbing, left associative).
func (p *Parser) binaryExpr(prec int) Expr {
	x := p.operand()

	for {
		oprec := p.tok.Precedence()
		if oprec <= prec {
			return x
		}
		op := &Operation{Op: p.tok, X: x}
		op.pos = x.Pos()
		p.next()
		op.Y = p.binaryExpr(oprec)
		x = op
	}
}

// operand parses a factor or a built-in call.
func (p *Parser) operand() Expr {
	switch p.tok {
	case _Name:
		n := &Name{Value: p.lit}
		n.pos = p.pos
		p.next()
		return n

	case _Literal:
		return p.literal()

	case _Lparen:
		pos := p.pos
		p.next()
		x := p.expr()
		p.want(_Rparen)
		paren := &ParenExpr{X: x}
		paren.pos = pos
		return paren

	case _Rnd, _Rev, _Tup, _Tlo, _Len, _Rpl, _Enc, _Dec:
		return p.builtinCall()

	default:
		p.syntaxError("expected operand, found " + p.describe())
		n := &Name{Value: "_"}
		n.pos = p.pos
		return n
	}
}

// literal turns the current literal token into a constant or an interpolation.
func (p *Parser) literal() Expr {
	pos := p.pos
	kind := p.scanner.LitKind()
	if kind != InterpLit {
		lit := &BasicLit{Value: p.lit, Kind: kind}
		lit.pos = pos
		if kind == StringLit {
			var b strings.Builder
			for _, seg := range p.scanner.Segments() {
				b.WriteString(seg.Text)
			}
			lit.Value = b.String()
		}
		p.next()
		return lit
	}

	in := &Interpolation{}
	in.pos = pos
	for _, seg := range p.scanner.Segments() {
		if seg.Ref {
			ref := &RefFragment{Name: &Name{Value: seg.Text}}
			ref.pos = seg.Pos
			ref.Name.pos = seg.Pos
			in.Fragments = append(in.Fragments, ref)
			continue
		}
		text := &LitFragment{Text: seg.Text}
		text.pos = seg.Pos
		in.Fragments = append(in.Fragments, text)
	}
	p.next()
	return in
}

var builtinTokens = map[Token]Builtin{
	_Rnd: Rnd,
	_Rev: Rev,
	_Tup: Tup,
	_Tlo: Tlo,
	_Len: Len,
	_Rpl: Rpl,
	_Enc: Enc,
	_Dec: Dec,
}

// builtinCall parses fn(args...) for a built-in operation.
func (p *Parser) builtinCall() Expr {
	pos := p.pos
	fn := builtinTokens[p.tok]
	p.next()

	p.want(_Lparen)
	var args []Expr
	if p.tok != _Rparen {
		args = append(args, p.expr())
		for p.got(_Comma) {
			args = append(args, p.expr())
		}
	}
	p.want(_Rparen)

	if len(args) != fn.NumArgs() {
		p.syntaxErrorAt(pos, fmt.Sprintf("%s expects %d arguments, found %d", fn, fn.NumArgs(), len(args)))
		for len(args) < fn.NumArgs() {
			blank := &BasicLit{Kind: StringLit}
			blank.pos = pos
			args = append(args, blank)
		}
	}

	switch fn {
	case Rnd:
		x := &RandomExpr{Min: args[0], Max: args[1], Charset: args[2]}
		x.pos = pos
		return x
	case Rpl:
		x := &ReplaceExpr{X: args[0], Target: args[1], With: args[2]}
		x.pos = pos
		return x
	case Enc, Dec:
		x := &CipherExpr{Op: fn, X: args[0], Key: args[1]}
		x.pos = pos
		return x
	default:
		x := &UnaryExpr{Op: fn, X: args[0]}
		x.pos = pos
		return x
	}
}
