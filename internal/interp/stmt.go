package interp

import (
	"github.com/you-not-fish/weft/internal/syntax"
	"github.com/you-not-fish/weft/internal/types"
)

// stmts executes a list of statements in order.
func (in *interpreter) stmts(list []syntax.Stmt) {
	for _, s := range list {
		in.stmt(s)
	}
}

// stmt executes a single statement.
func (in *interpreter) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.DeclStmt:
		in.declStmt(s)

	case *syntax.OutStmt:
		in.out.emitLine(in.expr(s.X))

	case *syntax.RoutineDecl:
		if !in.table.IsDefined(s.Name.Value) {
			in.table.Define(types.NewRoutine(s))
		}

	case *syntax.CallStmt:
		in.call(s.Name)

	default:
		in.errorf(posOf(s), Unsupported, "cannot execute %T", s)
	}
}

// declStmt evaluates the initializer and stores it in the variable,
// defining the variable first if analysis has not.
func (in *interpreter) declStmt(s *syntax.DeclStmt) {
	name := s.Name.Value
	typ := types.FromDecl(s.Type)
	if typ == nil {
		in.errorf(s.Pos(), Unsupported, "unknown declaration type %s", s.Type)
		return
	}

	var val types.Value
	switch typ.Kind() {
	case types.String:
		val = types.StringValue(in.expr(s.Value))
	case types.Atomic:
		n, ok := in.atomic(s.Value)
		if !ok {
			in.errorf(s.Pos(), Unsupported, "atomic %s: initializer is not an integer constant", name)
		}
		val = types.AtomicValue(n)
	case types.Buffer:
		val = types.BufferValue()
	}

	if !in.table.IsDefined(name) {
		in.table.Define(types.NewVar(s.Name.Pos(), name, typ))
	}
	if !in.table.SetValue(name, val) {
		in.errorf(s.Name.Pos(), Unsupported, "cannot store a %s in %s", typ, name)
		return
	}
	in.debugf(s.Pos(), "%s = %s", name, val)
}

func (in *interpreter) atomic(e syntax.Expr) (int64, bool) {
	lit, ok := e.(*syntax.BasicLit)
	if !ok || lit.Kind != syntax.IntLit {
		return 0, false
	}
	n, err := lit.Int()
	return n, err == nil
}

// call executes the routine called name against the shared table. Calls
// nested deeper than MaxCallDepth are skipped.
func (in *interpreter) call(name *syntax.Name) {
	switch obj := in.table.Lookup(name.Value).(type) {
	case nil:
		in.errorf(name.Pos(), UndefinedName, "routine %s is not defined", name.Value)
	case *types.Routine:
		if in.depth >= in.conf.MaxCallDepth {
			in.errorf(name.Pos(), CallDepthExceeded, "call of %s exceeds the maximum call depth %d",
				name.Value, in.conf.MaxCallDepth)
			return
		}
		in.depth++
		in.debugf(name.Pos(), "executing routine %s", name.Value)
		in.stmts(obj.Body())
		in.depth--
	default:
		in.errorf(name.Pos(), NotRoutine, "%s is not a routine", name.Value)
	}
}

func posOf(n syntax.Node) syntax.Pos {
	if n == nil {
		return syntax.Pos{}
	}
	return n.Pos()
}
