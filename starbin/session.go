package starbin

import (
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Session evaluates chunks of Starlark against one set of globals, the
// way an interactive prompt does. Globals are not frozen between chunks.
type Session struct {
	Thread  *starlark.Thread
	Globals starlark.StringDict
	Options syntax.FileOptions
}

// NewSession creates a session with the binary builtins predeclared.
// print receives the output of the Starlark print builtin; when nil,
// printing is discarded.
func NewSession(name string, print func(msg string)) *Session {
	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			if print != nil {
				print(msg)
			}
		},
	}

	return &Session{
		Thread:  thread,
		Globals: Predeclared(),
		Options: syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
			GlobalReassign:  true,
		},
	}
}

// soleExpr returns the expression of a chunk that is a single
// expression statement.
func soleExpr(f *syntax.File) syntax.Expr {
	if len(f.Stmts) == 1 {
		if stmt, ok := f.Stmts[0].(*syntax.ExprStmt); ok {
			return stmt.X
		}
	}
	return nil
}

// Eval runs a chunk. The value of a chunk that is a single expression is
// returned; other chunks return None.
func (s *Session) Eval(src string) (value starlark.Value, err error) {
	file, err := s.Options.Parse(s.Thread.Name, src, 0)
	if err != nil {
		return
	}

	if expr := soleExpr(file); expr != nil {
		return starlark.EvalExprOptions(&s.Options, s.Thread, expr, s.Globals)
	}

	err = starlark.ExecREPLChunk(file, s.Thread, s.Globals)
	if err != nil {
		return
	}

	value = starlark.None

	return
}
