package codefmt

import (
	"go/token"
)

// FormatPos is a shorthand for [Formatter.Pos].
func FormatPos(filer Filer, pos token.Pos) string {
	return newByFiler(filer).Pos(pos)
}

func Errorf(filer Filer, poser Poser, format string, args ...any) error {
	return newByFiler(filer).Errorf(poser, format, args...)
}

type filer struct{ fset *token.FileSet }

func (f filer) FileSet() *token.FileSet { return f.fset }
func Fset(fset *token.FileSet) Filer    { return filer{fset} }

type poser struct{ pos token.Pos }

func (p poser) Pos() token.Pos { return p.pos }
func Pos(pos token.Pos) Poser  { return poser{pos} }

type span struct{ pos, end token.Pos }

func (s span) Pos() token.Pos       { return s.pos }
func (s span) End() token.Pos       { return s.end }
func Span(pos, end token.Pos) Poser { return span{pos, end} }
