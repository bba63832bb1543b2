package codefmt

import (
	"fmt"
	"go/token"
)

type (
	Filer interface{ FileSet() *token.FileSet }
	Poser interface{ Pos() token.Pos }
	Ender interface{ End() token.Pos }
	Coder interface{ Code() string }
)

func (f Formatter) wrapPrintfArgs(args []any) []any {
	for i, arg := range args {
		switch arg := arg.(type) {
		case token.Pos, token.Position:
			args[i] = formatArg{arg, f}
		case Poser, Coder:
			args[i] = formatArg{arg, f}
		}
	}
	return args
}

type formatArg struct {
	x   any
	fmt Formatter
}

func (f formatArg) Code() (string, bool) {
	if c, ok := f.x.(Coder); ok {
		return c.Code(), true
	}
	return "", false
}

func (f formatArg) Position() *token.Position {
	switch x := f.x.(type) {
	case token.Position:
		return &x
	case token.Pos:
		if f.fmt.Fset == nil {
			return nil
		}
		p := f.fmt.Fset.Position(x)
		return &p
	case Poser:
		if f.fmt.Fset == nil {
			return nil
		}
		p := f.fmt.Fset.Position(x.Pos())
		return &p
	}
	return nil
}

// Format implements fmt.Formatter interface.
//
// Supported verbs:
//
//	%c: Coder (e.g., syntax.Tree, syntax.Path) - source code form
//	%b: token.Pos, token.Position, Poser - file:line:column form
//
// For other verbs, it falls back to the default formatting of fmt package.
func (f formatArg) Format(s fmt.State, verb rune) {
	switch verb {
	case 'c':
		code, ok := f.Code()
		if !ok {
			fmt.Fprintf(s, "[%%c cannot format %T]", f.x)
			return
		}
		_, _ = s.Write([]byte(code))

	case 'b':
		pos := f.Position()
		if pos == nil {
			fmt.Fprintf(s, "[%%b cannot format %T]", f.x)
			return
		}
		_, _ = s.Write([]byte(FormatPosition(*pos)))

	default:
		fmt.Fprintf(s, fmt.FormatString(s, verb), f.x)
	}
}

func (f Formatter) Sprintf(format string, args ...any) string {
	args = f.wrapPrintfArgs(args)
	return fmt.Sprintf(format, args...)
}
