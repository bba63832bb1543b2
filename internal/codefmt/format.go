package codefmt

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"
)

// Formatter formats positions and code fragments of a file set.
type Formatter struct {
	Fset *token.FileSet
}

func New(fset *token.FileSet) Formatter {
	return Formatter{fset}
}

func newByFiler(filer Filer) Formatter {
	if filer == nil {
		return New(nil)
	}
	return New(filer.FileSet())
}

// Pos returns the "file:line:column" form of the position.
func (f Formatter) Pos(pos token.Pos) string {
	if f.Fset == nil {
		return FormatPosition(token.Position{})
	}
	return FormatPosition(f.Fset.Position(pos))
}

// wd is the cached working directory.
var wd, _ = os.Getwd()

func FormatPosition(pos token.Position) string {
	if !pos.IsValid() {
		return "-:-"
	}

	filename := pos.Filename
	if rel, err := filepath.Rel(wd, filename); err == nil {
		filename = rel
	}

	return fmt.Sprintf("%s:%d:%d", filename, pos.Line, pos.Column)
}
