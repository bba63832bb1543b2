package syntax

import (
	"go/token"

	"github.com/Robbepop/enum-newtype/internal/codefmt"
)

// cursor walks a flat list of token trees.
type cursor struct {
	fset  *token.FileSet
	trees []Tree
	i     int

	// end is reported for errors at the end of the trees, usually the
	// closing delimiter of the enclosing group.
	end token.Pos
}

func newCursor(fset *token.FileSet, trees []Tree, end token.Pos) *cursor {
	if !end.IsValid() && len(trees) != 0 {
		end = trees[len(trees)-1].end
	}
	return &cursor{fset: fset, trees: trees, end: end}
}

func (c *cursor) FileSet() *token.FileSet { return c.fset }

func (c *cursor) eof() bool { return c.i >= len(c.trees) }

// peek returns the n-th tree from the current one. The zero Tree is returned
// beyond the end.
func (c *cursor) peek(n int) Tree {
	if c.i+n >= len(c.trees) {
		return Tree{}
	}
	return c.trees[c.i+n]
}

func (c *cursor) next() Tree {
	t := c.peek(0)
	c.i++
	return t
}

// rest returns the remaining trees and moves the cursor to the end.
func (c *cursor) rest() []Tree {
	if c.eof() {
		return nil
	}
	rest := c.trees[c.i:]
	c.i = len(c.trees)
	return rest
}

// errorf reports an error at the current tree or at the end.
func (c *cursor) errorf(format string, args ...any) error {
	if c.eof() {
		return codefmt.Errorf(c, codefmt.Pos(c.end), format, args...)
	}
	return codefmt.Errorf(c, c.peek(0), format, args...)
}

// expectPunct consumes the punctuation op or fails.
func (c *cursor) expectPunct(op string) (Tree, error) {
	if !c.peek(0).IsPunct(op) {
		return Tree{}, c.errorf("expected `%s`", op)
	}
	return c.next(), nil
}

// expectIdent consumes a non-keyword identifier or fails.
func (c *cursor) expectIdent() (Tree, error) {
	t := c.peek(0)
	if t.Kind != Ident || IsKeyword(t.Text) {
		return Tree{}, c.errorf("expected identifier")
	}
	return c.next(), nil
}

// until consumes trees until stop reports true for a tree outside angle
// brackets, or the end. The stopping tree is not consumed. Angle brackets are
// tracked so that commas in generic arguments like "Map<K, V>" do not stop.
func (c *cursor) until(stop func(Tree) bool) []Tree {
	start := c.i
	depth := 0
	for !c.eof() {
		t := c.peek(0)
		if depth == 0 && stop(t) {
			break
		}
		switch {
		case t.IsPunct("<"):
			depth++
		case t.IsPunct(">") && depth > 0:
			depth--
		}
		c.i++
	}
	return c.trees[start:c.i]
}

// untilComma consumes trees until a top-level comma or the end.
func (c *cursor) untilComma() []Tree {
	return c.until(func(t Tree) bool { return t.IsPunct(",") })
}

// skipComma consumes a comma separating list entries. It fails if neither a
// comma nor the end follows.
func (c *cursor) skipComma() error {
	if c.eof() {
		return nil
	}
	if !c.peek(0).IsPunct(",") {
		return c.errorf("expected `,`")
	}
	c.next()
	return nil
}
