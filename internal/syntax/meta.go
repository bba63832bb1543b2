package syntax

import (
	"go/token"
)

// MetaKind is the form of a [Meta] item.
type MetaKind int

const (
	MetaPath      MetaKind = iota + 1 // path
	MetaList                          // path(...)
	MetaNameValue                     // path = expr
)

// ExprKind is a coarse classification of an expression.
type ExprKind int

const (
	ExprPath     ExprKind = iota + 1 // a, a::b, ::a::b
	ExprLit                          // "s", 42, -1, true
	ExprVerbatim                     // anything else
)

// Expr is the value of a name-value [Meta].
type Expr struct {
	Kind  ExprKind
	Path  Path
	Trees []Tree
}

func (e Expr) Pos() token.Pos { pos, _ := Span(e.Trees); return pos }
func (e Expr) End() token.Pos { _, end := Span(e.Trees); return end }
func (e Expr) Code() string   { return Format(e.Trees) }

// Meta is an entry of an attribute argument list.
type Meta struct {
	Kind  MetaKind
	Path  Path
	Group Tree // MetaList
	Eq    Tree // MetaNameValue
	Value Expr // MetaNameValue
}

func (m Meta) Pos() token.Pos { return m.Path.pos }

func (m Meta) End() token.Pos {
	switch m.Kind {
	case MetaList:
		return m.Group.end
	case MetaNameValue:
		return m.Value.End()
	}
	return m.Path.end
}

// Tokens returns the token trees of the meta.
func (m Meta) Tokens() []Tree {
	trees := m.Path.Tokens()
	switch m.Kind {
	case MetaList:
		trees = append(trees, m.Group)
	case MetaNameValue:
		trees = append(trees, m.Eq)
		trees = append(trees, m.Value.Trees...)
	}
	return trees
}

func (m Meta) Code() string { return Format(m.Tokens()) }

// ParseMetaList parses a comma-separated list of meta items, the grammar of
// attribute arguments:
//
//	name = OpVariants, aliases = true
//
// A trailing comma and an empty list are allowed. end is the position
// reported for errors at the end of the list.
func ParseMetaList(fset *token.FileSet, trees []Tree, end token.Pos) ([]Meta, error) {
	c := newCursor(fset, trees, end)

	var metas []Meta
	for !c.eof() {
		meta, err := c.parseMeta()
		if err != nil {
			return nil, err
		}
		metas = append(metas, meta)

		if err := c.skipComma(); err != nil {
			return nil, err
		}
	}
	return metas, nil
}

func (c *cursor) parseMeta() (Meta, error) {
	path, err := c.parsePath()
	if err != nil {
		return Meta{}, err
	}

	t := c.peek(0)
	switch {
	case c.eof() || t.IsPunct(","):
		return Meta{Kind: MetaPath, Path: path}, nil

	case t.Kind == Group:
		return Meta{Kind: MetaList, Path: path, Group: c.next()}, nil

	case t.IsPunct("="):
		eq := c.next()
		value, err := c.parseExpr()
		if err != nil {
			return Meta{}, err
		}
		return Meta{Kind: MetaNameValue, Path: path, Eq: eq, Value: value}, nil
	}

	return Meta{}, c.errorf("expected `,`")
}

// exprStarts are punctuations which may start an expression.
var exprStarts = []string{"-", "!", "&", "&&", "*", "::", "<", "|", "||", "..", "#"}

// parseExpr consumes an expression up to the next comma and classifies it.
func (c *cursor) parseExpr() (Expr, error) {
	start := c.i
	for !c.eof() && !c.peek(0).IsPunct(",") {
		c.i++
	}
	trees := c.trees[start:c.i]

	if len(trees) == 0 {
		c.i = start
		return Expr{}, c.errorf("expected an expression")
	}
	if first := trees[0]; first.Kind == Punct && !oneOf(first.Text, exprStarts...) {
		c.i = start
		return Expr{}, c.errorf("expected an expression")
	}

	if err := c.checkExpr(start, trees); err != nil {
		return Expr{}, err
	}

	switch {
	case len(trees) == 1 && (trees[0].Kind == Literal || trees[0].IsIdent("true") || trees[0].IsIdent("false")):
		return Expr{Kind: ExprLit, Trees: trees}, nil

	case len(trees) == 2 && trees[0].IsPunct("-") && trees[1].Kind == Literal:
		return Expr{Kind: ExprLit, Trees: trees}, nil
	}

	if path, ok := exprPath(c.fset, trees); ok {
		return Expr{Kind: ExprPath, Path: path, Trees: trees}, nil
	}
	return Expr{Kind: ExprVerbatim, Trees: trees}, nil
}

// checkExpr rejects operands following each other without an operator
// between them, e.g., "x y", and expressions ending with an operator, e.g.,
// "1 +". The cursor is left at the offending tree.
func (c *cursor) checkExpr(start int, trees []Tree) error {
	operand := false
	turbofish := 0
	for i, t := range trees {
		switch {
		case t.Kind == Group:
			// calls, indexing, and struct literals
			operand = true

		case t.Kind == Literal || t.Kind == Ident && (!IsKeyword(t.Text) || isValueKeyword(t.Text)):
			if operand {
				c.i = start + i
				return c.errorf("expected `,`")
			}
			operand = true

		case t.IsPunct("<") && i > 0 && trees[i-1].IsPunct("::"):
			turbofish++
			operand = false

		case t.IsPunct(">") && turbofish > 0:
			turbofish--
			operand = true

		case t.IsPunct("?"):
			operand = true

		default:
			operand = false
		}
	}

	if last := trees[len(trees)-1]; last.Kind == Punct && !operand && !last.IsPunct("..") {
		c.i = start + len(trees)
		return c.errorf("expected an expression")
	}
	return nil
}

// isValueKeyword reports whether the keyword may stand for a value.
func isValueKeyword(name string) bool {
	return name == "true" || name == "false" || IsPathKeyword(name)
}

// exprPath parses trees as a path expression without generic arguments.
func exprPath(fset *token.FileSet, trees []Tree) (Path, bool) {
	sub := newCursor(fset, trees, token.NoPos)
	path, err := sub.parsePath()
	if err != nil || !sub.eof() {
		return Path{}, false
	}
	for _, seg := range path.Segments {
		if IsKeyword(seg.Text) && !IsPathKeyword(seg.Text) {
			return Path{}, false
		}
	}
	return path, true
}
