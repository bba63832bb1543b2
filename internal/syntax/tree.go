// Package syntax reads Rust declarations into token trees and parses the
// parts of the grammar needed to expand an enum: attribute parameter lists
// and enum, struct, and union items.
package syntax

import (
	"go/token"
)

// Kind is the kind of a [Tree].
type Kind int

const (
	Ident Kind = iota + 1
	Punct
	Literal
	Lifetime
	Group
)

// Delimiter is the delimiter of a [Group] tree.
type Delimiter int

const (
	NoDelim Delimiter = iota
	Paren
	Bracket
	Brace
)

// Open returns the opening character of the delimiter.
func (d Delimiter) Open() string {
	switch d {
	case Paren:
		return "("
	case Bracket:
		return "["
	case Brace:
		return "{"
	}
	return ""
}

// Close returns the closing character of the delimiter.
func (d Delimiter) Close() string {
	switch d {
	case Paren:
		return ")"
	case Bracket:
		return "]"
	case Brace:
		return "}"
	}
	return ""
}

// Tree is a token tree: a single token or a delimited group of token trees.
//
// Punctuation follows the Rust lexer: multi-character operators such as "::"
// and "->" are one tree. "<" and ">" are always single characters because
// they close generics. Joint marks a "<" or ">" that is glued to the next
// punctuation, as in ">=".
type Tree struct {
	Kind  Kind
	Text  string
	Joint bool
	Delim Delimiter
	Trees []Tree

	// Sugar is the original doc comment of a doc attribute group. It is set
	// on the bracket group the lexer builds for "///" and "/**" comments.
	Sugar string

	pos token.Pos
	end token.Pos
}

// NewIdent creates an identifier tree without position.
func NewIdent(name string) Tree {
	return Tree{Kind: Ident, Text: name}
}

// NewPunct creates a punctuation tree without position.
func NewPunct(op string) Tree {
	return Tree{Kind: Punct, Text: op}
}

// NewLiteral creates a literal tree from its source text without position.
func NewLiteral(text string) Tree {
	return Tree{Kind: Literal, Text: text}
}

// NewGroup creates a delimited group tree without position.
func NewGroup(delim Delimiter, trees ...Tree) Tree {
	return Tree{Kind: Group, Delim: delim, Trees: trees}
}

// Pos returns the position of the first character of the tree.
func (t Tree) Pos() token.Pos { return t.pos }

// End returns the position just after the last character of the tree.
func (t Tree) End() token.Pos { return t.end }

// At returns a copy of the tree spanning [pos, end).
func (t Tree) At(pos, end token.Pos) Tree {
	t.pos, t.end = pos, end
	return t
}

// IsIdent reports whether the tree is the identifier name.
func (t Tree) IsIdent(name string) bool {
	return t.Kind == Ident && t.Text == name
}

// IsPunct reports whether the tree is the punctuation op.
func (t Tree) IsPunct(op string) bool {
	return t.Kind == Punct && t.Text == op
}

// IsGroup reports whether the tree is a group delimited by delim.
func (t Tree) IsGroup(delim Delimiter) bool {
	return t.Kind == Group && t.Delim == delim
}

// Code returns the Rust source of the tree.
func (t Tree) Code() string {
	return Format([]Tree{t})
}

// String implements fmt.Stringer for debugging.
func (t Tree) String() string {
	return t.Code()
}

// Span returns the span of trees from the first to the last one.
func Span(trees []Tree) (pos, end token.Pos) {
	if len(trees) == 0 {
		return token.NoPos, token.NoPos
	}
	return trees[0].pos, trees[len(trees)-1].end
}

// closePos returns the position of the closing delimiter of a group.
func (t Tree) closePos() token.Pos {
	if !t.end.IsValid() {
		return token.NoPos
	}
	return t.end - 1
}
