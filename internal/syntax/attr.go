package syntax

import (
	"go/token"
)

// Attribute is an outer attribute like #[derive(Debug)] or a doc comment.
type Attribute struct {
	Pound Tree
	Group Tree

	// Path is the path of the attribute, e.g., "derive" or "serde".
	Path Path

	// Args are the trees after the path, e.g., "(Debug)" or `= "docs"`.
	Args []Tree
}

func (a Attribute) Pos() token.Pos { return a.Pound.pos }
func (a Attribute) End() token.Pos { return a.Group.end }

// IsDerive reports whether the attribute is a derive attribute. Only the path
// is checked. What the attribute expands to is never resolved.
func (a Attribute) IsDerive() bool {
	return a.Path.IsIdent("derive")
}

// IsDoc reports whether the attribute is a doc attribute, including doc
// comments.
func (a Attribute) IsDoc() bool {
	return a.Path.IsIdent("doc")
}

// Sugar returns the doc comment the attribute was written as, if any.
func (a Attribute) Sugar() string {
	return a.Group.Sugar
}

// Tokens returns the token trees of the attribute in bracket form.
func (a Attribute) Tokens() []Tree {
	return []Tree{a.Pound, a.Group}
}

// Code returns the Rust source of the attribute. Doc comments are returned as
// they were written.
func (a Attribute) Code() string {
	if a.IsDoc() && a.Sugar() != "" {
		return a.Sugar()
	}
	return Format(a.Tokens())
}

// Filter returns the attributes for which keep reports true.
func Filter(attrs []Attribute, keep func(Attribute) bool) []Attribute {
	var out []Attribute
	for _, attr := range attrs {
		if keep(attr) {
			out = append(out, attr)
		}
	}
	return out
}

// ParseAttribute parses the trees of a single attribute: "#" and a bracket
// group.
func ParseAttribute(fset *token.FileSet, pound, group Tree) (Attribute, error) {
	c := newCursor(fset, group.Trees, group.closePos())
	path, err := c.parsePath()
	if err != nil {
		return Attribute{}, err
	}
	return Attribute{
		Pound: pound,
		Group: group,
		Path:  path,
		Args:  c.rest(),
	}, nil
}

// IsAttrStart reports whether trees[i:] starts with an outer attribute.
func IsAttrStart(trees []Tree, i int) bool {
	return i+1 < len(trees) && trees[i].IsPunct("#") && trees[i+1].IsGroup(Bracket)
}

// parseAttrs parses outer attributes at the cursor. Inner attributes are
// rejected.
func (c *cursor) parseAttrs() ([]Attribute, error) {
	var attrs []Attribute
	for c.peek(0).IsPunct("#") {
		if c.peek(1).IsPunct("!") && c.peek(2).IsGroup(Bracket) {
			return nil, c.errorf("an inner attribute is not permitted in this context")
		}
		if !c.peek(1).IsGroup(Bracket) {
			return nil, c.errorf("expected `[`")
		}

		pound, group := c.next(), c.next()
		attr, err := ParseAttribute(c.fset, pound, group)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}
