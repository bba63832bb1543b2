package syntax

import (
	"go/token"
	"strings"
)

// Path is a simple path like "derive", "core::convert", or "::std::fmt" without
// generic arguments.
type Path struct {
	LeadingColon bool
	Segments     []Tree

	pos token.Pos
	end token.Pos
}

func (p Path) Pos() token.Pos { return p.pos }
func (p Path) End() token.Pos { return p.end }

// Ident returns the only segment of the path if the path is a plain
// identifier without a leading "::".
func (p Path) Ident() (Tree, bool) {
	if p.LeadingColon || len(p.Segments) != 1 {
		return Tree{}, false
	}
	return p.Segments[0], true
}

// IsIdent reports whether the path is the plain identifier name.
func (p Path) IsIdent(name string) bool {
	id, ok := p.Ident()
	return ok && id.Text == name
}

// Last returns the last segment of the path.
func (p Path) Last() Tree {
	if len(p.Segments) == 0 {
		return Tree{}
	}
	return p.Segments[len(p.Segments)-1]
}

// Tokens returns the token trees of the path.
func (p Path) Tokens() []Tree {
	var trees []Tree
	for i, seg := range p.Segments {
		if i != 0 || p.LeadingColon {
			trees = append(trees, NewPunct("::"))
		}
		trees = append(trees, seg)
	}
	return trees
}

// Code returns the Rust source of the path.
func (p Path) Code() string {
	var b strings.Builder
	if p.LeadingColon {
		b.WriteString("::")
	}
	for i, seg := range p.Segments {
		if i != 0 {
			b.WriteString("::")
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

// parsePath parses a mod-style path. Keywords are accepted as segments like
// the Rust attribute grammar does.
func (c *cursor) parsePath() (Path, error) {
	var p Path
	p.pos = c.peek(0).pos

	if c.peek(0).IsPunct("::") {
		p.LeadingColon = true
		c.next()
	}

	for {
		t := c.peek(0)
		if t.Kind != Ident {
			return Path{}, c.errorf("expected identifier")
		}
		p.Segments = append(p.Segments, c.next())
		p.end = t.end

		if !c.peek(0).IsPunct("::") {
			return p, nil
		}
		c.next()
	}
}
