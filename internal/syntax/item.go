package syntax

import (
	"go/token"
)

// DataKind is the kind of the body of an [Item].
type DataKind int

const (
	Enum DataKind = iota + 1
	Struct
	Union
)

func (k DataKind) String() string {
	switch k {
	case Enum:
		return "enum"
	case Struct:
		return "struct"
	case Union:
		return "union"
	}
	return "unknown"
}

// Shape is the shape of the fields of a struct or a variant.
type Shape int

const (
	Unit       Shape = iota // no fields
	Positional              // (A, B)
	Named                   // { a: A, b: B }
)

// Visibility is the visibility qualifier of an item or a field. It is empty
// for the inherited (private) visibility.
type Visibility []Tree

func (v Visibility) Code() string { return Format(v) }

// Field is a field of a struct or a variant.
type Field struct {
	Attrs []Attribute
	Vis   Visibility
	Name  Tree // zero Tree for positional fields
	Type  []Tree
}

// IsNamed reports whether the field has a name.
func (f Field) IsNamed() bool {
	return f.Name.Kind == Ident
}

// Tokens returns the trees of the field including its attributes.
func (f Field) Tokens() []Tree {
	var trees []Tree
	for _, attr := range f.Attrs {
		trees = append(trees, attr.Tokens()...)
	}
	trees = append(trees, f.Vis...)
	if f.IsNamed() {
		trees = append(trees, f.Name, NewPunct(":"))
	}
	return append(trees, f.Type...)
}

// Fields is the field list of a struct or a variant.
type Fields struct {
	Shape Shape
	List  []Field
}

// Variant is a variant of an enum.
type Variant struct {
	Attrs        []Attribute
	Name         Tree
	Fields       Fields
	Discriminant []Tree // without "="

	pos token.Pos
	end token.Pos
}

func (v Variant) Pos() token.Pos { return v.pos }
func (v Variant) End() token.Pos { return v.end }

// Item is an enum, struct, or union declaration.
type Item struct {
	Attrs    []Attribute
	Vis      Visibility
	Kind     DataKind
	Keyword  Tree
	Name     Tree
	Generics Generics

	Variants []Variant // enum
	Fields   Fields    // struct and union

	pos token.Pos
	end token.Pos
}

// Pos returns the position of the first tree of the item including its
// attributes.
func (it *Item) Pos() token.Pos { return it.pos }

// End returns the position after the last tree of the item.
func (it *Item) End() token.Pos { return it.end }

// ParseItem parses trees as a single enum, struct, or union declaration.
func ParseItem(fset *token.FileSet, trees []Tree) (*Item, error) {
	c := newCursor(fset, trees, token.NoPos)
	item := &Item{}
	item.pos, item.end = Span(trees)

	var err error
	if item.Attrs, err = c.parseAttrs(); err != nil {
		return nil, err
	}
	item.Vis = c.parseVis()

	kw := c.peek(0)
	switch {
	case kw.IsIdent("enum"):
		item.Kind = Enum
	case kw.IsIdent("struct"):
		item.Kind = Struct
	case kw.IsIdent("union") && c.peek(1).Kind == Ident:
		item.Kind = Union
	default:
		return nil, c.errorf("expected one of: `struct`, `enum`, `union`")
	}
	item.Keyword = c.next()

	if item.Name, err = c.expectIdent(); err != nil {
		return nil, err
	}
	if item.Generics, err = c.parseGenerics(); err != nil {
		return nil, err
	}

	switch item.Kind {
	case Enum:
		err = c.parseEnumBody(item)
	case Struct:
		err = c.parseStructBody(item)
	case Union:
		err = c.parseUnionBody(item)
	}
	if err != nil {
		return nil, err
	}

	if !c.eof() {
		return nil, c.errorf("unexpected token")
	}
	return item, nil
}

func (c *cursor) parseEnumBody(item *Item) error {
	c.parseWhere(&item.Generics)

	body := c.peek(0)
	if !body.IsGroup(Brace) {
		return c.errorf("expected `{`")
	}
	c.next()

	vc := newCursor(c.fset, body.Trees, body.closePos())
	for !vc.eof() {
		v, err := vc.parseVariant()
		if err != nil {
			return err
		}
		item.Variants = append(item.Variants, v)

		if err := vc.skipComma(); err != nil {
			return err
		}
	}
	return nil
}

func (c *cursor) parseVariant() (Variant, error) {
	var v Variant
	v.pos = c.peek(0).pos

	var err error
	if v.Attrs, err = c.parseAttrs(); err != nil {
		return v, err
	}
	c.parseVis() // accepted and dropped like rustc does for variants

	if v.Name, err = c.expectIdent(); err != nil {
		return v, err
	}
	v.end = v.Name.end

	switch t := c.peek(0); {
	case t.IsGroup(Brace):
		v.Fields, err = c.parseNamedFields(c.next())
		v.end = t.end
	case t.IsGroup(Paren):
		v.Fields, err = c.parsePositionalFields(c.next())
		v.end = t.end
	}
	if err != nil {
		return v, err
	}

	if c.peek(0).IsPunct("=") {
		c.next()
		start := c.i
		for !c.eof() && !c.peek(0).IsPunct(",") {
			c.i++
		}
		v.Discriminant = c.trees[start:c.i]
		if len(v.Discriminant) == 0 {
			return v, c.errorf("expected an expression")
		}
		v.end = v.Discriminant[len(v.Discriminant)-1].end
	}
	return v, nil
}

func (c *cursor) parseStructBody(item *Item) error {
	t := c.peek(0)
	switch {
	case t.IsPunct(";"):
		c.next()
		item.Fields = Fields{Shape: Unit}
		return nil

	case t.IsGroup(Paren):
		fields, err := c.parsePositionalFields(c.next())
		if err != nil {
			return err
		}
		item.Fields = fields
		c.parseWhere(&item.Generics)
		if _, err := c.expectPunct(";"); err != nil {
			return err
		}
		return nil
	}

	c.parseWhere(&item.Generics)
	t = c.peek(0)
	switch {
	case t.IsPunct(";"):
		c.next()
		item.Fields = Fields{Shape: Unit}
		return nil
	case t.IsGroup(Brace):
		fields, err := c.parseNamedFields(c.next())
		if err != nil {
			return err
		}
		item.Fields = fields
		return nil
	}
	return c.errorf("expected `where`, `{`, `(`, or `;` after struct name")
}

func (c *cursor) parseUnionBody(item *Item) error {
	c.parseWhere(&item.Generics)
	t := c.peek(0)
	if !t.IsGroup(Brace) {
		return c.errorf("expected `{`")
	}
	fields, err := c.parseNamedFields(c.next())
	if err != nil {
		return err
	}
	item.Fields = fields
	return nil
}

func (c *cursor) parseNamedFields(group Tree) (Fields, error) {
	fields := Fields{Shape: Named}
	fc := newCursor(c.fset, group.Trees, group.closePos())
	for !fc.eof() {
		var f Field
		var err error
		if f.Attrs, err = fc.parseAttrs(); err != nil {
			return fields, err
		}
		f.Vis = fc.parseVis()
		if f.Name, err = fc.expectIdent(); err != nil {
			return fields, err
		}
		if _, err := fc.expectPunct(":"); err != nil {
			return fields, err
		}
		if f.Type = fc.untilComma(); len(f.Type) == 0 {
			return fields, fc.errorf("expected type")
		}
		fields.List = append(fields.List, f)

		if err := fc.skipComma(); err != nil {
			return fields, err
		}
	}
	return fields, nil
}

func (c *cursor) parsePositionalFields(group Tree) (Fields, error) {
	fields := Fields{Shape: Positional}
	fc := newCursor(c.fset, group.Trees, group.closePos())
	for !fc.eof() {
		var f Field
		var err error
		if f.Attrs, err = fc.parseAttrs(); err != nil {
			return fields, err
		}
		f.Vis = fc.parseVis()
		if f.Type = fc.untilComma(); len(f.Type) == 0 {
			return fields, fc.errorf("expected type")
		}
		fields.List = append(fields.List, f)

		if err := fc.skipComma(); err != nil {
			return fields, err
		}
	}
	return fields, nil
}

// parseVis parses a visibility qualifier at the cursor, if present:
//
//	pub
//	pub(crate)
//	pub(self)
//	pub(super)
//	pub(in some::path)
func (c *cursor) parseVis() Visibility {
	if !c.peek(0).IsIdent("pub") {
		return nil
	}
	pub := c.next()

	group := c.peek(0)
	if !group.IsGroup(Paren) || len(group.Trees) == 0 {
		return Visibility{pub}
	}
	first := group.Trees[0]
	restricted := len(group.Trees) == 1 && (first.IsIdent("crate") || first.IsIdent("self") || first.IsIdent("super"))
	if restricted || (first.IsIdent("in") && len(group.Trees) > 1) {
		c.next()
		return Visibility{pub, group}
	}
	return Visibility{pub}
}
