package syntax

// ParamKind is the kind of a [GenericParam].
type ParamKind int

const (
	LifetimeParam ParamKind = iota + 1
	TypeParam
	ConstParam
)

// GenericParam is a lifetime, type, or const parameter of a generics clause.
type GenericParam struct {
	Kind    ParamKind
	Attrs   []Attribute
	Name    Tree
	Bounds  []Tree // lifetime and type params: the trees after ":"
	Type    []Tree // const params
	Default []Tree
}

// tokens returns the trees of the parameter. Defaults are included only if
// withDefault is true.
func (p GenericParam) tokens(withDefault bool) []Tree {
	var trees []Tree
	for _, attr := range p.Attrs {
		trees = append(trees, attr.Tokens()...)
	}

	if p.Kind == ConstParam {
		trees = append(trees, NewIdent("const"), p.Name, NewPunct(":"))
		trees = append(trees, p.Type...)
	} else {
		trees = append(trees, p.Name)
		if len(p.Bounds) != 0 {
			trees = append(trees, NewPunct(":"))
			trees = append(trees, p.Bounds...)
		}
	}

	if withDefault && len(p.Default) != 0 {
		trees = append(trees, NewPunct("="))
		trees = append(trees, p.Default...)
	}
	return trees
}

// Generics is the generics clause of an item, including its where clause.
type Generics struct {
	Params []GenericParam

	// Where holds the predicates of the where clause without the "where"
	// keyword. HasWhere is true even if the clause is empty.
	Where    []Tree
	HasWhere bool
}

// IsEmpty reports whether there are no generic parameters.
func (g Generics) IsEmpty() bool {
	return len(g.Params) == 0
}

// ordered returns the parameters with lifetimes first.
func (g Generics) ordered() []GenericParam {
	var params []GenericParam
	for _, p := range g.Params {
		if p.Kind == LifetimeParam {
			params = append(params, p)
		}
	}
	for _, p := range g.Params {
		if p.Kind != LifetimeParam {
			params = append(params, p)
		}
	}
	return params
}

func (g Generics) format(each func(GenericParam) []Tree) string {
	if g.IsEmpty() {
		return ""
	}
	trees := []Tree{NewPunct("<")}
	for i, p := range g.ordered() {
		if i != 0 {
			trees = append(trees, NewPunct(","))
		}
		trees = append(trees, each(p)...)
	}
	trees = append(trees, NewPunct(">"))
	return Format(trees)
}

// Code returns the generics clause for declarations, e.g.,
// "<'a, T: Clone = u8>". The where clause is not included.
func (g Generics) Code() string {
	return g.format(func(p GenericParam) []Tree { return p.tokens(true) })
}

// ImplCode returns the generics clause for impl blocks without defaults, e.g.,
// "<'a, T: Clone>".
func (g Generics) ImplCode() string {
	return g.format(func(p GenericParam) []Tree { return p.tokens(false) })
}

// TypeCode returns the generic arguments to refer the type, e.g., "<'a, T>".
func (g Generics) TypeCode() string {
	return g.format(func(p GenericParam) []Tree { return []Tree{p.Name} })
}

// WhereCode returns the where clause, e.g., "where T: Clone". It is empty if
// the item has no where clause or the clause is empty.
func (g Generics) WhereCode() string {
	if !g.HasWhere || len(g.Where) == 0 {
		return ""
	}
	return Format(append([]Tree{NewIdent("where")}, g.Where...))
}

// SplitForImpl returns the generics clause for impl blocks, the generic
// arguments for the type, and the where clause.
func (g Generics) SplitForImpl() (impl, typ, where string) {
	return g.ImplCode(), g.TypeCode(), g.WhereCode()
}

func isParamEnd(t Tree) bool {
	return t.IsPunct(",") || t.IsPunct(">")
}

func isParamEndOrEq(t Tree) bool {
	return isParamEnd(t) || t.IsPunct("=")
}

// parseGenerics parses "<...>" at the cursor, if present.
func (c *cursor) parseGenerics() (Generics, error) {
	var g Generics
	if !c.peek(0).IsPunct("<") {
		return g, nil
	}
	c.next()

	for {
		if c.peek(0).IsPunct(">") {
			c.next()
			return g, nil
		}
		if c.eof() {
			return g, c.errorf("expected `>`")
		}

		attrs, err := c.parseAttrs()
		if err != nil {
			return g, err
		}

		p := GenericParam{Attrs: attrs}
		t := c.peek(0)
		switch {
		case t.Kind == Lifetime:
			p.Kind = LifetimeParam
			p.Name = c.next()
			if c.peek(0).IsPunct(":") {
				c.next()
				p.Bounds = c.until(isParamEnd)
			}

		case t.IsIdent("const"):
			c.next()
			p.Kind = ConstParam
			if p.Name, err = c.expectIdent(); err != nil {
				return g, err
			}
			if _, err := c.expectPunct(":"); err != nil {
				return g, err
			}
			p.Type = c.until(isParamEndOrEq)
			if len(p.Type) == 0 {
				return g, c.errorf("expected type")
			}
			if c.peek(0).IsPunct("=") {
				c.next()
				p.Default = c.until(isParamEnd)
			}

		case t.Kind == Ident && !IsKeyword(t.Text):
			p.Kind = TypeParam
			p.Name = c.next()
			if c.peek(0).IsPunct(":") {
				c.next()
				p.Bounds = c.until(isParamEndOrEq)
			}
			if c.peek(0).IsPunct("=") {
				c.next()
				p.Default = c.until(isParamEnd)
			}

		default:
			return g, c.errorf("expected one of: lifetime, identifier, `const`")
		}
		g.Params = append(g.Params, p)

		switch {
		case c.peek(0).IsPunct(","):
			c.next()
		case c.peek(0).IsPunct(">"):
			c.next()
			return g, nil
		default:
			return g, c.errorf("expected `,` or `>`")
		}
	}
}

// parseWhere parses a where clause at the cursor, if present. The clause ends
// at a top-level brace group or ";".
func (c *cursor) parseWhere(g *Generics) {
	if !c.peek(0).IsIdent("where") {
		return
	}
	c.next()
	g.HasWhere = true
	g.Where = c.until(func(t Tree) bool {
		return t.IsGroup(Brace) || t.IsPunct(";")
	})
}
