package expand

import (
	"go/token"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/Robbepop/enum-newtype/internal/codefmt"
	"github.com/Robbepop/enum-newtype/internal/syntax"
)

// Params is the parameter set of an expansion, e.g., the arguments of
// #[enum_newtype(name = OpVariants, aliases = true)].
type Params struct {
	fset  *token.FileSet
	metas []syntax.Meta

	// index maps each key to the position of its first entry, ordered by
	// first appearance.
	index *linkedhashmap.Map

	pos token.Pos
	end token.Pos
}

// ParseParams parses trees as a comma-separated list of parameters. pos and
// end span the whole list. They are used for errors about the list itself,
// so they should point at the invoking attribute when the list is empty.
func ParseParams(fset *token.FileSet, trees []syntax.Tree, pos, end token.Pos) (*Params, error) {
	if len(trees) != 0 {
		pos, end = syntax.Span(trees)
	}

	metas, err := syntax.ParseMetaList(fset, trees, end)
	if err != nil {
		return nil, err
	}

	index := linkedhashmap.New()
	for i, meta := range metas {
		key := meta.Path.Code()
		if _, ok := index.Get(key); !ok {
			index.Put(key, i)
		}
	}

	return &Params{fset: fset, metas: metas, index: index, pos: pos, end: end}, nil
}

func (p *Params) FileSet() *token.FileSet { return p.fset }
func (p *Params) Pos() token.Pos          { return p.pos }
func (p *Params) End() token.Pos          { return p.end }

// Len returns the number of entries.
func (p *Params) Len() int {
	return len(p.metas)
}

// Keys returns the distinct keys in order of first appearance.
func (p *Params) Keys() []string {
	var keys []string
	for _, key := range p.index.Keys() {
		keys = append(keys, key.(string))
	}
	return keys
}

// Lookup returns the first entry with the key.
func (p *Params) Lookup(key string) (syntax.Meta, bool) {
	i, ok := p.index.Get(key)
	if !ok {
		return syntax.Meta{}, false
	}
	return p.metas[i.(int)], true
}

// Name returns the identifier of the companion trait.
//
// It is the value of the first name-value entry whose value is a plain
// identifier. The key is not checked and later candidates are ignored, so
// duplicate or conflicting entries are resolved by position.
func (p *Params) Name() (syntax.Tree, error) {
	i := p.nameIndex()
	if i < 0 {
		return syntax.Tree{}, codefmt.Errorf(p, p, "cannot find valid `name` parameter")
	}
	id, _ := p.metas[i].Value.Path.Ident()
	return id, nil
}

func (p *Params) nameIndex() int {
	for i, meta := range p.metas {
		if meta.Kind != syntax.MetaNameValue || meta.Value.Kind != syntax.ExprPath {
			continue
		}
		if _, ok := meta.Value.Path.Ident(); ok {
			return i
		}
	}
	return -1
}

// Ignored returns the entries which do not affect the expansion: all entries
// but the one [Params.Name] picks.
func (p *Params) Ignored() []syntax.Meta {
	name := p.nameIndex()
	var ignored []syntax.Meta
	for i, meta := range p.metas {
		if i != name {
			ignored = append(ignored, meta)
		}
	}
	return ignored
}
