package enumnewtypeinternal

import (
	"bytes"
	"fmt"
	"go/token"
	"strings"

	"go.uber.org/zap"

	"github.com/Robbepop/enum-newtype/internal/codefmt"
	"github.com/Robbepop/enum-newtype/internal/expand"
	"github.com/Robbepop/enum-newtype/internal/syntax"
)

// DefaultAttribute is the name of the attribute expanded by default.
const DefaultAttribute = "enum_newtype"

// Options controls an [Expander].
type Options struct {
	// Attribute is the name of the invoking attribute. An attribute is
	// invoking if the last segment of its path is the name, e.g.,
	// #[enum_newtype(...)] or #[enum_newtype::enum_newtype(...)].
	Attribute string

	// CompileErrors makes items failing to expand turn into compile_error!
	// invocations. Otherwise, [Expander.Build] fails.
	CompileErrors bool

	Logger *zap.Logger
}

// Expander expands the items annotated with the invoking attribute in a Rust
// source file. Call [Expander.Build] and then [Expander.Generate] to get the
// expanded file. All potential errors are returned by [Expander.Build].
type Expander struct {
	fset  *token.FileSet
	file  *token.File
	src   []byte
	trees []syntax.Tree
	opts  Options
	log   *zap.SugaredLogger

	sites []*site
}

// site is an annotated item and its expansion.
type site struct {
	attr syntax.Attribute
	item []syntax.Tree // without the invoking attribute

	// pos and end span the item including all of its attributes. The
	// expansion replaces the span.
	pos, end token.Pos

	code string
}

// New reads src and creates an [Expander] for it. It fails if src is not
// valid Rust tokens.
func New(fset *token.FileSet, filename string, src []byte, opts Options) (*Expander, error) {
	if opts.Attribute == "" {
		opts.Attribute = DefaultAttribute
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	base := fset.Base()
	trees, err := syntax.Lex(fset, filename, src)
	if err != nil {
		return nil, err
	}

	return &Expander{
		fset:  fset,
		file:  fset.File(token.Pos(base)),
		src:   src,
		trees: trees,
		opts:  opts,
		log:   opts.Logger.Sugar().With("file", filename),
	}, nil
}

func (e *Expander) FileSet() *token.FileSet { return e.fset }

// Len returns the number of annotated items found by [Expander.Build].
func (e *Expander) Len() int { return len(e.sites) }

// Build finds annotated items and expands them. Errors of all items are
// combined. It must be called before [Expander.Generate].
func (e *Expander) Build() error {
	e.sites = nil
	if err := e.scan(e.trees); err != nil {
		return err
	}

	var errs error
	for _, s := range e.sites {
		code, err := e.expand(s)
		if err == nil {
			s.code = code
			continue
		}

		if !e.opts.CompileErrors {
			errs = codefmt.Combine(errs, err)
			continue
		}

		e.log.Warnw("item replaced by compile errors", "error", err)
		var b strings.Builder
		expand.WriteCompileErrors(codefmt.NewWriter(&b, e.fset), err)
		s.code = b.String()
	}
	return errs
}

// scan collects the annotated items in trees and the brace groups nested in
// them.
func (e *Expander) scan(trees []syntax.Tree) error {
	for i := 0; i < len(trees); {
		if !syntax.IsAttrStart(trees, i) {
			if trees[i].IsGroup(syntax.Brace) {
				if err := e.scan(trees[i].Trees); err != nil {
					return err
				}
			}
			i++
			continue
		}

		// A run of outer attributes
		start := i
		invoking := -1
		var attr syntax.Attribute
		for syntax.IsAttrStart(trees, i) {
			a, err := syntax.ParseAttribute(e.fset, trees[i], trees[i+1])
			if err == nil && invoking < 0 && a.Path.Last().Text == e.opts.Attribute {
				invoking, attr = i, a
			}
			i += 2
		}
		if invoking < 0 {
			continue
		}

		end := itemEnd(trees, i)
		if end == i {
			return codefmt.Errorf(e, attr, "expected an item after the attribute")
		}

		item := append([]syntax.Tree(nil), trees[start:invoking]...)
		item = append(item, trees[invoking+2:end]...)
		pos, endPos := syntax.Span(trees[start:end])
		e.sites = append(e.sites, &site{attr: attr, item: item, pos: pos, end: endPos})
		i = end
	}
	return nil
}

// itemEnd returns the index after the item starting at trees[i]. An item ends
// with a ";" or a brace group out of angle brackets.
func itemEnd(trees []syntax.Tree, i int) int {
	depth := 0
	for ; i < len(trees); i++ {
		t := trees[i]
		switch {
		case t.IsPunct("<"):
			depth++
		case t.IsPunct(">") && depth > 0:
			depth--
		case depth == 0 && (t.IsPunct(";") || t.IsGroup(syntax.Brace)):
			return i + 1
		}
	}
	return i
}

// expand runs the transformation for a site and renders its code.
func (e *Expander) expand(s *site) (string, error) {
	args, err := e.paramTrees(s.attr)
	if err != nil {
		return "", err
	}
	params, err := expand.ParseParams(e.fset, args, s.attr.Pos(), s.attr.End())
	if err != nil {
		return "", err
	}
	e.log.Debugw("parameters", "keys", params.Keys(), "entries", params.Len())
	for _, meta := range params.Ignored() {
		e.log.Debugw("ignored parameter", "param", meta.Code())
	}
	if _, err := params.Name(); err != nil {
		if meta, ok := params.Lookup("name"); ok {
			e.log.Warnw("name parameter is not a plain identifier",
				"param", meta.Code(),
				"pos", codefmt.FormatPos(e, meta.Pos()))
		}
	}

	item, err := syntax.ParseItem(e.fset, s.item)
	if err != nil {
		return "", err
	}

	out, err := expand.Expand(params, item)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	out.WriteCode(codefmt.NewWriter(&b, e.fset).WithPrefix(e.indentOf(s.pos)))
	e.log.Debugw("expanded item",
		"item", item.Name.Text,
		"trait", out.Trait.Name.Text,
		"variants", len(out.Variants()),
		"pos", codefmt.FormatPos(e, s.pos))
	return b.String(), nil
}

// paramTrees returns the parameter list of the invoking attribute: the
// contents of its delimited arguments, or nothing for a bare path.
func (e *Expander) paramTrees(attr syntax.Attribute) ([]syntax.Tree, error) {
	switch {
	case len(attr.Args) == 0:
		return nil, nil
	case len(attr.Args) == 1 && attr.Args[0].Kind == syntax.Group:
		return attr.Args[0].Trees, nil
	}
	return nil, codefmt.Errorf(e, attr, "expected `#[%s(...)]`", e.opts.Attribute)
}

// indentOf returns the leading whitespace of the line at pos if nothing but
// whitespace precedes pos on the line.
func (e *Expander) indentOf(pos token.Pos) string {
	off := e.file.Offset(pos)
	lineStart := bytes.LastIndexByte(e.src[:off], '\n') + 1
	indent := string(e.src[lineStart:off])
	if strings.TrimLeft(indent, " \t") != "" {
		return ""
	}
	return indent
}

// Generate splices the expansions into the source. It must be called after
// [Expander.Build] succeeds. It returns nil if there is no annotated item.
func (e *Expander) Generate() []byte {
	if len(e.sites) == 0 {
		return nil
	}

	var buf bytes.Buffer
	last := 0
	for _, s := range e.sites {
		pos, end := e.file.Offset(s.pos), e.file.Offset(s.end)
		buf.Write(e.src[last:pos])
		buf.WriteString(strings.TrimSuffix(s.code, "\n"))
		last = end
	}
	buf.Write(e.src[last:])
	return buf.Bytes()
}

// Header returns the comment put at the top of generated files.
func Header() string {
	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}
	return fmt.Sprintf("// Code generated by enumnewtype%s. DO NOT EDIT.\n", versionSuffix)
}
