package syntax_test

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Robbepop/enum-newtype/internal/syntax"
)

func parseItem(src string) (*syntax.Item, error) {
	fset := token.NewFileSet()
	trees, err := syntax.Lex(fset, "item.rs", []byte(src))
	if err != nil {
		return nil, err
	}
	return syntax.ParseItem(fset, trees)
}

func TestParseEnum(t *testing.T) {
	item, err := parseItem(`
/// Docs.
#[derive(Debug)]
pub(crate) enum Op {
    #[cfg(test)]
    Add { pub lhs: u32, rhs: Vec<(u8, u8)> },
    Neg(u32, #[doc = "x"] pub i64),
    Nop = 3,
}`)
	require.NoError(t, err)

	assert.Equal(t, syntax.Enum, item.Kind)
	assert.Equal(t, "enum", item.Kind.String())
	assert.Equal(t, "Op", item.Name.Text)
	assert.Equal(t, "pub(crate)", item.Vis.Code())
	require.Len(t, item.Attrs, 2)
	assert.True(t, item.Attrs[0].IsDoc())
	assert.True(t, item.Attrs[1].IsDerive())
	assert.Equal(t, "/// Docs.", item.Attrs[0].Code())
	assert.Equal(t, `#[doc = " Docs."]`, syntax.Format(item.Attrs[0].Tokens()))

	require.Len(t, item.Variants, 3)

	add := item.Variants[0]
	assert.Equal(t, "Add", add.Name.Text)
	assert.Equal(t, "#[cfg(test)]", add.Attrs[0].Code())
	assert.Equal(t, syntax.Named, add.Fields.Shape)
	require.Len(t, add.Fields.List, 2)
	assert.Equal(t, "pub lhs: u32", syntax.Format(add.Fields.List[0].Tokens()))
	assert.Equal(t, "Vec<(u8, u8)>", syntax.Format(add.Fields.List[1].Type))

	neg := item.Variants[1]
	assert.Equal(t, syntax.Positional, neg.Fields.Shape)
	require.Len(t, neg.Fields.List, 2)
	assert.False(t, neg.Fields.List[0].IsNamed())
	assert.Equal(t, `#[doc = "x"] pub i64`, syntax.Format(neg.Fields.List[1].Tokens()))

	nop := item.Variants[2]
	assert.Equal(t, syntax.Unit, nop.Fields.Shape)
	assert.Equal(t, "3", syntax.Format(nop.Discriminant))
}

func TestParseStructs(t *testing.T) {
	for src, shape := range map[string]syntax.Shape{
		"struct S;":                             syntax.Unit,
		"struct S(u8, pub u16);":                syntax.Positional,
		"struct S<T>(T) where T: Copy;":         syntax.Positional,
		"pub struct S { a: u8 }":                syntax.Named,
		"struct S<T> where T: Copy { a: T }":    syntax.Named,
		"struct S<T> where T: Copy;":            syntax.Unit,
		"#[repr(C)] pub(super) struct S { }":    syntax.Named,
		"pub(in crate::a) struct S(Box<[u8]>);": syntax.Positional,
	} {
		item, err := parseItem(src)
		require.NoError(t, err, src)
		assert.Equal(t, syntax.Struct, item.Kind, src)
		assert.Equal(t, shape, item.Fields.Shape, src)
	}
}

func TestParseUnion(t *testing.T) {
	item, err := parseItem("union U { i: u32, f: f32 }")
	require.NoError(t, err)
	assert.Equal(t, syntax.Union, item.Kind)
	assert.Len(t, item.Fields.List, 2)
}

func TestParseItemSpan(t *testing.T) {
	fset := token.NewFileSet()
	trees, err := syntax.Lex(fset, "item.rs", []byte("#[derive(Clone)]\nenum E { A }"))
	require.NoError(t, err)
	item, err := syntax.ParseItem(fset, trees)
	require.NoError(t, err)

	assert.Equal(t, "item.rs:1:1", fset.Position(item.Pos()).String())
	assert.Equal(t, "item.rs:2:13", fset.Position(item.End()).String())
	assert.Equal(t, "item.rs:2:10", fset.Position(item.Variants[0].Pos()).String())
}

func TestParseItemErrors(t *testing.T) {
	for _, tc := range []struct {
		src, err string
	}{
		{"fn foo() {}", "item.rs:1:1: expected one of: `struct`, `enum`, `union`"},
		{"enum E { A B }", "item.rs:1:12: expected `,`"},
		{"enum E;", "item.rs:1:7: expected `{`"},
		{"enum {}", "item.rs:1:6: expected identifier"},
		{"enum E {} x", "item.rs:1:11: unexpected token"},
		{"#![allow(x)] enum E {}", "item.rs:1:1: an inner attribute is not permitted in this context"},
		{"enum E { A = }", "item.rs:1:14: expected an expression"},
		{"struct S { a }", "item.rs:1:14: expected `:`"},
		{"struct S { a: }", "item.rs:1:15: expected type"},
		{"struct S", "expected `where`, `{`, `(`, or `;` after struct name"},
		{"union U;", "item.rs:1:8: expected `{`"},
		{"enum E<T {}", "item.rs:1:10: expected `,` or `>`"},
	} {
		_, err := parseItem(tc.src)
		assert.EqualError(t, err, tc.err, tc.src)
	}
}
