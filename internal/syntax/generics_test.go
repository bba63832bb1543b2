package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Robbepop/enum-newtype/internal/syntax"
)

func TestGenerics(t *testing.T) {
	item, err := parseItem("enum E<T: Clone + 'a = u8, 'a, const N: usize = 3> where T: Default {}")
	require.NoError(t, err)
	g := item.Generics

	require.Len(t, g.Params, 3)
	assert.Equal(t, syntax.TypeParam, g.Params[0].Kind)
	assert.Equal(t, syntax.LifetimeParam, g.Params[1].Kind)
	assert.Equal(t, syntax.ConstParam, g.Params[2].Kind)

	assert.Equal(t, "<'a, T: Clone + 'a = u8, const N: usize = 3>", g.Code())

	impl, typ, where := g.SplitForImpl()
	assert.Equal(t, "<'a, T: Clone + 'a, const N: usize>", impl)
	assert.Equal(t, "<'a, T, N>", typ)
	assert.Equal(t, "where T: Default", where)
}

func TestGenericsNested(t *testing.T) {
	item, err := parseItem("enum E<I: Iterator<Item = (u8, u8)>, F: Fn(u8) -> u8> {}")
	require.NoError(t, err)
	assert.Equal(t, "<I: Iterator<Item = (u8, u8)>, F: Fn(u8) -> u8>", item.Generics.Code())
	assert.Equal(t, "<I, F>", item.Generics.TypeCode())
}

func TestGenericsEmpty(t *testing.T) {
	item, err := parseItem("enum E where {}")
	require.NoError(t, err)
	g := item.Generics

	assert.True(t, g.IsEmpty())
	assert.True(t, g.HasWhere)
	impl, typ, where := g.SplitForImpl()
	assert.Empty(t, impl)
	assert.Empty(t, typ)
	assert.Empty(t, where)
}

func TestGenericsAttrs(t *testing.T) {
	item, err := parseItem("struct S<#[cfg(x)] T>(T);")
	require.NoError(t, err)
	assert.Equal(t, "<#[cfg(x)] T>", item.Generics.Code())
	assert.Equal(t, "<T>", item.Generics.TypeCode())
}
