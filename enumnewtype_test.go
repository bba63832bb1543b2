package enumnewtype_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	enumnewtype "github.com/Robbepop/enum-newtype"
)

// TestExpansions tests expansions in the testdata directory.
//
// Each txtar archive under testdata/expand/ is a subtest. An archive holds
// either the inputs of [enumnewtype.Transform]:
//
//	-- attr --   attribute arguments
//	-- item --   enum declaration
//	-- want --   expected expansion, or
//	-- error --  expected error message
//
// or a whole file for [enumnewtype.ExpandFile]:
//
//	-- input.rs --
//	-- output.rs --
func TestExpansions(t *testing.T) {
	paths, err := filepath.Glob(filepath.FromSlash("testdata/expand/*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ar, err := txtar.ParseFile(path)
			require.NoError(t, err)

			files := make(map[string]string)
			for _, f := range ar.Files {
				files[f.Name] = string(f.Data)
			}

			if input, ok := files["input.rs"]; ok {
				got, err := enumnewtype.ExpandFile("input.rs", []byte(input))
				require.NoError(t, err)
				assert.Equal(t, files["output.rs"], string(got))
				return
			}

			got, err := enumnewtype.Transform(files["attr"], files["item"])
			if want, ok := files["error"]; ok {
				assert.EqualError(t, err, strings.TrimSpace(want))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, files["want"], got)
		})
	}
}

func TestTransformTokens(t *testing.T) {
	got := enumnewtype.TransformTokens("name = V", "struct S;")
	assert.Equal(t, "::core::compile_error! { \"cannot use `#enum_newtype` on `struct` types\" }\n", got)

	got = enumnewtype.TransformTokens("name = V", "enum E {}")
	assert.True(t, strings.HasPrefix(got, "enum E {}\n\npub trait V {}\n"))
}

func TestTransformSyntaxErrors(t *testing.T) {
	for _, tc := range []struct {
		attr, item, err string
	}{
		{"name OpVariants", "enum E {}", "attr:1:6: expected `,`"},
		{"name = ", "enum E {}", "attr:1:7: expected an expression"},
		{"name = A B", "enum E { X }", "attr:1:10: expected `,`"},
		{"name = V, aliases = x y", "enum E { X }", "attr:1:23: expected `,`"},
		{"name = V, aliases = 1 +", "enum E { X }", "attr:1:24: expected an expression"},
		{"name = V", "fn foo() {}", "item:1:1: expected one of: `struct`, `enum`, `union`"},
		{"name = V", "enum E { A B }", "item:1:12: expected `,`"},
		{"name = V", "enum E { A", "item:1:8: unclosed delimiter `{`"},
	} {
		_, err := enumnewtype.Transform(tc.attr, tc.item)
		assert.EqualError(t, err, tc.err, "attr: %s, item: %s", tc.attr, tc.item)
	}
}

func TestExpandFileWithoutItems(t *testing.T) {
	src := []byte("fn main() {}\n")
	got, err := enumnewtype.ExpandFile("main.rs", src)
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestExpandFileOptions(t *testing.T) {
	src := []byte("#[newtype]\nenum E { A }\n#[enum_newtype]\nenum F {}\n")

	got, err := enumnewtype.ExpandFile("lib.rs", src,
		enumnewtype.WithAttribute("newtype"),
		enumnewtype.WithCompileErrors(true),
		enumnewtype.WithLogger(nil),
	)
	require.NoError(t, err)
	assert.Equal(t, "::core::compile_error! { \"cannot find valid `name` parameter\" }\n#[enum_newtype]\nenum F {}\n", string(got))

	_, err = enumnewtype.ExpandFile("lib.rs", src, enumnewtype.WithAttribute("newtype"))
	assert.EqualError(t, err, "lib.rs:1:1: cannot find valid `name` parameter")
}

func TestExpansionIsDeterministic(t *testing.T) {
	attr := "name = ListVariants, aliases = true"
	item := "#[derive(Clone)]\npub enum List<'a, T: Clone> where T: 'a { Cons(&'a T, Box<List<'a, T>>), Nil }"
	first, err := enumnewtype.Transform(attr, item)
	require.NoError(t, err)
	for range 5 {
		again, err := enumnewtype.Transform(attr, item)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	ar, err := txtar.ParseFile(filepath.FromSlash("testdata/expand/file.txtar"))
	require.NoError(t, err)
	var src []byte
	for _, f := range ar.Files {
		if f.Name == "input.rs" {
			src = f.Data
		}
	}
	require.NotEmpty(t, src)

	firstFile, err := enumnewtype.ExpandFile("input.rs", src)
	require.NoError(t, err)
	for range 5 {
		againFile, err := enumnewtype.ExpandFile("input.rs", src)
		require.NoError(t, err)
		assert.Equal(t, firstFile, againFile)
	}
}
