package enumnewtypeinternal_test

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	enumnewtypeinternal "github.com/Robbepop/enum-newtype/internal/enumnewtype"
)

func expandSource(t *testing.T, src string, opts enumnewtypeinternal.Options) (string, error) {
	t.Helper()
	e, err := enumnewtypeinternal.New(token.NewFileSet(), "lib.rs", []byte(src), opts)
	require.NoError(t, err)
	if err := e.Build(); err != nil {
		return "", err
	}
	return string(e.Generate()), nil
}

func TestExpanderSplicesNestedItems(t *testing.T) {
	src := `use core::fmt;

#[derive(Debug)]
#[enum_newtype(name = OpVariants)]
pub enum Op {
    Nop,
}

mod inner {
    #[enum_newtype(name = V)]
    enum E { A(u8) }
}
`
	want := `use core::fmt;

#[derive(Debug)]
pub enum Op {
    Nop(<Self as OpVariants>::Nop),
}

pub trait OpVariants {
    type Nop;
}

const _: () = {
    #[derive(Debug)]
    pub struct __enum_newtype_Nop;

    impl ::core::convert::From<__enum_newtype_Nop> for Op {
        fn from(variant: __enum_newtype_Nop) -> Self {
            Self::Nop(variant)
        }
    }

    impl OpVariants for Op {
        type Nop = __enum_newtype_Nop;
    }
};

mod inner {
    enum E {
        A(<Self as V>::A),
    }

    pub trait V {
        type A;
    }

    const _: () = {
        pub struct __enum_newtype_A(u8);

        impl ::core::convert::From<__enum_newtype_A> for E {
            fn from(variant: __enum_newtype_A) -> Self {
                Self::A(variant)
            }
        }

        impl V for E {
            type A = __enum_newtype_A;
        }
    };
}
`
	got, err := expandSource(t, src, enumnewtypeinternal.Options{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExpanderNoSites(t *testing.T) {
	e, err := enumnewtypeinternal.New(token.NewFileSet(), "lib.rs", []byte("#[derive(Debug)] enum E { A }"), enumnewtypeinternal.Options{})
	require.NoError(t, err)
	require.NoError(t, e.Build())
	assert.Equal(t, 0, e.Len())
	assert.Nil(t, e.Generate())
}

func TestExpanderQualifiedAttribute(t *testing.T) {
	got, err := expandSource(t, "#[enum_newtype::enum_newtype(name = V)]\nenum E {}\n", enumnewtypeinternal.Options{})
	require.NoError(t, err)
	assert.Equal(t, "enum E {}\n\npub trait V {}\n\nconst _: () = {\n    impl V for E {}\n};\n", got)
}

func TestExpanderCustomAttribute(t *testing.T) {
	src := "#[enum_newtype(name = Ignored)]\n#[newtype(name = V)]\nenum E {}\n"
	got, err := expandSource(t, src, enumnewtypeinternal.Options{Attribute: "newtype"})
	require.NoError(t, err)
	assert.Contains(t, got, "#[enum_newtype(name = Ignored)]\nenum E {}\n")
	assert.Contains(t, got, "pub trait V {}")
}

func TestExpanderOnlyFirstInvokingAttribute(t *testing.T) {
	src := "#[enum_newtype(name = A)]\n#[enum_newtype(name = B)]\nenum E {}\n"
	got, err := expandSource(t, src, enumnewtypeinternal.Options{})
	require.NoError(t, err)
	assert.Contains(t, got, "#[enum_newtype(name = B)]\nenum E {}\n")
	assert.Contains(t, got, "pub trait A {}")
}

func TestExpanderErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		err  string
	}{
		{
			name: "bare attribute",
			src:  "#[enum_newtype]\nenum E { A }\n",
			err:  "lib.rs:1:1: cannot find valid `name` parameter",
		},
		{
			name: "struct",
			src:  "#[enum_newtype(name = X)]\nstruct S;\n",
			err:  "lib.rs:2:1: cannot use `#enum_newtype` on `struct` types",
		},
		{
			name: "name value attribute",
			src:  "#[enum_newtype = \"X\"]\nenum E {}\n",
			err:  "lib.rs:1:1: expected `#[enum_newtype(...)]`",
		},
		{
			name: "missing item",
			src:  "#[enum_newtype(name = X)]",
			err:  "lib.rs:1:1: expected an item after the attribute",
		},
		{
			name: "two items",
			src:  "#[enum_newtype]\nenum A {}\n#[enum_newtype(name = X)]\nunion U { a: u8 }\n",
			err:  "lib.rs:1:1: cannot find valid `name` parameter\nlib.rs:4:1: cannot use `#enum_newtype` on `union` types",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := expandSource(t, tc.src, enumnewtypeinternal.Options{})
			assert.EqualError(t, err, tc.err)
		})
	}
}

func TestExpanderCompileErrors(t *testing.T) {
	src := "fn main() {}\n\n#[enum_newtype]\nenum E { A }\n"
	got, err := expandSource(t, src, enumnewtypeinternal.Options{CompileErrors: true})
	require.NoError(t, err)
	assert.Equal(t, "fn main() {}\n\n::core::compile_error! { \"cannot find valid `name` parameter\" }\n", got)
}

func TestNewLexError(t *testing.T) {
	_, err := enumnewtypeinternal.New(token.NewFileSet(), "lib.rs", []byte("enum E { A"), enumnewtypeinternal.Options{})
	assert.EqualError(t, err, "lib.rs:1:8: unclosed delimiter `{`")
}

func TestExpanderLogsParameters(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	src := "#[enum_newtype(name = \"V\", aliases = true)]\nenum E {}\n"
	_, err := expandSource(t, src, enumnewtypeinternal.Options{CompileErrors: true, Logger: zap.New(core)})
	require.NoError(t, err)

	params := logs.FilterMessage("parameters").All()
	require.Len(t, params, 1)
	assert.Equal(t, int64(2), params[0].ContextMap()["entries"])

	warnings := logs.FilterMessage("name parameter is not a plain identifier").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, zap.WarnLevel, warnings[0].Level)
	assert.Equal(t, `name = "V"`, warnings[0].ContextMap()["param"])
	assert.Equal(t, "lib.rs:1:16", warnings[0].ContextMap()["pos"])
}

func TestExpanderIsDeterministic(t *testing.T) {
	src := "#[derive(Debug)]\n#[enum_newtype(name = V, aliases = true)]\nenum E<T> { A { x: T }, B(u8), C }\n"
	first, err := expandSource(t, src, enumnewtypeinternal.Options{})
	require.NoError(t, err)
	for range 5 {
		again, err := expandSource(t, src, enumnewtypeinternal.Options{})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
