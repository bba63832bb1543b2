// Package enumnewtype expands Rust enums into newtype enums.
//
// A newtype enum is an enum whose variants each hold a single value of a
// dedicated struct type. Writing such enums by hand means declaring a struct
// per variant and keeping both in sync. Enumnewtype derives everything from a
// plain enum annotated with the enum_newtype attribute:
//
//	// source:
//	#[derive(Debug, Copy, Clone)]
//	#[enum_newtype(name = OpVariants)]
//	pub enum Op {
//	    Add { lhs: u32, rhs: u32 },
//	    Nop,
//	}
//
//	// generated: (simplified)
//	#[derive(Debug, Copy, Clone)]
//	pub enum Op {
//	    Add(<Self as OpVariants>::Add),
//	    Nop(<Self as OpVariants>::Nop),
//	}
//
//	pub trait OpVariants {
//	    type Add;
//	    type Nop;
//	}
//
//	const _: () = {
//	    #[derive(Debug, Copy, Clone)]
//	    pub struct __enum_newtype_Add { lhs: u32, rhs: u32 }
//	    impl From<__enum_newtype_Add> for Op { ... }
//	    impl OpVariants for Op { type Add = __enum_newtype_Add; ... }
//	    ...
//	};
//
// The generated structs are reachable only through the companion trait, e.g.,
// <Op as OpVariants>::Add { lhs: 1, rhs: 2 }.into() builds an Op::Add.
//
// Derive attributes of the enum are copied onto every struct. Other
// attributes stay on the enum only. The name parameter is required. Other
// parameters like aliases are accepted and ignored.
//
// # Usage
//
// [Transform] expands a single enum given as attribute arguments and item
// source. [ExpandFile] expands every annotated item in a Rust source file. The
// enumnewtype command does the same for files on disk:
//
//	go run github.com/Robbepop/enum-newtype/cmd/enumnewtype src/op.rs
//
// # Diagnostics
//
// Failures are reported with the position of the offending code, e.g.:
//
//	op.rs:1:1: cannot find valid `name` parameter
//	op.rs:2:1: cannot use `#enum_newtype` on `struct` types
//
// [TransformTokens] and [WithCompileErrors] report them as compile_error!
// invocations instead, like a procedural macro does.
package enumnewtype

import (
	"go/token"
	"strings"

	"go.uber.org/zap"

	"github.com/Robbepop/enum-newtype/internal/codefmt"
	enumnewtypeinternal "github.com/Robbepop/enum-newtype/internal/enumnewtype"
	"github.com/Robbepop/enum-newtype/internal/expand"
	"github.com/Robbepop/enum-newtype/internal/syntax"
)

// Transform expands the enum item with the attribute arguments attr, e.g.,
// "name = OpVariants". It returns the Rust source of the expansion. Errors
// carry positions in the pseudo files "attr" and "item".
func Transform(attr, item string) (string, error) {
	fset := token.NewFileSet()

	attrTrees, err := syntax.Lex(fset, "attr", []byte(attr))
	if err != nil {
		return "", err
	}
	itemTrees, err := syntax.Lex(fset, "item", []byte(item))
	if err != nil {
		return "", err
	}

	params, err := expand.ParseParams(fset, attrTrees, token.NoPos, token.NoPos)
	if err != nil {
		return "", err
	}
	// The name is resolved before the item is even parsed.
	if _, err := params.Name(); err != nil {
		return "", err
	}

	parsed, err := syntax.ParseItem(fset, itemTrees)
	if err != nil {
		return "", err
	}
	out, err := expand.Expand(params, parsed)
	if err != nil {
		return "", err
	}
	return out.Code(), nil
}

// TransformTokens is like [Transform] but never fails. On failure, it returns
// a compile_error! invocation per diagnostic.
func TransformTokens(attr, item string) string {
	code, err := Transform(attr, item)
	if err == nil {
		return code
	}

	var b strings.Builder
	expand.WriteCompileErrors(codefmt.NewWriter(&b, nil), err)
	return b.String()
}

// Option configures [ExpandFile].
type Option func(*enumnewtypeinternal.Options)

// WithAttribute sets the name of the attribute to expand. The default is
// "enum_newtype".
func WithAttribute(name string) Option {
	return func(o *enumnewtypeinternal.Options) { o.Attribute = name }
}

// WithCompileErrors makes items failing to expand turn into compile_error!
// invocations instead of failing the whole file.
func WithCompileErrors(enabled bool) Option {
	return func(o *enumnewtypeinternal.Options) { o.CompileErrors = enabled }
}

// WithLogger sets the logger for progress and debug messages.
func WithLogger(l *zap.Logger) Option {
	return func(o *enumnewtypeinternal.Options) { o.Logger = l }
}

// ExpandFile expands every annotated item in the Rust source file src. The
// rest of the file is kept byte by byte. If there is no annotated item, src is
// returned as is.
func ExpandFile(filename string, src []byte, opts ...Option) ([]byte, error) {
	var o enumnewtypeinternal.Options
	for _, opt := range opts {
		opt(&o)
	}

	e, err := enumnewtypeinternal.New(token.NewFileSet(), filename, src, o)
	if err != nil {
		return nil, err
	}
	if err := e.Build(); err != nil {
		return nil, err
	}

	code := e.Generate()
	if code == nil {
		return src, nil
	}
	return code, nil
}
