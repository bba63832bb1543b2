package expand

import (
	"strings"

	"github.com/Robbepop/enum-newtype/internal/codefmt"
	"github.com/Robbepop/enum-newtype/internal/syntax"
)

// WriteCode writes the rewritten enum, the companion trait, and the helper
// items in an anonymous const block.
func (out *Output) WriteCode(w *codefmt.Writer) {
	out.writeEnum(w)
	w.Printf("\n")
	out.writeTrait(w)
	w.Printf("\n")
	out.writeScope(w)
}

// Code renders the output as a string.
func (out *Output) Code() string {
	var b strings.Builder
	out.WriteCode(codefmt.NewWriter(&b, out.fset))
	return b.String()
}

func (out *Output) writeEnum(w *codefmt.Writer) {
	e := out.Enum
	writeAttrs(w, e.Attrs)
	head := join(e.Vis.Code(), "enum", e.Name.Text+e.Generics.Code(), e.Generics.WhereCode())
	if len(e.Variants) == 0 {
		w.Printf("%s {}\n", head)
		return
	}

	w.Printf("%s {\n", head)
	inner := w.Indented()
	for _, v := range e.Variants {
		writeAttrs(inner, v.Attrs)
		inner.Printf("%s(%s)", v.Name.Text, v.Payload)
		if len(v.Discriminant) != 0 {
			inner.Printf(" = %s", syntax.Format(v.Discriminant))
		}
		inner.Printf(",\n")
	}
	w.Printf("}\n")
}

func (out *Output) writeTrait(w *codefmt.Writer) {
	t := out.Trait
	head := join("pub trait", t.Name.Text+t.Generics.Code(), t.Generics.WhereCode())
	if len(t.AssocTypes) == 0 {
		w.Printf("%s {}\n", head)
		return
	}

	w.Printf("%s {\n", head)
	inner := w.Indented()
	for _, name := range t.AssocTypes {
		inner.Printf("type %s;\n", name.Text)
	}
	w.Printf("}\n")
}

// writeScope writes the wrapper structs, the conversions, and the trait
// implementation in "const _: () = { ... };".
func (out *Output) writeScope(w *codefmt.Writer) {
	w.Printf("const _: () = {\n")
	inner := w.Indented()
	for _, wrapper := range out.Wrappers {
		writeWrapper(inner, wrapper)
		inner.Printf("\n")
	}
	for _, wrapper := range out.Wrappers {
		out.writeFrom(inner, wrapper)
		inner.Printf("\n")
	}
	out.writeTraitImpl(inner)
	w.Printf("};\n")
}

func writeWrapper(w *codefmt.Writer, s Wrapper) {
	writeAttrs(w, s.Attrs)
	name := s.Name.Text + s.Generics.Code()
	where := s.Generics.WhereCode()

	switch s.Fields.Shape {
	case syntax.Unit:
		w.Printf("%s;\n", join("pub struct", name, where))

	case syntax.Positional:
		var fields []string
		for _, f := range s.Fields.List {
			fields = append(fields, syntax.Format(f.Tokens()))
		}
		w.Printf("pub struct %s(%s)", name, strings.Join(fields, ", "))
		if where != "" {
			w.Printf(" %s", where)
		}
		w.Printf(";\n")

	case syntax.Named:
		head := join("pub struct", name, where)
		if len(s.Fields.List) == 0 {
			w.Printf("%s {}\n", head)
			return
		}
		w.Printf("%s {\n", head)
		inner := w.Indented()
		for _, f := range s.Fields.List {
			writeAttrs(inner, f.Attrs)
			f.Attrs = nil
			inner.Printf("%s,\n", syntax.Format(f.Tokens()))
		}
		w.Printf("}\n")
	}
}

func (out *Output) writeFrom(w *codefmt.Writer, s Wrapper) {
	impl, typ, where := out.Enum.Generics.SplitForImpl()
	wrapper := s.Name.Text + typ
	w.Printf("impl%s %s {\n", impl, join("::core::convert::From<"+wrapper+">", "for", out.Enum.Name.Text+typ, where))
	inner := w.Indented()
	inner.Printf("fn from(variant: %s) -> Self {\n", wrapper)
	inner.Indented().Printf("Self::%s(variant)\n", s.Variant.Text)
	inner.Printf("}\n")
	w.Printf("}\n")
}

func (out *Output) writeTraitImpl(w *codefmt.Writer) {
	impl, typ, where := out.Enum.Generics.SplitForImpl()
	head := "impl" + impl + " " + join(out.Trait.Name.Text+typ, "for", out.Enum.Name.Text+typ, where)
	if len(out.Wrappers) == 0 {
		w.Printf("%s {}\n", head)
		return
	}

	w.Printf("%s {\n", head)
	inner := w.Indented()
	for _, s := range out.Wrappers {
		inner.Printf("type %s = %s;\n", s.Variant.Text, s.Name.Text+typ)
	}
	w.Printf("}\n")
}

func writeAttrs(w *codefmt.Writer, attrs []syntax.Attribute) {
	for _, attr := range attrs {
		w.Printf("%s\n", attr.Code())
	}
}

// join joins the non-empty parts with spaces.
func join(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// WriteCompileErrors writes a compile_error! invocation for each error joined
// in err, so that the Rust compiler reports them at the expansion site.
func WriteCompileErrors(w *codefmt.Writer, err error) {
	for _, err := range codefmt.Flatten(err) {
		w.Printf("::core::compile_error! { %s }\n", syntax.Quote(codefmt.Message(err)))
	}
}
