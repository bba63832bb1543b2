package expand

import (
	"strings"

	"github.com/Robbepop/enum-newtype/internal/syntax"
)

// newtypeVariant rewrites the variant to hold the associated type of the
// companion trait. Attributes and the discriminant are kept.
func newtypeVariant(v syntax.Variant, trait syntax.Tree, typeGenerics string) NewtypeVariant {
	return NewtypeVariant{
		Attrs:        v.Attrs,
		Name:         v.Name,
		Payload:      "<Self as " + trait.Text + typeGenerics + ">::" + v.Name.Text,
		Discriminant: v.Discriminant,
	}
}

// wrapperStruct creates the wrapper struct for the variant. It keeps the field
// shape and fields of the variant and copies all generics of the enum, even
// unused ones. Its attributes are the variant attributes followed by the
// derive attributes of the enum.
func wrapperStruct(v syntax.Variant, generics syntax.Generics, derives []syntax.Attribute) Wrapper {
	attrs := append([]syntax.Attribute(nil), v.Attrs...)
	attrs = append(attrs, derives...)
	return Wrapper{
		Attrs:    attrs,
		Name:     wrapperName(v.Name),
		Variant:  v.Name,
		Generics: generics,
		Fields:   v.Fields,
	}
}

// wrapperName returns the prefixed name of the wrapper struct for a variant.
// The r# of a raw identifier is dropped because the prefixed name is no
// keyword.
func wrapperName(variant syntax.Tree) syntax.Tree {
	name := variant
	name.Text = WrapperPrefix + strings.TrimPrefix(variant.Text, "r#")
	return name
}
