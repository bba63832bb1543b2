// Package expand implements the enum newtype transformation. Given a
// parameter set naming a companion trait and an enum declaration, it derives
//
//   - the rewritten enum whose variants hold a single payload: the associated
//     type named after the variant on the companion trait,
//   - the companion trait declaring one associated type per variant,
//   - one wrapper struct per variant holding the original fields,
//   - conversions from each wrapper struct into the enum, and
//   - the implementation of the companion trait for the enum.
//
// The helper items are generated inside an anonymous const block.
package expand

import (
	"go/token"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/Robbepop/enum-newtype/internal/codefmt"
	"github.com/Robbepop/enum-newtype/internal/syntax"
)

// WrapperPrefix is prepended to variant names to name wrapper structs. Users
// must not name their own items with this prefix.
const WrapperPrefix = "__enum_newtype_"

// Output holds the declarations generated for an enum. Call
// [Output.WriteCode] to render them.
type Output struct {
	fset *token.FileSet

	Enum     Enum
	Trait    Trait
	Wrappers []Wrapper

	// wrappers maps variant names to wrapper struct names in declaration
	// order.
	wrappers *linkedhashmap.Map
}

// Enum is the rewritten enum.
type Enum struct {
	Attrs    []syntax.Attribute
	Vis      syntax.Visibility
	Name     syntax.Tree
	Generics syntax.Generics
	Variants []NewtypeVariant
}

// NewtypeVariant is a variant of the rewritten enum. Its only field is the
// associated type named after the variant.
type NewtypeVariant struct {
	Attrs        []syntax.Attribute
	Name         syntax.Tree
	Payload      string
	Discriminant []syntax.Tree
}

// Trait is the companion trait.
type Trait struct {
	Name       syntax.Tree
	Generics   syntax.Generics
	AssocTypes []syntax.Tree
}

// Wrapper is the struct holding the fields of a variant.
type Wrapper struct {
	Attrs    []syntax.Attribute
	Name     syntax.Tree
	Variant  syntax.Tree
	Generics syntax.Generics
	Fields   syntax.Fields
}

// Expand generates the declarations for item. The trait name is resolved from
// params first. Then item must be an enum. Any failure is returned as a
// positioned error and no output is generated.
func Expand(params *Params, item *syntax.Item) (*Output, error) {
	traitName, err := params.Name()
	if err != nil {
		return nil, err
	}

	if err := checkEnum(params, item); err != nil {
		return nil, err
	}

	derives := syntax.Filter(item.Attrs, syntax.Attribute.IsDerive)
	_, typeGenerics, _ := item.Generics.SplitForImpl()

	out := &Output{
		fset: params.FileSet(),
		Enum: Enum{
			Attrs:    item.Attrs,
			Vis:      item.Vis,
			Name:     item.Name,
			Generics: item.Generics,
		},
		Trait: Trait{
			Name:     traitName,
			Generics: item.Generics,
		},
		wrappers: linkedhashmap.New(),
	}

	for _, v := range item.Variants {
		out.Enum.Variants = append(out.Enum.Variants, newtypeVariant(v, traitName, typeGenerics))
		out.Trait.AssocTypes = append(out.Trait.AssocTypes, v.Name)

		wrapper := wrapperStruct(v, item.Generics, derives)
		out.Wrappers = append(out.Wrappers, wrapper)
		out.wrappers.Put(v.Name.Text, wrapper.Name.Text)
	}

	return out, nil
}

// checkEnum fails if item is not an enum. This is the only structural check.
// Empty, single-variant, and generic enums are all accepted.
func checkEnum(filer codefmt.Filer, item *syntax.Item) error {
	switch item.Kind {
	case syntax.Struct, syntax.Union:
		return codefmt.Errorf(filer, item, "cannot use `#enum_newtype` on `%s` types", item.Kind)
	}
	return nil
}

// FileSet returns the file set of the source positions.
func (out *Output) FileSet() *token.FileSet { return out.fset }

// Variants returns the variant names in declaration order.
func (out *Output) Variants() []string {
	var names []string
	for _, key := range out.wrappers.Keys() {
		names = append(names, key.(string))
	}
	return names
}
