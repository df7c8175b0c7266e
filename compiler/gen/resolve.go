package gen

import (
	"github.com/syssam/xmlgen"
	"github.com/syssam/xmlgen/schema/field"
)

// RefKind tells the two resolutions of a type reference apart.
type RefKind uint8

// Reference kinds.
const (
	RefInvalid RefKind = iota
	RefPrimitive
	RefCompound
)

// TypeRef is a resolved type reference: exactly one of a primitive kind or a
// compound type of the owning node.
type TypeRef struct {
	Kind      RefKind
	Primitive field.Type
	Compound  *TypeDef
}

// Primitive returns a reference to the primitive kind t.
func Primitive(t field.Type) TypeRef {
	return TypeRef{Kind: RefPrimitive, Primitive: t}
}

// Compound returns a reference to the compound type td.
func Compound(td *TypeDef) TypeRef {
	return TypeRef{Kind: RefCompound, Compound: td}
}

// IsPrimitive reports if the reference resolved to a primitive kind.
func (r TypeRef) IsPrimitive() bool { return r.Kind == RefPrimitive }

// IsCompound reports if the reference resolved to a compound type.
func (r TypeRef) IsCompound() bool { return r.Kind == RefCompound && r.Compound != nil }

// String returns the canonical primitive name or the compound type name.
func (r TypeRef) String() string {
	switch {
	case r.IsPrimitive():
		return r.Primitive.String()
	case r.IsCompound():
		return r.Compound.Name
	default:
		return "invalid"
	}
}

// TypeSet is the ordered list of compound types of one node.
type TypeSet []*TypeDef

// Lookup returns the type with the given name. Unlike primitive names,
// compound names are case-sensitive.
func (s TypeSet) Lookup(name string) (*TypeDef, bool) {
	for _, td := range s {
		if td.Name == name {
			return td, true
		}
	}
	return nil, false
}

// Sorted returns the types of s with every type after the compound types
// its items reference. Types keep their declaration order where references
// allow. The set must be acyclic.
func (s TypeSet) Sorted() TypeSet {
	out := make(TypeSet, 0, len(s))
	seen := make(map[*TypeDef]bool, len(s))
	var visit func(*TypeDef)
	visit = func(td *TypeDef) {
		if seen[td] {
			return
		}
		seen[td] = true
		for _, f := range td.Items {
			if f.Ref.IsCompound() {
				visit(f.Ref.Compound)
			}
		}
		out = append(out, td)
	}
	for _, td := range s {
		visit(td)
	}
	return out
}

// Resolve maps a type reference to a primitive kind or to a type of scope.
// Primitive names are matched first and case-insensitively; compound names
// are matched exactly. An unmatched reference fails with an
// *xmlgen.UnknownTypeError.
func Resolve(ref string, scope TypeSet) (TypeRef, error) {
	if t, ok := field.Lookup(ref); ok {
		return Primitive(t), nil
	}
	if td, ok := scope.Lookup(ref); ok {
		return Compound(td), nil
	}
	return TypeRef{}, xmlgen.NewUnknownTypeError(ref)
}
