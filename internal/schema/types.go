// Package schema implements the type-descriptor mini-language used to
// declare tabular column types, and the entity model (fields, struct
// types) handed to the query engine backend.
package schema

import "strings"

// Kind discriminates the variants of a TypeNode.
type Kind int

const (
	KindPrimitive Kind = iota
	KindArray
	KindMap
	KindStruct
)

// TypeNode is the structured representation of a parsed type descriptor.
// Exactly the fields relevant to Kind are populated.
type TypeNode struct {
	Kind   Kind
	Name   string      // primitive alias, as written by the caller
	Elem   *TypeNode   // array element
	Key    *TypeNode   // map key
	Value  *TypeNode   // map value
	Fields []NamedType // struct fields, order significant
}

// NamedType is one named entry of a struct descriptor. Names are not
// required to be unique at this level.
type NamedType struct {
	Name string
	Type *TypeNode
}

// primitiveAliases is the fixed alias set accepted by the validator.
// Pairs like double/numeric and character/string are symmetric: either
// alias is accepted and preserved as written. Canonicalizing to the
// engine's internal type name is the backend adapter's job.
var primitiveAliases = map[string]struct{}{
	"byte":      {},
	"integer":   {},
	"float":     {},
	"double":    {},
	"numeric":   {},
	"character": {},
	"string":    {},
	"binary":    {},
	"raw":       {},
	"logical":   {},
	"boolean":   {},
	"timestamp": {},
	"date":      {},
}

// stringAliases are the aliases that qualify as a map key type.
var stringAliases = map[string]struct{}{
	"character": {},
	"string":    {},
}

// IsPrimitiveAlias reports whether name is a member of the alias set.
func IsPrimitiveAlias(name string) bool {
	_, ok := primitiveAliases[name]
	return ok
}

// isStringLike reports whether a node resolves to the string primitive.
func isStringLike(t *TypeNode) bool {
	if t == nil || t.Kind != KindPrimitive {
		return false
	}

	_, ok := stringAliases[t.Name]

	return ok
}

// String renders the canonical display form of the type. For canonical
// input this round-trips through Parse unchanged.
func (t *TypeNode) String() string {
	switch t.Kind {
	case KindPrimitive:
		return t.Name
	case KindArray:
		return "array<" + t.Elem.String() + ">"
	case KindMap:
		return "map<" + t.Key.String() + "," + t.Value.String() + ">"
	case KindStruct:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = f.Name + ":" + f.Type.String()
		}

		return "struct<" + strings.Join(parts, ",") + ">"
	default:
		return ""
	}
}
