package schema

import (
	"strings"

	"github.com/schemakit/schemakit/internal/errors"
)

// Parse turns a type descriptor into a TypeNode, validating eagerly.
// The grammar, with case-sensitive literals:
//
//	type        := primitive | "array<" type ">" | "map<" type "," type ">" | "struct<" field_list ">"
//	field_list  := field ("," field)*   // no trailing comma
//	field       := identifier ":" type
//
// Splitting a field_list on commas and a field on its colon is
// depth-aware: separators only count at bracket depth zero, so nested
// array/map/struct descriptors keep their own commas and colons.
func Parse(descriptor string) (*TypeNode, error) {
	switch {
	case strings.HasPrefix(descriptor, "array<") && strings.HasSuffix(descriptor, ">"):
		return parseArray(descriptor)
	case strings.HasPrefix(descriptor, "map<") && strings.HasSuffix(descriptor, ">"):
		return parseMap(descriptor)
	case strings.HasPrefix(descriptor, "struct<") && strings.HasSuffix(descriptor, ">"):
		return parseStruct(descriptor)
	default:
		if IsPrimitiveAlias(descriptor) {
			return &TypeNode{Kind: KindPrimitive, Name: descriptor}, nil
		}

		return nil, unsupportedType(descriptor)
	}
}

// CheckType validates a descriptor without exposing the parsed tree.
func CheckType(descriptor string) error {
	_, err := Parse(descriptor)
	return err
}

func parseArray(descriptor string) (*TypeNode, error) {
	inner := descriptor[len("array<") : len(descriptor)-1]

	elem, err := Parse(inner)
	if err != nil {
		return nil, err
	}

	return &TypeNode{Kind: KindArray, Elem: elem}, nil
}

func parseMap(descriptor string) (*TypeNode, error) {
	inner := descriptor[len("map<") : len(descriptor)-1]

	parts := splitAtDepthZero(inner, ',')
	if len(parts) != 2 {
		return nil, unsupportedType(descriptor)
	}

	key, err := Parse(parts[0])
	if err != nil {
		return nil, err
	}

	if !isStringLike(key) {
		return nil, errors.New(errors.ErrTypeValidation, "key type in a map must be string-like")
	}

	value, err := Parse(parts[1])
	if err != nil {
		return nil, err
	}

	return &TypeNode{Kind: KindMap, Key: key, Value: value}, nil
}

func parseStruct(descriptor string) (*TypeNode, error) {
	inner := descriptor[len("struct<") : len(descriptor)-1]
	if inner == "" {
		return nil, unsupportedType(descriptor)
	}

	entries := splitAtDepthZero(inner, ',')
	fields := make([]NamedType, 0, len(entries))

	for _, entry := range entries {
		// An empty entry means a trailing (or doubled) comma; neither
		// is tolerated.
		if entry == "" {
			return nil, unsupportedType(descriptor)
		}

		colon := indexAtDepthZero(entry, ':')
		if colon <= 0 {
			return nil, unsupportedType(descriptor)
		}

		name := entry[:colon]

		fieldType, err := Parse(entry[colon+1:])
		if err != nil {
			return nil, err
		}

		fields = append(fields, NamedType{Name: name, Type: fieldType})
	}

	return &TypeNode{Kind: KindStruct, Fields: fields}, nil
}

// splitAtDepthZero splits s on sep, counting '<' and '>' so separators
// inside nested descriptors are never split points.
func splitAtDepthZero(s string, sep byte) []string {
	var parts []string

	depth := 0
	start := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}

	return append(parts, s[start:])
}

// indexAtDepthZero returns the index of the first depth-zero occurrence
// of sep in s, or -1.
func indexAtDepthZero(s string, sep byte) int {
	depth := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		case sep:
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

func unsupportedType(descriptor string) *errors.Error {
	return errors.Newf(errors.ErrTypeValidation, "unsupported type for schema: %s", descriptor)
}
