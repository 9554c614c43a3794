package cmd

import (
	"strings"

	"github.com/schemakit/schemakit/internal/errors"
	"github.com/schemakit/schemakit/internal/schema"
)

// fieldSpec is one parsed --field value: "name:descriptor". The first
// colon separates name from descriptor; every later colon belongs to
// the descriptor itself.
type fieldSpec struct {
	name       string
	descriptor string
	nullable   bool
}

// parseFieldSpecs turns --field values into specs, marking names listed
// in --not-null as non-nullable.
func parseFieldSpecs(specs, notNull []string) ([]fieldSpec, error) {
	if len(specs) == 0 {
		return nil, errors.New(errors.ErrTypeArgument, "at least one --field is required")
	}

	nonNullable := make(map[string]bool, len(notNull))
	for _, name := range notNull {
		nonNullable[name] = true
	}

	out := make([]fieldSpec, len(specs))

	for i, spec := range specs {
		colon := strings.IndexByte(spec, ':')
		if colon <= 0 || colon == len(spec)-1 {
			return nil, errors.Newf(errors.ErrTypeArgument, "invalid field %q: expected name:descriptor", spec)
		}

		name := spec[:colon]
		out[i] = fieldSpec{
			name:       name,
			descriptor: spec[colon+1:],
			nullable:   !nonNullable[name],
		}
	}

	return out, nil
}

// buildStructType builds a fully local, validated StructType from specs.
func buildStructType(specs []fieldSpec) (*schema.StructType, error) {
	fields := make([]*schema.StructField, len(specs))

	for i, spec := range specs {
		field, err := schema.NewStructField(spec.name, spec.descriptor, spec.nullable)
		if err != nil {
			return nil, err
		}

		fields[i] = field
	}

	return schema.NewStructType(fields...)
}
