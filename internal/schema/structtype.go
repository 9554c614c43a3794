package schema

import "github.com/schemakit/schemakit/internal/errors"

// StructType is an ordered, non-empty collection of StructFields
// representing a full row schema. Immutable after construction.
type StructType struct {
	fields []*StructField

	src    Source
	handle Handle
}

// NewStructType assembles a schema from explicit fields, preserving
// order. It fails on an empty list and on nil entries.
func NewStructType(fields ...*StructField) (*StructType, error) {
	if len(fields) == 0 {
		return nil, errors.New(errors.ErrTypeArgument, "at least one field is required")
	}

	for _, f := range fields {
		if f == nil {
			return nil, errors.New(errors.ErrTypeArgument, "all arguments must be schema fields")
		}
	}

	out := make([]*StructField, len(fields))
	copy(out, fields)

	return &StructType{fields: out}, nil
}

// TypeFromHandle wraps an engine-side struct type. Fields() becomes a
// lazy adapter query instead of a locally cached list.
func TypeFromHandle(src Source, handle Handle) *StructType {
	return &StructType{src: src, handle: handle}
}

// Fields returns the schema's fields in declaration order. In hydrated
// mode every call is a fresh round trip to the backend.
func (st *StructType) Fields() ([]*StructField, error) {
	if st.src == nil {
		out := make([]*StructField, len(st.fields))
		copy(out, st.fields)

		return out, nil
	}

	handles, err := st.src.TypeFields(st.handle)
	if err != nil {
		return nil, err
	}

	fields := make([]*StructField, len(handles))
	for i, h := range handles {
		fields[i] = FieldFromHandle(st.src, h)
	}

	return fields, nil
}
