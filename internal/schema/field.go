package schema

import (
	"strings"

	"github.com/schemakit/schemakit/internal/errors"
)

// Handle is an opaque identifier for an engine-side schema object. It
// is a lookup key for adapter calls only, never a local computation
// target; entities in hydrated mode hold it as a weak back-reference.
type Handle string

// Source is the read side of the backend adapter consumed by hydrated
// entities. Every call is one synchronous round trip; results are never
// memoized here, so a stale handle surfaces on each access.
type Source interface {
	FieldName(h Handle) (string, error)
	FieldType(h Handle) (Handle, error)
	FieldNullable(h Handle) (bool, error)
	TypeFields(h Handle) ([]Handle, error)
	TypeString(h Handle) (string, error)
}

// StructField is one named, typed, nullable schema entry. It is
// immutable once constructed, in one of two explicit modes: built from
// a descriptor (fully local) or hydrated from a backend handle (every
// accessor delegates to the Source).
type StructField struct {
	name     string
	dataType *TypeNode
	nullable bool

	src    Source
	handle Handle
}

// NewStructField builds a field from a descriptor string, running the
// full grammar validation eagerly. Construction either fully succeeds
// or fails; no partial field is ever returned.
func NewStructField(name, descriptor string, nullable bool) (*StructField, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New(errors.ErrTypeArgument, "field name must be non-empty")
	}

	dataType, err := Parse(descriptor)
	if err != nil {
		return nil, err
	}

	return &StructField{name: name, dataType: dataType, nullable: nullable}, nil
}

// FieldFromHandle wraps an engine-side field object. Accessors on the
// result are lazy pass-throughs to src, one round trip per call.
func FieldFromHandle(src Source, handle Handle) *StructField {
	return &StructField{src: src, handle: handle}
}

func (f *StructField) hydrated() bool {
	return f.src != nil
}

// Name returns the field name. Hydrated fields fetch it from the
// backend and may fail with a backend error on a stale handle.
func (f *StructField) Name() (string, error) {
	if !f.hydrated() {
		return f.name, nil
	}

	return f.src.FieldName(f.handle)
}

// DataType returns the field's type tree. Hydrated fields fetch the
// type display from the backend and parse it on every call.
func (f *StructField) DataType() (*TypeNode, error) {
	if !f.hydrated() {
		return f.dataType, nil
	}

	typeHandle, err := f.src.FieldType(f.handle)
	if err != nil {
		return nil, err
	}

	display, err := f.src.TypeString(typeHandle)
	if err != nil {
		return nil, err
	}

	return Parse(display)
}

// Nullable reports whether the column admits NULLs.
func (f *StructField) Nullable() (bool, error) {
	if !f.hydrated() {
		return f.nullable, nil
	}

	return f.src.FieldNullable(f.handle)
}
