// Package backend implements the engine-side schema adapter. It owns
// all remote-call logic so the schema entities stay plain immutable
// values; entities reference engine objects through opaque handles
// only.
package backend

import "github.com/schemakit/schemakit/internal/schema"

// Adapter is the capability surface for building and reading
// engine-side schema objects. It is a superset of schema.Source, so any
// Adapter can back hydrated entities.
type Adapter interface {
	// CreateStructField validates the descriptor and registers an
	// engine-side field object, returning its handle.
	CreateStructField(name, descriptor string, nullable bool) (schema.Handle, error)

	// CreateStructType assembles registered fields, in order, into an
	// engine-side struct type.
	CreateStructType(fields []schema.Handle) (schema.Handle, error)

	FieldName(h schema.Handle) (string, error)
	FieldType(h schema.Handle) (schema.Handle, error)
	FieldNullable(h schema.Handle) (bool, error)
	TypeFields(h schema.Handle) ([]schema.Handle, error)

	// TypeString returns the full type display; TypeSimpleString an
	// abbreviated one.
	TypeString(h schema.Handle) (string, error)
	TypeSimpleString(h schema.Handle) (string, error)
}
