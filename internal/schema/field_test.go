package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemakit/schemakit/internal/errors"
)

// stubSource is an in-memory Source for exercising hydrated entities
// without a live engine.
type stubSource struct {
	names     map[Handle]string
	types     map[Handle]Handle
	nullables map[Handle]bool
	displays  map[Handle]string
	fields    map[Handle][]Handle

	calls int
}

func (s *stubSource) FieldName(h Handle) (string, error) {
	s.calls++

	name, ok := s.names[h]
	if !ok {
		return "", errors.Newf(errors.ErrTypeBackend, "stale field handle: %s", h)
	}

	return name, nil
}

func (s *stubSource) FieldType(h Handle) (Handle, error) {
	s.calls++

	th, ok := s.types[h]
	if !ok {
		return "", errors.Newf(errors.ErrTypeBackend, "stale field handle: %s", h)
	}

	return th, nil
}

func (s *stubSource) FieldNullable(h Handle) (bool, error) {
	s.calls++

	nullable, ok := s.nullables[h]
	if !ok {
		return false, errors.Newf(errors.ErrTypeBackend, "stale field handle: %s", h)
	}

	return nullable, nil
}

func (s *stubSource) TypeFields(h Handle) ([]Handle, error) {
	s.calls++

	fields, ok := s.fields[h]
	if !ok {
		return nil, errors.Newf(errors.ErrTypeBackend, "stale type handle: %s", h)
	}

	return fields, nil
}

func (s *stubSource) TypeString(h Handle) (string, error) {
	s.calls++

	display, ok := s.displays[h]
	if !ok {
		return "", errors.Newf(errors.ErrTypeBackend, "stale type handle: %s", h)
	}

	return display, nil
}

func newStubSource() *stubSource {
	return &stubSource{
		names:     map[Handle]string{"f1": "a"},
		types:     map[Handle]Handle{"f1": "t1"},
		nullables: map[Handle]bool{"f1": true},
		displays:  map[Handle]string{"t1": "integer"},
		fields:    map[Handle][]Handle{"st1": {"f1"}},
	}
}

func TestNewStructField(t *testing.T) {
	f, err := NewStructField("a", "integer", true)
	require.NoError(t, err)

	name, err := f.Name()
	require.NoError(t, err)
	assert.Equal(t, "a", name)

	dataType, err := f.DataType()
	require.NoError(t, err)
	assert.Equal(t, "integer", dataType.String())

	nullable, err := f.Nullable()
	require.NoError(t, err)
	assert.True(t, nullable)
}

func TestNewStructFieldEmptyName(t *testing.T) {
	_, err := NewStructField("", "integer", true)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeArgument))

	_, err = NewStructField("   ", "integer", true)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeArgument))
}

func TestNewStructFieldInvalidDescriptor(t *testing.T) {
	// Parser errors propagate unchanged.
	_, err := NewStructField("a", "map<integer,double>", true)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))

	_, err = NewStructField("a", "integr", false)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
}

func TestFieldFromHandleAccessors(t *testing.T) {
	src := newStubSource()
	f := FieldFromHandle(src, "f1")

	name, err := f.Name()
	require.NoError(t, err)
	assert.Equal(t, "a", name)

	dataType, err := f.DataType()
	require.NoError(t, err)
	assert.Equal(t, "integer", dataType.String())

	nullable, err := f.Nullable()
	require.NoError(t, err)
	assert.True(t, nullable)
}

func TestFieldFromHandleNoMemoization(t *testing.T) {
	src := newStubSource()
	f := FieldFromHandle(src, "f1")

	_, err := f.Name()
	require.NoError(t, err)

	before := src.calls

	_, err = f.Name()
	require.NoError(t, err)

	assert.Greater(t, src.calls, before, "accessors must round trip on every call")
}

func TestFieldFromHandleStale(t *testing.T) {
	src := newStubSource()
	f := FieldFromHandle(src, "gone")

	_, err := f.Name()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeBackend))

	_, err = f.DataType()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeBackend))

	_, err = f.Nullable()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeBackend))
}
