package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemakit/schemakit/internal/errors"
)

func TestPrintStructField(t *testing.T) {
	f, err := NewStructField("a", "integer", true)
	require.NoError(t, err)

	out, err := PrintStructField(f)
	require.NoError(t, err)
	assert.Equal(t, `StructField(name = "a", type = "integer", nullable = true)`, out)
}

func TestPrintStructType(t *testing.T) {
	a, err := NewStructField("a", "integer", true)
	require.NoError(t, err)

	b, err := NewStructField("b", "string", false)
	require.NoError(t, err)

	st, err := NewStructType(a, b)
	require.NoError(t, err)

	out, err := PrintStructType(st)
	require.NoError(t, err)

	expected := "StructType\n" +
		`|- name = "a", type = "integer", nullable = true` + "\n" +
		`|- name = "b", type = "string", nullable = false`
	assert.Equal(t, expected, out)
}

func TestPrintStructTypeNestedField(t *testing.T) {
	f, err := NewStructField("payload", "struct<x:integer,y:map<string,double>>", true)
	require.NoError(t, err)

	st, err := NewStructType(f)
	require.NoError(t, err)

	out, err := PrintStructType(st)
	require.NoError(t, err)

	expected := "StructType\n" +
		`|- name = "payload", type = "struct<x:integer,y:map<string,double>>", nullable = true`
	assert.Equal(t, expected, out)
}

func TestPrintHydratedStructType(t *testing.T) {
	src := newStubSource()
	st := TypeFromHandle(src, "st1")

	out, err := PrintStructType(st)
	require.NoError(t, err)

	expected := "StructType\n" +
		`|- name = "a", type = "integer", nullable = true`
	assert.Equal(t, expected, out)
}

func TestPrintHydratedStaleHandle(t *testing.T) {
	src := newStubSource()
	st := TypeFromHandle(src, "gone")

	_, err := PrintStructType(st)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeBackend))
}

func TestTypeNodeDisplay(t *testing.T) {
	tests := []struct {
		descriptor string
	}{
		{"integer"},
		{"numeric"},
		{"array<boolean>"},
		{"map<string,date>"},
		{"struct<a:integer,b:string>"},
		{"array<struct<x:timestamp>>"},
		{"map<character,array<integer>>"},
	}

	for _, tt := range tests {
		t.Run(tt.descriptor, func(t *testing.T) {
			node, err := Parse(tt.descriptor)
			require.NoError(t, err)
			assert.Equal(t, tt.descriptor, node.String())
		})
	}
}
