package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/schemakit/schemakit/internal/errors"
	"github.com/schemakit/schemakit/internal/schema"
)

func newTestAdapter(t *testing.T) *DuckDBAdapter {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	adapter, err := NewDuckDBAdapter(dbPath)
	if err != nil {
		t.Fatalf("Failed to create adapter: %v", err)
	}

	t.Cleanup(func() {
		if err := adapter.Close(); err != nil {
			t.Errorf("Failed to close adapter: %v", err)
		}
	})

	return adapter
}

func TestDuckDBAdapter(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	var (
		fieldA schema.Handle
		fieldB schema.Handle
		typeH  schema.Handle
	)

	t.Run("CreateStructField", func(t *testing.T) {
		var err error

		fieldA, err = adapter.CreateStructField("a", "integer", true)
		if err != nil {
			t.Fatalf("Failed to create field: %v", err)
		}

		fieldB, err = adapter.CreateStructField("b", "map<string,double>", false)
		if err != nil {
			t.Fatalf("Failed to create field: %v", err)
		}

		name, err := adapter.FieldName(fieldA)
		if err != nil {
			t.Fatalf("Failed to read field name: %v", err)
		}

		if name != "a" {
			t.Errorf("Expected field name %q, got %q", "a", name)
		}

		nullable, err := adapter.FieldNullable(fieldB)
		if err != nil {
			t.Fatalf("Failed to read nullability: %v", err)
		}

		if nullable {
			t.Error("Expected field b to be non-nullable")
		}
	})

	t.Run("CreateStructFieldInvalidDescriptor", func(t *testing.T) {
		_, err := adapter.CreateStructField("bad", "map<integer,double>", true)
		if err == nil {
			t.Fatal("Expected validation error for non-string map key")
		}

		if !errors.IsType(err, errors.ErrTypeValidation) {
			t.Errorf("Expected validation error, got: %v", err)
		}
	})

	t.Run("CreateStructType", func(t *testing.T) {
		var err error

		typeH, err = adapter.CreateStructType([]schema.Handle{fieldA, fieldB})
		if err != nil {
			t.Fatalf("Failed to create struct type: %v", err)
		}

		fields, err := adapter.TypeFields(typeH)
		if err != nil {
			t.Fatalf("Failed to read type fields: %v", err)
		}

		if len(fields) != 2 || fields[0] != fieldA || fields[1] != fieldB {
			t.Errorf("Unexpected field handles: %v", fields)
		}
	})

	t.Run("CreateStructTypeEmpty", func(t *testing.T) {
		_, err := adapter.CreateStructType(nil)
		if err == nil {
			t.Fatal("Expected argument error for empty field list")
		}

		if !errors.IsType(err, errors.ErrTypeArgument) {
			t.Errorf("Expected argument error, got: %v", err)
		}
	})

	t.Run("CreateStructTypeRejectsTypeHandle", func(t *testing.T) {
		_, err := adapter.CreateStructType([]schema.Handle{typeH})
		if err == nil {
			t.Fatal("Expected argument error for a type handle in the field list")
		}

		if !errors.IsType(err, errors.ErrTypeArgument) {
			t.Errorf("Expected argument error, got: %v", err)
		}
	})

	t.Run("TypeString", func(t *testing.T) {
		display, err := adapter.TypeString(typeH)
		if err != nil {
			t.Fatalf("Failed to read type display: %v", err)
		}

		expected := "struct<a:integer,b:map<string,double>>"
		if display != expected {
			t.Errorf("Expected display %q, got %q", expected, display)
		}
	})

	t.Run("TypeSimpleString", func(t *testing.T) {
		simple, err := adapter.TypeSimpleString(typeH)
		if err != nil {
			t.Fatalf("Failed to read simple display: %v", err)
		}

		if simple != "struct" {
			t.Errorf("Expected simple display %q, got %q", "struct", simple)
		}
	})

	t.Run("StaleHandle", func(t *testing.T) {
		_, err := adapter.FieldName("not-a-handle")
		if err == nil {
			t.Fatal("Expected backend error for unknown handle")
		}

		if !errors.IsType(err, errors.ErrTypeBackend) {
			t.Errorf("Expected backend error, got: %v", err)
		}
	})

	t.Run("CreateAndDescribeTable", func(t *testing.T) {
		if err := adapter.CreateTable(ctx, "events", typeH); err != nil {
			t.Fatalf("Failed to create table: %v", err)
		}

		described, err := adapter.DescribeTable(ctx, "events")
		if err != nil {
			t.Fatalf("Failed to describe table: %v", err)
		}

		st := schema.TypeFromHandle(adapter, described)

		out, err := schema.PrintStructType(st)
		if err != nil {
			t.Fatalf("Failed to print hydrated schema: %v", err)
		}

		expected := "StructType\n" +
			`|- name = "a", type = "integer", nullable = true` + "\n" +
			`|- name = "b", type = "map<string,double>", nullable = false`
		if out != expected {
			t.Errorf("Unexpected printed schema:\n%s", out)
		}
	})

	t.Run("DescribeMissingTable", func(t *testing.T) {
		_, err := adapter.DescribeTable(ctx, "no_such_table")
		if err == nil {
			t.Fatal("Expected backend error for missing table")
		}

		if !errors.IsType(err, errors.ErrTypeBackend) {
			t.Errorf("Expected backend error, got: %v", err)
		}
	})
}

func TestDuckDBAdapterHydratedField(t *testing.T) {
	adapter := newTestAdapter(t)

	handle, err := adapter.CreateStructField("ts", "timestamp", true)
	if err != nil {
		t.Fatalf("Failed to create field: %v", err)
	}

	field := schema.FieldFromHandle(adapter, handle)

	out, err := schema.PrintStructField(field)
	if err != nil {
		t.Fatalf("Failed to print field: %v", err)
	}

	expected := `StructField(name = "ts", type = "timestamp", nullable = true)`
	if out != expected {
		t.Errorf("Expected %q, got %q", expected, out)
	}
}

func TestDuckDBAdapterAliasCanonicalization(t *testing.T) {
	adapter := newTestAdapter(t)

	// The engine does not distinguish alias pairs; the display coming
	// back from the engine uses the canonical spelling.
	handle, err := adapter.CreateStructField("note", "character", true)
	if err != nil {
		t.Fatalf("Failed to create field: %v", err)
	}

	typeHandle, err := adapter.FieldType(handle)
	if err != nil {
		t.Fatalf("Failed to read field type: %v", err)
	}

	display, err := adapter.TypeString(typeHandle)
	if err != nil {
		t.Fatalf("Failed to read type display: %v", err)
	}

	if display != "string" {
		t.Errorf("Expected canonical display %q, got %q", "string", display)
	}
}
