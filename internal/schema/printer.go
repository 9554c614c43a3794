package schema

import (
	"fmt"
	"strings"
)

// PrintStructField renders a single field as one line:
//
//	StructField(name = "a", type = "integer", nullable = true)
func PrintStructField(f *StructField) (string, error) {
	name, dataType, nullable, err := fieldParts(f)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("StructField(name = %q, type = %q, nullable = %t)", name, dataType, nullable), nil
}

// PrintStructType renders a schema as a header line followed by one
// line per field, in schema order:
//
//	StructType
//	|- name = "a", type = "integer", nullable = true
//	|- name = "b", type = "string", nullable = false
func PrintStructType(st *StructType) (string, error) {
	fields, err := st.Fields()
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(fields)+1)
	lines = append(lines, "StructType")

	for _, f := range fields {
		name, dataType, nullable, err := fieldParts(f)
		if err != nil {
			return "", err
		}

		lines = append(lines, fmt.Sprintf("|- name = %q, type = %q, nullable = %t", name, dataType, nullable))
	}

	return strings.Join(lines, "\n"), nil
}

func fieldParts(f *StructField) (string, string, bool, error) {
	name, err := f.Name()
	if err != nil {
		return "", "", false, err
	}

	dataType, err := f.DataType()
	if err != nil {
		return "", "", false, err
	}

	nullable, err := f.Nullable()
	if err != nil {
		return "", "", false, err
	}

	return name, dataType.String(), nullable, nil
}
