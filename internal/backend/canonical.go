package backend

import (
	"strings"

	"github.com/schemakit/schemakit/internal/errors"
	"github.com/schemakit/schemakit/internal/schema"
)

// aliasToSQL maps every descriptor alias to the DuckDB type it
// canonicalizes to. Alias pairs collapse to one engine type.
var aliasToSQL = map[string]string{
	"byte":      "TINYINT",
	"integer":   "INTEGER",
	"float":     "FLOAT",
	"double":    "DOUBLE",
	"numeric":   "DOUBLE",
	"character": "VARCHAR",
	"string":    "VARCHAR",
	"binary":    "BLOB",
	"raw":       "BLOB",
	"logical":   "BOOLEAN",
	"boolean":   "BOOLEAN",
	"timestamp": "TIMESTAMP",
	"date":      "DATE",
}

// sqlToAlias maps engine types back to a descriptor alias. The engine
// does not distinguish alias pairs, so the mapping picks one spelling.
var sqlToAlias = map[string]string{
	"TINYINT":   "byte",
	"INTEGER":   "integer",
	"FLOAT":     "float",
	"DOUBLE":    "double",
	"VARCHAR":   "string",
	"BLOB":      "binary",
	"BOOLEAN":   "boolean",
	"TIMESTAMP": "timestamp",
	"DATE":      "date",
}

// canonicalSQL renders a parsed type as the DuckDB type expression used
// in casts and column definitions.
func canonicalSQL(t *schema.TypeNode) (string, error) {
	switch t.Kind {
	case schema.KindPrimitive:
		sqlType, ok := aliasToSQL[t.Name]
		if !ok {
			return "", errors.Newf(errors.ErrTypeValidation, "unsupported type for schema: %s", t.Name)
		}

		return sqlType, nil
	case schema.KindArray:
		elem, err := canonicalSQL(t.Elem)
		if err != nil {
			return "", err
		}

		return elem + "[]", nil
	case schema.KindMap:
		value, err := canonicalSQL(t.Value)
		if err != nil {
			return "", err
		}

		return "MAP(VARCHAR, " + value + ")", nil
	case schema.KindStruct:
		parts := make([]string, len(t.Fields))

		for i, f := range t.Fields {
			fieldSQL, err := canonicalSQL(f.Type)
			if err != nil {
				return "", err
			}

			parts[i] = quoteIdent(f.Name) + " " + fieldSQL
		}

		return "STRUCT(" + strings.Join(parts, ", ") + ")", nil
	default:
		return "", errors.New(errors.ErrTypeInternal, "unknown type node kind")
	}
}

// engineTypeToDescriptor maps a DuckDB type string (as reported by
// DESCRIBE or typeof) back to descriptor text. Splitting nested STRUCT
// and MAP arguments tracks parenthesis depth the same way the grammar
// parser tracks angle brackets.
func engineTypeToDescriptor(engineType string) (string, error) {
	s := strings.TrimSpace(engineType)

	switch {
	case strings.HasSuffix(s, "[]"):
		elem, err := engineTypeToDescriptor(s[:len(s)-2])
		if err != nil {
			return "", err
		}

		return "array<" + elem + ">", nil
	case strings.HasPrefix(s, "MAP(") && strings.HasSuffix(s, ")"):
		args := splitEngineArgs(s[len("MAP(") : len(s)-1])
		if len(args) != 2 {
			return "", unsupportedEngineType(engineType)
		}

		key, err := engineTypeToDescriptor(args[0])
		if err != nil {
			return "", err
		}

		value, err := engineTypeToDescriptor(args[1])
		if err != nil {
			return "", err
		}

		return "map<" + key + "," + value + ">", nil
	case strings.HasPrefix(s, "STRUCT(") && strings.HasSuffix(s, ")"):
		args := splitEngineArgs(s[len("STRUCT(") : len(s)-1])
		if len(args) == 0 {
			return "", unsupportedEngineType(engineType)
		}

		parts := make([]string, len(args))

		for i, arg := range args {
			name, fieldType, err := splitStructEntry(arg)
			if err != nil {
				return "", unsupportedEngineType(engineType)
			}

			fieldDesc, err := engineTypeToDescriptor(fieldType)
			if err != nil {
				return "", err
			}

			parts[i] = name + ":" + fieldDesc
		}

		return "struct<" + strings.Join(parts, ",") + ">", nil
	default:
		if alias, ok := sqlToAlias[s]; ok {
			return alias, nil
		}

		return "", unsupportedEngineType(engineType)
	}
}

// splitEngineArgs splits a comma-separated engine type argument list at
// parenthesis depth zero, trimming surrounding spaces from each part.
func splitEngineArgs(s string) []string {
	var parts []string

	depth := 0
	start := 0
	inQuote := false

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case '(':
			if !inQuote {
				depth++
			}
		case ')':
			if !inQuote {
				depth--
			}
		case ',':
			if depth == 0 && !inQuote {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}

	last := strings.TrimSpace(s[start:])
	if last == "" && len(parts) == 0 {
		return nil
	}

	return append(parts, last)
}

// splitStructEntry splits one `name TYPE` entry of an engine STRUCT
// description. The name may be double-quoted.
func splitStructEntry(entry string) (string, string, error) {
	if strings.HasPrefix(entry, `"`) {
		end := strings.Index(entry[1:], `"`)
		if end < 0 {
			return "", "", unsupportedEngineType(entry)
		}

		name := entry[1 : end+1]
		rest := strings.TrimSpace(entry[end+2:])

		if name == "" || rest == "" {
			return "", "", unsupportedEngineType(entry)
		}

		return name, rest, nil
	}

	space := strings.IndexByte(entry, ' ')
	if space <= 0 || space == len(entry)-1 {
		return "", "", unsupportedEngineType(entry)
	}

	return entry[:space], strings.TrimSpace(entry[space+1:]), nil
}

// quoteIdent quotes an identifier for use in engine SQL.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func unsupportedEngineType(engineType string) *errors.Error {
	return errors.Newf(errors.ErrTypeBackend, "unsupported engine type: %s", engineType)
}
