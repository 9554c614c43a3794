package backend

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb" // DuckDB driver

	"github.com/schemakit/schemakit/internal/errors"
	"github.com/schemakit/schemakit/internal/schema"
)

// DuckDBAdapter implements the Adapter interface against a DuckDB
// database. Registered schema objects live in an in-process registry
// keyed by handle; every composite type is verified against the live
// engine before a handle is issued.
type DuckDBAdapter struct {
	db   *sql.DB
	path string

	mu     sync.RWMutex
	fields map[schema.Handle]fieldRecord
	types  map[schema.Handle]typeRecord
}

var (
	_ Adapter       = (*DuckDBAdapter)(nil)
	_ schema.Source = (*DuckDBAdapter)(nil)
)

type fieldRecord struct {
	name       string
	typeHandle schema.Handle
	nullable   bool
}

type typeRecord struct {
	display string // canonical descriptor text
	sqlType string // engine type expression
	fields  []schema.Handle // populated for assembled struct types only
}

// NewDuckDBAdapter opens (or creates) a DuckDB database with connection
// pooling and verifies the connection.
func NewDuckDBAdapter(dbPath string) (*DuckDBAdapter, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DuckDBAdapter{
		db:     db,
		path:   dbPath,
		fields: make(map[schema.Handle]fieldRecord),
		types:  make(map[schema.Handle]typeRecord),
	}, nil
}

// Close releases the database connection pool.
func (a *DuckDBAdapter) Close() error {
	return a.db.Close()
}

// CreateStructField validates the descriptor, verifies the canonical
// engine type against the live engine, and registers the field.
func (a *DuckDBAdapter) CreateStructField(name, descriptor string, nullable bool) (schema.Handle, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New(errors.ErrTypeArgument, "field name must be non-empty")
	}

	node, err := schema.Parse(descriptor)
	if err != nil {
		return "", err
	}

	sqlType, err := canonicalSQL(node)
	if err != nil {
		return "", err
	}

	if err := a.verifyEngineType(sqlType); err != nil {
		return "", err
	}

	typeHandle := a.registerType(node.String(), sqlType, nil)

	fieldHandle := newHandle()

	a.mu.Lock()
	a.fields[fieldHandle] = fieldRecord{name: name, typeHandle: typeHandle, nullable: nullable}
	a.mu.Unlock()

	return fieldHandle, nil
}

// CreateStructType assembles registered fields, in order, into an
// engine-side struct type handle.
func (a *DuckDBAdapter) CreateStructType(fields []schema.Handle) (schema.Handle, error) {
	if len(fields) == 0 {
		return "", errors.New(errors.ErrTypeArgument, "at least one field is required")
	}

	displayParts := make([]string, len(fields))
	sqlParts := make([]string, len(fields))

	a.mu.RLock()

	for i, h := range fields {
		rec, ok := a.fields[h]
		if !ok {
			a.mu.RUnlock()

			if _, isType := a.lookupType(h); isType {
				return "", errors.New(errors.ErrTypeArgument, "all arguments must be schema fields")
			}

			return "", staleHandle(h)
		}

		typeRec := a.types[rec.typeHandle]
		displayParts[i] = rec.name + ":" + typeRec.display
		sqlParts[i] = quoteIdent(rec.name) + " " + typeRec.sqlType
	}

	a.mu.RUnlock()

	display := "struct<" + strings.Join(displayParts, ",") + ">"
	sqlType := "STRUCT(" + strings.Join(sqlParts, ", ") + ")"

	if err := a.verifyEngineType(sqlType); err != nil {
		return "", err
	}

	ordered := make([]schema.Handle, len(fields))
	copy(ordered, fields)

	return a.registerType(display, sqlType, ordered), nil
}

// FieldName returns the registered field's name.
func (a *DuckDBAdapter) FieldName(h schema.Handle) (string, error) {
	rec, err := a.lookupField(h)
	if err != nil {
		return "", err
	}

	return rec.name, nil
}

// FieldType returns the handle of the registered field's type.
func (a *DuckDBAdapter) FieldType(h schema.Handle) (schema.Handle, error) {
	rec, err := a.lookupField(h)
	if err != nil {
		return "", err
	}

	return rec.typeHandle, nil
}

// FieldNullable reports whether the registered field admits NULLs.
func (a *DuckDBAdapter) FieldNullable(h schema.Handle) (bool, error) {
	rec, err := a.lookupField(h)
	if err != nil {
		return false, err
	}

	return rec.nullable, nil
}

// TypeFields returns the ordered field handles of an assembled struct
// type.
func (a *DuckDBAdapter) TypeFields(h schema.Handle) ([]schema.Handle, error) {
	rec, ok := a.lookupType(h)
	if !ok {
		return nil, staleHandle(h)
	}

	if rec.fields == nil {
		return nil, errors.Newf(errors.ErrTypeBackend, "type handle %s is not a struct type", h)
	}

	out := make([]schema.Handle, len(rec.fields))
	copy(out, rec.fields)

	return out, nil
}

// TypeString returns the full type display. The answer comes from the
// engine: the registered type expression is cast against NULL and the
// reported type mapped back to descriptor text, so the spelling is
// always the engine's.
func (a *DuckDBAdapter) TypeString(h schema.Handle) (string, error) {
	rec, ok := a.lookupType(h)
	if !ok {
		return "", staleHandle(h)
	}

	var engineType string

	query := fmt.Sprintf("SELECT typeof(CAST(NULL AS %s))", rec.sqlType)
	if err := a.db.QueryRowContext(context.Background(), query).Scan(&engineType); err != nil {
		return "", errors.Wrapf(err, errors.ErrTypeBackend, "engine rejected type %s", rec.sqlType)
	}

	return engineTypeToDescriptor(engineType)
}

// TypeSimpleString returns an abbreviated display: the alias for
// primitives, the kind keyword for composites.
func (a *DuckDBAdapter) TypeSimpleString(h schema.Handle) (string, error) {
	rec, ok := a.lookupType(h)
	if !ok {
		return "", staleHandle(h)
	}

	display := rec.display
	if i := strings.IndexByte(display, '<'); i > 0 {
		return display[:i], nil
	}

	return display, nil
}

// CreateTable materializes an assembled struct type as an engine table.
func (a *DuckDBAdapter) CreateTable(ctx context.Context, table string, h schema.Handle) error {
	rec, ok := a.lookupType(h)
	if !ok {
		return staleHandle(h)
	}

	if rec.fields == nil {
		return errors.Newf(errors.ErrTypeBackend, "type handle %s is not a struct type", h)
	}

	columns := make([]string, len(rec.fields))

	a.mu.RLock()

	for i, fh := range rec.fields {
		fieldRec, ok := a.fields[fh]
		if !ok {
			a.mu.RUnlock()
			return staleHandle(fh)
		}

		column := quoteIdent(fieldRec.name) + " " + a.types[fieldRec.typeHandle].sqlType
		if !fieldRec.nullable {
			column += " NOT NULL"
		}

		columns[i] = column
	}

	a.mu.RUnlock()

	createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(columns, ", "))
	if _, err := a.db.ExecContext(ctx, createSQL); err != nil {
		return errors.Wrapf(err, errors.ErrTypeBackend, "failed to create table %q", table)
	}

	return nil
}

// DescribeTable reads a table's schema from the engine catalog and
// registers field and type handles for it, so callers can hydrate
// entities for display.
func (a *DuckDBAdapter) DescribeTable(ctx context.Context, table string) (schema.Handle, error) {
	rows, err := a.db.QueryContext(ctx, fmt.Sprintf("DESCRIBE %s", quoteIdent(table)))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTypeBackend, "failed to describe table %q", table)
	}
	defer rows.Close()

	var fieldHandles []schema.Handle

	for rows.Next() {
		var (
			columnName string
			columnType string
			null       sql.NullString
			key        sql.NullString
			dflt       sql.NullString
			extra      sql.NullString
		)

		if err := rows.Scan(&columnName, &columnType, &null, &key, &dflt, &extra); err != nil {
			return "", errors.Wrapf(err, errors.ErrTypeBackend, "failed to read catalog row for %q", table)
		}

		descriptor, err := engineTypeToDescriptor(columnType)
		if err != nil {
			return "", err
		}

		nullable := !null.Valid || null.String != "NO"

		fieldHandle, err := a.CreateStructField(columnName, descriptor, nullable)
		if err != nil {
			return "", err
		}

		fieldHandles = append(fieldHandles, fieldHandle)
	}

	if err := rows.Err(); err != nil {
		return "", errors.Wrapf(err, errors.ErrTypeBackend, "failed to describe table %q", table)
	}

	if len(fieldHandles) == 0 {
		return "", errors.Newf(errors.ErrTypeBackend, "table %q has no columns", table)
	}

	return a.CreateStructType(fieldHandles)
}

// verifyEngineType asks the engine to cast NULL to the type, which
// fails for any expression the engine does not accept.
func (a *DuckDBAdapter) verifyEngineType(sqlType string) error {
	query := fmt.Sprintf("SELECT typeof(CAST(NULL AS %s))", sqlType)

	var engineType string
	if err := a.db.QueryRowContext(context.Background(), query).Scan(&engineType); err != nil {
		return errors.Wrapf(err, errors.ErrTypeBackend, "engine rejected type %s", sqlType)
	}

	return nil
}

func (a *DuckDBAdapter) registerType(display, sqlType string, fields []schema.Handle) schema.Handle {
	h := newHandle()

	a.mu.Lock()
	a.types[h] = typeRecord{display: display, sqlType: sqlType, fields: fields}
	a.mu.Unlock()

	return h
}

func (a *DuckDBAdapter) lookupField(h schema.Handle) (fieldRecord, error) {
	a.mu.RLock()
	rec, ok := a.fields[h]
	a.mu.RUnlock()

	if !ok {
		return fieldRecord{}, staleHandle(h)
	}

	return rec, nil
}

func (a *DuckDBAdapter) lookupType(h schema.Handle) (typeRecord, bool) {
	a.mu.RLock()
	rec, ok := a.types[h]
	a.mu.RUnlock()

	return rec, ok
}

func newHandle() schema.Handle {
	return schema.Handle(uuid.New().String())
}

func staleHandle(h schema.Handle) *errors.Error {
	return errors.Newf(errors.ErrTypeBackend, "unknown or stale handle: %s", h)
}
