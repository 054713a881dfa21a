package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"
)

// QueryParams narrows down the rows returned by DataReader.Query.
type QueryParams struct {
	// Where is a condition without the WHERE keyword, for example
	// "RunID = ?".
	Where string

	// Args fill the placeholders in Where.
	Args []any

	// OrderBy lists the sort columns without the ORDER BY keywords.
	OrderBy string

	// Limit caps the number of rows. Zero means no limit.
	Limit int

	// Offset skips rows. It only applies together with Limit.
	Offset int
}

// DataReader reads back the tables written by a DataRecorder.
type DataReader interface {
	// MapTable tells the reader which struct a table was created from. A
	// table must be mapped before it can be queried.
	MapTable(tableName string, sampleEntry any)

	// ListTables returns the names of the mapped tables.
	ListTables() []string

	// Query returns the matching rows as pointers to the mapped struct,
	// together with the number of rows that match without Limit and Offset.
	Query(ctx context.Context, tableName string, params QueryParams) (
		results []any,
		totalCount int,
		err error,
	)

	// Close closes the database.
	Close() error
}

type sqliteReader struct {
	*sql.DB

	types map[string]reflect.Type
}

// NewReader opens the SQLite database file at dbFilename for reading.
func NewReader(dbFilename string) DataReader {
	db, err := sql.Open("sqlite3", dbFilename)
	if err != nil {
		panic(err)
	}

	return NewReaderWithDB(db)
}

// NewReaderWithDB creates a DataReader on an opened database.
func NewReaderWithDB(db *sql.DB) DataReader {
	return &sqliteReader{
		DB:    db,
		types: make(map[string]reflect.Type),
	}
}

func (r *sqliteReader) MapTable(tableName string, sampleEntry any) {
	r.types[tableName] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) ListTables() []string {
	tables := make([]string, 0, len(r.types))
	for table := range r.types {
		tables = append(tables, table)
	}

	return tables
}

func (r *sqliteReader) Query(
	ctx context.Context,
	tableName string,
	params QueryParams,
) ([]any, int, error) {
	structType, ok := r.types[tableName]
	if !ok {
		return nil, 0, fmt.Errorf("table %s is not mapped", tableName)
	}

	var totalCount int

	err := r.QueryRowContext(ctx,
		buildQuery("COUNT(*)", tableName, QueryParams{Where: params.Where}),
		params.Args...,
	).Scan(&totalCount)
	if err != nil {
		return nil, 0, fmt.Errorf("counting rows of %s: %w", tableName, err)
	}

	rows, err := r.QueryContext(ctx,
		buildQuery("*", tableName, params), params.Args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying %s: %w", tableName, err)
	}
	defer rows.Close()

	results, err := scanRows(rows, structType)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", tableName, err)
	}

	return results, totalCount, nil
}

func buildQuery(columns, tableName string, params QueryParams) string {
	var b strings.Builder

	fmt.Fprintf(&b, "SELECT %s FROM %s", columns, tableName)

	if params.Where != "" {
		b.WriteString(" WHERE " + params.Where)
	}

	if params.OrderBy != "" {
		b.WriteString(" ORDER BY " + params.OrderBy)
	}

	if params.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", params.Limit)

		if params.Offset > 0 {
			fmt.Fprintf(&b, " OFFSET %d", params.Offset)
		}
	}

	return b.String()
}

// scanRows fills one new struct per row. Columns without a matching field
// are read and dropped.
func scanRows(rows *sql.Rows, structType reflect.Type) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []any

	for rows.Next() {
		entry := reflect.New(structType)
		targets := make([]any, len(columns))
		unsigned := make(map[int]*int64)

		for i, column := range columns {
			field := entry.Elem().FieldByName(column)

			switch {
			case !field.IsValid():
				var ignored any
				targets[i] = &ignored
			case isWideUnsigned(field.Kind()):
				bits := new(int64)
				unsigned[i] = bits
				targets[i] = bits
			default:
				targets[i] = field.Addr().Interface()
			}
		}

		err := rows.Scan(targets...)
		if err != nil {
			return nil, err
		}

		for i, bits := range unsigned {
			entry.Elem().FieldByName(columns[i]).SetUint(uint64(*bits))
		}

		results = append(results, entry.Interface())
	}

	return results, rows.Err()
}

// isWideUnsigned reports the kinds that the recorder stores as int64 bit
// patterns.
func isWideUnsigned(kind reflect.Kind) bool {
	return kind == reflect.Uint || kind == reflect.Uint64
}

func (r *sqliteReader) Close() error {
	return r.DB.Close()
}
