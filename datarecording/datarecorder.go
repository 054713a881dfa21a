// Package datarecording stores simulation results in a SQLite database.
package datarecording

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// DataRecorder writes rows of flat structs into tables.
type DataRecorder interface {
	// CreateTable creates a new table whose columns are the fields of the
	// sample entry.
	CreateTable(tableName string, sampleEntry any)

	// InsertData writes an entry into a table that already exists. Entries
	// are buffered until Flush.
	InsertData(tableName string, entry any)

	// ListTables returns the names of the tables created so far.
	ListTables() []string

	// Flush writes the buffered entries in one transaction.
	Flush()

	// Close flushes the buffered entries and closes the database.
	Close() error
}

const defaultBatchSize = 100000

// columnTypes maps the field kinds that can be recorded to SQLite column
// types.
var columnTypes = map[reflect.Kind]string{
	reflect.Bool:    "BOOLEAN",
	reflect.Int:     "INTEGER",
	reflect.Int8:    "INTEGER",
	reflect.Int16:   "INTEGER",
	reflect.Int32:   "INTEGER",
	reflect.Int64:   "INTEGER",
	reflect.Uint:    "INTEGER",
	reflect.Uint8:   "INTEGER",
	reflect.Uint16:  "INTEGER",
	reflect.Uint32:  "INTEGER",
	reflect.Uint64:  "INTEGER",
	reflect.Float32: "REAL",
	reflect.Float64: "REAL",
	reflect.String:  "TEXT",
}

// New creates a DataRecorder that writes into path + ".sqlite3". An empty
// path gets a unique name. New panics if the file already exists. Buffered
// entries are flushed when the program exits through atexit.
func New(path string) DataRecorder {
	if path == "" {
		path = "tlbsim_" + xid.New().String()
	}

	filename := path + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "Database created for recording: %s\n", filename)

	return NewWithDB(db)
}

// NewWithDB creates a DataRecorder on an opened database.
func NewWithDB(db *sql.DB) DataRecorder {
	w := &sqliteWriter{
		DB:        db,
		batchSize: defaultBatchSize,
		tables:    make(map[string]*table),
	}

	atexit.Register(func() { w.Flush() })

	return w
}

type table struct {
	structType reflect.Type
	insertSQL  string
	entries    []any
}

type sqliteWriter struct {
	*sql.DB

	tables     map[string]*table
	tableNames []string
	batchSize  int
	entryCount int
	closed     bool
}

// columnsOf lists the column definitions of a table created from entry.
func columnsOf(entry any) ([]string, error) {
	t := reflect.TypeOf(entry)
	if t == nil || t.Kind() != reflect.Struct {
		return nil, errors.New("entry must be a struct")
	}

	columns := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		columnType, ok := columnTypes[field.Type.Kind()]
		if !ok {
			return nil, fmt.Errorf("field %s of type %s cannot be recorded",
				field.Name, field.Type)
		}

		columns = append(columns, field.Name+" "+columnType)
	}

	return columns, nil
}

func (t *sqliteWriter) CreateTable(tableName string, sampleEntry any) {
	columns, err := columnsOf(sampleEntry)
	if err != nil {
		panic(fmt.Errorf("creating table %s: %w", tableName, err))
	}

	t.mustExecute("CREATE TABLE IF NOT EXISTS " + tableName +
		" (\n\t" + strings.Join(columns, ",\n\t") + "\n);")

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	if _, exists := t.tables[tableName]; !exists {
		t.tableNames = append(t.tableNames, tableName)
	}

	t.tables[tableName] = &table{
		structType: reflect.TypeOf(sampleEntry),
		insertSQL: "INSERT INTO " + tableName + " (" +
			strings.Join(structs.Names(sampleEntry), ", ") + ") VALUES (" +
			strings.Join(placeholders, ", ") + ")",
	}
}

func (t *sqliteWriter) InsertData(tableName string, entry any) {
	table, exists := t.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != table.structType {
		panic(fmt.Sprintf("entry of type %T does not fit table %s",
			entry, tableName))
	}

	table.entries = append(table.entries, entry)

	t.entryCount++
	if t.entryCount >= t.batchSize {
		t.Flush()
	}
}

func (t *sqliteWriter) ListTables() []string {
	tables := make([]string, len(t.tableNames))
	copy(tables, t.tableNames)

	return tables
}

func (t *sqliteWriter) Flush() {
	if t.entryCount == 0 || t.closed {
		return
	}

	tx, err := t.Begin()
	if err != nil {
		panic(err)
	}

	for _, tableName := range t.tableNames {
		table := t.tables[tableName]
		if len(table.entries) == 0 {
			continue
		}

		err := writeEntries(tx, table)
		if err != nil {
			_ = tx.Rollback()
			t.dropBuffered()
			panic(fmt.Errorf("writing table %s: %w", tableName, err))
		}

		table.entries = nil
	}

	err = tx.Commit()
	if err != nil {
		panic(err)
	}

	t.entryCount = 0
}

// dropBuffered discards the entries of a failed flush so that later flushes
// do not fail on them again.
func (t *sqliteWriter) dropBuffered() {
	for _, table := range t.tables {
		table.entries = nil
	}

	t.entryCount = 0
}

func writeEntries(tx *sql.Tx, table *table) error {
	stmt, err := tx.Prepare(table.insertSQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, entry := range table.entries {
		_, err := stmt.Exec(columnValues(entry)...)
		if err != nil {
			return err
		}
	}

	return nil
}

// columnValues returns the field values of entry as they are stored. SQLite
// integers are signed, so unsigned values keep their bits in an int64 and
// the reader turns them back.
func columnValues(entry any) []any {
	values := structs.Values(entry)

	for i, v := range values {
		switch u := v.(type) {
		case uint:
			values[i] = int64(u)
		case uint64:
			values[i] = int64(u)
		}
	}

	return values
}

func (t *sqliteWriter) Close() error {
	if t.closed {
		return nil
	}

	t.Flush()
	t.closed = true

	return t.DB.Close()
}

func (t *sqliteWriter) mustExecute(query string) sql.Result {
	res, err := t.Exec(query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}
