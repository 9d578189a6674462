package iodb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/taxdb/pkg/errcode"
)

// ConnectionError is returned when the PostgreSQL connection fails.
func ConnectionError(
	host string, port int, database, user string, err error,
) error {
	msg := `Could not connect to PostgreSQL database

<em>Host:</em> %s
<em>Port:</em> %d
<em>Database:</em> %s
<em>User:</em> %s

<em>How to fix:</em>
  1. Check if PostgreSQL is running: <em>pg_isready -h %s -p %d</em>
  2. Verify the database exists: <em>psql -h %s -U %s -l</em>
  3. Review ~/.config/taxdb/config.yaml`
	vars := []any{host, port, database, user, host, port, host, user}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot connect to %s:%d/%s: %w",
			fn, host, port, database, err),
	}
}

// SQLiteConnectionError is returned when the SQLite file cannot be
// opened.
func SQLiteConnectionError(file string, err error) error {
	msg := "Could not open SQLite database <em>%s</em>"
	vars := []any{file}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn, file, err),
	}
}

// NotConnectedError is returned when an operation is attempted
// without a database connection.
func NotConnectedError() error {
	msg := "Operation attempted without database connection"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: not connected to database", fn),
	}
}

// ExecError is returned when a SQL statement fails.
func ExecError(query string, err error) error {
	msg := "Database statement failed"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBExecError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: exec failed (%.60s...): %w",
			fn, query, err),
	}
}

// QueryError is returned when a query against a table fails.
func QueryError(table string, err error) error {
	msg := "Query against <em>%s</em> failed"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: query of %s failed: %w", fn, table, err),
	}
}

// InsertError is returned when a bulk insert fails.
func InsertError(table string, err error) error {
	msg := "Insert into <em>%s</em> failed"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBInsertError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: insert into %s failed: %w",
			fn, table, err),
	}
}

// TableCheckError is returned when checking for tables fails.
func TableCheckError(err error) error {
	msg := "Cannot check for existing tables"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: table check failed: %w", fn, err),
	}
}

// DropTableError is returned when dropping a table fails.
func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot drop %s: %w", fn, table, err),
	}
}
