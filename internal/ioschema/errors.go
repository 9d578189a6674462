package ioschema

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/taxdb/pkg/errcode"
)

// GORMConnectionError is returned when GORM cannot attach to the
// existing connection pool.
func GORMConnectionError(err error) error {
	msg := "Cannot initialize GORM over the database connection"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: gorm connection failed: %w", fn, err),
	}
}

// CreateSchemaError is returned when schema creation fails.
func CreateSchemaError(err error) error {
	msg := "Cannot create database schema"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: schema creation failed: %w", fn, err),
	}
}
