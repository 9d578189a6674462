// Package ioschema implements the SchemaManager interface for
// database schema management. This is an impure I/O package: for
// PostgreSQL it wraps GORM AutoMigrate, for SQLite it applies the
// embedded DDL statements through the operator.
package ioschema

import (
	"context"

	"github.com/gnames/taxdb/pkg/db"
	"github.com/gnames/taxdb/pkg/schema"
	"github.com/gnames/taxdb/pkg/taxdb"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// manager implements the taxdb.SchemaManager interface.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) taxdb.SchemaManager {
	return &manager{operator: op}
}

// Create creates the taxdb schema. Safe to run multiple times: GORM
// AutoMigrate and the SQLite DDL are both idempotent.
func (m *manager) Create(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return m.createSQLite(ctx)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err := schema.Migrate(gormDB); err != nil {
		return CreateSchemaError(err)
	}
	return nil
}

// createSQLite applies the schema DDL statements one by one through
// the operator.
func (m *manager) createSQLite(ctx context.Context) error {
	for _, ddl := range schema.SQLiteDDL() {
		if err := m.operator.Exec(ctx, ddl); err != nil {
			return CreateSchemaError(err)
		}
	}
	return nil
}
