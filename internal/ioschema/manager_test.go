package ioschema_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gnames/taxdb/internal/iodb"
	"github.com/gnames/taxdb/internal/ioschema"
	"github.com/gnames/taxdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := &config.DatabaseConfig{
		Dialect: "sqlite",
		File:    filepath.Join(t.TempDir(), "schema-test.sqlite"),
	}

	op := iodb.NewOperator(cfg)
	require.NoError(t, op.Connect(ctx, cfg))
	defer op.Close()

	mgr := ioschema.NewManager(op)
	require.NoError(t, mgr.Create(ctx))

	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	// Idempotent: a second run succeeds.
	require.NoError(t, mgr.Create(ctx))
}
