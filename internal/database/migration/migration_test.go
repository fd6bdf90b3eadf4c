package migration

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sentinelQuery = `SELECT to_regclass\('public.shop_tokens'\) IS NOT NULL`

func TestEnsureMigrated(t *testing.T) {
	ctx := context.Background()

	t.Run("runs every step when table is missing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		var buf bytes.Buffer
		mock.ExpectQuery(sentinelQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS shop_tokens").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_shop_tokens_updated_at").WillReturnResult(sqlmock.NewResult(0, 0))

		err = EnsureMigrated(ctx, db, zerolog.New(&buf), "db.local")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.Contains(t, buf.String(), `"event":"db_migration_success"`)
		assert.Contains(t, buf.String(), `"db_host":"db.local"`)
	})

	t.Run("skips when table exists", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		var buf bytes.Buffer
		mock.ExpectQuery(sentinelQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err = EnsureMigrated(ctx, db, zerolog.New(&buf), "db.local")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.Contains(t, buf.String(), `"event":"db_migration_skip"`)
	})

	t.Run("sentinel check fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(sentinelQuery).WillReturnError(errors.New("permission denied"))

		err = EnsureMigrated(ctx, db, zerolog.Nop(), "db.local")

		assert.ErrorContains(t, err, "failed to check sentinel table: permission denied")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("step fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		var buf bytes.Buffer
		mock.ExpectQuery(sentinelQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS shop_tokens").WillReturnError(errors.New("syntax error"))

		err = EnsureMigrated(ctx, db, zerolog.New(&buf), "db.local")

		assert.ErrorContains(t, err, "migration step create_table_shop_tokens failed")
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.Contains(t, buf.String(), `"migration_step":"create_table_shop_tokens"`)
	})
}
