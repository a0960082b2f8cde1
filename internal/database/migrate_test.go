package database

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	sqlxDB := sqlx.NewDb(db, "mysql")

	files := fstest.MapFS{
		"migrations/0002_second.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE IF NOT EXISTS second (id INT);\n"),
		},
		"migrations/0001_first.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE IF NOT EXISTS first (id INT);\n\nCREATE TABLE IF NOT EXISTS also_first (id INT);\n"),
		},
		"migrations/README.txt": &fstest.MapFile{Data: []byte("not sql")},
	}

	// File-name order, one exec per statement, non-sql files skipped.
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS first").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS also_first").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS second").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), sqlxDB, files, "migrations"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateStatementError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	sqlxDB := sqlx.NewDb(db, "mysql")

	files := fstest.MapFS{
		"migrations/0001_first.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE broken (id INT);\n"),
		},
	}

	mock.ExpectExec("CREATE TABLE broken").WillReturnError(assert.AnError)

	err = Migrate(context.Background(), sqlxDB, files, "migrations")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0001_first.sql")
}

func TestSplitStatements(t *testing.T) {
	statements := splitStatements("CREATE TABLE a (id INT);\n\nCREATE TABLE b (id INT);\n")
	require.Len(t, statements, 2)
	assert.Equal(t, "CREATE TABLE a (id INT)", statements[0])
	assert.Equal(t, "CREATE TABLE b (id INT)", statements[1])
}
