package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestSeed_FreshDatabase(t *testing.T) {
	gormDB, mock := setupTestDB(t)

	mock.ExpectBegin()
	for i, name := range GlobalTypeNames {
		mock.ExpectQuery(`SELECT \* FROM "media_types"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name"}))
		mock.ExpectQuery(`INSERT INTO "media_types"`).
			WithArgs(int64(0), name, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(i + 1))
	}
	mock.ExpectQuery(`SELECT \* FROM "media"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "title"}))
	mock.ExpectQuery(`INSERT INTO "media"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := Seed(context.Background(), gormDB, zap.NewNop())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeed_AlreadySeeded(t *testing.T) {
	gormDB, mock := setupTestDB(t)

	mock.ExpectBegin()
	for i, name := range GlobalTypeNames {
		mock.ExpectQuery(`SELECT \* FROM "media_types"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name"}).AddRow(i+1, 0, name))
	}
	mock.ExpectQuery(`SELECT \* FROM "media"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "title"}).AddRow(1, 0, "Default Media"))
	mock.ExpectCommit()

	err := Seed(context.Background(), gormDB, zap.NewNop())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
