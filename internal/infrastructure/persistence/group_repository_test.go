package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sellersync/backend/internal/domain/shared"
)

func newMockGroupRepository(t *testing.T) (*GormGroupRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormGroupRepository(db), mock, mockDB
}

func TestGroupFindByID(t *testing.T) {
	repo, mock, mockDB := newMockGroupRepository(t)
	defer mockDB.Close()

	groupID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "callback_url", "secret", "created_at", "updated_at"}).
		AddRow(groupID, "Acme Sellers", "https://callback.example.com/orders", "topsecret", now, now)

	mock.ExpectQuery(`SELECT \* FROM "groups" WHERE id = \$1 ORDER BY .* LIMIT .*`).
		WithArgs(groupID, 1).
		WillReturnRows(rows)

	found, err := repo.FindByID(context.Background(), groupID)
	require.NoError(t, err)
	assert.Equal(t, groupID, found.ID)
	assert.Equal(t, "Acme Sellers", found.Name)
	assert.Equal(t, "topsecret", found.Secret)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupFindByID_NotFound(t *testing.T) {
	repo, mock, mockDB := newMockGroupRepository(t)
	defer mockDB.Close()

	groupID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "groups" WHERE id = \$1 ORDER BY .* LIMIT .*`).
		WithArgs(groupID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	found, err := repo.FindByID(context.Background(), groupID)
	assert.Nil(t, found)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
