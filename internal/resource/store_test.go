package resource_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/apperr"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type item struct {
	ID     string
	UserID string
	Name   string
}

func (item) TableName() string       { return "medical.items" }
func (i *item) GetID() string        { return i.ID }
func (i *item) GetOwnerID() string   { return i.UserID }
func (i *item) SetOwnerID(id string) { i.UserID = id }

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	d, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return d, mock
}

func TestGormStoreListScopesByOwner(t *testing.T) {
	d, mock := mockDB(t)
	store := resource.NewGormStore[item](d, "name ASC")

	mock.ExpectQuery(`SELECT \* FROM "medical"."items" WHERE user_id = \$1 ORDER BY name ASC`).
		WithArgs("acct-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}).
			AddRow("11111111-1111-1111-1111-111111111111", "acct-1", "penicillin"))

	rows, err := store.List(context.Background(), "acct-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "penicillin", rows[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreGetMissingIsNotFound(t *testing.T) {
	d, mock := mockDB(t)
	store := resource.NewGormStore[item](d, "")

	id := "11111111-1111-1111-1111-111111111111"
	mock.ExpectQuery(`SELECT \* FROM "medical"."items" WHERE id = \$1 AND user_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}))

	_, err := store.Get(context.Background(), "acct-2", id)
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "%v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreRejectsMalformedID(t *testing.T) {
	d, mock := mockDB(t)
	store := resource.NewGormStore[item](d, "")

	_, err := store.Get(context.Background(), "acct-1", "not-a-uuid")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.True(t, apperr.Is(store.Delete(context.Background(), "acct-1", "42"), apperr.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreDeleteScopesByOwner(t *testing.T) {
	d, mock := mockDB(t)
	store := resource.NewGormStore[item](d, "")

	id := "11111111-1111-1111-1111-111111111111"
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "medical"."items" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(id, "acct-2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := store.Delete(context.Background(), "acct-2", id)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
