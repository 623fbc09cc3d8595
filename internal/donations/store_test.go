package donations_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/donations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	centerID = "22222222-2222-2222-2222-222222222222"
	rowID    = "33333333-3333-3333-3333-333333333333"
)

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	d, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return d, mock
}

func expectCenterPreload(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT \* FROM "donations"."centers" WHERE ("donations"\.)?"centers"\."id" = \$1`).
		WithArgs(centerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}).AddRow(centerID, "Downtown", true))
}

func TestDonationStoreListsNewestFirst(t *testing.T) {
	d, mock := mockDB(t)
	store := donations.NewDonationStore(d)

	mock.ExpectQuery(`SELECT \* FROM "donations"."donations" WHERE user_id = \$1 ORDER BY scheduled_date DESC`).
		WithArgs("acct-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "donation_center_id", "scheduled_date", "status"}).
			AddRow(rowID, "acct-1", centerID, time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC), "scheduled"))
	expectCenterPreload(mock)

	rows, err := store.List(context.Background(), "acct-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Downtown", rows[0].DonationCenter.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentStoreListsSoonestFirst(t *testing.T) {
	d, mock := mockDB(t)
	store := donations.NewAppointmentStore(d)

	mock.ExpectQuery(`SELECT \* FROM "donations"."appointments" WHERE user_id = \$1 ORDER BY appointment_date ASC`).
		WithArgs("acct-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "donation_center_id", "appointment_date", "status"}).
			AddRow(rowID, "acct-1", centerID, time.Date(2026, 11, 2, 10, 0, 0, 0, time.UTC), "scheduled"))
	expectCenterPreload(mock)

	rows, err := store.List(context.Background(), "acct-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, centerID, rows[0].DonationCenter.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCenterStoreListsActiveByName(t *testing.T) {
	d, mock := mockDB(t)
	store := donations.NewGormCenterStore(d)

	mock.ExpectQuery(`SELECT \* FROM "donations"."centers" WHERE is_active = \$1 ORDER BY name ASC`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}).AddRow(centerID, "Downtown", true))

	centers, err := store.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, centers, 1)
	assert.True(t, centers[0].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}
