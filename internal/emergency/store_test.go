package emergency_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/access"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/emergency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
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

func TestListVisibleAttachesCounts(t *testing.T) {
	d, mock := mockDB(t)
	store := emergency.NewGormRequestStore(d)

	a := "11111111-1111-1111-1111-111111111111"
	b := "22222222-2222-2222-2222-222222222222"

	mock.ExpectQuery(`SELECT \* FROM "emergency"."requests" WHERE status = \$1 AND expires_at > \$2 ORDER BY CASE urgency`).
		WithArgs(access.StatusActive, now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "hospital_name", "urgency", "status"}).
			AddRow(a, "General", "critical", "active").
			AddRow(b, "St. Mary", "low", "active"))
	mock.ExpectQuery(`SELECT emergency_request_id, COUNT\(\*\) AS count FROM "emergency"."responses" WHERE emergency_request_id::text = ANY\(\$1\) GROUP BY`).
		WillReturnRows(sqlmock.NewRows([]string{"emergency_request_id", "count"}).AddRow(a, 2))

	got, err := store.ListVisible(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ResponsesCount)
	assert.Equal(t, 0, got[1].ResponsesCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListVisibleEmptySkipsCounts(t *testing.T) {
	d, mock := mockDB(t)
	mock.ExpectQuery(`FROM "emergency"."requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := emergency.NewGormRequestStore(d).ListVisible(context.Background(), now)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpireStale(t *testing.T) {
	d, mock := mockDB(t)
	at := now.Add(time.Minute)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "emergency"."requests" SET .* WHERE status = \$\d AND expires_at <= \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	n, err := emergency.NewGormRequestStore(d).ExpireStale(context.Background(), at)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
