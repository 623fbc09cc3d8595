package medical_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/medical"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	accountID = "44444444-4444-4444-4444-444444444444"
	profileID = "55555555-5555-5555-5555-555555555555"
)

// TestProfileGetOrCreateLosesInsertRace covers two first requests racing:
// the insert hits the unique index and the stored profile is returned.
func TestProfileGetOrCreateLosesInsertRace(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	d, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "medical"."profiles" WHERE ("medical"\.)?"profiles"\."user_id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}))
	mock.ExpectExec(`INSERT INTO "medical"."profiles"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_medical_profiles_user_id"})
	mock.ExpectRollback()

	mock.ExpectQuery(`SELECT \* FROM "medical"."profiles" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "blood_type", "donation_eligibility"}).
			AddRow(profileID, accountID, "O-", true))
	mock.ExpectQuery(`SELECT \* FROM "app_auth"."users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(accountID, "donor"))
	for _, table := range []string{"allergies", "medications", "conditions"} {
		mock.ExpectQuery(`SELECT \* FROM "medical"."` + table + `"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}))
	}

	p, err := medical.NewGormProfileStore(d).GetOrCreate(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, profileID, p.ID)
	assert.Equal(t, "O-", p.BloodType)
	assert.Equal(t, "donor", p.User.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
