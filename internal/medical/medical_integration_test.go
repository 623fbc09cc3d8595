package medical_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/auth"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/db"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/medical"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dbAvailable bool

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../.env.local")

	if url := os.Getenv("DATABASE_URL"); url != "" {
		if _, err := db.Connect(url, "warn"); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		auth.Init(db.DB)
		medical.Init(db.DB)
		dbAvailable = true
	}
	os.Exit(m.Run())
}

func registerAccount(t *testing.T) auth.Account {
	t.Helper()
	if !dbAvailable || testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	store := auth.NewGormStore(db.DB, medical.CreateDefaultProfile)
	acct := auth.Account{Username: "medical_" + uuid.New().String()[:8], HashedPassword: "x"}
	require.NoError(t, store.CreateAccount(context.Background(), &acct))
	t.Cleanup(func() { db.DB.Where("id = ?", acct.ID).Delete(&auth.Account{}) })
	return acct
}

func TestRegistrationCreatesExactlyOneProfile(t *testing.T) {
	acct := registerAccount(t)

	var n int64
	require.NoError(t, db.DB.Model(&medical.Profile{}).Where("user_id = ?", acct.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	// Get-or-create never adds a second row.
	p, err := medical.NewGormProfileStore(db.DB).GetOrCreate(context.Background(), acct.ID)
	require.NoError(t, err)
	assert.Equal(t, acct.Username, p.User.Username)
	require.NoError(t, db.DB.Model(&medical.Profile{}).Where("user_id = ?", acct.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestAccountDeleteCascades(t *testing.T) {
	acct := registerAccount(t)
	ctx := context.Background()

	allergies := medical.NewAllergyStore(db.DB)
	a := medical.Allergy{UserID: acct.ID, AllergyName: "penicillin", Severity: "severe"}
	require.NoError(t, allergies.Create(ctx, &a))

	require.NoError(t, auth.NewGormStore(db.DB, nil).DeleteAccount(ctx, acct.ID))

	var n int64
	require.NoError(t, db.DB.Model(&medical.Allergy{}).Where("user_id = ?", acct.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.DB.Model(&medical.Profile{}).Where("user_id = ?", acct.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestProfileSaveKeepsHistory(t *testing.T) {
	acct := registerAccount(t)
	ctx := context.Background()

	require.NoError(t, medical.NewConditionStore(db.DB).Create(ctx, &medical.Condition{UserID: acct.ID, ConditionName: "asthma"}))

	store := medical.NewGormProfileStore(db.DB)
	p, err := store.GetOrCreate(ctx, acct.ID)
	require.NoError(t, err)
	w := 72.5
	p.Weight = &w
	require.NoError(t, store.Save(ctx, &p))

	require.Len(t, p.MedicalConditions, 1)
	require.NotNil(t, p.Weight)
	assert.InDelta(t, 72.5, *p.Weight, 0.001)
}
