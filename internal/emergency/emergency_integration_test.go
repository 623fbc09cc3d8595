package emergency_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/access"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/apperr"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/auth"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/db"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/emergency"
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
		emergency.Init(db.DB)
		dbAvailable = true
	}
	os.Exit(m.Run())
}

func requireDB(t *testing.T) {
	t.Helper()
	if !dbAvailable || testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
}

func newAccount(t *testing.T) string {
	t.Helper()
	acct := auth.Account{Username: "responder_" + uuid.New().String()[:8], HashedPassword: "x"}
	require.NoError(t, auth.NewGormStore(db.DB, nil).CreateAccount(context.Background(), &acct))
	t.Cleanup(func() { db.DB.Where("id = ?", acct.ID).Delete(&auth.Account{}) })
	return acct.ID
}

func newRequest(t *testing.T, expiresIn time.Duration) emergency.Request {
	t.Helper()
	r := emergency.Request{
		HospitalName:    "General " + uuid.New().String()[:8],
		BloodTypeNeeded: "O-",
		UnitsNeeded:     5,
		ContactPerson:   "Dr. Ray",
		ContactPhone:    "555-0111",
		Location:        "Ward 4",
		ExpiresAt:       time.Now().Add(expiresIn),
	}
	r.SetDefaults()
	r.Urgency = access.UrgencyCritical
	require.NoError(t, emergency.NewGormRequestStore(db.DB).Create(context.Background(), &r))
	t.Cleanup(func() { db.DB.Where("id = ?", r.ID).Delete(&emergency.Request{}) })
	return r
}

func TestRespondersAreCountedOnce(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	req := newRequest(t, 6*time.Hour)
	responses := emergency.NewResponseStore(db.DB)

	a, b := newAccount(t), newAccount(t)
	for _, user := range []string{a, b} {
		resp := emergency.Response{EmergencyRequestID: req.ID, UserID: user}
		resp.SetDefaults()
		require.NoError(t, responses.Create(ctx, &resp))
		assert.Equal(t, req.HospitalName, resp.EmergencyRequest.HospitalName)
	}

	got, err := emergency.NewGormRequestStore(db.DB).GetVisible(ctx, req.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, got.ResponsesCount)

	again := emergency.Response{EmergencyRequestID: req.ID, UserID: a, Status: "interested"}
	err = responses.Create(ctx, &again)
	assert.True(t, apperr.Is(err, apperr.KindConstraint), "%v", err)
}

func TestConcurrentDuplicateResponse(t *testing.T) {
	requireDB(t)
	req := newRequest(t, time.Hour)
	user := newAccount(t)
	responses := emergency.NewResponseStore(db.DB)

	const n = 2
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := emergency.Response{EmergencyRequestID: req.ID, UserID: user, Status: "interested"}
			errs[i] = responses.Create(context.Background(), &resp)
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case apperr.Is(err, apperr.KindConstraint):
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)
}

func TestExpireStaleHidesAndMarks(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	store := emergency.NewGormRequestStore(db.DB)
	req := newRequest(t, time.Minute)

	later := time.Now().Add(2 * time.Minute)
	_, err := store.GetVisible(ctx, req.ID, later)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	n, err := store.ExpireStale(ctx, later)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))

	got, err := store.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, emergency.StatusExpired, got.Status)
}
