package seeds

import (
	"context"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/apperr"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/auth"
)

const (
	TestUsername = "testuser"
	TestEmail    = "test@example.com"
	TestPassword = "testpass123"
)

// EnsureTestUser creates the fixed development account unless it exists.
// The password skips strength validation.
func EnsureTestUser(ctx context.Context, store auth.Store) (bool, error) {
	_, err := store.FindAccountByUsername(ctx, TestUsername)
	if err == nil {
		return false, nil
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		return false, err
	}

	hashed, err := auth.HashPassword(TestPassword)
	if err != nil {
		return false, err
	}
	acct := &auth.Account{Username: TestUsername, Email: TestEmail, HashedPassword: hashed}
	if err := store.CreateAccount(ctx, acct); err != nil {
		return false, err
	}
	return true, nil
}
