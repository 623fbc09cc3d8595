package auth

import (
	"context"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/middleware"
)

// SessionInfo adapts a Store to middleware.SessionFetcher and
// middleware.RoleFetcher.
type SessionInfo struct {
	Store Store
}

func (si SessionInfo) FindSessionByID(ctx context.Context, id string) (middleware.SessionData, error) {
	session, err := si.Store.FindSession(ctx, id)
	if err != nil {
		return middleware.SessionData{}, err
	}

	return middleware.SessionData{
		AccountID: session.UserID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (si SessionInfo) FindRole(ctx context.Context, accountID string) (string, error) {
	acct, err := si.Store.FindAccountByID(ctx, accountID)
	if err != nil {
		return "", err
	}
	return acct.Role, nil
}
