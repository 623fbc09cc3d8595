package access

import (
	"context"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/apperr"
)

type contextKey string

const (
	ContextAccountIDKey contextKey = "accountID"
	ContextSessionIDKey contextKey = "sessionID"
)

// WithIdentity attaches the authenticated account and its session to ctx.
func WithIdentity(ctx context.Context, accountID, sessionID string) context.Context {
	ctx = context.WithValue(ctx, ContextAccountIDKey, accountID)
	return context.WithValue(ctx, ContextSessionIDKey, sessionID)
}

func GetAccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextAccountIDKey).(string)
	return id, ok && id != ""
}

func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextSessionIDKey).(string)
	return id, ok && id != ""
}

// Require returns the calling account id or an Unauthorized error.
func Require(ctx context.Context) (string, error) {
	id, ok := GetAccountIDFromContext(ctx)
	if !ok {
		return "", apperr.Unauthorized("authentication credentials were not provided")
	}
	return id, nil
}
