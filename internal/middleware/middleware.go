package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/access"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/apperr"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/httputil"
)

// SessionData is what the auth middleware needs to know about a session.
type SessionData struct {
	AccountID string
	ExpiresAt time.Time
}

type SessionFetcher interface {
	FindSessionByID(ctx context.Context, id string) (SessionData, error)
}

// TokenVerifier checks a bearer access token and returns the account and
// session it was issued for.
type TokenVerifier interface {
	VerifyAccess(token string) (accountID, sessionID string, err error)
}

// RoleFetcher looks up an account's role for AdminMiddleware.
type RoleFetcher interface {
	FindRole(ctx context.Context, accountID string) (string, error)
}

// AuthMiddleware requires a valid "Authorization: Bearer <access token>"
// whose session still exists, and stores the identity on the context.
func AuthMiddleware(verifier TokenVerifier, fetcher SessionFetcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httputil.WriteError(w, r, apperr.Unauthorized("authentication credentials were not provided"))
				return
			}

			accountID, sessionID, err := verifier.VerifyAccess(token)
			if err != nil {
				httputil.WriteError(w, r, apperr.Unauthorized("token is invalid or expired"))
				return
			}

			session, err := fetcher.FindSessionByID(r.Context(), sessionID)
			if err != nil && !apperr.Is(err, apperr.KindNotFound) {
				httputil.WriteError(w, r, apperr.Internal(err))
				return
			}
			if err != nil || session.AccountID != accountID {
				httputil.WriteError(w, r, apperr.Unauthorized("session not found"))
				return
			}

			if session.ExpiresAt.Before(time.Now()) {
				httputil.WriteError(w, r, apperr.Unauthorized("session expired"))
				return
			}

			ctx := access.WithIdentity(r.Context(), accountID, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CORSMiddleware echoes the Origin back only when it is on the allow-list.
func CORSMiddleware(allowed map[string]struct{}) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if _, ok := allowed[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods",
					"GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers",
					"Content-Type, Authorization")
			}

			w.Header().Set("Access-Control-Expose-Headers", "Server-Timing, Retry-After, X-Request-Id")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

const RoleAdmin = "admin"

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware(fetcher RoleFetcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountID, err := access.Require(r.Context())
			if err != nil {
				httputil.WriteError(w, r, err)
				return
			}

			role, err := fetcher.FindRole(r.Context(), accountID)
			if err != nil {
				httputil.WriteError(w, r, apperr.Unauthorized("account not found"))
				return
			}

			if role != RoleAdmin {
				httputil.WriteError(w, r, apperr.Forbidden("admin access required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
