package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/access"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/apperr"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/httputil"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/logging"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/validate"
)

// ProfileLoader returns the caller's profile for /auth/me.
type ProfileLoader func(ctx context.Context, accountID string) (any, error)

type Handler struct {
	Store   Store
	Tokens  *Tokens
	Profile ProfileLoader
	Now     func() time.Time
}

func NewHandler(store Store, tokens *Tokens, profile ProfileLoader) *Handler {
	return &Handler{Store: store, Tokens: tokens, Profile: profile, Now: time.Now}
}

var errBadCredentials = apperr.Unauthorized("No active account found with the given credentials")

type registerRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	Password2 *string `json:"password2"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (req *registerRequest) validate() error {
	c := validate.New(false)

	c.String("username", req.Username, true, 150)
	if req.Username != nil && !c.Has("username") && !ValidUsernameChars(NormalizeUsername(*req.Username)) {
		c.Add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}
	c.String("email", req.Email, false, 254)
	c.Email("email", req.Email)
	c.String("first_name", req.FirstName, false, 150)
	c.String("last_name", req.LastName, false, 150)
	c.String("password", req.Password, true, 0)
	c.String("password2", req.Password2, true, 0)

	if req.Password != nil && req.Password2 != nil && *req.Password != *req.Password2 {
		c.Add("password", "Passwords don't match.")
	}
	if req.Password != nil && !c.Has("password") {
		ValidatePassword(c, "password", *req.Password,
			str(req.Username), str(req.Email), str(req.FirstName), str(req.LastName))
	}
	return c.Err()
}

type registeredUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type registerResponse struct {
	User    registeredUser `json:"user"`
	Message string         `json:"message"`
}

// Register creates the account and its empty profile.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	hashed, err := HashPassword(*req.Password)
	if err != nil {
		httputil.WriteError(w, r, apperr.Internal(err))
		return
	}

	acct := Account{
		Username:       NormalizeUsername(*req.Username),
		Email:          NormalizeEmail(str(req.Email)),
		FirstName:      strings.TrimSpace(str(req.FirstName)),
		LastName:       strings.TrimSpace(str(req.LastName)),
		HashedPassword: hashed,
		Role:           RoleUser,
	}
	if err := h.Store.CreateAccount(r.Context(), &acct); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	logging.LogCreated(r.Context(), "account", acct.ID, acct.ID)
	httputil.WriteJSON(w, http.StatusCreated, registerResponse{
		User:    registeredUser{ID: acct.ID, Username: acct.Username, Email: acct.Email},
		Message: "User created successfully",
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	c := validate.New(false)
	c.String("username", &req.Username, true, 0)
	c.String("password", &req.Password, true, 0)
	if err := c.Err(); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	acct, err := h.Store.FindAccountByUsername(r.Context(), NormalizeUsername(req.Username))
	if err != nil {
		if isNotFound(err) {
			err = errBadCredentials
		}
		httputil.WriteError(w, r, err)
		return
	}
	if !CheckPassword(acct.HashedPassword, req.Password) {
		httputil.WriteError(w, r, errBadCredentials)
		return
	}

	session := Session{UserID: acct.ID, ExpiresAt: h.Now().Add(h.Tokens.RefreshTTL())}
	if err := h.Store.CreateSession(r.Context(), &session); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	pair, err := h.Tokens.Issue(acct.ID, session.SessionID)
	if err != nil {
		httputil.WriteError(w, r, apperr.Internal(err))
		return
	}

	logging.FromContext(r.Context()).WithField("account_id", acct.ID).Info("login succeeded")
	httputil.WriteJSON(w, http.StatusOK, pair)
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// Refresh trades a refresh token for a new access token on the same session.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Refresh) == "" {
		httputil.WriteError(w, r, apperr.Field("refresh", validate.MsgRequired))
		return
	}

	accountID, sessionID, err := h.Tokens.VerifyRefresh(req.Refresh)
	if err != nil {
		httputil.WriteError(w, r, apperr.Unauthorized("Token is invalid or expired"))
		return
	}
	session, err := h.Store.FindSession(r.Context(), sessionID)
	if err != nil || session.UserID != accountID || !session.ExpiresAt.After(h.Now()) {
		httputil.WriteError(w, r, apperr.Unauthorized("Token is invalid or expired"))
		return
	}

	token, err := h.Tokens.IssueAccess(accountID, sessionID)
	if err != nil {
		httputil.WriteError(w, r, apperr.Internal(err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"access": token})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := access.GetSessionIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperr.Unauthorized("authentication credentials were not provided"))
		return
	}
	if err := h.Store.DeleteSession(r.Context(), sessionID); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type meResponse struct {
	Account
	Profile any `json:"profile,omitempty"`
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	accountID, err := access.Require(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	acct, err := h.Store.FindAccountByID(r.Context(), accountID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	resp := meResponse{Account: acct}
	if h.Profile != nil {
		profile, err := h.Profile(r.Context(), accountID)
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		resp.Profile = profile
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// DeleteMe removes the caller's account and everything it owns.
func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	accountID, err := access.Require(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if err := h.Store.DeleteAccount(r.Context(), accountID); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	logging.LogDeleted(r.Context(), "account", accountID, accountID)
	w.WriteHeader(http.StatusNoContent)
}

type passwordRequest struct {
	CurrentPassword *string `json:"current_password"`
	NewPassword     *string `json:"new_password"`
}

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	accountID, err := access.Require(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	var req passwordRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	acct, err := h.Store.FindAccountByID(r.Context(), accountID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	c := validate.New(false)
	c.String("current_password", req.CurrentPassword, true, 0)
	c.String("new_password", req.NewPassword, true, 0)
	if req.CurrentPassword != nil && !c.Has("current_password") && !CheckPassword(acct.HashedPassword, *req.CurrentPassword) {
		c.Add("current_password", "Your current password was entered incorrectly.")
	}
	if req.NewPassword != nil && !c.Has("new_password") {
		ValidatePassword(c, "new_password", *req.NewPassword, acct.Username, acct.Email, acct.FirstName, acct.LastName)
	}
	if err := c.Err(); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	hashed, err := HashPassword(*req.NewPassword)
	if err != nil {
		httputil.WriteError(w, r, apperr.Internal(err))
		return
	}
	if err := h.Store.UpdatePassword(r.Context(), accountID, hashed); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	logging.LogUpdated(r.Context(), "account", accountID, accountID)
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"detail": "Password updated"})
}
