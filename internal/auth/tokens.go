package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("token is invalid or expired")

// Claims carries the account in "sub" and the session in "sid".
type Claims struct {
	SessionID string `json:"sid"`
	Type      string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenPair is what login returns.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Tokens issues and verifies HS256 access and refresh tokens.
type Tokens struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokens(secret string, accessTTL, refreshTTL time.Duration) *Tokens {
	return &Tokens{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (t *Tokens) RefreshTTL() time.Duration { return t.refreshTTL }

func (t *Tokens) Issue(accountID, sessionID string) (TokenPair, error) {
	access, err := t.sign(accountID, sessionID, tokenTypeAccess, t.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := t.sign(accountID, sessionID, tokenTypeRefresh, t.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (t *Tokens) IssueAccess(accountID, sessionID string) (string, error) {
	return t.sign(accountID, sessionID, tokenTypeAccess, t.accessTTL)
}

func (t *Tokens) sign(accountID, sessionID, typ string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := Claims{
		SessionID: sessionID,
		Type:      typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, nil
}

func (t *Tokens) parse(raw, typ string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Type != typ || claims.Subject == "" || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyAccess implements middleware.TokenVerifier.
func (t *Tokens) VerifyAccess(raw string) (accountID, sessionID string, err error) {
	c, err := t.parse(raw, tokenTypeAccess)
	if err != nil {
		return "", "", err
	}
	return c.Subject, c.SessionID, nil
}

func (t *Tokens) VerifyRefresh(raw string) (accountID, sessionID string, err error) {
	c, err := t.parse(raw, tokenTypeRefresh)
	if err != nil {
		return "", "", err
	}
	return c.Subject, c.SessionID, nil
}
