package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestTokensRoundTrip(t *testing.T) {
	tk := NewTokens(secret, 5*time.Minute, 24*time.Hour)

	pair, err := tk.Issue("acct-1", "sess-1")
	require.NoError(t, err)

	acct, sess, err := tk.VerifyAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", acct)
	assert.Equal(t, "sess-1", sess)

	acct, sess, err = tk.VerifyRefresh(pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", acct)
	assert.Equal(t, "sess-1", sess)
}

func TestTokensRejectWrongType(t *testing.T) {
	tk := NewTokens(secret, 5*time.Minute, 24*time.Hour)
	pair, err := tk.Issue("acct-1", "sess-1")
	require.NoError(t, err)

	_, _, err = tk.VerifyAccess(pair.Refresh)
	assert.True(t, errors.Is(err, ErrInvalidToken))
	_, _, err = tk.VerifyRefresh(pair.Access)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokensExpire(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	tk := NewTokens(secret, 5*time.Minute, 24*time.Hour)
	tk.now = func() time.Time { return now }

	pair, err := tk.Issue("acct-1", "sess-1")
	require.NoError(t, err)

	now = now.Add(6 * time.Minute)
	_, _, err = tk.VerifyAccess(pair.Access)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, _, err = tk.VerifyRefresh(pair.Refresh)
	assert.NoError(t, err)
}

func TestTokensRejectOtherSecret(t *testing.T) {
	pair, err := NewTokens(secret, time.Minute, time.Hour).Issue("acct-1", "sess-1")
	require.NoError(t, err)

	_, _, err = NewTokens("another-secret-another-secret-xx", time.Minute, time.Hour).VerifyAccess(pair.Access)
	assert.Error(t, err)
}
