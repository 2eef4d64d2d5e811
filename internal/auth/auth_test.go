package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kirinyoku/evently/internal/domain"
)

func TestTokenManager_IssueParse(t *testing.T) {
	m := NewTokenManager("secret", "evently", "evently-api", time.Hour)

	tok, err := m.Issue(&domain.User{
		ID:    42,
		Email: "a@example.com",
		Roles: []domain.Role{domain.RoleUser, domain.RoleAdmin},
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, 5*time.Second)

	p, err := m.Parse(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.UserID)
	assert.Equal(t, "a@example.com", p.Email)
	assert.True(t, p.HasRole(domain.RoleAdmin))
	assert.False(t, p.HasRole(domain.RoleServiceProvider))
}

func TestTokenManager_ParseRejects(t *testing.T) {
	m := NewTokenManager("secret", "evently", "evently-api", time.Hour)
	tok, err := m.Issue(&domain.User{ID: 1})
	require.NoError(t, err)

	expired := NewTokenManager("secret", "evently", "evently-api", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	noneTok, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name string
		m    *TokenManager
		raw  string
	}{
		{"wrong secret", NewTokenManager("other", "evently", "evently-api", time.Hour), tok.Token},
		{"wrong audience", NewTokenManager("secret", "evently", "admin-api", time.Hour), tok.Token},
		{"wrong issuer", NewTokenManager("secret", "someone", "evently-api", time.Hour), tok.Token},
		{"expired", expired, tok.Token},
		{"alg none", m, noneTok},
		{"garbage", m, "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.m.Parse(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("Sup3r$ecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3r$ecret", hash)
	assert.True(t, h.Compare(hash, "Sup3r$ecret"))
	assert.False(t, h.Compare(hash, "sup3r$ecret"))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"Sup3r$ecret", true},
		{"Ab1!", false},
		{"alllower1!", false},
		{"NoDigits!!", false},
		{"NoSymbol12", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if tt.ok {
			assert.NoError(t, err, tt.password)
		} else {
			assert.ErrorIs(t, err, ErrWeakPassword, tt.password)
		}
	}
}
