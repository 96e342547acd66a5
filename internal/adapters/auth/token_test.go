package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rglregistrations/internal/domain"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	expiry := 24 * time.Hour
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue("admin@example.com", "admin@example.com", []string{domain.RoleAdmin}, expiry)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "admin@example.com", claims.Subject)
	assert.Equal(t, []string{"admin"}, claims.Roles)
}

func TestJWTVerifier_Verify(t *testing.T) {
	issuer := NewJWTIssuer("s3cret")
	verifier := NewJWTVerifier("s3cret", domain.RoleAdmin)

	valid, err := issuer.Issue("organiser", "o@example.com", []string{domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	noRole, err := issuer.Issue("organiser", "o@example.com", nil, time.Hour)
	require.NoError(t, err)
	expired, err := issuer.Issue("organiser", "o@example.com", []string{domain.RoleAdmin}, -time.Minute)
	require.NoError(t, err)
	otherSecret, err := NewJWTIssuer("other").Issue("organiser", "o@example.com", []string{domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid", valid, false},
		{"missing role", noRole, true},
		{"expired", expired, true},
		{"wrong secret", otherSecret, true},
		{"garbage", "not-a-jwt", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := verifier.Verify(tt.token)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "organiser", sub)
		})
	}

	sub, err := NewJWTVerifier("s3cret", "").Verify(noRole)
	require.NoError(t, err)
	assert.Equal(t, "organiser", sub)
}
