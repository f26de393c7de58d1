package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, secret string) Manager {
	t.Helper()
	mgr, err := NewJwtManager(Config{SecretKey: secret})
	require.NoError(t, err)
	return mgr
}

func sign(t *testing.T, method jwtlib.SigningMethod, secret string, claims jwtlib.Claims) string {
	t.Helper()
	signed, err := jwtlib.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestNewJwtManager_RequiresSecret(t *testing.T) {
	_, err := NewJwtManager(Config{})
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestCreateToken_AndDecode(t *testing.T) {
	mgr := newManager(t, "test-secret")

	token, err := mgr.CreateToken("analyst")
	require.NoError(t, err)
	require.NoError(t, mgr.ValidateToken(token))

	claims, err := mgr.DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "analyst", claims.Subject)
	assert.Equal(t, issuer, claims.Issuer)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestValidateToken(t *testing.T) {
	const secret = "test-secret"
	now := time.Now()

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{
			name:  "other secret",
			token: sign(t, jwtlib.SigningMethodHS256, "other-secret", &Claims{RegisteredClaims: jwtlib.RegisteredClaims{IssuedAt: jwtlib.NewNumericDate(now)}}),
			want:  ErrInvalidToken,
		},
		{
			name: "expired",
			token: sign(t, jwtlib.SigningMethodHS256, secret, &Claims{RegisteredClaims: jwtlib.RegisteredClaims{
				IssuedAt:  jwtlib.NewNumericDate(now.Add(-2 * time.Hour)),
				ExpiresAt: jwtlib.NewNumericDate(now.Add(-time.Hour)),
			}}),
			want: ErrExpiredToken,
		},
		{
			name:  "wrong algorithm",
			token: sign(t, jwtlib.SigningMethodHS512, secret, &Claims{}),
			want:  ErrInvalidToken,
		},
		{
			name:  "malformed",
			token: "not.a.jwt",
			want:  ErrInvalidToken,
		},
		{
			name:  "valid without expiry",
			token: sign(t, jwtlib.SigningMethodHS256, secret, &Claims{RegisteredClaims: jwtlib.RegisteredClaims{IssuedAt: jwtlib.NewNumericDate(now)}}),
		},
	}

	mgr := newManager(t, secret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mgr.ValidateToken(tt.token)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, err)
		})
	}
}
