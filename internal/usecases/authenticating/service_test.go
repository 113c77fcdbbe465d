package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-ads-sync/internal/config"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
	"github.com/vfg2006/meta-ads-sync/pkg/apiErrors"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims domain.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func userClaims(sub string, expiresIn time.Duration) domain.Claims {
	return domain.Claims{
		Email: "user@example.com",
		Role:  domain.RoleAuthenticated,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
}

func TestService_ValidateToken(t *testing.T) {
	svc := NewService(&config.Config{Auth: config.Auth{JWTSecret: testSecret}})

	t.Run("token de usuário", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), userClaims("user1", time.Hour))

		claims, err := svc.ValidateToken(token)

		require.NoError(t, err)
		assert.Equal(t, "user1", claims.UserID())
		assert.False(t, claims.IsService())
	})

	t.Run("token de serviço sem usuário", func(t *testing.T) {
		claims := domain.Claims{Role: domain.RoleServiceRole}
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)

		got, err := svc.ValidateToken(token)

		require.NoError(t, err)
		assert.True(t, got.IsService())
	})
}

func TestService_ValidateToken_Errors(t *testing.T) {
	svc := NewService(&config.Config{Auth: config.Auth{JWTSecret: testSecret}})

	tests := []struct {
		name     string
		token    func(t *testing.T) string
		wantErr  error
		wantCode string
	}{
		{
			name: "expirado",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), userClaims("user1", -time.Hour))
			},
			wantErr:  ErrExpiredToken,
			wantCode: apiErrors.ErrExpiredToken,
		},
		{
			name: "assinatura de outro segredo",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte("other"), userClaims("user1", time.Hour))
			},
			wantErr:  ErrInvalidToken,
			wantCode: apiErrors.ErrInvalidToken,
		},
		{
			name: "algoritmo none",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, userClaims("user1", time.Hour))
			},
			wantErr:  ErrInvalidToken,
			wantCode: apiErrors.ErrInvalidToken,
		},
		{
			name: "sem usuário",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), userClaims("", time.Hour))
			},
			wantErr:  ErrMissingSubject,
			wantCode: apiErrors.ErrInvalidToken,
		},
		{
			name:     "texto qualquer",
			token:    func(*testing.T) string { return "not-a-jwt" },
			wantErr:  ErrInvalidToken,
			wantCode: apiErrors.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token(t))

			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantCode, authErr.Code)
			assert.True(t, IsTokenError(err))
		})
	}
}
