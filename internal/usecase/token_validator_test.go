package usecase_test

import (
	"testing"
	"time"

	"parking-core/internal/domain/user"
	"parking-core/internal/pkg/clock"
	"parking-core/internal/pkg/errs"
	"parking-core/internal/pkg/jwt"
	"parking-core/internal/usecase"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "validator-secret"

var now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// forge signs arbitrary claims with the service secret.
func forge(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func registered(subject string) gojwt.RegisteredClaims {
	return gojwt.RegisteredClaims{
		Issuer:    "parking-core",
		Subject:   subject,
		IssuedAt:  gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(now.Add(time.Hour)),
	}
}

func TestValidateToken(t *testing.T) {
	svc := jwt.NewService(secret, time.Hour, clock.NewMockClock(now))
	validator := usecase.NewTokenValidator(svc)
	userID := uuid.New()

	t.Run("issued token yields the caller", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, user.RoleAdmin)
		require.NoError(t, err)

		caller, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, usecase.Caller{UserID: userID, Role: user.RoleAdmin}, caller)
	})

	tests := []struct {
		name   string
		claims jwt.Claims
	}{
		{
			name:   "nil user",
			claims: jwt.Claims{UserID: uuid.Nil, Role: "operator", RegisteredClaims: registered("")},
		},
		{
			name:   "subject names another user",
			claims: jwt.Claims{UserID: userID, Role: "operator", RegisteredClaims: registered(uuid.NewString())},
		},
		{
			name:   "unknown role",
			claims: jwt.Claims{UserID: userID, Role: "superuser", RegisteredClaims: registered(userID.String())},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validator.ValidateToken(forge(t, tt.claims))
			assert.True(t, errs.Is(err, jwt.ErrInvalidToken), "got %v", err)
		})
	}

	t.Run("token without subject is accepted", func(t *testing.T) {
		caller, err := validator.ValidateToken(forge(t, jwt.Claims{
			UserID:           userID,
			Role:             "viewer",
			RegisteredClaims: registered(""),
		}))
		require.NoError(t, err)
		assert.Equal(t, user.RoleViewer, caller.Role)
	})
}
