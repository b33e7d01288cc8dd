package usecase

import (
	"parking-core/internal/domain/user"
	"parking-core/internal/pkg/errs"
	"parking-core/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Caller is the identity a request acts for. Identities are issued
// elsewhere; the service only checks the signature and reads the claims.
type Caller struct {
	UserID uuid.UUID
	Role   user.Role
}

type TokenValidator interface {
	ValidateToken(tokenString string) (Caller, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (Caller, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Caller{}, err
	}
	if claims.UserID == uuid.Nil {
		return Caller{}, errs.Wrap(jwt.ErrInvalidToken, "token names no user")
	}
	// sub and user_id are written together; a mismatch means a forged or foreign token
	if claims.Subject != "" && claims.Subject != claims.UserID.String() {
		return Caller{}, errs.Wrap(jwt.ErrInvalidToken, "subject does not match user_id")
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Caller{}, errs.Wrapf(jwt.ErrInvalidToken, "unknown role %q", claims.Role)
	}

	return Caller{UserID: claims.UserID, Role: role}, nil
}
