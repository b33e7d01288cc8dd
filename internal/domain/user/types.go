// Package user holds the caller roles carried in access tokens. Identities
// live outside this service.
package user

import "parking-core/internal/pkg/errs"

var ErrInvalidRole = errs.NewKind("invalid role", errs.ErrInvalidInput)

type Role string

const (
	RoleViewer   Role = "viewer"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

// rank orders roles by privilege. Unknown roles rank zero.
func (r Role) rank() int {
	switch r {
	case RoleViewer:
		return 1
	case RoleOperator:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

func (r Role) IsValid() bool {
	return r.rank() > 0
}

// Satisfies reports whether r grants at least the privileges of min.
// An admin may check in and release; a viewer may only read.
func (r Role) Satisfies(min Role) bool {
	return r.IsValid() && min.IsValid() && r.rank() >= min.rank()
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
