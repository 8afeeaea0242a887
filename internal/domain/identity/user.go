package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/noorfashion/backend/internal/domain/shared"
)

// Role is the closed set of user roles
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// IsValid returns true if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the role grants back-office access
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Common identity errors
var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	ErrUserDisabled       = shared.NewDomainError("USER_DISABLED", "User account is disabled")
)

// User is a storefront account
type User struct {
	shared.BaseAggregateRoot

	Email        string
	Name         string
	Phone        string
	Address      string
	Role         Role
	PasswordHash string
	Disabled     bool
}

// NewUser creates a new user with the customer role
func NewUser(email, name, passwordHash string) (*User, error) {
	if email == "" || passwordHash == "" {
		return nil, shared.ErrInvalidInput
	}
	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		Name:              name,
		Role:              RoleUser,
		PasswordHash:      passwordHash,
	}, nil
}

// Provider authenticates credentials against some identity backend. The
// storefront treats identity as a pluggable collaborator; the default
// implementation is the local user store, but anything that can resolve
// (email, password) to a user satisfies the port.
type Provider interface {
	Authenticate(ctx context.Context, email, password string) (*User, error)
}

// Repository is the persistence port for users
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, u *User) error
}
