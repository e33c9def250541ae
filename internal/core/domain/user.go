package domain

import "strings"

// Role discriminates the two kinds of account holders.
type Role string

const (
	RoleBuilder Role = "builder"
	RoleManager Role = "manager"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleBuilder || r == RoleManager
}

// Prefix returns the letter prepended to user identifiers of this role.
func (r Role) Prefix() string {
	switch r {
	case RoleBuilder:
		return "B"
	case RoleManager:
		return "P"
	default:
		return ""
	}
}

// Scope returns the identity sequence used for users of this role.
func (r Role) Scope() Scope {
	if r == RoleManager {
		return ScopeManagerUser
	}
	return ScopeBuilderUser
}

// ParseRole maps a role token to a Role. Matching ignores case and
// surrounding whitespace.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

// User models a registered account holder.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Experience   int    `json:"experience"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}

// NewUser validates the account fields. The identifier is assigned later by
// the registration service so that a rejected user never consumes one.
func NewUser(name, email, phone string, experience int, passwordHash string, role Role) (*User, error) {
	if name == "" {
		return nil, invalid("name cannot be empty")
	}
	if email == "" {
		return nil, invalid("email cannot be empty")
	}
	if passwordHash == "" {
		return nil, invalid("password cannot be empty")
	}
	if !role.Valid() {
		return nil, invalid("unknown role " + string(role))
	}
	if experience < 0 {
		return nil, invalid("experience cannot be negative")
	}
	return &User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		Experience:   experience,
		PasswordHash: passwordHash,
		Role:         role,
	}, nil
}
