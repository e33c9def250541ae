package ports

import "github.com/builderportfolio/portfolio-system/internal/core/domain"

// RegisterInput carries the fields of a new account. Password is the plain
// secret; it is hashed before storage.
type RegisterInput struct {
	Name       string
	Email      string
	Phone      string
	Experience int
	Password   string
	Role       domain.Role
}

// ProfileChanges lists the editable profile fields. Nil fields are left
// untouched.
type ProfileChanges struct {
	Name       *string
	Email      *string
	Phone      *string
	Experience *int
	Password   *string
}

type UserService interface {
	Register(in RegisterInput) (*domain.User, error)
	Login(userID, password string) (string, *domain.User, error)
	FetchUser(userID string) (*domain.User, error)
	UpdateProfile(userID string, changes ProfileChanges) (*domain.User, error)
}
