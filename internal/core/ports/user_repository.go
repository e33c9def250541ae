package ports

import "github.com/builderportfolio/portfolio-system/internal/core/domain"

// UserRepository stores accounts keyed by user ID.
type UserRepository interface {
	// Save upserts by ID, silently overwriting an existing record.
	Save(user *domain.User) error
	ExistsByID(id string) bool
	// ExistsByContact reports whether any user has exactly this email
	// (case-sensitive). Uniqueness is checked by callers, not enforced here.
	ExistsByContact(email string) bool
	FindByID(id string) (*domain.User, error)
	Clear()
}
