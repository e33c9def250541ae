package memory

import (
	"fmt"
	"sync"

	"github.com/builderportfolio/portfolio-system/internal/core/domain"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

// Save upserts the user by ID.
func (r *UserRepository) Save(user *domain.User) error {
	if user == nil {
		return fmt.Errorf("%w: user cannot be nil", domain.ErrInvalidArgument)
	}
	if user.ID == "" {
		return fmt.Errorf("%w: user id cannot be empty", domain.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) ExistsByID(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[id]
	return ok
}

// ExistsByContact scans every record for an exact email match.
func (r *UserRepository) ExistsByContact(email string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return true
		}
	}
	return false
}

func (r *UserRepository) FindByID(id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
	}
	return &u, nil
}

func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *UserRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = make(map[string]domain.User)
}
