package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/builderportfolio/portfolio-system/internal/core/domain"
	"github.com/builderportfolio/portfolio-system/internal/core/ports"
)

// UserService implements registration, login and profile maintenance.
type UserService struct {
	// mu serialises the contact-address check with the write that follows it.
	mu        sync.Mutex
	users     ports.UserRepository
	ids       ports.IdentityStore
	builders  ports.RoleIndex
	managers  ports.RoleIndex
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	ids ports.IdentityStore,
	builders ports.RoleIndex,
	managers ports.RoleIndex,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &UserService{
		users:     users,
		ids:       ids,
		builders:  builders,
		managers:  managers,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register creates an account and its empty role index entry. The user ID is
// the role prefix followed by the next number in that role's sequence.
func (s *UserService) Register(in ports.RegisterInput) (*domain.User, error) {
	if in.Password == "" {
		return nil, fmt.Errorf("register: %w: password cannot be empty", domain.ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}
	user, err := domain.NewUser(in.Name, in.Email, in.Phone, in.Experience, string(hash), in.Role)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.users.ExistsByContact(user.Email) {
		s.logger.Warn().Str("role", string(user.Role)).Msg("registration rejected: email already in use")
		return nil, domain.ErrUserExists
	}

	user.ID = fmt.Sprintf("%s%d", user.Role.Prefix(), s.ids.NextID(user.Role.Scope()))
	if err := s.users.Save(user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	s.indexFor(user.Role).CreateEntry(user.ID)

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	out := *user
	return &out, nil
}

// Login checks the password of userID and issues a signed token carrying the
// user's ID and role.
func (s *UserService) Login(userID, password string) (string, *domain.User, error) {
	if userID == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn().Str("user_id", userID).Msg("login rejected: user not found")
			return "", nil, domain.ErrUserNotFound
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warn().Str("user_id", userID).Msg("login rejected: invalid password")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("login successful")
	return token, user, nil
}

// FetchUser returns the account for userID or domain.ErrUserNotFound.
func (s *UserService) FetchUser(userID string) (*domain.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of changes. A new email must not
// belong to another user. The ID and role never change.
func (s *UserService) UpdateProfile(userID string, changes ports.ProfileChanges) (*domain.User, error) {
	var hash []byte
	if changes.Password != nil {
		if *changes.Password == "" {
			return nil, fmt.Errorf("update profile: %w: password cannot be empty", domain.ErrInvalidArgument)
		}
		var err error
		if hash, err = bcrypt.GenerateFromPassword([]byte(*changes.Password), bcrypt.DefaultCost); err != nil {
			return nil, fmt.Errorf("update profile: hash password: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if changes.Name != nil {
		if *changes.Name == "" {
			return nil, fmt.Errorf("update profile: %w: name cannot be empty", domain.ErrInvalidArgument)
		}
		user.Name = *changes.Name
	}
	if changes.Email != nil && *changes.Email != user.Email {
		if *changes.Email == "" {
			return nil, fmt.Errorf("update profile: %w: email cannot be empty", domain.ErrInvalidArgument)
		}
		if s.users.ExistsByContact(*changes.Email) {
			return nil, domain.ErrUserExists
		}
		user.Email = *changes.Email
	}
	if changes.Phone != nil {
		user.Phone = *changes.Phone
	}
	if changes.Experience != nil {
		if *changes.Experience < 0 {
			return nil, fmt.Errorf("update profile: %w: experience cannot be negative", domain.ErrInvalidArgument)
		}
		user.Experience = *changes.Experience
	}
	if hash != nil {
		user.PasswordHash = string(hash)
	}

	if err := s.users.Save(user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("profile updated")
	return user, nil
}

func (s *UserService) indexFor(role domain.Role) ports.RoleIndex {
	if role == domain.RoleManager {
		return s.managers
	}
	return s.builders
}

func (s *UserService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
