package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"portfolio-backend/internal/auth"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminExists        = errors.New("an admin account already exists")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already in use")
	ErrInvalidUsername    = errors.New("username must be 3-20 characters of letters, numbers or underscores")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

type AuthService interface {
	Login(username, password string) (string, *models.Admin, error)
	GetProfile(adminID int64) (*models.Admin, error)
	UpdateProfile(adminID int64, username, email string) (*models.Admin, error)
	ChangePassword(adminID int64, currentPassword, newPassword string) error
	SeedAdmin(username, email, password string) (*models.Admin, error)
}

type authService struct {
	admins repository.AdminRepository
	tokens *auth.TokenManager
	logger *zap.Logger
}

func NewAuthService(admins repository.AdminRepository, tokens *auth.TokenManager, logger *zap.Logger) AuthService {
	return &authService{admins: admins, tokens: tokens, logger: logger}
}

// Login verifies the credentials and returns a signed token together with the
// authenticated account. Unknown username and wrong password collapse into
// the same error so responses cannot be used to enumerate accounts.
func (s *authService) Login(username, password string) (string, *models.Admin, error) {
	admin, err := s.admins.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		s.logger.Error("Failed to get admin by username", zap.Error(err))
		return "", nil, fmt.Errorf("failed to retrieve admin: %w", err)
	}

	if !admin.IsActive {
		return "", nil, ErrAccountDeactivated
	}

	if !auth.CheckPassword(password, admin.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	if err := s.admins.UpdateLastLogin(admin.ID); err != nil {
		// Login still succeeds; the timestamp is advisory.
		s.logger.Warn("Failed to update last login", zap.Int64("admin_id", admin.ID), zap.Error(err))
	}

	token, err := s.tokens.Issue(admin.ID)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("Admin logged in", zap.String("username", admin.Username))
	return token, admin, nil
}

func (s *authService) GetProfile(adminID int64) (*models.Admin, error) {
	admin, err := s.admins.GetByID(adminID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return admin, nil
}

// UpdateProfile changes username and/or email. Empty values leave the current
// field untouched. Uniqueness is checked against other accounts only.
func (s *authService) UpdateProfile(adminID int64, username, email string) (*models.Admin, error) {
	admin, err := s.GetProfile(adminID)
	if err != nil {
		return nil, err
	}

	newUsername := admin.Username
	if username = strings.TrimSpace(username); username != "" && username != admin.Username {
		if !usernamePattern.MatchString(username) {
			return nil, ErrInvalidUsername
		}
		existing, err := s.admins.GetByUsername(username)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if existing != nil && existing.ID != admin.ID {
			return nil, ErrUsernameTaken
		}
		newUsername = username
	}

	newEmail := admin.Email
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" && email != admin.Email {
		existing, err := s.admins.GetByEmail(email)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil && existing.ID != admin.ID {
			return nil, ErrEmailTaken
		}
		newEmail = email
	}

	if err := s.admins.UpdateProfile(admin.ID, newUsername, newEmail); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		s.logger.Error("Failed to update profile", zap.Error(err))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	admin.Username = newUsername
	admin.Email = newEmail
	return admin, nil
}

// ChangePassword verifies the current password before storing a hash of the
// new one. On a wrong current password the stored hash is left untouched.
func (s *authService) ChangePassword(adminID int64, currentPassword, newPassword string) error {
	admin, err := s.GetProfile(adminID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(currentPassword, admin.PasswordHash) {
		return ErrWrongPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.admins.UpdatePassword(admin.ID, hash); err != nil {
		s.logger.Error("Failed to update password", zap.Error(err))
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("Password changed", zap.String("username", admin.Username))
	return nil
}

// SeedAdmin creates the initial administrator account. It is idempotent in
// the strict sense: if any admin exists it aborts without changes.
func (s *authService) SeedAdmin(username, email, password string) (*models.Admin, error) {
	count, err := s.admins.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to check existing admins: %w", err)
	}
	if count > 0 {
		return nil, ErrAdminExists
	}

	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	if err := s.admins.Create(admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAdminExists
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Info("Admin account seeded", zap.String("username", admin.Username))
	return admin, nil
}
