package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/audit-tracker/internal/auth"
	"github.com/spec-kit/audit-tracker/internal/config"
	"github.com/spec-kit/audit-tracker/internal/domain"
	"github.com/spec-kit/audit-tracker/internal/repository"
	apperrors "github.com/spec-kit/audit-tracker/pkg/util/errorutil"
)

var errInvalidCredentials = apperrors.NewUnauthorized("invalid credentials")

// LoginThrottle counts failed logins per email.
type LoginThrottle interface {
	Locked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) (int64, error)
	Reset(ctx context.Context, email string) error
}

// AuthService coordinates registration, login and account management.
type AuthService struct {
	users      repository.UserRepository
	throttle   LoginThrottle
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Throttle LoginThrottle
}

// UserInput describes an account created by an administrator.
type UserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// UserUpdateInput describes administrator edits to an account.
type UserUpdateInput struct {
	Name  string
	Email string
	Role  domain.Role
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		throttle:   deps.Throttle,
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     logger,
	}
}

// Register creates a self-service account with the AUDITOR role.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.createUser(ctx, UserInput{Name: name, Email: email, Password: password, Role: domain.RoleAuditor})
}

// Login verifies credentials. Unknown emails and wrong passwords are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if s.locked(ctx, email) {
		return nil, apperrors.NewTooManyRequests("too many failed login attempts, try again later")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		auth.BurnCompare(password)
		s.recordFailure(ctx, email)
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.recordFailure(ctx, email)
		return nil, errInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.logger.Warn("login throttle reset failed", zap.Error(err))
		}
	}
	return user, nil
}

// Profile returns the signed-in account.
func (s *AuthService) Profile(ctx context.Context, actor domain.Session) (*domain.User, error) {
	if err := auth.Authorize(actor, auth.PermAuthenticated...); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, actor.SubjectID)
	if err != nil {
		return nil, notFound(err, "user", actor.SubjectID)
	}
	return user, nil
}

// UpdateProfile renames the signed-in account.
func (s *AuthService) UpdateProfile(ctx context.Context, actor domain.Session, name string) (*domain.User, error) {
	user, err := s.Profile(ctx, actor)
	if err != nil {
		return nil, err
	}
	user.Name = strings.TrimSpace(name)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns every account.
func (s *AuthService) ListUsers(ctx context.Context, actor domain.Session) ([]domain.User, error) {
	if err := auth.Authorize(actor, auth.PermManageUsers...); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// CreateUser lets an administrator provision an account with any role.
func (s *AuthService) CreateUser(ctx context.Context, actor domain.Session, input UserInput) (*domain.User, error) {
	if err := auth.Authorize(actor, auth.PermManageUsers...); err != nil {
		return nil, err
	}
	return s.createUser(ctx, input)
}

// UpdateUser changes name, email and role of an account.
// Administrators cannot remove their own ADMIN role.
func (s *AuthService) UpdateUser(ctx context.Context, actor domain.Session, id string, input UserUpdateInput) (*domain.User, error) {
	if err := auth.Authorize(actor, auth.PermManageUsers...); err != nil {
		return nil, err
	}
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": string(input.Role)})
	}
	if id == actor.SubjectID && input.Role != domain.RoleAdmin {
		return nil, apperrors.NewConflict("administrators cannot remove their own admin role", nil)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	email := normalizeEmail(input.Email)
	if email != normalizeEmail(user.Email) {
		if err := s.ensureEmailFree(ctx, email); err != nil {
			return nil, err
		}
	}

	user.Name = strings.TrimSpace(input.Name)
	user.Email = email
	user.Role = input.Role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account other than the caller's own.
func (s *AuthService) DeleteUser(ctx context.Context, actor domain.Session, id string) error {
	if err := auth.Authorize(actor, auth.PermManageUsers...); err != nil {
		return err
	}
	if id == actor.SubjectID {
		return apperrors.NewConflict("administrators cannot delete their own account", nil)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return notFound(err, "user", id)
	}
	return nil
}

func (s *AuthService) createUser(ctx context.Context, input UserInput) (*domain.User, error) {
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": string(input.Role)})
	}
	email := normalizeEmail(input.Email)
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return apperrors.NewConflict("email already registered", map[string]any{"email": email})
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return nil
}

// locked fails open: a throttle outage must not block sign-in.
func (s *AuthService) locked(ctx context.Context, email string) bool {
	if s.throttle == nil {
		return false
	}
	locked, err := s.throttle.Locked(ctx, email)
	if err != nil {
		s.logger.Warn("login throttle unavailable", zap.Error(err))
		return false
	}
	return locked
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	count, err := s.throttle.RecordFailure(ctx, email)
	if err != nil {
		s.logger.Warn("login throttle unavailable", zap.Error(err))
		return
	}
	s.logger.Debug("failed login", zap.Int64("attempts", count))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
