package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/emsdev/ems-service/internal/auth"
	"github.com/emsdev/ems-service/internal/cache"
	"github.com/emsdev/ems-service/internal/config"
	"github.com/emsdev/ems-service/internal/domain"
	"github.com/emsdev/ems-service/internal/repository"
	apperrors "github.com/emsdev/ems-service/pkg/util/errorutil"
)

// RegisterInput carries a sign-up request. A company name makes the user its CEO.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Company  string
}

// Session is returned after login or registration.
type Session struct {
	Token auth.IssuedToken
	User  *domain.User
}

// AuthService coordinates registration, login and logout flows.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
	hasher   *auth.PasswordHasher
	revoked  cache.RevocationList
	logger   *zap.Logger
}

// AuthDependencies encapsulates requirements for auth service.
type AuthDependencies struct {
	UserRepo     repository.UserRepository
	TokenManager *auth.TokenManager
	Revocations  cache.RevocationList
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies, logger *zap.Logger) *AuthService {
	tokenMgr := deps.TokenManager
	if tokenMgr == nil {
		tokenMgr = auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	}
	revoked := deps.Revocations
	if revoked == nil {
		revoked = cache.NopRevocationList{}
	}
	return &AuthService{
		users:    deps.UserRepo,
		tokenMgr: tokenMgr,
		hasher:   auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		revoked:  revoked,
		logger:   logger,
	}
}

// Register creates a company and its first user, then signs them in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !apperrors.IsNotFound(err) {
		return nil, apperrors.MapError(err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	name := strings.TrimSpace(in.Name)
	role := domain.RoleUser
	companyName := strings.TrimSpace(in.Company)
	if companyName != "" {
		role = domain.RoleCEO
	} else {
		companyName = name + "'s workspace"
	}

	company := &domain.Company{Name: companyName, Email: email}
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.CreateWithCompany(ctx, company, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("company_id", company.ID), zap.String("role", string(role)))
	return s.issue(user)
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return s.issue(user)
}

// Me returns the current user.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err, "user")
	}
	return user, nil
}

// Logout revokes the token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := s.revoked.Revoke(ctx, claims.ID, s.tokenMgr.Remaining(claims)); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Navigation returns the sidebar for role.
func (s *AuthService) Navigation(role domain.Role) []auth.NavItem {
	return auth.NavigationFor(role)
}

func (s *AuthService) issue(user *domain.User) (*Session, error) {
	token, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Session{Token: token, User: user}, nil
}
