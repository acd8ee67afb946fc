package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// errInvalidCredentials is the only failure a caller of Login ever sees.
var errInvalidCredentials = apperrors.NewUnauthorized("invalid credentials")

// AuthService coordinates login, logout and principal bootstrap.
type AuthService struct {
	principals  repository.PrincipalRepository
	revocations auth.RevocationStore
	tokenMgr    *auth.TokenManager
	bcryptCost  int
	dummyHash   string
	logger      *zap.Logger
}

// AuthDependencies encapsulates collaborators of the auth service.
type AuthDependencies struct {
	Principals  repository.PrincipalRepository
	Revocations auth.RevocationStore
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Username  string
	Roles     []domain.Role
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies, logger *zap.Logger) (*AuthService, error) {
	// Unknown usernames are checked against this hash so both failure paths cost one bcrypt comparison.
	dummy, err := auth.HashPassword("dummy-password-for-timing", cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	return &AuthService{
		principals:  deps.Principals,
		revocations: deps.Revocations,
		tokenMgr:    auth.NewTokenManager(cfg.JWTSecret, cfg.Issuer, cfg.AccessTokenTTL()),
		bcryptCost:  cfg.BcryptCost,
		dummyHash:   dummy,
		logger:      logger,
	}, nil
}

// Login verifies the credentials and issues a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	principal, err := s.principals.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewInternalError(err)
		}
		_ = auth.ComparePassword(s.dummyHash, password)
		return nil, errInvalidCredentials
	}
	if err := auth.ComparePassword(principal.PasswordHash, password); err != nil {
		return nil, errInvalidCredentials
	}
	if !principal.Enabled {
		return nil, errInvalidCredentials
	}

	token, claims, err := s.tokenMgr.GenerateToken(principal.Username, principal.Roles)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{
		Username:  principal.Username,
		Roles:     principal.Roles,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Logout revokes the caller's token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, principal *auth.Principal) error {
	if principal == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if s.revocations == nil {
		return nil
	}
	if err := s.revocations.Revoke(ctx, principal.TokenID, principal.ExpiresAt); err != nil {
		return apperrors.NewInternalError(err)
	}
	s.logger.Info("token revoked", zap.String("username", principal.Username))
	return nil
}

// EnsurePrincipals creates every bootstrap user that does not exist yet and
// returns how many were created. Existing accounts are left untouched.
func (s *AuthService) EnsurePrincipals(ctx context.Context, users []config.BootstrapUser) (int, error) {
	created := 0
	for _, u := range users {
		roles := make([]domain.Role, 0, len(u.Roles))
		for _, r := range u.Roles {
			role := domain.Role(r)
			if !role.Valid() {
				return created, fmt.Errorf("user %s: unknown role %q", u.Username, r)
			}
			roles = append(roles, role)
		}

		if _, err := s.principals.GetByUsername(ctx, u.Username); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return created, err
		}

		hash, err := auth.HashPassword(u.Password, s.bcryptCost)
		if err != nil {
			return created, err
		}
		err = s.principals.Create(ctx, &domain.Principal{
			Username:     u.Username,
			PasswordHash: hash,
			Roles:        roles,
			Enabled:      true,
		})
		if errors.Is(err, repository.ErrDuplicate) {
			continue
		}
		if err != nil {
			return created, err
		}
		created++
		s.logger.Info("bootstrap principal created", zap.String("username", u.Username), zap.Strings("roles", u.Roles))
	}
	return created, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
