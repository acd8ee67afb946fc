package repository

import (
	"context"

	"github.com/spec-kit/employee-service/internal/domain"
)

// PrincipalRepository stores login accounts.
type PrincipalRepository interface {
	Create(ctx context.Context, principal *domain.Principal) error
	GetByUsername(ctx context.Context, username string) (*domain.Principal, error)
}

type principalRepository struct {
	db DBTX
}

// NewPrincipalRepository builds the repository.
func NewPrincipalRepository(db DBTX) PrincipalRepository {
	return &principalRepository{db: db}
}

func (r *principalRepository) Create(ctx context.Context, principal *domain.Principal) error {
	const query = `
        INSERT INTO app_users (username, password_hash, roles, enabled)
        VALUES ($1,$2,$3,$4)`
	roles := make([]string, 0, len(principal.Roles))
	for _, role := range principal.Roles {
		roles = append(roles, string(role))
	}
	_, err := r.db.Exec(ctx, query, principal.Username, principal.PasswordHash, roles, principal.Enabled)
	return translateError(err)
}

func (r *principalRepository) GetByUsername(ctx context.Context, username string) (*domain.Principal, error) {
	const query = `
        SELECT username, password_hash, roles, enabled
        FROM app_users WHERE username=$1`

	var (
		principal domain.Principal
		roles     []string
	)
	if err := r.db.QueryRow(ctx, query, username).Scan(
		&principal.Username,
		&principal.PasswordHash,
		&roles,
		&principal.Enabled,
	); err != nil {
		return nil, translateError(err)
	}
	for _, role := range roles {
		principal.Roles = append(principal.Roles, domain.Role(role))
	}
	return &principal, nil
}
