package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
)

type principalRepository struct {
	store *Store
	inTx  bool
}

func (r *principalRepository) Create(_ context.Context, principal *domain.Principal) error {
	defer r.store.lock(r.inTx)()
	st := r.store.state

	if _, ok := st.principals[principal.Username]; ok {
		return fmt.Errorf("%w: app_users_pkey", repository.ErrDuplicate)
	}
	stored := *principal
	stored.Roles = slices.Clone(principal.Roles)
	st.principals[principal.Username] = stored
	return nil
}

func (r *principalRepository) GetByUsername(_ context.Context, username string) (*domain.Principal, error) {
	defer r.store.lock(r.inTx)()

	principal, ok := r.store.state.principals[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	principal.Roles = slices.Clone(principal.Roles)
	return &principal, nil
}
