package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-service/internal/domain"
)

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate value")
	// ErrReferenced is returned when a delete would orphan dependent rows,
	// or an insert points at a missing parent.
	ErrReferenced = errors.New("record is referenced")
	// ErrInvalidSort is returned for sort fields the listing does not expose.
	ErrInvalidSort = errors.New("invalid sort field")
)

// Postgres error codes the repositories translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories bundles the repositories bound to one connection or transaction.
type Repositories struct {
	Departments DepartmentRepository
	Employees   EmployeeRepository
	Principals  PrincipalRepository
}

// Store hands out repositories and runs callbacks in a transaction.
type Store interface {
	Repositories() Repositories
	WithinTx(ctx context.Context, fn func(Repositories) error) error
}

// PostgresStore implements Store over a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore builds the store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Repositories returns repositories running on the pool.
func (s *PostgresStore) Repositories() Repositories {
	return newRepositories(s.pool)
}

// WithinTx begins a transaction, runs fn with repositories bound to it and commits or rolls back.
func (s *PostgresStore) WithinTx(ctx context.Context, fn func(Repositories) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(newRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func newRepositories(db DBTX) Repositories {
	return Repositories{
		Departments: NewDepartmentRepository(db),
		Employees:   NewEmployeeRepository(db),
		Principals:  NewPrincipalRepository(db),
	}
}

// translateError maps driver errors onto the package sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrReferenced, pgErr.ConstraintName)
		}
	}
	return err
}

// orderBy renders an ORDER BY clause from a whitelisted column map.
// The id column breaks ties so paging stays deterministic.
func orderBy(columns map[string]string, idColumn string, sort domain.Sort) (string, error) {
	column, ok := columns[sort.Field]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidSort, sort.Field)
	}
	direction := "ASC"
	if sort.Direction == domain.SortDesc {
		direction = "DESC"
	}
	if column == idColumn {
		return fmt.Sprintf(" ORDER BY %s %s", column, direction), nil
	}
	return fmt.Sprintf(" ORDER BY %s %s, %s %s", column, direction, idColumn, direction), nil
}
