package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-service/internal/domain"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(pgx.ErrNoRows), ErrNotFound)

	unique := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "departments_name_key"}
	assert.ErrorIs(t, translateError(fmt.Errorf("insert: %w", unique)), ErrDuplicate)

	fk := &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "employees_department_id_fkey"}
	assert.ErrorIs(t, translateError(fk), ErrReferenced)

	other := errors.New("connection reset")
	assert.Equal(t, other, translateError(other))
}

func TestOrderBy(t *testing.T) {
	clause, err := orderBy(employeeSortColumns, "e.id", domain.Sort{Field: "lastName", Direction: domain.SortDesc})
	require.NoError(t, err)
	assert.Equal(t, " ORDER BY e.last_name DESC, e.id DESC", clause)

	clause, err = orderBy(departmentSortColumns, "id", domain.Sort{Field: "id", Direction: domain.SortAsc})
	require.NoError(t, err)
	assert.Equal(t, " ORDER BY id ASC", clause)

	_, err = orderBy(departmentSortColumns, "id", domain.Sort{Field: "name; DROP TABLE departments"})
	assert.ErrorIs(t, err, ErrInvalidSort)
}
