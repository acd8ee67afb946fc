package repository

import (
	"context"

	"github.com/spec-kit/employee-service/internal/domain"
)

// DepartmentRepository manages department persistence.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	Update(ctx context.Context, dept *domain.Department) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	GetByName(ctx context.Context, name string) (*domain.Department, error)
	List(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Department], error)
}

var departmentSortColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

type departmentRepository struct {
	db DBTX
}

// NewDepartmentRepository builds the repository.
func NewDepartmentRepository(db DBTX) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	const query = `
        INSERT INTO departments (name)
        VALUES ($1)
        RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, dept.Name).Scan(&dept.ID, &dept.CreatedAt, &dept.UpdatedAt)
	return translateError(err)
}

func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	const query = `
        UPDATE departments SET name=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query, dept.Name, dept.ID).Scan(&dept.CreatedAt, &dept.UpdatedAt)
	return translateError(err)
}

func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id=$1`, id)
	if err != nil {
		return translateError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	const query = `
        SELECT id, name, created_at, updated_at
        FROM departments WHERE id=$1`
	var dept domain.Department
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&dept.ID,
		&dept.Name,
		&dept.CreatedAt,
		&dept.UpdatedAt,
	); err != nil {
		return nil, translateError(err)
	}
	return &dept, nil
}

func (r *departmentRepository) GetByName(ctx context.Context, name string) (*domain.Department, error) {
	const query = `
        SELECT id, name, created_at, updated_at
        FROM departments WHERE name=$1`
	var dept domain.Department
	if err := r.db.QueryRow(ctx, query, name).Scan(
		&dept.ID,
		&dept.Name,
		&dept.CreatedAt,
		&dept.UpdatedAt,
	); err != nil {
		return nil, translateError(err)
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Department], error) {
	page := domain.Page[domain.Department]{Number: req.Page, Size: req.Size}

	order, err := orderBy(departmentSortColumns, "id", req.Sort)
	if err != nil {
		return page, err
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM departments`).Scan(&page.Total); err != nil {
		return page, translateError(err)
	}

	query := `
        SELECT id, name, created_at, updated_at
        FROM departments` + order + ` LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, req.Size, req.Offset())
	if err != nil {
		return page, translateError(err)
	}
	defer rows.Close()

	page.Items = []domain.Department{}
	for rows.Next() {
		var dept domain.Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.CreatedAt, &dept.UpdatedAt); err != nil {
			return page, err
		}
		page.Items = append(page.Items, dept)
	}
	return page, rows.Err()
}
