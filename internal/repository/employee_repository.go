package repository

import (
	"context"

	"github.com/spec-kit/employee-service/internal/domain"
)

// EmployeeRepository handles persistence for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Employee], error)
}

var employeeSortColumns = map[string]string{
	"id":        "e.id",
	"firstName": "e.first_name",
	"lastName":  "e.last_name",
	"email":     "e.email",
}

const employeeSelect = `
        SELECT e.id, e.first_name, e.last_name, e.email, e.department_id, e.created_at, e.updated_at,
               d.id, d.name, d.created_at, d.updated_at
        FROM employees e
        JOIN departments d ON d.id = e.department_id`

type employeeRepository struct {
	db DBTX
}

// NewEmployeeRepository instantiates the repository.
func NewEmployeeRepository(db DBTX) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	const query = `
        INSERT INTO employees (first_name, last_name, email, department_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		emp.DepartmentID,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	return translateError(err)
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	const query = `
        UPDATE employees
        SET first_name=$1, last_name=$2, email=$3, department_id=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		emp.DepartmentID,
		emp.ID,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)
	return translateError(err)
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return translateError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return r.getOne(ctx, employeeSelect+` WHERE e.id=$1`, id)
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.getOne(ctx, employeeSelect+` WHERE e.email=$1`, email)
}

func (r *employeeRepository) getOne(ctx context.Context, query string, arg any) (*domain.Employee, error) {
	emp, err := scanEmployee(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, translateError(err)
	}
	return emp, nil
}

func (r *employeeRepository) List(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Employee], error) {
	page := domain.Page[domain.Employee]{Number: req.Page, Size: req.Size}

	order, err := orderBy(employeeSortColumns, "e.id", req.Sort)
	if err != nil {
		return page, err
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&page.Total); err != nil {
		return page, translateError(err)
	}

	rows, err := r.db.Query(ctx, employeeSelect+order+` LIMIT $1 OFFSET $2`, req.Size, req.Offset())
	if err != nil {
		return page, translateError(err)
	}
	defer rows.Close()

	page.Items = []domain.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return page, err
		}
		page.Items = append(page.Items, *emp)
	}
	return page, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var (
		emp  domain.Employee
		dept domain.Department
	)
	if err := row.Scan(
		&emp.ID,
		&emp.FirstName,
		&emp.LastName,
		&emp.Email,
		&emp.DepartmentID,
		&emp.CreatedAt,
		&emp.UpdatedAt,
		&dept.ID,
		&dept.Name,
		&dept.CreatedAt,
		&dept.UpdatedAt,
	); err != nil {
		return nil, err
	}
	emp.Department = &dept
	return &emp, nil
}
