package domain

import "time"

// Employee belongs to exactly one Department.
type Employee struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	DepartmentID int64
	Department   *Department
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
