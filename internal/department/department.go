package department

import (
	departmentModel "github.com/unilearn/lms-backend/internal/core/datamodel/department"
)

// Repository persists organizational units and the admin-to-unit link.
type Repository interface {
	Create(dept *departmentModel.Department) error
	List() ([]departmentModel.Department, error)
	// AssignAdmin points the department-admin account identified by
	// loginID at deptID. The account must exist with the admin role.
	AssignAdmin(loginID string, deptID int64) error
}
