package user

import (
	"github.com/unilearn/lms-backend/internal/auth"
	accountModel "github.com/unilearn/lms-backend/internal/core/datamodel/account"
)

// CreatedUser is returned once after a successful creation; the login id
// is not recoverable later.
type CreatedUser struct {
	UserID  int64  `json:"user_id"`
	LoginID string `json:"login_id"`
}

// UserSummary is the admin listing row: account plus whichever role
// profile supplies the name and department.
type UserSummary struct {
	ID             int64  `json:"id"`
	LoginID        string `json:"login_id"`
	Role           string `json:"role"`
	Name           string `json:"name"`
	DepartmentName string `json:"department_name"`
}

type DashboardStats struct {
	Departments int64 `json:"departments"`
	Users       int64 `json:"users"`
	Courses     int64 `json:"courses"`
}

// Repository persists accounts together with their role profile. Each
// create runs account insert, login-id generation and profile insert in
// one transaction; a profile failure must roll back the account row.
type Repository interface {
	CreateStudent(passwordHash string, gen *auth.LoginIDGenerator, profile *accountModel.StudentProfile) (*CreatedUser, error)
	CreateInstructor(passwordHash string, gen *auth.LoginIDGenerator, profile *accountModel.InstructorProfile) (*CreatedUser, error)
	CreateDeptAdmin(passwordHash string, gen *auth.LoginIDGenerator, profile *accountModel.DeptAdminProfile) (*CreatedUser, error)
	ListUsers() ([]UserSummary, error)
	Stats() (*DashboardStats, error)
	UpdateInstructorProfile(userID int64, fields map[string]interface{}) error
}
