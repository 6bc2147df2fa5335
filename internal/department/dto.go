package department

import (
	departmentModel "github.com/unilearn/lms-backend/internal/core/datamodel/department"
)

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

type CreateDepartmentDTO struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func (d CreateDepartmentDTO) Validate() error {
	if d.Name == "" {
		return ValidationError{Msg: "name is required"}
	}
	if d.Kind != "" && d.Kind != departmentModel.KindDepartment && d.Kind != departmentModel.KindFaculty {
		return ValidationError{Msg: "kind must be Department or Faculty"}
	}
	return nil
}

type AssignAdminDTO struct {
	LoginID string `json:"login_id"`
	DeptID  int64  `json:"dept_id"`
}

func (d AssignAdminDTO) Validate() error {
	if d.LoginID == "" {
		return ValidationError{Msg: "login_id is required"}
	}
	if d.DeptID <= 0 {
		return ValidationError{Msg: "dept_id is required"}
	}
	return nil
}
