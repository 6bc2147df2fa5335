package user

// ValidationError mirrors the DTO validation shape used across features.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// CreateStudentDTO carries everything needed for a student account plus
// profile. DeptID is honored only when a main admin acts; department
// admins always get their own unit forced in.
type CreateStudentDTO struct {
	Password         string `json:"password"`
	DeptID           int64  `json:"dept_id"`
	FullName         string `json:"full_name"`
	Program          string `json:"program"`
	Branch           string `json:"branch"`
	EnrollmentNumber string `json:"enrollment_number"`
	Section          string `json:"section"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
}

func (d CreateStudentDTO) Validate() error {
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	if d.DeptID <= 0 {
		return ValidationError{Msg: "dept_id is required"}
	}
	if d.FullName == "" {
		return ValidationError{Msg: "full_name is required"}
	}
	return nil
}

type CreateInstructorDTO struct {
	Password      string `json:"password"`
	DeptID        int64  `json:"dept_id"`
	Name          string `json:"name"`
	ContactEmail  string `json:"contact_email"`
	OfficeAddress string `json:"office_address"`
	Website       string `json:"website"`
	Bio           string `json:"bio"`
}

func (d CreateInstructorDTO) Validate() error {
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	if d.DeptID <= 0 {
		return ValidationError{Msg: "dept_id is required"}
	}
	if d.Name == "" {
		return ValidationError{Msg: "name is required"}
	}
	return nil
}

type CreateDeptAdminDTO struct {
	Password string `json:"password"`
	DeptID   int64  `json:"dept_id"`
	Name     string `json:"name"`
}

func (d CreateDeptAdminDTO) Validate() error {
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	if d.DeptID <= 0 {
		return ValidationError{Msg: "dept_id is required"}
	}
	if d.Name == "" {
		return ValidationError{Msg: "name is required"}
	}
	return nil
}

type UpdateInstructorProfileDTO struct {
	ContactEmail  *string `json:"contact_email,omitempty"`
	OfficeAddress *string `json:"office_address,omitempty"`
	Website       *string `json:"website,omitempty"`
	Bio           *string `json:"bio,omitempty"`
}

func (d UpdateInstructorProfileDTO) Validate() error {
	if d.ContactEmail == nil && d.OfficeAddress == nil && d.Website == nil && d.Bio == nil {
		return ValidationError{Msg: "at least one field is required"}
	}
	return nil
}
