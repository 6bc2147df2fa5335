package course

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// CreateCourseDTO carries the catalog fields. DeptID is optional for the
// main admin and always overridden for department admins.
type CreateCourseDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CourseCode  string `json:"course_code"`
	Credits     int    `json:"credits"`
	Semester    string `json:"semester"`
	Program     string `json:"program"`
	CourseType  string `json:"course_type"`
	DeptID      *int64 `json:"dept_id,omitempty"`
}

func (d CreateCourseDTO) Validate() error {
	if d.Title == "" {
		return ValidationError{Msg: "title is required"}
	}
	if d.CourseCode == "" {
		return ValidationError{Msg: "course_code is required"}
	}
	return nil
}

type EnrollStudentDTO struct {
	StudentLoginID string `json:"student_login_id"`
	CourseID       int64  `json:"course_id"`
}

func (d EnrollStudentDTO) Validate() error {
	if d.StudentLoginID == "" {
		return ValidationError{Msg: "student_login_id is required"}
	}
	if d.CourseID <= 0 {
		return ValidationError{Msg: "course_id is required"}
	}
	return nil
}

type AssignInstructorDTO struct {
	InstructorLoginID string `json:"instructor_login_id"`
	CourseID          int64  `json:"course_id"`
}

func (d AssignInstructorDTO) Validate() error {
	if d.InstructorLoginID == "" {
		return ValidationError{Msg: "instructor_login_id is required"}
	}
	if d.CourseID <= 0 {
		return ValidationError{Msg: "course_id is required"}
	}
	return nil
}
