package course

import (
	courseModel "github.com/unilearn/lms-backend/internal/core/datamodel/course"
)

// AdminCourse is the catalog row for admins: course plus unit name.
type AdminCourse struct {
	courseModel.Course
	DeptName string `json:"dept_name"`
}

// InstructorCourse is a "my courses" row for instructors.
type InstructorCourse struct {
	ID                    int64  `json:"id"`
	Title                 string `json:"title"`
	Description           string `json:"description"`
	CourseCode            string `json:"course_code"`
	EnrolledStudentsCount int64  `json:"enrolled_students_count"`
}

// StudentCourse is a "my courses" row for students.
type StudentCourse struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	CourseCode     string `json:"course_code"`
	InstructorName string `json:"instructor_name"`
}

// CourseDetails is the enrolled-student view: course metadata plus the
// assigned instructor's public profile.
type CourseDetails struct {
	Title           string `json:"title"`
	CourseCode      string `json:"course_code"`
	Description     string `json:"description"`
	Credits         int    `json:"credits"`
	Semester        string `json:"semester"`
	Program         string `json:"program"`
	InstructorName  string `json:"instructor_name"`
	InstructorEmail string `json:"instructor_email"`
	OfficeAddress   string `json:"office_address"`
	Website         string `json:"website"`
	Bio             string `json:"bio"`
}

// EnrolledStudent is the roster row an instructor sees for a course they
// teach.
type EnrolledStudent struct {
	UserID           int64  `json:"user_id"`
	FullName         string `json:"full_name"`
	EnrollmentNumber string `json:"enrollment_number"`
	Program          string `json:"program"`
	Section          string `json:"section"`
	Email            string `json:"email"`
}

// ProfileRef resolves a login id to the account id plus the unit its
// role profile belongs to.
type ProfileRef struct {
	UserID int64
	DeptID int64
}

type Repository interface {
	Create(course *courseModel.Course) error
	ListAdmin() ([]AdminCourse, error)
	GetCourse(courseID int64) (*courseModel.Course, error)

	// StudentRefByLoginID and InstructorRefByLoginID require the matching
	// role profile; a login id pointing at another role is rejected.
	StudentRefByLoginID(loginID string) (*ProfileRef, error)
	InstructorRefByLoginID(loginID string) (*ProfileRef, error)

	Enroll(studentID, courseID int64) error
	Assign(instructorID, courseID int64) error

	ListForInstructor(instructorID int64) ([]InstructorCourse, error)
	ListForStudent(studentID int64) ([]StudentCourse, error)
	Details(courseID int64) (*CourseDetails, error)
	EnrolledStudents(courseID int64) ([]EnrolledStudent, error)

	IsEnrolled(studentID, courseID int64) (bool, error)
	IsAssigned(instructorID, courseID int64) (bool, error)
}
