package course

import "time"

type Course struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"column:title;not null"`
	Description string    `json:"description" gorm:"column:description"`
	CourseCode  string    `json:"course_code" gorm:"column:course_code;uniqueIndex;not null"`
	Credits     int       `json:"credits" gorm:"column:credits"`
	Semester    string    `json:"semester" gorm:"column:semester"`
	Program     string    `json:"program" gorm:"column:program"`
	CourseType  string    `json:"course_type" gorm:"column:course_type"`
	DeptID      *int64    `json:"dept_id" gorm:"column:dept_id"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Course) TableName() string {
	return "courses"
}

// Enrollment grants a student read access to course content. The pair is
// unique; re-enrolling surfaces as a duplicate-key conflict.
type Enrollment struct {
	StudentID  int64     `json:"student_id" gorm:"column:student_id;primaryKey"`
	CourseID   int64     `json:"course_id" gorm:"column:course_id;primaryKey"`
	EnrolledAt time.Time `json:"enrolled_at" gorm:"column:enrolled_at;default:now()"`
}

func (Enrollment) TableName() string {
	return "course_enrollments"
}

// Assignment is the teaching link granting an instructor content-management
// rights on a course. Unique pair, insert-only.
type Assignment struct {
	InstructorID int64     `json:"instructor_id" gorm:"column:instructor_id;primaryKey"`
	CourseID     int64     `json:"course_id" gorm:"column:course_id;primaryKey"`
	AssignedAt   time.Time `json:"assigned_at" gorm:"column:assigned_at;default:now()"`
}

func (Assignment) TableName() string {
	return "course_assignments"
}
