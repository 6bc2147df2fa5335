package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/unilearn/lms-backend/internal"
	"github.com/unilearn/lms-backend/internal/core/common/dbutil"
	accountModel "github.com/unilearn/lms-backend/internal/core/datamodel/account"
	courseModel "github.com/unilearn/lms-backend/internal/core/datamodel/course"
	"github.com/unilearn/lms-backend/internal/course"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(c *courseModel.Course) error {
	if err := r.db.Create(c).Error; err != nil {
		if dbutil.IsDuplicateKey(err) {
			return internal.NewConflictError("a course with this code already exists", internal.ErrCodeCourseCodeExists)
		}
		return err
	}
	return nil
}

func (r *Repository) ListAdmin() ([]course.AdminCourse, error) {
	var rows []course.AdminCourse
	err := r.db.Raw(`
		SELECT c.*, COALESCE(d.name, '') AS dept_name
		FROM courses c
		LEFT JOIN departments d ON d.id = c.dept_id
		ORDER BY c.created_at DESC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) GetCourse(courseID int64) (*courseModel.Course, error) {
	var c courseModel.Course
	if err := r.db.First(&c, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrCourseNotFound
		}
		return nil, err
	}
	return &c, nil
}

// profileRef joins the account to its role profile; an account without
// the expected profile is a role mismatch, not a missing user.
func (r *Repository) profileRef(loginID, profileTable string, notAProfile *internal.AppError) (*course.ProfileRef, error) {
	var account accountModel.Account
	if err := r.db.Where("login_id = ?", loginID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}

	var ref course.ProfileRef
	err := r.db.Table(profileTable).
		Select("user_id, dept_id").
		Where("user_id = ?", account.ID).
		Scan(&ref).Error
	if err != nil {
		return nil, err
	}
	if ref.UserID == 0 {
		return nil, notAProfile
	}
	return &ref, nil
}

func (r *Repository) StudentRefByLoginID(loginID string) (*course.ProfileRef, error) {
	return r.profileRef(loginID, "students",
		internal.NewForbiddenError("user is not a valid student profile", internal.ErrCodeNotStudentProfile))
}

func (r *Repository) InstructorRefByLoginID(loginID string) (*course.ProfileRef, error) {
	return r.profileRef(loginID, "instructors",
		internal.NewForbiddenError("user is not a valid instructor profile", internal.ErrCodeNotInstructorProfile))
}

func (r *Repository) Enroll(studentID, courseID int64) error {
	err := r.db.Create(&courseModel.Enrollment{StudentID: studentID, CourseID: courseID}).Error
	if err != nil {
		if dbutil.IsDuplicateKey(err) {
			return internal.ErrAlreadyEnrolled
		}
		return err
	}
	return nil
}

func (r *Repository) Assign(instructorID, courseID int64) error {
	err := r.db.Create(&courseModel.Assignment{InstructorID: instructorID, CourseID: courseID}).Error
	if err != nil {
		if dbutil.IsDuplicateKey(err) {
			return internal.ErrAlreadyAssigned
		}
		return err
	}
	return nil
}

func (r *Repository) ListForInstructor(instructorID int64) ([]course.InstructorCourse, error) {
	var rows []course.InstructorCourse
	err := r.db.Raw(`
		SELECT c.id, c.title, c.description, c.course_code,
		       COUNT(ce.student_id) AS enrolled_students_count
		FROM courses c
		JOIN course_assignments ca ON ca.course_id = c.id
		LEFT JOIN course_enrollments ce ON ce.course_id = c.id
		WHERE ca.instructor_id = ?
		GROUP BY c.id, c.title, c.description, c.course_code
		ORDER BY c.title
	`, instructorID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) ListForStudent(studentID int64) ([]course.StudentCourse, error) {
	var rows []course.StudentCourse
	err := r.db.Raw(`
		SELECT c.id, c.title, c.description, c.course_code,
		       COALESCE(i.name, '') AS instructor_name
		FROM courses c
		JOIN course_enrollments ce ON ce.course_id = c.id
		LEFT JOIN course_assignments ca ON ca.course_id = c.id
		LEFT JOIN instructors i ON i.user_id = ca.instructor_id
		WHERE ce.student_id = ?
		ORDER BY c.title
	`, studentID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Details(courseID int64) (*course.CourseDetails, error) {
	var rows []course.CourseDetails
	err := r.db.Raw(`
		SELECT c.title, c.course_code, c.description, c.credits, c.semester, c.program,
		       COALESCE(i.name, '') AS instructor_name,
		       COALESCE(i.contact_email, '') AS instructor_email,
		       COALESCE(i.office_address, '') AS office_address,
		       COALESCE(i.website, '') AS website,
		       COALESCE(i.bio, '') AS bio
		FROM courses c
		LEFT JOIN course_assignments ca ON ca.course_id = c.id
		LEFT JOIN instructors i ON i.user_id = ca.instructor_id
		WHERE c.id = ?
	`, courseID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, internal.ErrCourseNotFound
	}
	return &rows[0], nil
}

func (r *Repository) EnrolledStudents(courseID int64) ([]course.EnrolledStudent, error) {
	var rows []course.EnrolledStudent
	err := r.db.Raw(`
		SELECT s.user_id, s.full_name, s.enrollment_number, s.program, s.section, s.email
		FROM students s
		JOIN course_enrollments ce ON ce.student_id = s.user_id
		WHERE ce.course_id = ?
		ORDER BY s.full_name
	`, courseID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) IsEnrolled(studentID, courseID int64) (bool, error) {
	var n int64
	err := r.db.Model(&courseModel.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repository) IsAssigned(instructorID, courseID int64) (bool, error) {
	var n int64
	err := r.db.Model(&courseModel.Assignment{}).
		Where("instructor_id = ? AND course_id = ?", instructorID, courseID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
