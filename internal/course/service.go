package course

import (
	"log/slog"

	"github.com/unilearn/lms-backend/internal"
	courseModel "github.com/unilearn/lms-backend/internal/core/datamodel/course"
)

// Service owns the course catalog and the two link tables. Every scoped
// operation takes forcedDeptID: nil means the main admin acts and no unit
// boundary applies; non-nil is the acting department admin's unit.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(dto CreateCourseDTO, forcedDeptID *int64) (*courseModel.Course, error) {
	if forcedDeptID != nil {
		dto.DeptID = forcedDeptID
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	course := &courseModel.Course{
		Title:       dto.Title,
		Description: dto.Description,
		CourseCode:  dto.CourseCode,
		Credits:     dto.Credits,
		Semester:    dto.Semester,
		Program:     dto.Program,
		CourseType:  dto.CourseType,
		DeptID:      dto.DeptID,
	}
	if err := s.repo.Create(course); err != nil {
		return nil, err
	}

	s.logger.Info("course created", "course_id", course.ID, "course_code", course.CourseCode)
	return course, nil
}

func (s *Service) ListAdmin() ([]AdminCourse, error) {
	courses, err := s.repo.ListAdmin()
	if err != nil {
		s.logger.Error("failed to list courses", "error", err)
		return nil, internal.NewInternalError("failed to list courses", err)
	}
	return courses, nil
}

// checkCourseScope loads the course and, when a unit is forced, requires
// the course to belong to it. A course without a unit never passes a
// scoped check.
func (s *Service) checkCourseScope(courseID int64, forcedDeptID *int64) (*courseModel.Course, error) {
	course, err := s.repo.GetCourse(courseID)
	if err != nil {
		return nil, err
	}
	if forcedDeptID != nil {
		if course.DeptID == nil || *course.DeptID != *forcedDeptID {
			return nil, internal.ErrCourseOutsideUnit
		}
	}
	return course, nil
}

// EnrollStudent links a student to a course. Under a forced unit both the
// course and the student must belong to it; the two checks fail
// independently with distinct messages.
func (s *Service) EnrollStudent(dto EnrollStudentDTO, forcedDeptID *int64) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	student, err := s.repo.StudentRefByLoginID(dto.StudentLoginID)
	if err != nil {
		return err
	}

	if _, err := s.checkCourseScope(dto.CourseID, forcedDeptID); err != nil {
		return err
	}
	if forcedDeptID != nil && student.DeptID != *forcedDeptID {
		return internal.ErrStudentOutsideUnit
	}

	if err := s.repo.Enroll(student.UserID, dto.CourseID); err != nil {
		return err
	}

	s.logger.Info("student enrolled", "student_id", student.UserID, "course_id", dto.CourseID)
	return nil
}

// AssignInstructor links an instructor to a course. Only the course-unit
// boundary applies; cross-unit instructors are allowed.
func (s *Service) AssignInstructor(dto AssignInstructorDTO, forcedDeptID *int64) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	instructor, err := s.repo.InstructorRefByLoginID(dto.InstructorLoginID)
	if err != nil {
		return err
	}

	if _, err := s.checkCourseScope(dto.CourseID, forcedDeptID); err != nil {
		return err
	}

	if err := s.repo.Assign(instructor.UserID, dto.CourseID); err != nil {
		return err
	}

	s.logger.Info("instructor assigned", "instructor_id", instructor.UserID, "course_id", dto.CourseID)
	return nil
}

func (s *Service) CoursesForInstructor(instructorID int64) ([]InstructorCourse, error) {
	courses, err := s.repo.ListForInstructor(instructorID)
	if err != nil {
		s.logger.Error("failed to list instructor courses", "error", err, "instructor_id", instructorID)
		return nil, internal.NewInternalError("failed to list assigned courses", err)
	}
	return courses, nil
}

func (s *Service) CoursesForStudent(studentID int64) ([]StudentCourse, error) {
	courses, err := s.repo.ListForStudent(studentID)
	if err != nil {
		s.logger.Error("failed to list student courses", "error", err, "student_id", studentID)
		return nil, internal.NewInternalError("failed to list enrolled courses", err)
	}
	return courses, nil
}

// Details returns the course view for an enrolled student. The enrollment
// link is re-verified on every call.
func (s *Service) Details(courseID, studentID int64) (*CourseDetails, error) {
	enrolled, err := s.repo.IsEnrolled(studentID, courseID)
	if err != nil {
		return nil, internal.NewInternalError("failed to verify enrollment", err)
	}
	if !enrolled {
		return nil, internal.ErrNotEnrolledInCourse
	}

	return s.repo.Details(courseID)
}

// EnrolledStudents returns the roster for instructors holding the
// teaching link on the course.
func (s *Service) EnrolledStudents(courseID, instructorID int64) ([]EnrolledStudent, error) {
	assigned, err := s.repo.IsAssigned(instructorID, courseID)
	if err != nil {
		return nil, internal.NewInternalError("failed to verify course assignment", err)
	}
	if !assigned {
		return nil, internal.ErrNotAssignedToCourse
	}

	students, err := s.repo.EnrolledStudents(courseID)
	if err != nil {
		return nil, internal.NewInternalError("failed to list enrolled students", err)
	}
	return students, nil
}
