package content

import (
	"log/slog"

	"github.com/unilearn/lms-backend/internal"
	contentModel "github.com/unilearn/lms-backend/internal/core/datamodel/content"
	"github.com/unilearn/lms-backend/internal/filestore"
)

// Service gates all content behind the course links: instructors need the
// teaching assignment, students the enrollment. Both are re-checked on
// every call rather than cached in the token.
type Service struct {
	repo   Repository
	files  filestore.Store
	logger *slog.Logger
}

func NewService(repo Repository, files filestore.Store, logger *slog.Logger) *Service {
	return &Service{repo: repo, files: files, logger: logger}
}

func (s *Service) requireAssignment(instructorID, courseID int64) error {
	assigned, err := s.repo.IsAssigned(instructorID, courseID)
	if err != nil {
		return internal.NewInternalError("failed to verify course assignment", err)
	}
	if !assigned {
		return internal.ErrNotAssignedToCourse
	}
	return nil
}

func (s *Service) requireEnrollment(studentID, courseID int64) error {
	enrolled, err := s.repo.IsEnrolled(studentID, courseID)
	if err != nil {
		return internal.NewInternalError("failed to verify enrollment", err)
	}
	if !enrolled {
		return internal.ErrNotEnrolledInCourse
	}
	return nil
}

// CreateLesson stores a lesson for a course the instructor teaches. An
// optional upload is persisted first; its opaque path lands on the
// lesson row.
func (s *Service) CreateLesson(instructorID int64, dto CreateLessonDTO, upload *Upload) (*contentModel.Lesson, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if err := s.requireAssignment(instructorID, dto.CourseID); err != nil {
		return nil, err
	}

	lesson := &contentModel.Lesson{
		CourseID:      dto.CourseID,
		Title:         dto.Title,
		Content:       dto.Content,
		SequenceOrder: dto.SequenceOrder,
		Category:      dto.Category,
	}
	if dto.ExternalLink != "" {
		lesson.ExternalLink = &dto.ExternalLink
	}

	if upload != nil {
		path, err := s.files.Save(upload.Filename, upload.Reader)
		if err != nil {
			s.logger.Error("failed to store lesson upload", "error", err, "course_id", dto.CourseID)
			return nil, internal.NewInternalError("failed to store uploaded file", err)
		}
		lesson.FilePath = &path
	}

	if err := s.repo.CreateLesson(lesson); err != nil {
		return nil, err
	}

	s.logger.Info("lesson created", "lesson_id", lesson.ID, "course_id", lesson.CourseID)
	return lesson, nil
}

// LessonsForInstructor lists a course's lessons for its instructor.
func (s *Service) LessonsForInstructor(courseID, instructorID int64) ([]contentModel.Lesson, error) {
	if err := s.requireAssignment(instructorID, courseID); err != nil {
		return nil, err
	}
	return s.lessons(courseID)
}

// LessonsForStudent lists a course's lessons for an enrolled student.
func (s *Service) LessonsForStudent(courseID, studentID int64) ([]contentModel.Lesson, error) {
	if err := s.requireEnrollment(studentID, courseID); err != nil {
		return nil, err
	}
	return s.lessons(courseID)
}

func (s *Service) lessons(courseID int64) ([]contentModel.Lesson, error) {
	lessons, err := s.repo.LessonsByCourse(courseID)
	if err != nil {
		s.logger.Error("failed to list lessons", "error", err, "course_id", courseID)
		return nil, internal.NewInternalError("failed to list lessons", err)
	}
	return lessons, nil
}

// CreateAnnouncement posts to a course the instructor teaches. Like
// lessons, an optional upload is persisted first and referenced by its
// opaque path.
func (s *Service) CreateAnnouncement(instructorID int64, dto CreateAnnouncementDTO, upload *Upload) (*contentModel.Announcement, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if err := s.requireAssignment(instructorID, dto.CourseID); err != nil {
		return nil, err
	}

	ann := &contentModel.Announcement{
		CourseID:     dto.CourseID,
		InstructorID: instructorID,
		Title:        dto.Title,
		Body:         dto.Body,
	}
	if dto.Link != "" {
		ann.Link = &dto.Link
	}

	if upload != nil {
		path, err := s.files.Save(upload.Filename, upload.Reader)
		if err != nil {
			s.logger.Error("failed to store announcement upload", "error", err, "course_id", dto.CourseID)
			return nil, internal.NewInternalError("failed to store uploaded file", err)
		}
		ann.FilePath = &path
	}

	if err := s.repo.CreateAnnouncement(ann); err != nil {
		return nil, err
	}

	s.logger.Info("announcement posted", "announcement_id", ann.ID, "course_id", ann.CourseID)
	return ann, nil
}

// AnnouncementsForStudent lists a course's feed for an enrolled student.
func (s *Service) AnnouncementsForStudent(courseID, studentID int64) ([]AnnouncementView, error) {
	if err := s.requireEnrollment(studentID, courseID); err != nil {
		return nil, err
	}

	anns, err := s.repo.AnnouncementsByCourse(courseID)
	if err != nil {
		s.logger.Error("failed to list announcements", "error", err, "course_id", courseID)
		return nil, internal.NewInternalError("failed to list announcements", err)
	}
	return anns, nil
}
