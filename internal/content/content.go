package content

import (
	"time"

	contentModel "github.com/unilearn/lms-backend/internal/core/datamodel/content"
)

// AnnouncementView is the student-facing feed row: announcement plus the
// posting instructor's name.
type AnnouncementView struct {
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	Link           *string   `json:"link,omitempty"`
	FilePath       *string   `json:"file_path,omitempty"`
	PostedAt       time.Time `json:"posted_at"`
	InstructorName string    `json:"instructor_name"`
}

// Repository persists lessons and announcements and answers the two
// course-link questions that gate every content operation.
type Repository interface {
	CreateLesson(lesson *contentModel.Lesson) error
	LessonsByCourse(courseID int64) ([]contentModel.Lesson, error)
	CreateAnnouncement(ann *contentModel.Announcement) error
	AnnouncementsByCourse(courseID int64) ([]AnnouncementView, error)

	IsAssigned(instructorID, courseID int64) (bool, error)
	IsEnrolled(studentID, courseID int64) (bool, error)
}
