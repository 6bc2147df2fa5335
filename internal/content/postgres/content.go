package postgres

import (
	"gorm.io/gorm"

	"github.com/unilearn/lms-backend/internal"
	"github.com/unilearn/lms-backend/internal/content"
	"github.com/unilearn/lms-backend/internal/core/common/dbutil"
	contentModel "github.com/unilearn/lms-backend/internal/core/datamodel/content"
	courseModel "github.com/unilearn/lms-backend/internal/core/datamodel/course"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateLesson(lesson *contentModel.Lesson) error {
	if err := r.db.Create(lesson).Error; err != nil {
		if dbutil.IsDuplicateKey(err) {
			return internal.NewConflictError("a lesson with this title already exists in this course", internal.ErrCodeDuplicateResource)
		}
		return err
	}
	return nil
}

func (r *Repository) LessonsByCourse(courseID int64) ([]contentModel.Lesson, error) {
	var lessons []contentModel.Lesson
	err := r.db.Where("course_id = ?", courseID).
		Order("sequence_order ASC").
		Find(&lessons).Error
	if err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *Repository) CreateAnnouncement(ann *contentModel.Announcement) error {
	return r.db.Create(ann).Error
}

func (r *Repository) AnnouncementsByCourse(courseID int64) ([]content.AnnouncementView, error) {
	var rows []content.AnnouncementView
	err := r.db.Raw(`
		SELECT a.title, a.body, a.link, a.file_path, a.posted_at,
		       COALESCE(i.name, '') AS instructor_name
		FROM announcements a
		LEFT JOIN instructors i ON i.user_id = a.instructor_id
		WHERE a.course_id = ?
		ORDER BY a.posted_at DESC
	`, courseID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
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
