package content

import "time"

type Lesson struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	CourseID      int64     `json:"course_id" gorm:"column:course_id;not null"`
	Title         string    `json:"title" gorm:"column:title;not null"`
	Content       string    `json:"content" gorm:"column:content"`
	SequenceOrder int       `json:"sequence_order" gorm:"column:sequence_order;not null"`
	Category      string    `json:"category" gorm:"column:category"`
	ExternalLink  *string   `json:"external_link,omitempty" gorm:"column:external_link"`
	FilePath      *string   `json:"file_path,omitempty" gorm:"column:file_path"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Lesson) TableName() string {
	return "lessons"
}

type Announcement struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	CourseID     int64     `json:"course_id" gorm:"column:course_id;not null"`
	InstructorID int64     `json:"instructor_id" gorm:"column:instructor_id;not null"`
	Title        string    `json:"title" gorm:"column:title;not null"`
	Body         string    `json:"body" gorm:"column:body;not null"`
	Link         *string   `json:"link,omitempty" gorm:"column:link"`
	FilePath     *string   `json:"file_path,omitempty" gorm:"column:file_path"`
	PostedAt     time.Time `json:"posted_at" gorm:"column:posted_at;default:now()"`
}

func (Announcement) TableName() string {
	return "announcements"
}
