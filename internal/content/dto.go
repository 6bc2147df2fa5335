package content

import "io"

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// Upload is an optional attachment carried alongside a create request.
type Upload struct {
	Filename string
	Reader   io.Reader
}

type CreateLessonDTO struct {
	CourseID      int64  `json:"course_id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	SequenceOrder int    `json:"sequence_order"`
	Category      string `json:"category"`
	ExternalLink  string `json:"external_link"`
}

func (d CreateLessonDTO) Validate() error {
	if d.CourseID <= 0 {
		return ValidationError{Msg: "course_id is required"}
	}
	if d.Title == "" {
		return ValidationError{Msg: "title is required"}
	}
	if d.SequenceOrder < 0 {
		return ValidationError{Msg: "sequence_order must not be negative"}
	}
	return nil
}

type CreateAnnouncementDTO struct {
	CourseID int64  `json:"course_id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Link     string `json:"link"`
}

func (d CreateAnnouncementDTO) Validate() error {
	if d.CourseID <= 0 {
		return ValidationError{Msg: "course_id is required"}
	}
	if d.Title == "" {
		return ValidationError{Msg: "title is required"}
	}
	if d.Body == "" {
		return ValidationError{Msg: "body is required"}
	}
	return nil
}
