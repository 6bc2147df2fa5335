package content

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"

	"github.com/unilearn/lms-backend/internal/auth"
	contentModel "github.com/unilearn/lms-backend/internal/core/datamodel/content"
	"github.com/unilearn/lms-backend/internal/transport"
	"github.com/unilearn/lms-backend/pkg/logger"
)

type ServiceAPI interface {
	CreateLesson(instructorID int64, dto CreateLessonDTO, upload *Upload) (*contentModel.Lesson, error)
	LessonsForInstructor(courseID, instructorID int64) ([]contentModel.Lesson, error)
	LessonsForStudent(courseID, studentID int64) ([]contentModel.Lesson, error)
	CreateAnnouncement(instructorID int64, dto CreateAnnouncementDTO, upload *Upload) (*contentModel.Announcement, error)
	AnnouncementsForStudent(courseID, studentID int64) ([]AnnouncementView, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

const maxMultipartMemory = 10 << 20

func courseIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "courseId"), 10, 64)
	return id, err == nil && id > 0
}

// CreateLesson accepts JSON, or multipart/form-data when an attachment
// rides along under the "file" field.
func (h *Handler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || session == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateLessonDTO
	var upload *Upload

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid multipart body")
			return
		}

		courseID, _ := strconv.ParseInt(r.FormValue("course_id"), 10, 64)
		seq, _ := strconv.Atoi(r.FormValue("sequence_order"))
		dto = CreateLessonDTO{
			CourseID:      courseID,
			Title:         r.FormValue("title"),
			Content:       r.FormValue("content"),
			SequenceOrder: seq,
			Category:      r.FormValue("category"),
			ExternalLink:  r.FormValue("external_link"),
		}

		if file, header, err := r.FormFile("file"); err == nil {
			defer file.Close()
			upload = &Upload{Filename: header.Filename, Reader: file}
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	lesson, err := h.Service.CreateLesson(session.UserID, dto, upload)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, lesson)
}

func (h *Handler) InstructorLessons(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || session == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	courseID, ok := courseIDParam(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	lessons, err := h.Service.LessonsForInstructor(courseID, session.UserID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, lessons)
}

func (h *Handler) StudentLessons(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || session == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	courseID, ok := courseIDParam(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	lessons, err := h.Service.LessonsForStudent(courseID, session.UserID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, lessons)
}

func (h *Handler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || session == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateAnnouncementDTO
	var upload *Upload

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid multipart body")
			return
		}

		courseID, _ := strconv.ParseInt(r.FormValue("course_id"), 10, 64)
		dto = CreateAnnouncementDTO{
			CourseID: courseID,
			Title:    r.FormValue("title"),
			Body:     r.FormValue("body"),
			Link:     r.FormValue("link"),
		}

		if file, header, err := r.FormFile("file"); err == nil {
			defer file.Close()
			upload = &Upload{Filename: header.Filename, Reader: file}
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	ann, err := h.Service.CreateAnnouncement(session.UserID, dto, upload)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, ann)
}

func (h *Handler) StudentAnnouncements(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || session == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	courseID, ok := courseIDParam(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	anns, err := h.Service.AnnouncementsForStudent(courseID, session.UserID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, anns)
}
