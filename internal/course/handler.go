package course

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/unilearn/lms-backend/internal/auth"
	courseModel "github.com/unilearn/lms-backend/internal/core/datamodel/course"
	"github.com/unilearn/lms-backend/internal/transport"
	"github.com/unilearn/lms-backend/pkg/logger"
)

type ServiceAPI interface {
	Create(dto CreateCourseDTO, forcedDeptID *int64) (*courseModel.Course, error)
	ListAdmin() ([]AdminCourse, error)
	EnrollStudent(dto EnrollStudentDTO, forcedDeptID *int64) error
	AssignInstructor(dto AssignInstructorDTO, forcedDeptID *int64) error
	CoursesForInstructor(instructorID int64) ([]InstructorCourse, error)
	CoursesForStudent(studentID int64) ([]StudentCourse, error)
	Details(courseID, studentID int64) (*CourseDetails, error)
	EnrolledStudents(courseID, instructorID int64) ([]EnrolledStudent, error)
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

func deptScope(r *http.Request) *int64 {
	if deptID, ok := auth.DeptScopeFromContext(r.Context()); ok {
		return &deptID
	}
	return nil
}

func courseIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "courseId"), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateCourseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	course, err := h.Service.Create(dto, deptScope(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, course)
}

func (h *Handler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	courses, err := h.Service.ListAdmin()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, courses)
}

func (h *Handler) EnrollStudent(w http.ResponseWriter, r *http.Request) {
	var dto EnrollStudentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.EnrollStudent(dto, deptScope(r)); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]string{"message": "student enrolled"})
}

func (h *Handler) AssignInstructor(w http.ResponseWriter, r *http.Request) {
	var dto AssignInstructorDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.AssignInstructor(dto, deptScope(r)); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]string{"message": "instructor assigned"})
}

// InstructorCourses lists courses assigned to the calling instructor.
func (h *Handler) InstructorCourses(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || session == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	courses, err := h.Service.CoursesForInstructor(session.UserID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, courses)
}

// StudentCourses lists courses the calling student is enrolled in.
func (h *Handler) StudentCourses(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || session == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	courses, err := h.Service.CoursesForStudent(session.UserID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, courses)
}

func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
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

	details, err := h.Service.Details(courseID, session.UserID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, details)
}

func (h *Handler) EnrolledStudents(w http.ResponseWriter, r *http.Request) {
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

	students, err := h.Service.EnrolledStudents(courseID, session.UserID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, students)
}
