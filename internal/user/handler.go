package user

import (
	"encoding/json"
	"net/http"

	"github.com/unilearn/lms-backend/internal/auth"
	"github.com/unilearn/lms-backend/internal/transport"
	"github.com/unilearn/lms-backend/pkg/logger"
)

type ServiceAPI interface {
	CreateStudent(dto CreateStudentDTO, forcedDeptID *int64) (*CreatedUser, error)
	CreateInstructor(dto CreateInstructorDTO, forcedDeptID *int64) (*CreatedUser, error)
	CreateDeptAdmin(dto CreateDeptAdminDTO) (*CreatedUser, error)
	ListUsers() ([]UserSummary, error)
	DashboardStats() (*DashboardStats, error)
	UpdateInstructorProfile(userID int64, dto UpdateInstructorProfileDTO) error
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

// deptScope returns the acting admin's forced unit, or nil when a main
// admin acts and the request body decides.
func deptScope(r *http.Request) *int64 {
	if deptID, ok := auth.DeptScopeFromContext(r.Context()); ok {
		return &deptID
	}
	return nil
}

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var dto CreateStudentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateStudent(dto, deptScope(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) CreateInstructor(w http.ResponseWriter, r *http.Request) {
	var dto CreateInstructorDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateInstructor(dto, deptScope(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) CreateDeptAdmin(w http.ResponseWriter, r *http.Request) {
	var dto CreateDeptAdminDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateDeptAdmin(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.DashboardStats()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) UpdateInstructorProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || session == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateInstructorProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.UpdateInstructorProfile(session.UserID, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "profile updated"})
}
