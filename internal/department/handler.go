package department

import (
	"encoding/json"
	"net/http"

	departmentModel "github.com/unilearn/lms-backend/internal/core/datamodel/department"
	"github.com/unilearn/lms-backend/internal/transport"
	"github.com/unilearn/lms-backend/pkg/logger"
)

type ServiceAPI interface {
	Create(dto CreateDepartmentDTO) (*departmentModel.Department, error)
	List() ([]departmentModel.Department, error)
	AssignAdmin(dto AssignAdminDTO) error
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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateDepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dept, err := h.Service.Create(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, dept)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	depts, err := h.Service.List()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, depts)
}

func (h *Handler) AssignAdmin(w http.ResponseWriter, r *http.Request) {
	var dto AssignAdminDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.AssignAdmin(dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]string{"message": "admin assigned"})
}
