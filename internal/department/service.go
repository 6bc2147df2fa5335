package department

import (
	"log/slog"

	"github.com/unilearn/lms-backend/internal"
	departmentModel "github.com/unilearn/lms-backend/internal/core/datamodel/department"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(dto CreateDepartmentDTO) (*departmentModel.Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	kind := dto.Kind
	if kind == "" {
		kind = departmentModel.KindDepartment
	}

	dept := &departmentModel.Department{Name: dto.Name, Kind: kind}
	if err := s.repo.Create(dept); err != nil {
		return nil, err
	}

	s.logger.Info("department created", "dept_id", dept.ID, "name", dept.Name, "kind", dept.Kind)
	return dept, nil
}

func (s *Service) List() ([]departmentModel.Department, error) {
	depts, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, internal.NewInternalError("failed to list departments", err)
	}
	return depts, nil
}

// AssignAdmin re-points an existing department-admin account at a unit.
func (s *Service) AssignAdmin(dto AssignAdminDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if err := s.repo.AssignAdmin(dto.LoginID, dto.DeptID); err != nil {
		return err
	}

	s.logger.Info("department admin assigned", "login_id", dto.LoginID, "dept_id", dto.DeptID)
	return nil
}
