package user

import (
	"context"
	"log/slog"

	"github.com/unilearn/lms-backend/internal"
	"github.com/unilearn/lms-backend/internal/auth"
	accountModel "github.com/unilearn/lms-backend/internal/core/datamodel/account"
	"github.com/unilearn/lms-backend/internal/core/events"
)

// Service creates accounts with their role profiles and serves the admin
// listing/stats views. Creation is transactional down in the repository;
// the credential mail is published after commit and never affects the
// outcome.
type Service struct {
	repo       Repository
	loginIDs   *auth.LoginIDGenerator
	bcryptCost int
	bus        *events.EventBus
	logger     *slog.Logger
}

func NewService(repo Repository, loginIDs *auth.LoginIDGenerator, bcryptCost int, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		loginIDs:   loginIDs,
		bcryptCost: bcryptCost,
		bus:        bus,
		logger:     logger,
	}
}

// CreateStudent persists a student account. forcedDeptID is non-nil when a
// department admin acts: their own unit always wins over whatever unit the
// request body carried.
func (s *Service) CreateStudent(dto CreateStudentDTO, forcedDeptID *int64) (*CreatedUser, error) {
	if forcedDeptID != nil {
		dto.DeptID = *forcedDeptID
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	created, err := s.repo.CreateStudent(hash, s.loginIDs, &accountModel.StudentProfile{
		FullName:         dto.FullName,
		Program:          dto.Program,
		Branch:           dto.Branch,
		EnrollmentNumber: dto.EnrollmentNumber,
		Section:          dto.Section,
		Email:            dto.Email,
		Phone:            dto.Phone,
		Address:          dto.Address,
		DeptID:           dto.DeptID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("student created", "user_id", created.UserID, "dept_id", dto.DeptID)
	s.publishCredentials(created.LoginID, dto.Password, dto.FullName, dto.Email, auth.RoleStudent)
	return created, nil
}

func (s *Service) CreateInstructor(dto CreateInstructorDTO, forcedDeptID *int64) (*CreatedUser, error) {
	if forcedDeptID != nil {
		dto.DeptID = *forcedDeptID
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	created, err := s.repo.CreateInstructor(hash, s.loginIDs, &accountModel.InstructorProfile{
		Name:          dto.Name,
		ContactEmail:  dto.ContactEmail,
		OfficeAddress: dto.OfficeAddress,
		Website:       dto.Website,
		Bio:           dto.Bio,
		DeptID:        dto.DeptID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("instructor created", "user_id", created.UserID, "dept_id", dto.DeptID)
	s.publishCredentials(created.LoginID, dto.Password, dto.Name, dto.ContactEmail, auth.RoleInstructor)
	return created, nil
}

// CreateDeptAdmin is main-admin only; the unit comes from the request.
func (s *Service) CreateDeptAdmin(dto CreateDeptAdminDTO) (*CreatedUser, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	created, err := s.repo.CreateDeptAdmin(hash, s.loginIDs, &accountModel.DeptAdminProfile{
		DeptID: dto.DeptID,
		Name:   dto.Name,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("dept admin created", "user_id", created.UserID, "dept_id", dto.DeptID)
	return created, nil
}

func (s *Service) ListUsers() ([]UserSummary, error) {
	users, err := s.repo.ListUsers()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return users, nil
}

func (s *Service) DashboardStats() (*DashboardStats, error) {
	stats, err := s.repo.Stats()
	if err != nil {
		s.logger.Error("failed to fetch dashboard stats", "error", err)
		return nil, internal.NewInternalError("failed to fetch stats", err)
	}
	return stats, nil
}

func (s *Service) UpdateInstructorProfile(userID int64, dto UpdateInstructorProfileDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	fields := make(map[string]interface{})
	if dto.ContactEmail != nil {
		fields["contact_email"] = *dto.ContactEmail
	}
	if dto.OfficeAddress != nil {
		fields["office_address"] = *dto.OfficeAddress
	}
	if dto.Website != nil {
		fields["website"] = *dto.Website
	}
	if dto.Bio != nil {
		fields["bio"] = *dto.Bio
	}

	if err := s.repo.UpdateInstructorProfile(userID, fields); err != nil {
		return internal.NewInternalError("failed to update instructor profile", err)
	}
	return nil
}

func (s *Service) publishCredentials(loginID, password, name, email string, role auth.Role) {
	if s.bus == nil {
		return
	}
	event := events.NewUserCreatedEvent(loginID, password, name, email, string(role))
	if err := s.bus.Publish(context.Background(), event); err != nil {
		s.logger.Error("failed to publish user created event", "error", err, "login_id", loginID)
	}
}
