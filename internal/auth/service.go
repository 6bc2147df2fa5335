package auth

import (
	"errors"
	"log/slog"

	"github.com/unilearn/lms-backend/internal"
)

type RepositoryAPI interface {
	GetAccountByLoginID(loginID string) (*Account, error)
	// DisplayName resolves the human name from the role profile; returns
	// "" (no error) when the profile row is missing.
	DisplayName(userID int64, role Role) (string, error)
	// CreateMainAdmin runs the count pre-check, login-id generation and
	// account insert in one transaction. Returns the generated login id or
	// internal.ErrMainAdminExists.
	CreateMainAdmin(passwordHash string, gen *LoginIDGenerator) (string, error)
	GetPasswordHash(userID int64) (string, error)
	UpdatePassword(userID int64, newHash string) error
	// DeptIDForAdmin returns (deptID, true) when the admin has a unit
	// assignment row, (0, false) when it has none.
	DeptIDForAdmin(userID int64) (int64, bool, error)
}

// Service implements identity, session and unit-scope resolution.
type Service struct {
	repo       RepositoryAPI
	tokens     TokenGeneratorAPI
	loginIDs   *LoginIDGenerator
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, tokens TokenGeneratorAPI, loginIDs *LoginIDGenerator, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		tokens:     tokens,
		loginIDs:   loginIDs,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Authenticate verifies credentials and issues a session token. Unknown
// login id and wrong password produce the same error so the response does
// not leak which one failed.
func (s *Service) Authenticate(dto LoginDTO) (*AuthResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	acct, err := s.repo.GetAccountByLoginID(dto.LoginID)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return nil, internal.ErrInvalidCredentials
		}
		s.logger.Error("account lookup failed", "error", err, "login_id", dto.LoginID)
		return nil, internal.NewInternalError("failed to load account", err)
	}

	if err := VerifyPassword(acct.PasswordHash, dto.Password); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	name := "Administrator"
	if acct.Role != RoleMainAdmin {
		name, err = s.repo.DisplayName(acct.ID, acct.Role)
		if err != nil {
			s.logger.Error("display name lookup failed", "error", err, "user_id", acct.ID)
			return nil, internal.NewInternalError("failed to resolve display name", err)
		}
		if name == "" {
			name = "User"
		}
	}

	session := &Session{
		UserID:  acct.ID,
		LoginID: acct.LoginID,
		Role:    acct.Role,
		Name:    name,
	}

	token, err := s.tokens.GenerateToken(session)
	if err != nil {
		s.logger.Error("token generation failed", "error", err, "user_id", acct.ID)
		return nil, internal.NewInternalError("failed to issue session token", err)
	}

	return &AuthResult{Token: token, User: *session}, nil
}

// RegisterMainAdmin creates the single top-level admin account and returns
// its generated login id. The login id is shown exactly once; it is not
// recoverable afterwards.
func (s *Service) RegisterMainAdmin(dto RegisterAdminDTO) (string, error) {
	if err := dto.Validate(); err != nil {
		return "", internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return "", internal.NewInternalError("failed to hash password", err)
	}

	loginID, err := s.repo.CreateMainAdmin(hash, s.loginIDs)
	if err != nil {
		return "", err
	}

	s.logger.Info("main admin registered", "login_id", loginID)
	return loginID, nil
}

func (s *Service) ValidateSessionToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateToken(tokenString)
}

func (s *Service) ChangePassword(userID int64, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	currentHash, err := s.repo.GetPasswordHash(userID)
	if err != nil {
		return internal.ErrUserNotFound
	}

	if err := VerifyPassword(currentHash, dto.OldPassword); err != nil {
		return internal.ErrInvalidCredentials
	}

	newHash, err := HashPassword(dto.NewPassword, s.bcryptCost)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}

	if err := s.repo.UpdatePassword(userID, newHash); err != nil {
		return internal.NewInternalError("failed to update password", err)
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}

// ResolveUnitScope looks up the unit a department admin owns. Only valid
// for the department-admin role; an admin account without an assignment
// row is unusable and fails Forbidden.
func (s *Service) ResolveUnitScope(session *Session) (int64, error) {
	if session.Role != RoleDeptAdmin {
		return 0, internal.NewForbiddenError("unit scope applies to department admins only", internal.ErrCodeRoleNotAllowed)
	}

	deptID, ok, err := s.repo.DeptIDForAdmin(session.UserID)
	if err != nil {
		return 0, internal.NewInternalError("unit scope lookup failed", err)
	}
	if !ok {
		s.logger.Warn("dept admin has no unit assignment", "user_id", session.UserID)
		return 0, internal.ErrNoUnitAssignment
	}
	return deptID, nil
}
