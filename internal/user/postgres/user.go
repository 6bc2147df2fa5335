package postgres

import (
	"gorm.io/gorm"

	"github.com/unilearn/lms-backend/internal"
	"github.com/unilearn/lms-backend/internal/auth"
	"github.com/unilearn/lms-backend/internal/core/common/dbutil"
	accountModel "github.com/unilearn/lms-backend/internal/core/datamodel/account"
	courseModel "github.com/unilearn/lms-backend/internal/core/datamodel/course"
	departmentModel "github.com/unilearn/lms-backend/internal/core/datamodel/department"
	"github.com/unilearn/lms-backend/internal/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// createAccount inserts the login row inside tx with a freshly generated
// id. Uniqueness is checked against the same transaction, so the profile
// insert that follows either commits with the account or rolls it back.
func createAccount(tx *gorm.DB, passwordHash string, gen *auth.LoginIDGenerator, role auth.Role) (*accountModel.Account, error) {
	loginID, err := gen.Generate(func(candidate string) (bool, error) {
		var n int64
		if err := tx.Model(&accountModel.Account{}).
			Where("login_id = ?", candidate).
			Count(&n).Error; err != nil {
			return false, err
		}
		return n > 0, nil
	})
	if err != nil {
		return nil, err
	}

	row := &accountModel.Account{
		LoginID:      loginID,
		PasswordHash: passwordHash,
		Role:         string(role),
	}
	if err := tx.Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) CreateStudent(passwordHash string, gen *auth.LoginIDGenerator, profile *accountModel.StudentProfile) (*user.CreatedUser, error) {
	var created *user.CreatedUser

	err := r.db.Transaction(func(tx *gorm.DB) error {
		account, err := createAccount(tx, passwordHash, gen, auth.RoleStudent)
		if err != nil {
			return err
		}

		profile.UserID = account.ID
		if err := tx.Create(profile).Error; err != nil {
			return err
		}

		created = &user.CreatedUser{UserID: account.ID, LoginID: account.LoginID}
		return nil
	})
	if err != nil {
		if dbutil.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("student profile conflicts with an existing record", internal.ErrCodeDuplicateResource)
		}
		return nil, err
	}
	return created, nil
}

func (r *Repository) CreateInstructor(passwordHash string, gen *auth.LoginIDGenerator, profile *accountModel.InstructorProfile) (*user.CreatedUser, error) {
	var created *user.CreatedUser

	err := r.db.Transaction(func(tx *gorm.DB) error {
		account, err := createAccount(tx, passwordHash, gen, auth.RoleInstructor)
		if err != nil {
			return err
		}

		profile.UserID = account.ID
		if err := tx.Create(profile).Error; err != nil {
			return err
		}

		created = &user.CreatedUser{UserID: account.ID, LoginID: account.LoginID}
		return nil
	})
	if err != nil {
		if dbutil.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("instructor profile conflicts with an existing record", internal.ErrCodeDuplicateResource)
		}
		return nil, err
	}
	return created, nil
}

func (r *Repository) CreateDeptAdmin(passwordHash string, gen *auth.LoginIDGenerator, profile *accountModel.DeptAdminProfile) (*user.CreatedUser, error) {
	var created *user.CreatedUser

	err := r.db.Transaction(func(tx *gorm.DB) error {
		account, err := createAccount(tx, passwordHash, gen, auth.RoleDeptAdmin)
		if err != nil {
			return err
		}

		profile.UserID = account.ID
		if err := tx.Create(profile).Error; err != nil {
			return err
		}

		created = &user.CreatedUser{UserID: account.ID, LoginID: account.LoginID}
		return nil
	})
	if err != nil {
		if dbutil.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("department admin profile conflicts with an existing record", internal.ErrCodeDuplicateResource)
		}
		return nil, err
	}
	return created, nil
}

// ListUsers joins each account against the three profile tables; whichever
// one matches supplies the name and unit. The main admin is an operator
// account and stays out of the listing.
func (r *Repository) ListUsers() ([]user.UserSummary, error) {
	var rows []user.UserSummary

	err := r.db.Raw(`
		SELECT u.id,
		       u.login_id,
		       u.role,
		       COALESCE(s.full_name, i.name, da.name, '') AS name,
		       COALESCE(d.name, '') AS department_name
		FROM users u
		LEFT JOIN students s ON s.user_id = u.id
		LEFT JOIN instructors i ON i.user_id = u.id
		LEFT JOIN department_admins da ON da.user_id = u.id
		LEFT JOIN departments d ON d.id = COALESCE(s.dept_id, i.dept_id, da.dept_id)
		WHERE u.role <> ?
		ORDER BY u.id DESC
	`, string(auth.RoleMainAdmin)).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Stats() (*user.DashboardStats, error) {
	var stats user.DashboardStats

	if err := r.db.Model(&departmentModel.Department{}).Count(&stats.Departments).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&accountModel.Account{}).
		Where("role <> ?", string(auth.RoleMainAdmin)).
		Count(&stats.Users).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&courseModel.Course{}).Count(&stats.Courses).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *Repository) UpdateInstructorProfile(userID int64, fields map[string]interface{}) error {
	result := r.db.Model(&accountModel.InstructorProfile{}).
		Where("user_id = ?", userID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}
