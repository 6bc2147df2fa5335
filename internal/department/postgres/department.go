package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/unilearn/lms-backend/internal"
	"github.com/unilearn/lms-backend/internal/auth"
	"github.com/unilearn/lms-backend/internal/core/common/dbutil"
	accountModel "github.com/unilearn/lms-backend/internal/core/datamodel/account"
	departmentModel "github.com/unilearn/lms-backend/internal/core/datamodel/department"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(dept *departmentModel.Department) error {
	if err := r.db.Create(dept).Error; err != nil {
		if dbutil.IsDuplicateKey(err) {
			return internal.NewConflictError("department already exists", internal.ErrCodeDepartmentExists)
		}
		return err
	}
	return nil
}

func (r *Repository) List() ([]departmentModel.Department, error) {
	var depts []departmentModel.Department
	if err := r.db.Order("name").Find(&depts).Error; err != nil {
		return nil, err
	}
	return depts, nil
}

// AssignAdmin looks up the account by login id, requiring the admin role,
// then moves its profile row to the target unit. An account created
// before any assignment gets a fresh profile row.
func (r *Repository) AssignAdmin(loginID string, deptID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var account accountModel.Account
		err := tx.Where("login_id = ? AND role = ?", loginID, string(auth.RoleDeptAdmin)).
			First(&account).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return internal.NewNotFoundError("user not found or not a department admin", internal.ErrCodeUserNotFound)
			}
			return err
		}

		result := tx.Model(&accountModel.DeptAdminProfile{}).
			Where("user_id = ?", account.ID).
			Update("dept_id", deptID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		return tx.Create(&accountModel.DeptAdminProfile{
			UserID: account.ID,
			DeptID: deptID,
		}).Error
	})
}
