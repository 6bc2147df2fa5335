package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/unilearn/lms-backend/internal"
	"github.com/unilearn/lms-backend/internal/auth"
	accountModel "github.com/unilearn/lms-backend/internal/core/datamodel/account"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetAccountByLoginID(loginID string) (*auth.Account, error) {
	var row accountModel.Account
	if err := r.db.Where("login_id = ?", loginID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}

	role, err := auth.ParseRole(row.Role)
	if err != nil {
		return nil, err
	}

	return &auth.Account{
		ID:           row.ID,
		LoginID:      row.LoginID,
		PasswordHash: row.PasswordHash,
		Role:         role,
	}, nil
}

func (r *Repository) DisplayName(userID int64, role auth.Role) (string, error) {
	var name string
	var err error

	switch role {
	case auth.RoleStudent:
		err = r.db.Model(&accountModel.StudentProfile{}).
			Select("full_name").
			Where("user_id = ?", userID).
			Scan(&name).Error
	case auth.RoleInstructor:
		err = r.db.Model(&accountModel.InstructorProfile{}).
			Select("name").
			Where("user_id = ?", userID).
			Scan(&name).Error
	case auth.RoleDeptAdmin:
		err = r.db.Model(&accountModel.DeptAdminProfile{}).
			Select("name").
			Where("user_id = ?", userID).
			Scan(&name).Error
	default:
		return "", nil
	}

	if err != nil {
		return "", err
	}
	return name, nil
}

// CreateMainAdmin enforces the only-one rule with a count pre-check inside
// the insert transaction. The pre-check is not a uniqueness constraint, so
// two truly concurrent first registrations could still both pass; the gap
// is inherited behavior and documented rather than closed.
func (r *Repository) CreateMainAdmin(passwordHash string, gen *auth.LoginIDGenerator) (string, error) {
	var loginID string

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&accountModel.Account{}).
			Where("role = ?", string(auth.RoleMainAdmin)).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return internal.ErrMainAdminExists
		}

		id, err := gen.Generate(func(candidate string) (bool, error) {
			var n int64
			if err := tx.Model(&accountModel.Account{}).
				Where("login_id = ?", candidate).
				Count(&n).Error; err != nil {
				return false, err
			}
			return n > 0, nil
		})
		if err != nil {
			return err
		}

		if err := tx.Create(&accountModel.Account{
			LoginID:      id,
			PasswordHash: passwordHash,
			Role:         string(auth.RoleMainAdmin),
		}).Error; err != nil {
			return err
		}

		loginID = id
		return nil
	})
	if err != nil {
		return "", err
	}
	return loginID, nil
}

func (r *Repository) GetPasswordHash(userID int64) (string, error) {
	var row accountModel.Account
	if err := r.db.Select("password_hash").Where("id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", internal.ErrUserNotFound
		}
		return "", err
	}
	return row.PasswordHash, nil
}

func (r *Repository) UpdatePassword(userID int64, newHash string) error {
	return r.db.Model(&accountModel.Account{}).
		Where("id = ?", userID).
		Update("password_hash", newHash).Error
}

func (r *Repository) DeptIDForAdmin(userID int64) (int64, bool, error) {
	var row accountModel.DeptAdminProfile
	if err := r.db.Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return row.DeptID, true, nil
}
