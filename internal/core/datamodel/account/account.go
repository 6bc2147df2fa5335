package account

import "time"

// Account is a login-capable identity. Role is immutable after creation;
// only the password hash may change.
type Account struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	LoginID      string    `json:"login_id" gorm:"column:login_id;uniqueIndex;not null;size:7"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         string    `json:"role" gorm:"column:role;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Account) TableName() string {
	return "users"
}

// DeptAdminProfile links a department-admin account to exactly one unit.
// An admin account without a row here cannot act on anything.
type DeptAdminProfile struct {
	UserID    int64     `json:"user_id" gorm:"column:user_id;primaryKey"`
	DeptID    int64     `json:"dept_id" gorm:"column:dept_id;not null"`
	Name      string    `json:"name" gorm:"column:name;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (DeptAdminProfile) TableName() string {
	return "department_admins"
}

type StudentProfile struct {
	UserID           int64     `json:"user_id" gorm:"column:user_id;primaryKey"`
	FullName         string    `json:"full_name" gorm:"column:full_name;not null"`
	Program          string    `json:"program" gorm:"column:program"`
	Branch           string    `json:"branch" gorm:"column:branch"`
	EnrollmentNumber string    `json:"enrollment_number" gorm:"column:enrollment_number"`
	Section          string    `json:"section" gorm:"column:section"`
	Email            string    `json:"email" gorm:"column:email"`
	Phone            string    `json:"phone" gorm:"column:phone"`
	Address          string    `json:"address" gorm:"column:address"`
	DeptID           int64     `json:"dept_id" gorm:"column:dept_id;not null"`
	CreatedAt        time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (StudentProfile) TableName() string {
	return "students"
}

type InstructorProfile struct {
	UserID        int64     `json:"user_id" gorm:"column:user_id;primaryKey"`
	Name          string    `json:"name" gorm:"column:name;not null"`
	ContactEmail  string    `json:"contact_email" gorm:"column:contact_email"`
	OfficeAddress string    `json:"office_address" gorm:"column:office_address"`
	Website       string    `json:"website" gorm:"column:website"`
	Bio           string    `json:"bio" gorm:"column:bio"`
	DeptID        int64     `json:"dept_id" gorm:"column:dept_id;not null"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (InstructorProfile) TableName() string {
	return "instructors"
}
