package department

import "time"

// Department is an organizational unit, either a department or a faculty.
// It is the scoping boundary for department-admin authority.
type Department struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"column:name;uniqueIndex;not null"`
	Kind      string    `json:"kind" gorm:"column:kind;not null;default:Department"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Department) TableName() string {
	return "departments"
}

const (
	KindDepartment = "Department"
	KindFaculty    = "Faculty"
)
