package events

import (
	"time"

	"github.com/google/uuid"
)

const UserCreatedEventType = "user.created"

// UserCreatedEvent fires after an account and its role profile are
// committed. Subscribers deliver the generated credentials; delivery is
// best-effort and never rolls the creation back.
type UserCreatedEvent struct {
	ID        string
	Timestamp time.Time

	LoginID  string
	Password string
	Name     string
	Email    string
	Role     string
}

func NewUserCreatedEvent(loginID, password, name, email, role string) UserCreatedEvent {
	return UserCreatedEvent{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		LoginID:   loginID,
		Password:  password,
		Name:      name,
		Email:     email,
		Role:      role,
	}
}

func (e UserCreatedEvent) EventType() string     { return UserCreatedEventType }
func (e UserCreatedEvent) EventID() string       { return e.ID }
func (e UserCreatedEvent) OccurredAt() time.Time { return e.Timestamp }
func (e UserCreatedEvent) Payload() interface{}  { return e }
