package auth

import (
	"math/rand"
	"strconv"

	"github.com/unilearn/lms-backend/internal"
)

// LoginIDGenerator draws random 7-digit login ids and retries on
// collision. With ~9 million candidate ids the collision probability per
// draw stays negligible for any realistic account volume, but the loop is
// capped so a pathological state cannot spin forever.
type LoginIDGenerator struct {
	MaxAttempts int
	intn        func(n int) int
}

func NewLoginIDGenerator(maxAttempts int) *LoginIDGenerator {
	if maxAttempts <= 0 {
		maxAttempts = 25
	}
	return &LoginIDGenerator{
		MaxAttempts: maxAttempts,
		intn:        rand.Intn,
	}
}

const (
	loginIDMin  = 1_000_000
	loginIDSpan = 9_000_000
)

// Generate returns a login id for which exists reports false. exists runs
// against whatever storage (or transaction) the caller is inserting into,
// so uniqueness holds at the moment of assignment.
func (g *LoginIDGenerator) Generate(exists func(loginID string) (bool, error)) (string, error) {
	for i := 0; i < g.MaxAttempts; i++ {
		candidate := strconv.Itoa(loginIDMin + g.intn(loginIDSpan))

		taken, err := exists(candidate)
		if err != nil {
			return "", internal.NewInternalError("login id uniqueness check failed", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", internal.NewInternalError("login id space exhausted after max attempts", nil)
}
