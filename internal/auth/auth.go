package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/unilearn/lms-backend/internal"
)

// Role is the closed set of actor kinds. The string values are what gets
// stored in the users table and embedded in tokens.
type Role string

const (
	RoleMainAdmin  Role = "Main_Admin"
	RoleDeptAdmin  Role = "Dept_Admin"
	RoleInstructor Role = "Instructor"
	RoleStudent    Role = "Student"
)

func (r Role) Valid() bool {
	switch r {
	case RoleMainAdmin, RoleDeptAdmin, RoleInstructor, RoleStudent:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Account is the domain view of a users row.
type Account struct {
	ID           int64
	LoginID      string
	PasswordHash string
	Role         Role
}

// Session is the validated identity attached to a request. Name is the
// display name resolved from the role profile at login time.
type Session struct {
	UserID  int64  `json:"id"`
	LoginID string `json:"login_id"`
	Role    Role   `json:"role"`
	Name    string `json:"name"`
}

// AuthResult is what a successful login returns to the client.
type AuthResult struct {
	Token string  `json:"token"`
	User  Session `json:"user"`
}

// Claims is the JWT payload: account id, login id, role and display name.
type Claims struct {
	UserID  int64  `json:"user_id"`
	LoginID string `json:"login_id"`
	Role    Role   `json:"role"`
	Name    string `json:"name"`
	jwt.RegisteredClaims
}

func (c *Claims) Session() *Session {
	return &Session{
		UserID:  c.UserID,
		LoginID: c.LoginID,
		Role:    c.Role,
		Name:    c.Name,
	}
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*AuthResult, error)
	RegisterMainAdmin(dto RegisterAdminDTO) (loginID string, err error)
	ValidateSessionToken(tokenString string) (*Claims, error)
	ChangePassword(userID int64, dto ChangePasswordDTO) error
}

type TokenGeneratorAPI interface {
	GenerateToken(s *Session) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// JWTTokenGenerator signs session tokens with a single HMAC secret.
type JWTTokenGenerator struct {
	Secret   []byte
	TokenTTL time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret:   []byte(secret),
		TokenTTL: ttl,
	}
}

func (j *JWTTokenGenerator) GenerateToken(s *Session) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID:  s.UserID,
		LoginID: s.LoginID,
		Role:    s.Role,
		Name:    s.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   s.LoginID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || !claims.Role.Valid() {
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}

// ----------------- context plumbing -----------------

type ctxKey string

const (
	ContextSessionKey ctxKey = "session"
	contextScopeKey   ctxKey = "deptScope"
)

func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ContextSessionKey).(*Session)
	return s, ok
}

func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ContextSessionKey, s)
}

// DeptScopeFromContext returns the unit id resolved for a department admin
// on this request. Absent for every other role.
func DeptScopeFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(contextScopeKey).(int64)
	return id, ok
}

func ContextWithDeptScope(ctx context.Context, deptID int64) context.Context {
	return context.WithValue(ctx, contextScopeKey, deptID)
}

// ----------------- passwords -----------------

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
