package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeMissingField     ErrorCode = "MISSING_REQUIRED_FIELD"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeRoleNotAllowed     ErrorCode = "ROLE_NOT_ALLOWED"
	ErrCodeAdminExists        ErrorCode = "MAIN_ADMIN_EXISTS"
	ErrCodeLoginIDExhausted   ErrorCode = "LOGIN_ID_SPACE_EXHAUSTED"

	ErrCodeNoUnitAssignment     ErrorCode = "NO_UNIT_ASSIGNMENT"
	ErrCodeCourseOutsideUnit    ErrorCode = "COURSE_OUTSIDE_UNIT"
	ErrCodeStudentOutsideUnit   ErrorCode = "STUDENT_OUTSIDE_UNIT"
	ErrCodeNotAssignedToCourse  ErrorCode = "NOT_ASSIGNED_TO_COURSE"
	ErrCodeNotEnrolledInCourse  ErrorCode = "NOT_ENROLLED_IN_COURSE"
	ErrCodeNotStudentProfile    ErrorCode = "NOT_A_STUDENT"
	ErrCodeNotInstructorProfile ErrorCode = "NOT_AN_INSTRUCTOR"

	ErrCodeUserNotFound   ErrorCode = "USER_NOT_FOUND"
	ErrCodeCourseNotFound ErrorCode = "COURSE_NOT_FOUND"

	ErrCodeDepartmentExists  ErrorCode = "DEPARTMENT_EXISTS"
	ErrCodeCourseCodeExists  ErrorCode = "COURSE_CODE_EXISTS"
	ErrCodeAlreadyEnrolled   ErrorCode = "ALREADY_ENROLLED"
	ErrCodeAlreadyAssigned   ErrorCode = "ALREADY_ASSIGNED"
	ErrCodeDuplicateResource ErrorCode = "DUPLICATE_RESOURCE"
)

// AppError is the single error shape that crosses layer boundaries. The
// HTTP status is derived from the type at construction time so handlers
// can write the response without re-classifying.
type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrInvalidCredentials = NewUnauthorizedError("invalid credentials", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
	ErrMainAdminExists    = NewConflictError("main admin already registered", ErrCodeAdminExists)

	ErrNoUnitAssignment   = NewForbiddenError("department admin is not assigned to a unit", ErrCodeNoUnitAssignment)
	ErrCourseOutsideUnit  = NewForbiddenError("course does not belong to your department", ErrCodeCourseOutsideUnit)
	ErrStudentOutsideUnit = NewForbiddenError("cannot enroll a student from another department", ErrCodeStudentOutsideUnit)

	ErrNotAssignedToCourse = NewForbiddenError("you are not assigned to this course", ErrCodeNotAssignedToCourse)
	ErrNotEnrolledInCourse = NewForbiddenError("you are not enrolled in this course", ErrCodeNotEnrolledInCourse)

	ErrUserNotFound   = NewNotFoundError("user not found", ErrCodeUserNotFound)
	ErrCourseNotFound = NewNotFoundError("course not found", ErrCodeCourseNotFound)

	ErrAlreadyEnrolled = NewConflictError("student is already enrolled in this course", ErrCodeAlreadyEnrolled)
	ErrAlreadyAssigned = NewConflictError("instructor is already assigned to this course", ErrCodeAlreadyAssigned)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
