package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/unilearn/lms-backend/internal"
)

// ScopeResolverAPI is the part of the auth service the middleware needs.
type ScopeResolverAPI interface {
	ResolveUnitScope(session *Session) (int64, error)
}

// RoleAuthorization centralizes the role gate and the unit-scope
// resolution so individual handlers never re-implement either check.
type RoleAuthorization struct {
	scopes ScopeResolverAPI
	logger *slog.Logger
}

func NewRoleAuthorization(scopes ScopeResolverAPI, logger *slog.Logger) *RoleAuthorization {
	return &RoleAuthorization{
		scopes: scopes,
		logger: logger,
	}
}

// RequireRole rejects with Forbidden unless the session role is in the
// allowed set. An absent session is Unauthorized, not Forbidden.
func (ra *RoleAuthorization) RequireRole(allowed ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFromContext(r.Context())
			if !ok || session == nil {
				writeAuthError(w, internal.NewUnauthorizedError("missing session", internal.ErrCodeInvalidToken))
				return
			}

			for _, role := range allowed {
				if session.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			ra.logger.Warn("access denied: role not allowed",
				"user_id", session.UserID,
				"role", session.Role,
				"allowed_roles", allowed)
			writeAuthError(w, internal.NewForbiddenError("access restricted for your role", internal.ErrCodeRoleNotAllowed))
		})
	}
}

// ResolveUnitScope attaches the department id a dept admin owns to the
// request context. Every scoped write downstream takes the unit id from
// here, never from the request body.
func (ra *RoleAuthorization) ResolveUnitScope() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFromContext(r.Context())
			if !ok || session == nil {
				writeAuthError(w, internal.NewUnauthorizedError("missing session", internal.ErrCodeInvalidToken))
				return
			}

			deptID, err := ra.scopes.ResolveUnitScope(session)
			if err != nil {
				if appErr, isApp := internal.IsAppError(err); isApp {
					writeAuthError(w, appErr)
					return
				}
				ra.logger.Error("unit scope resolution failed", "error", err, "user_id", session.UserID)
				writeAuthError(w, internal.NewInternalError("unit scope resolution failed", err))
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithDeptScope(r.Context(), deptID)))
		})
	}
}

func writeAuthError(w http.ResponseWriter, appErr *internal.AppError) {
	status, body := appErr.ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
