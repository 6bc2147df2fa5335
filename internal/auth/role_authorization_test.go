package auth

import (
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/unilearn/lms-backend/internal"
)

type mockScopeResolver struct {
	deptID int64
	err    error
}

func (m *mockScopeResolver) ResolveUnitScope(session *Session) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.deptID, nil
}

var _ = ginkgo.Describe("RoleAuthorization middleware", func() {
	var (
		authz    *RoleAuthorization
		resolver *mockScopeResolver
		nextHit  bool
		next     http.Handler
	)

	ginkgo.BeforeEach(func() {
		resolver = &mockScopeResolver{deptID: 7}
		authz = NewRoleAuthorization(resolver, slog.Default())
		nextHit = false
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextHit = true
			w.WriteHeader(http.StatusOK)
		})
	})

	request := func(session *Session) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if session != nil {
			r = r.WithContext(ContextWithSession(r.Context(), session))
		}
		return r
	}

	ginkgo.Describe("RequireRole", func() {
		ginkgo.It("should refuse a student session on an instructor-only route", func() {
			rec := httptest.NewRecorder()
			mw := authz.RequireRole(RoleInstructor)(next)

			mw.ServeHTTP(rec, request(&Session{UserID: 2, LoginID: "2000002", Role: RoleStudent}))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring(string(internal.ErrCodeRoleNotAllowed)))
			gomega.Expect(nextHit).To(gomega.BeFalse())
		})

		ginkgo.It("should pass a matching role through", func() {
			rec := httptest.NewRecorder()
			mw := authz.RequireRole(RoleInstructor)(next)

			mw.ServeHTTP(rec, request(&Session{UserID: 4, LoginID: "4000004", Role: RoleInstructor}))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(nextHit).To(gomega.BeTrue())
		})

		ginkgo.It("should accept any role from the allowed set", func() {
			rec := httptest.NewRecorder()
			mw := authz.RequireRole(RoleMainAdmin, RoleDeptAdmin)(next)

			mw.ServeHTTP(rec, request(&Session{UserID: 3, LoginID: "3000003", Role: RoleDeptAdmin}))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(nextHit).To(gomega.BeTrue())
		})

		ginkgo.It("should answer Unauthorized when no session is present", func() {
			rec := httptest.NewRecorder()
			mw := authz.RequireRole(RoleInstructor)(next)

			mw.ServeHTTP(rec, request(nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(nextHit).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("ResolveUnitScope", func() {
		ginkgo.It("should attach the resolved unit to the request context", func() {
			var gotDept int64
			var gotOK bool
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotDept, gotOK = DeptScopeFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})
			rec := httptest.NewRecorder()
			mw := authz.ResolveUnitScope()(inner)

			mw.ServeHTTP(rec, request(&Session{UserID: 3, LoginID: "3000003", Role: RoleDeptAdmin}))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(gotOK).To(gomega.BeTrue())
			gomega.Expect(gotDept).To(gomega.Equal(int64(7)))
		})

		ginkgo.It("should forward a Forbidden from the resolver", func() {
			resolver.err = internal.ErrNoUnitAssignment
			rec := httptest.NewRecorder()
			mw := authz.ResolveUnitScope()(next)

			mw.ServeHTTP(rec, request(&Session{UserID: 3, LoginID: "3000003", Role: RoleDeptAdmin}))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(nextHit).To(gomega.BeFalse())
		})
	})
})
