package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/unilearn/lms-backend/internal/auth"
	"github.com/unilearn/lms-backend/internal/content"
	"github.com/unilearn/lms-backend/internal/course"
	"github.com/unilearn/lms-backend/internal/department"
	"github.com/unilearn/lms-backend/internal/transport/middleware"
	"github.com/unilearn/lms-backend/internal/transport/swagger"
	"github.com/unilearn/lms-backend/internal/user"
)

// Handlers bundles every feature handler the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Department *department.Handler
	Course     *course.Handler
	Content    *content.Handler
}

// RegisterAllRoutes mounts the full API under /api/v1. Route groups mirror
// the role model: admin is main-admin only, dept-admin gets the scoped
// variants, instructor and user groups serve content and self-service.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, authz *auth.RoleAuthorization, allowedOrigins, uploadDir string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Uploaded lesson attachments are public by path; the path itself is
	// only ever handed to enrolled students and assigned instructors.
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register/admin", h.Auth.RegisterAdmin)
			sr.Post("/login", h.Auth.Login)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Route("/admin", func(ar chi.Router) {
				ar.Use(authz.RequireRole(auth.RoleMainAdmin))

				ar.Get("/stats", h.User.DashboardStats)
				ar.Get("/users", h.User.ListUsers)
				ar.Post("/students", h.User.CreateStudent)
				ar.Post("/instructors", h.User.CreateInstructor)
				ar.Post("/dept-admins", h.User.CreateDeptAdmin)

				ar.Get("/departments", h.Department.List)
				ar.Post("/departments", h.Department.Create)
				ar.Post("/departments/assign-admin", h.Department.AssignAdmin)

				ar.Get("/courses", h.Course.ListAdmin)
				ar.Post("/courses", h.Course.Create)
				ar.Post("/courses/enroll", h.Course.EnrollStudent)
				ar.Post("/courses/assign", h.Course.AssignInstructor)
			})

			pr.Route("/dept-admin", func(dr chi.Router) {
				dr.Use(authz.RequireRole(auth.RoleDeptAdmin))
				dr.Use(authz.ResolveUnitScope())

				dr.Post("/users/student", h.User.CreateStudent)
				dr.Post("/users/instructor", h.User.CreateInstructor)
				dr.Post("/courses", h.Course.Create)
				dr.Post("/courses/enroll", h.Course.EnrollStudent)
				dr.Post("/courses/assign-instructor", h.Course.AssignInstructor)
			})

			pr.Route("/instructor", func(ir chi.Router) {
				ir.Use(authz.RequireRole(auth.RoleInstructor))

				ir.Post("/lessons", h.Content.CreateLesson)
				ir.Get("/lessons/{courseId}", h.Content.InstructorLessons)
				ir.Post("/announcements", h.Content.CreateAnnouncement)
				ir.Get("/course/{courseId}/students", h.Course.EnrolledStudents)
				ir.Put("/profile", h.User.UpdateInstructorProfile)
			})

			pr.Route("/user", func(ur chi.Router) {
				ur.With(authz.RequireRole(auth.RoleInstructor)).
					Get("/courses/instructor", h.Course.InstructorCourses)
				ur.With(authz.RequireRole(auth.RoleStudent)).
					Get("/courses/student", h.Course.StudentCourses)

				ur.Get("/content/lessons/{courseId}", h.Content.StudentLessons)
				ur.Get("/content/announcements/{courseId}", h.Content.StudentAnnouncements)
				ur.Get("/content/course/{courseId}/details", h.Course.Details)

				ur.Post("/change-password", h.Auth.ChangePassword)
			})
		})
	})
}
