package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/unilearn/lms-backend/internal"
	courseModel "github.com/unilearn/lms-backend/internal/core/datamodel/course"
	coursePostgres "github.com/unilearn/lms-backend/internal/course/postgres"
)

func TestCoursePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Course Postgres Suite")
}

// SQLite-compatible models for testing
type SQLiteAccount struct {
	ID           int64     `gorm:"primaryKey"`
	LoginID      string    `gorm:"column:login_id;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (SQLiteAccount) TableName() string { return "users" }

type SQLiteStudentProfile struct {
	UserID           int64     `gorm:"column:user_id;primaryKey"`
	FullName         string    `gorm:"column:full_name;not null"`
	Program          string    `gorm:"column:program"`
	EnrollmentNumber string    `gorm:"column:enrollment_number"`
	Section          string    `gorm:"column:section"`
	Email            string    `gorm:"column:email"`
	DeptID           int64     `gorm:"column:dept_id;not null"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (SQLiteStudentProfile) TableName() string { return "students" }

type SQLiteInstructorProfile struct {
	UserID        int64     `gorm:"column:user_id;primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	ContactEmail  string    `gorm:"column:contact_email"`
	OfficeAddress string    `gorm:"column:office_address"`
	Website       string    `gorm:"column:website"`
	Bio           string    `gorm:"column:bio"`
	DeptID        int64     `gorm:"column:dept_id;not null"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (SQLiteInstructorProfile) TableName() string { return "instructors" }

type SQLiteDepartment struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	Kind      string    `gorm:"column:kind"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (SQLiteDepartment) TableName() string { return "departments" }

type SQLiteCourse struct {
	ID          int64     `gorm:"primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description"`
	CourseCode  string    `gorm:"column:course_code;uniqueIndex;not null"`
	Credits     int       `gorm:"column:credits"`
	Semester    string    `gorm:"column:semester"`
	Program     string    `gorm:"column:program"`
	CourseType  string    `gorm:"column:course_type"`
	DeptID      *int64    `gorm:"column:dept_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (SQLiteCourse) TableName() string { return "courses" }

type SQLiteEnrollment struct {
	StudentID  int64     `gorm:"column:student_id;primaryKey"`
	CourseID   int64     `gorm:"column:course_id;primaryKey"`
	EnrolledAt time.Time `gorm:"column:enrolled_at"`
}

func (SQLiteEnrollment) TableName() string { return "course_enrollments" }

type SQLiteAssignment struct {
	InstructorID int64     `gorm:"column:instructor_id;primaryKey"`
	CourseID     int64     `gorm:"column:course_id;primaryKey"`
	AssignedAt   time.Time `gorm:"column:assigned_at"`
}

func (SQLiteAssignment) TableName() string { return "course_assignments" }

var _ = Describe("Course PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo *coursePostgres.Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&SQLiteAccount{}, &SQLiteStudentProfile{}, &SQLiteInstructorProfile{},
			&SQLiteDepartment{}, &SQLiteCourse{}, &SQLiteEnrollment{}, &SQLiteAssignment{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = coursePostgres.NewRepository(db)
	})

	deptID := func(id int64) *int64 { return &id }

	Describe("Create", func() {
		It("should persist a course", func() {
			c := &courseModel.Course{Title: "Algorithms", CourseCode: "CS201", DeptID: deptID(1)}

			err := repo.Create(c)

			Expect(err).NotTo(HaveOccurred())
			Expect(c.ID).NotTo(BeZero())
		})

		It("should refuse a duplicate course code", func() {
			Expect(repo.Create(&courseModel.Course{Title: "Algorithms", CourseCode: "CS201"})).To(Succeed())

			err := repo.Create(&courseModel.Course{Title: "Other", CourseCode: "CS201"})

			var appErr *internal.AppError
			Expect(err).To(BeAssignableToTypeOf(appErr))
			Expect(err.(*internal.AppError).Code).To(Equal(internal.ErrCodeCourseCodeExists))
		})
	})

	Describe("ListAdmin", func() {
		It("should include the department name when the course has one", func() {
			Expect(db.Create(&SQLiteDepartment{ID: 1, Name: "CS"}).Error).To(Succeed())
			Expect(db.Create(&SQLiteCourse{Title: "Algorithms", CourseCode: "CS201", DeptID: deptID(1)}).Error).To(Succeed())
			Expect(db.Create(&SQLiteCourse{Title: "Campus Elective", CourseCode: "GE101"}).Error).To(Succeed())

			rows, err := repo.ListAdmin()

			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			byCode := map[string]string{}
			for _, row := range rows {
				byCode[row.CourseCode] = row.DeptName
			}
			Expect(byCode["CS201"]).To(Equal("CS"))
			Expect(byCode["GE101"]).To(Equal(""))
		})
	})

	Describe("GetCourse", func() {
		It("should report a missing course", func() {
			_, err := repo.GetCourse(404)
			Expect(err).To(Equal(internal.ErrCourseNotFound))
		})
	})

	Describe("profile lookups", func() {
		BeforeEach(func() {
			Expect(db.Create(&SQLiteAccount{ID: 20, LoginID: "2000001", PasswordHash: "h", Role: "Student"}).Error).To(Succeed())
			Expect(db.Create(&SQLiteStudentProfile{UserID: 20, FullName: "Asha", DeptID: 3}).Error).To(Succeed())
			Expect(db.Create(&SQLiteAccount{ID: 30, LoginID: "3000001", PasswordHash: "h", Role: "Instructor"}).Error).To(Succeed())
			Expect(db.Create(&SQLiteInstructorProfile{UserID: 30, Name: "Dr. Rao", DeptID: 3}).Error).To(Succeed())
		})

		It("should resolve a student login id to its unit", func() {
			ref, err := repo.StudentRefByLoginID("2000001")

			Expect(err).NotTo(HaveOccurred())
			Expect(ref.UserID).To(Equal(int64(20)))
			Expect(ref.DeptID).To(Equal(int64(3)))
		})

		It("should reject an instructor login id used as a student", func() {
			_, err := repo.StudentRefByLoginID("3000001")

			var appErr *internal.AppError
			Expect(err).To(BeAssignableToTypeOf(appErr))
			appErr = err.(*internal.AppError)
			Expect(appErr.Type).To(Equal(internal.ErrorTypeForbidden))
			Expect(appErr.Code).To(Equal(internal.ErrCodeNotStudentProfile))
		})

		It("should reject a student login id used as an instructor", func() {
			_, err := repo.InstructorRefByLoginID("2000001")

			var appErr *internal.AppError
			Expect(err).To(BeAssignableToTypeOf(appErr))
			Expect(err.(*internal.AppError).Code).To(Equal(internal.ErrCodeNotInstructorProfile))
		})

		It("should report an unknown login id", func() {
			_, err := repo.StudentRefByLoginID("9999999")
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("Enroll and Assign", func() {
		BeforeEach(func() {
			Expect(db.Create(&SQLiteCourse{ID: 100, Title: "Algorithms", CourseCode: "CS201"}).Error).To(Succeed())
		})

		It("should refuse a duplicate enrollment", func() {
			Expect(repo.Enroll(20, 100)).To(Succeed())
			Expect(repo.Enroll(20, 100)).To(Equal(internal.ErrAlreadyEnrolled))
		})

		It("should refuse a duplicate assignment", func() {
			Expect(repo.Assign(30, 100)).To(Succeed())
			Expect(repo.Assign(30, 100)).To(Equal(internal.ErrAlreadyAssigned))
		})

		It("should answer membership checks", func() {
			Expect(repo.Enroll(20, 100)).To(Succeed())

			enrolled, err := repo.IsEnrolled(20, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(enrolled).To(BeTrue())

			assigned, err := repo.IsAssigned(30, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(assigned).To(BeFalse())
		})
	})

	Describe("role course listings", func() {
		BeforeEach(func() {
			Expect(db.Create(&SQLiteInstructorProfile{UserID: 30, Name: "Dr. Rao", DeptID: 3}).Error).To(Succeed())
			Expect(db.Create(&SQLiteStudentProfile{UserID: 20, FullName: "Asha", DeptID: 3}).Error).To(Succeed())
			Expect(db.Create(&SQLiteStudentProfile{UserID: 21, FullName: "Bilal", DeptID: 3}).Error).To(Succeed())
			Expect(db.Create(&SQLiteCourse{ID: 100, Title: "Algorithms", CourseCode: "CS201"}).Error).To(Succeed())
			Expect(db.Create(&SQLiteCourse{ID: 101, Title: "Databases", CourseCode: "CS202"}).Error).To(Succeed())

			Expect(repo.Assign(30, 100)).To(Succeed())
			Expect(repo.Enroll(20, 100)).To(Succeed())
			Expect(repo.Enroll(21, 100)).To(Succeed())
		})

		It("should count enrolled students per instructor course", func() {
			rows, err := repo.ListForInstructor(30)

			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].CourseCode).To(Equal("CS201"))
			Expect(rows[0].EnrolledStudentsCount).To(Equal(int64(2)))
		})

		It("should name the instructor on student courses", func() {
			rows, err := repo.ListForStudent(20)

			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].InstructorName).To(Equal("Dr. Rao"))
		})

		It("should leave the instructor name empty for an unassigned course", func() {
			Expect(repo.Enroll(20, 101)).To(Succeed())

			rows, err := repo.ListForStudent(20)

			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			byCode := map[string]string{}
			for _, row := range rows {
				byCode[row.CourseCode] = row.InstructorName
			}
			Expect(byCode["CS202"]).To(Equal(""))
		})
	})

	Describe("Details", func() {
		It("should merge course metadata with the instructor profile", func() {
			Expect(db.Create(&SQLiteCourse{ID: 100, Title: "Algorithms", CourseCode: "CS201", Credits: 4, Semester: "Fall"}).Error).To(Succeed())
			Expect(db.Create(&SQLiteInstructorProfile{UserID: 30, Name: "Dr. Rao", ContactEmail: "rao@example.edu", Bio: "graphs", DeptID: 3}).Error).To(Succeed())
			Expect(repo.Assign(30, 100)).To(Succeed())

			details, err := repo.Details(100)

			Expect(err).NotTo(HaveOccurred())
			Expect(details.Title).To(Equal("Algorithms"))
			Expect(details.Credits).To(Equal(4))
			Expect(details.InstructorName).To(Equal("Dr. Rao"))
			Expect(details.InstructorEmail).To(Equal("rao@example.edu"))
			Expect(details.Bio).To(Equal("graphs"))
		})

		It("should still return a course that has no instructor", func() {
			Expect(db.Create(&SQLiteCourse{ID: 100, Title: "Algorithms", CourseCode: "CS201"}).Error).To(Succeed())

			details, err := repo.Details(100)

			Expect(err).NotTo(HaveOccurred())
			Expect(details.InstructorName).To(Equal(""))
		})

		It("should report a missing course", func() {
			_, err := repo.Details(404)
			Expect(err).To(Equal(internal.ErrCourseNotFound))
		})
	})

	Describe("EnrolledStudents", func() {
		It("should list the roster ordered by name", func() {
			Expect(db.Create(&SQLiteCourse{ID: 100, Title: "Algorithms", CourseCode: "CS201"}).Error).To(Succeed())
			Expect(db.Create(&SQLiteStudentProfile{UserID: 20, FullName: "Zara", EnrollmentNumber: "EN-2", DeptID: 3}).Error).To(Succeed())
			Expect(db.Create(&SQLiteStudentProfile{UserID: 21, FullName: "Asha", EnrollmentNumber: "EN-1", DeptID: 3}).Error).To(Succeed())
			Expect(repo.Enroll(20, 100)).To(Succeed())
			Expect(repo.Enroll(21, 100)).To(Succeed())

			rows, err := repo.EnrolledStudents(100)

			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].FullName).To(Equal("Asha"))
			Expect(rows[1].FullName).To(Equal("Zara"))
		})
	})
})
