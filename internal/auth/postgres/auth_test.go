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
	"github.com/unilearn/lms-backend/internal/auth"
	authPostgres "github.com/unilearn/lms-backend/internal/auth/postgres"
)

func TestAuthPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Postgres Suite")
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

type SQLiteDeptAdminProfile struct {
	UserID    int64     `gorm:"column:user_id;primaryKey"`
	DeptID    int64     `gorm:"column:dept_id;not null"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (SQLiteDeptAdminProfile) TableName() string { return "department_admins" }

type SQLiteStudentProfile struct {
	UserID    int64     `gorm:"column:user_id;primaryKey"`
	FullName  string    `gorm:"column:full_name;not null"`
	DeptID    int64     `gorm:"column:dept_id;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (SQLiteStudentProfile) TableName() string { return "students" }

type SQLiteInstructorProfile struct {
	UserID    int64     `gorm:"column:user_id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	DeptID    int64     `gorm:"column:dept_id;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (SQLiteInstructorProfile) TableName() string { return "instructors" }

var _ = Describe("Auth PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo *authPostgres.Repository
		gen  *auth.LoginIDGenerator
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteAccount{}, &SQLiteDeptAdminProfile{}, &SQLiteStudentProfile{}, &SQLiteInstructorProfile{})
		Expect(err).NotTo(HaveOccurred())

		repo = authPostgres.NewRepository(db)
		gen = auth.NewLoginIDGenerator(25)
	})

	Describe("CreateMainAdmin", func() {
		It("should create the first admin and return its login id", func() {
			loginID, err := repo.CreateMainAdmin("hash", gen)

			Expect(err).NotTo(HaveOccurred())
			Expect(loginID).To(HaveLen(7))

			var count int64
			db.Model(&SQLiteAccount{}).Where("role = ?", "Main_Admin").Count(&count)
			Expect(count).To(Equal(int64(1)))
		})

		It("should refuse a second admin", func() {
			_, err := repo.CreateMainAdmin("hash", gen)
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.CreateMainAdmin("hash2", gen)
			Expect(err).To(Equal(internal.ErrMainAdminExists))

			var count int64
			db.Model(&SQLiteAccount{}).Count(&count)
			Expect(count).To(Equal(int64(1)))
		})
	})

	Describe("GetAccountByLoginID", func() {
		It("should load an existing account with its role", func() {
			Expect(db.Create(&SQLiteAccount{LoginID: "2000001", PasswordHash: "h", Role: "Student"}).Error).To(Succeed())

			acct, err := repo.GetAccountByLoginID("2000001")

			Expect(err).NotTo(HaveOccurred())
			Expect(acct.Role).To(Equal(auth.RoleStudent))
			Expect(acct.PasswordHash).To(Equal("h"))
		})

		It("should return user-not-found for an unknown login id", func() {
			_, err := repo.GetAccountByLoginID("9999999")
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("DisplayName", func() {
		It("should resolve the student name from the profile", func() {
			Expect(db.Create(&SQLiteAccount{ID: 5, LoginID: "2000001", PasswordHash: "h", Role: "Student"}).Error).To(Succeed())
			Expect(db.Create(&SQLiteStudentProfile{UserID: 5, FullName: "Asha Student", DeptID: 1}).Error).To(Succeed())

			name, err := repo.DisplayName(5, auth.RoleStudent)

			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal("Asha Student"))
		})

		It("should return empty for a missing profile", func() {
			name, err := repo.DisplayName(404, auth.RoleInstructor)

			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(BeEmpty())
		})
	})

	Describe("DeptIDForAdmin", func() {
		It("should return the assigned unit", func() {
			Expect(db.Create(&SQLiteDeptAdminProfile{UserID: 7, DeptID: 3, Name: "Admin"}).Error).To(Succeed())

			deptID, ok, err := repo.DeptIDForAdmin(7)

			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(deptID).To(Equal(int64(3)))
		})

		It("should report no assignment without error", func() {
			_, ok, err := repo.DeptIDForAdmin(404)

			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})
	})

	Describe("UpdatePassword", func() {
		It("should replace the stored hash", func() {
			Expect(db.Create(&SQLiteAccount{ID: 5, LoginID: "2000001", PasswordHash: "old", Role: "Student"}).Error).To(Succeed())

			Expect(repo.UpdatePassword(5, "new")).To(Succeed())

			hash, err := repo.GetPasswordHash(5)
			Expect(err).NotTo(HaveOccurred())
			Expect(hash).To(Equal("new"))
		})
	})
})
