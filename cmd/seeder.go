package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/unilearn/lms-backend/internal/auth"
	accountModel "github.com/unilearn/lms-backend/internal/core/datamodel/account"
	courseModel "github.com/unilearn/lms-backend/internal/core/datamodel/course"
	departmentModel "github.com/unilearn/lms-backend/internal/core/datamodel/department"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := gorm.Open(gormpostgres.Open(cfg.Database.Source), &gorm.Config{
			TranslateError: true,
		})
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			tables := []string{
				"announcements", "lessons", "course_enrollments", "course_assignments",
				"courses", "students", "instructors", "department_admins",
				"departments", "users",
			}
			for _, t := range tables {
				if err := db.Exec("DELETE FROM " + t).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", t, err)
				}
			}
			fmt.Println("cleared existing data")
		}

		gen := auth.NewLoginIDGenerator(cfg.Security.LoginIDMaxAttempts)
		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)

		seedAccount := func(role auth.Role) *accountModel.Account {
			loginID, err := gen.Generate(func(candidate string) (bool, error) {
				var n int64
				if err := db.Model(&accountModel.Account{}).
					Where("login_id = ?", candidate).
					Count(&n).Error; err != nil {
					return false, err
				}
				return n > 0, nil
			})
			if err != nil {
				log.Fatalf("failed to generate login id: %v", err)
			}

			account := &accountModel.Account{
				LoginID:      loginID,
				PasswordHash: string(hash),
				Role:         string(role),
			}
			if err := db.Create(account).Error; err != nil {
				log.Fatalf("failed to seed %s account: %v", role, err)
			}
			fmt.Printf("seeded %s: login_id=%s password=password\n", role, loginID)
			return account
		}

		var adminCount int64
		if err := db.Model(&accountModel.Account{}).
			Where("role = ?", string(auth.RoleMainAdmin)).
			Count(&adminCount).Error; err != nil {
			log.Fatalf("failed to check main admin: %v", err)
		}
		if adminCount == 0 {
			seedAccount(auth.RoleMainAdmin)
		} else {
			fmt.Println("main admin already exists; skipping")
		}

		cs := departmentModel.Department{Name: "Computer Science", Kind: departmentModel.KindDepartment}
		if err := db.Where("name = ?", cs.Name).FirstOrCreate(&cs).Error; err != nil {
			log.Fatalf("failed to seed department: %v", err)
		}

		deptAdmin := seedAccount(auth.RoleDeptAdmin)
		if err := db.Create(&accountModel.DeptAdminProfile{
			UserID: deptAdmin.ID,
			DeptID: cs.ID,
			Name:   "CS Department Admin",
		}).Error; err != nil {
			log.Fatalf("failed to seed dept admin profile: %v", err)
		}

		instructor := seedAccount(auth.RoleInstructor)
		if err := db.Create(&accountModel.InstructorProfile{
			UserID:       instructor.ID,
			Name:         "Sample Instructor",
			ContactEmail: "instructor@unilearn.local",
			DeptID:       cs.ID,
		}).Error; err != nil {
			log.Fatalf("failed to seed instructor profile: %v", err)
		}

		student := seedAccount(auth.RoleStudent)
		if err := db.Create(&accountModel.StudentProfile{
			UserID:           student.ID,
			FullName:         "Sample Student",
			Program:          "B.Tech",
			EnrollmentNumber: "EN-0001",
			Email:            "student@unilearn.local",
			DeptID:           cs.ID,
		}).Error; err != nil {
			log.Fatalf("failed to seed student profile: %v", err)
		}

		intro := courseModel.Course{
			Title:       "Introduction to Programming",
			Description: "Fundamentals of programming with practical exercises.",
			CourseCode:  "CS101",
			Credits:     4,
			Semester:    "1",
			Program:     "B.Tech",
			CourseType:  "Core",
			DeptID:      &cs.ID,
		}
		if err := db.Where("course_code = ?", intro.CourseCode).FirstOrCreate(&intro).Error; err != nil {
			log.Fatalf("failed to seed course: %v", err)
		}

		if err := db.Create(&courseModel.Assignment{InstructorID: instructor.ID, CourseID: intro.ID}).Error; err != nil {
			log.Fatalf("failed to seed course assignment: %v", err)
		}
		if err := db.Create(&courseModel.Enrollment{StudentID: student.ID, CourseID: intro.ID}).Error; err != nil {
			log.Fatalf("failed to seed enrollment: %v", err)
		}

		fmt.Println("seed complete")
	},
}
