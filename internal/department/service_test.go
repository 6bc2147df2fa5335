package department

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/unilearn/lms-backend/internal"
	departmentModel "github.com/unilearn/lms-backend/internal/core/datamodel/department"
)

func TestDepartment(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Department Module Suite")
}

type mockDepartmentRepository struct {
	departments   []departmentModel.Department
	assignedLogin string
	assignedDept  int64
	returnError   bool
	errorToReturn error
}

func (m *mockDepartmentRepository) Create(dept *departmentModel.Department) error {
	if m.returnError {
		return m.errorToReturn
	}
	dept.ID = int64(len(m.departments) + 1)
	m.departments = append(m.departments, *dept)
	return nil
}

func (m *mockDepartmentRepository) List() ([]departmentModel.Department, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.departments, nil
}

func (m *mockDepartmentRepository) AssignAdmin(loginID string, deptID int64) error {
	if m.returnError {
		return m.errorToReturn
	}
	m.assignedLogin = loginID
	m.assignedDept = deptID
	return nil
}

var _ = ginkgo.Describe("Department Service", func() {
	var (
		service *Service
		repo    *mockDepartmentRepository
	)

	ginkgo.BeforeEach(func() {
		repo = &mockDepartmentRepository{}
		service = NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should default the kind to Department", func() {
			dept, err := service.Create(CreateDepartmentDTO{Name: "Computer Science"})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(dept.Kind).To(gomega.Equal(departmentModel.KindDepartment))
			gomega.Expect(dept.ID).NotTo(gomega.BeZero())
		})

		ginkgo.It("should accept the Faculty kind", func() {
			dept, err := service.Create(CreateDepartmentDTO{Name: "Engineering", Kind: departmentModel.KindFaculty})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(dept.Kind).To(gomega.Equal(departmentModel.KindFaculty))
		})

		ginkgo.It("should reject an unknown kind", func() {
			_, err := service.Create(CreateDepartmentDTO{Name: "X", Kind: "Institute"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})

		ginkgo.It("should require a name", func() {
			_, err := service.Create(CreateDepartmentDTO{})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})

		ginkgo.It("should pass a repository conflict through", func() {
			repo.returnError = true
			repo.errorToReturn = internal.NewConflictError("department already exists", internal.ErrCodeDepartmentExists)

			_, err := service.Create(CreateDepartmentDTO{Name: "Computer Science"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeDepartmentExists))
		})
	})

	ginkgo.Describe("List", func() {
		ginkgo.It("should return the stored departments", func() {
			_, err := service.Create(CreateDepartmentDTO{Name: "Physics"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			depts, err := service.List()

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(depts).To(gomega.HaveLen(1))
		})

		ginkgo.It("should wrap repository failures", func() {
			repo.returnError = true
			repo.errorToReturn = errors.New("connection reset")

			_, err := service.List()

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeInternal))
		})
	})

	ginkgo.Describe("AssignAdmin", func() {
		ginkgo.It("should hand the assignment to the repository", func() {
			err := service.AssignAdmin(AssignAdminDTO{LoginID: "3000001", DeptID: 7})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(repo.assignedLogin).To(gomega.Equal("3000001"))
			gomega.Expect(repo.assignedDept).To(gomega.Equal(int64(7)))
		})

		ginkgo.It("should require both login id and unit", func() {
			err := service.AssignAdmin(AssignAdminDTO{LoginID: "3000001"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})

		ginkgo.It("should pass a not-found through untouched", func() {
			repo.returnError = true
			repo.errorToReturn = internal.NewNotFoundError("user not found or not a department admin", internal.ErrCodeUserNotFound)

			err := service.AssignAdmin(AssignAdminDTO{LoginID: "9999999", DeptID: 7})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeNotFound))
		})
	})
})
