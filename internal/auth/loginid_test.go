package auth

import (
	"strconv"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/unilearn/lms-backend/internal"
)

var _ = ginkgo.Describe("LoginIDGenerator", func() {
	neverTaken := func(string) (bool, error) { return false, nil }

	ginkgo.It("should generate ids inside the 7-digit range", func() {
		gen := NewLoginIDGenerator(25)

		for i := 0; i < 100; i++ {
			id, err := gen.Generate(neverTaken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(id).To(gomega.HaveLen(7))

			n, err := strconv.Atoi(id)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(n).To(gomega.BeNumerically(">=", 1_000_000))
			gomega.Expect(n).To(gomega.BeNumerically("<=", 9_999_999))
		}
	})

	ginkgo.It("should retry past taken ids", func() {
		gen := NewLoginIDGenerator(25)
		calls := 0

		id, err := gen.Generate(func(string) (bool, error) {
			calls++
			return calls <= 3, nil
		})

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(id).To(gomega.HaveLen(7))
		gomega.Expect(calls).To(gomega.Equal(4))
	})

	ginkgo.It("should give up after the attempt cap", func() {
		gen := NewLoginIDGenerator(5)
		calls := 0

		_, err := gen.Generate(func(string) (bool, error) {
			calls++
			return true, nil
		})

		gomega.Expect(err).To(gomega.HaveOccurred())
		gomega.Expect(calls).To(gomega.Equal(5))

		appErr, ok := internal.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeInternal))
	})

	ginkgo.It("should surface uniqueness-check failures", func() {
		gen := NewLoginIDGenerator(25)

		_, err := gen.Generate(func(string) (bool, error) {
			return false, internal.NewInternalError("db down", nil)
		})

		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})
