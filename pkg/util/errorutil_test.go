package util_test

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agate-ltd/agency-crm/internal/repository"
	apperrors "github.com/agate-ltd/agency-crm/pkg/util"
)

var _ = Describe("ToDomainError", func() {
	It("keeps nil as nil", func() {
		Expect(apperrors.ToDomainError(nil)).To(BeNil())
		Expect(apperrors.MapError(nil)).To(BeNil())
	})

	It("passes domain errors through wrapping", func() {
		notFound := apperrors.NewNotFound("Client", nil)
		de := apperrors.ToDomainError(fmt.Errorf("load: %w", notFound))
		Expect(de.HTTPStatus).To(Equal(http.StatusNotFound))
		Expect(de.Message).To(Equal("Client not found"))
	})

	DescribeTable("maps lower level errors",
		func(err error, status int, code string) {
			de := apperrors.ToDomainError(err)
			Expect(de.HTTPStatus).To(Equal(status))
			Expect(de.Code).To(Equal(code))
		},
		Entry("missing record", repository.ErrNotFound, http.StatusNotFound, "NOT_FOUND"),
		Entry("duplicate record", repository.ErrDuplicate, http.StatusBadRequest, "CONFLICT"),
		Entry("fiber not found", fiber.ErrNotFound, http.StatusNotFound, "NOT_FOUND"),
		Entry("fiber method not allowed", fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"),
		Entry("anything else", errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_ERROR"),
	)

	It("hides internal causes from the message", func() {
		de := apperrors.ToDomainError(errors.New("pq: password authentication failed"))
		Expect(de.Message).To(Equal("Internal Server Error!"))
		Expect(errors.Unwrap(de)).To(MatchError("pq: password authentication failed"))
	})

	It("reports conflicts as bad requests", func() {
		de := apperrors.ToDomainError(apperrors.NewConflict("Staff ID already exists", nil))
		Expect(de.HTTPStatus).To(Equal(http.StatusBadRequest))
		Expect(de.Code).To(Equal("CONFLICT"))
	})
})
