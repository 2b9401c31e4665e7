package service_test

import (
	"context"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agate-ltd/agency-crm/internal/auth"
	"github.com/agate-ltd/agency-crm/internal/domain"
	"github.com/agate-ltd/agency-crm/internal/events"
	"github.com/agate-ltd/agency-crm/internal/persistence"
	"github.com/agate-ltd/agency-crm/internal/service"
	apperrors "github.com/agate-ltd/agency-crm/pkg/util"
)

func expectDomainError(err error, status int, message string) {
	GinkgoHelper()
	Expect(err).To(HaveOccurred())
	de := apperrors.ToDomainError(err)
	Expect(de.HTTPStatus).To(Equal(status))
	Expect(de.Message).To(Equal(message))
}

var _ = Describe("AuthService", func() {
	var (
		ctx        context.Context
		store      *persistence.Store
		tokens     *auth.TokenManager
		limiter    *countingLimiter
		dispatcher *recordingDispatcher
		svc        *service.AuthService
	)

	validSignUp := func(staffID string) service.SignUpInput {
		return service.SignUpInput{
			StaffID:   staffID,
			FirstName: "Ada",
			LastName:  "Lovelace",
			Password:  "secret1",
			Roles:     domain.RoleSet(domain.RoleManager),
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		store = newTestStore()
		tokens = newTestTokens()
		limiter = newCountingLimiter(3)
		dispatcher = &recordingDispatcher{}
		svc = service.NewAuthService(testConfig, service.AuthDependencies{
			StaffRepo:  store.Repositories.Staff,
			Tokens:     tokens,
			Limiter:    limiter,
			Dispatcher: dispatcher,
		})
	})

	Describe("SignUp", func() {
		It("creates an account with a hashed password and default picture", func() {
			staff, err := svc.SignUp(ctx, validSignUp("123456"))
			Expect(err).NotTo(HaveOccurred())
			Expect(staff.ID).NotTo(BeEmpty())
			Expect(staff.PasswordHash).NotTo(Equal("secret1"))
			Expect(staff.ProfilePicture).To(Equal(domain.DefaultProfilePicture))
			Expect(dispatcher.types()).To(Equal([]events.EventType{events.EventStaffCreated}))
		})

		It("rejects a duplicate staff id with one stored record", func() {
			_, err := svc.SignUp(ctx, validSignUp("123456"))
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.SignUp(ctx, validSignUp("123456"))
			expectDomainError(err, http.StatusBadRequest, "Staff ID already exists")

			total, err := store.Repositories.Staff.Count(ctx, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(1))
		})

		DescribeTable("validates input before touching the store",
			func(mutate func(*service.SignUpInput), message string) {
				in := validSignUp("123456")
				mutate(&in)
				_, err := svc.SignUp(ctx, in)
				expectDomainError(err, http.StatusBadRequest, message)

				total, err := store.Repositories.Staff.Count(ctx, nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(total).To(BeZero())
			},
			Entry("missing password", func(in *service.SignUpInput) { in.Password = "" }, "All fields are required!"),
			Entry("short staff id", func(in *service.SignUpInput) { in.StaffID = "12345" }, "Staff ID must be 6 digits!"),
			Entry("non-numeric staff id", func(in *service.SignUpInput) { in.StaffID = "12345a" }, "Staff ID must be 6 digits!"),
			Entry("short first name", func(in *service.SignUpInput) { in.FirstName = "A" }, "First name must be at least 2 characters long"),
			Entry("short password", func(in *service.SignUpInput) { in.Password = "abc" }, "Password must be at least 6 characters long"),
		)
	})

	Describe("SignIn", func() {
		BeforeEach(func() {
			_, err := svc.SignUp(ctx, validSignUp("123456"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("issues a ten minute session carrying the stored roles", func() {
			before := time.Now()
			staff, session, err := svc.SignIn(ctx, "123456", "secret1")
			Expect(err).NotTo(HaveOccurred())
			Expect(staff.StaffID).To(Equal("123456"))
			Expect(session.ExpiresAt.Sub(session.IssuedAt)).To(Equal(10 * time.Minute))
			Expect(session.IssuedAt).To(BeTemporally(">=", before.Truncate(time.Second)))

			claims, err := tokens.Parse(session.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.Roles).To(Equal(domain.RoleSet(domain.RoleManager)))

			last := dispatcher.last()
			Expect(last.Type).To(Equal(events.EventStaffSignedIn))
			Expect(last.Actor.StaffID).To(Equal("123456"))
		})

		It("reports an unknown staff id as not found", func() {
			_, _, err := svc.SignIn(ctx, "654321", "secret1")
			expectDomainError(err, http.StatusNotFound, "Staff not found")
		})

		It("reports a wrong password as a bad request", func() {
			_, _, err := svc.SignIn(ctx, "123456", "wrong-password")
			expectDomainError(err, http.StatusBadRequest, "Invalid password")
		})

		It("throttles after repeated failures and resets on success", func() {
			for i := 0; i < 3; i++ {
				_, _, err := svc.SignIn(ctx, "123456", "wrong-password")
				expectDomainError(err, http.StatusBadRequest, "Invalid password")
			}
			_, _, err := svc.SignIn(ctx, "123456", "secret1")
			expectDomainError(err, http.StatusTooManyRequests, "Too many sign-in attempts - Please try again later")

			delete(limiter.failures, "123456")
			_, _, err = svc.SignIn(ctx, "123456", "secret1")
			Expect(err).NotTo(HaveOccurred())
			Expect(limiter.resets).To(Equal(1))
		})
	})

	Describe("Refresh", func() {
		It("reissues the same identity with a later expiry", func() {
			now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
			tokens.WithClock(func() time.Time { return now })

			_, session, err := svc.SignIn(ctx, mustSignUp(svc, ctx, validSignUp("123456")), "secret1")
			Expect(err).NotTo(HaveOccurred())
			claims, err := tokens.Parse(session.Token)
			Expect(err).NotTo(HaveOccurred())

			now = now.Add(9*time.Minute + 45*time.Second)
			refreshed, err := svc.Refresh(ctx, claims)
			Expect(err).NotTo(HaveOccurred())
			Expect(refreshed.ExpiresAt).To(Equal(now.Add(10 * time.Minute)))
			Expect(refreshed.StaffID).To(Equal("123456"))
			Expect(refreshed.Roles).To(Equal(claims.Roles))
		})

		It("refuses missing claims", func() {
			_, err := svc.Refresh(ctx, nil)
			expectDomainError(err, http.StatusUnauthorized, auth.MsgNoCredential)
		})
	})
})

func mustSignUp(svc *service.AuthService, ctx context.Context, in service.SignUpInput) string {
	GinkgoHelper()
	staff, err := svc.SignUp(ctx, in)
	Expect(err).NotTo(HaveOccurred())
	return staff.StaffID
}
