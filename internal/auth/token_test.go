package auth_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agate-ltd/agency-crm/internal/auth"
	"github.com/agate-ltd/agency-crm/internal/domain"
)

var _ = Describe("TokenManager", func() {
	var (
		now    time.Time
		tokens *auth.TokenManager
	)

	BeforeEach(func() {
		now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
		var err error
		tokens, err = auth.NewTokenManager("test-secret", 10*time.Minute)
		Expect(err).NotTo(HaveOccurred())
		tokens.WithClock(func() time.Time { return now })
	})

	It("refuses an empty signing secret", func() {
		_, err := auth.NewTokenManager("", 10*time.Minute)
		Expect(err).To(HaveOccurred())
	})

	It("expires exactly ten minutes after issuance", func() {
		session, err := tokens.Issue("id-1", "123456", domain.RoleSet(domain.RoleManager))
		Expect(err).NotTo(HaveOccurred())
		Expect(session.IssuedAt).To(Equal(now))
		Expect(session.ExpiresAt).To(Equal(now.Add(10 * time.Minute)))
		Expect(session.Token).NotTo(BeEmpty())
	})

	It("reports an expiry the token itself honours", func() {
		now = now.Add(750 * time.Millisecond)
		session, err := tokens.Issue("id-1", "123456", 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(session.ExpiresAt).To(Equal(time.Date(2025, 3, 1, 9, 10, 0, 0, time.UTC)))

		now = session.ExpiresAt.Add(-time.Millisecond)
		_, err = tokens.Parse(session.Token)
		Expect(err).NotTo(HaveOccurred())

		now = session.ExpiresAt
		_, err = tokens.Parse(session.Token)
		Expect(err).To(MatchError(auth.ErrTokenExpired))
	})

	It("round-trips identity and role claims", func() {
		roles := domain.RoleSet(domain.RoleAdmin, domain.RoleReception)
		session, err := tokens.Issue("id-1", "123456", roles)
		Expect(err).NotTo(HaveOccurred())

		now = now.Add(5 * time.Minute)
		claims, err := tokens.Parse(session.Token)
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.ID).To(Equal("id-1"))
		Expect(claims.StaffID).To(Equal("123456"))
		Expect(claims.Roles).To(Equal(roles))
	})

	It("reports expiry distinctly from invalidity", func() {
		session, err := tokens.Issue("id-1", "123456", 0)
		Expect(err).NotTo(HaveOccurred())

		now = now.Add(10*time.Minute + time.Second)
		_, err = tokens.Parse(session.Token)
		Expect(err).To(MatchError(auth.ErrTokenExpired))
		Expect(err).NotTo(MatchError(auth.ErrTokenInvalid))
	})

	It("rejects tokens signed with another secret", func() {
		other, err := auth.NewTokenManager("other-secret", 10*time.Minute)
		Expect(err).NotTo(HaveOccurred())
		other.WithClock(func() time.Time { return now })

		session, err := other.Issue("id-1", "123456", domain.RoleSet(domain.RoleAdmin))
		Expect(err).NotTo(HaveOccurred())

		_, err = tokens.Parse(session.Token)
		Expect(err).To(MatchError(auth.ErrTokenInvalid))
	})

	It("rejects malformed tokens", func() {
		_, err := tokens.Parse("not-a-token")
		Expect(err).To(MatchError(auth.ErrTokenInvalid))
	})
})
