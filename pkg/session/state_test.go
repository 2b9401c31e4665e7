package session_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agate-ltd/agency-crm/pkg/session"
)

var _ = Describe("State", func() {
	var (
		state   *session.State
		changes []session.Snapshot
		expiry  time.Time
	)

	BeforeEach(func() {
		state = session.NewState()
		changes = nil
		state.OnChange(func(s session.Snapshot) { changes = append(changes, s) })
		expiry = time.Date(2025, 3, 1, 9, 10, 0, 0, time.UTC)
	})

	It("starts signed out", func() {
		Expect(state.Current().SignedIn).To(BeFalse())
	})

	It("signs out once and keeps the first reason", func() {
		state.SignIn(session.Profile{StaffID: "123456"}, expiry)

		Expect(state.SignOut(session.ReasonExpired)).To(BeTrue())
		Expect(state.SignOut(session.ReasonSignedOut)).To(BeFalse())

		Expect(state.Current().Reason).To(Equal(session.ReasonExpired))
		Expect(changes).To(HaveLen(2))
	})

	It("ignores refreshes after sign-out", func() {
		state.SignIn(session.Profile{StaffID: "123456"}, expiry)
		state.SignOut(session.ReasonSignedOut)

		state.Refreshed(expiry.Add(time.Hour))
		Expect(state.Current().SignedIn).To(BeFalse())
		Expect(state.Current().ExpiresAt).To(BeZero())
	})

	It("moves the expiry of a live session", func() {
		state.SignIn(session.Profile{StaffID: "123456"}, expiry)
		state.Refreshed(expiry.Add(10 * time.Minute))

		snap := state.Current()
		Expect(snap.Profile.StaffID).To(Equal("123456"))
		Expect(snap.ExpiresAt).To(Equal(expiry.Add(10 * time.Minute)))
	})
})
