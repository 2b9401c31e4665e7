package auth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agate-ltd/agency-crm/internal/auth"
	"github.com/agate-ltd/agency-crm/internal/domain"
)

var _ = Describe("Role gates", func() {
	It("reject an empty role set at every gate", func() {
		for _, gate := range auth.Gates() {
			Expect(gate.Allow(0)).To(BeFalse(), gate.Name)
		}
	})

	It("admit admins at every gate", func() {
		admin := domain.RoleSet(domain.RoleAdmin)
		for _, gate := range auth.Gates() {
			Expect(gate.Allow(admin)).To(BeTrue(), gate.Name)
		}
	})

	It("admit managers only where managers are named", func() {
		manager := domain.RoleSet(domain.RoleManager)
		admitted := map[string]bool{}
		for _, gate := range auth.Gates() {
			admitted[gate.Name] = gate.Allow(manager)
		}
		Expect(admitted).To(Equal(map[string]bool{
			"admin":            false,
			"admin_or_manager": true,
			"manager":          true,
			"accountant":       false,
			"creative_staff":   false,
			"waiter":           false,
			"reception":        false,
			"staff":            true,
		}))
	})

	It("keep the specific gates independent", func() {
		Expect(auth.GateAccountant.Allow(domain.RoleSet(domain.RoleAccountant))).To(BeTrue())
		Expect(auth.GateAccountant.Allow(domain.RoleSet(domain.RoleCreativeStaff))).To(BeFalse())
		Expect(auth.GateReception.Allow(domain.RoleSet(domain.RoleReception, domain.RoleWaiter))).To(BeTrue())
		Expect(auth.GateWaiter.Allow(domain.RoleSet(domain.RoleReception))).To(BeFalse())
	})
})
