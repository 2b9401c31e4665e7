package gormstore_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/agate-ltd/agency-crm/internal/domain"
	"github.com/agate-ltd/agency-crm/internal/persistence"
	"github.com/agate-ltd/agency-crm/internal/repository"
	"github.com/agate-ltd/agency-crm/internal/repository/gormstore"
)

var _ = Describe("Gorm repositories", func() {
	var (
		ctx   context.Context
		lite  *persistence.SQLite
		repos repository.Repositories
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		lite, err = persistence.NewSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()), zap.NewNop())
		Expect(err).NotTo(HaveOccurred())
		repos = gormstore.New(lite.DB)
	})

	AfterEach(func() {
		lite.Close()
	})

	newStaff := func(staffID string) *domain.StaffMember {
		return &domain.StaffMember{
			StaffID:      staffID,
			FirstName:    "Ada",
			LastName:     "Lovelace",
			PasswordHash: "hash",
			Roles:        domain.RoleSet(domain.RoleManager),
		}
	}

	Describe("staff", func() {
		It("assigns identifiers and reads back by staff id", func() {
			staff := newStaff("123456")
			Expect(repos.Staff.Create(ctx, staff)).To(Succeed())
			Expect(staff.ID).NotTo(BeEmpty())

			found, err := repos.Staff.GetByStaffID(ctx, "123456")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.ID).To(Equal(staff.ID))
			Expect(found.Roles).To(Equal(domain.RoleSet(domain.RoleManager)))
		})

		It("rejects a duplicate staff id", func() {
			Expect(repos.Staff.Create(ctx, newStaff("123456"))).To(Succeed())
			err := repos.Staff.Create(ctx, newStaff("123456"))
			Expect(err).To(MatchError(repository.ErrDuplicate))

			total, err := repos.Staff.Count(ctx, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(1))
		})

		It("updates roles in place", func() {
			staff := newStaff("123456")
			Expect(repos.Staff.Create(ctx, staff)).To(Succeed())

			updated, err := repos.Staff.UpdateRoles(ctx, staff.ID, domain.RoleSet(domain.RoleAdmin))
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Roles).To(Equal(domain.RoleSet(domain.RoleAdmin)))
		})

		It("counts recent staff and pages listings", func() {
			for _, id := range []string{"100001", "100002", "100003"} {
				Expect(repos.Staff.Create(ctx, newStaff(id))).To(Succeed())
			}
			since := time.Now().Add(-time.Hour)
			recent, err := repos.Staff.Count(ctx, &since)
			Expect(err).NotTo(HaveOccurred())
			Expect(recent).To(Equal(3))

			page, err := repos.Staff.List(ctx, repository.StaffFilter{Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(page).To(HaveLen(2))
		})

		It("reports missing staff", func() {
			_, err := repos.Staff.GetByID(ctx, uuid.NewString())
			Expect(err).To(MatchError(repository.ErrNotFound))
			Expect(repos.Staff.Delete(ctx, uuid.NewString())).To(MatchError(repository.ErrNotFound))
		})
	})

	Describe("clients and campaigns", func() {
		var client *domain.Client

		BeforeEach(func() {
			client = &domain.Client{Name: "Grace", Surname: "Hopper", Email: "grace@example.com"}
			Expect(repos.Clients.Create(ctx, client)).To(Succeed())
		})

		It("checks client existence", func() {
			exists, err := repos.Clients.Exists(ctx, client.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			exists, err = repos.Clients.Exists(ctx, uuid.NewString())
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})

		It("counts and removes campaigns per client", func() {
			other := &domain.Client{Name: "Alan", Surname: "Turing", Email: "alan@example.com"}
			Expect(repos.Clients.Create(ctx, other)).To(Succeed())

			for i := 0; i < 2; i++ {
				Expect(repos.Campaigns.Create(ctx, &domain.Campaign{ClientID: client.ID, Title: "Spring"})).To(Succeed())
			}
			Expect(repos.Campaigns.Create(ctx, &domain.Campaign{ClientID: other.ID, Title: "Autumn"})).To(Succeed())

			counts, err := repos.Campaigns.CountByClient(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(counts).To(Equal(map[string]int{client.ID: 2, other.ID: 1}))

			removed, err := repos.Campaigns.DeleteByClient(ctx, client.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(Equal(2))

			remaining, err := repos.Campaigns.List(ctx, repository.CampaignFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(remaining).To(HaveLen(1))
			Expect(remaining[0].ClientID).To(Equal(other.ID))
		})

		It("filters campaigns by client", func() {
			Expect(repos.Campaigns.Create(ctx, &domain.Campaign{ClientID: client.ID, Title: "Launch", Budget: 1200})).To(Succeed())

			clientID := client.ID
			list, err := repos.Campaigns.List(ctx, repository.CampaignFilter{ClientID: &clientID})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].Budget).To(Equal(1200.0))

			missing := uuid.NewString()
			list, err = repos.Campaigns.List(ctx, repository.CampaignFilter{ClientID: &missing})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(BeEmpty())
		})

		It("reports missing clients and campaigns", func() {
			_, err := repos.Clients.GetByID(ctx, uuid.NewString())
			Expect(err).To(MatchError(repository.ErrNotFound))

			err = repos.Campaigns.Update(ctx, &domain.Campaign{ID: uuid.NewString(), ClientID: client.ID, Title: "x"})
			Expect(err).To(MatchError(repository.ErrNotFound))
		})
	})

	Describe("contact messages", func() {
		It("stores and pages messages", func() {
			for i := 0; i < 3; i++ {
				msg := &domain.ContactMessage{Name: "Visitor", Email: "v@example.com", Message: "Hello"}
				Expect(repos.Contacts.Create(ctx, msg)).To(Succeed())
			}
			total, err := repos.Contacts.Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(3))

			page, err := repos.Contacts.List(ctx, 2, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(page).To(HaveLen(1))
		})
	})
})
