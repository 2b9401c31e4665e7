package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agate-ltd/agency-crm/internal/domain"
	"github.com/agate-ltd/agency-crm/internal/events"
	"github.com/agate-ltd/agency-crm/internal/persistence"
	"github.com/agate-ltd/agency-crm/internal/repository"
	"github.com/agate-ltd/agency-crm/internal/service"
)

func amount(v float64) *float64 { return &v }

// failingCascade refuses bulk campaign removal.
type failingCascade struct {
	repository.CampaignRepository
	err error
}

func (f *failingCascade) DeleteByClient(context.Context, string) (int, error) {
	return 0, f.err
}

var _ = Describe("Clients and campaigns", func() {
	var (
		ctx        context.Context
		store      *persistence.Store
		dispatcher *recordingDispatcher
		clients    *service.ClientService
		campaigns  *service.CampaignService
	)

	validClient := service.ClientInput{
		Name:    "Grace",
		Surname: "Hopper",
		Email:   "grace@example.com",
	}

	campaignFor := func(clientID string) service.CampaignInput {
		return service.CampaignInput{
			ClientID:      clientID,
			Title:         "Spring launch",
			EstimatedCost: amount(800),
			Budget:        amount(1000),
		}
	}

	countCampaigns := func() int {
		GinkgoHelper()
		all, err := store.Repositories.Campaigns.List(ctx, repository.CampaignFilter{})
		Expect(err).NotTo(HaveOccurred())
		return len(all)
	}

	BeforeEach(func() {
		ctx = context.Background()
		store = newTestStore()
		dispatcher = &recordingDispatcher{}
		clients = service.NewClientService(store.Repositories.Clients, store.Repositories.Campaigns, dispatcher, nil)
		campaigns = service.NewCampaignService(store.Repositories.Campaigns, store.Repositories.Clients, dispatcher)
	})

	Describe("client validation", func() {
		It("trims fields and stores the client", func() {
			in := validClient
			in.Name = "  Grace  "
			client, err := clients.Create(ctx, in)
			Expect(err).NotTo(HaveOccurred())
			Expect(client.Name).To(Equal("Grace"))
		})

		It("rejects a malformed email", func() {
			in := validClient
			in.Email = "not-an-email"
			_, err := clients.Create(ctx, in)
			expectDomainError(err, http.StatusBadRequest, "Invalid client data")
		})

		It("rejects overlong names", func() {
			in := validClient
			in.Name = strings.Repeat("a", 51)
			_, err := clients.Create(ctx, in)
			expectDomainError(err, http.StatusBadRequest, "Invalid client data")
		})
	})

	It("refuses a campaign for an unknown client without storing it", func() {
		_, err := campaigns.Create(ctx, campaignFor(uuid.NewString()))
		expectDomainError(err, http.StatusNotFound, "Client not found")
		Expect(countCampaigns()).To(BeZero())
	})

	It("refuses moving a campaign to an unknown client", func() {
		client, err := clients.Create(ctx, validClient)
		Expect(err).NotTo(HaveOccurred())
		campaign, err := campaigns.Create(ctx, campaignFor(client.ID))
		Expect(err).NotTo(HaveOccurred())

		_, err = campaigns.Update(ctx, campaign.ID, campaignFor(uuid.NewString()))
		expectDomainError(err, http.StatusNotFound, "Client not found")

		stored, err := campaigns.Get(ctx, campaign.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.ClientID).To(Equal(client.ID))
	})

	It("validates amounts and dates", func() {
		in := campaignFor(uuid.NewString())
		in.Budget = amount(-1)
		start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, -1)
		in.PlannedStartDate, in.PlannedEndDate = &start, &end

		_, err := campaigns.Create(ctx, in)
		expectDomainError(err, http.StatusBadRequest, "Invalid campaign data")
	})

	It("lists clients with their campaign counts", func() {
		busy, err := clients.Create(ctx, validClient)
		Expect(err).NotTo(HaveOccurred())
		idle, err := clients.Create(ctx, service.ClientInput{Name: "Alan", Surname: "Turing", Email: "alan@example.com"})
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 2; i++ {
			_, err := campaigns.Create(ctx, campaignFor(busy.ID))
			Expect(err).NotTo(HaveOccurred())
		}

		summaries, err := clients.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		counts := map[string]int{}
		for _, s := range summaries {
			counts[s.ID] = s.CampaignCount
		}
		Expect(counts).To(Equal(map[string]int{busy.ID: 2, idle.ID: 0}))
	})

	It("deletes a client together with its campaigns", func() {
		doomed, err := clients.Create(ctx, validClient)
		Expect(err).NotTo(HaveOccurred())
		kept, err := clients.Create(ctx, service.ClientInput{Name: "Alan", Surname: "Turing", Email: "alan@example.com"})
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 3; i++ {
			_, err := campaigns.Create(ctx, campaignFor(doomed.ID))
			Expect(err).NotTo(HaveOccurred())
		}
		_, err = campaigns.Create(ctx, campaignFor(kept.ID))
		Expect(err).NotTo(HaveOccurred())

		removed, err := clients.Delete(ctx, doomed.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(removed).To(Equal(3))
		Expect(countCampaigns()).To(Equal(1))

		_, err = clients.Get(ctx, doomed.ID)
		expectDomainError(err, http.StatusNotFound, "Client not found")

		last := dispatcher.last()
		Expect(last.Type).To(Equal(events.EventClientDeleted))
		Expect(last.Payload).To(Equal(events.ClientDeletedPayload{CampaignsDeleted: 3}))
	})

	It("keeps the client when its campaigns cannot be removed", func() {
		client, err := clients.Create(ctx, validClient)
		Expect(err).NotTo(HaveOccurred())
		_, err = campaigns.Create(ctx, campaignFor(client.ID))
		Expect(err).NotTo(HaveOccurred())

		broken := &failingCascade{CampaignRepository: store.Repositories.Campaigns, err: errors.New("connection reset")}
		guarded := service.NewClientService(store.Repositories.Clients, broken, dispatcher, nil)

		_, err = guarded.Delete(ctx, client.ID)
		expectDomainError(err, http.StatusInternalServerError, "Internal Server Error!")

		_, err = clients.Get(ctx, client.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(countCampaigns()).To(Equal(1))
		Expect(dispatcher.types()).NotTo(ContainElement(events.EventClientDeleted))
	})

	It("reports deleting an unknown client as not found", func() {
		_, err := clients.Delete(ctx, uuid.NewString())
		expectDomainError(err, http.StatusNotFound, "Client not found")
	})
})

var _ = Describe("StaffService", func() {
	var (
		ctx   context.Context
		store *persistence.Store
		authn *service.AuthService
		staff *service.StaffService
	)

	signUp := func(staffID string, roles domain.Roles) *domain.StaffMember {
		GinkgoHelper()
		member, err := authn.SignUp(ctx, service.SignUpInput{
			StaffID: staffID, FirstName: "Ada", LastName: "Lovelace", Password: "secret1", Roles: roles,
		})
		Expect(err).NotTo(HaveOccurred())
		return member
	}

	BeforeEach(func() {
		ctx = context.Background()
		store = newTestStore()
		authn = service.NewAuthService(testConfig, service.AuthDependencies{
			StaffRepo: store.Repositories.Staff,
			Tokens:    newTestTokens(),
		})
		staff = service.NewStaffService(testConfig, store.Repositories.Staff, nil)
	})

	It("pages staff with totals", func() {
		for _, id := range []string{"100001", "100002", "100003"} {
			signUp(id, 0)
		}
		page, err := staff.List(ctx, service.StaffListParams{Limit: 2, Ascending: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(page.Staff).To(HaveLen(2))
		Expect(page.TotalUsers).To(Equal(3))
		Expect(page.LastMonthUsers).To(Equal(3))
	})

	It("replaces the role set", func() {
		member := signUp("123456", domain.RoleSet(domain.RoleWaiter))
		updated, err := staff.UpdatePermissions(ctx, member.ID, domain.RoleSet(domain.RoleAccountant))
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Roles).To(Equal(domain.RoleSet(domain.RoleAccountant)))
	})

	It("refuses taking another member's staff id", func() {
		first := signUp("111111", 0)
		signUp("222222", 0)

		taken := "222222"
		_, err := staff.UpdateInfo(ctx, first.ID, service.StaffUpdateInput{StaffID: &taken})
		expectDomainError(err, http.StatusBadRequest, "Staff ID already exists")
	})

	It("keeps the old password unless a new one is given", func() {
		member := signUp("123456", 0)
		name := "Augusta"
		updated, err := staff.UpdateInfo(ctx, member.ID, service.StaffUpdateInput{FirstName: &name})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.FirstName).To(Equal("Augusta"))
		Expect(updated.PasswordHash).To(Equal(member.PasswordHash))
	})

	It("reports unknown staff", func() {
		_, err := staff.GetByID(ctx, uuid.NewString())
		expectDomainError(err, http.StatusNotFound, "Staff not found")
		expectDomainError(staff.Delete(ctx, uuid.NewString()), http.StatusNotFound, "Staff not found")
	})
})
