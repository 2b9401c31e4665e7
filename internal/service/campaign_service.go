package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/agate-ltd/agency-crm/internal/domain"
	"github.com/agate-ltd/agency-crm/internal/events"
	"github.com/agate-ltd/agency-crm/internal/repository"
	apperrors "github.com/agate-ltd/agency-crm/pkg/util"
)

// CampaignService manages campaigns. Every write re-checks the client reference.
type CampaignService struct {
	campaigns repository.CampaignRepository
	clients   repository.ClientRepository
	events    publisher
}

// NewCampaignService constructs the service.
func NewCampaignService(campaigns repository.CampaignRepository, clients repository.ClientRepository, dispatcher events.Dispatcher) *CampaignService {
	return &CampaignService{
		campaigns: campaigns,
		clients:   clients,
		events:    newPublisher(dispatcher),
	}
}

// CampaignInput is the writable part of a campaign.
type CampaignInput struct {
	ClientID         string
	Title            string
	PlannedStartDate *time.Time
	PlannedEndDate   *time.Time
	EstimatedCost    *float64
	Budget           *float64
}

func (in *CampaignInput) validate() error {
	in.ClientID = strings.TrimSpace(in.ClientID)
	in.Title = strings.TrimSpace(in.Title)

	details := map[string]any{}
	if in.ClientID == "" {
		details["clientId"] = "required"
	}
	if in.Title == "" {
		details["title"] = "required"
	}
	switch {
	case in.EstimatedCost == nil:
		details["estimatedCost"] = "required"
	case *in.EstimatedCost < 0:
		details["estimatedCost"] = "must not be negative"
	}
	switch {
	case in.Budget == nil:
		details["budget"] = "required"
	case *in.Budget < 0:
		details["budget"] = "must not be negative"
	}
	if in.PlannedStartDate != nil && in.PlannedEndDate != nil && in.PlannedEndDate.Before(*in.PlannedStartDate) {
		details["plannedEndDate"] = "must not precede plannedStartDate"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("Invalid campaign data", details)
	}
	return nil
}

func (in CampaignInput) apply(c *domain.Campaign) {
	c.ClientID = in.ClientID
	c.Title = in.Title
	c.PlannedStartDate = in.PlannedStartDate
	c.PlannedEndDate = in.PlannedEndDate
	c.EstimatedCost = *in.EstimatedCost
	c.Budget = *in.Budget
}

func (s *CampaignService) requireClient(ctx context.Context, clientID string) error {
	ok, err := s.clients.Exists(ctx, clientID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !ok {
		return apperrors.NewNotFound("Client", map[string]any{"clientId": clientID})
	}
	return nil
}

// Create stores a campaign for an existing client.
func (s *CampaignService) Create(ctx context.Context, in CampaignInput) (*domain.Campaign, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.requireClient(ctx, in.ClientID); err != nil {
		return nil, err
	}
	campaign := &domain.Campaign{}
	in.apply(campaign)
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.events.publish(ctx, events.EventCampaignCreated, campaign.ID, events.CampaignPayload{ClientID: campaign.ClientID, Title: campaign.Title})
	return campaign, nil
}

// List returns campaigns, optionally for one client.
func (s *CampaignService) List(ctx context.Context, clientID string) ([]domain.Campaign, error) {
	filter := repository.CampaignFilter{}
	if clientID = strings.TrimSpace(clientID); clientID != "" {
		filter.ClientID = &clientID
	}
	campaigns, err := s.campaigns.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return campaigns, nil
}

// Get fetches a campaign.
func (s *CampaignService) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, campaignError(err)
	}
	return campaign, nil
}

// Update replaces the writable fields of a campaign.
func (s *CampaignService) Update(ctx context.Context, id string, in CampaignInput) (*domain.Campaign, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, campaignError(err)
	}
	if err := s.requireClient(ctx, in.ClientID); err != nil {
		return nil, err
	}
	in.apply(campaign)
	if err := s.campaigns.Update(ctx, campaign); err != nil {
		return nil, campaignError(err)
	}
	s.events.publish(ctx, events.EventCampaignUpdated, campaign.ID, events.CampaignPayload{ClientID: campaign.ClientID, Title: campaign.Title})
	return campaign, nil
}

// Delete removes a campaign.
func (s *CampaignService) Delete(ctx context.Context, id string) error {
	if err := s.campaigns.Delete(ctx, id); err != nil {
		return campaignError(err)
	}
	s.events.publish(ctx, events.EventCampaignDeleted, id, nil)
	return nil
}

func campaignError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("Campaign", nil)
	}
	return apperrors.MapError(err)
}
