package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agate-ltd/agency-crm/internal/domain"
	"github.com/agate-ltd/agency-crm/internal/events"
	"github.com/agate-ltd/agency-crm/internal/repository"
	apperrors "github.com/agate-ltd/agency-crm/pkg/util"
)

// ClientService manages agency clients.
type ClientService struct {
	clients   repository.ClientRepository
	campaigns repository.CampaignRepository
	events    publisher
	logger    *zap.Logger
}

// NewClientService constructs the service.
func NewClientService(clients repository.ClientRepository, campaigns repository.CampaignRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ClientService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientService{
		clients:   clients,
		campaigns: campaigns,
		events:    newPublisher(dispatcher),
		logger:    logger,
	}
}

// ClientInput is the writable part of a client.
type ClientInput struct {
	Name                 string
	Surname              string
	Email                string
	Address              string
	CompanyName          string
	ContactPersonDetails string
}

func (in *ClientInput) validate() error {
	trimAll(&in.Name, &in.Surname, &in.Email, &in.Address, &in.CompanyName, &in.ContactPersonDetails)

	details := map[string]any{}
	switch {
	case in.Name == "":
		details["name"] = "required"
	case tooLong(in.Name, 50):
		details["name"] = "must be at most 50 characters"
	}
	switch {
	case in.Surname == "":
		details["surname"] = "required"
	case tooLong(in.Surname, 50):
		details["surname"] = "must be at most 50 characters"
	}
	switch {
	case in.Email == "":
		details["email"] = "required"
	case tooLong(in.Email, 100):
		details["email"] = "must be at most 100 characters"
	case !validEmail(in.Email):
		details["email"] = "must be a valid email address"
	}
	if tooLong(in.CompanyName, 200) {
		details["companyName"] = "must be at most 200 characters"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("Invalid client data", details)
	}
	return nil
}

func (in ClientInput) apply(client *domain.Client) {
	client.Name = in.Name
	client.Surname = in.Surname
	client.Email = in.Email
	client.Address = in.Address
	client.CompanyName = in.CompanyName
	client.ContactPersonDetails = in.ContactPersonDetails
}

// Create stores a new client.
func (s *ClientService) Create(ctx context.Context, in ClientInput) (*domain.Client, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	client := &domain.Client{}
	in.apply(client)
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.events.publish(ctx, events.EventClientCreated, client.ID, nil)
	return client, nil
}

// List returns every client with its campaign count.
func (s *ClientService) List(ctx context.Context) ([]domain.ClientSummary, error) {
	var (
		clients []domain.Client
		counts  map[string]int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clients, err = s.clients.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.campaigns.CountByClient(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.MapError(err)
	}

	out := make([]domain.ClientSummary, 0, len(clients))
	for _, c := range clients {
		out = append(out, domain.ClientSummary{Client: c, CampaignCount: counts[c.ID]})
	}
	return out, nil
}

// Get fetches a client.
func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, clientError(err)
	}
	return client, nil
}

// Update replaces the writable fields of a client.
func (s *ClientService) Update(ctx context.Context, id string, in ClientInput) (*domain.Client, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, clientError(err)
	}
	in.apply(client)
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, clientError(err)
	}
	s.events.publish(ctx, events.EventClientUpdated, client.ID, nil)
	return client, nil
}

// Delete removes every campaign referencing the client and then the client itself.
// A failed cascade leaves the client in place so the delete can be retried.
func (s *ClientService) Delete(ctx context.Context, id string) (int, error) {
	if _, err := s.clients.GetByID(ctx, id); err != nil {
		return 0, clientError(err)
	}
	removed, err := s.campaigns.DeleteByClient(ctx, id)
	if err != nil {
		s.logger.Error("campaign cascade failed", zap.String("client_id", id), zap.Error(err))
		return 0, apperrors.MapError(err)
	}
	if err := s.clients.Delete(ctx, id); err != nil {
		return 0, clientError(err)
	}
	s.events.publish(ctx, events.EventClientDeleted, id, events.ClientDeletedPayload{CampaignsDeleted: removed})
	return removed, nil
}

func clientError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("Client", nil)
	}
	return apperrors.MapError(err)
}
