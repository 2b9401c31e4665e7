package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/agate-ltd/agency-crm/internal/domain"
	"github.com/agate-ltd/agency-crm/internal/events"
	"github.com/agate-ltd/agency-crm/internal/repository"
	apperrors "github.com/agate-ltd/agency-crm/pkg/util"
)

const defaultContactPageSize = 9

// ContactService accepts public contact form submissions.
type ContactService struct {
	contacts repository.ContactRepository
	events   publisher
}

// NewContactService constructs the service.
func NewContactService(contacts repository.ContactRepository, dispatcher events.Dispatcher) *ContactService {
	return &ContactService{contacts: contacts, events: newPublisher(dispatcher)}
}

// ContactInput is a submitted contact message.
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// Create validates and stores a message.
func (s *ContactService) Create(ctx context.Context, in ContactInput) (*domain.ContactMessage, error) {
	trimAll(&in.Name, &in.Email, &in.Message)
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return nil, apperrors.NewValidationError("All fields are required!", nil)
	}
	if tooLong(in.Name, 100) || tooLong(in.Email, 100) || !validEmail(in.Email) {
		return nil, apperrors.NewValidationError("Invalid contact details", map[string]any{"email": in.Email})
	}

	msg := &domain.ContactMessage{Name: in.Name, Email: in.Email, Message: in.Message}
	if err := s.contacts.Create(ctx, msg); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.events.publish(ctx, events.EventContactSubmitted, msg.ID, nil)
	return msg, nil
}

// ContactPage is one page of messages with the overall total.
type ContactPage struct {
	Contacts      []domain.ContactMessage
	TotalContacts int
}

// List pages through messages, newest first.
func (s *ContactService) List(ctx context.Context, startIndex, limit int) (*ContactPage, error) {
	if limit <= 0 {
		limit = defaultContactPageSize
	}
	if startIndex < 0 {
		startIndex = 0
	}
	page := &ContactPage{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page.Contacts, err = s.contacts.List(gctx, limit, startIndex)
		return err
	})
	g.Go(func() error {
		var err error
		page.TotalContacts, err = s.contacts.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.MapError(err)
	}
	return page, nil
}
