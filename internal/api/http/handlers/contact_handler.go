package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/agate-ltd/agency-crm/internal/api/dto"
	"github.com/agate-ltd/agency-crm/internal/service"
)

// ContactHandler exposes the public contact form and its admin listing.
type ContactHandler struct {
	contacts *service.ContactService
}

// NewContactHandler constructs handler.
func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Create handles POST /api/contact/createContact.
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	msg, err := h.contacts.Create(requestContext(c), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, dto.NewContactResponse(msg))
}

// List handles GET /api/contact/getContacts.
func (h *ContactHandler) List(c *fiber.Ctx) error {
	page, err := h.contacts.List(requestContext(c), c.QueryInt("startIndex", 0), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	out := make([]dto.ContactResponse, 0, len(page.Contacts))
	for i := range page.Contacts {
		out = append(out, dto.NewContactResponse(&page.Contacts[i]))
	}
	return respond(c, http.StatusOK, dto.ContactListResponse{Contacts: out, TotalContacts: page.TotalContacts})
}
