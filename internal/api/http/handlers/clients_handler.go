package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/agate-ltd/agency-crm/internal/api/dto"
	"github.com/agate-ltd/agency-crm/internal/service"
)

// ClientsHandler exposes client CRUD.
type ClientsHandler struct {
	clients *service.ClientService
}

// NewClientsHandler constructs handler.
func NewClientsHandler(clients *service.ClientService) *ClientsHandler {
	return &ClientsHandler{clients: clients}
}

// List handles GET /api/clients/get-clients.
func (h *ClientsHandler) List(c *fiber.Ctx) error {
	summaries, err := h.clients.List(requestContext(c))
	if err != nil {
		return err
	}
	out := make([]dto.ClientResponse, 0, len(summaries))
	for i := range summaries {
		out = append(out, dto.NewClientSummaryResponse(&summaries[i]))
	}
	return respond(c, http.StatusOK, out)
}

// Create handles POST /api/clients/create-client.
func (h *ClientsHandler) Create(c *fiber.Ctx) error {
	var req dto.ClientRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	client, err := h.clients.Create(requestContext(c), clientInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, dto.NewClientResponse(client))
}

// Update handles PUT /api/clients/update-client/:id.
func (h *ClientsHandler) Update(c *fiber.Ctx) error {
	var req dto.ClientRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	client, err := h.clients.Update(requestContext(c), c.Params("id"), clientInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewClientResponse(client))
}

// Delete handles DELETE /api/clients/delete-client/:id.
func (h *ClientsHandler) Delete(c *fiber.Ctx) error {
	removed, err := h.clients.Delete(requestContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Client deleted successfully",
		"data":    fiber.Map{"campaignsDeleted": removed},
	})
}

func clientInput(req dto.ClientRequest) service.ClientInput {
	return service.ClientInput{
		Name:                 req.Name,
		Surname:              req.Surname,
		Email:                req.Email,
		Address:              req.Address,
		CompanyName:          req.CompanyName,
		ContactPersonDetails: req.ContactPersonDetails,
	}
}
