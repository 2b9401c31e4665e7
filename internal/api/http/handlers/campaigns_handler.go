package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/agate-ltd/agency-crm/internal/api/dto"
	"github.com/agate-ltd/agency-crm/internal/service"
)

// CampaignsHandler exposes campaign CRUD.
type CampaignsHandler struct {
	campaigns *service.CampaignService
}

// NewCampaignsHandler constructs handler.
func NewCampaignsHandler(campaigns *service.CampaignService) *CampaignsHandler {
	return &CampaignsHandler{campaigns: campaigns}
}

// List handles GET /api/campaigns/get-campaigns[?clientId=].
func (h *CampaignsHandler) List(c *fiber.Ctx) error {
	campaigns, err := h.campaigns.List(requestContext(c), c.Query("clientId"))
	if err != nil {
		return err
	}
	out := make([]dto.CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		out = append(out, dto.NewCampaignResponse(&campaigns[i]))
	}
	return respond(c, http.StatusOK, out)
}

// Create handles POST /api/campaigns/create-campaign.
func (h *CampaignsHandler) Create(c *fiber.Ctx) error {
	var req dto.CampaignRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	campaign, err := h.campaigns.Create(requestContext(c), campaignInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, dto.NewCampaignResponse(campaign))
}

// Update handles PUT /api/campaigns/update-campaign/:id.
func (h *CampaignsHandler) Update(c *fiber.Ctx) error {
	var req dto.CampaignRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	campaign, err := h.campaigns.Update(requestContext(c), c.Params("id"), campaignInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewCampaignResponse(campaign))
}

// Delete handles DELETE /api/campaigns/delete-campaign/:id.
func (h *CampaignsHandler) Delete(c *fiber.Ctx) error {
	if err := h.campaigns.Delete(requestContext(c), c.Params("id")); err != nil {
		return err
	}
	return respondMessage(c, "Campaign deleted successfully")
}

func campaignInput(req dto.CampaignRequest) service.CampaignInput {
	return service.CampaignInput{
		ClientID:         req.ClientID,
		Title:            req.Title,
		PlannedStartDate: req.StartDate(),
		PlannedEndDate:   req.EndDate(),
		EstimatedCost:    req.EstimatedCost,
		Budget:           req.Budget,
	}
}
