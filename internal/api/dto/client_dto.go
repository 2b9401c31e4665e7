package dto

import (
	"time"

	"github.com/agate-ltd/agency-crm/internal/domain"
)

// ClientRequest payload for create and update.
type ClientRequest struct {
	Name                 string `json:"name"`
	Surname              string `json:"surname"`
	Email                string `json:"email"`
	Address              string `json:"address"`
	CompanyName          string `json:"companyName"`
	ContactPersonDetails string `json:"contactPersonDetails"`
}

// ClientResponse describes a client.
type ClientResponse struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Surname              string    `json:"surname"`
	Email                string    `json:"email"`
	Address              string    `json:"address,omitempty"`
	CompanyName          string    `json:"companyName,omitempty"`
	ContactPersonDetails string    `json:"contactPersonDetails,omitempty"`
	CampaignCount        *int      `json:"campaignCount,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// NewClientResponse maps a client.
func NewClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ID:                   c.ID,
		Name:                 c.Name,
		Surname:              c.Surname,
		Email:                c.Email,
		Address:              c.Address,
		CompanyName:          c.CompanyName,
		ContactPersonDetails: c.ContactPersonDetails,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

// NewClientSummaryResponse maps a client with its campaign count.
func NewClientSummaryResponse(s *domain.ClientSummary) ClientResponse {
	resp := NewClientResponse(&s.Client)
	count := s.CampaignCount
	resp.CampaignCount = &count
	return resp
}
