package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agate-ltd/agency-crm/internal/domain"
)

// Date accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", raw)
}

func (d *Date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// CampaignRequest payload for create and update.
type CampaignRequest struct {
	ClientID         string   `json:"clientId"`
	Title            string   `json:"title"`
	PlannedStartDate *Date    `json:"plannedStartDate"`
	PlannedEndDate   *Date    `json:"plannedEndDate"`
	EstimatedCost    *float64 `json:"estimatedCost"`
	Budget           *float64 `json:"budget"`
}

// StartDate returns the planned start or nil.
func (r CampaignRequest) StartDate() *time.Time { return r.PlannedStartDate.ptr() }

// EndDate returns the planned end or nil.
func (r CampaignRequest) EndDate() *time.Time { return r.PlannedEndDate.ptr() }

// CampaignResponse describes a campaign.
type CampaignResponse struct {
	ID               string     `json:"id"`
	ClientID         string     `json:"clientId"`
	Title            string     `json:"title"`
	PlannedStartDate *time.Time `json:"plannedStartDate,omitempty"`
	PlannedEndDate   *time.Time `json:"plannedEndDate,omitempty"`
	EstimatedCost    float64    `json:"estimatedCost"`
	Budget           float64    `json:"budget"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// NewCampaignResponse maps a campaign.
func NewCampaignResponse(c *domain.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:               c.ID,
		ClientID:         c.ClientID,
		Title:            c.Title,
		PlannedStartDate: c.PlannedStartDate,
		PlannedEndDate:   c.PlannedEndDate,
		EstimatedCost:    c.EstimatedCost,
		Budget:           c.Budget,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
