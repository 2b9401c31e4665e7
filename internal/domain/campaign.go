package domain

import "time"

// Campaign is a marketing engagement for exactly one client.
type Campaign struct {
	ID               string
	ClientID         string
	Title            string
	PlannedStartDate *time.Time
	PlannedEndDate   *time.Time
	EstimatedCost    float64
	Budget           float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
