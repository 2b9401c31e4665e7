package domain

import "time"

// Client is an agency customer.
type Client struct {
	ID                   string
	Name                 string
	Surname              string
	Email                string
	Address              string
	CompanyName          string
	ContactPersonDetails string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ClientSummary pairs a client with the number of campaigns referencing it.
type ClientSummary struct {
	Client
	CampaignCount int
}
