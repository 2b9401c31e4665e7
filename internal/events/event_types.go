package events

import (
	"time"

	"github.com/agate-ltd/agency-crm/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStaffCreated     EventType = "staff_created"
	EventStaffUpdated     EventType = "staff_updated"
	EventStaffRolesSet    EventType = "staff_roles_updated"
	EventStaffDeleted     EventType = "staff_deleted"
	EventStaffSignedIn    EventType = "staff_signed_in"
	EventClientCreated    EventType = "client_created"
	EventClientUpdated    EventType = "client_updated"
	EventClientDeleted    EventType = "client_deleted"
	EventCampaignCreated  EventType = "campaign_created"
	EventCampaignUpdated  EventType = "campaign_updated"
	EventCampaignDeleted  EventType = "campaign_deleted"
	EventContactSubmitted EventType = "contact_submitted"
)

// AllEventTypes lists every type services publish.
func AllEventTypes() []EventType {
	return []EventType{
		EventStaffCreated, EventStaffUpdated, EventStaffRolesSet, EventStaffDeleted, EventStaffSignedIn,
		EventClientCreated, EventClientUpdated, EventClientDeleted,
		EventCampaignCreated, EventCampaignUpdated, EventCampaignDeleted,
		EventContactSubmitted,
	}
}

// Actor identifies the staff member behind a change. Empty for public or system actions.
type Actor struct {
	ID      string `json:"id,omitempty"`
	StaffID string `json:"staff_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// StaffPayload describes staff membership changes.
type StaffPayload struct {
	StaffID string   `json:"staff_id"`
	Roles   []string `json:"roles,omitempty"`
}

// ClientDeletedPayload records how many campaigns were removed with the client.
type ClientDeletedPayload struct {
	CampaignsDeleted int `json:"campaigns_deleted"`
}

// CampaignPayload describes a campaign change.
type CampaignPayload struct {
	ClientID string `json:"client_id"`
	Title    string `json:"title"`
}

// RolesPayload is a convenience for staff events.
func RolesPayload(staff *domain.StaffMember) StaffPayload {
	return StaffPayload{StaffID: staff.StaffID, Roles: staff.Roles.Names()}
}
