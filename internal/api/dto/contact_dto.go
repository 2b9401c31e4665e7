package dto

import (
	"time"

	"github.com/agate-ltd/agency-crm/internal/domain"
)

// ContactRequest payload for the public contact form.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactResponse describes a stored message.
type ContactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewContactResponse maps a contact message.
func NewContactResponse(m *domain.ContactMessage) ContactResponse {
	return ContactResponse{ID: m.ID, Name: m.Name, Email: m.Email, Message: m.Message, CreatedAt: m.CreatedAt}
}

// ContactListResponse is one page of messages with the overall total.
type ContactListResponse struct {
	Contacts      []ContactResponse `json:"contacts"`
	TotalContacts int               `json:"totalContacts"`
}
