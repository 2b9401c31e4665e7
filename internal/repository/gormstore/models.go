package gormstore

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agate-ltd/agency-crm/internal/domain"
)

type staffRow struct {
	ID             string `gorm:"primaryKey;size:36"`
	StaffID        string `gorm:"uniqueIndex;size:6;not null"`
	FirstName      string `gorm:"not null"`
	LastName       string `gorm:"not null"`
	PasswordHash   string `gorm:"not null"`
	ProfilePicture string
	Roles          uint8 `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (staffRow) TableName() string { return "staff_members" }

func (r *staffRow) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r staffRow) toDomain() *domain.StaffMember {
	return &domain.StaffMember{
		ID:             r.ID,
		StaffID:        r.StaffID,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		PasswordHash:   r.PasswordHash,
		ProfilePicture: r.ProfilePicture,
		Roles:          domain.Roles(r.Roles),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

type clientRow struct {
	ID                   string `gorm:"primaryKey;size:36"`
	Name                 string `gorm:"size:50;not null"`
	Surname              string `gorm:"size:50;not null"`
	Email                string `gorm:"size:100;not null"`
	Address              string
	CompanyName          string `gorm:"size:200"`
	ContactPersonDetails string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (clientRow) TableName() string { return "clients" }

func (r *clientRow) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r clientRow) toDomain() *domain.Client {
	return &domain.Client{
		ID:                   r.ID,
		Name:                 r.Name,
		Surname:              r.Surname,
		Email:                r.Email,
		Address:              r.Address,
		CompanyName:          r.CompanyName,
		ContactPersonDetails: r.ContactPersonDetails,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

type campaignRow struct {
	ID               string `gorm:"primaryKey;size:36"`
	ClientID         string `gorm:"index;size:36;not null"`
	Title            string `gorm:"not null"`
	PlannedStartDate *time.Time
	PlannedEndDate   *time.Time
	EstimatedCost    float64 `gorm:"not null"`
	Budget           float64 `gorm:"not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (campaignRow) TableName() string { return "campaigns" }

func (r *campaignRow) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r campaignRow) toDomain() *domain.Campaign {
	return &domain.Campaign{
		ID:               r.ID,
		ClientID:         r.ClientID,
		Title:            r.Title,
		PlannedStartDate: r.PlannedStartDate,
		PlannedEndDate:   r.PlannedEndDate,
		EstimatedCost:    r.EstimatedCost,
		Budget:           r.Budget,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

type contactRow struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Message   string `gorm:"not null"`
	CreatedAt time.Time
}

func (contactRow) TableName() string { return "contact_messages" }

func (r *contactRow) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// AutoMigrate creates or updates every table the store uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&staffRow{}, &clientRow{}, &campaignRow{}, &contactRow{})
}
