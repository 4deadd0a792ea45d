package model

import "time"

// Notification is a message addressed to a user, scoped to the user's
// organization.
type Notification struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Message        string    `json:"message" gorm:"type:text;not null"`
	Read           bool      `json:"read" gorm:"default:false;index"`
	OwnerID        uint      `json:"owner_id" gorm:"index;not null"`
	OrganizationID *uint     `json:"organization_id" gorm:"index"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OwningOrganization implements the tenant scoping contract.
func (n *Notification) OwningOrganization() *uint { return n.OrganizationID }
