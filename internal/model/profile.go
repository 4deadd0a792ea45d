package model

import "time"

// UserProfile extends a User with role and tenant membership. Exactly one
// profile exists per user; the role field is only mutated through the role
// assignment flow, never by the owning user directly.
type UserProfile struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Role           string    `json:"role" gorm:"size:50;default:'user'"`
	OrganizationID *uint     `json:"organization_id" gorm:"index"`
	Bio            string    `json:"bio" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}
