package model

import "time"

// Subscription statuses an organization can be in.
const (
	SubscriptionTrial     = "trial"
	SubscriptionActive    = "active"
	SubscriptionSuspended = "suspended"
	SubscriptionCancelled = "cancelled"
)

// Organization is an isolated tenant. All scoped resources reference at most
// one organization; the slug is globally unique.
type Organization struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Name               string    `json:"name" gorm:"size:255;not null"`
	Slug               string    `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	SubscriptionStatus string    `json:"subscription_status" gorm:"size:50;default:'trial';index"`
	SubscriptionTier   string    `json:"subscription_tier" gorm:"size:50;default:'trial'"`
	MaxUsers           int       `json:"max_users" gorm:"default:50"`
	Settings           string    `json:"settings,omitempty" gorm:"type:json"`
	PartyName          string    `json:"party_name" gorm:"size:255"`
	PartySymbol        string    `json:"party_symbol" gorm:"size:50"`
	PartyColor         string    `json:"party_color" gorm:"size:20"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
