package model

import "time"

// User represents an account that can authenticate against the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email        string    `json:"email" gorm:"index;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	IsActive     bool      `json:"is_active" gorm:"default:true;index"`
	IsSuperuser  bool      `json:"is_superuser" gorm:"default:false"`
	IsStaff      bool      `json:"is_staff" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Profile *UserProfile `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}

// OwningOrganization reports the organization the user belongs to via its
// profile. Unaffiliated accounts and accounts without a profile return nil.
func (u *User) OwningOrganization() *uint {
	if u.Profile == nil {
		return nil
	}
	return u.Profile.OrganizationID
}
