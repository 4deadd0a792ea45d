package model

import "time"

// UploadedFile is metadata for a stored file. The bytes themselves live in
// external storage; this record carries ownership and tenant scope.
type UploadedFile struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"size:255;not null"`
	ContentType    string    `json:"content_type" gorm:"size:100"`
	Size           int64     `json:"size"`
	StoragePath    string    `json:"-" gorm:"size:512;not null"`
	OwnerID        uint      `json:"owner_id" gorm:"index;not null"`
	OrganizationID *uint     `json:"organization_id" gorm:"index"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OwningOrganization implements the tenant scoping contract.
func (f *UploadedFile) OwningOrganization() *uint { return f.OrganizationID }
