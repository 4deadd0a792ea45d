package model

import "time"

// Task statuses.
const (
	TaskPending    = "pending"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
)

// Task is a unit of work owned by a user and scoped to the owner's
// organization.
type Task struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Title          string     `json:"title" gorm:"size:255;not null"`
	Description    string     `json:"description" gorm:"type:text"`
	Status         string     `json:"status" gorm:"size:50;default:'pending';index"`
	Priority       string     `json:"priority" gorm:"size:20;default:'medium'"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	OwnerID        uint       `json:"owner_id" gorm:"index;not null"`
	OrganizationID *uint      `json:"organization_id" gorm:"index"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// OwningOrganization implements the tenant scoping contract.
func (t *Task) OwningOrganization() *uint { return t.OrganizationID }
