package models

import "time"

// PreceptorAssignment links a preceptor to an internship for a time range.
type PreceptorAssignment struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	InternshipID uint       `gorm:"index;not null" json:"internship_id"`
	PreceptorID  uint       `gorm:"index;not null" json:"preceptor_id"`
	Role         string     `gorm:"size:32;not null" json:"role"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Active       bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Preceptor Preceptor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"preceptor"`
}

const (
	// RolePrimary is the lead preceptor. At most one active primary per internship.
	RolePrimary = "primary"
	// RoleSecondary covers shifts the primary cannot.
	RoleSecondary = "secondary"
	// RoleBackup steps in when neither primary nor secondary is available.
	RoleBackup = "backup"
)

// ValidAssignmentRole reports whether the value is a known preceptor role.
func ValidAssignmentRole(role string) bool {
	switch role {
	case RolePrimary, RoleSecondary, RoleBackup:
		return true
	default:
		return false
	}
}
