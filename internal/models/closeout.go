package models

import (
	"time"

	"gorm.io/datatypes"
)

// CloseoutDocument is an uploaded file attached to an internship's closeout packet.
type CloseoutDocument struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	InternshipID uint      `gorm:"index;not null" json:"internship_id"`
	DocType      string    `gorm:"size:64;not null" json:"doc_type"`
	FileName     string    `gorm:"size:255" json:"file_name"`
	FileURL      string    `gorm:"size:512;not null" json:"file_url"`
	UploadedBy   string    `gorm:"size:128" json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	// DocTypeFinalEval is the signed final evaluation packet.
	DocTypeFinalEval = "final_eval"
	// DocTypeSkillsSheet is the completed skills verification sheet.
	DocTypeSkillsSheet = "skills_sheet"
	// DocTypeTimeLog is the shift/hour log export.
	DocTypeTimeLog = "time_log"
	// DocTypeOther covers anything the coordinator attaches ad hoc.
	DocTypeOther = "other"
)

// ValidDocType reports whether the discriminator is one of the accepted kinds.
func ValidDocType(docType string) bool {
	switch docType {
	case DocTypeFinalEval, DocTypeSkillsSheet, DocTypeTimeLog, DocTypeOther:
		return true
	default:
		return false
	}
}

// CloseoutSurvey stores an exit survey response keyed to an internship.
type CloseoutSurvey struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	InternshipID uint           `gorm:"index;not null" json:"internship_id"`
	Respondent   string         `gorm:"size:32;not null" json:"respondent"`
	Responses    datatypes.JSON `gorm:"type:json" json:"responses"`
	SubmittedAt  *time.Time     `json:"submitted_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

const (
	// RespondentStudent is the exiting intern.
	RespondentStudent = "student"
	// RespondentPreceptor is the supervising preceptor.
	RespondentPreceptor = "preceptor"
	// RespondentAgency is the agency contact.
	RespondentAgency = "agency"
)

// EmploymentVerification records post-internship hire confirmation.
type EmploymentVerification struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	InternshipID uint       `gorm:"uniqueIndex;not null" json:"internship_id"`
	Employer     string     `gorm:"size:255" json:"employer"`
	Position     string     `gorm:"size:128" json:"position"`
	HireDate     *time.Time `json:"hire_date"`
	Verified     bool       `gorm:"not null;default:false" json:"verified"`
	VerifiedDate *time.Time `json:"verified_date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
