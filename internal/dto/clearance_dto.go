package dto

import "github.com/emscoord/internship-api/internal/milestone"

// ClearanceResponse aggregates every sub-checklist for an internship plus the
// overall certification-exam gate.
type ClearanceResponse struct {
	InternshipID   uint              `json:"internship_id"`
	Placement      milestone.Summary `json:"placement"`
	Exam           milestone.Summary `json:"exam"`
	Phase1         milestone.Summary `json:"phase1"`
	Phase2         milestone.Summary `json:"phase2"`
	Closeout       milestone.Summary `json:"closeout"`
	ExamCleared    bool              `json:"exam_cleared"`
	NotifyEligible bool              `json:"notify_eligible"`
}

// CloseoutSummaryResponse is the closeout-tab aggregation.
type CloseoutSummaryResponse struct {
	InternshipID uint              `json:"internship_id"`
	Checklist    milestone.Summary `json:"checklist"`
	Documents    int               `json:"documents"`
	Surveys      int               `json:"surveys"`
	Verified     bool              `json:"employment_verified"`
}
