package models

import "time"

// Scenario is a summative testing scenario students are evaluated against.
type Scenario struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	Difficulty     string    `gorm:"size:32;not null;default:moderate" json:"difficulty"`
	PointThreshold int       `gorm:"not null" json:"point_threshold"`
	MaxPoints      int       `gorm:"not null" json:"max_points"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

const (
	// DifficultyEasy marks an entry-level scenario.
	DifficultyEasy = "easy"
	// DifficultyModerate is the default scenario tier.
	DifficultyModerate = "moderate"
	// DifficultyHard marks a high-acuity scenario.
	DifficultyHard = "hard"
)

// ValidDifficulty reports whether the label is a known tier.
func ValidDifficulty(difficulty string) bool {
	switch difficulty {
	case DifficultyEasy, DifficultyModerate, DifficultyHard:
		return true
	default:
		return false
	}
}

// SummativeEvaluation is a group evaluation session run against one scenario.
type SummativeEvaluation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ScenarioID uint      `gorm:"index;not null" json:"scenario_id"`
	EvalDate   time.Time `gorm:"not null" json:"eval_date"`
	Evaluator  string    `gorm:"size:128" json:"evaluator"`
	Notes      string    `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Scenario Scenario          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"scenario"`
	Scores   []EvaluationScore `gorm:"foreignKey:EvaluationID" json:"scores"`
}

// EvaluationScore is one student's result within a summative evaluation.
// Any critical-fail flag overrides the numeric score.
type EvaluationScore struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	EvaluationID uint `gorm:"index;not null" json:"evaluation_id"`
	StudentID    uint `gorm:"index;not null" json:"student_id"`
	Points       int  `gorm:"not null" json:"points"`

	MandatorySkillFailure bool `gorm:"not null;default:false" json:"mandatory_skill_failure"`
	HarmfulIntervention   bool `gorm:"not null;default:false" json:"harmful_intervention"`
	UnprofessionalConduct bool `gorm:"not null;default:false" json:"unprofessional_conduct"`

	Passed    bool      `gorm:"not null;default:false" json:"passed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Student Student `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
}

// HasCriticalFailure reports whether any categorical fail flag is set.
func (s EvaluationScore) HasCriticalFailure() bool {
	return s.MandatorySkillFailure || s.HarmfulIntervention || s.UnprofessionalConduct
}
