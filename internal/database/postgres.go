package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/emscoord/internship-api/internal/models"
)

// ConnectPostgres establishes a connection to the PostgreSQL database using the provided DSN.
func ConnectPostgres(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn must not be empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return db, nil
}

// Migrate applies the schema for all persisted models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Cohort{},
		&models.Student{},
		&models.Agency{},
		&models.Preceptor{},
		&models.Internship{},
		&models.PreceptorAssignment{},
		&models.CloseoutDocument{},
		&models.CloseoutSurvey{},
		&models.EmploymentVerification{},
		&models.Scenario{},
		&models.SummativeEvaluation{},
		&models.EvaluationScore{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
