package database

import (
	"fmt"
	"log"

	"lifemate-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect establishes a connection to the PostgreSQL database
func Connect(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Error),
		DisableForeignKeyConstraintWhenMigrating: true,
	})

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established successfully")
	return nil
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate() error {
	// Migrate identity and ledger models first
	ledgerModels := []interface{}{
		&models.User{},
		&models.Account{},
		&models.TransactionRecord{},
		&models.WithdrawalRequest{},
	}

	for _, model := range ledgerModels {
		if err := DB.AutoMigrate(model); err != nil {
			log.Printf("Warning: migration issue for %T: %v", model, err)
		}
	}

	// Migrate reward-source models
	rewardModels := []interface{}{
		&models.AdRevenueEvent{},
		&models.AdImpression{},
		&models.GameScore{},
		&models.Tournament{},
		&models.TournamentParticipation{},
		&models.PracticeCompletion{},
	}

	for _, model := range rewardModels {
		if err := DB.AutoMigrate(model); err != nil {
			log.Printf("Warning: migration issue for %T: %v", model, err)
		}
	}

	// Migrate content models
	contentModels := []interface{}{
		&models.JobPosting{},
		&models.WellnessRemedy{},
		&models.CareerAdvice{},
	}

	for _, model := range contentModels {
		if err := DB.AutoMigrate(model); err != nil {
			log.Printf("Warning: migration issue for %T: %v", model, err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
