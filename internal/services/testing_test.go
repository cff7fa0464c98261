package services

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lifemate-backend/internal/models"
	"lifemate-backend/internal/repository"
)

// setupTestDB opens the shared in-memory database and wipes every table so
// each test starts clean. :memory: with cache=shared survives gorm's
// connection pooling.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.TransactionRecord{},
		&models.WithdrawalRequest{},
		&models.AdRevenueEvent{},
		&models.AdImpression{},
		&models.GameScore{},
		&models.Tournament{},
		&models.TournamentParticipation{},
		&models.PracticeCompletion{},
		&models.WellnessRemedy{},
		&models.CareerAdvice{},
		&models.JobPosting{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	for _, table := range []string{
		"transaction_records", "withdrawal_requests", "ad_revenue_events",
		"ad_impressions", "game_scores", "tournament_participations",
		"tournaments", "practice_completions", "wellness_remedies",
		"career_advice", "job_postings", "accounts", "users",
	} {
		db.Exec("DELETE FROM " + table)
	}

	return db
}

// newTestAccount creates a user with a zero-balance wallet.
func newTestAccount(t *testing.T, db *gorm.DB, userID uint) *models.Account {
	t.Helper()

	repo := repository.NewRepository(db)
	user := models.User{ID: userID, Email: fmt.Sprintf("user%d@example.com", userID), Name: "Test User"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	account, err := repo.GetOrCreateAccount(context.Background(), userID)
	if err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	return account
}
