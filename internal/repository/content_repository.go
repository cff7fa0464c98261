package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lifemate-backend/internal/models"
)

// UpsertJobPosting inserts a feed posting or refreshes the row already stored
// for its external ID.
func (r *Repository) UpsertJobPosting(ctx context.Context, posting *models.JobPosting) error {
	if posting.ID == uuid.Nil {
		posting.ID = uuid.New()
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "organization", "location", "salary", "description",
			"is_active", "posted_at", "updated_at",
		}),
	}).Create(posting).Error
	if err != nil {
		return fmt.Errorf("failed to upsert job posting: %w", err)
	}
	return nil
}

// ListJobPostings returns active postings, optionally filtered by kind,
// newest first.
func (r *Repository) ListJobPostings(ctx context.Context, kind models.JobKind, limit int) ([]models.JobPosting, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var postings []models.JobPosting
	err := query.Order("posted_at DESC").Limit(limit).Find(&postings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	return postings, nil
}

// GetJobPosting returns one posting by ID.
func (r *Repository) GetJobPosting(ctx context.Context, postingID uuid.UUID) (*models.JobPosting, error) {
	var posting models.JobPosting
	if err := r.db.WithContext(ctx).Where("id = ?", postingID).First(&posting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read job posting: %w", err)
	}
	return &posting, nil
}

// ListVerifiedRemedies returns verified wellness remedies up to a limit.
func (r *Repository) ListVerifiedRemedies(ctx context.Context, limit int) ([]models.WellnessRemedy, error) {
	var remedies []models.WellnessRemedy
	err := r.db.WithContext(ctx).
		Where("is_verified = ?", true).
		Limit(limit).
		Find(&remedies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list remedies: %w", err)
	}
	return remedies, nil
}

// GetRemedy returns one remedy by ID, verified or not.
func (r *Repository) GetRemedy(ctx context.Context, remedyID uint) (*models.WellnessRemedy, error) {
	var remedy models.WellnessRemedy
	if err := r.db.WithContext(ctx).Where("id = ?", remedyID).First(&remedy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read remedy: %w", err)
	}
	return &remedy, nil
}

// SaveCareerAdvice persists one advice exchange.
func (r *Repository) SaveCareerAdvice(ctx context.Context, advice *models.CareerAdvice) error {
	if advice.ID == uuid.Nil {
		advice.ID = uuid.New()
	}
	if advice.CreatedAt.IsZero() {
		advice.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(advice).Error; err != nil {
		return fmt.Errorf("failed to save career advice: %w", err)
	}
	return nil
}

// ListCareerAdvice returns an account's advice history, newest first.
func (r *Repository) ListCareerAdvice(ctx context.Context, accountID uint, limit int) ([]models.CareerAdvice, error) {
	var advice []models.CareerAdvice
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&advice).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list career advice: %w", err)
	}
	return advice, nil
}
