package services

import (
	"context"
	"strings"

	"lifemate-backend/internal/models"
	"lifemate-backend/internal/repository"
)

const remedyListLimit = 20

// WellnessService serves the remedy catalogue and pays the one-time practice
// completion reward.
type WellnessService struct {
	repo    *repository.Repository
	rewards *RewardService
}

func NewWellnessService(repo *repository.Repository, rewards *RewardService) *WellnessService {
	return &WellnessService{repo: repo, rewards: rewards}
}

// List returns verified remedies.
func (s *WellnessService) List(ctx context.Context) ([]models.WellnessRemedy, error) {
	return s.repo.ListVerifiedRemedies(ctx, remedyListLimit)
}

// Search filters verified remedies by a case-insensitive term across name,
// focus, description and ingredients.
func (s *WellnessService) Search(ctx context.Context, query string) ([]models.WellnessRemedy, error) {
	remedies, err := s.repo.ListVerifiedRemedies(ctx, remedyListLimit)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return remedies, nil
	}

	q := strings.ToLower(query)
	matched := make([]models.WellnessRemedy, 0, len(remedies))
	for _, remedy := range remedies {
		if remedyMatches(&remedy, q) {
			matched = append(matched, remedy)
		}
	}
	return matched, nil
}

func remedyMatches(remedy *models.WellnessRemedy, q string) bool {
	if strings.Contains(strings.ToLower(remedy.Name), q) ||
		strings.Contains(strings.ToLower(remedy.WellnessFocus), q) ||
		strings.Contains(strings.ToLower(remedy.Description), q) {
		return true
	}
	for _, ingredient := range remedy.Ingredients {
		if strings.Contains(strings.ToLower(ingredient), q) {
			return true
		}
	}
	return false
}

// CompletePractice records that an account practiced a remedy and credits the
// completion reward the first time. Returns whether the reward was credited.
func (s *WellnessService) CompletePractice(ctx context.Context, accountID, remedyID uint) (bool, error) {
	if _, err := s.repo.GetRemedy(ctx, remedyID); err != nil {
		return false, err
	}
	return s.rewards.CreditPracticeCompletion(ctx, accountID, remedyID)
}
