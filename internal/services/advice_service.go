package services

import (
	"context"
	"fmt"
	"strings"

	"lifemate-backend/internal/aichat"
	"lifemate-backend/internal/models"
	"lifemate-backend/internal/repository"
)

// CareerAdviceService asks the chat model for advice and keeps a per-account
// history of exchanges. No ledger interaction.
type CareerAdviceService struct {
	repo   *repository.Repository
	client *aichat.Client
}

func NewCareerAdviceService(repo *repository.Repository, client *aichat.Client) *CareerAdviceService {
	return &CareerAdviceService{repo: repo, client: client}
}

// Ask sends the question to the model and persists the exchange.
func (s *CareerAdviceService) Ask(ctx context.Context, accountID uint, query, category string) (*models.CareerAdvice, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	response, tokens, err := s.client.Complete(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("advice completion failed: %w", err)
	}

	advice := &models.CareerAdvice{
		AccountID:  accountID,
		Query:      query,
		Response:   response,
		Category:   category,
		Model:      s.client.Model(),
		TokensUsed: tokens,
	}
	if err := s.repo.SaveCareerAdvice(ctx, advice); err != nil {
		return nil, err
	}
	return advice, nil
}

// History returns an account's past exchanges, newest first.
func (s *CareerAdviceService) History(ctx context.Context, accountID uint, limit int) ([]models.CareerAdvice, error) {
	return s.repo.ListCareerAdvice(ctx, accountID, limit)
}
