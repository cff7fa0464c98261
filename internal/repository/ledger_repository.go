package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"lifemate-backend/internal/models"
)

// GetOrCreateAccount returns the account for a user, creating a zero-balance
// row on first read.
func (r *Repository) GetOrCreateAccount(ctx context.Context, userID uint) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&account).Error
	if err == nil {
		return &account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to read account: %w", err)
	}

	account = models.Account{
		UserID:           userID,
		Balance:          decimal.Zero,
		Currency:         "USD",
		TotalEarnings:    decimal.Zero,
		TotalWithdrawals: decimal.Zero,
	}
	if err := r.db.WithContext(ctx).Create(&account).Error; err != nil {
		if isUniqueViolation(err) {
			// Concurrent first read created it; re-fetch.
			if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&account).Error; err != nil {
				return nil, fmt.Errorf("failed to read account: %w", err)
			}
			return &account, nil
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &account, nil
}

// GetAccount returns an account by its ledger ID.
func (r *Repository) GetAccount(ctx context.Context, accountID uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("id = ?", accountID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to read account: %w", err)
	}
	return &account, nil
}

// applyDelta applies a signed balance change and appends the matching ledger
// entry, both on the given transaction handle. Negative deltas are guarded by
// a conditional update so the balance can never be driven below zero.
func applyDelta(tx *gorm.DB, accountID uint, delta decimal.Decimal, meta models.TransactionMeta) (*models.TransactionRecord, decimal.Decimal, error) {
	update := tx.Model(&models.Account{}).Where("id = ?", accountID)
	if delta.IsNegative() {
		update = update.Where("balance + ? >= 0", delta)
	}

	res := update.Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to update balance: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var account models.Account
		if err := tx.Where("id = ?", accountID).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, decimal.Zero, ErrAccountNotFound
			}
			return nil, decimal.Zero, fmt.Errorf("failed to read account: %w", err)
		}
		return nil, account.Balance, ErrInsufficientFunds
	}

	var account models.Account
	if err := tx.Where("id = ?", accountID).First(&account).Error; err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to read account: %w", err)
	}

	status := meta.Status
	if status == "" {
		status = models.TransactionStatusCompleted
	}
	record := &models.TransactionRecord{
		ID:          uuid.New(),
		AccountID:   accountID,
		Amount:      delta,
		Type:        meta.Type,
		Status:      status,
		Description: meta.Description,
		ReferenceID: meta.ReferenceID,
		CreatedAt:   time.Now(),
	}
	if err := tx.Create(record).Error; err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to create transaction record: %w", err)
	}

	return record, account.Balance, nil
}

// AdjustBalance atomically applies delta and appends the matching transaction
// record. The two writes commit or fail together.
func (r *Repository) AdjustBalance(ctx context.Context, accountID uint, delta decimal.Decimal, meta models.TransactionMeta) (*models.TransactionRecord, decimal.Decimal, error) {
	var (
		record  *models.TransactionRecord
		balance decimal.Decimal
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		record, balance, err = applyDelta(tx, accountID, delta, meta)
		return err
	})
	if err != nil {
		return nil, balance, err
	}
	return record, balance, nil
}

// ClampNonNegative overwrites a negative balance with zero. Idempotent: a
// non-negative balance is left untouched and reported as not clamped.
func (r *Repository) ClampNonNegative(ctx context.Context, accountID uint) (bool, decimal.Decimal, error) {
	var (
		clamped bool
		balance decimal.Decimal
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Account{}).
			Where("id = ? AND balance < 0", accountID).
			Update("balance", decimal.Zero)
		if res.Error != nil {
			return fmt.Errorf("failed to clamp balance: %w", res.Error)
		}
		clamped = res.RowsAffected > 0

		var account models.Account
		if err := tx.Where("id = ?", accountID).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("failed to read account: %w", err)
		}
		balance = account.Balance
		return nil
	})
	return clamped, balance, err
}

// ListTransactions returns an account's ledger entries, newest first.
func (r *Repository) ListTransactions(ctx context.Context, accountID uint, limit, offset int) ([]models.TransactionRecord, error) {
	var records []models.TransactionRecord
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return records, nil
}

// CreditAdRevenue persists the revenue event and credits the user share in one
// transaction.
func (r *Repository) CreditAdRevenue(ctx context.Context, accountID uint, adType models.AdType, gross decimal.Decimal) (*models.AdRevenueEvent, decimal.Decimal, error) {
	userShare, platformShare := models.SplitRevenue(gross)

	event := &models.AdRevenueEvent{
		ID:            uuid.New(),
		AccountID:     accountID,
		AdType:        adType,
		Revenue:       gross,
		UserShare:     userShare,
		PlatformShare: platformShare,
		CreatedAt:     time.Now(),
	}

	var balance decimal.Decimal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("failed to create ad revenue event: %w", err)
		}

		meta := models.TransactionMeta{
			Type:        models.TransactionTypeReward,
			Description: fmt.Sprintf("Ad revenue share (%s)", adType),
		}
		var err error
		_, balance, err = applyDelta(tx, accountID, userShare, meta)
		if err != nil {
			return err
		}

		return tx.Model(&models.Account{}).Where("id = ?", accountID).
			Update("total_earnings", gorm.Expr("total_earnings + ?", userShare)).Error
	})
	if err != nil {
		return nil, decimal.Zero, err
	}
	return event, balance, nil
}

// RecordGameScore writes the score row, credits the coin reward and bumps the
// account's game counters, all in one transaction. The high score only moves
// upward.
func (r *Repository) RecordGameScore(ctx context.Context, accountID uint, score, durationSeconds int) (*models.GameScore, decimal.Decimal, error) {
	coins := models.CoinsForScore(score)

	gameScore := &models.GameScore{
		ID:              uuid.New(),
		AccountID:       accountID,
		GameName:        models.DefaultGameName,
		Score:           score,
		CoinsEarned:     coins,
		DurationSeconds: durationSeconds,
		CreatedAt:       time.Now(),
	}

	var balance decimal.Decimal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.Where("id = ?", accountID).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("failed to read account: %w", err)
		}

		gameScore.IsHighScore = score > account.GameHighScore
		if err := tx.Create(gameScore).Error; err != nil {
			return fmt.Errorf("failed to create game score: %w", err)
		}

		meta := models.TransactionMeta{
			Type:        models.TransactionTypeReward,
			Description: fmt.Sprintf("Game reward: %s score %d", gameScore.GameName, score),
		}
		var err error
		_, balance, err = applyDelta(tx, accountID, decimal.NewFromInt(coins), meta)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"total_games_played": gorm.Expr("total_games_played + 1"),
			"total_earnings":     gorm.Expr("total_earnings + ?", decimal.NewFromInt(coins)),
		}
		if gameScore.IsHighScore {
			updates["game_high_score"] = score
		}
		return tx.Model(&models.Account{}).Where("id = ?", accountID).Updates(updates).Error
	})
	if err != nil {
		return nil, decimal.Zero, err
	}
	return gameScore, balance, nil
}

// ListGameScores returns an account's game history, newest first.
func (r *Repository) ListGameScores(ctx context.Context, accountID uint, limit int) ([]models.GameScore, error) {
	var scores []models.GameScore
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&scores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list game scores: %w", err)
	}
	return scores, nil
}

// CreateAdImpression records one shown ad for analytics.
func (r *Repository) CreateAdImpression(ctx context.Context, adType models.AdType) error {
	impression := &models.AdImpression{
		ID:        uuid.New(),
		AdType:    adType,
		CreatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(impression).Error; err != nil {
		return fmt.Errorf("failed to create ad impression: %w", err)
	}
	return nil
}

// RecordPracticeCompletion marks a wellness practice as completed and credits
// the reward once. A repeat completion is a no-op.
func (r *Repository) RecordPracticeCompletion(ctx context.Context, accountID, remedyID uint, rewardCoins int64) (bool, decimal.Decimal, error) {
	var (
		credited bool
		balance  decimal.Decimal
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		completion := &models.PracticeCompletion{
			ID:        uuid.New(),
			AccountID: accountID,
			RemedyID:  remedyID,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(completion).Error; err != nil {
			if isUniqueViolation(err) {
				return nil // already completed, nothing to credit
			}
			return fmt.Errorf("failed to create practice completion: %w", err)
		}

		meta := models.TransactionMeta{
			Type:        models.TransactionTypeReward,
			Description: fmt.Sprintf("Wellness practice completed (remedy %d)", remedyID),
		}
		var err error
		_, balance, err = applyDelta(tx, accountID, decimal.NewFromInt(rewardCoins), meta)
		if err != nil {
			return err
		}
		credited = true

		return tx.Model(&models.Account{}).Where("id = ?", accountID).
			Update("total_earnings", gorm.Expr("total_earnings + ?", decimal.NewFromInt(rewardCoins))).Error
	})
	if err != nil {
		return false, decimal.Zero, err
	}
	return credited, balance, nil
}

// CreateWithdrawal debits the balance, creates the PENDING request and the
// PENDING ledger entry as one all-or-nothing operation. Callers validate the
// amount before getting here; the balance guard lives in applyDelta.
func (r *Repository) CreateWithdrawal(ctx context.Context, accountID uint, amount decimal.Decimal, dest models.Destination) (*models.WithdrawalRequest, decimal.Decimal, error) {
	request := &models.WithdrawalRequest{
		ID:                uuid.New(),
		AccountID:         accountID,
		Amount:            amount,
		BankName:          dest.BankName,
		AccountNumber:     dest.AccountNumber,
		AccountHolderName: dest.AccountHolderName,
		UpiID:             dest.UpiID,
		Status:            models.WithdrawalStatusPending,
		CreatedAt:         time.Now(),
	}

	var balance decimal.Decimal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		meta := models.TransactionMeta{
			Type:        models.TransactionTypeWithdrawalRequest,
			Status:      models.TransactionStatusPending,
			Description: fmt.Sprintf("Withdrawal request to %s", dest.Label()),
			ReferenceID: &request.ID,
		}
		var err error
		_, balance, err = applyDelta(tx, accountID, amount.Neg(), meta)
		if err != nil {
			return err
		}

		if err := tx.Create(request).Error; err != nil {
			return fmt.Errorf("failed to create withdrawal request: %w", err)
		}

		return tx.Model(&models.Account{}).Where("id = ?", accountID).
			Update("total_withdrawals", gorm.Expr("total_withdrawals + ?", amount)).Error
	})
	if err != nil {
		return nil, balance, err
	}
	return request, balance, nil
}

// GetWithdrawal returns a withdrawal request by ID.
func (r *Repository) GetWithdrawal(ctx context.Context, requestID uuid.UUID) (*models.WithdrawalRequest, error) {
	var request models.WithdrawalRequest
	if err := r.db.WithContext(ctx).Where("id = ?", requestID).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read withdrawal request: %w", err)
	}
	return &request, nil
}

// ListWithdrawals returns an account's withdrawal requests, newest first.
func (r *Repository) ListWithdrawals(ctx context.Context, accountID uint) ([]models.WithdrawalRequest, error) {
	var requests []models.WithdrawalRequest
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawal requests: %w", err)
	}
	return requests, nil
}

// ListWithdrawalsByStatus returns withdrawal requests in a given status
// across all accounts, oldest first so the review queue is fair.
func (r *Repository) ListWithdrawalsByStatus(ctx context.Context, status models.WithdrawalStatus, limit int) ([]models.WithdrawalRequest, error) {
	var requests []models.WithdrawalRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawal requests: %w", err)
	}
	return requests, nil
}

// ReviewWithdrawal moves a PENDING request to APPROVED or REJECTED. Rejection
// credits the debited amount back and fails the original ledger entry, in the
// same transaction.
func (r *Repository) ReviewWithdrawal(ctx context.Context, requestID uuid.UUID, approve bool) (*models.WithdrawalRequest, decimal.Decimal, error) {
	var (
		request models.WithdrawalRequest
		balance decimal.Decimal
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", requestID).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to read withdrawal request: %w", err)
		}
		if request.Status != models.WithdrawalStatusPending {
			return ErrWithdrawalNotPending
		}

		now := time.Now()
		newStatus := models.WithdrawalStatusApproved
		if !approve {
			newStatus = models.WithdrawalStatusRejected
		}
		if err := tx.Model(&request).Updates(map[string]interface{}{
			"status":       newStatus,
			"processed_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to update withdrawal request: %w", err)
		}
		request.Status = newStatus
		request.ProcessedAt = &now

		if approve {
			return nil
		}

		// Rejected: compensate the optimistic debit and fail the pending entry.
		meta := models.TransactionMeta{
			Type:        models.TransactionTypeWithdrawalReversal,
			Description: fmt.Sprintf("Withdrawal rejected, %s refunded", request.Amount),
			ReferenceID: &request.ID,
		}
		var err error
		_, balance, err = applyDelta(tx, request.AccountID, request.Amount, meta)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.TransactionRecord{}).
			Where("reference_id = ? AND type = ?", request.ID, models.TransactionTypeWithdrawalRequest).
			Update("status", models.TransactionStatusFailed).Error; err != nil {
			return fmt.Errorf("failed to fail transaction record: %w", err)
		}

		return tx.Model(&models.Account{}).Where("id = ?", request.AccountID).
			Update("total_withdrawals", gorm.Expr("total_withdrawals - ?", request.Amount)).Error
	})
	if err != nil {
		return nil, balance, err
	}
	return &request, balance, nil
}

// CompleteWithdrawal moves an APPROVED request to COMPLETED, completes the
// original ledger entry and appends a zero-amount completion marker. No
// balance mutation happens here; the debit was taken at request time.
func (r *Repository) CompleteWithdrawal(ctx context.Context, requestID uuid.UUID) (*models.WithdrawalRequest, error) {
	var request models.WithdrawalRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", requestID).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to read withdrawal request: %w", err)
		}
		if request.Status != models.WithdrawalStatusApproved {
			return ErrWithdrawalNotApproved
		}

		now := time.Now()
		if err := tx.Model(&request).Updates(map[string]interface{}{
			"status":       models.WithdrawalStatusCompleted,
			"processed_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to update withdrawal request: %w", err)
		}
		request.Status = models.WithdrawalStatusCompleted
		request.ProcessedAt = &now

		if err := tx.Model(&models.TransactionRecord{}).
			Where("reference_id = ? AND type = ?", request.ID, models.TransactionTypeWithdrawalRequest).
			Update("status", models.TransactionStatusCompleted).Error; err != nil {
			return fmt.Errorf("failed to complete transaction record: %w", err)
		}

		marker := &models.TransactionRecord{
			ID:          uuid.New(),
			AccountID:   request.AccountID,
			Amount:      decimal.Zero,
			Type:        models.TransactionTypeWithdrawalCompletion,
			Status:      models.TransactionStatusCompleted,
			Description: fmt.Sprintf("Withdrawal of %s paid out to %s", request.Amount, request.BankName),
			ReferenceID: &request.ID,
			CreatedAt:   now,
		}
		if err := tx.Create(marker).Error; err != nil {
			return fmt.Errorf("failed to create completion record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}
