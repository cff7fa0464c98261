package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lifemate-backend/internal/auth"
	"lifemate-backend/internal/models"
	"lifemate-backend/internal/repository"
	"lifemate-backend/internal/services"
)

// currentAccount resolves the wallet account for the authenticated user.
// Writes the error response itself so handlers can just return on false.
func currentAccount(c *gin.Context, ledger *services.LedgerService) (*models.Account, bool) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	account, err := ledger.AccountForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account"})
		return nil, false
	}
	return account, true
}

// respondError maps service and repository errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrMissingDestination):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrBelowMinimum),
		errors.Is(err, repository.ErrInsufficientFunds):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrAlreadyJoined),
		errors.Is(err, repository.ErrTournamentClosed),
		errors.Is(err, repository.ErrWithdrawalNotPending),
		errors.Is(err, repository.ErrWithdrawalNotApproved):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, repository.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
