package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lifemate-backend/internal/models"
	"lifemate-backend/internal/services"
)

type WellnessHandler struct {
	ledgerService   *services.LedgerService
	wellnessService *services.WellnessService
}

func NewWellnessHandler(ledgerService *services.LedgerService, wellnessService *services.WellnessService) *WellnessHandler {
	return &WellnessHandler{
		ledgerService:   ledgerService,
		wellnessService: wellnessService,
	}
}

// List returns verified remedies, optionally filtered by text query.
// GET /wellness/remedies?q=sleep
func (h *WellnessHandler) List(c *gin.Context) {
	query := c.Query("q")

	var (
		remedies []models.WellnessRemedy
		err      error
	)
	if query != "" {
		remedies, err = h.wellnessService.Search(c.Request.Context(), query)
	} else {
		remedies, err = h.wellnessService.List(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get remedies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    remedies,
		"count":   len(remedies),
	})
}

// CompletePractice marks a remedy practiced and credits the one-time reward.
// Repeat completions succeed but pay nothing.
// POST /wellness/remedies/:id/complete
func (h *WellnessHandler) CompletePractice(c *gin.Context) {
	account, ok := currentAccount(c, h.ledgerService)
	if !ok {
		return
	}

	remedyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid remedy ID"})
		return
	}

	credited, err := h.wellnessService.CompletePractice(c.Request.Context(), account.ID, uint(remedyID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"credited": credited,
	})
}
