package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"lifemate-backend/internal/models"
	"lifemate-backend/internal/services"
)

type AdHandler struct {
	ledgerService *services.LedgerService
	adService     *services.AdService
}

func NewAdHandler(ledgerService *services.LedgerService, adService *services.AdService) *AdHandler {
	return &AdHandler{
		ledgerService: ledgerService,
		adService:     adService,
	}
}

// RecordImpression logs one ad display. No reward is attached; rewards only
// flow through AdWatched for completed views.
// POST /ads/impressions
func (h *AdHandler) RecordImpression(c *gin.Context) {
	var req struct {
		AdType models.AdType `json:"ad_type" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.adService.RecordImpression(c.Request.Context(), req.AdType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record impression"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// AdWatched credits the user's share of a completed ad view. When the client
// omits the revenue estimate the per-type default is used.
// POST /ads/watched
func (h *AdHandler) AdWatched(c *gin.Context) {
	account, ok := currentAccount(c, h.ledgerService)
	if !ok {
		return
	}

	var req struct {
		AdType          models.AdType   `json:"ad_type" binding:"required"`
		RevenueEstimate decimal.Decimal `json:"revenue_estimate"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.adService.AdWatched(c.Request.Context(), account.ID, req.AdType, req.RevenueEstimate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    event,
	})
}
