package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lifemate-backend/internal/services"
)

type AdviceHandler struct {
	ledgerService *services.LedgerService
	adviceService *services.CareerAdviceService
}

func NewAdviceHandler(ledgerService *services.LedgerService, adviceService *services.CareerAdviceService) *AdviceHandler {
	return &AdviceHandler{
		ledgerService: ledgerService,
		adviceService: adviceService,
	}
}

// Ask sends a career question to the assistant and stores the exchange.
// POST /advice
func (h *AdviceHandler) Ask(c *gin.Context) {
	account, ok := currentAccount(c, h.ledgerService)
	if !ok {
		return
	}

	var req struct {
		Query    string `json:"query" binding:"required"`
		Category string `json:"category"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	advice, err := h.adviceService.Ask(c.Request.Context(), account.ID, req.Query, req.Category)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Advice service unavailable"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    advice,
	})
}

// History returns the user's past advice exchanges, newest first.
// GET /advice?limit=20
func (h *AdviceHandler) History(c *gin.Context) {
	account, ok := currentAccount(c, h.ledgerService)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	history, err := h.adviceService.History(c.Request.Context(), account.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    history,
		"count":   len(history),
	})
}
