package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lifemate-backend/internal/services"
)

type GameHandler struct {
	ledgerService *services.LedgerService
	rewardService *services.RewardService
}

func NewGameHandler(ledgerService *services.LedgerService, rewardService *services.RewardService) *GameHandler {
	return &GameHandler{
		ledgerService: ledgerService,
		rewardService: rewardService,
	}
}

// SubmitScore records a finished game session and credits the coin reward.
// When a tournament is running the score also counts toward the user's
// tournament standing.
// POST /games/scores
func (h *GameHandler) SubmitScore(c *gin.Context) {
	account, ok := currentAccount(c, h.ledgerService)
	if !ok {
		return
	}

	var req struct {
		Score           int `json:"score"`
		DurationSeconds int `json:"duration_seconds"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Score < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "score must not be negative"})
		return
	}

	gameScore, err := h.rewardService.CreditGameScore(c.Request.Context(), account.ID, req.Score, req.DurationSeconds)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gameScore,
	})
}

// GetScores returns the user's game history, newest first.
// GET /games/scores?limit=50
func (h *GameHandler) GetScores(c *gin.Context) {
	account, ok := currentAccount(c, h.ledgerService)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	scores, err := h.ledgerService.GameScores(c.Request.Context(), account.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get scores"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    scores,
		"count":   len(scores),
	})
}
