package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lifemate-backend/internal/models"
	"lifemate-backend/internal/services"
)

// AdminHandler exposes the back-office surface: tournament lifecycle and the
// withdrawal review queue. Routes using it must sit behind the admin
// middleware.
type AdminHandler struct {
	tournamentService *services.TournamentService
	withdrawalService *services.WithdrawalService
}

func NewAdminHandler(tournamentService *services.TournamentService, withdrawalService *services.WithdrawalService) *AdminHandler {
	return &AdminHandler{
		tournamentService: tournamentService,
		withdrawalService: withdrawalService,
	}
}

// CreateTournament opens a new tournament.
// POST /admin/tournaments
func (h *AdminHandler) CreateTournament(c *gin.Context) {
	var req struct {
		Name            string                `json:"name" binding:"required"`
		Type            models.TournamentType `json:"type"`
		PrizePool       int64                 `json:"prize_pool" binding:"required"`
		MaxParticipants int                   `json:"max_participants"`
		MinScore        int                   `json:"min_score"`
		StartsAt        time.Time             `json:"starts_at" binding:"required"`
		EndsAt          time.Time             `json:"ends_at" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.EndsAt.After(req.StartsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ends_at must be after starts_at"})
		return
	}

	tournament := &models.Tournament{
		Name:            req.Name,
		Type:            req.Type,
		PrizePool:       req.PrizePool,
		MaxParticipants: req.MaxParticipants,
		MinScore:        req.MinScore,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		IsActive:        true,
	}
	if tournament.Type == "" {
		tournament.Type = models.TournamentTypeWeekly
	}
	if tournament.MaxParticipants <= 0 {
		tournament.MaxParticipants = 1000
	}

	if err := h.tournamentService.Create(c.Request.Context(), tournament); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    tournament,
	})
}

// SettleTournament pays prizes for a tournament without waiting for the
// scheduled end.
// POST /admin/tournaments/:id/settle
func (h *AdminHandler) SettleTournament(c *gin.Context) {
	tournamentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament ID"})
		return
	}

	if err := h.tournamentService.SettleNow(c.Request.Context(), tournamentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Tournament settled",
	})
}

// WithdrawalQueue lists withdrawal requests awaiting review, oldest first.
// GET /admin/withdrawals?status=PENDING&limit=50
func (h *AdminHandler) WithdrawalQueue(c *gin.Context) {
	status := models.WithdrawalStatus(c.DefaultQuery("status", string(models.WithdrawalStatusPending)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	requests, err := h.withdrawalService.ReviewQueue(c.Request.Context(), status, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list withdrawals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
		"count":   len(requests),
	})
}

// ReviewWithdrawal approves or rejects a pending withdrawal. Rejection
// refunds the debited amount.
// POST /admin/withdrawals/:id/review
func (h *AdminHandler) ReviewWithdrawal(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid withdrawal ID"})
		return
	}

	var req struct {
		Approve bool `json:"approve"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.withdrawalService.ReviewWithdrawal(c.Request.Context(), requestID, req.Approve)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    request,
	})
}

// CompleteWithdrawal marks an approved withdrawal as paid out.
// POST /admin/withdrawals/:id/complete
func (h *AdminHandler) CompleteWithdrawal(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid withdrawal ID"})
		return
	}

	request, err := h.withdrawalService.CompleteWithdrawal(c.Request.Context(), requestID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    request,
	})
}
