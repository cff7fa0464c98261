package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lifemate-backend/internal/services"
)

type TournamentHandler struct {
	ledgerService     *services.LedgerService
	tournamentService *services.TournamentService
}

func NewTournamentHandler(ledgerService *services.LedgerService, tournamentService *services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		ledgerService:     ledgerService,
		tournamentService: tournamentService,
	}
}

// List returns recent tournaments, newest first.
// GET /tournaments?limit=20
func (h *TournamentHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	tournaments, err := h.tournamentService.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get tournaments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tournaments,
		"count":   len(tournaments),
	})
}

// Current returns the tournament currently open for play, if any.
// GET /tournaments/current
func (h *TournamentHandler) Current(c *gin.Context) {
	tournament, err := h.tournamentService.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tournament,
	})
}

// Join enters the authenticated user into a tournament.
// POST /tournaments/:id/join
func (h *TournamentHandler) Join(c *gin.Context) {
	account, ok := currentAccount(c, h.ledgerService)
	if !ok {
		return
	}

	tournamentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament ID"})
		return
	}

	participation, err := h.tournamentService.Join(c.Request.Context(), tournamentID, account.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    participation,
	})
}

// Leaderboard returns tournament standings ordered by score.
// GET /tournaments/:id/leaderboard?limit=50
func (h *TournamentHandler) Leaderboard(c *gin.Context) {
	tournamentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament ID"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	standings, err := h.tournamentService.Leaderboard(c.Request.Context(), tournamentID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    standings,
		"count":   len(standings),
	})
}
