package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"lifemate-backend/internal/models"
	"lifemate-backend/internal/services"
)

type WalletHandler struct {
	ledgerService     *services.LedgerService
	withdrawalService *services.WithdrawalService
}

func NewWalletHandler(ledgerService *services.LedgerService, withdrawalService *services.WithdrawalService) *WalletHandler {
	return &WalletHandler{
		ledgerService:     ledgerService,
		withdrawalService: withdrawalService,
	}
}

// GetBalance returns the wallet snapshot for the authenticated user.
// GET /wallet
func (h *WalletHandler) GetBalance(c *gin.Context) {
	account, ok := currentAccount(c, h.ledgerService)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    account,
	})
}

// GetTransactions returns the ledger history, newest first.
// GET /wallet/transactions?limit=50&offset=0
func (h *WalletHandler) GetTransactions(c *gin.Context) {
	account, ok := currentAccount(c, h.ledgerService)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	records, err := h.ledgerService.Transactions(c.Request.Context(), account.ID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
		"count":   len(records),
	})
}

// StreamBalance pushes balance updates over server-sent events. The first
// event is the current balance, every ledger write after that produces
// another event until the client disconnects.
// GET /wallet/stream
func (h *WalletHandler) StreamBalance(c *gin.Context) {
	account, ok := currentAccount(c, h.ledgerService)
	if !ok {
		return
	}

	updates, unsubscribe, err := h.ledgerService.SubscribeBalance(c.Request.Context(), account.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case balance, open := <-updates:
			if !open {
				return false
			}
			c.SSEvent("balance", gin.H{"balance": balance})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// RequestWithdrawal debits the wallet and opens a pending payout request.
// POST /wallet/withdrawals
func (h *WalletHandler) RequestWithdrawal(c *gin.Context) {
	account, ok := currentAccount(c, h.ledgerService)
	if !ok {
		return
	}

	var req struct {
		Amount      decimal.Decimal    `json:"amount" binding:"required"`
		Destination models.Destination `json:"destination"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	withdrawal, err := h.withdrawalService.RequestWithdrawal(c.Request.Context(), account.ID, req.Amount, req.Destination)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    withdrawal,
	})
}

// GetWithdrawals lists the user's withdrawal requests, newest first.
// GET /wallet/withdrawals
func (h *WalletHandler) GetWithdrawals(c *gin.Context) {
	account, ok := currentAccount(c, h.ledgerService)
	if !ok {
		return
	}

	withdrawals, err := h.withdrawalService.ListWithdrawals(c.Request.Context(), account.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get withdrawals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    withdrawals,
		"count":   len(withdrawals),
	})
}
