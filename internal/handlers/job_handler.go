package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lifemate-backend/internal/models"
	"lifemate-backend/internal/services"
)

type JobHandler struct {
	jobBoardService *services.JobBoardService
}

func NewJobHandler(jobBoardService *services.JobBoardService) *JobHandler {
	return &JobHandler{
		jobBoardService: jobBoardService,
	}
}

// List returns job postings, optionally filtered by kind and text query.
// GET /jobs?kind=government&q=engineer
func (h *JobHandler) List(c *gin.Context) {
	kind := models.JobKind(c.Query("kind"))
	switch kind {
	case "", models.JobKindGovernment, models.JobKindPrivate:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job kind"})
		return
	}

	query := c.Query("q")

	var (
		postings []models.JobPosting
		err      error
	)
	if query != "" {
		postings, err = h.jobBoardService.Search(c.Request.Context(), kind, query)
	} else {
		postings, err = h.jobBoardService.List(c.Request.Context(), kind)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get jobs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    postings,
		"count":   len(postings),
	})
}

// Get returns one job posting by ID.
// GET /jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	postingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job ID"})
		return
	}

	posting, err := h.jobBoardService.Get(c.Request.Context(), postingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    posting,
	})
}

// Refresh pulls the external feed immediately instead of waiting for the
// background refresher. Admin only.
// POST /admin/jobs/refresh
func (h *JobHandler) Refresh(c *gin.Context) {
	stored, err := h.jobBoardService.RefreshFromFeed(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Feed refresh failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stored":  stored,
	})
}
