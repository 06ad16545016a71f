package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flexknot/app"
)

// maxSweepProposals caps one sweep request
const maxSweepProposals = 10000

// SweepHandler handles batch evaluation requests
type SweepHandler struct {
	service *app.SweepService
}

// NewSweepHandler creates a new sweep handler
func NewSweepHandler(service *app.SweepService) *SweepHandler {
	return &SweepHandler{service: service}
}

// SweepRequest is a batch of proposal vectors
type SweepRequest struct {
	Proposals []app.Proposal `json:"proposals" binding:"required"`
}

// Sweep scores a batch of proposals concurrently, preserving order
func (h *SweepHandler) Sweep(c *gin.Context) {
	var req SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return
	}
	if len(req.Proposals) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sweep needs at least one proposal"})
		return
	}
	if len(req.Proposals) > maxSweepProposals {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many proposals", "max": maxSweepProposals})
		return
	}

	sweepSize.Observe(float64(len(req.Proposals)))

	outcome, err := h.service.Run(c.Request.Context(), req.Proposals)
	if err != nil {
		status, code := statusFor(err)
		c.JSON(status, gin.H{"error": err.Error(), "code": code})
		return
	}

	c.JSON(http.StatusOK, outcome)
}
