package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"flexknot/app"
)

// EvaluateHandler handles single-proposal evaluation requests
type EvaluateHandler struct {
	service *app.EvaluationService
}

// NewEvaluateHandler creates a new evaluate handler
func NewEvaluateHandler(service *app.EvaluationService) *EvaluateHandler {
	return &EvaluateHandler{service: service}
}

// EvaluateRequest is one named proposal vector
type EvaluateRequest struct {
	Names  []string  `json:"names" binding:"required"`
	Values []float64 `json:"values" binding:"required"`
}

// Evaluate scores one proposal vector
func (h *EvaluateHandler) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		evaluationsTotal.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return
	}

	start := time.Now()
	result, err := h.service.Evaluate(c.Request.Context(), req.Names, req.Values)
	evaluationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		status, code := statusFor(err)
		evaluationsTotal.WithLabelValues("error").Inc()
		c.JSON(status, gin.H{"error": err.Error(), "code": code})
		return
	}

	evaluationsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, result)
}
