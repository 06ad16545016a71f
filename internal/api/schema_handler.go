package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flexknot/domain/likelihood"
	"flexknot/domain/proposal"
)

// SchemaHandler exposes the engine's parameter layout and the
// unit-hypercube transform so samplers can size and map their proposals.
type SchemaHandler struct {
	engine *likelihood.Engine
	block  *proposal.Block
}

// NewSchemaHandler creates a new schema handler
func NewSchemaHandler(engine *likelihood.Engine, block *proposal.Block) *SchemaHandler {
	return &SchemaHandler{engine: engine, block: block}
}

// Schema returns the parameter block the engine accepts
func (h *SchemaHandler) Schema(c *gin.Context) {
	s := h.engine.Schema()
	c.JSON(http.StatusOK, gin.H{
		"order":            s.Order,
		"size":             s.Size(),
		"names":            s.Names(),
		"foreground":       h.engine.Foreground().Name(),
		"foreground_terms": s.ForegroundTerms,
		"sigma":            h.engine.Sigma(),
		"left_edge":        s.LeftEdge,
		"right_edge":       s.RightEdge,
		"knot_prior":       h.block.Knot,
		"fg_priors":        h.block.Foreground,
	})
}

// TransformRequest is one unit-hypercube draw
type TransformRequest struct {
	Unit []float64 `json:"unit" binding:"required"`
}

// Transform maps a unit-hypercube draw to named physical parameters
func (h *SchemaHandler) Transform(c *gin.Context) {
	var req TransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return
	}

	values, err := h.block.Transform(req.Unit)
	if err != nil {
		status, code := statusFor(err)
		c.JSON(status, gin.H{"error": err.Error(), "code": code})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"names":  h.block.Names(),
		"values": values,
	})
}
