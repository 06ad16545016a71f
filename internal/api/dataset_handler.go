package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flexknot/domain/dataset"
)

// DatasetHandler exposes the observed spectrum profile
type DatasetHandler struct {
	spectrum *dataset.Spectrum
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(spectrum *dataset.Spectrum) *DatasetHandler {
	return &DatasetHandler{spectrum: spectrum}
}

// Profile returns summary statistics of the loaded spectrum
func (h *DatasetHandler) Profile(c *gin.Context) {
	profile, err := h.spectrum.Profile()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}
