package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flexknot/app"
	"flexknot/domain/dataset"
	"flexknot/domain/likelihood"
	"flexknot/domain/proposal"
)

// Deps are the wired services the router serves
type Deps struct {
	Evaluation *app.EvaluationService
	Sweep      *app.SweepService
	Report     *app.ReportService
	Engine     *likelihood.Engine
	Spectrum   *dataset.Spectrum
	Block      *proposal.Block
}

// NewRouter builds the gin router for the evaluation API
func NewRouter(deps Deps) *gin.Engine {
	router := gin.Default()

	evaluateHandler := NewEvaluateHandler(deps.Evaluation)
	sweepHandler := NewSweepHandler(deps.Sweep)
	schemaHandler := NewSchemaHandler(deps.Engine, deps.Block)
	datasetHandler := NewDatasetHandler(deps.Spectrum)
	reportHandler := NewReportHandler(deps.Report)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/evaluate", evaluateHandler.Evaluate)
		v1.POST("/sweep", sweepHandler.Sweep)
		v1.GET("/schema", schemaHandler.Schema)
		v1.POST("/transform", schemaHandler.Transform)
		v1.GET("/dataset", datasetHandler.Profile)
		v1.GET("/report", reportHandler.Report)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
