package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"

	"flexknot/app"
)

// ReportHandler serves the best-fit report
type ReportHandler struct {
	service *app.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *app.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Report compiles the best-fit report. HTML clients get the markdown
// rendered; everyone else gets the raw markdown text.
func (h *ReportHandler) Report(c *gin.Context) {
	report, err := h.service.Compile(c.Request.Context())
	if err != nil {
		status, code := statusFor(err)
		c.JSON(status, gin.H{"error": err.Error(), "code": code})
		return
	}

	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		html := markdown.ToHTML([]byte(report.Markdown), nil, nil)
		c.Data(http.StatusOK, "text/html; charset=utf-8", html)
		return
	}
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.JSON(http.StatusOK, report)
		return
	}

	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(report.Markdown))
}
