package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quackworks/duckfarm/internal/service/reporting"
)

// ReportsHandler triggers on-demand spreadsheet exports. The handler is only
// routed when a spreadsheet is configured.
type ReportsHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewReportsHandler constructs the handler adapter.
func NewReportsHandler(svc *reporting.Service, logger *zap.Logger) *ReportsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportsHandler{svc: svc, logger: logger}
}

// Export rewrites the monthly production and finance sheets.
func (h *ReportsHandler) Export(c *gin.Context) {
	months, err := h.svc.ExportMonthlyProduction(c.Request.Context())
	if err != nil {
		h.logger.Error("monthly export failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "report export failed"})
		return
	}

	financeMonths, err := h.svc.ExportFinanceSummary(c.Request.Context())
	if err != nil {
		h.logger.Error("finance export failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "report export failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"productionMonths": months,
		"financeMonths":    financeMonths,
	})
}
