package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quackworks/duckfarm/internal/domain/models"
	"github.com/quackworks/duckfarm/internal/store"
)

// ProductionHandler serves daily records, weekly sale entries and the
// monthly aggregate.
type ProductionHandler struct {
	store  *store.Store
	logger *zap.Logger
}

// NewProductionHandler constructs the handler adapter.
func NewProductionHandler(st *store.Store, logger *zap.Logger) *ProductionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductionHandler{store: st, logger: logger}
}

type dailyRequest struct {
	Date     time.Time      `json:"date" binding:"required"`
	CageEggs map[string]int `json:"cageEggs" binding:"required"`
}

// ListDaily returns every daily record.
func (h *ProductionHandler) ListDaily(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.State().DailyProduction)
}

// UpsertDaily records per-cage counts for a calendar day. The lookup before
// insert-or-update keeps at most one record per date.
func (h *ProductionHandler) UpsertDaily(c *gin.Context) {
	var req dailyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid daily production payload"})
		return
	}

	if _, exists := h.store.DailyByDate(req.Date); exists {
		rec, err := h.store.UpdateDailyProduction(req.Date, req.CageEggs)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
		return
	}

	rec := h.store.AddDailyProduction(req.Date, req.CageEggs)
	c.JSON(http.StatusCreated, rec)
}

type weeklyRequest struct {
	StartDate   time.Time       `json:"startDate" binding:"required"`
	EndDate     time.Time       `json:"endDate" binding:"required"`
	Buyer       string          `json:"buyer"`
	GradeA      models.EggGrade `json:"gradeA"`
	GradeB      models.EggGrade `json:"gradeB"`
	GradeC      models.EggGrade `json:"gradeC"`
	Consumption models.EggGrade `json:"consumption"`
}

type weeklyPatchRequest struct {
	StartDate   *time.Time       `json:"startDate"`
	EndDate     *time.Time       `json:"endDate"`
	Buyer       *string          `json:"buyer"`
	GradeA      *models.EggGrade `json:"gradeA"`
	GradeB      *models.EggGrade `json:"gradeB"`
	GradeC      *models.EggGrade `json:"gradeC"`
	Consumption *models.EggGrade `json:"consumption"`
}

// ListWeekly returns every sale/period entry.
func (h *ProductionHandler) ListWeekly(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.State().WeeklyProduction)
}

// CreateWeekly appends a sale entry and rebuilds the monthly aggregate.
func (h *ProductionHandler) CreateWeekly(c *gin.Context) {
	var req weeklyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid weekly production payload"})
		return
	}

	week := h.store.AddWeeklyProduction(store.WeeklyInput{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Buyer:       req.Buyer,
		GradeA:      req.GradeA,
		GradeB:      req.GradeB,
		GradeC:      req.GradeC,
		Consumption: req.Consumption,
	})
	c.JSON(http.StatusCreated, week)
}

// UpdateWeekly merges a partial edit and rebuilds the monthly aggregate.
func (h *ProductionHandler) UpdateWeekly(c *gin.Context) {
	var req weeklyPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid weekly production payload"})
		return
	}

	week, err := h.store.UpdateWeeklyProduction(c.Param("id"), store.WeeklyPatch{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Buyer:       req.Buyer,
		GradeA:      req.GradeA,
		GradeB:      req.GradeB,
		GradeC:      req.GradeC,
		Consumption: req.Consumption,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, week)
}

// DeleteWeekly removes a sale entry and rebuilds the monthly aggregate.
func (h *ProductionHandler) DeleteWeekly(c *gin.Context) {
	if err := h.store.RemoveWeeklyProduction(c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMonthly returns the derived monthly aggregate.
func (h *ProductionHandler) ListMonthly(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.State().MonthlyProduction)
}
