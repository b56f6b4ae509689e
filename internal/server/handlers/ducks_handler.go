package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quackworks/duckfarm/internal/domain/models"
	"github.com/quackworks/duckfarm/internal/store"
)

// DuckHandler serves cage rows and their death records.
type DuckHandler struct {
	store  *store.Store
	logger *zap.Logger
}

// NewDuckHandler constructs the handler adapter.
func NewDuckHandler(st *store.Store, logger *zap.Logger) *DuckHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DuckHandler{store: st, logger: logger}
}

type duckRequest struct {
	Cage       int               `json:"cage" binding:"required"`
	Quantity   int               `json:"quantity" binding:"gte=0"`
	Deaths     int               `json:"deaths" binding:"gte=0"`
	EntryDate  time.Time         `json:"entryDate" binding:"required"`
	CageLength float64           `json:"cageLength"`
	CageWidth  float64           `json:"cageWidth"`
	CageSystem models.CageSystem `json:"cageSystem"`
}

type duckPatchRequest struct {
	Cage       *int               `json:"cage"`
	Quantity   *int               `json:"quantity"`
	Deaths     *int               `json:"deaths"`
	EntryDate  *time.Time         `json:"entryDate"`
	CageLength *float64           `json:"cageLength"`
	CageWidth  *float64           `json:"cageWidth"`
	CageSystem *models.CageSystem `json:"cageSystem"`
}

// List returns all cage rows.
func (h *DuckHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.State().Ducks)
}

// Create adds a cage row.
func (h *DuckHandler) Create(c *gin.Context) {
	var req duckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid duck payload"})
		return
	}

	duck := h.store.AddDuck(store.DuckInput{
		Cage:       req.Cage,
		Quantity:   req.Quantity,
		Deaths:     req.Deaths,
		EntryDate:  req.EntryDate,
		CageLength: req.CageLength,
		CageWidth:  req.CageWidth,
		CageSystem: req.CageSystem,
	})
	c.JSON(http.StatusCreated, duck)
}

// Update merges a partial edit onto a cage row.
func (h *DuckHandler) Update(c *gin.Context) {
	var req duckPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid duck payload"})
		return
	}

	duck, err := h.store.UpdateDuck(c.Param("id"), store.DuckPatch{
		Cage:       req.Cage,
		Quantity:   req.Quantity,
		Deaths:     req.Deaths,
		EntryDate:  req.EntryDate,
		CageLength: req.CageLength,
		CageWidth:  req.CageWidth,
		CageSystem: req.CageSystem,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, duck)
}

// Delete removes a cage row and cascades its death records.
func (h *DuckHandler) Delete(c *gin.Context) {
	if err := h.store.RemoveDuck(c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reset zeroes a cage row's quantity and deaths while keeping the row.
func (h *DuckHandler) Reset(c *gin.Context) {
	if err := h.store.ResetDuck(c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type deathRequest struct {
	Cage     int    `json:"cage" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Notes    string `json:"notes"`
}

// ListDeaths returns all mortality records.
func (h *DuckHandler) ListDeaths(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.State().DeathRecords)
}

// CreateDeath logs a mortality incident; the record date is stamped server
// side and the matching cage's death counter is incremented.
func (h *DuckHandler) CreateDeath(c *gin.Context) {
	var req deathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid death record payload"})
		return
	}

	rec := h.store.AddDeathRecord(store.DeathInput{
		Cage:     req.Cage,
		Quantity: req.Quantity,
		Notes:    req.Notes,
	})
	c.JSON(http.StatusCreated, rec)
}

// DeleteDeath removes a mortality record. The cage's cumulative counter is
// not adjusted.
func (h *DuckHandler) DeleteDeath(c *gin.Context) {
	if err := h.store.RemoveDeathRecord(c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
}
