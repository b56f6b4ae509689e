package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quackworks/duckfarm/internal/store"
)

// InventoryHandler serves the feed stock rows.
type InventoryHandler struct {
	store  *store.Store
	logger *zap.Logger
}

// NewInventoryHandler constructs the handler adapter.
func NewInventoryHandler(st *store.Store, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{store: st, logger: logger}
}

type feedRequest struct {
	Name          string  `json:"name" binding:"required"`
	Supplier      string  `json:"supplier"`
	Stock         float64 `json:"stock"`
	PricePerBag   float64 `json:"pricePerBag"`
	FeedingSchema float64 `json:"feedingSchema"`
}

type feedPatchRequest struct {
	Name          *string  `json:"name"`
	Supplier      *string  `json:"supplier"`
	Stock         *float64 `json:"stock"`
	PricePerBag   *float64 `json:"pricePerBag"`
	FeedingSchema *float64 `json:"feedingSchema"`
}

// List returns all feed rows.
func (h *InventoryHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.State().Feeds)
}

// Create adds a feed row; the per-kg price is derived server side.
func (h *InventoryHandler) Create(c *gin.Context) {
	var req feedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feed payload"})
		return
	}

	feed := h.store.AddFeed(store.FeedInput{
		Name:          req.Name,
		Supplier:      req.Supplier,
		Stock:         req.Stock,
		PricePerBag:   req.PricePerBag,
		FeedingSchema: req.FeedingSchema,
	})
	c.JSON(http.StatusCreated, feed)
}

// Update merges a partial edit and re-derives the per-kg price.
func (h *InventoryHandler) Update(c *gin.Context) {
	var req feedPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feed payload"})
		return
	}

	feed, err := h.store.UpdateFeed(c.Param("id"), store.FeedPatch{
		Name:          req.Name,
		Supplier:      req.Supplier,
		Stock:         req.Stock,
		PricePerBag:   req.PricePerBag,
		FeedingSchema: req.FeedingSchema,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// Delete removes a feed row.
func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.store.RemoveFeed(c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
