package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quackworks/duckfarm/internal/domain/models"
	"github.com/quackworks/duckfarm/internal/store"
)

// FinanceHandler serves the bookkeeping ledger.
type FinanceHandler struct {
	store  *store.Store
	logger *zap.Logger
}

// NewFinanceHandler constructs the handler adapter.
func NewFinanceHandler(st *store.Store, logger *zap.Logger) *FinanceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FinanceHandler{store: st, logger: logger}
}

type transactionRequest struct {
	Date        time.Time              `json:"date" binding:"required"`
	Description string                 `json:"description" binding:"required"`
	Quantity    float64                `json:"quantity"`
	UnitPrice   float64                `json:"unitPrice"`
	Type        models.TransactionType `json:"type" binding:"required,oneof=debit credit"`
}

type transactionPatchRequest struct {
	Date        *time.Time              `json:"date"`
	Description *string                 `json:"description"`
	Quantity    *float64                `json:"quantity"`
	UnitPrice   *float64                `json:"unitPrice"`
	Type        *models.TransactionType `json:"type"`
}

// List returns all ledger rows.
func (h *FinanceHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.State().Transactions)
}

// Create adds a ledger row; the total is derived server side.
func (h *FinanceHandler) Create(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction payload"})
		return
	}

	tx := h.store.AddTransaction(store.TransactionInput{
		Date:        req.Date,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Type:        req.Type,
	})
	c.JSON(http.StatusCreated, tx)
}

// Update merges a partial edit and re-derives the total.
func (h *FinanceHandler) Update(c *gin.Context) {
	var req transactionPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction payload"})
		return
	}

	tx, err := h.store.UpdateTransaction(c.Param("id"), store.TransactionPatch{
		Date:        req.Date,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Type:        req.Type,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// Delete removes a ledger row.
func (h *FinanceHandler) Delete(c *gin.Context) {
	if err := h.store.RemoveTransaction(c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
