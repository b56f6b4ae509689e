package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quackworks/duckfarm/internal/domain/models"
	"github.com/quackworks/duckfarm/internal/store"
)

// StateHandler serves the whole-graph operations: snapshot reads, explicit
// save, reset, backup/restore and the company profile.
type StateHandler struct {
	store  *store.Store
	logger *zap.Logger
}

// NewStateHandler constructs the handler adapter.
func NewStateHandler(st *store.Store, logger *zap.Logger) *StateHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateHandler{store: st, logger: logger}
}

// GetState returns the full current entity graph plus transient flags.
func (h *StateHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state":           h.store.State(),
		"isDirty":         h.store.IsDirty(),
		"isAuthenticated": h.store.IsAuthenticated(),
		"activeTab":       h.store.ActiveTab(),
	})
}

// Save persists the entity graph and notifies other tabs. A persistence
// failure leaves the in-memory state usable, so the client only gets a
// warning-grade error.
func (h *StateHandler) Save(c *gin.Context) {
	if err := h.store.SaveState(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "state could not be saved; changes remain in memory"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// Reset replaces all state with fresh defaults and persists immediately.
func (h *StateHandler) Reset(c *gin.Context) {
	if err := h.store.ResetState(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "state reset but could not be persisted"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reset": true})
}

// Backup exports the entity graph as a downloadable JSON document. The
// export shape is identical to the persisted snapshot.
func (h *StateHandler) Backup(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="duckfarm-backup.json"`)
	c.JSON(http.StatusOK, h.store.GetFullState())
}

// Restore imports a previously exported graph, applying the same revival
// and recompute path as a normal load, then persists it. Malformed input is
// rejected with the state left unchanged.
func (h *StateHandler) Restore(c *gin.Context) {
	var state models.AppState
	if err := c.ShouldBindJSON(&state); err != nil {
		h.logger.Warn("invalid backup payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "backup file could not be parsed"})
		return
	}

	h.store.LoadFullState(state)
	if err := h.store.SaveState(c.Request.Context()); err != nil {
		c.JSON(http.StatusOK, gin.H{"restored": true, "saved": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restored": true, "saved": true})
}

// GetCompany returns the company profile.
func (h *StateHandler) GetCompany(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.State().CompanyInfo)
}

// UpdateCompany replaces the company profile wholesale, as submitted by the
// settings form.
func (h *StateHandler) UpdateCompany(c *gin.Context) {
	var info models.CompanyInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company profile"})
		return
	}

	h.store.UpdateCompanyInfo(info)
	c.JSON(http.StatusOK, info)
}

type activeTabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

// SetActiveTab stores the last selected dashboard tab.
func (h *StateHandler) SetActiveTab(c *gin.Context) {
	var req activeTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.store.SetActiveTab(c.Request.Context(), req.Tab)
	c.JSON(http.StatusOK, gin.H{"activeTab": req.Tab})
}
