package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quackworks/duckfarm/internal/store"
)

// AuthHandler serves login/logout for the single-operator dashboard.
type AuthHandler struct {
	store  *store.Store
	logger *zap.Logger
}

// NewAuthHandler constructs the handler adapter.
func NewAuthHandler(st *store.Store, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{store: st, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the credentials against the company profile. When none have
// ever been configured, any input is accepted.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if !h.store.Login(c.Request.Context(), req.Username, req.Password) {
		h.logger.Info("login rejected", zap.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}

// Logout clears the auth flag and notifies other tabs.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.store.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}

// Status reports the current auth flag.
func (h *AuthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authenticated": h.store.IsAuthenticated()})
}
